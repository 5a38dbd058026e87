package sync2

import (
	vk "github.com/vulkan-go/vulkan"

	"github.com/xanderbert/eos/internal/vkutil"
)

// NewFence creates an unsignaled fence.
func NewFence(device vk.Device, debugName string) vk.Fence {
	createInfo := vk.FenceCreateInfo{
		SType: vk.StructureTypeFenceCreateInfo,
	}

	var fence vk.Fence
	vkutil.Check(vk.CreateFence(device, &createInfo, nil, &fence), "vkCreateFence")
	vkutil.SetDebugName(device, vk.ObjectTypeFence, uintptr(fence), debugName)
	return fence
}

// DestroyFence is a thin wrapper kept for symmetry with the semaphore
// destructor.
func DestroyFence(device vk.Device, fence vk.Fence) {
	if fence == vk.NullFence {
		return
	}
	vk.DestroyFence(device, fence, nil)
}
