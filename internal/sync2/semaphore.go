// Package sync2 provides the GPU synchronization primitives the context and
// command pool are built on: binary and timeline semaphores, fences, and the
// ResourceState conversion tables used by the barrier helper.
package sync2

import (
	"unsafe"

	vk "github.com/vulkan-go/vulkan"

	"github.com/xanderbert/eos/internal/vkutil"
)

// NewBinarySemaphore creates a single-use binary semaphore.
func NewBinarySemaphore(device vk.Device, debugName string) vk.Semaphore {
	createInfo := vk.SemaphoreCreateInfo{
		SType: vk.StructureTypeSemaphoreCreateInfo,
	}

	var semaphore vk.Semaphore
	vkutil.Check(vk.CreateSemaphore(device, &createInfo, nil, &semaphore), "vkCreateSemaphore")
	vkutil.SetDebugName(device, vk.ObjectTypeSemaphore, uintptr(semaphore), debugName)
	return semaphore
}

// NewTimelineSemaphore creates a monotonically increasing 64-bit timeline
// semaphore seeded at initialValue.
func NewTimelineSemaphore(device vk.Device, initialValue uint64, debugName string) vk.Semaphore {
	typeCreateInfo := vk.SemaphoreTypeCreateInfo{
		SType:         vk.StructureTypeSemaphoreTypeCreateInfo,
		SemaphoreType: vk.SemaphoreTypeTimeline,
		InitialValue:  initialValue,
	}

	createInfo := vk.SemaphoreCreateInfo{
		SType: vk.StructureTypeSemaphoreCreateInfo,
		PNext: unsafe.Pointer(&typeCreateInfo),
	}

	var semaphore vk.Semaphore
	vkutil.Check(vk.CreateSemaphore(device, &createInfo, nil, &semaphore), "vkCreateSemaphore(timeline)")
	vkutil.SetDebugName(device, vk.ObjectTypeSemaphore, uintptr(semaphore), debugName)
	return semaphore
}

// WaitSemaphoreValue blocks until the timeline semaphore reaches value.
// spec.md §5 permits no cancellation or timeout on this wait.
func WaitSemaphoreValue(device vk.Device, semaphore vk.Semaphore, value uint64) {
	waitInfo := vk.SemaphoreWaitInfo{
		SType:          vk.StructureTypeSemaphoreWaitInfo,
		SemaphoreCount: 1,
		PSemaphores:    []vk.Semaphore{semaphore},
		PValues:        []uint64{value},
	}
	vkutil.Check(vk.WaitSemaphores(device, &waitInfo, vkutil.MaxTimeout), "vkWaitSemaphores")
}

// DestroySemaphore is a thin wrapper kept for symmetry with the fence
// destructor; a null semaphore is a no-op. Context.Destroy uses it for the
// timeline semaphore.
func DestroySemaphore(device vk.Device, semaphore vk.Semaphore) {
	if semaphore == vk.NullSemaphore {
		return
	}
	vk.DestroySemaphore(device, semaphore, nil)
}
