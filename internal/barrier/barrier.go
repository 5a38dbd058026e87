// Package barrier builds the single VkDependencyInfo synchronization2 call
// every pipeline barrier in this core goes through, translating global
// (buffer/memory-wide) and image barriers expressed in terms of
// sync2.ResourceState into the raw Vulkan structures.
package barrier

import (
	vk "github.com/vulkan-go/vulkan"

	"github.com/xanderbert/eos/internal/sync2"
)

// Global is a memory barrier with no associated image: a state transition
// that affects buffer or host memory visibility only.
type Global struct {
	CurrentState sync2.ResourceState
	NextState    sync2.ResourceState
}

// Image is a barrier that also transitions an image's layout. HasStencil
// is supplied by the caller (internal/context, which owns the image's
// format) rather than derived here, matching spec.md §4.1's rule that the
// stencil aspect comes from the image, not the state.
type Image struct {
	Handle       vk.Image
	CurrentState sync2.ResourceState
	NextState    sync2.ResourceState
	HasStencil   bool
}

// CmdPipelineBarrier records one vkCmdPipelineBarrier2 covering every global
// and image barrier passed in. Grounded line-for-line on
// vulkanClasses.cpp's cmdPipelineBarrier (lines 10-78): both barrier kinds
// are folded into a single VkDependencyInfo rather than issued as separate
// calls, so drivers only pay for one pipeline stall per Cmd call.
func CmdPipelineBarrier(cmd vk.CommandBuffer, globals []Global, images []Image) {
	if len(globals) == 0 && len(images) == 0 {
		return
	}

	memoryBarriers := make([]vk.MemoryBarrier2, 0, len(globals))
	for _, g := range globals {
		memoryBarriers = append(memoryBarriers, vk.MemoryBarrier2{
			SType:         vk.StructureTypeMemoryBarrier2,
			SrcStageMask:  sync2.ToStage(g.CurrentState),
			SrcAccessMask: sync2.ToAccess(g.CurrentState),
			DstStageMask:  sync2.ToStage(g.NextState),
			DstAccessMask: sync2.ToAccess(g.NextState),
		})
	}

	imageBarriers := make([]vk.ImageMemoryBarrier2, 0, len(images))
	for _, ib := range images {
		aspectMask := sync2.ToAspect(ib.CurrentState)
		if ib.HasStencil {
			aspectMask |= vk.ImageAspectFlags(vk.ImageAspectStencilBit)
		}

		imageBarriers = append(imageBarriers, vk.ImageMemoryBarrier2{
			SType:         vk.StructureTypeImageMemoryBarrier2,
			SrcStageMask:  sync2.ToStage(ib.CurrentState),
			SrcAccessMask: sync2.ToAccess(ib.CurrentState),
			DstStageMask:  sync2.ToStage(ib.NextState),
			DstAccessMask: sync2.ToAccess(ib.NextState),
			OldLayout:     sync2.ToLayout(ib.CurrentState),
			NewLayout:     sync2.ToLayout(ib.NextState),
			Image:         ib.Handle,
			SubresourceRange: vk.ImageSubresourceRange{
				AspectMask:     aspectMask,
				BaseMipLevel:   0,
				LevelCount:     vk.RemainingMipLevels,
				BaseArrayLayer: 0,
				LayerCount:     vk.RemainingArrayLayers,
			},
		})
	}

	dependencyInfo := vk.DependencyInfo{
		SType:                   vk.StructureTypeDependencyInfo,
		MemoryBarrierCount:      uint32(len(memoryBarriers)),
		PMemoryBarriers:         memoryBarriers,
		ImageMemoryBarrierCount: uint32(len(imageBarriers)),
		PImageMemoryBarriers:    imageBarriers,
	}

	vk.CmdPipelineBarrier2(cmd, &dependencyInfo)
}
