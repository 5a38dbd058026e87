package sync2

import (
	vk "github.com/vulkan-go/vulkan"
)

// ResourceState is the abstract role an image plays at a barrier boundary.
// Stage, access, layout, and aspect are all derived from it (spec.md §4.1)
// rather than passed separately, so a caller can never request an
// inconsistent combination the way raw VkImageMemoryBarrier2 fields allow.
type ResourceState int

const (
	// Undefined is only ever valid as a barrier's source state: the image's
	// prior contents are discarded.
	Undefined ResourceState = iota
	General
	ColorAttachment
	DepthStencilAttachment
	DepthStencilReadOnly
	ShaderRead
	ShaderReadWrite
	TransferSrc
	TransferDst
	Present
)

// resourceStateToStage, resourceStateToAccess, resourceStateToLayout and
// resourceStateToAspect are total: every ResourceState above has an entry.
// Grounded on vulkanClasses.cpp's cmdPipelineBarrier/CommandBuffer::TransitionImageLayout
// call sites (vulkanClasses.cpp:10-78), which only ever pass through
// VkSynchronization::ConvertToVkX rather than raw stage/access/layout values.
var resourceStateToStage = map[ResourceState]vk.PipelineStageFlags2{
	Undefined:              vk.PipelineStageFlags2(vk.PipelineStageTopOfPipeBit),
	General:                vk.PipelineStageFlags2(vk.PipelineStageAllCommandsBit),
	ColorAttachment:        vk.PipelineStageFlags2(vk.PipelineStageColorAttachmentOutputBit),
	DepthStencilAttachment: vk.PipelineStageFlags2(vk.PipelineStageEarlyFragmentTestsBit | vk.PipelineStageLateFragmentTestsBit),
	DepthStencilReadOnly:   vk.PipelineStageFlags2(vk.PipelineStageEarlyFragmentTestsBit | vk.PipelineStageFragmentShaderBit),
	ShaderRead:             vk.PipelineStageFlags2(vk.PipelineStageFragmentShaderBit | vk.PipelineStageComputeShaderBit),
	ShaderReadWrite:        vk.PipelineStageFlags2(vk.PipelineStageComputeShaderBit),
	TransferSrc:            vk.PipelineStageFlags2(vk.PipelineStageTransferBit),
	TransferDst:            vk.PipelineStageFlags2(vk.PipelineStageTransferBit),
	Present:                vk.PipelineStageFlags2(vk.PipelineStageBottomOfPipeBit),
}

var resourceStateToAccess = map[ResourceState]vk.AccessFlags2{
	Undefined:              0,
	General:                vk.AccessFlags2(vk.AccessMemoryReadBit | vk.AccessMemoryWriteBit),
	ColorAttachment:        vk.AccessFlags2(vk.AccessColorAttachmentReadBit | vk.AccessColorAttachmentWriteBit),
	DepthStencilAttachment: vk.AccessFlags2(vk.AccessDepthStencilAttachmentReadBit | vk.AccessDepthStencilAttachmentWriteBit),
	DepthStencilReadOnly:   vk.AccessFlags2(vk.AccessDepthStencilAttachmentReadBit | vk.AccessShaderReadBit),
	ShaderRead:             vk.AccessFlags2(vk.AccessShaderReadBit),
	ShaderReadWrite:        vk.AccessFlags2(vk.AccessShaderReadBit | vk.AccessShaderWriteBit),
	TransferSrc:            vk.AccessFlags2(vk.AccessTransferReadBit),
	TransferDst:            vk.AccessFlags2(vk.AccessTransferWriteBit),
	Present:                0,
}

var resourceStateToLayout = map[ResourceState]vk.ImageLayout{
	Undefined:              vk.ImageLayoutUndefined,
	General:                vk.ImageLayoutGeneral,
	ColorAttachment:        vk.ImageLayoutColorAttachmentOptimal,
	DepthStencilAttachment: vk.ImageLayoutDepthStencilAttachmentOptimal,
	DepthStencilReadOnly:   vk.ImageLayoutDepthStencilReadOnlyOptimal,
	ShaderRead:             vk.ImageLayoutShaderReadOnlyOptimal,
	ShaderReadWrite:        vk.ImageLayoutGeneral,
	TransferSrc:            vk.ImageLayoutTransferSrcOptimal,
	TransferDst:            vk.ImageLayoutTransferDstOptimal,
	Present:                vk.ImageLayoutPresentSrc,
}

// resourceStateToAspect gives the depth aspect for the two depth-stencil
// states and the color aspect for every other state; the caller
// (internal/barrier) adds the stencil aspect on top when the target image's
// format carries a stencil plane, per spec.md §4.1: "The stencil aspect is
// added when the target image has a depth-plus-stencil format (queried from
// the Image, not from the state)."
var resourceStateToAspect = map[ResourceState]vk.ImageAspectFlags{
	Undefined:              vk.ImageAspectFlags(vk.ImageAspectColorBit),
	General:                vk.ImageAspectFlags(vk.ImageAspectColorBit),
	ColorAttachment:        vk.ImageAspectFlags(vk.ImageAspectColorBit),
	DepthStencilAttachment: vk.ImageAspectFlags(vk.ImageAspectDepthBit),
	DepthStencilReadOnly:   vk.ImageAspectFlags(vk.ImageAspectDepthBit),
	ShaderRead:             vk.ImageAspectFlags(vk.ImageAspectColorBit),
	ShaderReadWrite:        vk.ImageAspectFlags(vk.ImageAspectColorBit),
	TransferSrc:            vk.ImageAspectFlags(vk.ImageAspectColorBit),
	TransferDst:            vk.ImageAspectFlags(vk.ImageAspectColorBit),
	Present:                vk.ImageAspectFlags(vk.ImageAspectColorBit),
}

// ToStage returns the pipeline stage flags a barrier should use when an
// image is in state s.
func ToStage(s ResourceState) vk.PipelineStageFlags2 { return resourceStateToStage[s] }

// ToAccess returns the access flags a barrier should use when an image is
// in state s.
func ToAccess(s ResourceState) vk.AccessFlags2 { return resourceStateToAccess[s] }

// ToLayout returns the VkImageLayout an image must be in for state s.
func ToLayout(s ResourceState) vk.ImageLayout { return resourceStateToLayout[s] }

// ToAspect returns the base aspect mask for state s. Callers that need the
// stencil plane included OR this with vk.ImageAspectFlags(vk.ImageAspectStencilBit)
// themselves once they know the image format carries one.
func ToAspect(s ResourceState) vk.ImageAspectFlags { return resourceStateToAspect[s] }
