package context

import (
	vk "github.com/vulkan-go/vulkan"

	"github.com/xanderbert/eos/internal/barrier"
	"github.com/xanderbert/eos/internal/cmdpool"
	"github.com/xanderbert/eos/internal/handle"
	"github.com/xanderbert/eos/internal/sync2"
	"github.com/xanderbert/eos/internal/vkimage"
	"github.com/xanderbert/eos/internal/vkutil"
)

// CommandBuffer is the single live recording buffer a Context hands out per
// spec.md §4.3's "single live command buffer" invariant. It wraps the raw
// vk.CommandBuffer drawn from the CommandPool for the duration of one
// acquire/record/submit cycle.
type CommandBuffer struct {
	ctx          *Context
	vkCmd        vk.CommandBuffer
	submitHandle cmdpool.SubmitHandle
	lastSubmit   cmdpool.SubmitHandle
}

// Raw returns the underlying vk.CommandBuffer for recording draw/dispatch
// calls that live outside this core's scope.
func (cb *CommandBuffer) Raw() vk.CommandBuffer { return cb.vkCmd }

// TransitionImageByHandle resolves h through the owning context's image
// pool and records a barrier transitioning it from currentState to
// nextState.
func (cb *CommandBuffer) TransitionImageByHandle(h handle.Handle, currentState, nextState sync2.ResourceState) {
	cb.TransitionImage(cb.ctx.resourceOf(h), currentState, nextState)
}

// TransitionImage records a barrier transitioning img from currentState to
// nextState using the shared ResourceState conversion tables.
func (cb *CommandBuffer) TransitionImage(img *vkimage.Image, currentState, nextState sync2.ResourceState) {
	barrier.CmdPipelineBarrier(cb.vkCmd, nil, []barrier.Image{{
		Handle:       img.VkImage,
		CurrentState: currentState,
		NextState:    nextState,
		HasStencil:   img.HasStencil,
	}})
}

// GlobalBarrier records a memory-only barrier with no associated image.
func (cb *CommandBuffer) GlobalBarrier(currentState, nextState sync2.ResourceState) {
	barrier.CmdPipelineBarrier(cb.vkCmd, []barrier.Global{{CurrentState: currentState, NextState: nextState}}, nil)
}

// AcquireCommandBuffer draws a command buffer from the pool. Fatal
// assertion if one is already live this frame (spec.md §4.3, §7.3).
func (c *Context) AcquireCommandBuffer() *CommandBuffer {
	vkutil.Assertf(c.currentCommandBuffer == nil, "another command buffer has already been acquired this frame")

	raw, h := c.commandPool.AcquireCommandBuffer()
	cb := &CommandBuffer{ctx: c, vkCmd: raw, submitHandle: h}
	c.currentCommandBuffer = cb
	return cb
}

// resourceOf resolves a texture handle to its underlying image, panicking
// with a contract error if the handle is stale or empty — spec.md §4.3
// requires present textures to be valid, live, swapchain-owned images.
func (c *Context) resourceOf(h handle.Handle) *vkimage.Image {
	img, ok := c.images.Get(h)
	vkutil.Assertf(ok, "texture handle does not reference a live image")
	return img
}
