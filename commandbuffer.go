package eos

import (
	vk "github.com/vulkan-go/vulkan"

	"github.com/xanderbert/eos/internal/context"
)

// ICommandBuffer is the recording surface handed out by
// Context.AcquireCommandBuffer. At most one is live per Context at a time.
type ICommandBuffer interface {
	Raw() vk.CommandBuffer
	TransitionImage(handle TextureHandle, current, next ResourceState)
	GlobalBarrier(current, next ResourceState)
}

// CommandBuffer is the concrete ICommandBuffer implementation backed by a
// slot drawn from the context's command pool.
type CommandBuffer struct {
	inner *context.CommandBuffer
}

var _ ICommandBuffer = (*CommandBuffer)(nil)

// Raw returns the underlying vk.CommandBuffer, for recording work outside
// this core's scope (draw calls, dispatches, dynamic rendering scopes).
func (cb *CommandBuffer) Raw() vk.CommandBuffer { return cb.inner.Raw() }

// TransitionImage records a barrier moving the image referenced by handle
// from current to next state.
func (cb *CommandBuffer) TransitionImage(handle TextureHandle, current, next ResourceState) {
	cb.inner.TransitionImageByHandle(handle, current, next)
}

// GlobalBarrier records a memory-only barrier with no associated image.
func (cb *CommandBuffer) GlobalBarrier(current, next ResourceState) {
	cb.inner.GlobalBarrier(current, next)
}
