package context

import (
	"github.com/xanderbert/eos/internal/cmdpool"
	"github.com/xanderbert/eos/internal/handle"
	"github.com/xanderbert/eos/internal/vkutil"
)

// SubmitHandle is the public-facing submission token, an alias of the
// internal command-pool representation so callers outside this package
// don't need to import internal/cmdpool directly.
type SubmitHandle = cmdpool.SubmitHandle

// Submit ends recording on cb and submits it to the graphics queue. When
// present is non-empty it must be a swapchain-owned texture the caller has
// already transitioned to the Present state; Submit programs the timeline
// signal for that swapchain image, submits, and presents using the
// binary semaphore CommandPool.Submit signaled. Grounded on
// vulkanClasses.cpp:816-857.
func (c *Context) Submit(cb *CommandBuffer, present handle.Handle) SubmitHandle {
	vkutil.Assertf(cb == c.currentCommandBuffer, "the submitted command buffer is not the currently acquired one")

	shouldPresent := c.HasSwapChain() && !present.Empty()
	if shouldPresent {
		img := c.resourceOf(present)
		vkutil.Assertf(img.IsSwapChainImage(), "the present texture handle is not from a swapchain")

		signalValue := c.swapChain.CurrentFrame + uint64(c.swapChain.NumImages())
		c.swapChain.TimelineWaitValues[c.swapChain.CurrentImageIndex] = signalValue
		c.commandPool.Signal(c.timelineSem, signalValue)
	}

	cb.lastSubmit = c.commandPool.Submit(cb.submitHandle)

	if shouldPresent {
		c.swapChain.Present(c.commandPool.AcquireLastSubmitSemaphore())
	}

	c.processDeferredTasks()

	result := cb.lastSubmit
	c.currentCommandBuffer = nil
	return result
}

// GetSwapchainTexture waits for and returns the handle of the swapchain
// image ready to be rendered into this frame. Grounded on
// vulkanClasses.cpp:859-872.
func (c *Context) GetSwapchainTexture() handle.Handle {
	vkutil.Assertf(c.HasSwapChain(), "context has no swapchain")
	tex := c.swapChain.CurrentTexture(c.commandPool)
	vkutil.Assertf(!tex.Empty(), "swapchain returned an empty texture handle")
	return tex
}

// Wait blocks until h's submission retires (or the whole device idles for
// the empty handle).
func (c *Context) Wait(h SubmitHandle) { c.commandPool.Wait(h) }

// IsReady reports whether h's submission has retired.
func (c *Context) IsReady(h SubmitHandle) bool { return c.commandPool.IsReady(h, false) }
