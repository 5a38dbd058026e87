package context

import (
	vk "github.com/vulkan-go/vulkan"

	"github.com/xanderbert/eos/internal/handle"
	"github.com/xanderbert/eos/internal/vkimage"
)

// DestroyTexture defers destruction of every view owned by the image (main,
// storage, and per-mip/layer framebuffer views) until the image's last
// recorded use retires, then either releases the pool slot immediately
// (swapchain-adopted images, which don't own their VkImage) or additionally
// hands the VkImage itself to the external allocator. Idempotent: an
// already-destroyed or empty handle is a silent no-op (spec.md §7.4).
// Grounded on vulkanClasses.cpp:899-960.
func (c *Context) DestroyTexture(h handle.Handle) {
	img, ok := c.images.Get(h)
	if !ok {
		return
	}

	device := c.device
	mainView := img.MainView
	c.Defer(SubmitHandle{}, func() { vk.DestroyImageView(device, mainView, nil) })

	if img.StorageView != vk.NullImageView {
		storageView := img.StorageView
		c.Defer(SubmitHandle{}, func() { vk.DestroyImageView(device, storageView, nil) })
	}

	for _, v := range img.FramebufferViews {
		if v == vk.NullImageView {
			continue
		}
		view := v
		c.Defer(SubmitHandle{}, func() { vk.DestroyImageView(device, view, nil) })
	}

	if !img.IsOwning {
		c.images.Destroy(h)
		return
	}

	vkImage := img.VkImage
	c.Defer(SubmitHandle{}, func() {
		if c.allocator != nil {
			c.allocator.FreeImage(vkImage)
		} else {
			vk.DestroyImage(device, vkImage, nil)
		}
	})

	c.images.Destroy(h)
}

// CreateImage adopts an already-allocated VkImage into the shared handle
// pool. Memory allocation itself is the external Allocator collaborator's
// responsibility (spec.md §1 names GPU memory allocators as an external
// collaborator, not part of this core).
func (c *Context) CreateImage(desc vkimage.Description) handle.Handle {
	img := vkimage.New(desc)
	return c.images.Create(img)
}
