//go:build linux

package context

import (
	"unsafe"

	vk "github.com/vulkan-go/vulkan"

	"github.com/xanderbert/eos/internal/vkutil"
)

func platformSurfaceExtensions() []string {
	return []string{"VK_KHR_xlib_surface", "VK_KHR_wayland_surface"}
}

// createSurface mirrors vulkanClasses.cpp's Xlib/Wayland branch selection
// (vulkanClasses.cpp:1167-1196), gated the same way the original gates it:
// on the presence of a Wayland display handle, falling back to Xlib
// otherwise since that is what the examples' windowing library (GLFW)
// hands back on most Linux desktops.
func (c *Context) createSurface(window WindowHandle) {
	if window.WaylandDisplay != 0 {
		c.createWaylandSurface(window)
		return
	}

	createInfo := vk.XlibSurfaceCreateInfo{
		SType:  vk.StructureTypeXlibSurfaceCreateInfo,
		Dpy:    (*vk.XlibDisplay)(unsafe.Pointer(window.X11Display)),
		Window: vk.XlibWindow(window.X11Window),
	}

	var surface vk.Surface
	vkutil.Check(vk.CreateXlibSurface(c.instance, &createInfo, nil, &surface), "vkCreateXlibSurfaceKHR")
	c.surface = surface
}

func (c *Context) createWaylandSurface(window WindowHandle) {
	createInfo := vk.WaylandSurfaceCreateInfo{
		SType:   vk.StructureTypeWaylandSurfaceCreateInfo,
		Display: (*vk.WaylandDisplay)(unsafe.Pointer(window.WaylandDisplay)),
		Surface: (*vk.WaylandSurface)(unsafe.Pointer(window.WaylandSurface)),
	}

	var surface vk.Surface
	vkutil.Check(vk.CreateWaylandSurface(c.instance, &createInfo, nil, &surface), "vkCreateWaylandSurfaceKHR")
	c.surface = surface
}
