//go:build windows

package context

import (
	vk "github.com/vulkan-go/vulkan"

	"github.com/xanderbert/eos/internal/vkutil"
)

func platformSurfaceExtensions() []string { return []string{"VK_KHR_win32_surface"} }

// createSurface mirrors vulkanClasses.cpp's Win32 branch of CreateSurface.
func (c *Context) createSurface(window WindowHandle) {
	createInfo := vk.Win32SurfaceCreateInfo{
		SType:     vk.StructureTypeWin32SurfaceCreateInfo,
		Hinstance: window.Win32HInstance,
		Hwnd:      window.Win32HWND,
	}

	var surface vk.Surface
	vkutil.Check(vk.CreateWin32Surface(c.instance, &createInfo, nil, &surface), "vkCreateWin32SurfaceKHR")
	c.surface = surface
}
