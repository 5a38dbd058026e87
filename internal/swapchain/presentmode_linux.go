//go:build linux

package swapchain

import vk "github.com/vulkan-go/vulkan"

// preferredPresentMode mirrors vulkanClasses.cpp:179-183: Wayland/X11 builds
// prefer Immediate mode when the driver exposes it, falling back to Fifo.
const preferredPresentMode = vk.PresentModeImmediate
