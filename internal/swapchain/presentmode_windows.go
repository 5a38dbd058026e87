//go:build windows

package swapchain

import vk "github.com/vulkan-go/vulkan"

// preferredPresentMode mirrors vulkanClasses.cpp:184-188: Win32 builds
// prefer Mailbox mode when the driver exposes it, falling back to Fifo.
const preferredPresentMode = vk.PresentModeMailbox
