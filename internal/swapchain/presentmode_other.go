//go:build !linux && !windows

package swapchain

import vk "github.com/vulkan-go/vulkan"

// preferredPresentMode falls back to Fifo on platforms neither
// vulkanClasses.cpp branch names explicitly.
const preferredPresentMode = vk.PresentModeFifo
