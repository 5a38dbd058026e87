package eos

import "github.com/xanderbert/eos/internal/vkutil"

// DriverError wraps a non-success VkResult from the underlying Vulkan
// driver. Every entry point in this package that talks to the driver
// treats a non-success result as fatal (spec.md §7.1); Context.New is the
// only place that converts it into a returned error instead of a panic.
type DriverError = vkutil.DriverError

// ContractError marks a violation of this package's usage contract — for
// example acquiring a second command buffer before submitting the first,
// or presenting a texture that didn't come from the swapchain (spec.md
// §7.3). Contract violations panic; they are programmer errors, not
// something a caller should recover from and retry.
type ContractError = vkutil.ContractError
