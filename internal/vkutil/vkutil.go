// Package vkutil holds the small set of helpers every other internal
// package needs to talk to github.com/vulkan-go/vulkan the same way:
// result checking, debug object naming, and the "wait forever" timeout
// constant spec.md §5 mandates for every blocking wait in this core.
package vkutil

import (
	"fmt"

	vk "github.com/vulkan-go/vulkan"
)

// MaxTimeout is passed to every blocking vkWaitFor.../vkWaitSemaphores call in this
// core. spec.md §5 "Cancellation / timeout: None" — waits are effectively
// infinite; the non-blocking fence polls (CommandPool.TryResetCommandBuffers
// and CommandPool.IsReady) use a literal zero timeout instead of this constant.
const MaxTimeout uint64 = ^uint64(0)

// Check panics with a DriverError if result is not vk.Success. Every GPU
// API call in this core is checked this way (spec.md §7.1): the source's
// VK_ASSERT macro has no direct Go analogue, so panic/recover at the
// Context.New boundary plays the same role.
func Check(result vk.Result, op string) {
	if result != vk.Success {
		panic(&DriverError{Op: op, Result: result})
	}
}

// CheckSwapchain accepts Success, Suboptimal, and ErrorOutOfDate — the
// three results spec.md §4.4 and §7.2 call "acceptable" for acquire and
// present. Anything else is fatal.
func CheckSwapchain(result vk.Result, op string) vk.Result {
	switch result {
	case vk.Success, vk.Suboptimal, vk.ErrorOutOfDate:
		return result
	default:
		panic(&DriverError{Op: op, Result: result})
	}
}

// DriverError wraps a non-success VkResult. spec.md §7.1 treats every
// driver error as fatal; Context.New is the one place that recovers this
// panic and turns it into a returned error, so construction stays
// idiomatic Go while every other entry point keeps the "fatal assertion"
// contract spec.md §7.3 requires.
type DriverError struct {
	Op     string
	Result vk.Result
}

func (e *DriverError) Error() string {
	return fmt.Sprintf("eos: %s failed: VkResult(%d)", e.Op, int32(e.Result))
}

// Assertf panics with a contract-violation error if cond is false. Used
// for the fatal assertions spec.md §7.3 names: double-acquire, submitting
// a non-recording buffer, presenting a non-swapchain texture, re-taking an
// already-consumed last-submit semaphore.
func Assertf(cond bool, format string, args ...any) {
	if !cond {
		panic(&ContractError{Message: fmt.Sprintf(format, args...)})
	}
}

// ContractError marks a programmer error (spec.md §7.3), as opposed to a
// DriverError which marks a GPU/driver failure.
type ContractError struct{ Message string }

func (e *ContractError) Error() string { return "eos: contract violation: " + e.Message }

// SetDebugName tags a Vulkan object with a human-readable name through
// VK_EXT_debug_utils, mirroring vulkanClasses.cpp's
// VkDebug::SetDebugObjectName call sites. Silently a no-op if the
// extension function pointer wasn't loaded (validation layer disabled).
func SetDebugName(device vk.Device, objectType vk.ObjectType, handle uintptr, name string) {
	if name == "" || handle == 0 {
		return
	}
	nameInfo := vk.DebugUtilsObjectNameInfoEXT{
		SType:        vk.StructureTypeDebugUtilsObjectNameInfoExt,
		ObjectType:   objectType,
		ObjectHandle: uint64(handle),
		PObjectName:  name,
	}
	// vk.SetDebugUtilsObjectNameEXT returns ErrorExtensionNotPresent when
	// validation/debug-utils wasn't enabled; that's a capability downgrade
	// (spec.md §7.5), not a driver error, so it is intentionally ignored.
	_ = vk.SetDebugUtilsObjectNameEXT(device, &nameInfo)
}
