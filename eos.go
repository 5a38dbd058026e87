// Package eos is a thin Vulkan 1.3 device-context and frame-submission
// layer: bring-up of an instance/device/swapchain, a fixed pool of command
// buffers with per-slot fences and semaphores, acquire/record/submit/present
// coordinated through a timeline semaphore, and deferred GPU-resource
// destruction. It does not own a render graph, pipeline layer, or
// descriptor abstraction — those are external collaborators built on top.
package eos

import (
	"log/slog"

	vk "github.com/vulkan-go/vulkan"

	"github.com/xanderbert/eos/internal/context"
	"github.com/xanderbert/eos/internal/handle"
	"github.com/xanderbert/eos/internal/swapchain"
	"github.com/xanderbert/eos/internal/sync2"
)

// HardwareDeviceType selects which physical device class to prefer.
// Software means "no preference."
type HardwareDeviceType = context.HardwareDeviceType

const (
	HardwareDeviceIntegrated = context.HardwareDeviceIntegrated
	HardwareDeviceDiscrete   = context.HardwareDeviceDiscrete
	HardwareDeviceVirtual    = context.HardwareDeviceVirtual
	HardwareDeviceCPU        = context.HardwareDeviceCPU
	HardwareDeviceSoftware   = context.HardwareDeviceSoftware
)

// ColorSpace selects the swapchain's preferred surface color space.
type ColorSpace = swapchain.ColorSpace

const (
	ColorSpaceSRGBNonlinear = swapchain.ColorSpaceSRGBNonlinear
	ColorSpaceSRGBLinear    = swapchain.ColorSpaceSRGBLinear
)

// ResourceState is the abstract role an image plays at a barrier boundary.
type ResourceState = sync2.ResourceState

const (
	Undefined              = sync2.Undefined
	General                = sync2.General
	ColorAttachment        = sync2.ColorAttachment
	DepthStencilAttachment = sync2.DepthStencilAttachment
	DepthStencilReadOnly   = sync2.DepthStencilReadOnly
	ShaderRead             = sync2.ShaderRead
	ShaderReadWrite        = sync2.ShaderReadWrite
	TransferSrc            = sync2.TransferSrc
	TransferDst            = sync2.TransferDst
	Present                = sync2.Present
)

// TextureHandle and ShaderModuleHandle are opaque references into the
// context's resource pools.
type (
	TextureHandle      = handle.Handle
	ShaderModuleHandle = handle.Handle
)

// SubmitHandle identifies one submission, for use with Wait/IsReady/Defer.
type SubmitHandle = context.SubmitHandle

// WindowHandle carries the platform-native window/display handles the
// context needs to create its surface.
type WindowHandle = context.WindowHandle

// ContextCreationDescription configures New.
type ContextCreationDescription struct {
	ApplicationName   string
	Window            WindowHandle
	PreferredHardware HardwareDeviceType
	EnableValidation  bool
	SwapchainWidth    uint32
	SwapchainHeight   uint32
	DesiredColorSpace ColorSpace
	Logger            *slog.Logger
	Allocator         context.Allocator

	// CreateSurface lets a windowing toolkit that already knows how to
	// create its own VkSurfaceKHR (e.g. GLFW's Window.CreateWindowSurface)
	// hand the surface to New directly, bypassing Window's raw native
	// handle fields.
	CreateSurface func(vk.Instance) (vk.Surface, error)
}

// IContext is the application-facing frame-submission surface a Context
// implements: acquire a command buffer, submit it, fetch the swapchain
// image, create shader modules, and destroy textures.
type IContext interface {
	AcquireCommandBuffer() *CommandBuffer
	Submit(cb *CommandBuffer, present TextureHandle) SubmitHandle
	GetSwapchainTexture() TextureHandle
	CreateShaderModule(spirv []uint32, pushConstantsSize uint32, debugName string) Holder[ShaderModuleHandle]
	DestroyTexture(h TextureHandle)
}

// Context is a fully brought-up Vulkan device context: instance, device,
// queues, swapchain, command pool, and resource pools.
type Context struct {
	inner *context.Context
}

var _ IContext = (*Context)(nil)

// New constructs a Context. Any driver error or contract violation
// encountered during bring-up is returned as an error rather than left to
// panic, so construction stays idiomatic Go even though every other entry
// point on Context keeps the fatal-assertion contract (spec.md §7.1, §7.3).
func New(desc ContextCreationDescription) (*Context, error) {
	if desc.Logger == nil {
		desc.Logger = Logger
	}

	inner, err := context.New(context.Description{
		ApplicationName:   desc.ApplicationName,
		Window:            desc.Window,
		PreferredHardware: desc.PreferredHardware,
		EnableValidation:  desc.EnableValidation,
		SwapchainWidth:    desc.SwapchainWidth,
		SwapchainHeight:   desc.SwapchainHeight,
		DesiredColorSpace: desc.DesiredColorSpace,
		Logger:            desc.Logger,
		Allocator:         desc.Allocator,
		CreateSurface:     desc.CreateSurface,
	})
	if err != nil {
		return nil, err
	}
	return &Context{inner: inner}, nil
}

// Destroy waits for the device to idle and releases every Vulkan object
// this Context owns.
func (c *Context) Destroy() { c.inner.Destroy() }

// HasSwapChain reports whether this context owns a live swapchain.
func (c *Context) HasSwapChain() bool { return c.inner.HasSwapChain() }

// IsHostVisibleMemorySingleHeap reports a UMA/APU-style single memory heap.
func (c *Context) IsHostVisibleMemorySingleHeap() bool {
	return c.inner.IsHostVisibleMemorySingleHeap()
}

// AcquireCommandBuffer draws a command buffer from the pool. Only one may
// be live at a time (spec.md §4.3).
func (c *Context) AcquireCommandBuffer() *CommandBuffer {
	return &CommandBuffer{inner: c.inner.AcquireCommandBuffer()}
}

// Submit ends recording on cb and submits it. present, if non-empty, must
// be a swapchain-owned texture already transitioned to the Present state;
// Submit will present it after the submission completes on the GPU.
func (c *Context) Submit(cb *CommandBuffer, present TextureHandle) SubmitHandle {
	return c.inner.Submit(cb.inner, present)
}

// GetSwapchainTexture waits for and returns this frame's swapchain image.
func (c *Context) GetSwapchainTexture() TextureHandle { return c.inner.GetSwapchainTexture() }

// CreateShaderModule creates a shader module from SPIR-V bytecode and
// returns a Holder that destroys it when released.
func (c *Context) CreateShaderModule(spirv []uint32, pushConstantsSize uint32, debugName string) Holder[ShaderModuleHandle] {
	h := c.inner.CreateShaderModule(context.ShaderInfo{
		SPIRV:             spirv,
		PushConstantsSize: pushConstantsSize,
		DebugName:         debugName,
	})
	return newHolder(h, c.inner.DestroyShaderModule)
}

// DestroyTexture releases a texture's views once its last recorded use
// retires. Idempotent.
func (c *Context) DestroyTexture(h TextureHandle) { c.inner.DestroyTexture(h) }

// Defer schedules fn to run once handle's submission retires.
func (c *Context) Defer(handle SubmitHandle, fn func()) { c.inner.Defer(handle, fn) }

// Wait blocks until handle's submission retires. The empty handle waits
// for the entire device to idle.
func (c *Context) Wait(handle SubmitHandle) { c.inner.Wait(handle) }

// IsReady reports whether handle's submission has retired.
func (c *Context) IsReady(handle SubmitHandle) bool { return c.inner.IsReady(handle) }
