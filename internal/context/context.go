// Package context implements the device-context core: instance and device
// bring-up, ownership of the swapchain, command pool, timeline semaphore,
// texture/shader-module handle pools, and the deferred-destruction queue.
// It is the Go analogue of vulkanClasses.cpp's VulkanContext (lines
// 732-1246), restructured the way celer-vkg splits instance/device/queue
// setup into small single-purpose files.
package context

import (
	"container/list"
	"fmt"
	"log/slog"

	vk "github.com/vulkan-go/vulkan"

	"github.com/xanderbert/eos/internal/cmdpool"
	"github.com/xanderbert/eos/internal/handle"
	"github.com/xanderbert/eos/internal/swapchain"
	"github.com/xanderbert/eos/internal/sync2"
	"github.com/xanderbert/eos/internal/vkimage"
	"github.com/xanderbert/eos/internal/vkutil"
)

// HardwareDeviceType mirrors EOS::HardwareDeviceType. Software means "no
// preference," matching vulkanClasses.cpp:1211.
type HardwareDeviceType int

const (
	HardwareDeviceIntegrated HardwareDeviceType = iota
	HardwareDeviceDiscrete
	HardwareDeviceVirtual
	HardwareDeviceCPU
	HardwareDeviceSoftware
)

func toHardwareDeviceType(t vk.PhysicalDeviceType) HardwareDeviceType {
	switch t {
	case vk.PhysicalDeviceTypeIntegratedGpu:
		return HardwareDeviceIntegrated
	case vk.PhysicalDeviceTypeDiscreteGpu:
		return HardwareDeviceDiscrete
	case vk.PhysicalDeviceTypeVirtualGpu:
		return HardwareDeviceVirtual
	case vk.PhysicalDeviceTypeCpu:
		return HardwareDeviceCPU
	default:
		return HardwareDeviceSoftware
	}
}

// Allocator is the external GPU-memory allocator collaborator: the source
// comments out VMA allocation calls in VulkanContext::Destroy pending a
// future integration point, so this core defines the seam without
// implementing a concrete allocator (spec.md §1 names allocators as a
// non-goal collaborator, not a component of the core itself).
type Allocator interface {
	AllocateImage(vk.Image) error
	FreeImage(vk.Image)
}

// ShaderModule pairs a live shader module with its declared push-constant
// budget, mirroring vulkanClasses.cpp's VulkanShaderModuleState.
type ShaderModule struct {
	Module            vk.ShaderModule
	PushConstantsSize uint32
}

type deferredTask struct {
	handle cmdpool.SubmitHandle
	fn     func()
}

// Description configures New.
type Description struct {
	ApplicationName   string
	Window            WindowHandle
	PreferredHardware HardwareDeviceType
	EnableValidation  bool
	SwapchainWidth    uint32
	SwapchainHeight   uint32
	DesiredColorSpace swapchain.ColorSpace
	Logger            *slog.Logger
	Allocator         Allocator

	// CreateSurface, when set, replaces the built-in platform surface_*.go
	// path: it is handed the freshly created instance and must return a
	// live VkSurfaceKHR. Windowing toolkits that already know how to create
	// their own surface (e.g. GLFW's CreateWindowSurface) should use this
	// instead of populating Window with raw native handles.
	CreateSurface func(vk.Instance) (vk.Surface, error)
}

// WindowHandle is the platform-native window/display handles createSurface
// needs. The caller populates it; the surface_<platform>.go build-tagged
// file reads it.
type WindowHandle struct {
	Win32HWND      uintptr
	Win32HInstance uintptr
	X11Window      uintptr
	X11Display     uintptr
	WaylandSurface uintptr
	WaylandDisplay uintptr
}

// Context owns every Vulkan object above the individual resource level:
// instance, debug messenger, surface, device, queues, swapchain, command
// pool, timeline semaphore, resource pools, and the deferred-destroy queue.
// Grounded on vulkanClasses.cpp's VulkanContext (lines 732-1246).
type Context struct {
	logger *slog.Logger

	instance       vk.Instance
	debugMessenger vk.DebugReportCallback
	surface        vk.Surface
	physicalDevice vk.PhysicalDevice
	device         vk.Device

	graphicsQueue       vk.Queue
	graphicsQueueFamily uint32

	swapChain   *swapchain.Swapchain
	timelineSem vk.Semaphore
	commandPool *cmdpool.CommandPool

	images        *handle.Pool[*vkimage.Image]
	shaderModules *handle.Pool[*ShaderModule]

	deferredTasks *list.List // of deferredTask

	allocator Allocator

	currentCommandBuffer *CommandBuffer

	validationEnabled bool
}

// New brings up a full Vulkan 1.3 device context in the order
// vulkanClasses.cpp's constructor does: instance, debug messenger, surface,
// physical device selection, logical device + queues, swapchain, timeline
// semaphore (seeded at numImages-1), command pool.
func New(desc Description) (ctx *Context, err error) {
	defer func() {
		if r := recover(); r != nil {
			if de, ok := r.(error); ok {
				err = de
				return
			}
			err = fmt.Errorf("eos: context construction panicked: %v", r)
		}
	}()

	if desc.Logger == nil {
		desc.Logger = slog.Default()
	}
	if desc.SwapchainWidth == 0 {
		desc.SwapchainWidth = 100
	}
	if desc.SwapchainHeight == 0 {
		desc.SwapchainHeight = 80
	}

	vkutil.Check(vk.Init(), "vk.Init")

	ctx = &Context{
		logger:        desc.Logger,
		images:        handle.NewPool[*vkimage.Image](),
		shaderModules: handle.NewPool[*ShaderModule](),
		deferredTasks: list.New(),
		allocator:     desc.Allocator,
	}

	ctx.createInstance(desc.ApplicationName, desc.EnableValidation)
	ctx.setupDebugMessenger()

	if desc.CreateSurface != nil {
		surface, err := desc.CreateSurface(ctx.instance)
		vkutil.Assertf(err == nil, "external surface creation failed: %v", err)
		ctx.surface = surface
	} else {
		ctx.createSurface(desc.Window)
	}

	deviceDescs := ctx.enumerateHardwareDevices(desc.PreferredHardware)
	ctx.physicalDevice = selectHardwareDevice(deviceDescs)

	ctx.createLogicalDevice()

	ctx.swapChain = swapchain.New(swapchain.Description{
		Device:            ctx.device,
		PhysicalDevice:    ctx.physicalDevice,
		Surface:           ctx.surface,
		PresentQueue:      ctx.graphicsQueue,
		QueueFamily:       ctx.graphicsQueueFamily,
		Width:             desc.SwapchainWidth,
		Height:            desc.SwapchainHeight,
		DesiredColorSpace: desc.DesiredColorSpace,
		Images:            ctx.images,
	})

	ctx.timelineSem = sync2.NewTimelineSemaphore(ctx.device, uint64(ctx.swapChain.NumImages()-1), "Semaphore: TimelineSemaphore")

	ctx.commandPool = cmdpool.New(ctx.device, ctx.graphicsQueueFamily, ctx.logger)

	return ctx, nil
}

// Destroy waits for the device to idle, then tears everything down in
// exactly the reverse order vulkanClasses.cpp's destructor does: swapchain,
// timeline semaphore, resource pools (logging any leaks), deferred tasks
// (drained fully, blocking), command pool, surface, device, debug
// messenger, instance.
func (c *Context) Destroy() {
	vk.DeviceWaitIdle(c.device)

	c.swapChain.Destroy(c.images)
	sync2.DestroySemaphore(c.device, c.timelineSem)

	if n := c.images.NumObjects(); n > 0 {
		c.logger.Error("leaked textures", "count", n)
	}
	c.images.Clear(func(_ handle.Handle, img *vkimage.Image) { img.Destroy() })

	if n := c.shaderModules.NumObjects(); n > 0 {
		c.logger.Error("leaked shader modules", "count", n)
	}
	c.shaderModules.Clear(func(_ handle.Handle, sm *ShaderModule) {
		vk.DestroyShaderModule(c.device, sm.Module, nil)
	})

	c.waitOnDeferredTasks()

	c.commandPool.Destroy()

	vk.DestroySurface(c.instance, c.surface, nil)
	vk.DestroyDevice(c.device, nil)
	if c.debugMessenger != vk.NullDebugReportCallback {
		vk.DestroyDebugReportCallback(c.instance, c.debugMessenger, nil)
	}
	vk.DestroyInstance(c.instance, nil)
}

// HasSwapChain reports whether this context owns a live swapchain.
func (c *Context) HasSwapChain() bool { return c.swapChain != nil }

// IsHostVisibleMemorySingleHeap reports whether the device exposes a single
// memory heap that is both host-visible and device-local (a UMA/APU
// signature). Grounded on vulkanClasses.cpp:1231-1246.
func (c *Context) IsHostVisibleMemorySingleHeap() bool {
	var props vk.PhysicalDeviceMemoryProperties
	vk.GetPhysicalDeviceMemoryProperties(c.physicalDevice, &props)
	props.Deref()

	if props.MemoryHeapCount != 1 {
		return false
	}

	const want = vk.MemoryPropertyFlags(vk.MemoryPropertyHostVisibleBit) | vk.MemoryPropertyFlags(vk.MemoryPropertyDeviceLocalBit)

	for i := uint32(0); i < props.MemoryTypeCount; i++ {
		mt := props.MemoryTypes[i]
		mt.Deref()
		if mt.PropertyFlags&want == want {
			return true
		}
	}
	return false
}
