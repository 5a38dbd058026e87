// Package swapchain owns the VkSwapchainKHR, its per-image acquire
// semaphores, and the timeline-wait-value bookkeeping that lets the context
// wait for a swapchain image's prior frame to retire before reusing it.
// Grounded on vulkanClasses.cpp's VulkanSwapChain (lines 161-391) and
// celer-vkg's swapchain.go for the surrounding Go API shape.
package swapchain

import (
	"fmt"

	vk "github.com/vulkan-go/vulkan"

	"github.com/xanderbert/eos/internal/handle"
	"github.com/xanderbert/eos/internal/sync2"
	"github.com/xanderbert/eos/internal/vkimage"
	"github.com/xanderbert/eos/internal/vkutil"
)

// MaxImages caps the swapchain image count regardless of what the driver
// reports, matching vulkanClasses.cpp:233's std::min(..., MAX_IMAGES) clamp.
const MaxImages = 8

// ColorSpace selects the surface format/color-space pair New prefers.
type ColorSpace int

const (
	ColorSpaceSRGBNonlinear ColorSpace = iota
	ColorSpaceSRGBLinear
)

// PresentSemaphoreWaiter is the subset of the command pool the swapchain
// needs when handing off a freshly acquired image's semaphore into a
// submission's wait list (vulkanClasses.cpp:360's CommandPool->WaitSemaphore).
type PresentSemaphoreWaiter interface {
	WaitSemaphore(vk.Semaphore)
}

// Swapchain owns the presentable images and the per-image timeline values
// the context must reach before it may reacquire that image.
type Swapchain struct {
	device       vk.Device
	physical     vk.PhysicalDevice
	surface      vk.Surface
	presentQueue vk.Queue
	timeline     vk.Semaphore

	VkSwapchain vk.SwapchainKHR
	Format      vk.SurfaceFormatKHR
	Extent      vk.Extent2D

	numImages          uint32
	acquireSemaphores  []vk.Semaphore
	textures           []handle.Handle
	TimelineWaitValues []uint64

	// CurrentImageIndex is the index of the most recently acquired image.
	// waitAndAcquireNext reads TimelineWaitValues and acquireSemaphores at
	// this index before the acquire overwrites it, so both belong to the
	// previously acquired image; they match the incoming image only when the
	// driver hands out images in round-robin order.
	CurrentImageIndex uint32
	CurrentFrame      uint64
	getNextImage      bool
}

// Description configures New.
type Description struct {
	Device            vk.Device
	PhysicalDevice    vk.PhysicalDevice
	Surface           vk.Surface
	PresentQueue      vk.Queue
	QueueFamily       uint32
	Width             uint32
	Height            uint32
	DesiredColorSpace ColorSpace
	TimelineSemaphore vk.Semaphore
	Images            *handle.Pool[*vkimage.Image]
}

// New creates the swapchain, one image + acquire semaphore per presentable
// image, and registers each image in the shared image pool so it can be
// addressed through the same TextureHandle namespace as any other image.
// Grounded on vulkanClasses.cpp:161-270.
func New(desc Description) *Swapchain {
	formats := querySurfaceFormats(desc.PhysicalDevice, desc.Surface)
	presentModes := queryPresentModes(desc.PhysicalDevice, desc.Surface)
	caps := queryCapabilities(desc.PhysicalDevice, desc.Surface)

	surfaceFormat := selectSurfaceFormat(formats, desc.DesiredColorSpace)
	presentMode := selectPresentMode(presentModes)

	var supportsPresent vk.Bool32
	vkutil.Check(vk.GetPhysicalDeviceSurfaceSupport(desc.PhysicalDevice, desc.QueueFamily, desc.Surface, &supportsPresent), "vkGetPhysicalDeviceSurfaceSupportKHR")
	vkutil.Assertf(supportsPresent.B(), "queue family %d does not support presentation", desc.QueueFamily)

	var formatProps vk.FormatProperties
	vk.GetPhysicalDeviceFormatProperties(desc.PhysicalDevice, surfaceFormat.Format, &formatProps)
	formatProps.Deref()

	usage := vk.ImageUsageFlags(vk.ImageUsageColorAttachmentBit) |
		vk.ImageUsageFlags(vk.ImageUsageTransferDstBit) |
		vk.ImageUsageFlags(vk.ImageUsageTransferSrcBit)
	if caps.SupportedUsageFlags&vk.ImageUsageFlags(vk.ImageUsageStorageBit) != 0 &&
		formatProps.OptimalTilingFeatures&vk.FormatFeatureFlags(vk.FormatFeatureStorageImageBit) != 0 {
		usage |= vk.ImageUsageFlags(vk.ImageUsageStorageBit)
	}

	compositeAlpha := vk.CompositeAlphaInheritBit
	if caps.SupportedCompositeAlpha&vk.CompositeAlphaFlags(vk.CompositeAlphaOpaqueBit) != 0 {
		compositeAlpha = vk.CompositeAlphaOpaqueBit
	}

	minImageCount := caps.MinImageCount
	if minImageCount > MaxImages {
		minImageCount = MaxImages
	}

	createInfo := vk.SwapchainCreateInfo{
		SType:                 vk.StructureTypeSwapchainCreateInfo,
		Surface:               desc.Surface,
		MinImageCount:         minImageCount,
		ImageFormat:           surfaceFormat.Format,
		ImageColorSpace:       surfaceFormat.ColorSpace,
		ImageExtent:           vk.Extent2D{Width: desc.Width, Height: desc.Height},
		ImageArrayLayers:      1,
		ImageUsage:            usage,
		ImageSharingMode:      vk.SharingModeExclusive,
		QueueFamilyIndexCount: 1,
		PQueueFamilyIndices:   []uint32{desc.QueueFamily},
		PreTransform:          caps.CurrentTransform,
		CompositeAlpha:        vk.CompositeAlphaFlagBits(compositeAlpha),
		PresentMode:           presentMode,
		Clipped:               vk.True,
	}

	var vkSwapchain vk.SwapchainKHR
	vkutil.Check(vk.CreateSwapchain(desc.Device, &createInfo, nil, &vkSwapchain), "vkCreateSwapchainKHR")

	var count uint32
	vkutil.Check(vk.GetSwapchainImages(desc.Device, vkSwapchain, &count, nil), "vkGetSwapchainImagesKHR(count)")
	if count > MaxImages {
		count = MaxImages
	}
	rawImages := make([]vk.Image, count)
	// Incomplete only means the driver created more than MaxImages images;
	// the first count of them are used.
	if result := vk.GetSwapchainImages(desc.Device, vkSwapchain, &count, rawImages); result != vk.Incomplete {
		vkutil.Check(result, "vkGetSwapchainImagesKHR")
	}
	vkutil.Assertf(count > 0, "swapchain reported zero images")

	sc := &Swapchain{
		device:             desc.Device,
		physical:           desc.PhysicalDevice,
		surface:            desc.Surface,
		presentQueue:       desc.PresentQueue,
		timeline:           desc.TimelineSemaphore,
		VkSwapchain:        vkSwapchain,
		Format:             surfaceFormat,
		Extent:             vk.Extent2D{Width: desc.Width, Height: desc.Height},
		numImages:          count,
		acquireSemaphores:  make([]vk.Semaphore, 0, count),
		textures:           make([]handle.Handle, 0, count),
		TimelineWaitValues: make([]uint64, count),
	}

	for i := uint32(0); i < count; i++ {
		semaphore := sync2.NewBinarySemaphore(desc.Device, fmt.Sprintf("SwapChain Acquire Semaphore: %d", i))
		sc.acquireSemaphores = append(sc.acquireSemaphores, semaphore)

		img := vkimage.New(vkimage.Description{
			Device:     desc.Device,
			Image:      rawImages[i],
			UsageFlags: usage,
			Extent:     vk.Extent3D{Width: desc.Width, Height: desc.Height, Depth: 1},
			ImageType:  vkimage.TypeSwapChain,
			Format:     surfaceFormat.Format,
			Levels:     1,
			Layers:     1,
			DebugName:  fmt.Sprintf("SwapChain Image: %d", i),
			IsOwning:   false,
		})

		sc.textures = append(sc.textures, desc.Images.Create(img))
	}

	sc.getNextImage = true

	return sc
}

// selectSurfaceFormat mirrors VulkanSwapChain::GetSwapChainFormat
// (vulkanClasses.cpp:364-391) exactly, including its three-tier fallback.
func selectSurfaceFormat(available []vk.SurfaceFormatKHR, desired ColorSpace) vk.SurfaceFormatKHR {
	preferred := vk.SurfaceFormatKHR{Format: vk.FormatR8g8b8a8Srgb, ColorSpace: vk.ColorSpaceSrgbNonlinear}
	if desired == ColorSpaceSRGBLinear {
		preferred = vk.SurfaceFormatKHR{Format: vk.FormatR8g8b8a8Unorm, ColorSpace: vk.ColorSpaceBt709LinearExt}
	}

	for _, f := range available {
		if f.Format == preferred.Format && f.ColorSpace == preferred.ColorSpace {
			return f
		}
	}
	for _, f := range available {
		if f.Format == preferred.Format {
			return f
		}
	}
	return available[0]
}

// selectPresentMode mirrors vulkanClasses.cpp:174-189's platform-conditioned
// preference, expressed as a build-tag-selected preferredPresentMode
// (presentmode_*.go) rather than #ifdef.
func selectPresentMode(available []vk.PresentModeKHR) vk.PresentModeKHR {
	for _, m := range available {
		if m == preferredPresentMode {
			return m
		}
	}
	return vk.PresentModeFifo
}

func querySurfaceFormats(pd vk.PhysicalDevice, surface vk.Surface) []vk.SurfaceFormatKHR {
	var count uint32
	vkutil.Check(vk.GetPhysicalDeviceSurfaceFormats(pd, surface, &count, nil), "vkGetPhysicalDeviceSurfaceFormatsKHR(count)")
	formats := make([]vk.SurfaceFormatKHR, count)
	vkutil.Check(vk.GetPhysicalDeviceSurfaceFormats(pd, surface, &count, formats), "vkGetPhysicalDeviceSurfaceFormatsKHR")
	for i := range formats {
		formats[i].Deref()
	}
	return formats
}

func queryPresentModes(pd vk.PhysicalDevice, surface vk.Surface) []vk.PresentModeKHR {
	var count uint32
	vkutil.Check(vk.GetPhysicalDeviceSurfacePresentModes(pd, surface, &count, nil), "vkGetPhysicalDeviceSurfacePresentModesKHR(count)")
	modes := make([]vk.PresentModeKHR, count)
	vkutil.Check(vk.GetPhysicalDeviceSurfacePresentModes(pd, surface, &count, modes), "vkGetPhysicalDeviceSurfacePresentModesKHR")
	return modes
}

func queryCapabilities(pd vk.PhysicalDevice, surface vk.Surface) vk.SurfaceCapabilities {
	var caps vk.SurfaceCapabilities
	vkutil.Check(vk.GetPhysicalDeviceSurfaceCapabilities(pd, surface, &caps), "vkGetPhysicalDeviceSurfaceCapabilitiesKHR")
	caps.Deref()
	return caps
}

// Textures returns a copy of the handles of every image owned by this
// swapchain, indexed by swapchain image index.
func (sc *Swapchain) Textures() []handle.Handle { return append([]handle.Handle(nil), sc.textures...) }

// NumImages returns the (already MaxImages-clamped) presentable image count.
func (sc *Swapchain) NumImages() uint32 { return sc.numImages }

// CurrentTexture waits for the next image to become available (if needed)
// and returns its handle. Grounded on GetCurrentTexture/GetAndWaitOnNextImage
// (vulkanClasses.cpp:332-362).
func (sc *Swapchain) CurrentTexture(waiter PresentSemaphoreWaiter) handle.Handle {
	sc.waitAndAcquireNext(waiter)
	vkutil.Assertf(sc.CurrentImageIndex < sc.numImages, "current image index out of range")
	return sc.textures[sc.CurrentImageIndex]
}

func (sc *Swapchain) waitAndAcquireNext(waiter PresentSemaphoreWaiter) {
	if !sc.getNextImage {
		return
	}

	waitInfo := vk.SemaphoreWaitInfo{
		SType:          vk.StructureTypeSemaphoreWaitInfo,
		SemaphoreCount: 1,
		PSemaphores:    []vk.Semaphore{sc.timeline},
		PValues:        []uint64{sc.TimelineWaitValues[sc.CurrentImageIndex]},
	}
	vkutil.Check(vk.WaitSemaphores(sc.device, &waitInfo, vkutil.MaxTimeout), "vkWaitSemaphores")

	acquireSemaphore := sc.acquireSemaphores[sc.CurrentImageIndex]
	result := vk.AcquireNextImage(sc.device, sc.VkSwapchain, vkutil.MaxTimeout, acquireSemaphore, vk.NullFence, &sc.CurrentImageIndex)
	vkutil.CheckSwapchain(result, "vkAcquireNextImageKHR")

	sc.getNextImage = false
	waiter.WaitSemaphore(acquireSemaphore)
}

// Present submits a present op waiting on waitSemaphore, raises the flag so
// the next CurrentTexture call reacquires, and advances CurrentFrame.
// Grounded on vulkanClasses.cpp:291-308.
func (sc *Swapchain) Present(waitSemaphore vk.Semaphore) {
	presentInfo := vk.PresentInfo{
		SType:              vk.StructureTypePresentInfo,
		WaitSemaphoreCount: 1,
		PWaitSemaphores:    []vk.Semaphore{waitSemaphore},
		SwapchainCount:     1,
		PSwapchains:        []vk.Swapchain{sc.VkSwapchain},
		PImageIndices:      []uint32{sc.CurrentImageIndex},
	}
	result := vk.QueuePresent(sc.presentQueue, &presentInfo)
	vkutil.CheckSwapchain(result, "vkQueuePresentKHR")

	sc.getNextImage = true
	sc.CurrentFrame++
}

// Destroy tears down every texture this swapchain registered in images,
// then destroys the VkSwapchainKHR, then the acquire semaphores — the same
// order as vulkanClasses.cpp's ~VulkanSwapChain (lines 272-289), which erases
// each swapchain texture's pool entry before calling vkDestroySwapchainKHR.
func (sc *Swapchain) Destroy(images *handle.Pool[*vkimage.Image]) {
	for _, h := range sc.textures {
		if img, ok := images.Get(h); ok {
			img.Destroy()
		}
		images.Destroy(h)
	}

	vk.DestroySwapchain(sc.device, sc.VkSwapchain, nil)
	for _, s := range sc.acquireSemaphores {
		vk.DestroySemaphore(sc.device, s, nil)
	}
}
