// Package vkimage wraps a Vulkan image together with its main view, the
// bookkeeping the context needs to defer view/framebuffer-view destruction,
// and the ImageType<->VkImageType/VkImageViewType conversion tables.
// Generalized from celer-vkg's image.go/imageview.go against
// vulkanClasses.cpp:83-158, which builds every image (including swapchain
// images, which it adopts rather than allocates) through the same
// constructor and view-creation path.
package vkimage

import (
	vk "github.com/vulkan-go/vulkan"

	"github.com/xanderbert/eos/internal/vkutil"
)

// Type mirrors EOS::ImageType from vulkanClasses.cpp: the dimensionality
// and array-ness of an image, independent of its usage.
type Type int

const (
	Type1D Type = iota
	Type1DArray
	Type2D
	Type2DArray
	TypeCubeMap
	TypeCubeMapArray
	Type3D
	TypeSwapChain
)

// ToVkImageType mirrors VulkanImage::ToImageType (vulkanClasses.cpp:96-116).
func ToVkImageType(t Type) vk.ImageType {
	switch t {
	case Type1D, Type1DArray:
		return vk.ImageType1d
	case Type2D, Type2DArray, TypeCubeMap, TypeCubeMapArray, TypeSwapChain:
		return vk.ImageType2d
	case Type3D:
		return vk.ImageType3d
	default:
		return vk.ImageType(vk.MaxEnum)
	}
}

// ToVkImageViewType mirrors VulkanImage::ToImageViewType (vulkanClasses.cpp:118-141).
func ToVkImageViewType(t Type) vk.ImageViewType {
	switch t {
	case Type1D:
		return vk.ImageViewType1d
	case Type1DArray:
		return vk.ImageViewType1dArray
	case Type2D, TypeSwapChain:
		return vk.ImageViewType2d
	case Type2DArray:
		return vk.ImageViewType2dArray
	case TypeCubeMap:
		return vk.ImageViewTypeCube
	case TypeCubeMapArray:
		return vk.ImageViewTypeCubeArray
	case Type3D:
		return vk.ImageViewType3d
	default:
		return vk.ImageViewType(vk.MaxEnum)
	}
}

// Description configures New. Image is the raw handle: callers that
// allocate their own image (via an external Allocator) or adopt one they
// don't own (a swapchain image) both go through this same constructor,
// matching vulkanClasses.cpp's VulkanImage ctor which never allocates
// memory itself.
type Description struct {
	Device     vk.Device
	Image      vk.Image
	UsageFlags vk.ImageUsageFlags
	Extent     vk.Extent3D
	ImageType  Type
	Format     vk.Format
	Levels     uint32
	Layers     uint32
	DebugName  string
	IsOwning   bool // false for swapchain-adopted images
}

// Image is a Vulkan image plus its main view. New only ever creates the main
// view, matching the constructor in vulkanClasses.cpp; no code in this module
// creates StorageView or FramebufferViews, which stay empty unless a caller
// sets them. Destroy and Context.DestroyTexture release them when set.
type Image struct {
	Device     vk.Device
	VkImage    vk.Image
	MainView   vk.ImageView
	Format     vk.Format
	Extent     vk.Extent3D
	ImageType  Type
	Levels     uint32
	Layers     uint32
	IsOwning   bool
	HasStencil bool

	StorageView      vk.ImageView
	FramebufferViews []vk.ImageView
}

// New creates the main image view for an existing VkImage and wraps it.
// Grounded on vulkanClasses.cpp:83-158 (VulkanImage ctor + CreateImageView).
func New(desc Description) *Image {
	viewInfo := vk.ImageViewCreateInfo{
		SType:    vk.StructureTypeImageViewCreateInfo,
		Image:    desc.Image,
		ViewType: ToVkImageViewType(desc.ImageType),
		Format:   desc.Format,
		Components: vk.ComponentMapping{
			R: vk.ComponentSwizzleIdentity,
			G: vk.ComponentSwizzleIdentity,
			B: vk.ComponentSwizzleIdentity,
			A: vk.ComponentSwizzleIdentity,
		},
		SubresourceRange: vk.ImageSubresourceRange{
			AspectMask:     vk.ImageAspectFlags(vk.ImageAspectColorBit),
			BaseMipLevel:   0,
			LevelCount:     desc.Levels,
			BaseArrayLayer: 0,
			LayerCount:     desc.Layers,
		},
	}

	var view vk.ImageView
	vkutil.Check(vk.CreateImageView(desc.Device, &viewInfo, nil, &view), "vkCreateImageView")
	vkutil.SetDebugName(desc.Device, vk.ObjectTypeImageView, uintptr(view), desc.DebugName)
	vkutil.SetDebugName(desc.Device, vk.ObjectTypeImage, uintptr(desc.Image), desc.DebugName)

	return &Image{
		Device:     desc.Device,
		VkImage:    desc.Image,
		MainView:   view,
		Format:     desc.Format,
		Extent:     desc.Extent,
		ImageType:  desc.ImageType,
		Levels:     desc.Levels,
		Layers:     desc.Layers,
		IsOwning:   desc.IsOwning,
		HasStencil: hasStencilAspect(desc.Format),
	}
}

// hasStencilAspect reports whether format carries a stencil plane.
// vulkanClasses.cpp:42 consults the equivalent check to decide whether a
// barrier needs the stencil aspect bit added; only the three combined
// depth+stencil formats qualify — depth-only formats like
// vk.FormatX8D24UnormPack32 and vk.FormatD32Sfloat do not.
func hasStencilAspect(format vk.Format) bool {
	switch format {
	case vk.FormatD16UnormS8Uint, vk.FormatD24UnormS8Uint, vk.FormatD32SfloatS8Uint:
		return true
	default:
		return false
	}
}

// IsSwapChainImage reports whether this image was adopted from a swapchain
// (i.e. does not own its underlying VkImage/memory).
func (img *Image) IsSwapChainImage() bool { return !img.IsOwning }

// Destroy releases the main view and any lazily created storage/framebuffer
// views. It never destroys the underlying VkImage when !IsOwning, mirroring
// vulkanClasses.cpp's VulkanContext::Destroy(TextureHandle) early-return for
// swapchain-owned images.
func (img *Image) Destroy() {
	if img.MainView != vk.NullImageView {
		vk.DestroyImageView(img.Device, img.MainView, nil)
	}
	if img.StorageView != vk.NullImageView {
		vk.DestroyImageView(img.Device, img.StorageView, nil)
	}
	for _, v := range img.FramebufferViews {
		if v != vk.NullImageView {
			vk.DestroyImageView(img.Device, v, nil)
		}
	}
	if img.IsOwning && img.VkImage != vk.NullImage {
		vk.DestroyImage(img.Device, img.VkImage, nil)
	}
}
