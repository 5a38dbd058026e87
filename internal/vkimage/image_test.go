package vkimage

import (
	"testing"

	vk "github.com/vulkan-go/vulkan"
)

func TestToVkImageTypeCollapsesArraysAndCubes(t *testing.T) {
	cases := map[Type]vk.ImageType{
		Type1D:           vk.ImageType1d,
		Type1DArray:      vk.ImageType1d,
		Type2D:           vk.ImageType2d,
		Type2DArray:      vk.ImageType2d,
		TypeCubeMap:      vk.ImageType2d,
		TypeCubeMapArray: vk.ImageType2d,
		TypeSwapChain:    vk.ImageType2d,
		Type3D:           vk.ImageType3d,
	}
	for typ, want := range cases {
		if got := ToVkImageType(typ); got != want {
			t.Errorf("ToVkImageType(%v) = %v, want %v", typ, got, want)
		}
	}
}

func TestToVkImageViewTypeDistinguishesEveryType(t *testing.T) {
	cases := map[Type]vk.ImageViewType{
		Type1D:           vk.ImageViewType1d,
		Type1DArray:      vk.ImageViewType1dArray,
		Type2D:           vk.ImageViewType2d,
		Type2DArray:      vk.ImageViewType2dArray,
		TypeCubeMap:      vk.ImageViewTypeCube,
		TypeCubeMapArray: vk.ImageViewTypeCubeArray,
		Type3D:           vk.ImageViewType3d,
		TypeSwapChain:    vk.ImageViewType2d,
	}
	for typ, want := range cases {
		if got := ToVkImageViewType(typ); got != want {
			t.Errorf("ToVkImageViewType(%v) = %v, want %v", typ, got, want)
		}
	}
}

func TestHasStencilAspect(t *testing.T) {
	stencilFormats := []vk.Format{
		vk.FormatD16UnormS8Uint, vk.FormatD24UnormS8Uint, vk.FormatD32SfloatS8Uint,
	}
	for _, f := range stencilFormats {
		if !hasStencilAspect(f) {
			t.Errorf("format %v should carry a stencil plane", f)
		}
	}

	depthOnlyFormats := []vk.Format{
		vk.FormatD16Unorm, vk.FormatD32Sfloat, vk.FormatX8D24UnormPack32, vk.FormatR8g8b8a8Unorm,
	}
	for _, f := range depthOnlyFormats {
		if hasStencilAspect(f) {
			t.Errorf("format %v has no stencil plane and must not report one", f)
		}
	}
}

func TestIsSwapChainImage(t *testing.T) {
	owning := &Image{IsOwning: true}
	if owning.IsSwapChainImage() {
		t.Error("an owning image must not report as swapchain-adopted")
	}
	adopted := &Image{IsOwning: false}
	if !adopted.IsSwapChainImage() {
		t.Error("a non-owning image must report as swapchain-adopted")
	}
}
