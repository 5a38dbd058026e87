package swapchain

import (
	"testing"

	vk "github.com/vulkan-go/vulkan"
)

func TestSelectSurfaceFormatPrefersExactMatch(t *testing.T) {
	available := []vk.SurfaceFormatKHR{
		{Format: vk.FormatB8g8r8a8Unorm, ColorSpace: vk.ColorSpaceSrgbNonlinear},
		{Format: vk.FormatR8g8b8a8Srgb, ColorSpace: vk.ColorSpaceSrgbNonlinear},
	}
	got := selectSurfaceFormat(available, ColorSpaceSRGBNonlinear)
	want := vk.SurfaceFormatKHR{Format: vk.FormatR8g8b8a8Srgb, ColorSpace: vk.ColorSpaceSrgbNonlinear}
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestSelectSurfaceFormatFallsBackToFormatOnlyMatch(t *testing.T) {
	available := []vk.SurfaceFormatKHR{
		{Format: vk.FormatR8g8b8a8Srgb, ColorSpace: vk.ColorSpaceDisplayP3NonlinearExt},
	}
	got := selectSurfaceFormat(available, ColorSpaceSRGBNonlinear)
	if got.Format != vk.FormatR8g8b8a8Srgb {
		t.Errorf("got format %v, want FormatR8g8b8a8Srgb", got.Format)
	}
}

func TestSelectSurfaceFormatFallsBackToFirstAvailable(t *testing.T) {
	available := []vk.SurfaceFormatKHR{
		{Format: vk.FormatB8g8r8a8Unorm, ColorSpace: vk.ColorSpaceSrgbNonlinear},
	}
	got := selectSurfaceFormat(available, ColorSpaceSRGBNonlinear)
	if got != available[0] {
		t.Errorf("got %+v, want fallback to first available %+v", got, available[0])
	}
}

func TestSelectPresentModeFallsBackToFifo(t *testing.T) {
	// preferredPresentMode is never in this list, so the function must fall
	// back to FIFO, the only present mode Vulkan guarantees is always
	// available.
	available := []vk.PresentModeKHR{vk.PresentModeFifoRelaxed}
	if got := selectPresentMode(available); got != vk.PresentModeFifo {
		t.Errorf("got %v, want PresentModeFifo", got)
	}
}
