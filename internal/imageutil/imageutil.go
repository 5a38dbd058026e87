// Package imageutil decodes on-disk images into the tightly packed RGBA
// byte layout a staging upload expects. It is the CPU-side half of the
// teacher's textureutil.go; the GPU-side half (staging buffer allocation,
// layout transitions, the copy command) is not part of this module, since
// that half touches the allocator collaborator this core deliberately does
// not own.
package imageutil

import (
	"fmt"
	"image"
	"image/draw"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"
)

// PixelData is a decoded image ready to copy into a staging buffer: tightly
// packed, four bytes per pixel, row-major, no padding between rows.
type PixelData struct {
	Width  uint32
	Height uint32
	Pixels []byte // len == Width*Height*4, RGBA8 unorm
}

// DecodeFile opens and decodes filename, converting it to RGBA8 regardless
// of its source encoding or color model.
func DecodeFile(filename string) (PixelData, error) {
	f, err := os.Open(filename)
	if err != nil {
		return PixelData{}, err
	}
	defer f.Close()
	return Decode(f)
}

// Decode reads and decodes an image from r, converting it to RGBA8.
func Decode(r io.Reader) (PixelData, error) {
	src, _, err := image.Decode(r)
	if err != nil {
		return PixelData{}, fmt.Errorf("imageutil: decode: %w", err)
	}
	return FromImage(src), nil
}

// FromImage converts an already-decoded image.Image to tightly packed RGBA8
// bytes, regardless of the source's native color model.
func FromImage(src image.Image) PixelData {
	bounds := src.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	rgba := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(rgba, rgba.Bounds(), src, bounds.Min, draw.Src)

	// image.RGBA guarantees Stride == 4*width for a fresh image created by
	// NewRGBA, so Pix is already the tightly packed layout callers want.
	return PixelData{
		Width:  uint32(width),
		Height: uint32(height),
		Pixels: rgba.Pix,
	}
}
