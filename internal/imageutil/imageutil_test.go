package imageutil

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"
)

func encodeTestPNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.NRGBA{R: uint8(x), G: uint8(y), B: 0, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode test png: %v", err)
	}
	return buf.Bytes()
}

func TestDecodeProducesTightlyPackedRGBA(t *testing.T) {
	const w, h = 4, 3
	data := encodeTestPNG(t, w, h)

	px, err := Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if px.Width != w || px.Height != h {
		t.Fatalf("got %dx%d, want %dx%d", px.Width, px.Height, w, h)
	}
	if len(px.Pixels) != w*h*4 {
		t.Fatalf("got %d bytes, want %d", len(px.Pixels), w*h*4)
	}
	// spot-check the pixel at (2,1): R=2, G=1, B=0, A=255
	off := (1*w + 2) * 4
	got := px.Pixels[off : off+4]
	want := []byte{2, 1, 0, 255}
	if !bytes.Equal(got, want) {
		t.Fatalf("pixel(2,1) = %v, want %v", got, want)
	}
}

func TestDecodeInvalidData(t *testing.T) {
	if _, err := Decode(bytes.NewReader([]byte("not an image"))); err == nil {
		t.Fatal("expected an error decoding garbage input")
	}
}
