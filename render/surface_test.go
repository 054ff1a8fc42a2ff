package render

import (
	"image/color"
	"testing"
)

func TestImageSurfaceSize(t *testing.T) {
	t.Parallel()
	surface := NewImageSurface(10, 4, 3)
	if surface.WidthPx() != 30 || surface.HeightPx() != 12 {
		t.Fatalf("got %dx%d", surface.WidthPx(), surface.HeightPx())
	}
}

func TestPutBlockZoom(t *testing.T) {
	t.Parallel()
	surface := NewImageSurface(2, 2, 3)
	surface.PutBlock(1, 1, 0xff102030)

	img := surface.Image()
	want := color.NRGBA{R: 0x10, G: 0x20, B: 0x30, A: 0xff}
	for z := 0; z < 6; z++ {
		for x := 0; x < 6; x++ {
			got := img.NRGBAAt(x, z)
			inside := x >= 3 && z >= 3
			if inside && got != want {
				t.Fatalf("pixel %d,%d: got %+v, want %+v", x, z, got, want)
			}
			if !inside && (got != color.NRGBA{}) {
				t.Fatalf("pixel %d,%d: got %+v, want untouched", x, z, got)
			}
		}
	}
}

func TestPutBlockClips(t *testing.T) {
	t.Parallel()
	surface := NewImageSurface(2, 2, 2)

	// Writes outside the image are dropped, not errors.
	surface.PutBlock(-1, 0, 0xffffffff)
	surface.PutBlock(0, -1, 0xffffffff)
	surface.PutBlock(2, 2, 0xffffffff)

	img := surface.Image()
	for i, b := range img.Pix {
		if b != 0 {
			t.Fatalf("pixel byte %d: got %d, want untouched image", i, b)
		}
	}
}

func TestPutBlockReachesEdge(t *testing.T) {
	t.Parallel()
	surface := NewImageSurface(1, 1, 4)

	// A block that ends on the image edge still fills its edge pixels.
	surface.PutBlock(0, 0, 0xff0000ff)
	got := surface.Image().NRGBAAt(3, 3)
	if (got != color.NRGBA{B: 0xff, A: 0xff}) {
		t.Fatalf("got %+v", got)
	}
}

func TestSemiTransparentPixels(t *testing.T) {
	t.Parallel()
	surface := NewImageSurface(1, 1, 1)
	surface.PutBlock(0, 0, 0x80ffeedd)

	got := surface.Image().NRGBAAt(0, 0)
	want := color.NRGBA{R: 0xff, G: 0xee, B: 0xdd, A: 0x80}
	if got != want {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}
