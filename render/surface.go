package render

import (
	"image"
	"image/color"
)

// Surface is the pixel sink the renderers draw into. Coordinates are in the
// image's block grid; implementations scale each block to zoom×zoom pixels
// and clip writes that fall outside the image.
type Surface interface {
	WidthPx() int
	HeightPx() int
	PutBlock(blockX, blockZ int, c ARGB)
}

// ImageSurface is a Surface backed by an in-memory NRGBA image. It is not
// safe for concurrent writes.
type ImageSurface struct {
	img  *image.NRGBA
	zoom int
}

// NewImageSurface allocates a surface of widthBlocks×heightBlocks blocks at
// the given zoom. All pixels start fully transparent.
func NewImageSurface(widthBlocks, heightBlocks, zoom int) *ImageSurface {
	return &ImageSurface{
		img:  image.NewNRGBA(image.Rect(0, 0, widthBlocks*zoom, heightBlocks*zoom)),
		zoom: zoom,
	}
}

func (s *ImageSurface) WidthPx() int  { return s.img.Rect.Dx() }
func (s *ImageSurface) HeightPx() int { return s.img.Rect.Dy() }

// PutBlock fills the zoom×zoom rectangle for one block. Chunks are rendered
// whole even when only partly on the image, so out-of-range writes are
// silently clipped.
func (s *ImageSurface) PutBlock(blockX, blockZ int, c ARGB) {
	px := color.NRGBA{R: c.Red(), G: c.Green(), B: c.Blue(), A: c.Alpha()}
	x0 := blockX * s.zoom
	z0 := blockZ * s.zoom
	for z := z0; z < z0+s.zoom; z++ {
		if z < 0 || z >= s.HeightPx() {
			continue
		}
		for x := x0; x < x0+s.zoom; x++ {
			if x < 0 || x >= s.WidthPx() {
				continue
			}
			s.img.SetNRGBA(x, z, px)
		}
	}
}

// Image returns the backing image.
func (s *ImageSurface) Image() *image.NRGBA {
	return s.img
}
