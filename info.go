package main

import (
	"image"
	"image/color"
	"image/png"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// drawInfo draws overlay text onto the rendered image, one line per entry.
// size selects the line spacing; the face itself is fixed. A size of 0
// disables the overlay.
func drawInfo(img *image.NRGBA, size int, textColor color.NRGBA, lines []string) {
	if size <= 0 {
		return
	}
	drawer := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(textColor),
		Face: basicfont.Face7x13,
	}
	for i, line := range lines {
		drawer.Dot = fixed.P(2, size*(i+1))
		drawer.DrawString(line)
	}
}

// writePNG encodes the image to a file.
func writePNG(path string, img *image.NRGBA) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(file, img); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
