package render

import (
	"image"
	"image/color"
	"image/png"
	"os"
)

// SpaceTimeImage renders a tick-major cell grid as a raster with one pixel
// per cell: x is the cell index and y the tick, first tick at the top.
func SpaceTimeImage(cells []uint8, width, rows int, palette []color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, rows))
	FillPaletteRGBA(img.Pix, cells[:width*rows], palette)
	return img
}

// WritePNG encodes the image to path, creating or truncating the file.
func WritePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
