package render

import (
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

var testPalette = []color.RGBA{
	{A: 255},
	{R: 255, A: 255},
	{G: 255, A: 255},
}

func TestSpaceTimeImagePixels(t *testing.T) {
	cells := []uint8{
		0, 1, 2,
		2, 1, 0,
	}
	img := SpaceTimeImage(cells, 3, 2, testPalette)

	if got := img.Bounds(); got.Dx() != 3 || got.Dy() != 2 {
		t.Fatalf("bounds = %v, want 3x2", got)
	}
	if got := img.RGBAAt(0, 0); got != testPalette[0] {
		t.Fatalf("pixel (0,0) = %v, want empty color", got)
	}
	if got := img.RGBAAt(1, 0); got != testPalette[1] {
		t.Fatalf("pixel (1,0) = %v, want palette[1]", got)
	}
	if got := img.RGBAAt(0, 1); got != testPalette[2] {
		t.Fatalf("pixel (0,1) = %v, want palette[2]", got)
	}
}

func TestSpaceTimeImageClampsOutOfPaletteValues(t *testing.T) {
	img := SpaceTimeImage([]uint8{9}, 1, 1, testPalette)
	if got := img.RGBAAt(0, 0); got != testPalette[2] {
		t.Fatalf("pixel = %v, want last palette entry", got)
	}
}

func TestWritePNGRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "spacetime.png")
	img := SpaceTimeImage([]uint8{1, 0, 0, 2}, 2, 2, testPalette)
	if err := WritePNG(path, img); err != nil {
		t.Fatalf("WritePNG: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()

	decoded, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := decoded.Bounds(); b.Dx() != 2 || b.Dy() != 2 {
		t.Fatalf("decoded bounds = %v, want 2x2", b)
	}
	r, g, _, _ := decoded.At(0, 0).RGBA()
	if r>>8 != 255 || g>>8 != 0 {
		t.Fatalf("decoded pixel (0,0) = %v, want red", decoded.At(0, 0))
	}
}
