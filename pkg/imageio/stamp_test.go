package imageio

import (
	"image/color"
	"testing"
)

func TestStamp_DarkensBottomBand(t *testing.T) {
	img := solidImage(120, 80, color.RGBA{R: 255, G: 255, B: 255, A: 255})
	stamped := Stamp(img, "default 120x80")

	if stamped.Bounds() != img.Bounds() {
		t.Fatalf("Stamp changed bounds from %v to %v", img.Bounds(), stamped.Bounds())
	}

	// Bottom-right corner sits in the band but clear of the text
	r, _, _, _ := stamped.At(119, 79).RGBA()
	if r>>8 >= 200 {
		t.Errorf("Bottom band should be darkened, got red %d", r>>8)
	}

	// Top of the image is untouched
	r, g, b, _ := stamped.At(60, 2).RGBA()
	if r>>8 != 255 || g>>8 != 255 || b>>8 != 255 {
		t.Errorf("Top pixel should stay white, got (%d,%d,%d)", r>>8, g>>8, b>>8)
	}

	// Source image is not modified
	if img.RGBAAt(119, 79) != (color.RGBA{R: 255, G: 255, B: 255, A: 255}) {
		t.Error("Stamp should not modify its input")
	}
}

func TestStamp_NoLines(t *testing.T) {
	img := solidImage(10, 10, color.RGBA{A: 255})
	if Stamp(img) != img {
		t.Error("Stamp without lines should return the input")
	}
}
