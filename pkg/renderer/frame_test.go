package renderer

import (
	"image/color"
	"math"
	"testing"

	"github.com/df07/go-sphere-tracer/pkg/core"
)

func TestQuantize(t *testing.T) {
	tests := []struct {
		name     string
		value    float64
		maxValue int
		expected int
	}{
		{"Zero", 0, 255, 0},
		{"One", 1, 255, 255},
		{"Half rounds up", 0.5, 255, 128},
		{"Below zero clamps", -0.3, 255, 0},
		{"Above one clamps", 4.2, 255, 255},
		{"Other max value", 0.25, 100, 25},
		{"Rounds to nearest", 0.499, 10, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Quantize(tt.value, tt.maxValue); got != tt.expected {
				t.Errorf("Quantize(%f, %d) = %d, want %d", tt.value, tt.maxValue, got, tt.expected)
			}
		})
	}
}

func TestFrame_RowMajorTopFirst(t *testing.T) {
	frame := NewFrame(3, 2)
	frame.Set(2, 0, core.NewVec3(1, 0, 0))
	frame.Set(0, 1, core.NewVec3(0, 1, 0))

	if frame.Pixels[2] != core.NewVec3(1, 0, 0) {
		t.Errorf("Top right pixel should be index 2, got %v", frame.Pixels[2])
	}
	if frame.Pixels[3] != core.NewVec3(0, 1, 0) {
		t.Errorf("Bottom left pixel should be index 3, got %v", frame.Pixels[3])
	}
	if frame.At(0, 1) != core.NewVec3(0, 1, 0) {
		t.Errorf("At(0,1) = %v", frame.At(0, 1))
	}
}

func TestFrame_PixelValuesGamma(t *testing.T) {
	frame := NewFrame(1, 1)
	frame.Set(0, 0, core.NewVec3(0.25, 1, -1))

	r, g, b := frame.PixelValues(0, 0, 255, false)
	if r != 64 || g != 255 || b != 0 {
		t.Errorf("Linear values = (%d,%d,%d), want (64,255,0)", r, g, b)
	}

	r, g, b = frame.PixelValues(0, 0, 255, true)
	if r != 128 || g != 255 || b != 0 {
		t.Errorf("Gamma values = (%d,%d,%d), want (128,255,0)", r, g, b)
	}
}

func TestFrame_ToRGBA(t *testing.T) {
	frame := NewFrame(2, 1)
	frame.Set(0, 0, core.NewVec3(1, 0.25, 0))
	frame.Set(1, 0, core.NewVec3(math.Inf(1), 0, 0))

	img := frame.ToRGBA(true)
	if img.Bounds().Dx() != 2 || img.Bounds().Dy() != 1 {
		t.Fatalf("Unexpected bounds %v", img.Bounds())
	}

	expected := color.RGBA{R: 255, G: 128, B: 0, A: 255}
	if got := img.RGBAAt(0, 0); got != expected {
		t.Errorf("Pixel 0 = %v, want %v", got, expected)
	}
	if got := img.RGBAAt(1, 0); got.R != 255 {
		t.Errorf("Infinite channel should saturate, got %v", got)
	}
}
