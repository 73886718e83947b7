package renderer

import (
	"image"
	"image/color"
	"math"

	"github.com/df07/go-sphere-tracer/pkg/core"
)

// Frame holds linear pixel colors in row-major order, top row first
type Frame struct {
	Width  int
	Height int
	Pixels []core.Vec3
}

// NewFrame creates a black frame
func NewFrame(width, height int) *Frame {
	return &Frame{
		Width:  width,
		Height: height,
		Pixels: make([]core.Vec3, width*height),
	}
}

// At returns the color at column x of row y, counting rows from the top
func (f *Frame) At(x, y int) core.Vec3 {
	return f.Pixels[y*f.Width+x]
}

// Set stores the color at column x of row y, counting rows from the top
func (f *Frame) Set(x, y int, c core.Vec3) {
	f.Pixels[y*f.Width+x] = c
}

// Quantize clamps a linear component to [0,1] and scales it to [0,maxValue]
func Quantize(value float64, maxValue int) int {
	clamped := max(0.0, min(1.0, value))
	return int(math.Round(clamped * float64(maxValue)))
}

// PixelValues returns the quantized channels of a pixel, with square-root
// gamma applied first when gamma is set
func (f *Frame) PixelValues(x, y, maxValue int, gamma bool) (r, g, b int) {
	c := f.At(x, y)
	if gamma {
		c = c.Clamp(0, math.Inf(1)).GammaCorrect(2.0)
	}
	return Quantize(c.X, maxValue), Quantize(c.Y, maxValue), Quantize(c.Z, maxValue)
}

// ToRGBA converts the frame to an 8-bit image
func (f *Frame) ToRGBA(gamma bool) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, f.Width, f.Height))
	for y := 0; y < f.Height; y++ {
		for x := 0; x < f.Width; x++ {
			r, g, b := f.PixelValues(x, y, 255, gamma)
			img.SetRGBA(x, y, color.RGBA{R: uint8(r), G: uint8(g), B: uint8(b), A: 255})
		}
	}
	return img
}
