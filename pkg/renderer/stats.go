package renderer

import (
	"fmt"
	"image"
	"time"

	"github.com/df07/go-sphere-tracer/pkg/core"
)

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	TotalPixels    int           // Total number of pixels rendered
	TotalSamples   int           // Total number of samples taken
	DroppedSamples int           // Samples discarded for non-finite color
	AverageSamples float64       // Average samples kept per pixel
	MeanVariance   float64       // Mean per-pixel luminance variance across kept samples
	Luminance      float64       // Average luminance of the quantized frame
	Elapsed        time.Duration // Wall time spent in Render
}

// String formats the stats as a single caption line
func (s RenderStats) String() string {
	return fmt.Sprintf("%d px, %.1f spp, %d dropped, var %.4f, lum %.3f, %s",
		s.TotalPixels, s.AverageSamples, s.DroppedSamples, s.MeanVariance, s.Luminance,
		s.Elapsed.Round(time.Millisecond))
}

// PixelStats tracks sampling statistics for a single pixel
type PixelStats struct {
	ColorAccum       core.Vec3 // RGB accumulator for final result
	LuminanceAccum   float64   // Luminance accumulator
	LuminanceSqAccum float64   // Luminance squared for variance
	SampleCount      int       // Number of samples taken
}

// AddSample adds a new color sample to the pixel statistics
func (ps *PixelStats) AddSample(color core.Vec3) {
	ps.ColorAccum.AddAssign(color)
	luminance := color.Luminance()
	ps.LuminanceAccum += luminance
	ps.LuminanceSqAccum += luminance * luminance
	ps.SampleCount++
}

// GetColor returns the current average color for this pixel
func (ps *PixelStats) GetColor() core.Vec3 {
	if ps.SampleCount == 0 {
		return core.Vec3{X: 0, Y: 0, Z: 0}
	}
	return ps.ColorAccum.Multiply(1.0 / float64(ps.SampleCount))
}

// Variance returns the sample variance of pixel luminance
func (ps *PixelStats) Variance() float64 {
	if ps.SampleCount < 2 {
		return 0
	}
	n := float64(ps.SampleCount)
	mean := ps.LuminanceAccum / n
	return max(0, (ps.LuminanceSqAccum/n-mean*mean)*n/(n-1))
}

// CalculateAverageLuminance returns the mean Rec. 709 luminance of an image,
// with channels scaled to [0,1]
func CalculateAverageLuminance(img image.Image) float64 {
	bounds := img.Bounds()
	pixels := bounds.Dx() * bounds.Dy()
	if pixels == 0 {
		return 0
	}

	total := 0.0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			c := core.NewVec3(float64(r), float64(g), float64(b)).Divide(0xffff)
			total += c.Luminance()
		}
	}
	return total / float64(pixels)
}
