package renderer

import (
	"math/rand"
	"time"

	"github.com/df07/go-sphere-tracer/pkg/core"
	"github.com/df07/go-sphere-tracer/pkg/geometry"
	"github.com/df07/go-sphere-tracer/pkg/integrator"
)

// Scene interface to avoid depending on the scene package
type Scene interface {
	integrator.Scene
	GetCamera() *geometry.Camera
}

// Raytracer handles the rendering process.
// It owns a single seeded sampler, so a Raytracer must not be shared between goroutines.
type Raytracer struct {
	scene      Scene
	config     core.SamplingConfig
	integrator integrator.Integrator
	random     *rand.Rand
	sampler    core.Sampler
}

// NewRaytracer creates a new raytracer. The same seed always produces the same frame.
func NewRaytracer(scene Scene, config core.SamplingConfig, integrator integrator.Integrator, seed int64) *Raytracer {
	random := rand.New(rand.NewSource(seed))
	return &Raytracer{
		scene:      scene,
		config:     config,
		integrator: integrator,
		random:     random,
		sampler:    core.NewRandomSampler(random),
	}
}

// Config returns the sampling configuration used by Render
func (rt *Raytracer) Config() core.SamplingConfig {
	return rt.config
}

// Render traces every pixel with SamplesPerPixel jittered samples and
// returns the averaged linear colors
func (rt *Raytracer) Render() (*Frame, RenderStats) {
	start := time.Now()
	width, height := rt.config.Width, rt.config.Height
	frame := NewFrame(width, height)
	camera := rt.scene.GetCamera()
	stats := RenderStats{}
	totalVariance := 0.0

	// j counts rows from the bottom of the image plane; frame rows count from the top
	for j := height - 1; j >= 0; j-- {
		for i := 0; i < width; i++ {
			var pixel PixelStats

			for sample := 0; sample < rt.config.SamplesPerPixel; sample++ {
				u := (float64(i) + rt.sampler.Get1D()) / float64(width)
				v := (float64(j) + rt.sampler.Get1D()) / float64(height)

				color := rt.integrator.RayColor(camera.GetRay(u, v), rt.scene, rt.sampler)
				if !color.IsFinite() {
					stats.DroppedSamples++
					continue
				}
				pixel.AddSample(color)
			}

			frame.Set(i, height-1-j, pixel.GetColor())
			totalVariance += pixel.Variance()
			stats.TotalSamples += rt.config.SamplesPerPixel
		}
	}

	stats.TotalPixels = width * height
	if stats.TotalPixels > 0 {
		stats.AverageSamples = float64(stats.TotalSamples-stats.DroppedSamples) / float64(stats.TotalPixels)
		stats.MeanVariance = totalVariance / float64(stats.TotalPixels)
	}
	stats.Luminance = CalculateAverageLuminance(frame.ToRGBA(false))
	stats.Elapsed = time.Since(start)

	return frame, stats
}
