package scene

import (
	"github.com/df07/go-sphere-tracer/pkg/core"
	"github.com/df07/go-sphere-tracer/pkg/geometry"
	"github.com/df07/go-sphere-tracer/pkg/material"
)

// NewGlassCavityScene encloses the camera in nested glass shells.
// Rays keep bouncing between the shell walls, so the recursion bound is the
// only thing that ends most paths.
func NewGlassCavityScene() *Scene {
	s := New(geometry.NewDefaultCamera())
	s.SamplingConfig = core.SamplingConfig{
		Width:           100,
		Height:          50,
		SamplesPerPixel: 20,
		MaxDepth:        50,
	}

	glass := material.NewDielectric(1.5)
	diamond := material.NewDielectric(2.4)

	s.Insert(
		geometry.NewSphere(core.NewVec3(0, 0, 0), 4, glass),
		geometry.NewSphere(core.NewVec3(0, 0, 0), -3.8, glass),
		geometry.NewSphere(core.NewVec3(0, 0, 0), 3, diamond),
		geometry.NewSphere(core.NewVec3(0, 0, 0), -2.9, diamond),
		geometry.NewSphere(core.NewVec3(0, 0.5, -1.5), 0.5, glass),
		geometry.NewSphere(core.NewVec3(0.8, -0.3, -1.6), 0.45, diamond),
	)

	return s
}
