package scene

import (
	"github.com/df07/go-sphere-tracer/pkg/core"
	"github.com/df07/go-sphere-tracer/pkg/geometry"
	"github.com/df07/go-sphere-tracer/pkg/material"
)

// NewDefaultScene creates a red diffuse sphere resting on a large yellow
// ground sphere, seen through the default camera
func NewDefaultScene() *Scene {
	s := New(geometry.NewDefaultCamera())
	s.SamplingConfig = core.SamplingConfig{
		Width:           200,
		Height:          100,
		SamplesPerPixel: 100,
		MaxDepth:        50,
	}

	lambertianRed := material.NewLambertian(core.NewVec3(0.8, 0.3, 0.3))
	lambertianGround := material.NewLambertian(core.NewVec3(0.8, 0.8, 0.0))

	s.Insert(
		geometry.NewSphere(core.NewVec3(0, 0, -1), 0.5, lambertianRed),
		geometry.NewSphere(core.NewVec3(0, -100.5, -1), 100, lambertianGround),
	)

	return s
}
