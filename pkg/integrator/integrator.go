package integrator

import (
	"github.com/df07/go-sphere-tracer/pkg/core"
	"github.com/df07/go-sphere-tracer/pkg/material"
)

// Scene is the part of a scene an integrator needs: nearest-hit queries
// and the sky gradient returned for rays that escape
type Scene interface {
	Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool)
	GetBackgroundColors() (topColor, bottomColor core.Vec3)
}

// Integrator defines the interface for light transport algorithms
type Integrator interface {
	// RayColor computes the linear color carried back along a camera ray
	RayColor(ray core.Ray, scene Scene, sampler core.Sampler) core.Vec3
}

// backgroundGradient returns a gradient color based on ray direction
func backgroundGradient(r core.Ray, scene Scene) core.Vec3 {
	topColor, bottomColor := scene.GetBackgroundColors()

	// Map the y-component of the unit direction from [-1,1] to [0,1]
	unitDirection := r.Direction.Normalize()
	t := 0.5 * (unitDirection.Y + 1.0)

	return bottomColor.Lerp(topColor, t)
}
