package integrator

import (
	"math"

	"github.com/df07/go-sphere-tracer/pkg/core"
)

// NormalIntegrator shades each hit by its surface normal, mapped from [-1,1]
// to [0,1] per component. Rays that miss get the sky gradient.
type NormalIntegrator struct{}

// NewNormalIntegrator creates a new normal integrator
func NewNormalIntegrator() *NormalIntegrator {
	return &NormalIntegrator{}
}

// RayColor returns the normal color of the nearest hit
func (ni *NormalIntegrator) RayColor(ray core.Ray, scene Scene, sampler core.Sampler) core.Vec3 {
	hit, isHit := scene.Hit(ray, Epsilon, math.Inf(1))
	if !isHit {
		return backgroundGradient(ray, scene)
	}
	return hit.Normal.AddScalar(1).Multiply(0.5)
}
