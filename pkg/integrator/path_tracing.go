package integrator

import (
	"math"

	"github.com/df07/go-sphere-tracer/pkg/core"
)

// Epsilon is the minimum ray parameter accepted as a hit. It keeps scattered
// rays from re-hitting the surface they start on.
const Epsilon = 0.001

// DefaultMaxDepth is the default recursion bound for scattered rays
const DefaultMaxDepth = 50

// PathTracingIntegrator implements recursive path tracing against a sky gradient
type PathTracingIntegrator struct {
	MaxDepth int // Scatter events allowed before a path is cut off as black
}

// NewPathTracingIntegrator creates a new path tracing integrator
func NewPathTracingIntegrator(maxDepth int) *PathTracingIntegrator {
	return &PathTracingIntegrator{MaxDepth: maxDepth}
}

// RayColor computes the color for a single camera ray.
// At most MaxDepth+1 nearest-hit queries are made per call.
func (pt *PathTracingIntegrator) RayColor(ray core.Ray, scene Scene, sampler core.Sampler) core.Vec3 {
	return pt.rayColor(ray, scene, sampler, 0)
}

func (pt *PathTracingIntegrator) rayColor(ray core.Ray, scene Scene, sampler core.Sampler, depth int) core.Vec3 {
	hit, isHit := scene.Hit(ray, Epsilon, math.Inf(1))
	if !isHit {
		return backgroundGradient(ray, scene)
	}

	// Past the bounce limit no more light is gathered
	if depth >= pt.MaxDepth {
		return core.Vec3{}
	}

	scatter, didScatter := hit.Material.Scatter(ray, *hit, sampler)
	if !didScatter {
		return core.Vec3{}
	}

	return scatter.Attenuation.MultiplyVec(pt.rayColor(scatter.Scattered, scene, sampler, depth+1))
}
