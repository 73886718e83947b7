package material

import (
	"github.com/df07/go-sphere-tracer/pkg/core"
)

// Material interface for objects that can scatter rays
type Material interface {
	// Scatter decides whether rayIn scatters at hit. When it does, the
	// result carries the scattered ray and the per-channel attenuation.
	Scatter(rayIn core.Ray, hit HitRecord, sampler core.Sampler) (ScatterResult, bool)
}

// ScatterResult contains the result of material scattering
type ScatterResult struct {
	Scattered   core.Ray  // The scattered ray
	Attenuation core.Vec3 // Color attenuation
}

// HitRecord contains information about a ray-object intersection
type HitRecord struct {
	T        float64   // Parameter t along the ray
	Point    core.Vec3 // Point of intersection
	Normal   core.Vec3 // Unit surface normal, pointing out of the surface
	Material Material  // Material of the hit object, shared with the surface
}

// Reflect calculates the reflection of a vector v off a surface with normal n
func Reflect(v, n core.Vec3) core.Vec3 {
	// r = v - 2*dot(v,n)*n
	return v.Subtract(n.Multiply(2 * v.Dot(n)))
}
