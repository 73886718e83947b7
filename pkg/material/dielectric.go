package material

import (
	"math"

	"github.com/df07/go-sphere-tracer/pkg/core"
)

// Dielectric represents a transparent material like glass that can both reflect and refract
type Dielectric struct {
	RefractiveIndex float64 // Index of refraction (e.g., 1.5 for glass)
}

// NewDielectric creates a new dielectric material
func NewDielectric(refractiveIndex float64) *Dielectric {
	return &Dielectric{RefractiveIndex: refractiveIndex}
}

// Scatter implements the Material interface for dielectric scattering.
// A dielectric never absorbs: the ray is always either reflected or refracted.
func (d *Dielectric) Scatter(rayIn core.Ray, hit HitRecord, sampler core.Sampler) (ScatterResult, bool) {
	// Dielectrics always attenuate by 1.0 (no color absorption for clear glass)
	attenuation := core.NewVec3(1.0, 1.0, 1.0)

	direction := rayIn.Direction
	dirDotNormal := direction.Dot(hit.Normal)

	// The hit normal points out of the surface, so a positive dot product
	// means the ray is leaving the medium
	var outwardNormal core.Vec3
	var refractionRatio, cosine float64
	if dirDotNormal > 0 {
		outwardNormal = hit.Normal.Negate()
		refractionRatio = d.RefractiveIndex // glass to air
		// Schlick takes the angle on the air side, which is the transmitted angle here
		cosIncident := dirDotNormal / direction.Length()
		cosine = math.Sqrt(max(0, 1-refractionRatio*refractionRatio*(1-cosIncident*cosIncident)))
	} else {
		outwardNormal = hit.Normal
		refractionRatio = 1.0 / d.RefractiveIndex // air to glass
		cosine = -dirDotNormal / direction.Length()
	}

	scatteredDirection := Reflect(direction, hit.Normal)
	if refracted, ok := Refract(direction, outwardNormal, refractionRatio); ok {
		// Reflect with the Fresnel probability, otherwise refract
		if sampler.Get1D() >= Schlick(cosine, d.RefractiveIndex) {
			scatteredDirection = refracted
		}
	}

	return ScatterResult{
		Scattered:   core.NewRay(hit.Point, scatteredDirection),
		Attenuation: attenuation,
	}, true
}

// Refract bends v through a surface with normal n using Snell's law.
// refractionRatio is the ratio of the incident to the transmitted index.
// It reports false on total internal reflection.
func Refract(v, n core.Vec3, refractionRatio float64) (core.Vec3, bool) {
	unitV := v.Normalize()
	unitN := n.Normalize()

	dt := unitV.Dot(unitN)
	discriminant := 1.0 - refractionRatio*refractionRatio*(1.0-dt*dt)
	if discriminant <= 0 {
		return core.Vec3{}, false
	}

	refracted := unitV.Subtract(unitN.Multiply(dt)).Multiply(refractionRatio).
		Subtract(unitN.Multiply(math.Sqrt(discriminant)))
	return refracted, true
}

// Schlick calculates the Fresnel reflectance using Schlick's approximation
func Schlick(cosine, refractiveIndex float64) float64 {
	// Calculate R0 for normal incidence
	r0 := (1 - refractiveIndex) / (1 + refractiveIndex)
	r0 = r0 * r0
	return r0 + (1-r0)*math.Pow(1-cosine, 5)
}
