package material

import (
	"math"
	"math/rand"
	"testing"

	"github.com/df07/go-sphere-tracer/pkg/core"
)

func TestDielectric_AlwaysScattersWithoutAbsorption(t *testing.T) {
	glass := NewDielectric(1.5)
	sampler := core.NewRandomSampler(rand.New(rand.NewSource(42)))

	ray := core.NewRay(core.NewVec3(0, 1, 0), core.NewVec3(1, -1, 0))
	hit := HitRecord{
		T:        1.0,
		Point:    core.NewVec3(0, 0, 0),
		Normal:   core.NewVec3(0, 1, 0),
		Material: glass,
	}

	for i := 0; i < 200; i++ {
		result, scattered := glass.Scatter(ray, hit, sampler)
		if !scattered {
			t.Fatal("Dielectric should always scatter")
		}
		if result.Attenuation != core.NewVec3(1, 1, 1) {
			t.Fatalf("Expected attenuation (1,1,1), got %v", result.Attenuation)
		}
		if result.Scattered.Origin != hit.Point {
			t.Fatalf("Scattered ray should start at hit point, got %v", result.Scattered.Origin)
		}
	}
}

func TestDielectric_NormalIncidenceCoinFlip(t *testing.T) {
	glass := NewDielectric(1.5)
	ray := core.NewRay(core.NewVec3(0, 1, 0), core.NewVec3(0, -1, 0))
	hit := HitRecord{Point: core.NewVec3(0, 0, 0), Normal: core.NewVec3(0, 1, 0)}

	// Reflectance at normal incidence for n=1.5 is 0.04
	tests := []struct {
		name     string
		draw     float64
		expected core.Vec3
	}{
		{"Draw below reflectance reflects", 0.01, core.NewVec3(0, 1, 0)},
		{"Draw above reflectance refracts", 0.5, core.NewVec3(0, -1, 0)},
		{"Draw at reflectance refracts", 0.04 + 1e-12, core.NewVec3(0, -1, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, _ := glass.Scatter(ray, hit, newSequenceSampler(tt.draw))
			if !vecNear(result.Scattered.Direction, tt.expected, 1e-12) {
				t.Errorf("Expected direction %v, got %v", tt.expected, result.Scattered.Direction)
			}
		})
	}
}

func TestDielectric_TotalInternalReflection(t *testing.T) {
	glass := NewDielectric(1.5)

	// Inside the glass heading out at a grazing angle: sin(theta) is far above 1/1.5
	direction := core.NewVec3(1, 0.2, 0)
	ray := core.NewRay(core.NewVec3(-1, -0.2, 0), direction)
	hit := HitRecord{Point: core.NewVec3(0, 0, 0), Normal: core.NewVec3(0, 1, 0)}

	if _, ok := Refract(direction, hit.Normal.Negate(), 1.5); ok {
		t.Fatal("Expected no refraction for this geometry")
	}

	expected := Reflect(direction, hit.Normal)
	for _, draw := range []float64{0.0, 0.25, 0.5, 0.75, 0.999999} {
		sampler := newSequenceSampler(draw)
		result, scattered := glass.Scatter(ray, hit, sampler)
		if !scattered {
			t.Fatalf("Dielectric should scatter on total internal reflection (draw %f)", draw)
		}
		if !vecNear(result.Scattered.Direction, expected, 1e-12) {
			t.Errorf("Draw %f: expected reflection %v, got %v", draw, expected, result.Scattered.Direction)
		}
		if sampler.draws != 0 {
			t.Errorf("Draw %f: total internal reflection should not consume random draws", draw)
		}
	}
}

func TestDielectric_ExitReflectance(t *testing.T) {
	tests := []struct {
		name  string
		index float64
		angle float64 // angle to the normal inside the medium, in degrees
	}{
		{"Glass head on", 1.5, 0},
		{"Glass 30 degrees", 1.5, 30},
		{"Diamond 10 degrees", 2.4, 10},
		{"Diamond 20 degrees", 2.4, 20},
		{"Diamond near critical angle", 2.4, 24},
	}

	const draws = 1000
	hit := HitRecord{Point: core.NewVec3(0, 0, 0), Normal: core.NewVec3(0, 1, 0)}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			material := NewDielectric(tt.index)
			theta := tt.angle * math.Pi / 180
			// Heading out through the top of the surface
			direction := core.NewVec3(math.Sin(theta), math.Cos(theta), 0)
			ray := core.NewRay(core.NewVec3(-math.Sin(theta), -math.Cos(theta), 0), direction)

			refracted, ok := Refract(direction, hit.Normal.Negate(), tt.index)
			if !ok {
				t.Fatal("Expected refraction below the critical angle")
			}
			probability := Schlick(refracted.Y, tt.index)
			if probability < 0 || probability > 1 {
				t.Fatalf("Reflection probability %f outside [0,1]", probability)
			}

			values := make([]float64, draws)
			for i := range values {
				values[i] = (float64(i) + 0.5) / draws
			}
			sampler := newSequenceSampler(values...)

			reflected := 0
			for i := 0; i < draws; i++ {
				result, _ := material.Scatter(ray, hit, sampler)
				if result.Scattered.Direction.Y < 0 {
					reflected++
				}
			}

			fraction := float64(reflected) / draws
			if math.Abs(fraction-probability) > 2.0/draws {
				t.Errorf("Reflected fraction %f, expected %f", fraction, probability)
			}

			result, _ := material.Scatter(ray, hit, newSequenceSampler(0))
			if result.Scattered.Direction.Y >= 0 {
				t.Errorf("A zero draw should reflect, got %v", result.Scattered.Direction)
			}
		})
	}
}

func TestRefract_SnellsLaw(t *testing.T) {
	tests := []struct {
		name  string
		ratio float64
		angle float64 // incidence angle in degrees
	}{
		{"Air to glass 30 degrees", 1.0 / 1.5, 30},
		{"Air to glass 60 degrees", 1.0 / 1.5, 60},
		{"Glass to air 20 degrees", 1.5, 20},
		{"Air to water 45 degrees", 1.0 / 1.33, 45},
	}

	normal := core.NewVec3(0, 1, 0)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			theta := tt.angle * math.Pi / 180
			incoming := core.NewVec3(math.Sin(theta), -math.Cos(theta), 0).Multiply(3)

			refracted, ok := Refract(incoming, normal, tt.ratio)
			if !ok {
				t.Fatal("Expected refraction")
			}
			if math.Abs(refracted.Length()-1) > 1e-9 {
				t.Errorf("Refracted vector should be unit length, got %f", refracted.Length())
			}

			sinOut := refracted.X
			if math.Abs(sinOut-tt.ratio*math.Sin(theta)) > 1e-9 {
				t.Errorf("Snell's law violated: sin(out)=%f, expected %f", sinOut, tt.ratio*math.Sin(theta))
			}
			if refracted.Y >= 0 {
				t.Errorf("Refracted ray should continue through the surface, got %v", refracted)
			}
		})
	}
}

func TestSchlick(t *testing.T) {
	tests := []struct {
		name     string
		cosine   float64
		index    float64
		expected float64
	}{
		{"Normal incidence glass", 1.0, 1.5, 0.04},
		{"Grazing incidence glass", 0.0, 1.5, 1.0},
		{"Normal incidence diamond", 1.0, 2.4, math.Pow(1.4/3.4, 2)},
		{"Matched index", 0.5, 1.0, math.Pow(0.5, 5)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Schlick(tt.cosine, tt.index)
			if math.Abs(result-tt.expected) > 1e-12 {
				t.Errorf("Expected %f, got %f", tt.expected, result)
			}
		})
	}
}

func TestSchlick_DependsOnIndex(t *testing.T) {
	if Schlick(1.0, 1.5) == Schlick(1.0, 2.4) {
		t.Error("Reflectance at normal incidence should depend on the refractive index")
	}
}
