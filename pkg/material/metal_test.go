package material

import (
	"math/rand"
	"testing"

	"github.com/df07/go-sphere-tracer/pkg/core"
)

func TestNewMetal_FuzzClamp(t *testing.T) {
	tests := []struct {
		name         string
		inputFuzz    float64
		expectedFuzz float64
	}{
		{"Valid fuzz 0.0", 0.0, 0.0},
		{"Valid fuzz 0.5", 0.5, 0.5},
		{"Valid fuzz 1.0", 1.0, 1.0},
		{"Clamp above 1.0", 1.5, 1.0},
		{"Clamp below 0.0", -0.5, 0.0},
		{"Clamp large positive", 10.0, 1.0},
		{"Clamp large negative", -10.0, 0.0},
	}

	albedo := core.NewVec3(0.8, 0.8, 0.8)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			metal := NewMetal(albedo, tt.inputFuzz)
			if metal.Fuzz != tt.expectedFuzz {
				t.Errorf("Expected fuzz %f, got %f", tt.expectedFuzz, metal.Fuzz)
			}
		})
	}
}

func TestMetal_PerfectReflection(t *testing.T) {
	albedo := core.NewVec3(0.9, 0.9, 0.9)
	metal := NewMetal(albedo, 0.0)
	sampler := newSequenceSampler(0.1, 0.9, 0.3)

	tests := []struct {
		name      string
		direction core.Vec3
		normal    core.Vec3
		expected  core.Vec3
	}{
		{"45 degrees", core.NewVec3(0, -1, -1), core.NewVec3(0, 0, 1), core.NewVec3(0, -1, 1).Normalize()},
		{"Head on", core.NewVec3(0, 0, -3), core.NewVec3(0, 0, 1), core.NewVec3(0, 0, 1)},
		{"Oblique", core.NewVec3(2, -1, 0), core.NewVec3(0, 1, 0), core.NewVec3(2, 1, 0).Normalize()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rayIn := core.NewRay(core.NewVec3(0, 1, 1), tt.direction)
			hit := HitRecord{Point: core.NewVec3(0, 0, 0), Normal: tt.normal}

			scatter, didScatter := metal.Scatter(rayIn, hit, sampler)
			if !didScatter {
				t.Fatal("Metal should scatter")
			}

			if !vecNear(scatter.Scattered.Direction, tt.expected, 1e-12) {
				t.Errorf("Perfect reflection failed: expected %v, got %v", tt.expected, scatter.Scattered.Direction)
			}
			if scatter.Attenuation != albedo {
				t.Errorf("Attenuation should equal albedo: expected %v, got %v", albedo, scatter.Attenuation)
			}
		})
	}

	if sampler.draws != 0 {
		t.Errorf("Mirror reflection should not consume random draws, used %d", sampler.draws)
	}
}

func TestMetal_FuzzyReflection(t *testing.T) {
	metal := NewMetal(core.NewVec3(0.8, 0.8, 0.8), 0.5)
	sampler := core.NewRandomSampler(rand.New(rand.NewSource(42)))

	rayIn := core.NewRay(core.NewVec3(0, 0, 1), core.NewVec3(0, 0, -1))
	hit := HitRecord{
		Point:  core.NewVec3(0, 0, 0),
		Normal: core.NewVec3(0, 0, 1),
	}

	directions := make([]core.Vec3, 10)
	for i := 0; i < 10; i++ {
		scatter, didScatter := metal.Scatter(rayIn, hit, sampler)
		if !didScatter {
			t.Fatalf("Metal should scatter on iteration %d", i)
		}
		directions[i] = scatter.Scattered.Direction

		// Perturbation is bounded by the fuzz radius
		if scatter.Scattered.Direction.Subtract(core.NewVec3(0, 0, 1)).Length() >= 0.5 {
			t.Errorf("Perturbation exceeds fuzz radius: %v", scatter.Scattered.Direction)
		}
	}

	allSame := true
	for i := 1; i < len(directions); i++ {
		if directions[i] != directions[0] {
			allSame = false
			break
		}
	}
	if allSame {
		t.Error("Fuzzy metal should produce varying reflection directions")
	}
}

func TestMetal_ScatterAbsorption(t *testing.T) {
	metal := NewMetal(core.NewVec3(0.8, 0.8, 0.8), 1.0)
	// Unit-ball offset of (0, -0.9, 0) pushes the grazing reflection below the surface
	sampler := newSequenceSampler(0.5, 0.05, 0.5)

	rayIn := core.NewRay(core.NewVec3(-1, 0.1, 0), core.NewVec3(1, -0.1, 0))
	hit := HitRecord{
		Point:  core.NewVec3(0, 0, 0),
		Normal: core.NewVec3(0, 1, 0),
	}

	scatter, didScatter := metal.Scatter(rayIn, hit, sampler)
	if didScatter {
		t.Errorf("Expected absorption, got scattered direction %v", scatter.Scattered.Direction)
	}
}
