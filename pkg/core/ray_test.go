package core

import (
	"testing"
)

func TestRay_AtOrigin(t *testing.T) {
	ray := NewRay(NewVec3(1, 2, 3), NewVec3(4, 5, 6))

	if ray.At(0) != ray.Origin {
		t.Errorf("Expected At(0) to equal origin %v, got %v", ray.Origin, ray.At(0))
	}
}

func TestRay_AtIsLinear(t *testing.T) {
	ray := NewRay(NewVec3(1, -1, 0.5), NewVec3(0.3, 2, -4))

	tests := []struct {
		name string
		a, b float64
	}{
		{"Positive parameters", 0.5, 2.0},
		{"Negative parameter", -1.5, 3.0},
		{"Large parameters", 100, 250},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// At(a+b) - origin == (At(a) - origin) + (At(b) - origin)
			sum := ray.At(tt.a + tt.b).Subtract(ray.Origin)
			parts := ray.At(tt.a).Subtract(ray.Origin).Add(ray.At(tt.b).Subtract(ray.Origin))
			if !vecNear(sum, parts, 1e-9) {
				t.Errorf("Expected %v, got %v", parts, sum)
			}
		})
	}
}

func TestRay_DirectionNotNormalized(t *testing.T) {
	ray := NewRay(NewVec3(0, 0, 0), NewVec3(0, 0, -2))

	if ray.At(1) != NewVec3(0, 0, -2) {
		t.Errorf("Expected point (0,0,-2), got %v", ray.At(1))
	}
}
