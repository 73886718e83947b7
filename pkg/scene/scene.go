package scene

import (
	"github.com/df07/go-sphere-tracer/pkg/core"
	"github.com/df07/go-sphere-tracer/pkg/geometry"
	"github.com/df07/go-sphere-tracer/pkg/material"
)

// Default sky gradient colors
var (
	DefaultTopColor    = core.NewVec3(0.5, 0.7, 1.0) // Blue sky at the zenith
	DefaultBottomColor = core.NewVec3(1.0, 1.0, 1.0) // White at the horizon
)

// Scene contains all the elements needed for rendering.
// Shapes are inserted while the scene is assembled and read-only afterwards.
type Scene struct {
	Camera         *geometry.Camera
	Shapes         []geometry.Shape // Objects in the scene
	TopColor       core.Vec3        // Background color straight up
	BottomColor    core.Vec3        // Background color straight down
	SamplingConfig core.SamplingConfig
}

// New creates an empty scene with the default sky and sampling configuration
func New(camera *geometry.Camera) *Scene {
	return &Scene{
		Camera:         camera,
		Shapes:         make([]geometry.Shape, 0),
		TopColor:       DefaultTopColor,
		BottomColor:    DefaultBottomColor,
		SamplingConfig: core.DefaultSamplingConfig(),
	}
}

// Insert adds shapes to the scene
func (s *Scene) Insert(shapes ...geometry.Shape) {
	s.Shapes = append(s.Shapes, shapes...)
}

// Hit finds the closest intersection among all shapes in (tMin, tMax).
// The result does not depend on insertion order.
func (s *Scene) Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	var closestHit *material.HitRecord
	closestSoFar := tMax
	hitAnything := false

	for _, shape := range s.Shapes {
		if hit, isHit := shape.Hit(ray, tMin, closestSoFar); isHit {
			hitAnything = true
			closestSoFar = hit.T
			closestHit = hit
		}
	}

	return closestHit, hitAnything
}

// GetCamera returns the scene camera
func (s *Scene) GetCamera() *geometry.Camera {
	return s.Camera
}

// GetBackgroundColors returns the sky gradient colors
func (s *Scene) GetBackgroundColors() (topColor, bottomColor core.Vec3) {
	return s.TopColor, s.BottomColor
}

// GetShapes returns the shapes in the scene
func (s *Scene) GetShapes() []geometry.Shape {
	return s.Shapes
}

// GetSamplingConfig returns the recommended sampling configuration
func (s *Scene) GetSamplingConfig() core.SamplingConfig {
	return s.SamplingConfig
}
