package geometry

import (
	"math"

	"github.com/df07/go-sphere-tracer/pkg/core"
)

// CameraConfig describes a camera by its position and orientation
type CameraConfig struct {
	LookFrom    core.Vec3 // Camera position
	LookAt      core.Vec3 // Point the camera looks at
	Up          core.Vec3 // Up direction, must not be parallel to the view direction
	VFov        float64   // Vertical field of view in degrees
	AspectRatio float64   // Width / height of the image plane
}

// Camera generates rays for rendering
type Camera struct {
	origin          core.Vec3
	lowerLeftCorner core.Vec3
	horizontal      core.Vec3
	vertical        core.Vec3
}

// NewCamera creates a camera from explicit image-plane vectors
func NewCamera(origin, lowerLeftCorner, horizontal, vertical core.Vec3) *Camera {
	return &Camera{
		origin:          origin,
		lowerLeftCorner: lowerLeftCorner,
		horizontal:      horizontal,
		vertical:        vertical,
	}
}

// NewDefaultCamera creates an axis-aligned camera at the origin looking down -Z
// through a 4x2 image plane at z = -1
func NewDefaultCamera() *Camera {
	return NewCamera(
		core.NewVec3(0, 0, 0),
		core.NewVec3(-2, -1, -1),
		core.NewVec3(4, 0, 0),
		core.NewVec3(0, 2, 0),
	)
}

// NewLookAtCamera creates a camera positioned and oriented by config
func NewLookAtCamera(config CameraConfig) *Camera {
	theta := config.VFov * math.Pi / 180
	halfHeight := math.Tan(theta / 2)
	halfWidth := config.AspectRatio * halfHeight

	// Orthonormal camera basis
	w := config.LookFrom.Subtract(config.LookAt).Normalize()
	u := config.Up.Cross(w).Normalize()
	v := w.Cross(u)

	origin := config.LookFrom
	lowerLeftCorner := origin.
		Subtract(u.Multiply(halfWidth)).
		Subtract(v.Multiply(halfHeight)).
		Subtract(w)

	return NewCamera(origin, lowerLeftCorner, u.Multiply(2*halfWidth), v.Multiply(2*halfHeight))
}

// GetRay generates a ray for image-plane coordinates (s, t) where 0 <= s,t <= 1
func (c *Camera) GetRay(s, t float64) core.Ray {
	direction := c.lowerLeftCorner.
		Add(c.horizontal.Multiply(s)).
		Add(c.vertical.Multiply(t)).
		Subtract(c.origin)

	return core.NewRay(c.origin, direction)
}

// Origin returns the camera position
func (c *Camera) Origin() core.Vec3 { return c.origin }

// LowerLeftCorner returns the lower-left corner of the image plane
func (c *Camera) LowerLeftCorner() core.Vec3 { return c.lowerLeftCorner }

// Horizontal returns the horizontal span of the image plane
func (c *Camera) Horizontal() core.Vec3 { return c.horizontal }

// Vertical returns the vertical span of the image plane
func (c *Camera) Vertical() core.Vec3 { return c.vertical }
