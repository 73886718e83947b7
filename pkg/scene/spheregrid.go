package scene

import (
	"math"
	"math/rand"

	"github.com/df07/go-sphere-tracer/pkg/core"
	"github.com/df07/go-sphere-tracer/pkg/geometry"
	"github.com/df07/go-sphere-tracer/pkg/material"
)

// SphereGridSeed fixes the layout of the random sphere field
const SphereGridSeed = 42

// oklchToRGB converts OKLCH color values to RGB
// L: lightness (0-1), C: chroma (0-0.4+), H: hue (0-360 degrees)
func oklchToRGB(l, c, h float64) core.Vec3 {
	hRad := h * math.Pi / 180.0

	// OKLCH to OKLAB
	a := c * math.Cos(hRad)
	b := c * math.Sin(hRad)

	// OKLAB to LMS
	lc := l + 0.3963377774*a + 0.2158037573*b
	mc := l - 0.1055613458*a - 0.0638541728*b
	sc := l - 0.0894841775*a - 1.2914855480*b

	lc = lc * lc * lc
	mc = mc * mc * mc
	sc = sc * sc * sc

	// LMS to linear RGB
	r := +4.0767416621*lc - 3.3077115913*mc + 0.2309699292*sc
	g := -1.2684380046*lc + 2.6097574011*mc - 0.3413193965*sc
	blue := -0.0041960863*lc - 0.7034186147*mc + 1.7076147010*sc

	return core.NewVec3(r, g, blue).Clamp(0, 1)
}

// NewSphereGridScene creates the classic cover scene: a seeded grid of small
// diffuse, metal and glass spheres around three large feature spheres
func NewSphereGridScene() *Scene {
	camera := geometry.NewLookAtCamera(geometry.CameraConfig{
		LookFrom:    core.NewVec3(13, 2, 3),
		LookAt:      core.NewVec3(0, 0, 0),
		Up:          core.NewVec3(0, 1, 0),
		VFov:        20,
		AspectRatio: 1.5,
	})

	s := New(camera)
	s.SamplingConfig = core.SamplingConfig{
		Width:           300,
		Height:          200,
		SamplesPerPixel: 50,
		MaxDepth:        50,
	}

	s.Insert(geometry.NewSphere(core.NewVec3(0, -1000, 0), 1000,
		material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))))

	// Small spheres share one glass material
	glass := material.NewDielectric(1.5)
	random := rand.New(rand.NewSource(SphereGridSeed))
	clearing := core.NewVec3(4, 0.2, 0)

	for a := -11; a < 11; a++ {
		for b := -11; b < 11; b++ {
			chooseMat := random.Float64()
			center := core.NewVec3(float64(a)+0.9*random.Float64(), 0.2, float64(b)+0.9*random.Float64())
			if center.Subtract(clearing).Length() <= 0.9 {
				continue
			}

			// Hue follows the grid column so neighboring spheres stay distinct
			hue := float64(a+11) / 22.0 * 360.0
			switch {
			case chooseMat < 0.8:
				chroma := 0.05 + 0.2*random.Float64()
				albedo := oklchToRGB(0.65, chroma, hue)
				s.Insert(geometry.NewSphere(center, 0.2, material.NewLambertian(albedo)))
			case chooseMat < 0.95:
				albedo := oklchToRGB(0.8, 0.08, hue)
				s.Insert(geometry.NewSphere(center, 0.2, material.NewMetal(albedo, 0.5*random.Float64())))
			default:
				s.Insert(geometry.NewSphere(center, 0.2, glass))
			}
		}
	}

	s.Insert(
		geometry.NewSphere(core.NewVec3(0, 1, 0), 1.0, material.NewDielectric(1.5)),
		geometry.NewSphere(core.NewVec3(-4, 1, 0), 1.0, material.NewLambertian(core.NewVec3(0.4, 0.2, 0.1))),
		geometry.NewSphere(core.NewVec3(4, 1, 0), 1.0, material.NewMetal(core.NewVec3(0.7, 0.6, 0.5), 0.0)),
	)

	return s
}
