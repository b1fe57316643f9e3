// Package lighting provides light and environment types for 3D rendering.
package lighting

import (
	gomath "math"

	"github.com/Faultbox/sprite3d/pkg/math"
)

// MaxDirectional is the maximum number of directional lights bound per draw.
const MaxDirectional = 3

// Color is an RGBA color with components in the 0-1 range.
type Color struct {
	R, G, B, A float32
}

// Black is fully opaque black.
var Black = Color{A: 1}

// White is fully opaque white.
var White = Color{R: 1, G: 1, B: 1, A: 1}

// Directional is a directional light source. Direction points from the light
// towards the scene.
type Directional struct {
	Direction math.Vec3
	Diffuse   Color
	Specular  Color
}

// Fog holds linear fog parameters.
type Fog struct {
	Color Color
	Near  float32
	Far   float32
}

// Environment is the light/fog state a draw pass binds from. Ambient and Fog
// are optional: nil leaves the renderer's current values untouched.
type Environment struct {
	Lights  []Directional
	Ambient *Color
	Fog     *Fog
}

// BoundLights returns at most MaxDirectional lights for binding.
func (e *Environment) BoundLights() []Directional {
	if len(e.Lights) <= MaxDirectional {
		return e.Lights
	}
	return e.Lights[:MaxDirectional]
}

// SunDirection converts longitude/latitude angles to a light direction vector.
// Longitude is rotation around the Y axis (0-360), latitude is elevation from
// the horizon (0-90). Returns a normalized direction pointing towards the sun.
func SunDirection(longitude, latitude float32) math.Vec3 {
	lonRad := float64(longitude) * gomath.Pi / 180.0
	latRad := float64(latitude) * gomath.Pi / 180.0

	return math.Vec3{
		X: float32(gomath.Cos(latRad) * gomath.Sin(lonRad)),
		Y: float32(gomath.Sin(latRad)),
		Z: float32(gomath.Cos(latRad) * gomath.Cos(lonRad)),
	}
}
