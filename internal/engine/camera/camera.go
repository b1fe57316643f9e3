// Package camera provides camera state and controllers for 3D rendering.
package camera

import (
	gomath "math"

	"github.com/Faultbox/sprite3d/pkg/math"
)

// State is the camera snapshot consumed by a traversal pass: position,
// orientation, projection parameters and viewport size. It is immutable for
// the duration of a frame.
type State struct {
	Eye    math.Vec3
	Target math.Vec3
	Up     math.Vec3

	// FovY is the vertical field of view in degrees.
	FovY float32

	// Viewport size in pixels.
	ViewportW float32
	ViewportH float32

	// Near/far clip distances for the projection matrix.
	Near float32
	Far  float32
}

// Forward returns the normalized view direction (eye towards target).
func (s State) Forward() math.Vec3 {
	return s.Target.Sub(s.Eye).Normalize()
}

// View returns the view matrix for this state.
func (s State) View() math.Mat4 {
	return math.LookAt(s.Eye, s.Target, s.Up)
}

// Projection returns the perspective projection matrix for this state.
func (s State) Projection() math.Mat4 {
	aspect := s.ViewportW / s.ViewportH
	fovRad := s.FovY * gomath.Pi / 180.0
	return math.Perspective(fovRad, aspect, s.Near, s.Far)
}

// ViewProjection returns projection * view.
func (s State) ViewProjection() math.Mat4 {
	return s.Projection().Mul(s.View())
}

// Default returns a camera state with sensible viewer defaults.
func Default(viewportW, viewportH float32) State {
	return State{
		Eye:       math.Vec3{X: 0, Y: 50, Z: 200},
		Target:    math.Vec3{},
		Up:        math.Vec3{X: 0, Y: 1, Z: 0},
		FovY:      45,
		ViewportW: viewportW,
		ViewportH: viewportH,
		Near:      1,
		Far:       10000,
	}
}

// OrbitCamera orbits around a center point. Used by the viewer to drive a
// State each frame.
type OrbitCamera struct {
	// Center point to orbit around
	Center math.Vec3

	// Spherical coordinates
	Distance  float32 // Distance from center
	RotationX float32 // Pitch (vertical angle, radians)
	RotationY float32 // Yaw (horizontal angle, radians)

	// Constraints
	MinDistance float32
	MaxDistance float32
	MinPitch    float32
	MaxPitch    float32

	// Sensitivity
	DragSensitivity float32
	ZoomSensitivity float32
}

// NewOrbitCamera creates a new orbit camera with default settings.
func NewOrbitCamera() *OrbitCamera {
	return &OrbitCamera{
		Distance:        200.0,
		RotationX:       0.5,
		RotationY:       0.0,
		MinDistance:     5.0,
		MaxDistance:     5000.0,
		MinPitch:        -1.5,
		MaxPitch:        1.5,
		DragSensitivity: 0.005,
		ZoomSensitivity: 0.1,
	}
}

// Position returns the camera position in world space.
func (c *OrbitCamera) Position() math.Vec3 {
	x := c.Distance * float32(gomath.Cos(float64(c.RotationX))*gomath.Sin(float64(c.RotationY)))
	y := c.Distance * float32(gomath.Sin(float64(c.RotationX)))
	z := c.Distance * float32(gomath.Cos(float64(c.RotationX))*gomath.Cos(float64(c.RotationY)))

	return c.Center.Add(math.Vec3{X: x, Y: y, Z: z})
}

// State builds the frame camera state for the current orbit position.
func (c *OrbitCamera) State(fovY, viewportW, viewportH float32) State {
	return State{
		Eye:       c.Position(),
		Target:    c.Center,
		Up:        math.Vec3{X: 0, Y: 1, Z: 0},
		FovY:      fovY,
		ViewportW: viewportW,
		ViewportH: viewportH,
		Near:      1,
		Far:       10000,
	}
}

// HandleDrag updates rotation based on mouse drag delta.
func (c *OrbitCamera) HandleDrag(deltaX, deltaY float32) {
	c.RotationY -= deltaX * c.DragSensitivity
	c.RotationX += deltaY * c.DragSensitivity

	// Clamp pitch
	if c.RotationX < c.MinPitch {
		c.RotationX = c.MinPitch
	}
	if c.RotationX > c.MaxPitch {
		c.RotationX = c.MaxPitch
	}
}

// HandleZoom updates distance based on scroll wheel delta.
func (c *OrbitCamera) HandleZoom(delta float32) {
	c.Distance -= delta * c.Distance * c.ZoomSensitivity
	if c.Distance < c.MinDistance {
		c.Distance = c.MinDistance
	}
	if c.Distance > c.MaxDistance {
		c.Distance = c.MaxDistance
	}
}
