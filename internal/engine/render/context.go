// Package render defines the narrow rendering-context contract consumed by
// scene traversal, and its OpenGL implementation. A Context owns the camera
// snapshot, the light/fog environment, the currently bound material state,
// and the submission entry points; traversal code never talks to the GPU
// directly.
package render

import (
	"github.com/Faultbox/sprite3d/internal/engine/camera"
	"github.com/Faultbox/sprite3d/internal/engine/lighting"
	"github.com/Faultbox/sprite3d/internal/engine/model"
	"github.com/Faultbox/sprite3d/pkg/math"
)

// Context is the rendering collaborator a scene node draws through.
//
// Material/light/fog setters are stateful: values persist until overwritten,
// and a nil optional (material color slot, ambient, fog) leaves the previous
// value in place rather than resetting it.
type Context interface {
	// Camera returns the camera snapshot for the current frame.
	Camera() camera.State

	// Environment returns the light/fog state nodes bind from.
	Environment() *lighting.Environment

	// SetLights binds up to lighting.MaxDirectional directional lights.
	// Slots beyond len(lights) are disabled.
	SetLights(lights []lighting.Directional)

	// SetAmbient binds the ambient color. nil leaves the current value.
	SetAmbient(c *lighting.Color)

	// SetFog binds linear fog. nil leaves the current fog state.
	SetFog(f *lighting.Fog)

	// SetMaterial binds material parameters. nil color slots leave the
	// corresponding previously bound colors untouched.
	SetMaterial(mat *model.Material)

	// DrawMesh submits one sub-mesh with the given world transform.
	// tex overrides the sub-mesh's own texture when non-zero.
	DrawMesh(sub *model.SubMesh, world math.Mat4, tex model.Texture)

	// DrawTriangles submits a raw triangle buffer with the given world
	// transform. tex overrides the buffer's texture when non-zero.
	DrawTriangles(buf *model.TriangleBuffer, world math.Mat4, tex model.Texture)

	// ExtendClipRange widens the frame's clip range to include the given
	// world-space sphere.
	ExtendClipRange(s math.Sphere)

	// ReleaseMaterial releases a material previously created for a node.
	ReleaseMaterial(mat *model.Material)

	// ResetDepthState restores the default enabled depth test state.
	ResetDepthState()
}
