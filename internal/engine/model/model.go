// Package model provides the drawable types submitted by scene traversal:
// indexed meshes, raw triangle buffers and their materials.
package model

import (
	"github.com/Faultbox/sprite3d/internal/engine/lighting"
	"github.com/Faultbox/sprite3d/pkg/math"
)

// Vertex is a drawable vertex with position, normal, and texture coordinates.
type Vertex struct {
	Position [3]float32
	Normal   [3]float32
	TexCoord [2]float32
}

// Texture is a renderer texture handle (OpenGL texture name). The zero value
// means "no texture".
type Texture uint32

// Material holds shading parameters. Each color is optional: nil leaves the
// renderer's current value for that slot untouched.
type Material struct {
	Diffuse       *lighting.Color
	Emissive      *lighting.Color
	Specular      *lighting.Color
	SpecularPower float32
}

// DefaultMaterial returns the material used for drawables with none assigned.
func DefaultMaterial() *Material {
	d := lighting.White
	return &Material{
		Diffuse:       &d,
		SpecularPower: 8,
	}
}

// SetBlack forces every color slot to opaque black.
func (m *Material) SetBlack() {
	b := lighting.Black
	d, e, s := b, b, b
	m.Diffuse = &d
	m.Emissive = &e
	m.Specular = &s
}

// Drawable is anything a scene node can submit: a Mesh or a TriangleBuffer.
// A nil Drawable in a LOD list means "draw nothing at this level".
type Drawable interface {
	isDrawable()
}

// SubMesh is one texture-batched piece of a Mesh with its own local bounds.
type SubMesh struct {
	Vertices []Vertex
	Indices  []uint32
	Texture  Texture
	Bounds   math.Sphere
}

// Mesh is an indexed, sub-mesh-batched drawable. Its bounding spheres are
// maintained per sub-mesh and merged during traversal.
type Mesh struct {
	Name string
	Subs []SubMesh
}

func (*Mesh) isDrawable() {}

// Bounds returns the merged local-space bounding sphere of all sub-meshes.
func (m *Mesh) Bounds() math.Sphere {
	var acc math.Sphere
	for i := range m.Subs {
		acc = acc.Merge(m.Subs[i].Bounds)
	}
	return acc
}

// TriangleBuffer is a raw, non-indexed triangle soup. It carries no bounding
// data: callers that need culling or clipping keep the owning node's sphere
// current themselves.
type TriangleBuffer struct {
	Vertices []Vertex
	Texture  Texture
}

func (*TriangleBuffer) isDrawable() {}

// ComputeBounds builds a bounding sphere around the given vertices, centered
// on their centroid.
func ComputeBounds(verts []Vertex) math.Sphere {
	if len(verts) == 0 {
		return math.Sphere{}
	}

	var center math.Vec3
	for i := range verts {
		center.X += verts[i].Position[0]
		center.Y += verts[i].Position[1]
		center.Z += verts[i].Position[2]
	}
	inv := 1 / float32(len(verts))
	center = center.Scale(inv)

	var radius float32
	for i := range verts {
		p := math.Vec3{X: verts[i].Position[0], Y: verts[i].Position[1], Z: verts[i].Position[2]}
		if d := center.Distance(p); d > radius {
			radius = d
		}
	}
	return math.Sphere{Center: center, Radius: radius}
}
