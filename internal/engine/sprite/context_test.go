package sprite

import (
	"github.com/Faultbox/sprite3d/internal/engine/camera"
	"github.com/Faultbox/sprite3d/internal/engine/lighting"
	"github.com/Faultbox/sprite3d/internal/engine/model"
	"github.com/Faultbox/sprite3d/internal/engine/render"
	"github.com/Faultbox/sprite3d/pkg/math"
)

// fakeContext records every submission so tests can assert on traversal
// order, binding behavior and resource releases.
type fakeContext struct {
	cam camera.State
	env lighting.Environment

	// Submissions in call order. Mesh entries record the owning mesh name.
	order []string

	meshSubs  []*model.SubMesh
	meshTex   []model.Texture
	meshNames []string
	worlds    []math.Mat4

	triBufs []*model.TriangleBuffer
	triTex  []model.Texture

	materials   []*model.Material
	lights      [][]lighting.Directional
	clips       []math.Sphere
	released    []*model.Material
	depthResets int

	// Reverse index from sub-mesh to mesh name for order recording.
	subOwner map[*model.SubMesh]string
}

var _ render.Context = (*fakeContext)(nil)

func newFakeContext() *fakeContext {
	return &fakeContext{
		cam: camera.State{
			Eye:       math.Vec3{Z: 100},
			Target:    math.Vec3{},
			Up:        math.Vec3{Y: 1},
			FovY:      45,
			ViewportW: 800,
			ViewportH: 600,
			Near:      1,
			Far:       1000,
		},
		subOwner: map[*model.SubMesh]string{},
	}
}

// register indexes a mesh's sub-meshes so submissions can be attributed.
func (f *fakeContext) register(m *model.Mesh) *model.Mesh {
	for i := range m.Subs {
		f.subOwner[&m.Subs[i]] = m.Name
	}
	return m
}

func (f *fakeContext) Camera() camera.State { return f.cam }

func (f *fakeContext) Environment() *lighting.Environment { return &f.env }

func (f *fakeContext) SetLights(l []lighting.Directional) { f.lights = append(f.lights, l) }

func (f *fakeContext) SetAmbient(c *lighting.Color) {}

func (f *fakeContext) SetFog(fog *lighting.Fog) {}

func (f *fakeContext) SetMaterial(mat *model.Material) { f.materials = append(f.materials, mat) }

func (f *fakeContext) DrawMesh(sub *model.SubMesh, world math.Mat4, tex model.Texture) {
	f.meshSubs = append(f.meshSubs, sub)
	f.meshTex = append(f.meshTex, tex)
	f.worlds = append(f.worlds, world)
	name := f.subOwner[sub]
	f.meshNames = append(f.meshNames, name)
	f.order = append(f.order, "mesh:"+name)
}

func (f *fakeContext) DrawTriangles(buf *model.TriangleBuffer, world math.Mat4, tex model.Texture) {
	f.triBufs = append(f.triBufs, buf)
	f.triTex = append(f.triTex, tex)
	f.worlds = append(f.worlds, world)
	f.order = append(f.order, "tris")
}

func (f *fakeContext) ExtendClipRange(s math.Sphere) { f.clips = append(f.clips, s) }

func (f *fakeContext) ReleaseMaterial(mat *model.Material) { f.released = append(f.released, mat) }

func (f *fakeContext) ResetDepthState() { f.depthResets++ }

// singleSubMesh builds a one-sub-mesh named mesh with the given local bounds.
func singleSubMesh(name string, bounds math.Sphere) *model.Mesh {
	return &model.Mesh{
		Name: name,
		Subs: []model.SubMesh{{Bounds: bounds}},
	}
}
