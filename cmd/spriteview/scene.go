package main

import (
	gomath "math"
	"time"

	"github.com/Faultbox/sprite3d/internal/config"
	"github.com/Faultbox/sprite3d/internal/engine/lighting"
	"github.com/Faultbox/sprite3d/internal/engine/model"
	"github.com/Faultbox/sprite3d/internal/engine/render"
	"github.com/Faultbox/sprite3d/internal/engine/sprite"
	"github.com/Faultbox/sprite3d/pkg/math"
)

const flagPickable uint32 = 0x1

// buildDemoScene assembles a scene that exercises the node features:
// per-node detail levels, constant screen size, spherical and cylindrical
// billboards, and pickable bounds.
func buildDemoScene(ctx *render.GL, cfg *config.Config) *sprite.Node {
	env := ctx.Environment()
	env.Lights = []lighting.Directional{{
		Direction: lighting.SunDirection(45, 60),
		Diffuse:   lighting.Color{R: 0.9, G: 0.85, B: 0.8, A: 1},
		Specular:  lighting.Color{R: 0.3, G: 0.3, B: 0.3, A: 1},
	}}
	env.Ambient = &lighting.Color{R: 0.25, G: 0.25, B: 0.3, A: 1}
	env.Fog = &lighting.Fog{
		Color: lighting.Color{R: 0.08, G: 0.09, B: 0.12, A: 1},
		Near:  200,
		Far:   2000,
	}

	root := sprite.New(ctx, "scene")

	ground := sprite.New(ctx, "ground")
	ground.LODs = []model.Drawable{quadMesh("ground", 200, 200)}
	ground.Local = math.Translate(0, -5, 0).Mul(math.RotateX(-gomath.Pi / 2))
	ground.Material = &model.Material{
		Diffuse: &lighting.Color{R: 0.2, G: 0.35, B: 0.2, A: 1},
	}
	root.Add(ground)

	globe := sprite.New(ctx, "globe")
	globe.LODs = []model.Drawable{
		sphereMesh("globe-fine", 5, 24, 32),
		sphereMesh("globe-mid", 5, 12, 16),
		sphereMesh("globe-coarse", 5, 6, 8),
	}
	globe.LODScale = cfg.Scene.LODBias
	globe.MipScale = cfg.Scene.MipBias
	globe.AutoClip = cfg.Scene.AutoClip
	globe.Flags = flagPickable
	globe.Material = &model.Material{
		Diffuse:       &lighting.Color{R: 0.4, G: 0.5, B: 0.8, A: 1},
		Specular:      &lighting.Color{R: 0.5, G: 0.5, B: 0.5, A: 1},
		SpecularPower: 16,
	}
	// Slow spin driven from the traversal itself
	start := time.Now()
	globe.Hooks.PreNode = func(n *sprite.Node, flags uint32) sprite.StageResult {
		t := float32(time.Since(start).Seconds())
		n.Local = math.RotateY(t * 0.3)
		return sprite.Continue
	}
	root.Add(globe)

	// Marker that keeps its on-screen size at any zoom
	marker := sprite.New(ctx, "marker")
	marker.LODs = []model.Drawable{sphereMesh("marker", 0.02, 8, 12)}
	marker.Local = math.Translate(0, 12, 0)
	marker.ConstantSize = true
	marker.Flags = flagPickable
	marker.Material = &model.Material{
		Emissive: &lighting.Color{R: 1, G: 0.6, B: 0.1, A: 1},
	}
	root.Add(marker)

	// Upright cut-out that swivels around its vertical axis to face the
	// camera, the way foliage sprites do
	tree := sprite.New(ctx, "tree")
	tree.LODs = []model.Drawable{quadMesh("tree", 6, 12)}
	tree.Local = math.Translate(15, 1, 0)
	tree.BillboardY = math.Vec3{Y: 1}
	tree.Flags = flagPickable
	tree.Material = &model.Material{
		Diffuse: &lighting.Color{R: 0.25, G: 0.5, B: 0.2, A: 1},
	}
	root.Add(tree)

	// Glow card that always faces the camera head on
	flare := sprite.New(ctx, "flare")
	flare.LODs = []model.Drawable{quadMesh("flare", 4, 4)}
	flare.Local = math.Translate(-15, 8, 0)
	flare.Billboard = math.Vec3{X: 1, Y: 1, Z: 1}
	flare.Material = &model.Material{
		Emissive: &lighting.Color{R: 0.9, G: 0.8, B: 0.4, A: 1},
	}
	root.Add(flare)

	return root
}

// quadMesh builds a unit-normal quad in the XY plane, centered on the
// origin.
func quadMesh(name string, w, h float32) *model.Mesh {
	hw, hh := w/2, h/2
	verts := []model.Vertex{
		{Position: [3]float32{-hw, -hh, 0}, Normal: [3]float32{0, 0, 1}, TexCoord: [2]float32{0, 1}},
		{Position: [3]float32{hw, -hh, 0}, Normal: [3]float32{0, 0, 1}, TexCoord: [2]float32{1, 1}},
		{Position: [3]float32{hw, hh, 0}, Normal: [3]float32{0, 0, 1}, TexCoord: [2]float32{1, 0}},
		{Position: [3]float32{-hw, hh, 0}, Normal: [3]float32{0, 0, 1}, TexCoord: [2]float32{0, 0}},
	}
	indices := []uint32{0, 1, 2, 0, 2, 3}

	return &model.Mesh{
		Name: name,
		Subs: []model.SubMesh{{
			Vertices: verts,
			Indices:  indices,
			Bounds:   model.ComputeBounds(verts),
		}},
	}
}

// sphereMesh builds a latitude/longitude sphere. Lower stack and slice
// counts give the coarser detail levels.
func sphereMesh(name string, radius float32, stacks, slices int) *model.Mesh {
	var verts []model.Vertex
	for i := 0; i <= stacks; i++ {
		phi := gomath.Pi * float64(i) / float64(stacks)
		for j := 0; j <= slices; j++ {
			theta := 2 * gomath.Pi * float64(j) / float64(slices)

			nx := float32(gomath.Sin(phi) * gomath.Cos(theta))
			ny := float32(gomath.Cos(phi))
			nz := float32(gomath.Sin(phi) * gomath.Sin(theta))
			verts = append(verts, model.Vertex{
				Position: [3]float32{nx * radius, ny * radius, nz * radius},
				Normal:   [3]float32{nx, ny, nz},
				TexCoord: [2]float32{
					float32(j) / float32(slices),
					float32(i) / float32(stacks),
				},
			})
		}
	}

	var indices []uint32
	ring := uint32(slices + 1)
	for i := 0; i < stacks; i++ {
		for j := 0; j < slices; j++ {
			a := uint32(i)*ring + uint32(j)
			b := a + ring
			indices = append(indices, a, b, a+1, a+1, b, b+1)
		}
	}

	return &model.Mesh{
		Name: name,
		Subs: []model.SubMesh{{
			Vertices: verts,
			Indices:  indices,
			Bounds:   math.Sphere{Radius: radius},
		}},
	}
}
