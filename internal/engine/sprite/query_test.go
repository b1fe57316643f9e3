package sprite

import (
	"testing"

	"github.com/Faultbox/sprite3d/internal/engine/picking"
	"github.com/Faultbox/sprite3d/pkg/math"
)

func sphereAt(x, y, z, r float32) *math.Sphere {
	return &math.Sphere{Center: math.Vec3{X: x, Y: y, Z: z}, Radius: r}
}

func TestViewCoordinatesCenter(t *testing.T) {
	ctx := newFakeContext()
	n := New(ctx, "n")
	n.Draw(nil, 0) // Resolve the world transform at the origin

	pt, ok := n.ViewCoordinates()
	if !ok {
		t.Fatal("node in front of the camera should project")
	}
	if absf(pt.X-400) > 0.5 || absf(pt.Y-300) > 0.5 {
		t.Errorf("screen point: got (%f, %f), want viewport center (400, 300)", pt.X, pt.Y)
	}
}

func TestViewCoordinatesOffsetFlipsY(t *testing.T) {
	ctx := newFakeContext()
	n := New(ctx, "n")
	n.Local = math.Translate(0, 10, 0)
	n.Draw(nil, 0)

	pt, ok := n.ViewCoordinates()
	if !ok {
		t.Fatal("node should project")
	}
	// World up maps to decreasing screen Y
	if pt.Y >= 300 {
		t.Errorf("node above the view center should land above y=300, got %f", pt.Y)
	}
	if absf(pt.X-400) > 0.5 {
		t.Errorf("node on the view axis should keep x=400, got %f", pt.X)
	}
}

func TestViewCoordinatesBehindCamera(t *testing.T) {
	ctx := newFakeContext()
	n := New(ctx, "n")
	n.Local = math.Translate(0, 0, 200) // Behind the eye at z=100 looking at -z
	n.Draw(nil, 0)

	if _, ok := n.ViewCoordinates(); ok {
		t.Error("node behind the camera must not project")
	}
}

func TestRayIntersectDistance(t *testing.T) {
	ctx := newFakeContext()
	n := New(ctx, "n")
	n.Bounds = sphereAt(0, 0, 0, 1)
	n.Draw(nil, 0)

	r := picking.Ray{Origin: math.Vec3{Z: 100}, Direction: math.Vec3{Z: -1}}
	dist, ok := n.RayIntersect(r)
	if !ok {
		t.Fatal("ray through the sphere should hit")
	}
	if absf(dist-99) > 0.001 {
		t.Errorf("hit distance: got %f, want 99", dist)
	}
}

func TestRayIntersectWithoutBounds(t *testing.T) {
	ctx := newFakeContext()
	n := New(ctx, "n")
	n.Draw(nil, 0)

	if _, ok := n.RayIntersect(picking.Ray{Origin: math.Vec3{Z: 100}, Direction: math.Vec3{Z: -1}}); ok {
		t.Error("node without bounding data must miss")
	}
}

func TestRayIntersectBeforeTraversal(t *testing.T) {
	ctx := newFakeContext()
	n := New(ctx, "n")
	n.Bounds = sphereAt(0, 0, 0, 1)

	// Never drawn: no resolved world transform to test against.
	if _, ok := n.RayIntersect(picking.Ray{Origin: math.Vec3{Z: 100}, Direction: math.Vec3{Z: -1}}); ok {
		t.Error("unvisited node must miss")
	}
}

func TestRayIntersectionsRecurseThroughUnflaggedNodes(t *testing.T) {
	ctx := newFakeContext()

	root := New(ctx, "root")
	root.Bounds = sphereAt(0, 0, 0, 1)

	mid := New(ctx, "mid")
	mid.Local = math.Translate(10, 0, 0)
	mid.Bounds = sphereAt(0, 0, 0, 1)

	leaf := New(ctx, "leaf")
	leaf.Local = math.Translate(10, 0, 0)
	leaf.Bounds = sphereAt(0, 0, 0, 1)
	leaf.Flags = 0x1

	root.Add(mid)
	mid.Add(leaf)
	root.Draw(nil, 0)

	// Straight down the leaf's world position (x=20). The root and mid
	// nodes carry no matching flags, yet recursion must still reach the
	// leaf through them.
	r := picking.Ray{Origin: math.Vec3{X: 20, Z: 100}, Direction: math.Vec3{Z: -1}}
	hits := root.RayIntersections(r, 0x1, nil)

	if len(hits) != 1 || hits[0] != leaf {
		t.Fatalf("hits: got %d, want exactly the leaf", len(hits))
	}
}

func TestRayIntersectionsFlagMask(t *testing.T) {
	ctx := newFakeContext()

	root := New(ctx, "root")
	root.Bounds = sphereAt(0, 0, 0, 1)
	root.Flags = 0x2

	a := New(ctx, "a")
	a.Bounds = sphereAt(0, 0, 0, 1)
	a.Flags = 0x1

	b := New(ctx, "b")
	b.Bounds = sphereAt(0, 0, 0, 1)
	b.Flags = 0x3

	root.Add(a)
	root.Add(b)
	root.Draw(nil, 0)

	r := picking.Ray{Origin: math.Vec3{Z: 100}, Direction: math.Vec3{Z: -1}}

	hits := root.RayIntersections(r, 0x1, nil)
	if len(hits) != 2 {
		t.Fatalf("mask 0x1: got %d hits, want a and b", len(hits))
	}
	for _, h := range hits {
		if h == root {
			t.Error("mask 0x1 must exclude the root (flags 0x2)")
		}
	}

	hits = root.RayIntersections(r, 0x2, nil)
	if len(hits) != 2 {
		t.Fatalf("mask 0x2: got %d hits, want root and b", len(hits))
	}
}

func TestRayIntersectionsMissFiltersNode(t *testing.T) {
	ctx := newFakeContext()

	root := New(ctx, "root")
	root.Flags = 0x1
	root.Bounds = sphereAt(0, 0, 0, 1) // Off the ray's path

	child := New(ctx, "child")
	child.Local = math.Translate(30, 0, 0)
	child.Flags = 0x1
	child.Bounds = sphereAt(0, 0, 0, 1)

	root.Add(child)
	root.Draw(nil, 0)

	r := picking.Ray{Origin: math.Vec3{X: 30, Z: 100}, Direction: math.Vec3{Z: -1}}
	hits := root.RayIntersections(r, 0x1, nil)

	// The root misses but its subtree is still searched.
	if len(hits) != 1 || hits[0] != child {
		t.Fatalf("hits: got %d, want only the child", len(hits))
	}
}

func TestRayIntersectionsAppendsToAccumulator(t *testing.T) {
	ctx := newFakeContext()

	n := New(ctx, "n")
	n.Flags = 0x1
	n.Bounds = sphereAt(0, 0, 0, 1)
	n.Draw(nil, 0)

	prior := New(ctx, "prior")
	acc := []*Node{prior}

	r := picking.Ray{Origin: math.Vec3{Z: 100}, Direction: math.Vec3{Z: -1}}
	acc = n.RayIntersections(r, 0x1, acc)

	if len(acc) != 2 || acc[0] != prior || acc[1] != n {
		t.Errorf("accumulator should grow in place, got %d entries", len(acc))
	}
}
