package sprite

import (
	"testing"

	"github.com/Faultbox/sprite3d/internal/engine/lighting"
	"github.com/Faultbox/sprite3d/internal/engine/model"
	"github.com/Faultbox/sprite3d/pkg/math"
)

func TestAddReplacesByName(t *testing.T) {
	ctx := newFakeContext()
	root := New(ctx, "root")

	first := New(ctx, "hat")
	second := New(ctx, "hat")

	root.Add(first)
	root.Add(second)

	if root.NumChildren() != 1 {
		t.Fatalf("children: got %d, want 1", root.NumChildren())
	}
	if root.Child("hat") != second {
		t.Error("a later child with the same name should replace the earlier one")
	}
}

func TestRemoveDetachesWithoutDestroying(t *testing.T) {
	ctx := newFakeContext()
	root := New(ctx, "root")
	child := New(ctx, "child")
	root.Add(child)

	got := root.Remove("child")
	if got != child {
		t.Error("remove should hand back the detached child")
	}
	if root.NumChildren() != 0 {
		t.Error("removed child should no longer be attached")
	}
	if len(ctx.released) != 0 {
		t.Error("remove must not release anything")
	}

	if root.Remove("missing") != nil {
		t.Error("removing an absent name should return nil")
	}
}

func TestSetAllMaterialBlackRecurses(t *testing.T) {
	ctx := newFakeContext()

	root := New(ctx, "root")
	root.Material = &model.Material{Diffuse: &lighting.Color{R: 1, G: 1, B: 1, A: 1}}

	child := New(ctx, "child") // No material of its own
	root.Add(child)

	grandchild := New(ctx, "grandchild")
	grandchild.Material = &model.Material{Emissive: &lighting.Color{R: 1, A: 1}}
	child.Add(grandchild)

	root.SetAllMaterialBlack()

	for _, n := range []*Node{root, child, grandchild} {
		if n.Material == nil {
			t.Fatalf("%s: material should exist after blackout", n.Name)
		}
		d := n.Material.Diffuse
		if d == nil || d.R != 0 || d.G != 0 || d.B != 0 || d.A != 1 {
			t.Errorf("%s: diffuse should be opaque black, got %v", n.Name, d)
		}
	}
}

func TestNewNodeDefaults(t *testing.T) {
	ctx := newFakeContext()
	n := New(ctx, "n")

	if n.Context() != ctx {
		t.Error("node should report the context it was bound to")
	}
	if n.Local != math.Identity() {
		t.Error("a fresh node's local transform should be identity")
	}
	if n.NumChildren() != 0 {
		t.Error("a fresh node has no children")
	}
}
