// Package sprite implements the hierarchical scene-graph node: a tree element
// that owns a transform, a level-of-detail drawable list, mipmap selection,
// billboard and constant-size behaviors, and its child nodes. The per-frame
// Draw traversal resolves every visited node's world transform against the
// current camera, selects detail levels, and submits drawables through a
// render.Context.
package sprite

import (
	"go.uber.org/zap"

	"github.com/Faultbox/sprite3d/internal/engine/model"
	"github.com/Faultbox/sprite3d/internal/engine/render"
	"github.com/Faultbox/sprite3d/internal/logger"
	"github.com/Faultbox/sprite3d/pkg/math"
)

// Node is a scene-graph element. Fields are mutated directly by the host and
// by the node's own hooks during traversal; traversal itself must stay on the
// goroutine that created the node.
type Node struct {
	// Name identifies this node among its siblings.
	Name string

	// Local is the author-set local transform.
	Local math.Mat4

	// World is the transform resolved by the last traversal pass. It is only
	// meaningful during/after a pass that visited this node.
	World math.Mat4

	// LODs are the detail levels, finest first. A nil entry means "draw
	// nothing at that level". LODScale shifts which level the lod target
	// selects.
	LODs     []model.Drawable
	LODScale float32

	// Mipmaps are selected with the same lod target but their own scale.
	// The selected texture overrides the drawable's own texture.
	Mipmaps  []model.Texture
	MipScale float32

	// Material is shared, externally owned shading state. nil slots leave
	// the renderer's current values untouched.
	Material *model.Material

	// Flags is a user classification bitmask used by queries and hooks.
	Flags uint32

	// ConstantSize cancels perspective scaling so the node keeps its
	// on-screen size regardless of camera distance.
	ConstantSize bool

	// Billboard enables spherical billboarding when non-zero: the node's
	// rotation is replaced so it always faces the camera.
	Billboard math.Vec3

	// BillboardX/Y/Z enable cylindrical billboarding around the given local
	// axis when non-zero. The vector's magnitude m shapes the correction
	// angle through the factor 2m^2 - 1/m^2 (m = 1 gives the full
	// correction; m ~= 0.605 gives a double reverse).
	BillboardX math.Vec3
	BillboardY math.Vec3
	BillboardZ math.Vec3

	// Bounds is the node-local bounding sphere. The mesh draw path keeps it
	// current; for TriangleBuffer drawables the caller maintains it.
	Bounds *math.Sphere

	// AutoClip reports this node's world bounds to the context's clip-range
	// accumulator after each mesh draw.
	AutoClip bool

	// Hooks are the optional traversal callbacks.
	Hooks Hooks

	// Derived per-frame scalars, valid after a traversal visit.
	ApparentSize float32
	LODTarget    float32
	CamDistance  float32

	ctx      render.Context
	children map[string]*Node
	owner    uint64

	hasWorld    bool
	ownMaterial *model.Material
	disposed    bool
}

// New creates a node bound to a rendering context. The node is affiliated
// with the calling goroutine; traversal, queries and Dispose from any other
// goroutine are reported as usage errors.
func New(ctx render.Context, name string) *Node {
	return &Node{
		Name:     name,
		Local:    math.Identity(),
		ctx:      ctx,
		children: map[string]*Node{},
		owner:    goroutineID(),
	}
}

// Context returns the rendering context this node draws through.
func (n *Node) Context() render.Context {
	return n.ctx
}

// Add inserts child keyed by its own name. A later child with the same name
// replaces the earlier one. Returns n for chaining.
func (n *Node) Add(child *Node) *Node {
	n.children[child.Name] = child
	return n
}

// Child returns the child with the given name, or nil.
func (n *Node) Child(name string) *Node {
	return n.children[name]
}

// Remove detaches and returns the named child without destroying it.
func (n *Node) Remove(name string) *Node {
	c := n.children[name]
	delete(n.children, name)
	return c
}

// NumChildren returns the number of direct children.
func (n *Node) NumChildren() int {
	return len(n.children)
}

// Children returns the direct children in no particular order.
func (n *Node) Children() []*Node {
	out := make([]*Node, 0, len(n.children))
	for _, c := range n.children {
		out = append(out, c)
	}
	return out
}

// SetAllMaterialBlack sets the material colors of this node and every
// descendant to opaque black, creating a material where a node has none.
func (n *Node) SetAllMaterialBlack() {
	if n.Material == nil {
		n.Material = &model.Material{}
	}
	n.Material.SetBlack()
	for _, c := range n.children {
		c.SetAllMaterialBlack()
	}
}

// Dispose releases the resources this node created itself (the lazily
// created default material). Shared drawables, mipmaps and children are
// never destroyed. Safe to call more than once; the second call is a no-op
// reported through the diagnostic log.
func (n *Node) Dispose() {
	n.checkOwner("Dispose")
	if n.disposed {
		logger.Warn("node disposed twice", zap.String("node", n.Name))
		return
	}
	n.disposed = true

	if n.ownMaterial != nil {
		n.ctx.ReleaseMaterial(n.ownMaterial)
		n.ownMaterial = nil
	}
}
