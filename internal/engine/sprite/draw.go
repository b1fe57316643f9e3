package sprite

import (
	"go.uber.org/zap"

	"github.com/Faultbox/sprite3d/internal/engine/model"
	"github.com/Faultbox/sprite3d/internal/logger"
	"github.com/Faultbox/sprite3d/pkg/math"
)

// Draw runs one traversal pass over this node and its subtree. parent is the
// incoming parent world transform (nil when this node is a root for the
// pass); flags is the filter bitmask handed to every hook in the subtree.
//
// Per node the sequence is: scalar update, PreNode, transform resolution (or
// reuse on Skip), PreChildren, children (in no guaranteed order), PreDraw,
// local drawable submission, Cleanup. A panic anywhere in the sequence is
// recovered here, logged, and treated as "this node's draw silently failed
// this frame" without disturbing siblings or ancestors.
func (n *Node) Draw(parent *math.Mat4, flags uint32) {
	n.checkOwner("Draw")

	defer func() {
		if r := recover(); r != nil {
			logger.Error("node draw failed",
				zap.String("node", n.Name),
				zap.Any("panic", r),
			)
		}
	}()

	cam := n.ctx.Camera()

	// Apparent size is recomputed on every visit, before any hook can
	// reroute the rest of the sequence.
	n.updateScalars(cam, parent)

	if n.Hooks.PreNode != nil {
		switch n.Hooks.PreNode(n, flags) {
		case Abort:
			return
		case Skip:
			// Reuse the previously resolved transform (multi-pass
			// submission of the same node within a frame). The first visit
			// has nothing to reuse and resolves anyway.
			if !n.hasWorld {
				n.resolveTransform(cam, parent)
			}
		default:
			n.resolveTransform(cam, parent)
		}
	} else {
		n.resolveTransform(cam, parent)
	}

	skipChildren := false
	if n.Hooks.PreChildren != nil {
		switch n.Hooks.PreChildren(n, flags) {
		case Abort:
			return
		case Skip:
			skipChildren = true
		}
	}

	if !skipChildren {
		for _, child := range n.children {
			child.Draw(&n.World, flags)
		}
	}

	if n.Hooks.PreDraw != nil {
		if n.Hooks.PreDraw(n, flags) == Abort {
			return
		}
	}

	n.drawLocal()

	if n.Hooks.Cleanup != nil {
		n.Hooks.Cleanup(n)
	}
}

// drawLocal resolves the LOD drawable and submits it.
func (n *Node) drawLocal() {
	idx, ok := selectLevel(n.LODScale, n.LODTarget, len(n.LODs))
	if !ok {
		return
	}
	drawable := n.LODs[idx]
	if drawable == nil {
		return
	}

	var tex model.Texture
	if mi, ok := selectLevel(n.MipScale, n.LODTarget, len(n.Mipmaps)); ok {
		tex = n.Mipmaps[mi]
	}

	switch d := drawable.(type) {
	case *model.Mesh:
		n.drawMesh(d, tex)
	case *model.TriangleBuffer:
		n.drawTriangles(d, tex)
	default:
		logger.Warn("unknown drawable type", zap.String("node", n.Name))
		return
	}

	n.ctx.ResetDepthState()
}

// drawMesh submits every sub-mesh, merging their bounding spheres into the
// node's local sphere. This is the only path that maintains Bounds.
func (n *Node) drawMesh(mesh *model.Mesh, tex model.Texture) {
	var merged math.Sphere
	submitted := false

	for i := range mesh.Subs {
		sub := &mesh.Subs[i]

		if n.Hooks.PreMesh != nil {
			r := n.Hooks.PreMesh(n, sub, i)
			if r == Abort {
				break
			}
			if r == Skip {
				continue
			}
		}

		merged = merged.Merge(sub.Bounds)
		n.bindEnvironment(n.Material)
		n.ctx.DrawMesh(sub, n.World, tex)
		submitted = true
	}

	if !submitted {
		return
	}

	n.Bounds = &merged
	if n.AutoClip {
		n.ctx.ExtendClipRange(merged.TransformedBy(n.World))
	}
}

// drawTriangles submits a raw triangle buffer. Raw buffers carry no bounds,
// so Bounds is left for the caller to maintain. A node with no material gets
// a lazily created default it owns and releases on Dispose.
func (n *Node) drawTriangles(tri *model.TriangleBuffer, tex model.Texture) {
	mat := n.Material
	if mat == nil {
		if n.ownMaterial == nil {
			n.ownMaterial = model.DefaultMaterial()
		}
		mat = n.ownMaterial
	}

	n.bindEnvironment(mat)
	n.ctx.DrawTriangles(tri, n.World, tex)
}

// bindEnvironment pushes lights, ambient, fog and material state to the
// context. Absent optionals leave the context's prior values untouched.
func (n *Node) bindEnvironment(mat *model.Material) {
	env := n.ctx.Environment()
	n.ctx.SetLights(env.BoundLights())
	n.ctx.SetAmbient(env.Ambient)
	n.ctx.SetFog(env.Fog)
	n.ctx.SetMaterial(mat)
}
