package sprite

import (
	"github.com/Faultbox/sprite3d/internal/engine/picking"
	"github.com/Faultbox/sprite3d/pkg/math"
)

// ViewCoordinates projects the node's last-resolved world position to screen
// pixels. ok is false when the node is behind the camera.
func (n *Node) ViewCoordinates() (pt math.Vec2, ok bool) {
	n.checkOwner("ViewCoordinates")

	cam := n.ctx.Camera()
	clip := cam.ViewProjection().MulVec4(math.Vec4{
		n.World[12], n.World[13], n.World[14], 1,
	})
	if clip[3] <= 0 {
		return math.Vec2{}, false
	}

	ndcX := clip[0] / clip[3]
	ndcY := clip[1] / clip[3]

	return math.Vec2{
		X: (ndcX*0.5 + 0.5) * cam.ViewportW,
		Y: (1 - (ndcY*0.5 + 0.5)) * cam.ViewportH,
	}, true
}

// worldBounds returns the node's bounding sphere in world space via the
// last-resolved world transform. ok is false when the node has no sphere or
// was never visited by a traversal.
func (n *Node) worldBounds() (math.Sphere, bool) {
	if n.Bounds == nil || !n.hasWorld {
		return math.Sphere{}, false
	}
	return n.Bounds.TransformedBy(n.World), true
}

// RayIntersect tests the ray against this node's world-space bounding
// sphere. Returns the hit distance; ok is false for a miss or when the node
// has no bounding data.
func (n *Node) RayIntersect(r picking.Ray) (dist float32, ok bool) {
	n.checkOwner("RayIntersect")

	s, ok := n.worldBounds()
	if !ok {
		return 0, false
	}
	return r.IntersectSphere(s)
}

// RayIntersections collects, in pre-order, every node in this subtree whose
// flags overlap mask and whose world-space bounding sphere the ray hits.
// Children are always visited: the flag test and a parent miss filter the
// result list, they never prune recursion. acc may be nil; the grown slice
// is returned.
func (n *Node) RayIntersections(r picking.Ray, mask uint32, acc []*Node) []*Node {
	n.checkOwner("RayIntersections")
	return n.collectIntersections(r, mask, acc)
}

func (n *Node) collectIntersections(r picking.Ray, mask uint32, acc []*Node) []*Node {
	if n.Flags&mask != 0 {
		if s, ok := n.worldBounds(); ok {
			if _, hit := r.IntersectSphere(s); hit {
				acc = append(acc, n)
			}
		}
	}

	for _, child := range n.children {
		acc = child.collectIntersections(r, mask, acc)
	}
	return acc
}
