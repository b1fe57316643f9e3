package sprite

import (
	"github.com/Faultbox/sprite3d/internal/engine/camera"
	"github.com/Faultbox/sprite3d/pkg/math"
)

// cameraDistance returns the signed distance of p from the eye, measured
// along the line through the eye and the look-at target. The distance is
// negated when the eye-to-p vector disagrees in sign with the camera forward
// vector on any axis, which marks "behind the camera plane".
func cameraDistance(cam camera.State, p math.Vec3) float32 {
	fwd := cam.Forward()
	to := p.Sub(cam.Eye)

	proj := cam.Eye.Add(fwd.Scale(to.Dot(fwd)))
	dist := proj.Distance(cam.Eye)

	if fwd.X*to.X < 0 || fwd.Y*to.Y < 0 || fwd.Z*to.Z < 0 {
		dist = -dist
	}
	return dist
}

// updateScalars recomputes the node's per-frame derived scalars from its
// position this frame. Runs on every visit, before any hook can reroute the
// transform stage.
func (n *Node) updateScalars(cam camera.State, parent *math.Mat4) {
	pos := n.Local.Translation()
	if parent != nil {
		pos = parent.TransformPoint(pos)
	}

	n.CamDistance = cameraDistance(cam, pos)
	n.ApparentSize = apparentSize(n.CamDistance, cam.FovY)
	n.LODTarget = lodTarget(n.ApparentSize, cam.ViewportW, cam.ViewportH)
}

// resolveTransform computes the node's world transform: parent composition,
// constant-size rescale, then billboard corrections.
func (n *Node) resolveTransform(cam camera.State, parent *math.Mat4) {
	world := n.Local
	if parent != nil {
		world = parent.Mul(n.Local)
	}

	if n.ConstantSize && n.ApparentSize > 0 {
		world = world.Mul(math.ScaleUniform(1 / n.ApparentSize))
	}

	if !n.Billboard.IsZero() {
		// Face the camera: the rotation part becomes the inverse view
		// rotation, so node forward matches the view direction and node up
		// matches the camera's up.
		world.SetMat3x3(math.Transpose3x3(cam.View().Mat3x3()))
	}

	// Cylindrical corrections compose in fixed X, Y, Z order.
	world = n.applyCylindrical(world, cam, n.BillboardX, 0)
	world = n.applyCylindrical(world, cam, n.BillboardY, 1)
	world = n.applyCylindrical(world, cam, n.BillboardZ, 2)

	n.World = world
	n.hasWorld = true
}

// applyCylindrical rotates world around the configured local axis so the
// node turns towards the camera in the plane perpendicular to that axis.
// The raw angle is scaled by 2m^2 - 1/m^2 where m is the configured vector's
// magnitude; m = 1 applies the full correction, m ~= 0.605 flips it to a
// double reverse. A zero vector disables the axis.
func (n *Node) applyCylindrical(world math.Mat4, cam camera.State, axisVec math.Vec3, axis int) math.Mat4 {
	if axisVec.IsZero() {
		return world
	}

	m := axisVec.Length()
	factor := 2*m*m - 1/(m*m)

	axisLocal := axisVec.Scale(1 / m)
	axisWorld := world.TransformDirection(axisLocal).Normalize()
	if axisWorld.IsZero() {
		return world
	}

	// Reference basis: the next axis in cyclic order (X->Y, Y->Z, Z->X),
	// which lies in the rotation plane for a node at rest.
	ref := world.Basis((axis + 1) % 3)
	toNode := world.Translation().Sub(cam.Eye)

	angle := ref.SignedAngleOnPlane(toNode, axisWorld)
	if angle == 0 {
		return world
	}

	return world.Mul(math.RotateAxis(axisLocal, angle*factor))
}
