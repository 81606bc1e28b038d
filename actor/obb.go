package actor

import (
	"github.com/akmonengine/obbworld/sat"
	"github.com/go-gl/mathgl/mgl64"
)

// OBB is an oriented bounding box: a box defined once in the local frame of its owner,
// placed in the world by a transform refreshed every tick.
type OBB struct {
	center      mgl64.Vec3
	halfExtents mgl64.Vec3
	points      [8]mgl64.Vec3

	// M is the world transform, usually the model matrix of the owning entity
	M mgl64.Mat4
}

// NewOBB creates a box centered on center (local space) with the given half-extents.
// A half-extent of 0 is allowed, e.g. for flat floor slabs.
func NewOBB(center, halfExtents mgl64.Vec3) *OBB {
	hx := mgl64.Vec3{halfExtents.X(), 0, 0}
	hy := mgl64.Vec3{0, halfExtents.Y(), 0}
	hz := mgl64.Vec3{0, 0, halfExtents.Z()}

	// Bottom face, then top face. Edges 0→1, 0→3 and 0→4 follow X, Z and Y.
	return &OBB{
		center:      center,
		halfExtents: halfExtents,
		M:           mgl64.Ident4(),
		points: [8]mgl64.Vec3{
			center.Add(hx).Sub(hy).Add(hz),
			center.Sub(hx).Sub(hy).Add(hz),
			center.Sub(hx).Sub(hy).Sub(hz),
			center.Add(hx).Sub(hy).Sub(hz),
			center.Add(hx).Add(hy).Add(hz),
			center.Sub(hx).Add(hy).Add(hz),
			center.Sub(hx).Add(hy).Sub(hz),
			center.Add(hx).Add(hy).Sub(hz),
		},
	}
}

// Update replaces the world transform.
// Must be called after the owner moved, and before testing it against other boxes.
func (o *OBB) Update(m mgl64.Mat4) {
	o.M = m
}

// LocalCenter returns the center of the box in its local frame
func (o *OBB) LocalCenter() mgl64.Vec3 {
	return o.center
}

// HalfExtents returns the half-extents of the box in its local frame
func (o *OBB) HalfExtents() mgl64.Vec3 {
	return o.halfExtents
}

// Corners returns the 8 corners in world space
func (o *OBB) Corners() [8]mgl64.Vec3 {
	var corners [8]mgl64.Vec3
	for i, point := range o.points {
		corners[i] = o.M.Mul4x1(point.Vec4(1)).Vec3()
	}

	return corners
}

// Axes returns the world-space face normals.
// They are only guaranteed orthogonal when M carries a uniform scale.
func (o *OBB) Axes() []mgl64.Vec3 {
	return sat.Axes(o.Corners())
}

// Project returns the shadow of the box on the axis
func (o *OBB) Project(axis mgl64.Vec3) sat.Line {
	return sat.Project(o.Corners(), axis)
}

// Center returns the center of the box in world space
func (o *OBB) Center() mgl64.Vec3 {
	return o.M.Mul4x1(o.center.Vec4(1)).Vec3()
}

// AABB returns the world-space axis-aligned box enclosing the OBB
func (o *OBB) AABB() AABB {
	corners := o.Corners()
	return NewAABB(corners[:]...)
}

// Intersects runs the separating axis test against another box
func (o *OBB) Intersects(other *OBB) sat.Result {
	return sat.Intersects(o, other)
}
