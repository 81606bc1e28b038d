package actor

import "github.com/go-gl/mathgl/mgl64"

// Transform represents the pose of an entity in 3D space
type Transform struct {
	Position mgl64.Vec3
	// Rotation holds Euler angles in radians, about X, Y and Z
	Rotation mgl64.Vec3
	// Anchor is the pivot point of the rotation, in local space
	Anchor mgl64.Vec3
	Scale  mgl64.Vec3
}

// NewTransform creates an identity transform
func NewTransform() Transform {
	return Transform{
		Position: mgl64.Vec3{0, 0, 0},
		Scale:    mgl64.Vec3{1, 1, 1},
	}
}

// Matrix returns the model matrix T(p) · T(-a) · Rx · Ry · Rz · T(a) · S(s).
// Read right to left: scale, move the anchor to the origin, rotate, move it back, translate.
// Changing this order changes how entities pivot around their anchor.
func (t Transform) Matrix() mgl64.Mat4 {
	translate := mgl64.Translate3D(t.Position.X(), t.Position.Y(), t.Position.Z())
	unanchor := mgl64.Translate3D(-t.Anchor.X(), -t.Anchor.Y(), -t.Anchor.Z())
	anchor := mgl64.Translate3D(t.Anchor.X(), t.Anchor.Y(), t.Anchor.Z())
	scale := mgl64.Scale3D(t.Scale.X(), t.Scale.Y(), t.Scale.Z())

	rotate := mgl64.HomogRotate3DX(t.Rotation.X()).
		Mul4(mgl64.HomogRotate3DY(t.Rotation.Y())).
		Mul4(mgl64.HomogRotate3DZ(t.Rotation.Z()))

	return translate.Mul4(unanchor).Mul4(rotate).Mul4(anchor).Mul4(scale)
}

// TransformPoint applies the model matrix to a local point
func (t Transform) TransformPoint(point mgl64.Vec3) mgl64.Vec3 {
	return t.Matrix().Mul4x1(point.Vec4(1)).Vec3()
}
