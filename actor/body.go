package actor

import (
	"github.com/akmonengine/obbworld/sat"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
)

// BodyType represents the type of body
type BodyType int

const (
	// BodyTypeStatic bodies never move (floors, walls)
	BodyTypeStatic BodyType = iota

	// BodyTypeKinematic bodies follow a scripted path through their Motion.
	// They push dynamic bodies but are never pushed back.
	BodyTypeKinematic

	// BodyTypeDynamic bodies are integrated every tick and respond to collisions
	BodyTypeDynamic
)

func (t BodyType) String() string {
	switch t {
	case BodyTypeStatic:
		return "static"
	case BodyTypeKinematic:
		return "kinematic"
	case BodyTypeDynamic:
		return "dynamic"
	default:
		return "unknown"
	}
}

type Material struct {
	Restitution  float64 // 0= no rebound, 1= perfect restitution
	GravityScale float64
	Drag         float64 // fraction of the velocity lost per tick, 0.0 - 1.0
}

// DefaultMaterial keeps half of the velocity on bounce, under full gravity
func DefaultMaterial() Material {
	return Material{
		Restitution:  0.5,
		GravityScale: 1.0,
	}
}

// Motion drives a body through one tick.
// When set, it replaces the default integration of the body.
type Motion interface {
	Advance(body *Body, tick uint64, gravity mgl64.Vec3)
}

// Collider is notified when the body touches another one.
// normal points toward this body: moving by normal*penetration separates it from other.
type Collider interface {
	OnCollision(self, other *Body, normal mgl64.Vec3, penetration float64)
}

// Body couples the transform of an entity with its collision boundary
type Body struct {
	ID        uuid.UUID
	Name      string
	Transform Transform
	// Boundary is nil for bodies that do not collide
	Boundary *OBB
	BodyType BodyType

	// Velocity in world units per tick
	Velocity mgl64.Vec3
	Material Material
	// Sensor bodies report contacts but take no part in the collision response
	Sensor bool

	Motion   Motion
	Collider Collider
}

// NewBody creates a body and places its boundary at the transform
func NewBody(name string, transform Transform, boundary *OBB, bodyType BodyType) *Body {
	body := &Body{
		ID:        uuid.New(),
		Name:      name,
		Transform: transform,
		Boundary:  boundary,
		BodyType:  bodyType,
		Material:  DefaultMaterial(),
	}
	body.UpdateBoundary()

	return body
}

// IsDynamic reports whether the body responds to collisions by default
func (b *Body) IsDynamic() bool {
	return b.BodyType == BodyTypeDynamic
}

// Model returns the world transform handed to the rendering layer
func (b *Body) Model() mgl64.Mat4 {
	return b.Transform.Matrix()
}

// UpdateBoundary moves the boundary to the current transform
func (b *Body) UpdateBoundary() {
	if b.Boundary == nil {
		return
	}
	b.Boundary.Update(b.Transform.Matrix())
}

// Intersects tests the boundaries of both bodies.
// The normal of the result points toward b.
func (b *Body) Intersects(other *Body) sat.Result {
	if b.Boundary == nil || other.Boundary == nil || b == other {
		return sat.Result{}
	}

	return b.Boundary.Intersects(other.Boundary)
}

// Integrate applies gravity and drag, then moves the body by its velocity: one explicit Euler tick
func (b *Body) Integrate(gravity mgl64.Vec3) {
	if b.BodyType != BodyTypeDynamic {
		return
	}

	b.Velocity = b.Velocity.Add(gravity.Mul(b.Material.GravityScale))
	b.Velocity = b.Velocity.Mul(1.0 - b.Material.Drag)
	b.Transform.Position = b.Transform.Position.Add(b.Velocity)

	b.UpdateBoundary()
}

// Step advances the body by one tick, through its Motion when there is one
func (b *Body) Step(tick uint64, gravity mgl64.Vec3) {
	if b.Motion != nil {
		b.Motion.Advance(b, tick, gravity)
	} else {
		b.Integrate(gravity)
	}

	b.UpdateBoundary()
}
