package constraint

import (
	"github.com/akmonengine/obbworld/actor"
	"github.com/go-gl/mathgl/mgl64"
)

// Contact between two bodies found touching during a step
type Contact struct {
	BodyA *actor.Body
	BodyB *actor.Body
	// Normal points from BodyB toward BodyA
	Normal      mgl64.Vec3
	Penetration float64
}

// Solve notifies BodyA, then BodyB with the opposite normal.
// Sensor pairs are not solved, they only report the contact.
func (c *Contact) Solve() {
	if c.BodyA.Sensor || c.BodyB.Sensor {
		return
	}

	notify(c.BodyA, c.BodyB, c.Normal, c.Penetration)
	notify(c.BodyB, c.BodyA, c.Normal.Mul(-1), c.Penetration)
}

// notify calls the collision hook of self, or applies the default response of dynamic bodies.
// Static and kinematic bodies without hook ignore the contact.
func notify(self, other *actor.Body, normal mgl64.Vec3, penetration float64) {
	if self.Collider != nil {
		self.Collider.OnCollision(self, other, normal, penetration)
		return
	}

	if self.IsDynamic() {
		Respond(self, normal, penetration)
	}
}

// Respond bounces the body off a contact and pushes it out of the overlap.
// The velocity is reflected about the normal and scaled by the restitution, only when the
// body moves into the contact: a body already leaving it keeps its velocity.
// The boundary is refreshed so that the next tests of the same tick see the corrected pose.
func Respond(body *actor.Body, normal mgl64.Vec3, penetration float64) {
	if body.Velocity.Dot(normal) < 0 {
		body.Velocity = Reflect(body.Velocity, normal).Mul(body.Material.Restitution)
		clampSmallVelocities(body)
	}

	body.Transform.Position = body.Transform.Position.Add(normal.Mul(penetration))
	body.UpdateBoundary()
}
