package constraint

import (
	"github.com/akmonengine/obbworld/actor"
	"github.com/go-gl/mathgl/mgl64"
)

type Constraint interface {
	Solve()
}

// Reflect mirrors v about the plane of normal n: v - 2·dot(v,n)·n.
// n must be a unit vector.
func Reflect(v, n mgl64.Vec3) mgl64.Vec3 {
	return v.Sub(n.Mul(2 * v.Dot(n)))
}

func clampSmallVelocities(rb *actor.Body) {
	const velocityThreshold = 1e-9

	if rb.Velocity.Len() < velocityThreshold {
		rb.Velocity = mgl64.Vec3{0, 0, 0}
	}
}
