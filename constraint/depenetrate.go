package constraint

import (
	"errors"

	"github.com/akmonengine/obbworld/actor"
	"github.com/go-gl/mathgl/mgl64"
)

var ErrDepenetrationExhausted = errors.New("depenetration: body still overlaps after max iterations")

// Up is the direction bodies are nudged toward when they spawn inside other bodies
var Up = mgl64.Vec3{0, 1, 0}

// Depenetrate nudges the body by step along Up until it touches none of the others.
// It stops after maxIter nudges and returns ErrDepenetrationExhausted, leaving the body at
// its last pose. It returns the number of nudges applied.
func Depenetrate(body *actor.Body, others []*actor.Body, step float64, maxIter int) (int, error) {
	body.UpdateBoundary()

	for i := 0; ; i++ {
		if !overlapsAny(body, others) {
			return i, nil
		}
		if i >= maxIter {
			return i, ErrDepenetrationExhausted
		}

		body.Transform.Position = body.Transform.Position.Add(Up.Mul(step))
		body.UpdateBoundary()
	}
}

func overlapsAny(body *actor.Body, others []*actor.Body) bool {
	for _, other := range others {
		if other == body || other.Sensor {
			continue
		}
		if result := body.Intersects(other); result.Hit && result.Penetration > 0 {
			return true
		}
	}

	return false
}
