package obbworld

import (
	"github.com/akmonengine/obbworld/actor"
	"github.com/akmonengine/obbworld/constraint"
	"github.com/akmonengine/obbworld/sat"
)

// Pair of bodies tested against each other
type Pair struct {
	BodyA *actor.Body
	BodyB *actor.Body
}

// CollisionPair is a pair found touching during the collide phase
type CollisionPair struct {
	Pair
	Result sat.Result
}

// FindPairs returns every pair worth testing, in a stable order (i < j).
// This is a brute-force all-pairs search, suited to a handful of bodies.
// A pair is skipped when no body in it can react: a dynamic body, a collision hook or a sensor.
func FindPairs(bodies []*actor.Body) []Pair {
	pairs := make([]Pair, 0, len(bodies))

	for i, bodyA := range bodies {
		if bodyA.Boundary == nil {
			continue
		}
		for _, bodyB := range bodies[i+1:] {
			if bodyB.Boundary == nil {
				continue
			}
			if !reacts(bodyA) && !reacts(bodyB) {
				continue
			}
			pairs = append(pairs, Pair{BodyA: bodyA, BodyB: bodyB})
		}
	}

	return pairs
}

func reacts(body *actor.Body) bool {
	return body.IsDynamic() || body.Collider != nil || body.Sensor
}

// CollideAll runs the separating axis test on every pair.
// Tests run on workersCount goroutines; the result keeps the order of pairs.
func CollideAll(pairs []Pair, workersCount int) []CollisionPair {
	results := make([]sat.Result, len(pairs))
	task(workersCount, len(pairs), func(i int) {
		results[i] = pairs[i].BodyA.Intersects(pairs[i].BodyB)
	})

	collisions := make([]CollisionPair, 0)
	for i, result := range results {
		if result.Hit {
			collisions = append(collisions, CollisionPair{Pair: pairs[i], Result: result})
		}
	}

	return collisions
}

// ResolveAll solves the collisions one after the other, in the order they were found.
// Each pair is tested again first: a previous contact may have moved one of its bodies.
// It returns the contacts that were still touching.
func ResolveAll(collisions []CollisionPair) []*constraint.Contact {
	contacts := make([]*constraint.Contact, 0, len(collisions))

	for _, collision := range collisions {
		result := collision.BodyA.Intersects(collision.BodyB)
		if !result.Hit {
			continue
		}

		contact := &constraint.Contact{
			BodyA:       collision.BodyA,
			BodyB:       collision.BodyB,
			Normal:      result.Normal,
			Penetration: result.Penetration,
		}
		contact.Solve()
		contacts = append(contacts, contact)
	}

	return contacts
}
