package obbworld

import (
	"fmt"

	"github.com/akmonengine/obbworld/actor"
	"github.com/akmonengine/obbworld/constraint"
	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"
)

const DEFAULT_WORKERS = 1

const (
	DEFAULT_DEPENETRATION_STEP     = 0.01
	DEFAULT_DEPENETRATION_MAX_ITER = 1000
)

type World struct {
	// List of all bodies in the world
	Bodies []*actor.Body
	// Gravity acceleration, in world units per tick²
	Gravity mgl64.Vec3
	// Workers running the pair tests. Collisions are always resolved on the calling goroutine.
	Workers int

	DepenetrationStep    float64
	DepenetrationMaxIter int

	Logger *zap.Logger
	Events Events

	tick uint64
}

// NewWorld creates an empty world with the given gravity
func NewWorld(gravity mgl64.Vec3) *World {
	return &World{
		Gravity:              gravity,
		Workers:              DEFAULT_WORKERS,
		DepenetrationStep:    DEFAULT_DEPENETRATION_STEP,
		DepenetrationMaxIter: DEFAULT_DEPENETRATION_MAX_ITER,
		Logger:               zap.NewNop(),
		Events:               NewEvents(),
	}
}

// Tick returns the number of steps run so far
func (w *World) Tick() uint64 {
	return w.tick
}

// AddBody adds a body to the world
func (w *World) AddBody(body *actor.Body) {
	body.UpdateBoundary()
	w.Bodies = append(w.Bodies, body)
}

// Spawn adds a body and, for dynamic bodies, lifts it out of any body it overlaps.
// It returns the number of nudges applied. When the body cannot be freed it stays in the world,
// at its last pose, and the error wraps constraint.ErrDepenetrationExhausted.
func (w *World) Spawn(body *actor.Body) (int, error) {
	w.AddBody(body)
	if !body.IsDynamic() {
		return 0, nil
	}

	nudges, err := constraint.Depenetrate(body, w.Bodies, w.DepenetrationStep, w.DepenetrationMaxIter)
	if err != nil {
		w.logger().Warn("spawned body still overlaps",
			zap.String("body", body.Name),
			zap.Int("nudges", nudges),
			zap.Error(err),
		)
		return nudges, fmt.Errorf("spawn %s: %w", body.Name, err)
	}

	w.logger().Debug("spawned body",
		zap.String("body", body.Name),
		zap.Stringer("id", body.ID),
		zap.Int("nudges", nudges),
	)
	return nudges, nil
}

// RemoveBody removes a body from the world
func (w *World) RemoveBody(body *actor.Body) {
	k := -1
	for i, b := range w.Bodies {
		if b == body {
			k = i
			break
		}
	}

	if k != -1 {
		w.Bodies = append(w.Bodies[:k], w.Bodies[k+1:]...)
	}

	w.Events.forget(body)
}

// Step runs one tick: integrate, collide, resolve, then emit the contact events
func (w *World) Step() {
	w.Workers = max(DEFAULT_WORKERS, w.Workers)

	// Phase 1: Integrate dynamic and kinematic bodies, refresh every boundary
	w.integrate()

	// Phase 2: Collide all pairs
	collisions := CollideAll(FindPairs(w.Bodies), w.Workers)

	// Phase 3: Resolve, sequentially in discovery order
	contacts := ResolveAll(collisions)
	for _, contact := range contacts {
		w.logger().Debug("contact",
			zap.Uint64("tick", w.tick),
			zap.String("bodyA", contact.BodyA.Name),
			zap.String("bodyB", contact.BodyB.Name),
			zap.Float64("penetration", contact.Penetration),
		)
	}

	// Phase 4: Done
	w.Events.recordContacts(contacts)
	w.Events.flush()
	w.tick++
}

func (w *World) integrate() {
	for _, body := range w.Bodies {
		body.Step(w.tick, w.Gravity)
	}
}

func (w *World) logger() *zap.Logger {
	if w.Logger == nil {
		w.Logger = zap.NewNop()
	}
	return w.Logger
}
