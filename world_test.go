package obbworld

import (
	"math"
	"testing"

	"github.com/akmonengine/obbworld/actor"
	"github.com/akmonengine/obbworld/constraint"
	"github.com/akmonengine/obbworld/kinematic"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

var gravity = mgl64.Vec3{0, -0.01, 0}

func bottom(body *actor.Body) float64 {
	return body.Boundary.AABB().Min.Y()
}

// =============================================================================
// Step Tests
// =============================================================================

func TestWorld_DropOnFloor(t *testing.T) {
	world := NewWorld(gravity)
	world.AddBody(createFloor())
	crate := createBox("crate", mgl64.Vec3{0, 3, 0}, mgl64.Vec3{0.5, 0.5, 0.5}, actor.BodyTypeDynamic)
	world.AddBody(crate)

	for range 500 {
		world.Step()
		require.GreaterOrEqual(t, bottom(crate), -1e-6, "tick %d", world.Tick())
	}

	assert.Equal(t, uint64(500), world.Tick())
	assert.InDelta(t, 0.5, crate.Transform.Position.Y(), 1e-6)
	// At rest the velocity settles on g/3 after each bounce
	assert.InDelta(t, 0.01/3, crate.Velocity.Y(), 1e-6)
	assert.Equal(t, 0.0, crate.Velocity.X())
	assert.Equal(t, 0.0, crate.Velocity.Z())
}

func TestWorld_RotatedCrateStaysAboveFloor(t *testing.T) {
	world := NewWorld(gravity)
	world.AddBody(createFloor())

	transform := actor.NewTransform()
	transform.Position = mgl64.Vec3{1, 4, -2}
	transform.Rotation = mgl64.Vec3{0.3, 0.7, 0.2}
	crate := actor.NewBody("crate", transform, actor.NewOBB(mgl64.Vec3{}, mgl64.Vec3{0.5, 0.5, 0.5}), actor.BodyTypeDynamic)
	world.AddBody(crate)

	for range 400 {
		world.Step()
		require.GreaterOrEqual(t, bottom(crate), -1e-6, "tick %d", world.Tick())
	}
}

func TestWorld_StaticAndKinematicDoNotFall(t *testing.T) {
	world := NewWorld(gravity)
	floor := createFloor()
	platform := createBox("platform", mgl64.Vec3{0, 5, 0}, mgl64.Vec3{1, 0.1, 1}, actor.BodyTypeKinematic)
	world.AddBody(floor)
	world.AddBody(platform)

	for range 10 {
		world.Step()
	}

	assert.Equal(t, mgl64.Vec3{}, floor.Transform.Position)
	assert.Equal(t, mgl64.Vec3{0, 5, 0}, platform.Transform.Position)
}

func TestWorld_LiftCarriesCrate(t *testing.T) {
	world := NewWorld(gravity)
	lift := createBox("lift", mgl64.Vec3{0, 1, 0}, mgl64.Vec3{2, 0.1, 2}, actor.BodyTypeKinematic)
	lift.Motion = &kinematic.Oscillator{
		Origin:    mgl64.Vec3{0, 1, 0},
		Axis:      mgl64.Vec3{0, 1, 0},
		Amplitude: 1,
		Period:    200,
	}
	crate := createBox("crate", mgl64.Vec3{0, 1.6, 0}, mgl64.Vec3{0.5, 0.5, 0.5}, actor.BodyTypeDynamic)
	world.AddBody(lift)
	world.AddBody(crate)

	highest := 0.0
	for range 100 {
		world.Step()
		liftTop := lift.Boundary.AABB().Max.Y()
		require.GreaterOrEqual(t, bottom(crate), liftTop-1e-6, "tick %d", world.Tick())
		highest = math.Max(highest, crate.Transform.Position.Y())
	}

	assert.Greater(t, highest, 2.5, "the crate rode the lift up")
}

func TestWorld_WorkersGiveSameResult(t *testing.T) {
	run := func(workers int) []mgl64.Vec3 {
		world := NewWorld(gravity)
		world.Workers = workers
		world.AddBody(createFloor())
		for i := range 12 {
			transform := actor.NewTransform()
			transform.Position = mgl64.Vec3{float64(i%4)*1.5 - 3, 2 + float64(i/4)*1.5, 0}
			transform.Rotation = mgl64.Vec3{0, float64(i) * 0.2, 0}
			world.AddBody(actor.NewBody("crate", transform, actor.NewOBB(mgl64.Vec3{}, mgl64.Vec3{0.5, 0.5, 0.5}), actor.BodyTypeDynamic))
		}

		for range 300 {
			world.Step()
		}

		positions := make([]mgl64.Vec3, len(world.Bodies))
		for i, body := range world.Bodies {
			positions[i] = body.Transform.Position
		}
		return positions
	}

	sequential := run(1)
	for _, workers := range []int{2, 4, 16} {
		assert.Equal(t, sequential, run(workers), "workers %d", workers)
	}
}

func TestWorld_ZeroWorkers(t *testing.T) {
	world := NewWorld(gravity)
	world.Workers = 0
	world.AddBody(createFloor())

	world.Step()
	assert.Equal(t, DEFAULT_WORKERS, world.Workers)
}

func TestWorld_NilLogger(t *testing.T) {
	world := &World{Gravity: gravity}
	world.AddBody(createFloor())
	world.AddBody(createBox("crate", mgl64.Vec3{0, 0.45, 0}, mgl64.Vec3{0.5, 0.5, 0.5}, actor.BodyTypeDynamic))

	assert.NotPanics(t, world.Step)
}

// =============================================================================
// Spawn and Remove Tests
// =============================================================================

func TestWorld_Spawn(t *testing.T) {
	world := NewWorld(gravity)
	_, err := world.Spawn(createFloor())
	require.NoError(t, err)

	crate := createBox("crate", mgl64.Vec3{0, 0.2, 0}, mgl64.Vec3{0.5, 0.5, 0.5}, actor.BodyTypeDynamic)
	nudges, err := world.Spawn(crate)

	require.NoError(t, err)
	assert.Greater(t, nudges, 0)
	assert.GreaterOrEqual(t, bottom(crate), 0.0)
	assert.Len(t, world.Bodies, 2)
}

func TestWorld_SpawnStaticIsNotMoved(t *testing.T) {
	world := NewWorld(gravity)
	world.AddBody(createFloor())

	wall := createBox("wall", mgl64.Vec3{}, mgl64.Vec3{1, 1, 1}, actor.BodyTypeStatic)
	nudges, err := world.Spawn(wall)

	require.NoError(t, err)
	assert.Equal(t, 0, nudges)
	assert.Equal(t, mgl64.Vec3{}, wall.Transform.Position)
}

func TestWorld_SpawnExhausted(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	world := NewWorld(gravity)
	world.Logger = zap.New(core)
	world.DepenetrationMaxIter = 5
	world.AddBody(createBox("block", mgl64.Vec3{}, mgl64.Vec3{5, 5, 5}, actor.BodyTypeStatic))

	crate := createBox("crate", mgl64.Vec3{}, mgl64.Vec3{0.5, 0.5, 0.5}, actor.BodyTypeDynamic)
	nudges, err := world.Spawn(crate)

	assert.ErrorIs(t, err, constraint.ErrDepenetrationExhausted)
	assert.Equal(t, 5, nudges)
	assert.Len(t, world.Bodies, 2, "the body stays in the world")
	assert.Equal(t, 1, logs.FilterMessage("spawned body still overlaps").Len())
}

func TestWorld_RemoveBody(t *testing.T) {
	world := NewWorld(gravity)
	floor := createFloor()
	crate := createBox("crate", mgl64.Vec3{0, 0.45, 0}, mgl64.Vec3{0.5, 0.5, 0.5}, actor.BodyTypeDynamic)
	world.AddBody(floor)
	world.AddBody(crate)

	capture := &eventCapture{}
	world.Events.Subscribe(COLLISION_EXIT, capture.capture)

	world.Step()
	world.RemoveBody(crate)
	world.Step()

	assert.Equal(t, []*actor.Body{floor}, world.Bodies)
	assert.Empty(t, capture.events)

	world.RemoveBody(crate)
	assert.Len(t, world.Bodies, 1, "removing twice is a no-op")
}

// =============================================================================
// Event Tests
// =============================================================================

func TestWorld_CollisionEvents(t *testing.T) {
	world := NewWorld(gravity)
	world.AddBody(createFloor())
	crate := createBox("crate", mgl64.Vec3{0, 0.45, 0}, mgl64.Vec3{0.5, 0.5, 0.5}, actor.BodyTypeDynamic)
	world.AddBody(crate)

	capture := &eventCapture{}
	subscribeAll(&world.Events, capture)

	world.Step()
	require.Equal(t, []EventType{COLLISION_ENTER}, capture.types())

	// Lifted away: the next step reports the exit
	capture.reset()
	crate.Transform.Position = mgl64.Vec3{0, 10, 0}
	crate.Velocity = mgl64.Vec3{}
	world.Step()
	assert.Equal(t, []EventType{COLLISION_EXIT}, capture.types())
}

func TestWorld_SensorEvents(t *testing.T) {
	world := NewWorld(gravity)
	zone := createBox("zone", mgl64.Vec3{0, 2, 0}, mgl64.Vec3{1, 0.25, 1}, actor.BodyTypeStatic)
	zone.Sensor = true
	crate := createBox("crate", mgl64.Vec3{0, 4, 0}, mgl64.Vec3{0.5, 0.5, 0.5}, actor.BodyTypeDynamic)
	world.AddBody(zone)
	world.AddBody(crate)

	capture := &eventCapture{}
	subscribeAll(&world.Events, capture)

	for range 60 {
		world.Step()
	}

	types := capture.types()
	require.NotEmpty(t, types)
	assert.Equal(t, SENSOR_ENTER, types[0])
	assert.Equal(t, SENSOR_EXIT, types[len(types)-1])
	assert.NotContains(t, types, COLLISION_ENTER)

	// The crate fell through the sensor untouched: y = 4 - 0.01·(1+2+…+60)
	assert.InDelta(t, 4-0.01*60*61/2, crate.Transform.Position.Y(), 1e-9)
}
