package actor

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBody(position mgl64.Vec3, halfExtents mgl64.Vec3, bodyType BodyType) *Body {
	transform := NewTransform()
	transform.Position = position
	return NewBody("test", transform, NewOBB(mgl64.Vec3{}, halfExtents), bodyType)
}

type recordingMotion struct {
	ticks []uint64
}

func (m *recordingMotion) Advance(body *Body, tick uint64, _ mgl64.Vec3) {
	m.ticks = append(m.ticks, tick)
	body.Transform.Position = mgl64.Vec3{float64(tick), 0, 0}
}

// =============================================================================
// Construction Tests
// =============================================================================

func TestNewBody(t *testing.T) {
	body := newTestBody(mgl64.Vec3{0, 3, 0}, mgl64.Vec3{1, 1, 1}, BodyTypeDynamic)

	assert.NotEqual(t, uuid.Nil, body.ID)
	assert.Equal(t, DefaultMaterial(), body.Material)
	assert.True(t, body.IsDynamic())
	assertVec3(t, mgl64.Vec3{0, 3, 0}, body.Boundary.Center())

	other := newTestBody(mgl64.Vec3{}, mgl64.Vec3{1, 1, 1}, BodyTypeDynamic)
	assert.NotEqual(t, body.ID, other.ID)
}

func TestBodyType_String(t *testing.T) {
	assert.Equal(t, "static", BodyTypeStatic.String())
	assert.Equal(t, "kinematic", BodyTypeKinematic.String())
	assert.Equal(t, "dynamic", BodyTypeDynamic.String())
	assert.Equal(t, "unknown", BodyType(42).String())
}

// =============================================================================
// Integration Tests
// =============================================================================

func TestBody_Integrate(t *testing.T) {
	gravity := mgl64.Vec3{0, -0.01, 0}

	t.Run("Dynamic body falls", func(t *testing.T) {
		body := newTestBody(mgl64.Vec3{0, 10, 0}, mgl64.Vec3{1, 1, 1}, BodyTypeDynamic)

		body.Integrate(gravity)
		assertVec3(t, mgl64.Vec3{0, -0.01, 0}, body.Velocity)
		assertVec3(t, mgl64.Vec3{0, 9.99, 0}, body.Transform.Position)
		assertVec3(t, mgl64.Vec3{0, 9.99, 0}, body.Boundary.Center())

		body.Integrate(gravity)
		assertVec3(t, mgl64.Vec3{0, 9.97, 0}, body.Transform.Position)
	})

	t.Run("Gravity scale and drag", func(t *testing.T) {
		body := newTestBody(mgl64.Vec3{}, mgl64.Vec3{1, 1, 1}, BodyTypeDynamic)
		body.Material.GravityScale = 0
		body.Material.Drag = 0.5
		body.Velocity = mgl64.Vec3{1, 0, 0}

		body.Integrate(gravity)
		assertVec3(t, mgl64.Vec3{0.5, 0, 0}, body.Velocity)
		assertVec3(t, mgl64.Vec3{0.5, 0, 0}, body.Transform.Position)
	})

	for _, bodyType := range []BodyType{BodyTypeStatic, BodyTypeKinematic} {
		t.Run(bodyType.String()+" body stays", func(t *testing.T) {
			body := newTestBody(mgl64.Vec3{0, 10, 0}, mgl64.Vec3{1, 1, 1}, bodyType)
			body.Integrate(gravity)
			assertVec3(t, mgl64.Vec3{0, 10, 0}, body.Transform.Position)
			assertVec3(t, mgl64.Vec3{}, body.Velocity)
		})
	}
}

func TestBody_Step(t *testing.T) {
	t.Run("Motion replaces the integration", func(t *testing.T) {
		motion := &recordingMotion{}
		body := newTestBody(mgl64.Vec3{}, mgl64.Vec3{1, 1, 1}, BodyTypeKinematic)
		body.Motion = motion

		body.Step(7, mgl64.Vec3{0, -1, 0})

		assert.Equal(t, []uint64{7}, motion.ticks)
		assertVec3(t, mgl64.Vec3{7, 0, 0}, body.Boundary.Center())
		assertVec3(t, mgl64.Vec3{}, body.Velocity)
	})

	t.Run("No motion integrates", func(t *testing.T) {
		body := newTestBody(mgl64.Vec3{}, mgl64.Vec3{1, 1, 1}, BodyTypeDynamic)
		body.Step(0, mgl64.Vec3{0, -1, 0})
		assertVec3(t, mgl64.Vec3{0, -1, 0}, body.Transform.Position)
	})
}

// =============================================================================
// Intersection Tests
// =============================================================================

func TestBody_Intersects(t *testing.T) {
	a := newTestBody(mgl64.Vec3{}, mgl64.Vec3{1, 1, 1}, BodyTypeDynamic)
	b := newTestBody(mgl64.Vec3{1.5, 0, 0}, mgl64.Vec3{1, 1, 1}, BodyTypeStatic)

	result := a.Intersects(b)
	require.True(t, result.Hit)
	assertVec3(t, mgl64.Vec3{-1, 0, 0}, result.Normal)
	assert.InDelta(t, 0.5, result.Penetration, 1e-9)

	assert.False(t, a.Intersects(a).Hit, "a body never touches itself")

	ghost := NewBody("ghost", NewTransform(), nil, BodyTypeDynamic)
	assert.False(t, a.Intersects(ghost).Hit)
	assert.False(t, ghost.Intersects(a).Hit)
	ghost.UpdateBoundary()
}

func TestBody_Model(t *testing.T) {
	body := newTestBody(mgl64.Vec3{1, 2, 3}, mgl64.Vec3{1, 1, 1}, BodyTypeStatic)

	assert.True(t, body.Model().ApproxEqual(body.Transform.Matrix()))
	assert.True(t, body.Boundary.M.ApproxEqual(body.Model()))
}
