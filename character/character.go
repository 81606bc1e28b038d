package character

import (
	"github.com/akmonengine/obbworld/actor"
	"github.com/akmonengine/obbworld/input"
	"github.com/go-gl/mathgl/mgl64"
)

// NewPlayer creates a dynamic body walking under gravity, driven by source
func NewPlayer(name string, transform actor.Transform, halfExtents mgl64.Vec3, source input.Source, settings Settings) *actor.Body {
	body := actor.NewBody(name, transform, actor.NewOBB(mgl64.Vec3{}, halfExtents), actor.BodyTypeDynamic)
	body.Material.Drag = 0.2
	body.Motion = NewController(source, settings)

	return body
}

// Camera is a physical viewpoint: a flying dynamic body that collides with the scene
type Camera struct {
	Body *actor.Body
}

// NewCamera creates a camera body floating without gravity, driven by source
func NewCamera(name string, transform actor.Transform, halfExtents mgl64.Vec3, source input.Source, settings Settings) *Camera {
	body := actor.NewBody(name, transform, actor.NewOBB(mgl64.Vec3{}, halfExtents), actor.BodyTypeDynamic)
	body.Material.GravityScale = 0
	body.Material.Drag = 0.15
	body.Material.Restitution = 0
	body.Motion = NewController(source, settings)

	return &Camera{Body: body}
}

// View returns the world-to-camera matrix
func (c *Camera) View() mgl64.Mat4 {
	return c.Body.Model().Inv()
}

// Forward returns the direction the camera looks at, in world space
func (c *Camera) Forward() mgl64.Vec3 {
	model := c.Body.Model()
	forward := model.Mul4x1(mgl64.Vec4{0, 0, -1, 0}).Vec3()

	return forward.Normalize()
}
