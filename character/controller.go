package character

import (
	"math"

	"github.com/akmonengine/obbworld/actor"
	"github.com/akmonengine/obbworld/input"
	"github.com/go-gl/mathgl/mgl64"
)

// maxPitch keeps the view from flipping over the vertical
var maxPitch = mgl64.DegToRad(89)

type Settings struct {
	// MoveImpulse is added to the velocity each tick a move action is held
	MoveImpulse float64
	// JumpSpeed is added to the vertical velocity when Jump is pressed
	JumpSpeed float64
	// LookSpeed in radians per tick
	LookSpeed float64
	// Fly enables MoveUp / MoveDown impulses
	Fly bool
	// LockPitch ignores LookUp / LookDown, so that the boundary stays upright
	LockPitch bool
}

func DefaultPlayerSettings() Settings {
	return Settings{
		MoveImpulse: 0.02,
		JumpSpeed:   0.25,
		LookSpeed:   0.03,
		LockPitch:   true,
	}
}

func DefaultCameraSettings() Settings {
	return Settings{
		MoveImpulse: 0.02,
		LookSpeed:   0.03,
		Fly:         true,
	}
}

// Controller is the Motion of a dynamic actor driven by an input source
type Controller struct {
	Input    input.Source
	Settings Settings
}

var _ actor.Motion = (*Controller)(nil)

func NewController(source input.Source, settings Settings) *Controller {
	if source == nil {
		source = input.None{}
	}

	return &Controller{Input: source, Settings: settings}
}

// Advance runs one tick: gravity, input impulses, drag on the horizontal plane,
// then position += velocity and a boundary refresh.
func (c *Controller) Advance(body *actor.Body, tick uint64, gravity mgl64.Vec3) {
	c.look(body)

	body.Velocity = body.Velocity.Add(gravity.Mul(body.Material.GravityScale))
	body.Velocity = body.Velocity.Add(c.wish(body.Transform.Rotation.Y()))

	// Rising edge only: holding the key does not jump again
	if c.Input.IsPressed(input.Jump) {
		body.Velocity[1] += c.Settings.JumpSpeed
	}

	keep := 1.0 - body.Material.Drag
	body.Velocity[0] *= keep
	body.Velocity[2] *= keep
	if c.Settings.Fly {
		body.Velocity[1] *= keep
	}

	body.Transform.Position = body.Transform.Position.Add(body.Velocity)
	body.UpdateBoundary()
}

// wish returns the impulse requested by the move actions, relative to the yaw
func (c *Controller) wish(yaw float64) mgl64.Vec3 {
	forward := mgl64.Vec3{-math.Sin(yaw), 0, -math.Cos(yaw)}
	right := mgl64.Vec3{math.Cos(yaw), 0, -math.Sin(yaw)}

	var wish mgl64.Vec3
	if c.Input.IsDown(input.MoveForward) {
		wish = wish.Add(forward)
	}
	if c.Input.IsDown(input.MoveBackward) {
		wish = wish.Sub(forward)
	}
	if c.Input.IsDown(input.MoveRight) {
		wish = wish.Add(right)
	}
	if c.Input.IsDown(input.MoveLeft) {
		wish = wish.Sub(right)
	}
	if c.Settings.Fly {
		if c.Input.IsDown(input.MoveUp) {
			wish[1] += 1
		}
		if c.Input.IsDown(input.MoveDown) {
			wish[1] -= 1
		}
	}

	// Diagonals are not faster
	if length := wish.Len(); length > 1e-9 {
		wish = wish.Mul(c.Settings.MoveImpulse / length)
	}

	return wish
}

func (c *Controller) look(body *actor.Body) {
	speed := c.Settings.LookSpeed
	if speed == 0 {
		return
	}

	rotation := body.Transform.Rotation
	if !c.Settings.LockPitch {
		if c.Input.IsDown(input.LookUp) {
			rotation[0] += speed
		}
		if c.Input.IsDown(input.LookDown) {
			rotation[0] -= speed
		}
	}
	if c.Input.IsDown(input.LookLeft) {
		rotation[1] += speed
	}
	if c.Input.IsDown(input.LookRight) {
		rotation[1] -= speed
	}
	rotation[0] = mgl64.Clamp(rotation[0], -maxPitch, maxPitch)

	body.Transform.Rotation = rotation
}
