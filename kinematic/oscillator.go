package kinematic

import (
	"math"

	"github.com/akmonengine/obbworld/actor"
	"github.com/go-gl/mathgl/mgl64"
)

// Oscillator moves a body back and forth along an axis: origin + axis·amplitude·sin(2π·tick/period).
type Oscillator struct {
	Origin    mgl64.Vec3
	Axis      mgl64.Vec3
	Amplitude float64
	// Period in ticks
	Period float64
	// Phase offset in radians
	Phase float64
}

var _ actor.Motion = (*Oscillator)(nil)

// Offset returns the displacement from Origin at the given tick
func (o *Oscillator) Offset(tick uint64) mgl64.Vec3 {
	if o.Period <= 0 {
		return mgl64.Vec3{}
	}

	angle := 2*math.Pi*float64(tick)/o.Period + o.Phase
	return o.Axis.Mul(o.Amplitude * math.Sin(angle))
}

// Advance places the body on the path and sets its velocity to the per-tick displacement
func (o *Oscillator) Advance(body *actor.Body, tick uint64, _ mgl64.Vec3) {
	position := o.Origin.Add(o.Offset(tick))

	body.Velocity = position.Sub(body.Transform.Position)
	body.Transform.Position = position
	body.UpdateBoundary()
}
