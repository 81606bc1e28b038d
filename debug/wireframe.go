// Package debug turns collision boundaries into draw requests for a renderer.
// It only reads the simulation state.
package debug

import (
	"github.com/akmonengine/obbworld/actor"
	"github.com/go-gl/mathgl/mgl64"
)

// Renderer draws the outline of a unit cube centered on the origin, placed by model
type Renderer interface {
	DrawWireCube(model mgl64.Mat4)
}

// Wireframe returns the model matrix mapping a unit cube onto the box: M · T(center) · S(2·halfExtents)
func Wireframe(obb *actor.OBB) mgl64.Mat4 {
	center := obb.LocalCenter()
	size := obb.HalfExtents().Mul(2)

	return obb.M.
		Mul4(mgl64.Translate3D(center.X(), center.Y(), center.Z())).
		Mul4(mgl64.Scale3D(size.X(), size.Y(), size.Z()))
}

// DrawBoundaries sends the wireframe of every body with a boundary to the renderer
func DrawBoundaries(renderer Renderer, bodies []*actor.Body) {
	for _, body := range bodies {
		if body.Boundary == nil {
			continue
		}
		renderer.DrawWireCube(Wireframe(body.Boundary))
	}
}

// Recorder is a Renderer keeping every request, for headless runs and tests
type Recorder struct {
	Models []mgl64.Mat4
}

func (r *Recorder) DrawWireCube(model mgl64.Mat4) {
	r.Models = append(r.Models, model)
}

func (r *Recorder) Reset() {
	r.Models = r.Models[:0]
}
