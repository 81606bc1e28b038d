package kinematic

import (
	"fmt"

	"github.com/akmonengine/obbworld/actor"
	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"
)

// Script moves a body along a path computed by a tengo script.
// The script reads the global `tick` and assigns the globals `x`, `y` and `z`, an offset from Origin:
//
//	math := import("math")
//	y = math.sin(tick * 0.05) * 2.0
//
// The globals already exist: assign them with `=`, not `:=`.
type Script struct {
	Origin mgl64.Vec3
	Logger *zap.Logger

	compiled *tengo.Compiled
	err      error
}

var _ actor.Motion = (*Script)(nil)

// NewScript compiles src. Only the math module of the tengo stdlib can be imported.
func NewScript(src string, origin mgl64.Vec3) (*Script, error) {
	script := tengo.NewScript([]byte(src))
	globals := []struct {
		name  string
		value any
	}{
		{"tick", 0},
		{"x", 0.0},
		{"y", 0.0},
		{"z", 0.0},
	}
	for _, global := range globals {
		if err := script.Add(global.name, global.value); err != nil {
			return nil, fmt.Errorf("kinematic: declare %s: %w", global.name, err)
		}
	}
	script.SetImports(stdlib.GetModuleMap("math"))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("kinematic: compile path script: %w", err)
	}

	return &Script{
		Origin:   origin,
		Logger:   zap.NewNop(),
		compiled: compiled,
	}, nil
}

// Offset runs the script for the given tick
func (s *Script) Offset(tick uint64) (mgl64.Vec3, error) {
	if err := s.compiled.Set("tick", int64(tick)); err != nil {
		return mgl64.Vec3{}, err
	}
	if err := s.compiled.Run(); err != nil {
		return mgl64.Vec3{}, err
	}

	return mgl64.Vec3{
		s.compiled.Get("x").Float(),
		s.compiled.Get("y").Float(),
		s.compiled.Get("z").Float(),
	}, nil
}

// Advance places the body on the scripted path.
// After a runtime error the body stays where it is: see Err.
func (s *Script) Advance(body *actor.Body, tick uint64, _ mgl64.Vec3) {
	if s.err != nil {
		body.Velocity = mgl64.Vec3{}
		return
	}

	offset, err := s.Offset(tick)
	if err != nil {
		s.err = fmt.Errorf("kinematic: run path script at tick %d: %w", tick, err)
		s.Logger.Error("path script stopped", zap.String("body", body.Name), zap.Error(s.err))
		body.Velocity = mgl64.Vec3{}
		return
	}

	position := s.Origin.Add(offset)
	body.Velocity = position.Sub(body.Transform.Position)
	body.Transform.Position = position
	body.UpdateBoundary()
}

// Err returns the runtime error that stopped the script, if any
func (s *Script) Err() error {
	return s.err
}
