package config

import (
	"fmt"

	"github.com/akmonengine/obbworld"
	"github.com/akmonengine/obbworld/actor"
	"github.com/akmonengine/obbworld/character"
	"github.com/akmonengine/obbworld/input"
	"github.com/akmonengine/obbworld/kinematic"
	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"
)

// Scene is a world built from a Config, with handles on its actors
type Scene struct {
	World  *obbworld.World
	Player *actor.Body
	Camera *character.Camera
}

func parseBodyType(name string) (actor.BodyType, error) {
	switch name {
	case "", "static":
		return actor.BodyTypeStatic, nil
	case "kinematic":
		return actor.BodyTypeKinematic, nil
	case "dynamic":
		return actor.BodyTypeDynamic, nil
	default:
		return 0, fmt.Errorf("unknown body type %q", name)
	}
}

func (t TransformConfig) transform() actor.Transform {
	transform := actor.NewTransform()
	transform.Position = t.Position.Vec3()
	transform.Anchor = t.Anchor.Vec3()
	if t.Rotation != nil {
		degrees := t.Rotation.Vec3()
		transform.Rotation = mgl64.Vec3{
			mgl64.DegToRad(degrees.X()),
			mgl64.DegToRad(degrees.Y()),
			mgl64.DegToRad(degrees.Z()),
		}
	}
	if t.Scale != nil {
		transform.Scale = t.Scale.Vec3()
	}

	return transform
}

// Build creates the world and its bodies. The player and camera read from source.
// Dynamic bodies are spawned: a body starting inside another one is lifted out of it.
func Build(cfg *Config, source input.Source, logger *zap.Logger) (*Scene, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	world := obbworld.NewWorld(cfg.World.Gravity.Vec3())
	world.Workers = cfg.World.Workers
	world.DepenetrationStep = cfg.World.DepenetrationStep
	world.DepenetrationMaxIter = cfg.World.DepenetrationMaxIter
	world.Logger = logger

	scene := &Scene{World: world}

	for _, bodyConfig := range cfg.Bodies {
		body, err := bodyConfig.build(logger)
		if err != nil {
			return nil, err
		}
		if _, err := world.Spawn(body); err != nil {
			return nil, err
		}
	}

	if cfg.Player != nil {
		settings := cfg.Player.settings(character.DefaultPlayerSettings())
		scene.Player = character.NewPlayer(cfg.Player.name("player"), cfg.Player.Transform.transform(), cfg.Player.HalfExtents.Vec3(), source, settings)
		if cfg.Player.Restitution != nil {
			scene.Player.Material.Restitution = *cfg.Player.Restitution
		}
		if _, err := world.Spawn(scene.Player); err != nil {
			return nil, err
		}
	}

	if cfg.Camera != nil {
		settings := cfg.Camera.settings(character.DefaultCameraSettings())
		scene.Camera = character.NewCamera(cfg.Camera.name("camera"), cfg.Camera.Transform.transform(), cfg.Camera.HalfExtents.Vec3(), source, settings)
		if cfg.Camera.Restitution != nil {
			scene.Camera.Body.Material.Restitution = *cfg.Camera.Restitution
		}
		if _, err := world.Spawn(scene.Camera.Body); err != nil {
			return nil, err
		}
	}

	logger.Info("scene built", zap.Int("bodies", len(world.Bodies)))
	return scene, nil
}

func (b BodyConfig) build(logger *zap.Logger) (*actor.Body, error) {
	bodyType, err := parseBodyType(b.Type)
	if err != nil {
		return nil, fmt.Errorf("config: body %s: %w", b.Name, err)
	}

	var boundary *actor.OBB
	if b.Boundary != nil {
		boundary = actor.NewOBB(b.Boundary.Center.Vec3(), b.Boundary.HalfExtents.Vec3())
	}

	transform := b.Transform.transform()
	body := actor.NewBody(b.Name, transform, boundary, bodyType)
	if b.Restitution != nil {
		body.Material.Restitution = *b.Restitution
	}
	if b.GravityScale != nil {
		body.Material.GravityScale = *b.GravityScale
	}
	body.Material.Drag = b.Drag
	body.Sensor = b.Sensor

	if b.Motion != nil {
		switch b.Motion.Kind {
		case "oscillate":
			body.Motion = &kinematic.Oscillator{
				Origin:    transform.Position,
				Axis:      b.Motion.Axis.Vec3(),
				Amplitude: b.Motion.Amplitude,
				Period:    b.Motion.Period,
				Phase:     b.Motion.Phase,
			}
		case "script":
			script, err := kinematic.NewScript(b.Motion.Script, transform.Position)
			if err != nil {
				return nil, fmt.Errorf("config: body %s: %w", b.Name, err)
			}
			script.Logger = logger
			body.Motion = script
		}
	}

	return body, nil
}

func (a ActorConfig) name(fallback string) string {
	if a.Name == "" {
		return fallback
	}
	return a.Name
}

func (a ActorConfig) settings(settings character.Settings) character.Settings {
	if a.MoveImpulse != 0 {
		settings.MoveImpulse = a.MoveImpulse
	}
	if a.JumpSpeed != 0 {
		settings.JumpSpeed = a.JumpSpeed
	}
	if a.LookSpeed != 0 {
		settings.LookSpeed = a.LookSpeed
	}
	return settings
}
