// Package config loads a world and its scene from YAML.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

var ErrInvalid = errors.New("config: invalid")

// Vector is a YAML sequence of 3 numbers
type Vector []float64

func (v Vector) Vec3() mgl64.Vec3 {
	if len(v) != 3 {
		return mgl64.Vec3{}
	}
	return mgl64.Vec3{v[0], v[1], v[2]}
}

func (v Vector) validate(field string) error {
	if v != nil && len(v) != 3 {
		return fmt.Errorf("%w: %s must have 3 components, got %d", ErrInvalid, field, len(v))
	}
	return nil
}

type Config struct {
	World  WorldConfig  `yaml:"world"`
	Bodies []BodyConfig `yaml:"bodies"`
	Player *ActorConfig `yaml:"player,omitempty"`
	Camera *ActorConfig `yaml:"camera,omitempty"`
}

type WorldConfig struct {
	Gravity              Vector  `yaml:"gravity"`
	Workers              int     `yaml:"workers"`
	DepenetrationStep    float64 `yaml:"depenetration_step"`
	DepenetrationMaxIter int     `yaml:"depenetration_max_iter"`
	LogLevel             string  `yaml:"log_level"`
}

type TransformConfig struct {
	Position Vector `yaml:"position"`
	// Rotation in degrees, about X, Y and Z
	Rotation Vector `yaml:"rotation"`
	Anchor   Vector `yaml:"anchor"`
	Scale    Vector `yaml:"scale"`
}

type BoundaryConfig struct {
	Center      Vector `yaml:"center"`
	HalfExtents Vector `yaml:"half_extents"`
}

type MotionConfig struct {
	// Kind is "oscillate" or "script"
	Kind      string  `yaml:"kind"`
	Axis      Vector  `yaml:"axis"`
	Amplitude float64 `yaml:"amplitude"`
	Period    float64 `yaml:"period"`
	Phase     float64 `yaml:"phase"`
	Script    string  `yaml:"script"`
}

type BodyConfig struct {
	Name         string          `yaml:"name"`
	Type         string          `yaml:"type"`
	Transform    TransformConfig `yaml:"transform"`
	Boundary     *BoundaryConfig `yaml:"boundary,omitempty"`
	Restitution  *float64        `yaml:"restitution,omitempty"`
	GravityScale *float64        `yaml:"gravity_scale,omitempty"`
	Drag         float64         `yaml:"drag"`
	Sensor       bool            `yaml:"sensor"`
	Motion       *MotionConfig   `yaml:"motion,omitempty"`
}

type ActorConfig struct {
	Name        string          `yaml:"name"`
	Transform   TransformConfig `yaml:"transform"`
	HalfExtents Vector          `yaml:"half_extents"`
	Restitution *float64        `yaml:"restitution,omitempty"`
	MoveImpulse float64         `yaml:"move_impulse"`
	JumpSpeed   float64         `yaml:"jump_speed"`
	LookSpeed   float64         `yaml:"look_speed"`
}

// Default returns a world with gravity and no bodies
func Default() Config {
	return Config{
		World: WorldConfig{
			Gravity:              Vector{0, -0.01, 0},
			Workers:              1,
			DepenetrationStep:    0.01,
			DepenetrationMaxIter: 1000,
			LogLevel:             "info",
		},
	}
}

// Load reads and validates the YAML file at path
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("config: load %s: %w", path, err)
	}

	return cfg, nil
}

// Parse decodes YAML on top of Default, then validates the result
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	if err := c.World.Gravity.validate("world.gravity"); err != nil {
		return err
	}
	if c.World.Workers < 0 {
		return fmt.Errorf("%w: world.workers must be positive", ErrInvalid)
	}
	if c.World.DepenetrationStep <= 0 {
		return fmt.Errorf("%w: world.depenetration_step must be positive", ErrInvalid)
	}
	if c.World.DepenetrationMaxIter <= 0 {
		return fmt.Errorf("%w: world.depenetration_max_iter must be positive", ErrInvalid)
	}
	if _, err := zapcore.ParseLevel(c.World.LogLevel); err != nil {
		return fmt.Errorf("%w: world.log_level: %v", ErrInvalid, err)
	}

	names := make(map[string]bool, len(c.Bodies))
	for i, body := range c.Bodies {
		field := fmt.Sprintf("bodies[%d]", i)
		if body.Name == "" {
			return fmt.Errorf("%w: %s.name is required", ErrInvalid, field)
		}
		if names[body.Name] {
			return fmt.Errorf("%w: %s: duplicate name %q", ErrInvalid, field, body.Name)
		}
		names[body.Name] = true

		if _, err := parseBodyType(body.Type); err != nil {
			return fmt.Errorf("%w: %s.type: %v", ErrInvalid, field, err)
		}
		if err := body.Transform.validate(field + ".transform"); err != nil {
			return err
		}
		if body.Boundary != nil {
			if err := body.Boundary.Center.validate(field + ".boundary.center"); err != nil {
				return err
			}
			if len(body.Boundary.HalfExtents) != 3 {
				return fmt.Errorf("%w: %s.boundary.half_extents must have 3 components", ErrInvalid, field)
			}
		}
		if body.Drag < 0 || body.Drag > 1 {
			return fmt.Errorf("%w: %s.drag must be within [0, 1]", ErrInvalid, field)
		}
		if body.Motion != nil {
			if err := body.Motion.validate(field + ".motion"); err != nil {
				return err
			}
		}
	}

	for field, actorConfig := range map[string]*ActorConfig{"player": c.Player, "camera": c.Camera} {
		if actorConfig == nil {
			continue
		}
		if err := actorConfig.Transform.validate(field + ".transform"); err != nil {
			return err
		}
		if len(actorConfig.HalfExtents) != 3 {
			return fmt.Errorf("%w: %s.half_extents must have 3 components", ErrInvalid, field)
		}
	}

	return nil
}

func (t TransformConfig) validate(field string) error {
	return errors.Join(
		t.Position.validate(field+".position"),
		t.Rotation.validate(field+".rotation"),
		t.Anchor.validate(field+".anchor"),
		t.Scale.validate(field+".scale"),
	)
}

func (m MotionConfig) validate(field string) error {
	switch m.Kind {
	case "oscillate":
		if err := m.Axis.validate(field + ".axis"); err != nil {
			return err
		}
		if m.Period <= 0 {
			return fmt.Errorf("%w: %s.period must be positive", ErrInvalid, field)
		}
	case "script":
		if m.Script == "" {
			return fmt.Errorf("%w: %s.script is required", ErrInvalid, field)
		}
	default:
		return fmt.Errorf("%w: %s.kind: unknown motion %q", ErrInvalid, field, m.Kind)
	}

	return nil
}

// NewLogger builds the development logger at the configured level
func (w WorldConfig) NewLogger() (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(w.LogLevel)
	if err != nil {
		return nil, err
	}

	zapConfig := zap.NewDevelopmentConfig()
	zapConfig.Level = zap.NewAtomicLevelAt(level)
	zapConfig.DisableStacktrace = true

	return zapConfig.Build()
}
