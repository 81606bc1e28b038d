package main

import (
	_ "embed"
	"flag"
	"os"
	"os/signal"
	"time"

	"github.com/akmonengine/obbworld"
	"github.com/akmonengine/obbworld/config"
	"github.com/akmonengine/obbworld/debug"
	"github.com/akmonengine/obbworld/input"
	"go.uber.org/zap"
)

//go:embed scene.yaml
var defaultScene []byte

// walk is the scripted input of the headless run: tick -> actions held from that tick on
var walk = map[int][]input.Action{
	120: {input.MoveForward},
	180: {input.MoveForward, input.Jump},
	200: {input.MoveForward, input.LookLeft},
	260: {},
}

func main() {
	configPath := flag.String("config", "", "scene file, the embedded scene when empty")
	ticks := flag.Int("ticks", 600, "number of ticks to run")
	watch := flag.Bool("watch", false, "rebuild the scene when the config file changes")
	realtime := flag.Bool("realtime", false, "run at 60 ticks per second")
	flag.Parse()

	cfg, err := load(*configPath)
	if err != nil {
		os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}

	logger, err := cfg.World.NewLogger()
	if err != nil {
		os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}
	defer logger.Sync()

	var reload <-chan string
	if *watch && *configPath != "" {
		watcher, err := config.NewWatcher(*configPath)
		if err != nil {
			logger.Fatal("watch config", zap.Error(err))
		}
		defer watcher.Close()
		reload = watcher.Events
	}

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)

	state := &input.State{}
	scene, err := build(cfg, state, logger)
	if err != nil {
		logger.Fatal("build scene", zap.Error(err))
	}

	var ticker *time.Ticker
	if *realtime {
		ticker = time.NewTicker(time.Second / 60)
		defer ticker.Stop()
	}

	recorder := &debug.Recorder{}
	for tick := 0; tick < *ticks; tick++ {
		select {
		case path := <-reload:
			next, err := config.Load(path)
			if err != nil {
				logger.Warn("config not reloaded", zap.Error(err))
				break
			}
			rebuilt, err := build(next, state, logger)
			if err != nil {
				logger.Warn("scene not rebuilt", zap.Error(err))
				break
			}
			scene = rebuilt
			logger.Info("scene reloaded", zap.String("path", path))
		case <-interrupt:
			logger.Info("interrupted", zap.Int("tick", tick))
			return
		default:
		}

		if actions, ok := walk[tick]; ok {
			for _, action := range input.Actions() {
				state.Set(action, false)
			}
			for _, action := range actions {
				state.Set(action, true)
			}
		}
		state.Swap()

		scene.World.Step()

		recorder.Reset()
		debug.DrawBoundaries(recorder, scene.World.Bodies)

		if tick%60 == 0 && scene.Player != nil {
			logger.Info("player",
				zap.Int("tick", tick),
				zap.Float64s("position", scene.Player.Transform.Position[:]),
				zap.Float64s("velocity", scene.Player.Velocity[:]),
				zap.Int("wireframes", len(recorder.Models)),
			)
		}

		if ticker != nil {
			<-ticker.C
		}
	}
}

func load(path string) (*config.Config, error) {
	if path == "" {
		return config.Parse(defaultScene)
	}
	return config.Load(path)
}

func build(cfg *config.Config, state *input.State, logger *zap.Logger) (*config.Scene, error) {
	scene, err := config.Build(cfg, state, logger)
	if err != nil {
		return nil, err
	}

	scene.World.Events.Subscribe(obbworld.COLLISION_ENTER, func(event obbworld.Event) {
		e := event.(obbworld.CollisionEnterEvent)
		logger.Info("collision", zap.String("bodyA", e.BodyA.Name), zap.String("bodyB", e.BodyB.Name))
	})
	scene.World.Events.Subscribe(obbworld.SENSOR_ENTER, func(event obbworld.Event) {
		e := event.(obbworld.SensorEnterEvent)
		logger.Info("sensor entered", zap.String("bodyA", e.BodyA.Name), zap.String("bodyB", e.BodyB.Name))
	})
	scene.World.Events.Subscribe(obbworld.SENSOR_EXIT, func(event obbworld.Event) {
		e := event.(obbworld.SensorExitEvent)
		logger.Info("sensor left", zap.String("bodyA", e.BodyA.Name), zap.String("bodyB", e.BodyB.Name))
	})

	return scene, nil
}
