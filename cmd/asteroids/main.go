// cmd/asteroids/main.go
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"

	"github.com/opd-ai/go-asteroids/pkg/audio"
	"github.com/opd-ai/go-asteroids/pkg/config"
	"github.com/opd-ai/go-asteroids/pkg/engine"
	"github.com/opd-ai/go-asteroids/pkg/entity"
	"github.com/opd-ai/go-asteroids/pkg/event"
	"github.com/opd-ai/go-asteroids/pkg/logging"
	"github.com/opd-ai/go-asteroids/pkg/render"
	engorender "github.com/opd-ai/go-asteroids/pkg/render/engo"
	"github.com/opd-ai/go-asteroids/pkg/telemetry"
)

type options struct {
	configPath    string
	createDefault bool
	renderer      string
	sound         bool
	statsPath     string
	logPath       string
	logFormat     string
	frames        uint64
}

func main() {
	var opts options
	flag.StringVar(&opts.configPath, "config", "config.json", "Path to configuration file (.json, .yaml or .yml)")
	flag.BoolVar(&opts.createDefault, "default", false, "Create default configuration file and exit")
	flag.StringVar(&opts.renderer, "renderer", "terminal", "Renderer type: 'terminal', 'engo' or 'null'")
	flag.BoolVar(&opts.sound, "sound", false, "Play sound effects")
	flag.StringVar(&opts.statsPath, "stats", "", "Write per-frame CSV telemetry to this path (.zst compresses)")
	flag.StringVar(&opts.logPath, "log", "", "Write logs to this file instead of stderr")
	flag.StringVar(&opts.logFormat, "log-format", "json", "Log format: 'json' or 'text'")
	flag.Uint64Var(&opts.frames, "frames", 300, "Frames to run with the null renderer")
	flag.Parse()

	logger, closeLog, err := newLogger(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "asteroids: %v\n", err)
		os.Exit(1)
	}

	ctx := logging.WithSessionID(context.Background(), logging.GenerateSessionID())
	if err := run(ctx, opts, logger); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error(ctx, "asteroids exited with error", err, "renderer", opts.renderer)
		closeLog()
		os.Exit(1)
	}
	closeLog()
}

// newLogger routes logs to -log when set. The terminal renderer owns the
// screen, so without -log its logs are dropped.
func newLogger(opts options) (*logging.Logger, func(), error) {
	if opts.logPath != "" {
		f, err := os.OpenFile(opts.logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open log file: %w", err)
		}
		return logging.NewLoggerWithWriter(f, opts.logFormat), func() { _ = f.Close() }, nil
	}
	if opts.renderer == "terminal" {
		return logging.NewLoggerWithWriter(io.Discard, opts.logFormat), func() {}, nil
	}
	return logging.NewLoggerWithWriter(os.Stderr, opts.logFormat), func() {}, nil
}

func run(ctx context.Context, opts options, logger *logging.Logger) error {
	if opts.createDefault {
		if err := config.SaveConfig(config.DefaultConfig(), opts.configPath); err != nil {
			return logging.WrapError(err, "failed to create default configuration")
		}
		logger.Info(ctx, "Created default configuration file", "config_path", opts.configPath)
		return nil
	}

	cfg, err := loadConfig(ctx, opts.configPath, logger)
	if err != nil {
		return err
	}

	bus := event.NewEventBus()
	game := engine.NewGame(cfg,
		engine.WithLogger(logger),
		engine.WithEventBus(bus),
		engine.WithContext(ctx),
	)

	if opts.sound {
		sounds := audio.NewSoundManager(logger)
		if err := sounds.Initialize(); err != nil {
			logger.Warn(ctx, "audio unavailable, running silent", "error", err)
		} else {
			sounds.Subscribe(bus)
			defer sounds.Close()
		}
	}

	var recorder *telemetry.Recorder
	if opts.statsPath != "" {
		recorder, err = telemetry.NewRecorder(opts.statsPath)
		if err != nil {
			return logging.WrapError(err, "failed to open telemetry output")
		}
		recorder.Attach(bus)
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch opts.renderer {
	case "null":
		err = runNull(ctx, game, logger, opts.frames)
	case "engo":
		err = engorender.Run(ctx, game, logger)
	case "terminal":
		err = runTerminal(ctx, game)
	default:
		err = fmt.Errorf("unknown renderer %q", opts.renderer)
	}

	if recorder != nil {
		if cerr := recorder.Close(); cerr != nil {
			logger.Error(ctx, "Failed to write telemetry", cerr, "stats_path", opts.statsPath)
		}
		summary := recorder.Summary()
		logger.Info(ctx, "Run summary",
			"frames", summary.Frames,
			"mean_dt", summary.MeanDt,
			"stddev_dt", summary.StdDevDt,
			"step_p50_us", summary.P50StepUS,
			"step_p95_us", summary.P95StepUS,
			"step_p99_us", summary.P99StepUS,
			"max_entities", summary.MaxEntities,
		)
	}
	return err
}

func loadConfig(ctx context.Context, path string, logger *logging.Logger) (*config.GameConfig, error) {
	var cfg *config.GameConfig
	if _, err := os.Stat(path); os.IsNotExist(err) {
		logger.Info(ctx, "Configuration file not found, using default configuration",
			"config_path", path,
		)
		cfg = config.DefaultConfig()
	} else {
		cfg, err = config.LoadConfig(path)
		if err != nil {
			return nil, logging.WrapError(err, "failed to load configuration")
		}
	}

	if err := config.ApplyEnvironmentOverrides(cfg); err != nil {
		return nil, logging.WrapError(err, "failed to apply environment configuration")
	}
	return cfg, nil
}

// runNull runs headless for a fixed number of frames with no input.
func runNull(ctx context.Context, game *engine.Game, logger *logging.Logger, frames uint64) error {
	r := render.NewNullRenderer(logger)
	err := engine.Run(ctx, game, nil, func(state *engine.GameState) bool {
		render.Draw(r, state)
		return true
	}, frames)
	logger.Info(ctx, "Headless run finished",
		"frames", r.Frames,
		"asteroids", r.Asteroids,
		"bullets", r.Bullets,
	)
	return err
}

// runTerminal draws into the terminal until a quit key or signal.
func runTerminal(ctx context.Context, game *engine.Game) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to create terminal screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to initialize terminal screen: %w", err)
	}
	defer screen.Fini()
	screen.HideCursor()

	input := render.NewTerminalInput(render.DefaultHoldTimeout)
	go input.Listen(screen)

	r := render.NewTerminalRenderer(screen, game.Config.Bounds())
	err = engine.Run(ctx, game, input, func(state *engine.GameState) bool {
		select {
		case <-input.Quit():
			return false
		default:
		}
		r.StatusLine = fmt.Sprintf(" frame %d  asteroids %d  bullets %d   arrows/WASD steer  space fire  q quit",
			state.Tick,
			state.Count(entity.KindAsteroid),
			state.Count(entity.KindBullet),
		)
		render.Draw(r, state)
		return true
	}, 0)
	return err
}
