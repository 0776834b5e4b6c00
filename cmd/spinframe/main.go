// Command spinframe runs the engine with the desktop, terminal or headless backend.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/profile"
	"go.uber.org/zap"

	debugui_ebiten "github.com/plus3/spinframe/ecs/debugui/ebiten"
	"github.com/plus3/spinframe/game"
	"github.com/plus3/spinframe/platform/desktop"
	"github.com/plus3/spinframe/platform/headless"
	"github.com/plus3/spinframe/platform/terminal"
)

func main() {
	configPath := flag.String("config", "", "Path to a YAML config file. Defaults are used when empty.")
	backend := flag.String("backend", "", "Override the backend: desktop, terminal or headless.")
	frames := flag.Int("frames", 0, "Quit after this many frames (headless backend only; 0 runs until interrupted).")
	actors := flag.Bool("actors", false, "Run every system on its own goroutine.")
	debugUI := flag.Bool("debug-ui", false, "Show the ImGui inspector (desktop backend only).")
	profileMode := flag.String("profile", "", "Write a cpu, mem or trace profile to the working directory.")
	logLevel := flag.String("log-level", "", "Override the log level.")
	flag.Parse()

	cfg := game.DefaultConfig()
	if *configPath != "" {
		loaded, err := game.LoadConfig(*configPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		cfg = loaded
	}
	if *backend != "" {
		cfg.Backend = *backend
	}
	if *actors {
		cfg.Actors = true
	}
	if *debugUI {
		cfg.DebugUI = true
	}
	if *logLevel != "" {
		cfg.Log.Level = *logLevel
	}
	// stderr belongs to the terminal backend's screen
	if cfg.Backend == game.BackendTerminal && cfg.Log.Path == "" {
		cfg.Log.Path = "spinframe.log"
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	logger, err := game.NewLogger(cfg.Log)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer logger.Sync()

	if stop := startProfile(*profileMode, logger); stop != nil {
		defer stop()
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, cfg, *frames, logger); err != nil {
		logger.Fatal("engine failed", zap.Error(err))
	}
	logger.Info("engine stopped")
}

func startProfile(mode string, logger *zap.Logger) func() {
	var opt func(*profile.Profile)
	switch mode {
	case "":
		return nil
	case "cpu":
		opt = profile.CPUProfile
	case "mem":
		opt = profile.MemProfileAllocs
	case "trace":
		opt = profile.TraceProfile
	default:
		logger.Fatal("unknown profile mode", zap.String("mode", mode))
	}
	p := profile.Start(opt, profile.ProfilePath("."), profile.NoShutdownHook, profile.Quiet)
	return p.Stop
}

func run(ctx context.Context, cfg game.Config, frames int, logger *zap.Logger) error {
	logger.Info("starting engine",
		zap.String("backend", cfg.Backend),
		zap.Int("entities", len(cfg.Entities)),
	)

	switch cfg.Backend {
	case game.BackendDesktop:
		window := desktop.NewWindow()
		engine, err := game.Bootstrap(cfg, window, logger)
		if err != nil {
			return err
		}

		var overlay desktop.Overlay
		if cfg.DebugUI {
			overlay = debugui_ebiten.NewOverlay(cfg.Window.Title, cfg.Window.Width, cfg.Window.Height, engine.World, engine.Scheduler)
		}
		return desktop.NewGame(ctx, window, engine.Scheduler, overlay).Run()

	case game.BackendTerminal:
		screen := terminal.New(nil)
		engine, err := game.Bootstrap(cfg, screen, logger)
		if err != nil {
			return err
		}
		defer screen.Close()
		return engine.Scheduler.Run(ctx, screen)

	case game.BackendHeadless:
		window := headless.NewWindow()
		engine, err := game.Bootstrap(cfg, window, logger)
		if err != nil {
			return err
		}
		events := headless.NewEvents()
		events.QuitAfter(frames)
		if err := engine.Scheduler.Run(ctx, events); err != nil {
			return err
		}
		logger.Info("headless run complete",
			zap.Uint64("frames", engine.Scheduler.Frame()),
			zap.Int("draw_calls", len(window.Calls())),
		)
		return nil

	default:
		return fmt.Errorf("%w: %q", game.ErrUnknownBackend, cfg.Backend)
	}
}
