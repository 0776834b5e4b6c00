package game

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/plus3/spinframe/ecs"
	"github.com/plus3/spinframe/platform"
	"github.com/plus3/spinframe/systems"
)

// Engine is a bootstrapped world and its scheduler.
type Engine struct {
	World     *ecs.World
	Scheduler *ecs.Scheduler
	Surface   platform.Surface
}

// Bootstrap creates the window, populates the world with the configured
// startup entities and registers Physics, Renderer and User in that order.
func Bootstrap(cfg Config, windows platform.WindowProvider, logger *zap.Logger) (*Engine, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	surface, err := windows.CreateWindow(cfg.Window.Title, cfg.Window.Width, cfg.Window.Height)
	if err != nil {
		return nil, fmt.Errorf("create window: %w", err)
	}

	world := ecs.NewWorld(ecs.WithWorldLogger(logger.Named("world")))
	if err := Populate(world, cfg.Entities); err != nil {
		return nil, err
	}

	opts := []ecs.SchedulerOption{
		ecs.WithLogger(logger.Named("scheduler")),
		ecs.WithFrameInterval(cfg.FrameInterval),
	}
	if cfg.Actors {
		opts = append(opts, ecs.WithActors(), ecs.WithMailboxSize(cfg.MailboxSize))
	}

	scheduler := ecs.NewScheduler(world, opts...)
	scheduler.Register(systems.NewPhysics(cfg.Physics.Step))
	scheduler.Register(systems.NewRenderer(surface))
	scheduler.Register(systems.NewUser())

	logger.Info("engine ready",
		zap.Int("entities", world.Len()),
		zap.Bool("actors", cfg.Actors),
	)

	return &Engine{
		World:     world,
		Scheduler: scheduler,
		Surface:   surface,
	}, nil
}

// Populate creates one entity per entry.
func Populate(world *ecs.World, entities []EntityConfig) error {
	for i, entity := range entities {
		components := make([]ecs.Component, 0, len(entity.Components))
		for j, cc := range entity.Components {
			component, err := cc.Build()
			if err != nil {
				return fmt.Errorf("entities[%d].components[%d]: %w", i, j, err)
			}
			components = append(components, component)
		}
		world.CreateEntity(components...)
	}
	return nil
}
