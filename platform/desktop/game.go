package desktop

import (
	"context"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/plus3/spinframe/ecs"
)

// Overlay draws on top of the engine output, e.g. a debug UI.
type Overlay interface {
	BeginFrame()
	Render()
	EndFrame()
	Draw(screen *ebiten.Image)
	Layout(outsideWidth, outsideHeight int)
}

// Game adapts a scheduler to ebiten.Game. Each ebiten tick is one scheduler step.
type Game struct {
	ctx       context.Context
	window    *Window
	scheduler *ecs.Scheduler
	overlay   Overlay
}

// NewGame creates a Game. overlay may be nil.
func NewGame(ctx context.Context, window *Window, scheduler *ecs.Scheduler, overlay Overlay) *Game {
	return &Game{
		ctx:       ctx,
		window:    window,
		scheduler: scheduler,
		overlay:   overlay,
	}
}

func (g *Game) Update() error {
	if g.overlay != nil {
		g.overlay.BeginFrame()
	}

	done, err := g.scheduler.Step(g.ctx, g.window)

	if g.overlay != nil {
		if err == nil && !done {
			g.overlay.Render()
		}
		g.overlay.EndFrame()
	}

	if err != nil {
		return err
	}
	if done {
		return ebiten.Termination
	}

	select {
	case <-g.ctx.Done():
		if err := g.scheduler.Close(); err != nil {
			return err
		}
		return ebiten.Termination
	default:
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	if g.window.presented != nil {
		screen.DrawImage(g.window.presented, nil)
	}
	if g.overlay != nil {
		g.overlay.Draw(screen)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if g.overlay != nil {
		g.overlay.Layout(outsideWidth, outsideHeight)
	}
	return g.window.width, g.window.height
}

// Run blocks in ebiten's main loop until the scheduler terminates.
func (g *Game) Run() error {
	if err := ebiten.RunGame(g); err != nil {
		return fmt.Errorf("run game: %w", err)
	}
	return nil
}
