package systems

import (
	"fmt"
	"image"

	"github.com/plus3/spinframe/ecs"
	"github.com/plus3/spinframe/platform"
)

// SpriteSize is the edge length, in pixels, of the rect drawn per entity.
const SpriteSize = 100

// Renderer draws one textured rect per renderable entity. It never mutates components.
type Renderer struct {
	surface platform.Surface
}

// NewRenderer creates a Renderer drawing onto surface.
func NewRenderer(surface platform.Surface) *Renderer {
	return &Renderer{surface: surface}
}

func (r *Renderer) Name() string { return "Renderer" }

func (r *Renderer) ComponentTypes() []ecs.ComponentType {
	return []ecs.ComponentType{ecs.Renderable}
}

func (r *Renderer) Update(frame *ecs.UpdateFrame) error {
	r.surface.Clear()

	for _, ref := range frame.Entities {
		var (
			rect     image.Rectangle
			rotation float64
			ok       bool
		)
		ref.With(func(e *ecs.Entity) {
			var renderable *ecs.RenderableComponent
			renderable, ok = ecs.Get[ecs.RenderableComponent](e, ecs.Renderable)
			if !ok {
				return
			}
			pos := renderable.Position
			rect = image.Rect(pos.X, pos.Y, pos.X+SpriteSize, pos.Y+SpriteSize)
			rotation = renderable.Rotation
		})
		if !ok {
			continue
		}

		if err := r.surface.DrawTexturedRect(rect, rotation); err != nil {
			return fmt.Errorf("draw entity %s: %w", ref.ID(), err)
		}
	}

	if err := r.surface.Present(); err != nil {
		return fmt.Errorf("present: %w", err)
	}
	return nil
}
