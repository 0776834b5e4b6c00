// Package systems holds the engine's built-in update units.
package systems

import "github.com/plus3/spinframe/ecs"

// DefaultRotationStep is the rotation, in degrees, Physics adds per frame.
const DefaultRotationStep = 1.0

// Physics advances every renderable entity's rotation by a fixed step per frame.
type Physics struct {
	Step float64
}

// NewPhysics creates a Physics system. A zero step uses DefaultRotationStep.
func NewPhysics(step float64) *Physics {
	if step == 0 {
		step = DefaultRotationStep
	}
	return &Physics{Step: step}
}

func (p *Physics) Name() string { return "Physics" }

func (p *Physics) ComponentTypes() []ecs.ComponentType {
	return []ecs.ComponentType{ecs.Renderable}
}

func (p *Physics) Update(frame *ecs.UpdateFrame) error {
	for _, ref := range frame.Entities {
		ref.With(func(e *ecs.Entity) {
			if r, ok := ecs.Get[ecs.RenderableComponent](e, ecs.Renderable); ok {
				r.Rotation += p.Step
			}
		})
	}
	return nil
}
