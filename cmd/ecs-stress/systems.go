package main

import (
	"fmt"
	"math/rand"

	"github.com/plus3/spinframe/ecs"
)

// stressSystem touches every matched entity under its lock and optionally
// churns entities through deferred commands.
type stressSystem struct {
	name  string
	types []ecs.ComponentType
	churn int
}

func (s *stressSystem) Name() string { return s.name }

func (s *stressSystem) ComponentTypes() []ecs.ComponentType { return s.types }

func (s *stressSystem) Update(frame *ecs.UpdateFrame) error {
	for _, ref := range frame.Entities {
		ref.With(func(e *ecs.Entity) {
			if r, ok := ecs.Get[ecs.RenderableComponent](e, ecs.Renderable); ok {
				r.Rotation += frame.DeltaTime
			}
		})
	}

	for i := 0; i < s.churn && i < len(frame.Entities); i++ {
		frame.Commands.Delete(frame.Entities[i].ID())
		frame.Commands.Spawn(randomComponents(rand.Intn(5) + 1)...)
	}
	return nil
}

// RegisterStressSystems registers count systems, each querying one or two
// random component types. Only the first system churns.
func RegisterStressSystems(scheduler *ecs.Scheduler, count, churn int) {
	all := ecs.ComponentTypes()
	for i := 0; i < count; i++ {
		types := []ecs.ComponentType{all[rand.Intn(len(all))]}
		if rand.Intn(2) == 0 {
			types = append(types, all[rand.Intn(len(all))])
		}

		system := &stressSystem{
			name:  fmt.Sprintf("Stress%03d", i),
			types: types,
		}
		if i == 0 {
			system.churn = churn
		}
		scheduler.Register(system)
	}
}

// SpawnRandomEntity creates an entity with up to n random components.
// Duplicate types collapse, so the entity may end up with fewer.
func SpawnRandomEntity(world *ecs.World, n int) ecs.EntityID {
	return world.CreateEntity(randomComponents(n)...)
}

func randomComponents(n int) []ecs.Component {
	components := make([]ecs.Component, 0, n)
	for i := 0; i < n; i++ {
		components = append(components, randomComponent())
	}
	return components
}

func randomComponent() ecs.Component {
	switch rand.Intn(4) {
	case 0:
		return &ecs.RenderableComponent{
			Position: ecs.Point{X: rand.Intn(800), Y: rand.Intn(600)},
			Rotation: rand.Float64() * 360,
		}
	case 1:
		return &ecs.SolidComponent{}
	case 2:
		return &ecs.UserComponent{}
	default:
		return &ecs.CustomComponent{Kind: fmt.Sprintf("kind-%d", rand.Intn(8))}
	}
}
