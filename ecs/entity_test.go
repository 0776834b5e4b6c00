package ecs_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/spinframe/ecs"
)

func TestEntityAddComponent(t *testing.T) {
	t.Run("insert if absent", func(t *testing.T) {
		e := ecs.NewEntity(&ecs.RenderableComponent{Position: ecs.Point{X: 1, Y: 2}, Rotation: 3})

		inserted := e.AddComponent(&ecs.RenderableComponent{Position: ecs.Point{X: 9, Y: 9}, Rotation: 90})
		assert.False(t, inserted)

		r, ok := ecs.Get[ecs.RenderableComponent](e, ecs.Renderable)
		require.True(t, ok)
		assert.Equal(t, ecs.Point{X: 1, Y: 2}, r.Position)
		assert.Equal(t, 3.0, r.Rotation)
	})

	t.Run("constructor drops duplicate types", func(t *testing.T) {
		e := ecs.NewEntity(&ecs.SolidComponent{}, &ecs.SolidComponent{}, &ecs.UserComponent{})
		assert.Equal(t, []ecs.ComponentType{ecs.Solid, ecs.User}, e.Types())
	})

	t.Run("nil is ignored", func(t *testing.T) {
		e := ecs.NewEntity()
		assert.False(t, e.AddComponent(nil))
		assert.Empty(t, e.Types())
	})

	t.Run("typed nil is ignored", func(t *testing.T) {
		e := ecs.NewEntity((*ecs.RenderableComponent)(nil), &ecs.SolidComponent{})
		assert.False(t, e.AddComponent((*ecs.CustomComponent)(nil)))
		assert.Equal(t, []ecs.ComponentType{ecs.Solid}, e.Types())

		world := ecs.NewWorld()
		id := world.CreateEntity((*ecs.RenderableComponent)(nil))
		ref, ok := world.Entity(id)
		require.True(t, ok)
		assert.NotPanics(t, func() { ref.Snapshot() })
		assert.Empty(t, world.Resolve([]ecs.ComponentType{ecs.Renderable}))
	})

	t.Run("insertion order", func(t *testing.T) {
		e := ecs.NewEntity(&ecs.UserComponent{}, &ecs.RenderableComponent{}, &ecs.SolidComponent{})
		assert.Equal(t, []ecs.ComponentType{ecs.User, ecs.Renderable, ecs.Solid}, e.Types())

		components := e.Components()
		require.Len(t, components, 3)
		assert.Equal(t, ecs.User, components[0].Type())
		assert.Equal(t, ecs.Solid, components[2].Type())
	})
}

func TestEntityLookup(t *testing.T) {
	e := ecs.NewEntity(&ecs.SolidComponent{})

	assert.True(t, e.Has(ecs.Solid))
	assert.False(t, e.Has(ecs.Renderable))

	_, ok := e.Component(ecs.Renderable)
	assert.False(t, ok)

	// Wrong concrete type for the slot
	_, ok = ecs.Get[ecs.RenderableComponent](e, ecs.Solid)
	assert.False(t, ok)

	_, ok = ecs.As[ecs.SolidComponent](nil)
	assert.False(t, ok)
}

func TestEntityIDsAreUnique(t *testing.T) {
	seen := make(map[ecs.EntityID]bool)
	for i := 0; i < 1000; i++ {
		id := ecs.NewEntity().ID()
		assert.False(t, seen[id])
		seen[id] = true
	}
}

func TestEntityClone(t *testing.T) {
	e := ecs.NewEntity(
		&ecs.RenderableComponent{Position: ecs.Point{X: 5, Y: 6}, Rotation: 10},
		&ecs.CustomComponent{Kind: "tag", Props: map[string]string{"team": "red"}},
	)

	c := e.Clone()
	assert.Equal(t, e.ID(), c.ID())
	assert.Equal(t, e.Types(), c.Types())

	r, _ := ecs.Get[ecs.RenderableComponent](c, ecs.Renderable)
	r.Rotation = 99
	custom, _ := ecs.Get[ecs.CustomComponent](c, ecs.Custom)
	custom.Props["team"] = "blue"

	orig, _ := ecs.Get[ecs.RenderableComponent](e, ecs.Renderable)
	assert.Equal(t, 10.0, orig.Rotation)
	origCustom, _ := ecs.Get[ecs.CustomComponent](e, ecs.Custom)
	assert.Equal(t, "red", origCustom.Props["team"])
}

func TestEntityRefExclusiveAccess(t *testing.T) {
	world := ecs.NewWorld()
	id := world.CreateEntity(&ecs.RenderableComponent{})
	ref, ok := world.Entity(id)
	require.True(t, ok)
	assert.Equal(t, id, ref.ID())

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				ref.With(func(e *ecs.Entity) {
					r, _ := ecs.Get[ecs.RenderableComponent](e, ecs.Renderable)
					r.Rotation++
				})
			}
		}()
	}
	wg.Wait()

	snapshot := ref.Snapshot()
	r, _ := ecs.Get[ecs.RenderableComponent](snapshot, ecs.Renderable)
	assert.Equal(t, 5000.0, r.Rotation)
}

func TestComponentTypeText(t *testing.T) {
	for _, ct := range ecs.ComponentTypes() {
		parsed, err := ecs.ParseComponentType(ct.String())
		require.NoError(t, err)
		assert.Equal(t, ct, parsed)
	}

	_, err := ecs.ParseComponentType("Velocity")
	assert.ErrorIs(t, err, ecs.ErrUnknownComponentType)

	var ct ecs.ComponentType
	require.NoError(t, ct.UnmarshalText([]byte("Hud")))
	assert.Equal(t, ecs.Hud, ct)
	assert.Equal(t, "ComponentType(200)", ecs.ComponentType(200).String())
}
