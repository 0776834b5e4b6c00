package ecs_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/spinframe/ecs"
	"github.com/plus3/spinframe/platform"
	"github.com/plus3/spinframe/platform/headless"
)

type SpinSystem struct {
	ExecuteCount int
}

func (s *SpinSystem) ComponentTypes() []ecs.ComponentType {
	return []ecs.ComponentType{ecs.Renderable}
}

func (s *SpinSystem) Update(frame *ecs.UpdateFrame) error {
	s.ExecuteCount++
	for _, ref := range frame.Entities {
		ref.With(func(e *ecs.Entity) {
			r, _ := ecs.Get[ecs.RenderableComponent](e, ecs.Renderable)
			r.Rotation++
		})
	}
	return nil
}

type RecordSystem struct {
	Rotations [][]float64
}

func (s *RecordSystem) ComponentTypes() []ecs.ComponentType {
	return []ecs.ComponentType{ecs.Renderable}
}

func (s *RecordSystem) Update(frame *ecs.UpdateFrame) error {
	var seen []float64
	for _, ref := range frame.Entities {
		ref.With(func(e *ecs.Entity) {
			r, _ := ecs.Get[ecs.RenderableComponent](e, ecs.Renderable)
			seen = append(seen, r.Rotation)
		})
	}
	s.Rotations = append(s.Rotations, seen)
	return nil
}

func newSpinWorld() *ecs.World {
	world := ecs.NewWorld()
	world.CreateEntity(&ecs.RenderableComponent{Position: ecs.Point{X: 50, Y: 60}, Rotation: 3})
	world.CreateEntity(&ecs.SolidComponent{})
	world.CreateEntity(&ecs.RenderableComponent{Position: ecs.Point{X: 100, Y: 80}, Rotation: 2}, &ecs.SolidComponent{})
	return world
}

func TestScheduler(t *testing.T) {
	ctx := context.Background()

	modes := map[string][]ecs.SchedulerOption{
		"direct": nil,
		"actors": {ecs.WithActors(), ecs.WithMailboxSize(1)},
	}

	for mode, opts := range modes {
		t.Run(mode, func(t *testing.T) {
			t.Run("later systems observe earlier updates", func(t *testing.T) {
				scheduler := ecs.NewScheduler(newSpinWorld(), opts...)
				defer scheduler.Close()

				spin := &SpinSystem{}
				record := &RecordSystem{}
				scheduler.Register(spin)
				scheduler.Register(record)

				require.NoError(t, scheduler.Once(ctx, 1.0))
				require.NoError(t, scheduler.Once(ctx, 1.0))

				assert.Equal(t, 2, spin.ExecuteCount)
				assert.Equal(t, [][]float64{{4, 3}, {5, 4}}, record.Rotations)
			})

			t.Run("registration order", func(t *testing.T) {
				scheduler := ecs.NewScheduler(ecs.NewWorld(), opts...)
				defer scheduler.Close()

				var order []string
				for _, name := range []string{"first", "second", "third"} {
					scheduler.Register(ecs.SystemFunc{Fn: func(*ecs.UpdateFrame) error {
						order = append(order, name)
						return nil
					}})
				}

				require.NoError(t, scheduler.Once(ctx, 0))
				assert.Equal(t, []string{"first", "second", "third"}, order)
			})

			t.Run("error aborts the frame", func(t *testing.T) {
				scheduler := ecs.NewScheduler(ecs.NewWorld(), opts...)
				defer scheduler.Close()

				boom := errors.New("boom")
				after := 0
				scheduler.Register(ecs.SystemFunc{Fn: func(*ecs.UpdateFrame) error { return boom }})
				scheduler.Register(ecs.SystemFunc{Fn: func(*ecs.UpdateFrame) error {
					after++
					return nil
				}})

				err := scheduler.Once(ctx, 0)
				assert.ErrorIs(t, err, boom)
				assert.Zero(t, after)
			})

			t.Run("register while running", func(t *testing.T) {
				scheduler := ecs.NewScheduler(newSpinWorld(), opts...)
				defer scheduler.Close()

				require.NoError(t, scheduler.Once(ctx, 0))

				spin := &SpinSystem{}
				scheduler.Register(spin)
				require.NoError(t, scheduler.Once(ctx, 0))
				assert.Equal(t, 1, spin.ExecuteCount)
			})
		})
	}
}

func TestSchedulerLifecycle(t *testing.T) {
	ctx := context.Background()

	t.Run("states", func(t *testing.T) {
		scheduler := ecs.NewScheduler(ecs.NewWorld(), ecs.WithActors())
		assert.Equal(t, ecs.StateInit, scheduler.State())

		require.NoError(t, scheduler.Start(ctx))
		require.NoError(t, scheduler.Start(ctx))
		assert.Equal(t, ecs.StateRunning, scheduler.State())

		require.NoError(t, scheduler.Close())
		require.NoError(t, scheduler.Close())
		assert.Equal(t, ecs.StateTerminated, scheduler.State())
		assert.Equal(t, "terminated", scheduler.State().String())

		assert.ErrorIs(t, scheduler.Once(ctx, 0), ecs.ErrSchedulerClosed)
		assert.ErrorIs(t, scheduler.Start(ctx), ecs.ErrSchedulerClosed)
	})

	t.Run("close stops actors", func(t *testing.T) {
		scheduler := ecs.NewScheduler(ecs.NewWorld(), ecs.WithActors())
		spin := &SpinSystem{}
		scheduler.Register(spin)

		require.NoError(t, scheduler.Once(ctx, 0))
		require.NoError(t, scheduler.Close())
		assert.Equal(t, 1, spin.ExecuteCount)
	})

	t.Run("frame index and delta time", func(t *testing.T) {
		scheduler := ecs.NewScheduler(ecs.NewWorld())
		defer scheduler.Close()

		var frames []uint64
		var deltas []float64
		scheduler.Register(ecs.SystemFunc{Fn: func(frame *ecs.UpdateFrame) error {
			frames = append(frames, frame.Index)
			deltas = append(deltas, frame.DeltaTime)
			return nil
		}})

		require.NoError(t, scheduler.Once(ctx, 0.5))
		require.NoError(t, scheduler.Once(ctx, 0.25))
		assert.Equal(t, []uint64{1, 2}, frames)
		assert.Equal(t, []float64{0.5, 0.25}, deltas)
		assert.Equal(t, uint64(2), scheduler.Frame())
	})
}

func TestSchedulerStep(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name   string
		events []platform.Event
		done   bool
	}{
		{name: "no events", events: nil, done: false},
		{name: "enter", events: []platform.Event{platform.KeyDown(platform.KeyEnter)}, done: false},
		{name: "quit", events: []platform.Event{platform.Quit()}, done: true},
		{name: "escape", events: []platform.Event{platform.KeyDown(platform.KeyEscape)}, done: true},
		{name: "escape after other keys", events: []platform.Event{
			platform.KeyDown(platform.KeySpace),
			platform.KeyDown(platform.KeyEscape),
		}, done: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scheduler := ecs.NewScheduler(newSpinWorld())
			defer scheduler.Close()
			spin := &SpinSystem{}
			scheduler.Register(spin)

			events := platform.Events(tt.events)
			done, err := scheduler.Step(ctx, &events)
			require.NoError(t, err)
			assert.Equal(t, tt.done, done)

			if tt.done {
				assert.Zero(t, spin.ExecuteCount)
				assert.Equal(t, ecs.StateTerminated, scheduler.State())

				// A terminated scheduler keeps reporting done
				done, err = scheduler.Step(ctx, &events)
				require.NoError(t, err)
				assert.True(t, done)
			} else {
				assert.Equal(t, 1, spin.ExecuteCount)
			}
		})
	}
}

func TestSchedulerRun(t *testing.T) {
	t.Run("until quit", func(t *testing.T) {
		scheduler := ecs.NewScheduler(newSpinWorld())
		spin := &SpinSystem{}
		scheduler.Register(spin)

		events := headless.NewEvents()
		events.QuitAfter(5)

		require.NoError(t, scheduler.Run(context.Background(), events))
		assert.Equal(t, 5, spin.ExecuteCount)
		assert.Equal(t, ecs.StateTerminated, scheduler.State())
	})

	t.Run("until cancelled", func(t *testing.T) {
		scheduler := ecs.NewScheduler(newSpinWorld(), ecs.WithFrameInterval(time.Millisecond))
		spin := &SpinSystem{}
		scheduler.Register(spin)

		ctx, cancel := context.WithCancel(context.Background())
		scheduler.Register(ecs.SystemFunc{Fn: func(frame *ecs.UpdateFrame) error {
			if frame.Index == 3 {
				cancel()
			}
			return nil
		}})

		require.NoError(t, scheduler.Run(ctx, headless.NewEvents()))
		assert.Equal(t, 3, spin.ExecuteCount)
		assert.Equal(t, ecs.StateTerminated, scheduler.State())
	})

	t.Run("system error", func(t *testing.T) {
		scheduler := ecs.NewScheduler(ecs.NewWorld(), ecs.WithActors())
		defer scheduler.Close()

		boom := errors.New("boom")
		scheduler.Register(ecs.SystemFunc{Fn: func(*ecs.UpdateFrame) error { return boom }})

		err := scheduler.Run(context.Background(), headless.NewEvents())
		assert.ErrorIs(t, err, boom)
	})
}

func TestSchedulerStats(t *testing.T) {
	ctx := context.Background()
	scheduler := ecs.NewScheduler(newSpinWorld())
	defer scheduler.Close()

	scheduler.Register(&SpinSystem{})
	scheduler.Register(ecs.SystemFunc{Types: []ecs.ComponentType{ecs.Hud}})

	require.NoError(t, scheduler.Once(ctx, 0))
	require.NoError(t, scheduler.Once(ctx, 0))

	stats := scheduler.GetStats()
	assert.Equal(t, 2, stats.SystemCount)
	assert.Equal(t, uint64(2), stats.Frames)
	assert.Equal(t, int64(4), stats.TotalExecutions)

	require.Len(t, stats.Systems, 2)
	assert.Equal(t, "SpinSystem", stats.Systems[0].Name)
	assert.Equal(t, 2, stats.Systems[0].LastMatches)
	assert.Equal(t, "SystemFunc", stats.Systems[1].Name)
	assert.Zero(t, stats.Systems[1].LastMatches)
	assert.LessOrEqual(t, stats.Systems[0].MinDuration, stats.Systems[0].MaxDuration)
}
