package main

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/spinframe/ecs"
)

func TestFrameTimes(t *testing.T) {
	var f FrameTimes
	assert.Zero(t, f.Mean())
	assert.Zero(t, f.Percentile(99))

	for i := 10; i >= 1; i-- {
		f.Add(time.Duration(i) * time.Millisecond)
	}
	assert.Equal(t, 10, f.Count())
	assert.Equal(t, 5500*time.Microsecond, f.Mean())
	assert.Equal(t, 6*time.Millisecond, f.Percentile(50))
	assert.Equal(t, 10*time.Millisecond, f.Percentile(100))
}

func TestReportGenerate(t *testing.T) {
	world := ecs.NewWorld()
	for i := 0; i < 20; i++ {
		SpawnRandomEntity(world, 3)
	}
	scheduler := ecs.NewScheduler(world)
	defer scheduler.Close()
	RegisterStressSystems(scheduler, 3, 2)

	report := &Report{Settings: Settings{Duration: time.Second, Entities: 20, Systems: 3, Churn: 2}}
	report.Memory.Start()
	for i := 0; i < 4; i++ {
		start := time.Now()
		require.NoError(t, scheduler.Once(context.Background(), 1.0/60.0))
		report.Frames.Add(time.Since(start))
	}
	report.Memory.Stop()
	report.World = world.CollectStats()
	report.Scheduler = scheduler.GetStats()

	var out strings.Builder
	require.NoError(t, report.Generate(&out))

	text := out.String()
	assert.Contains(t, text, "# Scheduler Stress Report")
	assert.Contains(t, text, "| 4 |")
	assert.Contains(t, text, "Stress000")
	assert.Contains(t, text, "cached signatures")
}
