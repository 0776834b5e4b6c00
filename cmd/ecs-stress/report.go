package main

import (
	"cmp"
	"io"
	"runtime"
	"slices"
	"text/template"
	"time"

	"github.com/plus3/spinframe/ecs"
)

// Report collects one stress run: the settings it ran with, frame timings,
// heap movement and the final world and scheduler state.
type Report struct {
	Settings  Settings
	Frames    FrameTimes
	Memory    MemoryDelta
	World     ecs.WorldStats
	Scheduler *ecs.SchedulerStats
	Elapsed   time.Duration
}

type Settings struct {
	Duration time.Duration
	Entities int
	Systems  int
	Actors   bool
	Churn    int
}

// FrameTimes holds per-frame scheduler durations.
type FrameTimes struct {
	samples []time.Duration
}

func (f *FrameTimes) Add(d time.Duration) {
	f.samples = append(f.samples, d)
}

func (f *FrameTimes) Count() int { return len(f.samples) }

// Percentile returns the p-th percentile (0-100) of the recorded frame times.
func (f *FrameTimes) Percentile(p int) time.Duration {
	if len(f.samples) == 0 {
		return 0
	}
	sorted := slices.Clone(f.samples)
	slices.Sort(sorted)
	idx := min(len(sorted)-1, len(sorted)*p/100)
	return sorted[idx]
}

func (f *FrameTimes) Mean() time.Duration {
	if len(f.samples) == 0 {
		return 0
	}
	var total time.Duration
	for _, s := range f.samples {
		total += s
	}
	return total / time.Duration(len(f.samples))
}

// MemoryDelta compares two runtime.MemStats readings.
type MemoryDelta struct {
	before, after runtime.MemStats
}

func (m *MemoryDelta) Start() { runtime.ReadMemStats(&m.before) }
func (m *MemoryDelta) Stop()  { runtime.ReadMemStats(&m.after) }

func (m *MemoryDelta) HeapGrowth() int64 {
	return int64(m.after.HeapAlloc) - int64(m.before.HeapAlloc)
}

func (m *MemoryDelta) Allocated() uint64 { return m.after.TotalAlloc - m.before.TotalAlloc }
func (m *MemoryDelta) GCCycles() uint32  { return m.after.NumGC - m.before.NumGC }

func (m *MemoryDelta) GCPause() time.Duration {
	return time.Duration(m.after.PauseTotalNs - m.before.PauseTotalNs)
}

var reportTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"slowest": slowestSystems,
}).Parse(`
# Scheduler Stress Report

ran {{.Elapsed}} (budget {{.Settings.Duration}}) over {{.Settings.Entities}} entities, {{.Settings.Systems}} systems (actors={{.Settings.Actors}}, churn={{.Settings.Churn}}/frame)

## Frames
| frames | mean | p50 | p99 | max |
|---|---|---|---|---|
| {{.Frames.Count}} | {{.Frames.Mean}} | {{.Frames.Percentile 50}} | {{.Frames.Percentile 99}} | {{.Frames.Percentile 100}} |

## Memory
heap growth {{.Memory.HeapGrowth}} B, allocated {{.Memory.Allocated}} B, {{.Memory.GCCycles}} GC cycles paused {{.Memory.GCPause}}

## World
{{.World.TotalEntityCount}} live entities, {{.World.CachedSignatureCount}} cached signatures
{{range .World.CacheBreakdown}}- {{printf "%q" .Signature}}: {{.IDCount}} cached, {{.LiveCount}} live
{{end}}
## Slowest Systems
{{range slowest .Scheduler.Systems 5}}- {{.Name}}: avg {{.AvgDuration}}, max {{.MaxDuration}}, {{.LastMatches}} matches
{{end}}`))

func (r *Report) Generate(w io.Writer) error {
	return reportTemplate.Execute(w, r)
}

func slowestSystems(systems []ecs.SystemStats, n int) []ecs.SystemStats {
	sorted := slices.Clone(systems)
	slices.SortFunc(sorted, func(a, b ecs.SystemStats) int {
		return cmp.Compare(b.AvgDuration, a.AvgDuration)
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}
