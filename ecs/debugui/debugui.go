// Package debugui provides Dear ImGui inspector panels for a running World and Scheduler.
package debugui

import (
	"time"

	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/plus3/spinframe/ecs"
)

// Inspector renders every debug panel. Render must be called between the
// ImGui backend's BeginFrame and EndFrame.
type Inspector struct {
	world     *ecs.World
	scheduler *ecs.Scheduler
	timer     *FrameTimer

	browser     *EntityBrowserComponent
	inspector   *ComponentInspectorComponent
	cacheViewer *CacheViewerComponent
	performance *PerformanceStatsComponent
}

// NewInspector creates the panel set for world and scheduler.
func NewInspector(world *ecs.World, scheduler *ecs.Scheduler) *Inspector {
	browser := NewEntityBrowserComponent(100)
	inspector := NewComponentInspectorComponent()
	cacheViewer := NewCacheViewerComponent()
	performance := NewPerformanceStatsComponent(120)
	return &Inspector{
		world:       world,
		scheduler:   scheduler,
		timer:       NewFrameTimer(),
		browser:     &browser,
		inspector:   &inspector,
		cacheViewer: &cacheViewer,
		performance: &performance,
	}
}

// Render draws all panels.
func (i *Inspector) Render() {
	imgui.SetNextWindowPosV(imgui.NewVec2(10, 10), imgui.CondOnce, imgui.NewVec2(0, 0))
	imgui.SetNextWindowSizeV(imgui.NewVec2(420, 260), imgui.CondOnce)
	i.browser.Render(i.world)

	imgui.SetNextWindowPosV(imgui.NewVec2(10, 280), imgui.CondOnce, imgui.NewVec2(0, 0))
	imgui.SetNextWindowSizeV(imgui.NewVec2(420, 220), imgui.CondOnce)
	i.inspector.Render(i.world, i.browser.GetSelectedEntity())

	imgui.SetNextWindowPosV(imgui.NewVec2(440, 10), imgui.CondOnce, imgui.NewVec2(0, 0))
	imgui.SetNextWindowSizeV(imgui.NewVec2(340, 300), imgui.CondOnce)
	i.cacheViewer.Render(i.world)

	imgui.SetNextWindowPosV(imgui.NewVec2(440, 320), imgui.CondOnce, imgui.NewVec2(0, 0))
	imgui.SetNextWindowSizeV(imgui.NewVec2(340, 260), imgui.CondOnce)
	i.performance.Render(i.world, i.scheduler, i.timer.GetDeltaTime())
}

// FrameTimer measures wall time between Render calls.
type FrameTimer struct {
	lastFrameTime time.Time
}

func NewFrameTimer() *FrameTimer {
	return &FrameTimer{
		lastFrameTime: time.Now(),
	}
}

func (ft *FrameTimer) GetDeltaTime() float32 {
	now := time.Now()
	delta := float32(now.Sub(ft.lastFrameTime).Seconds())
	ft.lastFrameTime = now
	return delta
}
