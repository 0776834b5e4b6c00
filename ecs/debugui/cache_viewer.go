package debugui

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/plus3/spinframe/ecs"
)

// CacheViewerComponent builds ad-hoc signatures and compares the cached
// answer with a fresh scan, which makes stale cache entries visible.
type CacheViewerComponent struct {
	selected map[ecs.ComponentType]bool
}

func NewCacheViewerComponent() CacheViewerComponent {
	return CacheViewerComponent{
		selected: make(map[ecs.ComponentType]bool),
	}
}

func (cv *CacheViewerComponent) Render(world *ecs.World) {
	if !imgui.BeginV("Signature Cache", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	imgui.Text("Select Component Types:")
	imgui.Separator()

	if imgui.Button("Clear All") {
		cv.selected = make(map[ecs.ComponentType]bool)
	}
	imgui.SameLine()
	if imgui.Button("Clear Cache") {
		world.ClearCache()
	}

	for _, t := range ecs.ComponentTypes() {
		selected := cv.selected[t]
		if imgui.Checkbox(t.String(), &selected) {
			if selected {
				cv.selected[t] = true
			} else {
				delete(cv.selected, t)
			}
		}
	}

	imgui.Separator()

	types := cv.selectedTypes()
	if len(types) == 0 {
		imgui.Text("No component types selected")
	} else {
		imgui.Text(fmt.Sprintf("Signature: %q", ecs.Signature(types)))
		if imgui.Button("Resolve") {
			world.Resolve(types)
		}
		imgui.SameLine()
		imgui.Text(fmt.Sprintf("Live scan: %d", len(world.Match(types))))
	}

	stats := world.CollectStats()

	imgui.Separator()
	imgui.Text(fmt.Sprintf("Cached Signatures: %d", stats.CachedSignatureCount))

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
	if imgui.BeginTableV("CacheTable", 3, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("Signature")
		imgui.TableSetupColumn("Cached IDs")
		imgui.TableSetupColumn("Live")
		imgui.TableHeadersRow()

		for _, entry := range stats.CacheBreakdown {
			imgui.TableNextRow()
			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%q", entry.Signature))
			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", entry.IDCount))
			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", entry.LiveCount))
		}

		imgui.EndTable()
	}

	imgui.End()
}

// selectedTypes returns the checked types in declaration order.
func (cv *CacheViewerComponent) selectedTypes() []ecs.ComponentType {
	var types []ecs.ComponentType
	for _, t := range ecs.ComponentTypes() {
		if cv.selected[t] {
			types = append(types, t)
		}
	}
	return types
}
