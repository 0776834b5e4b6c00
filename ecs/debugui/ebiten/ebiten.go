// Package ebiten provides Dear ImGui backend integration for the Ebiten game engine.
package ebiten

import (
	ebitenbackend "github.com/AllenDang/cimgui-go/backend/ebiten-backend"
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/plus3/spinframe/ecs"
	"github.com/plus3/spinframe/ecs/debugui"
)

// Overlay renders the debug inspector on top of the desktop window. It
// satisfies desktop.Overlay.
type Overlay struct {
	backend   *ebitenbackend.EbitenBackend
	inspector *debugui.Inspector
}

// NewOverlay creates the ImGui backend and an inspector for world and scheduler.
// title, width and height must match the desktop window.
func NewOverlay(title string, width, height int, world *ecs.World, scheduler *ecs.Scheduler) *Overlay {
	backend := ebitenbackend.NewEbitenBackend()
	backend.CreateWindow(title, width, height)
	imgui.CurrentIO().SetIniFilename("") // Disable imgui.ini

	return &Overlay{
		backend:   backend,
		inspector: debugui.NewInspector(world, scheduler),
	}
}

func (o *Overlay) BeginFrame() {
	o.backend.BeginFrame()
}

// Render draws the inspector panels. It must run between BeginFrame and EndFrame.
func (o *Overlay) Render() {
	o.inspector.Render()
}

func (o *Overlay) EndFrame() {
	o.backend.EndFrame()
}

func (o *Overlay) Draw(screen *ebiten.Image) {
	o.backend.Draw(screen)
}

func (o *Overlay) Layout(outsideWidth, outsideHeight int) {
	o.backend.Layout(outsideWidth, outsideHeight)
}
