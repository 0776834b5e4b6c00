// Package desktop runs the engine in an ebiten window.
package desktop

import (
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/plus3/spinframe/platform"
)

// Window implements platform.WindowProvider, platform.Surface and
// platform.EventSource on top of ebiten.
//
// Systems draw into an offscreen canvas during ebiten's Update; Draw copies
// the last presented canvas to the screen.
type Window struct {
	title  string
	width  int
	height int

	canvas    *ebiten.Image
	texture   *ebiten.Image
	presented *ebiten.Image
}

// NewWindow returns a window that is configured by CreateWindow.
func NewWindow() *Window {
	return &Window{}
}

func (w *Window) CreateWindow(title string, width, height int) (platform.Surface, error) {
	w.title = title
	w.width = width
	w.height = height

	ebiten.SetWindowSize(width, height)
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowClosingHandled(true)
	return w, nil
}

// images are created lazily so that no GPU work happens before RunGame.
func (w *Window) ensureImages() {
	if w.canvas == nil {
		w.canvas = ebiten.NewImage(w.width, w.height)
		w.presented = ebiten.NewImage(w.width, w.height)
	}
	if w.texture == nil {
		w.texture = ebiten.NewImage(platform.TextureSize, platform.TextureSize)
		w.texture.WritePixels(platform.GradientTexture(platform.TextureSize).Pix)
	}
}

func (w *Window) Clear() {
	w.ensureImages()
	w.canvas.Fill(color.Black)
}

func (w *Window) DrawTexturedRect(rect image.Rectangle, rotation float64) error {
	w.ensureImages()

	half := float64(platform.TextureSize) / 2
	opts := &ebiten.DrawImageOptions{}
	opts.GeoM.Translate(-half, -half)
	opts.GeoM.Scale(float64(rect.Dx())/platform.TextureSize, float64(rect.Dy())/platform.TextureSize)
	opts.GeoM.Rotate(rotation * math.Pi / 180)
	opts.GeoM.Translate(float64(rect.Min.X)+float64(rect.Dx())/2, float64(rect.Min.Y)+float64(rect.Dy())/2)
	w.canvas.DrawImage(w.texture, opts)
	return nil
}

func (w *Window) Present() error {
	w.ensureImages()
	w.presented.Clear()
	w.presented.DrawImage(w.canvas, nil)
	return nil
}

// PollEvents reports a close request and key presses since the last tick.
func (w *Window) PollEvents() []platform.Event {
	var events []platform.Event
	if ebiten.IsWindowBeingClosed() {
		events = append(events, platform.Quit())
	}
	for key, mapped := range keyMap {
		if inpututil.IsKeyJustPressed(key) {
			events = append(events, platform.KeyDown(mapped))
		}
	}
	return events
}

var keyMap = map[ebiten.Key]platform.Key{
	ebiten.KeyEscape: platform.KeyEscape,
	ebiten.KeyEnter:  platform.KeyEnter,
	ebiten.KeySpace:  platform.KeySpace,
}
