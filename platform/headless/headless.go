// Package headless provides a recording surface and a scripted event source.
// It backs tests and windowless runs.
package headless

import (
	"image"
	"sync"

	"github.com/plus3/spinframe/platform"
)

// DrawCall is one recorded DrawTexturedRect call.
type DrawCall struct {
	Frame    int
	Rect     image.Rectangle
	Rotation float64
}

// Window implements platform.WindowProvider and platform.Surface by recording calls.
type Window struct {
	mu       sync.Mutex
	title    string
	width    int
	height   int
	created  bool
	frame    int
	calls    []DrawCall
	presents int
}

// NewWindow creates an unopened recording window.
func NewWindow() *Window {
	return &Window{}
}

// CreateWindow records the requested geometry and returns the window itself.
func (w *Window) CreateWindow(title string, width, height int) (platform.Surface, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.title = title
	w.width = width
	w.height = height
	w.created = true
	return w, nil
}

// Title returns the title passed to CreateWindow.
func (w *Window) Title() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.title
}

// Size returns the size passed to CreateWindow.
func (w *Window) Size() (int, int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.width, w.height
}

func (w *Window) Clear() {}

func (w *Window) DrawTexturedRect(rect image.Rectangle, rotation float64) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.calls = append(w.calls, DrawCall{Frame: w.frame, Rect: rect, Rotation: rotation})
	return nil
}

func (w *Window) Present() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.presents++
	w.frame++
	return nil
}

// Calls returns every recorded draw call.
func (w *Window) Calls() []DrawCall {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]DrawCall, len(w.calls))
	copy(out, w.calls)
	return out
}

// FrameCalls returns the draw calls recorded for one presented frame (0-based).
func (w *Window) FrameCalls(frame int) []DrawCall {
	w.mu.Lock()
	defer w.mu.Unlock()
	var out []DrawCall
	for _, c := range w.calls {
		if c.Frame == frame {
			out = append(out, c)
		}
	}
	return out
}

// Presents returns how many frames were presented.
func (w *Window) Presents() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.presents
}

// Events is a scripted event source. Pushed events are delivered on the next
// poll; QuitAfter makes the source emit a quit event on a given poll.
type Events struct {
	mu        sync.Mutex
	pending   []platform.Event
	polls     int
	quitAfter int
}

// NewEvents creates an empty event source.
func NewEvents() *Events {
	return &Events{}
}

// Push queues events for the next poll.
func (e *Events) Push(events ...platform.Event) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.pending = append(e.pending, events...)
}

// QuitAfter emits a quit event on the poll following n non-terminating polls,
// so exactly n frames run. Zero disables it.
func (e *Events) QuitAfter(n int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.quitAfter = n
}

// Polls returns how many times PollEvents was called.
func (e *Events) Polls() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.polls
}

func (e *Events) PollEvents() []platform.Event {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.polls++
	out := e.pending
	e.pending = nil
	if e.quitAfter > 0 && e.polls > e.quitAfter {
		out = append(out, platform.Quit())
	}
	return out
}
