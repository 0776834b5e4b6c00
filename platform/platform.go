// Package platform declares the collaborators the engine core calls into:
// window creation, a drawable surface and an input event source. Backends in
// the sub-packages implement them for ebiten, tcell and tests.
package platform

import (
	"fmt"
	"image"
)

// WindowProvider creates the drawable surface. It is called once at startup.
type WindowProvider interface {
	CreateWindow(title string, width, height int) (Surface, error)
}

// Surface receives draw calls. A frame is Clear, any number of
// DrawTexturedRect calls, then Present.
type Surface interface {
	Clear()
	// DrawTexturedRect draws the shared texture scaled into rect and rotated
	// by rotation degrees clockwise around the rect's center.
	DrawTexturedRect(rect image.Rectangle, rotation float64) error
	Present() error
}

// EventSource is drained once per scheduler iteration.
type EventSource interface {
	PollEvents() []Event
}

// EventKind classifies an Event.
type EventKind uint8

const (
	EventQuit EventKind = iota + 1
	EventKeyDown
)

// Key identifies a keyboard key. Only keys the engine reacts to are named.
type Key uint16

const (
	KeyUnknown Key = iota
	KeyEscape
	KeyEnter
	KeySpace
)

func (k Key) String() string {
	switch k {
	case KeyEscape:
		return "Escape"
	case KeyEnter:
		return "Enter"
	case KeySpace:
		return "Space"
	default:
		return "Unknown"
	}
}

// Event is one input event.
type Event struct {
	Kind EventKind
	Key  Key
}

// Quit returns a quit event.
func Quit() Event {
	return Event{Kind: EventQuit}
}

// KeyDown returns a key-down event for k.
func KeyDown(k Key) Event {
	return Event{Kind: EventKeyDown, Key: k}
}

// Terminates reports whether the event ends the run: a quit or an Escape press.
func (e Event) Terminates() bool {
	return e.Kind == EventQuit || (e.Kind == EventKeyDown && e.Key == KeyEscape)
}

func (e Event) String() string {
	switch e.Kind {
	case EventQuit:
		return "quit"
	case EventKeyDown:
		return fmt.Sprintf("key_down(%s)", e.Key)
	default:
		return fmt.Sprintf("Event(%d)", e.Kind)
	}
}

// Events is an EventSource backed by a fixed slice; it yields everything on the first poll.
type Events []Event

func (e *Events) PollEvents() []Event {
	out := *e
	*e = nil
	return out
}
