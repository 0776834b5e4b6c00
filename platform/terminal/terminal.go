// Package terminal renders the engine into a tcell screen. Pixel coordinates
// are mapped onto character cells.
package terminal

import (
	"fmt"
	"image"
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/plus3/spinframe/platform"
)

// Cell geometry used to map pixels to terminal cells.
const (
	CellWidth  = 8
	CellHeight = 16
)

// rotationGlyphs point in the rotation's direction, one per 45° octant,
// starting at 0° (up) and turning clockwise.
var rotationGlyphs = [8]rune{'↑', '↗', '→', '↘', '↓', '↙', '←', '↖'}

// Screen implements platform.WindowProvider, platform.Surface and
// platform.EventSource on a tcell screen.
type Screen struct {
	screen  tcell.Screen
	events  chan tcell.Event
	done    chan struct{}
	stopped chan struct{}
	closed  bool
	title   string
}

// New wraps screen, which must not be initialized yet. A nil screen opens
// the process terminal on CreateWindow.
func New(screen tcell.Screen) *Screen {
	return &Screen{
		screen:  screen,
		events:  make(chan tcell.Event, 64),
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
	}
}

// CreateWindow initializes the terminal. Width and height are ignored: the
// drawable area is the terminal size.
func (s *Screen) CreateWindow(title string, _, _ int) (platform.Surface, error) {
	if s.screen == nil {
		screen, err := tcell.NewScreen()
		if err != nil {
			return nil, fmt.Errorf("new screen: %w", err)
		}
		s.screen = screen
	}
	if err := s.screen.Init(); err != nil {
		return nil, fmt.Errorf("init screen: %w", err)
	}
	s.title = title

	go func() {
		defer close(s.stopped)
		for {
			ev := s.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case s.events <- ev:
			case <-s.done:
				return
			}
		}
	}()

	return s, nil
}

// Close stops the event goroutine and restores the terminal. It is safe to
// call more than once.
func (s *Screen) Close() {
	if s.closed {
		return
	}
	s.closed = true
	close(s.done)
	if s.screen != nil {
		s.screen.Fini()
	}
}

func (s *Screen) Clear() {
	s.screen.Clear()
	s.drawText(0, 0, s.title, tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true))
}

// DrawTexturedRect fills the cells covered by rect with the gradient texture
// colors and marks the center cell with an arrow for the rotation.
func (s *Screen) DrawTexturedRect(rect image.Rectangle, rotation float64) error {
	col0, row0 := rect.Min.X/CellWidth, rect.Min.Y/CellHeight+1
	cols := max(1, rect.Dx()/CellWidth)
	rows := max(1, rect.Dy()/CellHeight)

	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			red := int32(c * (platform.TextureSize - 1) / max(1, cols-1))
			green := int32(r * (platform.TextureSize - 1) / max(1, rows-1))
			style := tcell.StyleDefault.Foreground(tcell.NewRGBColor(red, green, 0)).Background(tcell.ColorBlack)
			s.screen.SetContent(col0+c, row0+r, '▓', nil, style)
		}
	}

	center := tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlack)
	s.screen.SetContent(col0+cols/2, row0+rows/2, RotationGlyph(rotation), nil, center)
	s.drawText(col0, row0+rows, fmt.Sprintf("%.0f°", rotation), tcell.StyleDefault.Foreground(tcell.ColorGray))
	return nil
}

func (s *Screen) Present() error {
	s.screen.Show()
	return nil
}

// PollEvents drains the events received since the last call without blocking.
func (s *Screen) PollEvents() []platform.Event {
	var out []platform.Event
	for {
		select {
		case ev := <-s.events:
			switch ev := ev.(type) {
			case *tcell.EventResize:
				s.screen.Sync()
			case *tcell.EventKey:
				switch ev.Key() {
				case tcell.KeyEscape:
					out = append(out, platform.KeyDown(platform.KeyEscape))
				case tcell.KeyEnter:
					out = append(out, platform.KeyDown(platform.KeyEnter))
				case tcell.KeyCtrlC:
					out = append(out, platform.Quit())
				case tcell.KeyRune:
					if ev.Rune() == ' ' {
						out = append(out, platform.KeyDown(platform.KeySpace))
					} else {
						out = append(out, platform.KeyDown(platform.KeyUnknown))
					}
				default:
					out = append(out, platform.KeyDown(platform.KeyUnknown))
				}
			}
		default:
			return out
		}
	}
}

// RotationGlyph returns the arrow closest to rotation degrees.
func RotationGlyph(rotation float64) rune {
	deg := math.Mod(rotation, 360)
	if deg < 0 {
		deg += 360
	}
	octant := int(math.Round(deg/45)) % len(rotationGlyphs)
	return rotationGlyphs[octant]
}

func (s *Screen) drawText(x, y int, text string, style tcell.Style) {
	col := x
	for _, ch := range text {
		s.screen.SetContent(col, y, ch, nil, style)
		col += max(1, runewidth.RuneWidth(ch))
	}
}
