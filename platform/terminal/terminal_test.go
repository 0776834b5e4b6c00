package terminal_test

import (
	"image"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/spinframe/platform"
	"github.com/plus3/spinframe/platform/terminal"
)

func newSimScreen(t *testing.T) (*terminal.Screen, tcell.SimulationScreen) {
	t.Helper()
	sim := tcell.NewSimulationScreen("")
	screen := terminal.New(sim)
	_, err := screen.CreateWindow("spin", 800, 600)
	require.NoError(t, err)
	sim.SetSize(80, 24)
	t.Cleanup(screen.Close)
	return screen, sim
}

func TestRotationGlyph(t *testing.T) {
	tests := []struct {
		rotation float64
		want     rune
	}{
		{0, '↑'},
		{3, '↑'},
		{45, '↗'},
		{90, '→'},
		{180, '↓'},
		{270, '←'},
		{350, '↑'},
		{360, '↑'},
		{-90, '←'},
		{725, '↑'},
	}
	for _, tt := range tests {
		assert.Equal(t, string(tt.want), string(terminal.RotationGlyph(tt.rotation)), "rotation %v", tt.rotation)
	}
}

func TestScreenDraw(t *testing.T) {
	screen, sim := newSimScreen(t)

	screen.Clear()
	require.NoError(t, screen.DrawTexturedRect(image.Rect(0, 0, 100, 100), 90))
	require.NoError(t, screen.Present())

	title, _, _, _ := sim.GetContent(0, 0)
	assert.Equal(t, 's', title)

	// 100px square maps to 12x6 cells below the title row
	fill, _, _, _ := sim.GetContent(0, 1)
	assert.Equal(t, '▓', fill)
	fill, _, _, _ = sim.GetContent(11, 6)
	assert.Equal(t, '▓', fill)
	outside, _, _, _ := sim.GetContent(12, 1)
	assert.NotEqual(t, '▓', outside)

	glyph, _, _, _ := sim.GetContent(6, 4)
	assert.Equal(t, '→', glyph)

	label, _, _, _ := sim.GetContent(0, 7)
	assert.Equal(t, '9', label)
}

func TestScreenPollEvents(t *testing.T) {
	screen, sim := newSimScreen(t)

	assert.Empty(t, screen.PollEvents())

	sim.InjectKey(tcell.KeyEnter, 0, tcell.ModNone)
	sim.InjectKey(tcell.KeyRune, ' ', tcell.ModNone)
	sim.InjectKey(tcell.KeyEscape, 0, tcell.ModNone)

	var events []platform.Event
	assert.Eventually(t, func() bool {
		events = append(events, screen.PollEvents()...)
		return len(events) >= 3
	}, time.Second, 5*time.Millisecond)

	assert.Equal(t, []platform.Event{
		platform.KeyDown(platform.KeyEnter),
		platform.KeyDown(platform.KeySpace),
		platform.KeyDown(platform.KeyEscape),
	}, events)
	assert.True(t, events[2].Terminates())
}
