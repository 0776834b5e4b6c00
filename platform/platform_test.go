package platform_test

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/plus3/spinframe/platform"
)

func TestEventTerminates(t *testing.T) {
	tests := []struct {
		event platform.Event
		want  bool
		str   string
	}{
		{platform.Quit(), true, "quit"},
		{platform.KeyDown(platform.KeyEscape), true, "key_down(Escape)"},
		{platform.KeyDown(platform.KeyEnter), false, "key_down(Enter)"},
		{platform.KeyDown(platform.KeySpace), false, "key_down(Space)"},
		{platform.KeyDown(platform.KeyUnknown), false, "key_down(Unknown)"},
	}
	for _, tt := range tests {
		t.Run(tt.str, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.event.Terminates())
			assert.Equal(t, tt.str, tt.event.String())
		})
	}
}

func TestEventsDrainOnPoll(t *testing.T) {
	events := platform.Events{platform.KeyDown(platform.KeyEnter), platform.Quit()}
	assert.Len(t, events.PollEvents(), 2)
	assert.Empty(t, events.PollEvents())
}

func TestGradientTexture(t *testing.T) {
	img := platform.GradientTexture(platform.TextureSize)
	assert.Equal(t, platform.TextureSize, img.Bounds().Dx())
	assert.Equal(t, platform.TextureSize, img.Bounds().Dy())

	assert.Equal(t, color.RGBA{R: 0, G: 0, B: 0, A: 255}, img.RGBAAt(0, 0))
	assert.Equal(t, color.RGBA{R: 255, G: 0, B: 0, A: 255}, img.RGBAAt(255, 0))
	assert.Equal(t, color.RGBA{R: 0, G: 255, B: 0, A: 255}, img.RGBAAt(0, 255))
	assert.Equal(t, color.RGBA{R: 10, G: 20, B: 0, A: 255}, img.RGBAAt(10, 20))
}
