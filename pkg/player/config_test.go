package player_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/go-drift/videooverlay/pkg/graphics"
	"github.com/go-drift/videooverlay/pkg/player"
)

func TestDefaultConfig(t *testing.T) {
	cfg := player.DefaultConfig()

	assert.False(t, cfg.Controls)
	assert.True(t, cfg.Autoplay)
	assert.Equal(t, 300.0, cfg.Height)
	assert.Equal(t, 18.0, cfg.ThumbSize)
	assert.Equal(t, graphics.ColorWhite, cfg.ThumbColor)
	assert.Equal(t, graphics.ColorDodgerBlue, cfg.LoaderColor)
	assert.True(t, cfg.FullscreenEnabled)
	assert.True(t, cfg.ShowSkipButtons)
	assert.Equal(t, 12.0, cfg.TextStyle.FontSize)
	assert.Equal(t, 48.0, cfg.PlatformPaddingCompensation)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*player.Config)
		ok     bool
	}{
		{"valid", func(*player.Config) {}, true},
		{"zero height", func(c *player.Config) { c.Height = 0 }, true},
		{"empty source", func(c *player.Config) { c.Source.URI = "" }, false},
		{"negative height", func(c *player.Config) { c.Height = -1 }, false},
		{"negative thumb", func(c *player.Config) { c.ThumbSize = -2 }, false},
		{"negative compensation", func(c *player.Config) { c.PlatformPaddingCompensation = -48 }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			tt.modify(&cfg)
			err := cfg.Validate()
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, player.ErrInvalidConfig)
			}
		})
	}
}
