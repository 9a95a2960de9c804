package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-drift/videooverlay/pkg/graphics"
	"github.com/go-drift/videooverlay/pkg/platform"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "videooverlay.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())
	cfg, v, err := Load("")
	require.NoError(t, err)
	require.NotNil(t, v)

	def := Default()
	assert.Equal(t, def.Log, cfg.Log)
	assert.Equal(t, def.Preview, cfg.Preview)
	assert.Equal(t, DefaultSource, cfg.Player.Source.URI)
	assert.Equal(t, def.Player.Icons, cfg.Player.Icons)
	assert.True(t, cfg.Player.Controls)
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
requires: v0.1.0
log:
  level: debug
player:
  source:
    uri: https://example.com/clip.mp4
    headers:
      Authorization: Bearer abc
  autoplay: false
  height: 240
  thumbColor: "#FF0000"
  loaderColor: "#80FFFFFF"
  icons:
    play: assets/play.png
preview:
  duration: 90s
  notch: true
  platform: ios
`)
	cfg, _, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "v0.1.0", cfg.Requires)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "https://example.com/clip.mp4", cfg.Player.Source.URI)
	assert.Equal(t, "Bearer abc", cfg.Player.Source.Headers["authorization"])
	assert.False(t, cfg.Player.Autoplay)
	assert.Equal(t, 240.0, cfg.Player.Height)
	assert.Equal(t, graphics.RGB(0xFF, 0, 0), cfg.Player.ThumbColor)
	assert.Equal(t, graphics.Color(0x80FFFFFF), cfg.Player.LoaderColor)
	assert.Equal(t, "assets/play.png", cfg.Player.Icons.Play)
	assert.Equal(t, "pause", cfg.Player.Icons.Pause, "unset icons keep defaults")
	assert.Equal(t, 90*time.Second, cfg.Preview.Duration)
	assert.True(t, cfg.Preview.Notch)
	assert.Equal(t, platform.FamilyIOS, cfg.Preview.Platform)
	assert.Equal(t, 18.0, cfg.Player.ThumbSize)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("VIDEOOVERLAY_LOG_LEVEL", "warn")
	t.Setenv("VIDEOOVERLAY_PLAYER_SOURCE_URI", "https://example.com/env.mp4")
	cfg, _, err := Load(writeConfig(t, "log:\n  level: debug\n"))
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "https://example.com/env.mp4", cfg.Player.Source.URI)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"bad color", "player:\n  thumbColor: purple\n"},
		{"negative height", "player:\n  height: -1\n"},
		{"bad requires", "requires: latest\n"},
		{"bad volume", "preview:\n  volume: 2\n"},
		{"bad yaml", "player: [\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := Load(writeConfig(t, tt.body))
			assert.Error(t, err)
		})
	}
}

func TestCheckVersion(t *testing.T) {
	tests := []struct {
		requires string
		version  string
		ok       bool
	}{
		{"", "0.1.0", true},
		{"v0.1.0", "0.1.0", true},
		{"v0.1.0", "v0.2.3", true},
		{"v0.2.0", "0.1.9", false},
		{"v1.0.0", "0.9.0-dev", true},
		{"v1.0.0", "unknown", true},
	}
	for _, tt := range tests {
		err := Config{Requires: tt.requires}.CheckVersion(tt.version)
		if tt.ok {
			assert.NoError(t, err, "requires %q version %q", tt.requires, tt.version)
		} else {
			assert.Error(t, err, "requires %q version %q", tt.requires, tt.version)
		}
	}
}
