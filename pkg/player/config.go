package player

import (
	"errors"
	"fmt"

	"github.com/go-drift/videooverlay/pkg/graphics"
	"github.com/go-drift/videooverlay/pkg/platform"
)

// ErrInvalidConfig is wrapped by every error returned from [Config.Validate].
var ErrInvalidConfig = errors.New("invalid player config")

// Icons names the assets drawn on the control surface. Values are icon names
// or asset paths resolved by the renderer.
type Icons struct {
	Play       string `yaml:"play" mapstructure:"play"`
	Pause      string `yaml:"pause" mapstructure:"pause"`
	Mute       string `yaml:"mute" mapstructure:"mute"`
	Audio      string `yaml:"audio" mapstructure:"audio"`
	Forward    string `yaml:"forward" mapstructure:"forward"`
	Backward   string `yaml:"backward" mapstructure:"backward"`
	Fullscreen string `yaml:"fullscreen" mapstructure:"fullscreen"`
}

// TextStyle styles the elapsed and total time labels.
type TextStyle struct {
	FontSize float64        `yaml:"fontSize" mapstructure:"fontSize"`
	Color    graphics.Color `yaml:"color" mapstructure:"color"`
}

// Config configures a player. Start from [DefaultConfig] and override fields.
type Config struct {
	Source platform.MediaSource `yaml:"source" mapstructure:"source"`
	Icons  Icons                `yaml:"icons" mapstructure:"icons"`

	// Controls enables the overlay control surface.
	Controls bool `yaml:"controls" mapstructure:"controls"`
	Autoplay bool `yaml:"autoplay" mapstructure:"autoplay"`

	// Height is the player height in portrait.
	Height float64 `yaml:"height" mapstructure:"height"`

	ThumbSize   float64        `yaml:"thumbSize" mapstructure:"thumbSize"`
	ThumbColor  graphics.Color `yaml:"thumbColor" mapstructure:"thumbColor"`
	LoaderColor graphics.Color `yaml:"loaderColor" mapstructure:"loaderColor"`

	FullscreenEnabled bool      `yaml:"fullscreenEnabled" mapstructure:"fullscreenEnabled"`
	TextStyle         TextStyle `yaml:"textStyle" mapstructure:"textStyle"`
	ShowSkipButtons   bool      `yaml:"showSkipButtons" mapstructure:"showSkipButtons"`

	// Thumbnail is the poster shown until the first frame is ready.
	Thumbnail string `yaml:"thumbnail" mapstructure:"thumbnail"`

	// HostBackground is the host container background restored in portrait.
	HostBackground graphics.Color `yaml:"hostBackground" mapstructure:"hostBackground"`

	// PlatformPaddingCompensation is the top padding restored on the host
	// container in portrait on Android, where the status bar height is
	// otherwise miscounted after leaving fullscreen.
	PlatformPaddingCompensation float64 `yaml:"platformPaddingCompensation" mapstructure:"platformPaddingCompensation"`
}

// DefaultConfig returns the configuration used when nothing is overridden.
func DefaultConfig() Config {
	return Config{
		Icons: Icons{
			Play:       "play",
			Pause:      "pause",
			Mute:       "mute",
			Audio:      "audio",
			Forward:    "forward",
			Backward:   "backward",
			Fullscreen: "fullscreen",
		},
		Controls:          false,
		Autoplay:          true,
		Height:            300,
		ThumbSize:         18,
		ThumbColor:        graphics.ColorWhite,
		LoaderColor:       graphics.ColorDodgerBlue,
		FullscreenEnabled: true,
		TextStyle: TextStyle{
			FontSize: 12,
			Color:    graphics.ColorWhite,
		},
		ShowSkipButtons:             true,
		HostBackground:              graphics.ColorTransparent,
		PlatformPaddingCompensation: 48,
	}
}

// Validate reports the first problem found in the configuration.
func (c Config) Validate() error {
	switch {
	case c.Source.URI == "":
		return fmt.Errorf("source uri is empty: %w", ErrInvalidConfig)
	case c.Height < 0:
		return fmt.Errorf("height %v is negative: %w", c.Height, ErrInvalidConfig)
	case c.ThumbSize < 0:
		return fmt.Errorf("thumb size %v is negative: %w", c.ThumbSize, ErrInvalidConfig)
	case c.PlatformPaddingCompensation < 0:
		return fmt.Errorf("padding compensation %v is negative: %w", c.PlatformPaddingCompensation, ErrInvalidConfig)
	}
	return nil
}
