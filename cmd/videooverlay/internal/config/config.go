// Package config loads the videooverlay configuration file.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
	"golang.org/x/mod/semver"

	"github.com/go-drift/videooverlay/pkg/platform"
	"github.com/go-drift/videooverlay/pkg/player"
)

// EnvPrefix prefixes environment overrides, e.g. VIDEOOVERLAY_LOG_LEVEL.
const EnvPrefix = "VIDEOOVERLAY"

// MinimumVersion is the oldest CLI able to read files written by this one.
const MinimumVersion = "0.1.0"

// DefaultSource is played when no source is configured.
const DefaultSource = "sim://big-buck-bunny.mp4"

// Config represents the optional videooverlay.yaml configuration.
type Config struct {
	// Requires is the minimum CLI version able to read this file.
	Requires string        `mapstructure:"requires" yaml:"requires,omitempty"`
	Log      LogConfig     `mapstructure:"log" yaml:"log"`
	Player   player.Config `mapstructure:"player" yaml:"player"`
	Preview  PreviewConfig `mapstructure:"preview" yaml:"preview"`
}

// LogConfig contains logger settings.
type LogConfig struct {
	Level      string `mapstructure:"level" yaml:"level"`
	File       string `mapstructure:"file" yaml:"file,omitempty"`
	MaxSizeMB  int    `mapstructure:"maxSizeMB" yaml:"maxSizeMB,omitempty"`
	MaxBackups int    `mapstructure:"maxBackups" yaml:"maxBackups,omitempty"`
	MaxAgeDays int    `mapstructure:"maxAgeDays" yaml:"maxAgeDays,omitempty"`
}

// PreviewConfig describes the simulated device and media.
type PreviewConfig struct {
	Duration     time.Duration   `mapstructure:"duration" yaml:"duration"`
	Tick         time.Duration   `mapstructure:"tick" yaml:"tick"`
	Width        float64         `mapstructure:"width" yaml:"width"`
	Height       float64         `mapstructure:"height" yaml:"height"`
	Notch        bool            `mapstructure:"notch" yaml:"notch"`
	Platform     platform.Family `mapstructure:"platform" yaml:"platform"`
	Volume       float64         `mapstructure:"volume" yaml:"volume"`
	VolumeDelay  time.Duration   `mapstructure:"volumeDelay" yaml:"volumeDelay"`
	FailAfter    time.Duration   `mapstructure:"failAfter" yaml:"failAfter,omitempty"`
	StallEvery   time.Duration   `mapstructure:"stallEvery" yaml:"stallEvery,omitempty"`
	StallFor     time.Duration   `mapstructure:"stallFor" yaml:"stallFor,omitempty"`
	RotateOnLock bool            `mapstructure:"rotateOnLock" yaml:"rotateOnLock"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	p := player.DefaultConfig()
	p.Source = platform.MediaSource{URI: DefaultSource}
	p.Controls = true
	return Config{
		Log: LogConfig{Level: "info"},
		Player: p,
		Preview: PreviewConfig{
			Duration:     3*time.Minute + 5*time.Second,
			Tick:         250 * time.Millisecond,
			Width:        400,
			Height:       800,
			Platform:     platform.FamilyAndroid,
			Volume:       0.6,
			VolumeDelay:  150 * time.Millisecond,
			RotateOnLock: true,
		},
	}
}

// New returns a viper instance with defaults and environment overrides set
// up. path may be empty to search the usual locations.
func New(path string) *viper.Viper {
	v := viper.New()
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("videooverlay")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/videooverlay")
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	def := Default()
	v.SetDefault("log.level", def.Log.Level)
	v.SetDefault("log.file", def.Log.File)
	v.SetDefault("player.source.uri", def.Player.Source.URI)
	v.SetDefault("player.controls", def.Player.Controls)
	v.SetDefault("player.autoplay", def.Player.Autoplay)
	v.SetDefault("player.fullscreenEnabled", def.Player.FullscreenEnabled)
	v.SetDefault("preview.notch", def.Preview.Notch)
	v.SetDefault("preview.platform", string(def.Preview.Platform))
	return v
}

// Load reads the configuration file, if any, and decodes it over Default().
// A missing file is not an error.
func Load(path string) (Config, *viper.Viper, error) {
	v := New(path)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, nil, fmt.Errorf("failed to read config: %w", err)
		}
	}
	cfg, err := Decode(v)
	if err != nil {
		return Config{}, nil, err
	}
	return cfg, v, nil
}

// Decode unmarshals the current viper state over Default() and validates it.
func Decode(v *viper.Viper) (Config, error) {
	cfg := Default()
	hook := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.TextUnmarshallerHookFunc(),
		mapstructure.StringToTimeDurationHookFunc(),
	))
	if err := v.Unmarshal(&cfg, hook); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the player settings and the simulated device.
func (c Config) Validate() error {
	if err := c.Player.Validate(); err != nil {
		return fmt.Errorf("player: %w", err)
	}
	if c.Requires != "" && !semver.IsValid(c.Requires) {
		return fmt.Errorf("requires: %q is not a semantic version", c.Requires)
	}
	p := c.Preview
	switch {
	case p.Duration <= 0:
		return fmt.Errorf("preview: duration must be positive")
	case p.Tick <= 0:
		return fmt.Errorf("preview: tick must be positive")
	case p.Width <= 0 || p.Height <= 0:
		return fmt.Errorf("preview: window %vx%v is empty", p.Width, p.Height)
	case p.Volume < 0 || p.Volume > 1:
		return fmt.Errorf("preview: volume %v outside [0, 1]", p.Volume)
	}
	return nil
}

// CheckVersion fails when the file requires a newer CLI than version.
// Prerelease and unversioned builds are always accepted.
func (c Config) CheckVersion(version string) error {
	if c.Requires == "" {
		return nil
	}
	v := canonical(version)
	if !semver.IsValid(v) || semver.Prerelease(v) != "" {
		return nil
	}
	if semver.Compare(v, canonical(c.Requires)) < 0 {
		return fmt.Errorf("config requires videooverlay %s or newer, this is %s", c.Requires, v)
	}
	return nil
}

func canonical(version string) string {
	if !strings.HasPrefix(version, "v") {
		version = "v" + version
	}
	return semver.Canonical(version)
}
