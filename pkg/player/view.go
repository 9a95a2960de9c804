package player

import "github.com/go-drift/videooverlay/pkg/graphics"

// View is everything the overlay draws for one state.
type View struct {
	PlayerSize graphics.Size
	Absolute   bool
	FullScreen bool

	// RetryPrompt replaces the whole overlay after a decode error.
	RetryPrompt bool

	Loader      bool
	LoaderColor graphics.Color

	// Poster is the thumbnail shown until the first frame, or "".
	Poster string

	// Controls is nil while the control surface is hidden.
	Controls *ControlsView
}

// ControlsView is the visible control surface.
type ControlsView struct {
	PlayPauseIcon  string
	MuteIcon       string
	ForwardIcon    string // "" when skip buttons are hidden
	BackwardIcon   string // "" when skip buttons are hidden
	FullscreenIcon string // "" when fullscreen is disabled

	SeekBar SeekBarView

	Elapsed   string
	Total     string
	TextStyle TextStyle
}

// SeekBarView is the slider state.
type SeekBarView struct {
	Fraction   float64
	Busy       bool
	ThumbSize  float64
	ThumbColor graphics.Color
}

// BuildView renders a state with the given configuration. It has no side
// effects.
func BuildView(s State, cfg Config) View {
	v := View{
		PlayerSize: s.PlayerSize,
		Absolute:   s.Absolute,
		FullScreen: s.FullScreen,
	}
	if s.Failed {
		v.RetryPrompt = true
		return v
	}

	v.Loader = s.Loading
	v.LoaderColor = cfg.LoaderColor
	if !s.Ready {
		v.Poster = cfg.Thumbnail
	}
	if !cfg.Controls || !s.ControlsVisible {
		return v
	}

	icons := cfg.Icons
	controls := &ControlsView{
		PlayPauseIcon: icons.Pause,
		MuteIcon:      icons.Audio,
		SeekBar: SeekBarView{
			Fraction:   s.SeekFraction,
			Busy:       s.SeekBarBusy,
			ThumbSize:  cfg.ThumbSize,
			ThumbColor: cfg.ThumbColor,
		},
		Elapsed:   FormatTime(s.Position()),
		Total:     FormatTime(s.Duration),
		TextStyle: cfg.TextStyle,
	}
	if s.Paused {
		controls.PlayPauseIcon = icons.Play
	}
	if s.Mute.Muted {
		controls.MuteIcon = icons.Mute
	}
	if cfg.ShowSkipButtons {
		controls.ForwardIcon = icons.Forward
		controls.BackwardIcon = icons.Backward
	}
	if cfg.FullscreenEnabled {
		controls.FullscreenIcon = icons.Fullscreen
	}
	v.Controls = controls
	return v
}
