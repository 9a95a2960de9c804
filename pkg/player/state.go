package player

import (
	"github.com/samber/mo"

	"github.com/go-drift/videooverlay/pkg/graphics"
)

// Playback is the transport state shown to the user.
type Playback int

const (
	PlaybackLoading Playback = iota
	PlaybackPlaying
	PlaybackPaused
	PlaybackEnded
	PlaybackRetrying
)

func (p Playback) String() string {
	switch p {
	case PlaybackLoading:
		return "loading"
	case PlaybackPlaying:
		return "playing"
	case PlaybackPaused:
		return "paused"
	case PlaybackEnded:
		return "ended"
	case PlaybackRetrying:
		return "retrying"
	default:
		return "unknown"
	}
}

// Mute is the local audio state, kept apart from the OS volume.
type Mute struct {
	Muted  bool
	Volume mo.Option[float64]
}

// Effective is the output level handed to the decoder.
func (m Mute) Effective() float64 {
	if m.Muted {
		return 0
	}
	return m.Volume.OrElse(0)
}

// State is the complete player state. It is a value: the controller hands
// out copies.
type State struct {
	Paused       bool
	Loading      bool
	Ready        bool
	Failed       bool
	SeekFraction float64
	Duration     float64
	SeekBarBusy  bool
	Buffering    bool

	ControlsVisible bool
	FullScreen      bool
	Absolute        bool

	Mute         Mute
	SystemVolume mo.Option[float64]

	Screen     graphics.Size
	PlayerSize graphics.Size
}

// Playback derives the single active transport state from the flags.
func (s State) Playback() Playback {
	switch {
	case s.Failed:
		return PlaybackRetrying
	case s.Loading:
		return PlaybackLoading
	case s.Paused && s.SeekFraction == 1:
		return PlaybackEnded
	case s.Paused:
		return PlaybackPaused
	default:
		return PlaybackPlaying
	}
}

// Position is the playhead in seconds.
func (s State) Position() float64 {
	return s.SeekFraction * s.Duration
}

func initialState(cfg Config) State {
	return State{
		Paused:  !cfg.Autoplay,
		Loading: true,
	}
}
