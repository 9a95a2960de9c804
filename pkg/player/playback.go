package player

import (
	"math"

	"github.com/samber/lo"

	overlayerrors "github.com/go-drift/videooverlay/pkg/errors"
	"github.com/go-drift/videooverlay/pkg/log"
	"github.com/go-drift/videooverlay/pkg/platform"
)

// decoderEvents forwards callbacks from one decoder. Events from a decoder
// that has since been replaced by a retry are dropped.
type decoderEvents struct {
	c *Controller
	d Decoder
}

func (e decoderEvents) current() bool {
	return e.c.alive() && e.c.decoder == e.d
}

func (e decoderEvents) OnLoad(duration float64) {
	if e.current() {
		e.c.MediaLoaded(duration)
	}
}

func (e decoderEvents) OnProgress(currentTime, seekableDuration float64) {
	if e.current() {
		e.c.Progress(currentTime, seekableDuration)
	}
}

func (e decoderEvents) OnBuffer(isBuffering bool) {
	if e.current() {
		e.c.BufferingChanged(isBuffering)
	}
}

func (e decoderEvents) OnReadyForDisplay() {
	if e.current() {
		e.c.FirstFrameReady()
	}
}

func (e decoderEvents) OnEnd() {
	if e.current() {
		e.c.Ended()
	}
}

func (e decoderEvents) OnError(err *platform.DecodeError) {
	if e.current() {
		e.c.DecodeError(err)
	}
}

// mountDecoder creates a decoder, loads the configured source and pushes the
// current props.
func (c *Controller) mountDecoder() {
	d := c.svc.NewDecoder()
	c.decoder = d
	c.durationSet = false
	d.SetEvents(decoderEvents{c: c, d: d})
	if err := d.Load(c.cfg.Source, platform.DefaultBufferConfig); err != nil {
		c.DecodeError(err)
		return
	}
	c.syncDecoder(c.state, c.state, true)
}

// MediaLoaded records the duration reported by the decoder, once per decoder
// mount, and rewinds the decoder to 0. Play/pause intent is unchanged.
func (c *Controller) MediaLoaded(duration float64) {
	if !c.alive() {
		return
	}
	if !c.durationSet {
		c.durationSet = true
		if duration < 0 || math.IsNaN(duration) || math.IsInf(duration, 0) {
			duration = 0
		}
		c.update(func(s *State) { s.Duration = duration })
		c.logger.Debug().Float64(log.FieldDuration, duration).Msg("media loaded")
	}
	c.seek(0)
}

// FirstFrameReady clears the loader, reveals the controls and arms the
// auto-hide timer.
func (c *Controller) FirstFrameReady() {
	if !c.alive() {
		return
	}
	c.update(func(s *State) {
		s.Ready = true
		s.Loading = false
		s.ControlsVisible = true
	})
	c.armHide()
}

// Progress moves the seek bar unless the user is dragging it. Any progress
// clears the loader.
func (c *Controller) Progress(currentTime, seekableDuration float64) {
	if !c.alive() {
		return
	}
	c.update(func(s *State) {
		if !s.SeekBarBusy {
			s.SeekFraction = fraction(currentTime, seekableDuration)
		}
		s.Loading = false
	})
}

// BufferingChanged shows the loader when buffering starts while it is
// hidden, and hides it when buffering ends after the first frame. Other
// combinations leave the loader alone to avoid flicker.
func (c *Controller) BufferingChanged(buffering bool) {
	if !c.alive() {
		return
	}
	c.update(func(s *State) {
		s.Buffering = buffering
		if (buffering && !s.Loading) || (!buffering && s.Loading && s.Ready) {
			s.Loading = buffering
		}
	})
}

// Ended parks the playhead at the end, paused.
func (c *Controller) Ended() {
	if !c.alive() {
		return
	}
	c.update(func(s *State) {
		s.SeekFraction = 1
		s.Paused = true
	})
}

// TogglePlayPause flips play/pause. At the end it rewinds to 0 first and
// resumes after ResetDelay.
func (c *Controller) TogglePlayPause() {
	if !c.alive() {
		return
	}
	if c.state.SeekFraction == 1 {
		c.update(func(s *State) { s.SeekFraction = 0 })
		c.seek(0)
		c.schedule(&c.guards.reset, ResetDelay, func() {
			c.update(func(s *State) { s.Paused = false })
		})
		return
	}
	c.stopTimer(&c.guards.reset)
	c.update(func(s *State) { s.Paused = !s.Paused })
}

// SeekForward skips SkipInterval ahead, stopping at the end.
func (c *Controller) SeekForward() {
	c.skip(SkipInterval.Seconds())
}

// SeekBackward skips SkipInterval back, stopping at 0.
func (c *Controller) SeekBackward() {
	c.skip(-SkipInterval.Seconds())
}

func (c *Controller) skip(delta float64) {
	if !c.alive() {
		return
	}
	duration := c.state.Duration
	target := lo.Clamp(c.state.Position()+delta, 0, duration)
	c.seek(target)
	c.update(func(s *State) { s.SeekFraction = fraction(target, duration) })
}

// SeekBarChanged seeks to the dragged fraction and moves the bar with it.
func (c *Controller) SeekBarChanged(f float64) {
	if !c.alive() {
		return
	}
	if math.IsNaN(f) {
		f = 0
	}
	duration := c.state.Duration
	target := lo.Clamp(f, 0, 1) * duration
	c.seek(target)
	c.update(func(s *State) { s.SeekFraction = fraction(target, duration) })
}

// SeekBarSlidingStarted marks the bar busy and holds the controls open.
func (c *Controller) SeekBarSlidingStarted() {
	if !c.alive() {
		return
	}
	c.update(func(s *State) { s.SeekBarBusy = true })
	c.ControlsTouchStarted()
}

// SeekBarSlidingEnded releases the bar and re-arms the auto-hide timer.
func (c *Controller) SeekBarSlidingEnded() {
	if !c.alive() {
		return
	}
	c.update(func(s *State) { s.SeekBarBusy = false })
	c.ControlsTouchEnded()
}

// DecodeError drops into the retry prompt whatever the current state.
func (c *Controller) DecodeError(err error) {
	if !c.alive() {
		return
	}
	c.stopTimer(&c.guards.reset)
	c.update(func(s *State) { s.Failed = true })
	overlayerrors.Report(&overlayerrors.OverlayError{
		Op:   "player.decode",
		Kind: overlayerrors.KindDecode,
		Err:  err,
	})
}

// Retry disposes the failed decoder and mounts a fresh one with the original
// source. Playback restarts from the beginning.
func (c *Controller) Retry() error {
	if !c.alive() {
		return ErrNotMounted
	}
	c.stopTimer(&c.guards.reset)
	if c.decoder != nil {
		c.decoder.Dispose()
		c.decoder = nil
	}
	c.update(func(s *State) {
		s.Failed = false
		s.Loading = true
		s.Ready = false
		s.Buffering = false
		s.SeekFraction = 0
		s.Duration = 0
		s.Paused = !c.cfg.Autoplay
	})
	c.logger.Info().Str(log.FieldSource, c.cfg.Source.URI).Msg("retrying playback")
	c.mountDecoder()
	return nil
}

func (c *Controller) seek(position float64) {
	if c.decoder == nil {
		return
	}
	c.decoderCall("Seek", c.decoder.Seek(position))
}

// fraction is position/duration clamped to [0, 1], or 0 when the duration is
// not known.
func fraction(position, duration float64) float64 {
	if duration <= 0 || math.IsNaN(duration) || math.IsNaN(position) {
		return 0
	}
	return lo.Clamp(position/duration, 0, 1)
}
