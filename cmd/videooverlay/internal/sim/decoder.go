package sim

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/samber/lo"

	"github.com/go-drift/videooverlay/cmd/videooverlay/internal/config"
	"github.com/go-drift/videooverlay/pkg/platform"
)

// FailScheme marks sources that fail to open.
const FailScheme = "fail://"

// bufferScale shortens the decoder buffer thresholds so that buffering is
// visible without stalling the preview for seconds.
const bufferScale = 10

// ErrDisposed is returned by calls on a disposed decoder.
var ErrDisposed = errors.New("sim: decoder disposed")

type stage int

const (
	stageIdle stage = iota
	stageOpening
	stageBuffering
	stagePlaying
	stageEnded
	stageFailed
)

type emission func(platform.DecoderEvents)

// Decoder is a simulated video decoder. Events are delivered in order through
// platform.Dispatch.
type Decoder struct {
	cfg config.PreviewConfig

	mu         sync.Mutex
	events     platform.DecoderEvents
	src        platform.MediaSource
	buf        platform.BufferConfig
	stage      stage
	ready      bool
	paused     bool
	muted      bool
	volume     float64
	position   float64
	duration   float64
	played     time.Duration
	nextStall  time.Duration
	bufferLeft time.Duration
	failFlag   bool
	disposed   bool
}

func newDecoder(cfg config.PreviewConfig) *Decoder {
	return &Decoder{
		cfg:      cfg,
		paused:   true,
		volume:   1,
		duration: cfg.Duration.Seconds(),
	}
}

// Load opens the source. Sources using FailScheme are rejected.
func (d *Decoder) Load(src platform.MediaSource, buf platform.BufferConfig) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.disposed {
		return ErrDisposed
	}
	if strings.HasPrefix(src.URI, FailScheme) {
		return fmt.Errorf("sim: cannot open %s", src.URI)
	}
	d.src, d.buf = src, buf
	d.stage = stageOpening
	d.nextStall = d.cfg.StallEvery
	d.bufferLeft = time.Duration(buf.BufferForPlaybackMs) * time.Millisecond / bufferScale
	return nil
}

// Seek moves the playhead. Seeking while playing causes a short rebuffer.
func (d *Decoder) Seek(position float64) error {
	d.mu.Lock()
	if d.disposed {
		d.mu.Unlock()
		return ErrDisposed
	}
	d.position = lo.Clamp(position, 0, d.duration)
	var out []emission
	switch d.stage {
	case stagePlaying, stageEnded:
		d.stage = stageBuffering
		d.bufferLeft = time.Duration(d.buf.BufferForPlaybackAfterRebufferMs) * time.Millisecond / bufferScale / 4
		out = append(out, onBuffer(true), onProgress(d.position, d.duration))
	}
	events := d.events
	d.mu.Unlock()
	emit(events, out)
	return nil
}

// SetPaused pauses or resumes playback.
func (d *Decoder) SetPaused(paused bool) error {
	return d.set(func() { d.paused = paused })
}

// SetMuted mutes the audio track.
func (d *Decoder) SetMuted(muted bool) error {
	return d.set(func() { d.muted = muted })
}

// SetVolume sets the audio volume in [0, 1].
func (d *Decoder) SetVolume(volume float64) error {
	if volume < 0 || volume > 1 {
		return fmt.Errorf("sim: volume %v outside [0, 1]", volume)
	}
	return d.set(func() { d.volume = volume })
}

func (d *Decoder) set(fn func()) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.disposed {
		return ErrDisposed
	}
	fn()
	return nil
}

// SetEvents sets the receiver of decoder events.
func (d *Decoder) SetEvents(events platform.DecoderEvents) {
	d.mu.Lock()
	d.events = events
	d.mu.Unlock()
}

// Dispose releases the decoder. Later calls fail with ErrDisposed.
func (d *Decoder) Dispose() {
	d.mu.Lock()
	d.disposed = true
	d.events = nil
	d.mu.Unlock()
}

// Disposed reports whether Dispose was called.
func (d *Decoder) Disposed() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.disposed
}

// Paused reports the paused property last set by the player.
func (d *Decoder) Paused() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.paused
}

// Position returns the playhead in seconds.
func (d *Decoder) Position() float64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.position
}

// Audio returns the muted and volume properties last set by the player.
func (d *Decoder) Audio() (muted bool, volume float64) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.muted, d.volume
}

func (d *Decoder) failNext() {
	d.mu.Lock()
	d.failFlag = true
	d.mu.Unlock()
}

func (d *Decoder) step(dt time.Duration) {
	d.mu.Lock()
	var out []emission
	switch {
	case d.disposed, d.stage == stageIdle, d.stage == stageFailed:
	case d.failFlag:
		out = append(out, d.fail(platform.ErrCodeDecoderError, "injected failure"))
	default:
		out = d.advance(dt)
	}
	events := d.events
	d.mu.Unlock()
	emit(events, out)
}

func (d *Decoder) advance(dt time.Duration) []emission {
	switch d.stage {
	case stageOpening:
		d.stage = stageBuffering
		return []emission{onLoad(d.duration), onBuffer(true)}

	case stageBuffering:
		d.bufferLeft -= dt
		if d.bufferLeft > 0 {
			return nil
		}
		d.stage = stagePlaying
		out := []emission{onBuffer(false)}
		if !d.ready {
			d.ready = true
			out = append(out, onReadyForDisplay)
		}
		return out

	case stagePlaying:
		if d.paused {
			return nil
		}
		d.position = math.Min(d.position+dt.Seconds(), d.duration)
		d.played += dt
		out := []emission{onProgress(d.position, d.duration)}
		switch {
		case d.position >= d.duration:
			d.stage = stageEnded
			out = append(out, onEnd)
		case d.cfg.FailAfter > 0 && d.played >= d.cfg.FailAfter:
			out = append(out, d.fail(platform.ErrCodeSourceError, "connection reset"))
		case d.cfg.StallEvery > 0 && d.played >= d.nextStall:
			d.nextStall += d.cfg.StallEvery
			d.bufferLeft = d.cfg.StallFor
			d.stage = stageBuffering
			out = append(out, onBuffer(true))
		}
		return out
	}
	return nil
}

func (d *Decoder) fail(code, message string) emission {
	d.failFlag = false
	d.stage = stageFailed
	err := &platform.DecodeError{Code: code, Message: message}
	return func(e platform.DecoderEvents) { e.OnError(err) }
}

func emit(events platform.DecoderEvents, out []emission) {
	if events == nil || len(out) == 0 {
		return
	}
	platform.Dispatch(func() {
		for _, fn := range out {
			fn(events)
		}
	})
}

func onLoad(duration float64) emission {
	return func(e platform.DecoderEvents) { e.OnLoad(duration) }
}

func onBuffer(buffering bool) emission {
	return func(e platform.DecoderEvents) { e.OnBuffer(buffering) }
}

func onProgress(current, seekable float64) emission {
	return func(e platform.DecoderEvents) { e.OnProgress(current, seekable) }
}

func onReadyForDisplay(e platform.DecoderEvents) { e.OnReadyForDisplay() }

func onEnd(e platform.DecoderEvents) { e.OnEnd() }
