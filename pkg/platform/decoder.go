package platform

import (
	"fmt"
	"sync"

	"github.com/go-drift/videooverlay/pkg/errors"
)

// VideoDecoder is the native video decode/render surface (ExoPlayer on
// Android, AVPlayer on iOS). It accepts commands from the player and reports
// load, progress, buffering, first-frame, end and error events to the
// [DecoderEvents] set with [VideoDecoder.SetEvents].
//
// Create one decoder per mount with [NewVideoDecoder] and release it with
// [VideoDecoder.Dispose]. A retry after a decode error disposes the old
// decoder and creates a fresh one.
//
// Commands are safe for concurrent use. Events are delivered on the UI thread
// via [Dispatch].
type VideoDecoder struct {
	mu       sync.RWMutex
	viewID   int64         // guarded by mu
	events   DecoderEvents // guarded by mu
	disposed bool          // guarded by mu
}

// NewVideoDecoder creates a native decoder surface. Creation failures are
// reported and leave a decoder whose commands return ErrDisposed.
func NewVideoDecoder() *VideoDecoder {
	d := &VideoDecoder{}
	id := decoders.add(d)
	if _, err := decoders.channel.Invoke("create", map[string]any{"viewId": id}); err != nil {
		decoders.remove(id)
		d.disposed = true
		errors.Report(&errors.OverlayError{
			Op:      "platform.NewVideoDecoder",
			Kind:    errors.KindPlatform,
			Channel: decoderChannelName,
			Err:     fmt.Errorf("failed to create decoder view: %w", err),
		})
		return d
	}
	d.viewID = id
	return d
}

// ViewID returns the native view ID, or 0 once disposed.
func (d *VideoDecoder) ViewID() int64 {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.disposed {
		return 0
	}
	return d.viewID
}

// SetEvents sets the receiver of decoder callbacks. Set it before Load so no
// events are missed.
func (d *VideoDecoder) SetEvents(events DecoderEvents) {
	d.mu.Lock()
	d.events = events
	d.mu.Unlock()
}

// Load hands the source and buffering policy to the native decoder.
func (d *VideoDecoder) Load(src MediaSource, buf BufferConfig) error {
	return d.invoke("load", map[string]any{
		"source": src,
		"buffer": buf,
	})
}

// Seek moves the playhead to an absolute position in seconds.
func (d *VideoDecoder) Seek(position float64) error {
	return d.invoke("seek", map[string]any{"position": position})
}

// SetPaused sets the paused prop.
func (d *VideoDecoder) SetPaused(paused bool) error {
	return d.invoke("setPaused", map[string]any{"paused": paused})
}

// SetMuted sets the muted prop.
func (d *VideoDecoder) SetMuted(muted bool) error {
	return d.invoke("setMuted", map[string]any{"muted": muted})
}

// SetVolume sets the output volume (0.0 to 1.0).
func (d *VideoDecoder) SetVolume(volume float64) error {
	return d.invoke("setVolume", map[string]any{"volume": volume})
}

// Dispose releases the native surface. It is idempotent; events arriving
// afterwards are dropped.
func (d *VideoDecoder) Dispose() {
	d.mu.Lock()
	if d.disposed {
		d.mu.Unlock()
		return
	}
	d.disposed = true
	id := d.viewID
	d.events = nil
	d.mu.Unlock()

	decoders.remove(id)
	invokeAndReport(decoders.channel, "platform.VideoDecoder.Dispose", "dispose", map[string]any{"viewId": id})
}

func (d *VideoDecoder) invoke(method string, args map[string]any) error {
	d.mu.RLock()
	id, disposed := d.viewID, d.disposed
	d.mu.RUnlock()
	if disposed {
		return ErrDisposed
	}
	args["viewId"] = id
	_, err := decoders.channel.Invoke(method, args)
	return err
}

// handleEvent converts a routed native event and delivers it on the UI thread.
func (d *VideoDecoder) handleEvent(name string, m payload) {
	var deliver func(DecoderEvents)
	switch name {
	case "load":
		duration, _ := m.num("duration")
		deliver = func(e DecoderEvents) { e.OnLoad(duration) }
	case "progress":
		current, _ := m.num("currentTime")
		seekable, _ := m.num("seekableDuration")
		deliver = func(e DecoderEvents) { e.OnProgress(current, seekable) }
	case "buffer":
		buffering := m.flag("isBuffering")
		deliver = func(e DecoderEvents) { e.OnBuffer(buffering) }
	case "readyForDisplay":
		deliver = func(e DecoderEvents) { e.OnReadyForDisplay() }
	case "end":
		deliver = func(e DecoderEvents) { e.OnEnd() }
	case "error":
		code := m.text("code")
		if code == "" {
			code = ErrCodePlaybackFailed
		}
		derr := &DecodeError{Code: code, Message: m.text("message")}
		deliver = func(e DecoderEvents) { e.OnError(derr) }
	default:
		errors.Report(&errors.OverlayError{
			Op:      "decoder.handleEvent",
			Kind:    errors.KindParsing,
			Channel: decoderEventsChannelName,
			Err:     fmt.Errorf("unknown decoder event %q", name),
		})
		return
	}

	Dispatch(func() {
		d.mu.RLock()
		events, disposed := d.events, d.disposed
		d.mu.RUnlock()
		if disposed || events == nil {
			return
		}
		deliver(events)
	})
}
