package testing

import (
	"sync"

	"github.com/go-drift/videooverlay/pkg/platform"
	"github.com/go-drift/videooverlay/pkg/player"
)

// FakeDecoder records commands and lets tests emit decoder events. Events
// are delivered synchronously, even after Dispose, so tests can check that
// the player ignores stale callbacks.
type FakeDecoder struct {
	log *CallLog

	mu       sync.Mutex
	events   platform.DecoderEvents
	loadErr  error
	source   platform.MediaSource
	buffer   platform.BufferConfig
	loaded   bool
	disposed bool
	paused   bool
	muted    bool
	volume   float64
	position float64
}

func (d *FakeDecoder) Load(src platform.MediaSource, buf platform.BufferConfig) error {
	d.log.record("decoder", "Load", src.URI)
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.loadErr != nil {
		return d.loadErr
	}
	d.source, d.buffer, d.loaded = src, buf, true
	return nil
}

func (d *FakeDecoder) Seek(position float64) error {
	d.log.record("decoder", "Seek", position)
	d.mu.Lock()
	d.position = position
	d.mu.Unlock()
	return nil
}

func (d *FakeDecoder) SetPaused(paused bool) error {
	d.log.record("decoder", "SetPaused", paused)
	d.mu.Lock()
	d.paused = paused
	d.mu.Unlock()
	return nil
}

func (d *FakeDecoder) SetMuted(muted bool) error {
	d.log.record("decoder", "SetMuted", muted)
	d.mu.Lock()
	d.muted = muted
	d.mu.Unlock()
	return nil
}

func (d *FakeDecoder) SetVolume(volume float64) error {
	d.log.record("decoder", "SetVolume", volume)
	d.mu.Lock()
	d.volume = volume
	d.mu.Unlock()
	return nil
}

func (d *FakeDecoder) SetEvents(events platform.DecoderEvents) {
	d.mu.Lock()
	d.events = events
	d.mu.Unlock()
}

func (d *FakeDecoder) Dispose() {
	d.log.record("decoder", "Dispose", nil)
	d.mu.Lock()
	d.disposed = true
	d.mu.Unlock()
}

// Source returns the loaded source and buffer config.
func (d *FakeDecoder) Source() (platform.MediaSource, platform.BufferConfig, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.source, d.buffer, d.loaded
}

// Disposed reports whether Dispose was called.
func (d *FakeDecoder) Disposed() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.disposed
}

// Props returns the last paused, muted and volume props received.
func (d *FakeDecoder) Props() (paused, muted bool, volume float64) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.paused, d.muted, d.volume
}

// Position returns the last seek target.
func (d *FakeDecoder) Position() float64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.position
}

func (d *FakeDecoder) emit(fn func(platform.DecoderEvents)) {
	d.mu.Lock()
	events := d.events
	d.mu.Unlock()
	if events != nil {
		fn(events)
	}
}

// EmitLoad reports the media duration.
func (d *FakeDecoder) EmitLoad(duration float64) {
	d.emit(func(e platform.DecoderEvents) { e.OnLoad(duration) })
}

// EmitProgress reports the playhead.
func (d *FakeDecoder) EmitProgress(currentTime, seekableDuration float64) {
	d.emit(func(e platform.DecoderEvents) { e.OnProgress(currentTime, seekableDuration) })
}

// EmitBuffer reports a buffering change.
func (d *FakeDecoder) EmitBuffer(buffering bool) {
	d.emit(func(e platform.DecoderEvents) { e.OnBuffer(buffering) })
}

// EmitReady reports the first rendered frame.
func (d *FakeDecoder) EmitReady() {
	d.emit(func(e platform.DecoderEvents) { e.OnReadyForDisplay() })
}

// EmitEnd reports the end of the media.
func (d *FakeDecoder) EmitEnd() {
	d.emit(func(e platform.DecoderEvents) { e.OnEnd() })
}

// EmitError reports a decode failure.
func (d *FakeDecoder) EmitError(code, message string) {
	err := &platform.DecodeError{Code: code, Message: message}
	d.emit(func(e platform.DecoderEvents) { e.OnError(err) })
}

// FakeDecoders is a decoder factory that keeps every decoder it created.
type FakeDecoders struct {
	log *CallLog

	mu      sync.Mutex
	created []*FakeDecoder
	loadErr error
}

// FailNextLoad makes Load fail on decoders created from now on until called
// again with nil.
func (f *FakeDecoders) FailNextLoad(err error) {
	f.mu.Lock()
	f.loadErr = err
	f.mu.Unlock()
}

// New implements player.DecoderFactory.
func (f *FakeDecoders) New() player.Decoder {
	f.mu.Lock()
	defer f.mu.Unlock()
	d := &FakeDecoder{log: f.log, loadErr: f.loadErr}
	f.created = append(f.created, d)
	return d
}

// Latest returns the most recently created decoder, or nil.
func (f *FakeDecoders) Latest() *FakeDecoder {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.created) == 0 {
		return nil
	}
	return f.created[len(f.created)-1]
}

// Created returns every decoder created so far.
func (f *FakeDecoders) Created() []*FakeDecoder {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]*FakeDecoder(nil), f.created...)
}
