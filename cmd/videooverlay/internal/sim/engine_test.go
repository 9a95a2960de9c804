package sim

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-drift/videooverlay/pkg/platform"
)

var source = platform.MediaSource{URI: "sim://clip.mp4"}

func loaded(t *testing.T, e *Engine, rec *recorder) *Decoder {
	t.Helper()
	d := e.NewDecoder().(*Decoder)
	d.SetEvents(rec)
	require.NoError(t, d.Load(source, platform.DefaultBufferConfig))
	return d
}

func TestEngine_Lifecycle(t *testing.T) {
	q := useQueue(t)
	e := NewEngine(previewConfig())
	rec := &recorder{}
	d := loaded(t, e, rec)
	require.NoError(t, d.SetPaused(false))

	for range 6 {
		e.Step(tick)
	}
	q.drain()

	assert.Equal(t, []string{
		"load 1.00",
		"buffer true",
		"buffer false",
		"ready",
		"progress 0.25/1.00",
		"progress 0.50/1.00",
		"progress 0.75/1.00",
		"progress 1.00/1.00",
		"end",
	}, rec.take())

	e.Step(tick)
	q.drain()
	assert.Empty(t, rec.take(), "ended decoder stays quiet")
}

func TestEngine_PausedDoesNotAdvance(t *testing.T) {
	q := useQueue(t)
	e := NewEngine(previewConfig())
	rec := &recorder{}
	d := loaded(t, e, rec)

	for range 5 {
		e.Step(tick)
	}
	q.drain()
	assert.Equal(t, []string{"load 1.00", "buffer true", "buffer false", "ready"}, rec.take())
	assert.Zero(t, d.Position())
}

func TestDecoder_LoadFailure(t *testing.T) {
	e := NewEngine(previewConfig())
	d := e.NewDecoder()
	err := d.Load(platform.MediaSource{URI: FailScheme + "clip"}, platform.DefaultBufferConfig)
	assert.ErrorContains(t, err, "cannot open")
}

func TestDecoder_SeekRebuffers(t *testing.T) {
	q := useQueue(t)
	e := NewEngine(previewConfig())
	rec := &recorder{}
	d := loaded(t, e, rec)
	require.NoError(t, d.SetPaused(false))
	e.Step(tick)
	e.Step(tick)
	q.drain()
	rec.take()

	require.NoError(t, d.Seek(0.5))
	q.drain()
	assert.Equal(t, []string{"buffer true", "progress 0.50/1.00"}, rec.take())

	e.Step(tick)
	q.drain()
	assert.Equal(t, []string{"buffer false"}, rec.take(), "first frame is only reported once")

	require.NoError(t, d.Seek(5))
	assert.Equal(t, 1.0, d.Position(), "seek clamps to the duration")
}

func TestDecoder_SeekAfterEndRestarts(t *testing.T) {
	q := useQueue(t)
	e := NewEngine(previewConfig())
	rec := &recorder{}
	d := loaded(t, e, rec)
	require.NoError(t, d.SetPaused(false))
	for range 6 {
		e.Step(tick)
	}
	q.drain()
	rec.take()

	require.NoError(t, d.Seek(0))
	e.Step(tick)
	e.Step(tick)
	q.drain()
	assert.Equal(t, []string{"buffer true", "progress 0.00/1.00", "buffer false", "progress 0.25/1.00"}, rec.take())
}

func TestEngine_InjectError(t *testing.T) {
	q := useQueue(t)
	e := NewEngine(previewConfig())
	rec := &recorder{}
	loaded(t, e, rec)
	e.Step(tick)
	q.drain()
	rec.take()

	e.InjectError()
	e.Step(tick)
	e.Step(tick)
	q.drain()
	assert.Equal(t, []string{"error " + platform.ErrCodeDecoderError}, rec.take())
}

func TestDecoder_FailAfter(t *testing.T) {
	q := useQueue(t)
	cfg := previewConfig()
	cfg.Duration = 10 * time.Second
	cfg.FailAfter = 2 * tick
	e := NewEngine(cfg)
	rec := &recorder{}
	d := loaded(t, e, rec)
	require.NoError(t, d.SetPaused(false))

	for range 6 {
		e.Step(tick)
	}
	q.drain()
	assert.Equal(t, []string{
		"load 10.00",
		"buffer true",
		"buffer false",
		"ready",
		"progress 0.25/10.00",
		"progress 0.50/10.00",
		"error " + platform.ErrCodeSourceError,
	}, rec.take())
}

func TestDecoder_Stalls(t *testing.T) {
	q := useQueue(t)
	cfg := previewConfig()
	cfg.Duration = 10 * time.Second
	cfg.StallEvery = tick
	cfg.StallFor = tick
	e := NewEngine(cfg)
	rec := &recorder{}
	d := loaded(t, e, rec)
	require.NoError(t, d.SetPaused(false))
	e.Step(tick)
	e.Step(tick)
	q.drain()
	rec.take()

	e.Step(tick)
	e.Step(tick)
	e.Step(tick)
	q.drain()
	assert.Equal(t, []string{
		"progress 0.25/10.00",
		"buffer true",
		"buffer false",
		"progress 0.50/10.00",
		"buffer true",
	}, rec.take())
}

func TestDecoder_Dispose(t *testing.T) {
	q := useQueue(t)
	e := NewEngine(previewConfig())
	rec := &recorder{}
	d := loaded(t, e, rec)
	require.Same(t, d, e.Latest())

	d.Dispose()
	e.Step(tick)
	q.drain()
	assert.Empty(t, rec.take())
	assert.Nil(t, e.Latest())
	assert.Equal(t, 1, e.Created())
	assert.ErrorIs(t, d.SetPaused(false), ErrDisposed)
	assert.ErrorIs(t, d.Seek(0), ErrDisposed)
	assert.ErrorIs(t, d.Load(source, platform.DefaultBufferConfig), ErrDisposed)
}

func TestDecoder_SetVolumeRange(t *testing.T) {
	d := NewEngine(previewConfig()).NewDecoder().(*Decoder)
	assert.Error(t, d.SetVolume(1.5))
	require.NoError(t, d.SetMuted(true))
	require.NoError(t, d.SetVolume(0.25))
	muted, volume := d.Audio()
	assert.True(t, muted)
	assert.Equal(t, 0.25, volume)
}

func TestEngine_RunStopsOnCancel(t *testing.T) {
	cfg := previewConfig()
	cfg.Tick = time.Millisecond
	e := NewEngine(cfg)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- e.Run(ctx) }()
	cancel()
	assert.NoError(t, <-done)
}
