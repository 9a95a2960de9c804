package player_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/samber/mo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	overlayerrors "github.com/go-drift/videooverlay/pkg/errors"
	"github.com/go-drift/videooverlay/pkg/graphics"
	"github.com/go-drift/videooverlay/pkg/platform"
	"github.com/go-drift/videooverlay/pkg/player"
	overlaytest "github.com/go-drift/videooverlay/pkg/testing"
)

func TestMount_InitialState(t *testing.T) {
	tester, c := mount(t, testConfig())

	want := player.State{
		Loading:      true,
		Mute:         player.Mute{Volume: mo.Some(overlaytest.DefaultVolume)},
		SystemVolume: mo.Some(overlaytest.DefaultVolume),
		Screen:       graphics.Size{Width: 400, Height: 800},
		PlayerSize:   graphics.Size{Width: 400, Height: 300},
	}
	if diff := cmp.Diff(want, c.State(), optionEqual); diff != "" {
		t.Errorf("initial state mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, player.PlaybackLoading, c.State().Playback())

	src, buf, loaded := tester.Decoder().Source()
	require.True(t, loaded)
	assert.Equal(t, testURI, src.URI)
	assert.Equal(t, platform.DefaultBufferConfig, buf)

	paused, muted, volume := tester.Decoder().Props()
	assert.False(t, paused)
	assert.False(t, muted)
	assert.Equal(t, overlaytest.DefaultVolume, volume)
}

func TestMount_AutoplayDisabled(t *testing.T) {
	cfg := testConfig()
	cfg.Autoplay = false
	tester, c := mount(t, cfg)

	assert.True(t, c.State().Paused)
	paused, _, _ := tester.Decoder().Props()
	assert.True(t, paused)
}

func TestMount_Errors(t *testing.T) {
	tester := overlaytest.NewPlayerTesterWithT(t)

	bad := testConfig()
	bad.Source.URI = ""
	_, err := tester.Mount(bad)
	assert.ErrorIs(t, err, player.ErrInvalidConfig)

	c := tester.MustMount(t, testConfig())
	assert.ErrorIs(t, c.Mount(context.Background()), player.ErrAlreadyMounted)

	svc := tester.Services()
	svc.Host = nil
	err = player.New(testConfig(), svc).Mount(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Host")
}

func TestLoadAndProgress_Scenario(t *testing.T) {
	tester, c := mountPlaying(t, 120)
	tester.Decoder().EmitProgress(60, 120)

	s := c.State()
	assert.Equal(t, 120.0, s.Duration)
	assert.Equal(t, 0.5, s.SeekFraction)
	assert.Equal(t, player.PlaybackPlaying, s.Playback())

	v := c.View()
	require.NotNil(t, v.Controls)
	assert.Equal(t, "01:00", v.Controls.Elapsed)
	assert.Equal(t, "02:00", v.Controls.Total)
}

func TestMediaLoaded_RecordsDurationOnceAndRewinds(t *testing.T) {
	tester, c := mount(t, testConfig())
	tester.Decoder().EmitLoad(120)
	tester.Decoder().EmitLoad(90)

	assert.Equal(t, 120.0, c.State().Duration)
	seeks := 0
	for _, call := range tester.Log.Filter("decoder") {
		if call.Method == "Seek" {
			assert.Equal(t, 0.0, call.Arg)
			seeks++
		}
	}
	assert.Equal(t, 2, seeks)
	assert.False(t, c.State().Paused, "load must not change play/pause intent")
}

func TestProgress_ClearsLoading(t *testing.T) {
	tester, c := mount(t, testConfig())
	require.True(t, c.State().Loading)

	tester.Decoder().EmitProgress(1, 0)
	assert.False(t, c.State().Loading)
	assert.Equal(t, 0.0, c.State().SeekFraction, "unknown seekable duration must not divide")
}

func TestProgress_IgnoredWhileSeekBarBusy(t *testing.T) {
	tester, c := mountPlaying(t, 120)
	c.SeekBarSlidingStarted()
	c.SeekBarChanged(0.25)

	for _, current := range []float64{0, 10, 60, 119, 120} {
		tester.Decoder().EmitProgress(current, 120)
		assert.Equal(t, 0.25, c.State().SeekFraction, "progress %v moved a busy seek bar", current)
	}

	c.SeekBarSlidingEnded()
	tester.Decoder().EmitProgress(90, 120)
	assert.Equal(t, 0.75, c.State().SeekFraction)
}

func TestBufferingChanged_TruthTable(t *testing.T) {
	tests := []struct {
		name        string
		setup       func(*overlaytest.FakeDecoder)
		loading     bool
		ready       bool
		buffering   bool
		wantLoading bool
	}{
		{"idle start", func(d *overlaytest.FakeDecoder) { d.EmitProgress(0, 10) }, false, false, true, true},
		{"idle end", func(d *overlaytest.FakeDecoder) { d.EmitProgress(0, 10) }, false, false, false, false},
		{"playing start", func(d *overlaytest.FakeDecoder) { d.EmitReady() }, false, true, true, true},
		{"playing end", func(d *overlaytest.FakeDecoder) { d.EmitReady() }, false, true, false, false},
		{"loading before first frame start", func(*overlaytest.FakeDecoder) {}, true, false, true, true},
		{"loading before first frame end", func(*overlaytest.FakeDecoder) {}, true, false, false, true},
		{"rebuffering start", func(d *overlaytest.FakeDecoder) { d.EmitReady(); d.EmitBuffer(true) }, true, true, true, true},
		{"rebuffering end", func(d *overlaytest.FakeDecoder) { d.EmitReady(); d.EmitBuffer(true) }, true, true, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tester, c := mount(t, testConfig())
			tt.setup(tester.Decoder())
			require.Equal(t, tt.loading, c.State().Loading, "setup loading")
			require.Equal(t, tt.ready, c.State().Ready, "setup ready")

			tester.Decoder().EmitBuffer(tt.buffering)
			assert.Equal(t, tt.wantLoading, c.State().Loading)
			assert.Equal(t, tt.buffering, c.State().Buffering)
		})
	}
}

func TestBufferingChanged_RapidTogglingBeforeFirstFrame(t *testing.T) {
	tester, c := mount(t, testConfig())
	for i := 0; i < 5; i++ {
		tester.Decoder().EmitBuffer(true)
		tester.Decoder().EmitBuffer(false)
	}
	assert.True(t, c.State().Loading, "loader stays up until the first frame")

	tester.Decoder().EmitReady()
	tester.Decoder().EmitBuffer(true)
	tester.Decoder().EmitBuffer(false)
	assert.False(t, c.State().Loading)
}

func TestEnded(t *testing.T) {
	tester, c := mountPlaying(t, 120)
	tester.Decoder().EmitEnd()

	s := c.State()
	assert.Equal(t, 1.0, s.SeekFraction)
	assert.True(t, s.Paused)
	assert.Equal(t, player.PlaybackEnded, s.Playback())
}

func TestTogglePlayPause_FromEndRewindsThenResumes(t *testing.T) {
	for _, duration := range []float64{1, 60, 3605} {
		t.Run(fmt.Sprint(duration), func(t *testing.T) {
			tester, c := mountPlaying(t, duration)
			tester.Decoder().EmitEnd()
			tester.Log.Reset()

			c.TogglePlayPause()
			assert.Equal(t, 0.0, c.State().SeekFraction)
			assert.True(t, c.State().Paused, "resume waits for the seek to settle")

			tester.Pump(player.ResetDelay)
			assert.False(t, c.State().Paused)

			seek := tester.Log.Index("decoder.Seek(0)")
			resume := tester.Log.Index("decoder.SetPaused(false)")
			require.NotEqual(t, -1, seek)
			require.NotEqual(t, -1, resume)
			assert.Less(t, seek, resume, "seek to 0 must precede resume")
		})
	}
}

func TestTogglePlayPause_Flips(t *testing.T) {
	tester, c := mountPlaying(t, 120)
	tester.Decoder().EmitProgress(30, 120)

	c.TogglePlayPause()
	assert.Equal(t, player.PlaybackPaused, c.State().Playback())
	paused, _, _ := tester.Decoder().Props()
	assert.True(t, paused)

	c.TogglePlayPause()
	assert.Equal(t, player.PlaybackPlaying, c.State().Playback())
	paused, _, _ = tester.Decoder().Props()
	assert.False(t, paused)
}

func TestSeekForwardBackward_RoundTrip(t *testing.T) {
	const tolerance = 1e-9
	for _, duration := range []float64{25, 120, 3605.5} {
		tester, c := mountPlaying(t, duration)
		for pos := 10.0; pos <= duration-10; pos += 7.3 {
			c.SeekBarChanged(pos / duration)
			before := c.State().SeekFraction

			c.SeekForward()
			assert.InDelta(t, (pos+10)/duration, c.State().SeekFraction, tolerance)
			c.SeekBackward()
			assert.InDelta(t, before, c.State().SeekFraction, tolerance, "duration %v pos %v", duration, pos)
		}
		tester.Cleanup()
	}
}

func TestSeekForwardBackward_ClampAtBoundaries(t *testing.T) {
	tester, c := mountPlaying(t, 120)

	c.SeekBarChanged(1)
	c.SeekForward()
	assert.Equal(t, 1.0, c.State().SeekFraction)
	assert.Equal(t, 120.0, tester.Decoder().Position())

	c.SeekBarChanged(0)
	c.SeekBackward()
	assert.Equal(t, 0.0, c.State().SeekFraction)
	assert.Equal(t, 0.0, tester.Decoder().Position())

	c.SeekBarChanged(115 / 120.0)
	c.SeekForward()
	assert.Equal(t, 1.0, c.State().SeekFraction)
	assert.Equal(t, 120.0, tester.Decoder().Position())
}

func TestSeek_ZeroDuration(t *testing.T) {
	tester, c := mount(t, testConfig())

	c.SeekForward()
	c.SeekBarChanged(0.5)
	c.SeekBackward()

	assert.Equal(t, 0.0, c.State().SeekFraction)
	assert.Equal(t, 0.0, tester.Decoder().Position())
}

func TestSeekBarChanged_Clamps(t *testing.T) {
	tester, c := mountPlaying(t, 200)

	c.SeekBarChanged(1.5)
	assert.Equal(t, 1.0, c.State().SeekFraction)
	assert.Equal(t, 200.0, tester.Decoder().Position())

	c.SeekBarChanged(-0.2)
	assert.Equal(t, 0.0, c.State().SeekFraction)
	assert.Equal(t, 0.0, tester.Decoder().Position())

	c.SeekBarChanged(0.3)
	assert.InDelta(t, 0.3, c.State().SeekFraction, 1e-12)
	assert.InDelta(t, 60.0, tester.Decoder().Position(), 1e-9)
}

func TestDecodeError_RetryScenario(t *testing.T) {
	reports := captureReports(t)
	tester, c := mountPlaying(t, 120)
	tester.Decoder().EmitProgress(60, 120)
	failed := tester.Decoder()

	failed.EmitError(platform.ErrCodeSourceError, "404")

	assert.Equal(t, player.PlaybackRetrying, c.State().Playback())
	v := c.View()
	assert.True(t, v.RetryPrompt)
	assert.Nil(t, v.Controls)
	require.Len(t, *reports, 1)
	assert.Equal(t, overlayerrors.KindDecode, (*reports)[0].Kind)
	var derr *platform.DecodeError
	assert.True(t, errors.As((*reports)[0], &derr))

	require.NoError(t, c.Retry())

	assert.True(t, failed.Disposed())
	fresh := tester.Decoder()
	require.NotSame(t, failed, fresh)
	src, _, loaded := fresh.Source()
	assert.True(t, loaded)
	assert.Equal(t, testURI, src.URI)

	s := c.State()
	assert.False(t, c.View().RetryPrompt)
	assert.Equal(t, player.PlaybackLoading, s.Playback())
	assert.Equal(t, 0.0, s.SeekFraction)
	assert.Equal(t, 0.0, s.Duration)
	assert.False(t, s.Ready)

	// The failed decoder is gone; its callbacks are ignored.
	failed.EmitLoad(30)
	failed.EmitProgress(10, 30)
	assert.Equal(t, 0.0, c.State().Duration)
	assert.Equal(t, 0.0, c.State().SeekFraction)

	fresh.EmitLoad(120)
	assert.Equal(t, 120.0, c.State().Duration)
}

func TestDecodeError_FromAnyState(t *testing.T) {
	for name, setup := range map[string]func(*overlaytest.FakeDecoder, *player.Controller){
		"loading": func(*overlaytest.FakeDecoder, *player.Controller) {},
		"playing": func(d *overlaytest.FakeDecoder, _ *player.Controller) { d.EmitReady() },
		"paused":  func(d *overlaytest.FakeDecoder, c *player.Controller) { d.EmitReady(); c.TogglePlayPause() },
		"ended":   func(d *overlaytest.FakeDecoder, _ *player.Controller) { d.EmitReady(); d.EmitEnd() },
	} {
		t.Run(name, func(t *testing.T) {
			captureReports(t)
			tester, c := mount(t, testConfig())
			setup(tester.Decoder(), c)
			tester.Decoder().EmitError(platform.ErrCodeDecoderError, "")
			assert.Equal(t, player.PlaybackRetrying, c.State().Playback())
		})
	}
}

func TestDecodeError_CancelsPendingResume(t *testing.T) {
	captureReports(t)
	tester, c := mountPlaying(t, 120)
	tester.Decoder().EmitEnd()
	c.TogglePlayPause()
	tester.Decoder().EmitError(platform.ErrCodePlaybackFailed, "")

	tester.Pump(player.ResetDelay)
	assert.True(t, c.State().Paused)
	assert.True(t, c.State().Failed)
}

func TestLoadFailure_ShowsRetryPrompt(t *testing.T) {
	captureReports(t)
	tester := overlaytest.NewPlayerTesterWithT(t)
	tester.Decoders.FailNextLoad(platform.ErrPlatformUnavailable)
	c := tester.MustMount(t, testConfig())

	assert.True(t, c.View().RetryPrompt)

	tester.Decoders.FailNextLoad(nil)
	require.NoError(t, c.Retry())
	assert.False(t, c.View().RetryPrompt)
	assert.Len(t, tester.Decoders.Created(), 2)
}

func TestRetry_NotMounted(t *testing.T) {
	tester := overlaytest.NewPlayerTesterWithT(t)
	c := player.New(testConfig(), tester.Services())
	assert.ErrorIs(t, c.Retry(), player.ErrNotMounted)

	c = tester.MustMount(t, testConfig())
	c.Unmount()
	assert.ErrorIs(t, c.Retry(), player.ErrNotMounted)
}

func TestOnChange_CalledPerTransition(t *testing.T) {
	tester := overlaytest.NewPlayerTesterWithT(t)
	var states []player.State
	c := tester.MustMount(t, testConfig(), player.WithOnChange(func(s player.State) {
		states = append(states, s)
	}))
	before := len(states)

	tester.Decoder().EmitReady()
	require.Len(t, states, before+1)
	assert.Equal(t, c.State(), states[len(states)-1])

	// No-op transitions do not notify.
	tester.Decoder().EmitBuffer(false)
	tester.Decoder().EmitBuffer(false)
	assert.Len(t, states, before+1)
}
