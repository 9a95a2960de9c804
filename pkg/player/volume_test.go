package player_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/samber/mo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	overlayerrors "github.com/go-drift/videooverlay/pkg/errors"
	"github.com/go-drift/videooverlay/pkg/graphics"
	"github.com/go-drift/videooverlay/pkg/player"
	overlaytest "github.com/go-drift/videooverlay/pkg/testing"
)

func TestToggleMute_SilencesWithoutTouchingSystemVolume(t *testing.T) {
	tester, c := mountPlaying(t, 120)

	c.ToggleMute()
	s := c.State()
	assert.True(t, s.Mute.Muted)
	assert.Equal(t, 0.0, s.Mute.Effective())
	assert.Equal(t, mo.Some(overlaytest.DefaultVolume), s.SystemVolume)

	_, muted, volume := tester.Decoder().Props()
	assert.True(t, muted)
	assert.Equal(t, 0.0, volume)
	assert.Equal(t, "mute", c.View().Controls.MuteIcon)
}

func TestToggleMute_RestoresLatestSystemVolume(t *testing.T) {
	for _, v := range []float64{0, 0.1, 0.42, 1} {
		t.Run(fmt.Sprint(v), func(t *testing.T) {
			tester, c := mountPlaying(t, 120)

			c.ToggleMute()
			tester.Volume.Set(v)
			assert.True(t, c.State().Mute.Muted, "volume change must not unmute")
			assert.Equal(t, 0.0, c.State().Mute.Effective())

			c.ToggleMute()
			assert.False(t, c.State().Mute.Muted)
			assert.Equal(t, v, c.State().Mute.Effective())
			_, muted, volume := tester.Decoder().Props()
			assert.False(t, muted)
			assert.Equal(t, v, volume)
		})
	}
}

func TestSystemVolumeChanged_FollowsWhenUnmuted(t *testing.T) {
	tester, c := mountPlaying(t, 120)
	tester.Volume.Set(0.8)

	assert.Equal(t, 0.8, c.State().Mute.Effective())
	_, _, volume := tester.Decoder().Props()
	assert.Equal(t, 0.8, volume)
}

func TestInitialVolume_IgnoredAfterUnmount(t *testing.T) {
	tester := overlaytest.NewPlayerTesterWithT(t)
	release := tester.Volume.Hold()
	c := tester.MustMount(t, testConfig())
	assert.False(t, c.State().SystemVolume.IsPresent())
	assert.Equal(t, 0.0, c.State().Mute.Effective())

	before := c.State()
	c.Unmount()
	release()

	require.Eventually(t, func() bool {
		return tester.Scheduler.Flush() > 0
	}, timeout, tick)
	assert.Equal(t, before, c.State())
}

func TestInitialVolume_ArrivesLate(t *testing.T) {
	tester := overlaytest.NewPlayerTesterWithT(t)
	release := tester.Volume.Hold()
	c := tester.MustMount(t, testConfig())
	release()

	require.Eventually(t, func() bool {
		tester.Scheduler.Flush()
		return c.State().SystemVolume.IsPresent()
	}, timeout, tick)
	assert.Equal(t, overlaytest.DefaultVolume, c.State().Mute.Effective())
}

func TestInitialVolume_DroppedAfterNewerNotification(t *testing.T) {
	tester := overlaytest.NewPlayerTesterWithT(t)
	release := tester.Volume.Hold()
	c := tester.MustMount(t, testConfig())
	release()

	require.Eventually(t, func() bool {
		return tester.Scheduler.Posted() > 0
	}, timeout, tick)
	tester.Volume.Set(0.9)
	require.Equal(t, mo.Some(0.9), c.State().SystemVolume)

	tester.Scheduler.Flush()
	assert.Equal(t, mo.Some(0.9), c.State().SystemVolume)
	assert.Equal(t, 0.9, c.State().Mute.Effective())
	_, _, volume := tester.Decoder().Props()
	assert.Equal(t, 0.9, volume)

	c.ToggleMute()
	c.ToggleMute()
	assert.Equal(t, 0.9, c.State().Mute.Effective())
}

func TestMount_ParentCancelReleasesSubscriptions(t *testing.T) {
	tester := overlaytest.NewPlayerTesterWithT(t)
	ctx, cancel := context.WithCancel(t.Context())
	c := player.New(testConfig(), tester.Services())
	require.NoError(t, c.Mount(ctx))
	t.Cleanup(c.Unmount)
	require.Equal(t, 1, tester.Volume.Listeners())
	decoder := tester.Decoder()

	cancel()
	require.Eventually(t, func() bool {
		tester.Scheduler.Flush()
		return tester.Volume.Listeners() == 0
	}, timeout, tick)
	assert.Zero(t, tester.Dimensions.Listeners())
	assert.True(t, decoder.Disposed())
	assert.ErrorIs(t, c.Mount(t.Context()), player.ErrAlreadyMounted)
}

func TestInitialVolume_ErrorReported(t *testing.T) {
	reports := captureReports(t)
	tester := overlaytest.NewPlayerTesterWithT(t)
	errNoVolume := errors.New("volume unavailable")
	tester.Volume.Fail(errNoVolume)
	c := tester.MustMount(t, testConfig())

	assert.False(t, c.State().SystemVolume.IsPresent())
	require.Len(t, *reports, 1)
	assert.Equal(t, overlayerrors.KindPlatform, (*reports)[0].Kind)
	assert.ErrorIs(t, (*reports)[0], errNoVolume)
}

func TestUnmount_ReleasesEverything(t *testing.T) {
	tester, c := mountPlaying(t, 120)
	c.TapSurface()
	c.ToggleFullScreen()
	c.ToggleFullScreen()
	tester.Decoder().EmitEnd()
	c.TogglePlayPause()
	require.Positive(t, tester.Scheduler.Pending())
	require.Equal(t, 1, tester.Volume.Listeners())
	require.Equal(t, 1, tester.Dimensions.Listeners())

	decoder := tester.Decoder()
	c.Unmount()
	c.Unmount()

	assert.Zero(t, tester.Volume.Listeners())
	assert.Zero(t, tester.Dimensions.Listeners())
	assert.Zero(t, tester.Scheduler.Pending())
	assert.True(t, decoder.Disposed())

	before := c.State()
	decoder.EmitProgress(10, 120)
	decoder.EmitError("decoder_error", "late")
	c.SystemVolumeChanged(0.1)
	c.DimensionsChanged(graphics.Size{Width: 800, Height: 400})
	c.ToggleMute()
	c.SeekForward()
	tester.Pump(player.AutoHideDelay)
	assert.Equal(t, before, c.State())

	assert.ErrorIs(t, c.Mount(t.Context()), player.ErrAlreadyMounted)
}
