package player

import (
	"context"

	"github.com/samber/mo"

	overlayerrors "github.com/go-drift/videooverlay/pkg/errors"
	"github.com/go-drift/videooverlay/pkg/log"
)

// ToggleMute mutes to 0 or restores the last known system volume.
func (c *Controller) ToggleMute() {
	if !c.alive() {
		return
	}
	c.update(func(s *State) {
		if s.Mute.Muted {
			s.Mute = Mute{Muted: false, Volume: s.SystemVolume}
			return
		}
		s.Mute = Mute{Muted: true, Volume: mo.Some(0.0)}
	})
}

// SystemVolumeChanged records an OS volume change. While muted it only
// changes what unmuting restores.
func (c *Controller) SystemVolumeChanged(volume float64) {
	if !c.alive() {
		return
	}
	c.update(func(s *State) {
		s.SystemVolume = mo.Some(volume)
		if !s.Mute.Muted {
			s.Mute.Volume = mo.Some(volume)
		}
	})
}

// fetchVolume queries the initial OS volume off the UI thread and posts the
// result back. A result arriving after Unmount, or after the OS already
// reported a volume through the listener, is dropped.
func (c *Controller) fetchVolume(ctx context.Context) {
	volume, scheduler := c.svc.Volume, c.svc.Scheduler
	go func() {
		v, err := volume.Volume(ctx)
		scheduler.Post(func() {
			if !c.alive() {
				return
			}
			if err != nil {
				overlayerrors.Report(&overlayerrors.OverlayError{
					Op:   "player.fetchVolume",
					Kind: overlayerrors.KindPlatform,
					Err:  err,
				})
				return
			}
			if c.state.SystemVolume.IsPresent() {
				c.logger.Debug().Float64(log.FieldVolume, v).Msg("stale initial volume dropped")
				return
			}
			c.logger.Debug().Float64(log.FieldVolume, v).Msg("initial volume")
			c.SystemVolumeChanged(v)
		})
	}()
}
