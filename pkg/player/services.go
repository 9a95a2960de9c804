package player

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-drift/videooverlay/pkg/graphics"
	"github.com/go-drift/videooverlay/pkg/platform"
)

// Decoder is the video decode/render engine for one mount.
type Decoder interface {
	Load(src platform.MediaSource, buf platform.BufferConfig) error
	Seek(position float64) error
	SetPaused(paused bool) error
	SetMuted(muted bool) error
	SetVolume(volume float64) error
	SetEvents(events platform.DecoderEvents)
	Dispose()
}

// DecoderFactory creates a fresh decoder. It is called on mount and on every
// retry.
type DecoderFactory func() Decoder

// Orientation locks the screen orientation. Calls are fire-and-forget.
type Orientation interface {
	LockToPortrait()
	LockToLandscape()
}

// Immersive toggles suppression of the OS chrome.
type Immersive interface {
	On()
	Off()
}

// StatusBar shows or hides the status bar.
type StatusBar interface {
	SetHidden(hidden bool)
}

// VolumeService reads and observes the OS media volume.
type VolumeService interface {
	// Volume may block; the controller calls it off the UI thread.
	Volume(ctx context.Context) (float64, error)
	Listen(handler func(volume float64)) (cancel func())
}

// Dimensions reports the window size and its changes.
type Dimensions interface {
	Size() graphics.Size
	Listen(handler func(graphics.Size)) (cancel func())
}

// Device answers capability queries synchronously.
type Device interface {
	HasNotch() bool
	Family() platform.Family
}

// HostSurface patches the scroll view and container hosting the player.
type HostSurface interface {
	SetScrollEnabled(enabled bool)
	ScrollTo(x, y float64)
	SetStyle(style platform.HostStyle)
}

// Scheduler runs delayed and posted work on the UI thread.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) platform.Timer
	Post(f func())
}

// Services bundles every collaborator the controller talks to.
type Services struct {
	NewDecoder  DecoderFactory
	Orientation Orientation
	Immersive   Immersive
	StatusBar   StatusBar
	Volume      VolumeService
	Dimensions  Dimensions
	Device      Device
	Host        HostSurface
	Scheduler   Scheduler
}

// DefaultServices returns collaborators backed by the native bridge.
func DefaultServices() Services {
	return Services{
		NewDecoder:  func() Decoder { return platform.NewVideoDecoder() },
		Orientation: platform.Orientation,
		Immersive:   platform.Immersive,
		StatusBar:   platform.StatusBar,
		Volume:      platform.Volume,
		Dimensions:  platform.Window,
		Device:      platform.Device,
		Host:        platform.HostSurface,
		Scheduler:   platform.UIScheduler{},
	}
}

func (s Services) validate() error {
	var missing []string
	check := func(name string, ok bool) {
		if !ok {
			missing = append(missing, name)
		}
	}
	check("NewDecoder", s.NewDecoder != nil)
	check("Orientation", s.Orientation != nil)
	check("Immersive", s.Immersive != nil)
	check("StatusBar", s.StatusBar != nil)
	check("Volume", s.Volume != nil)
	check("Dimensions", s.Dimensions != nil)
	check("Device", s.Device != nil)
	check("Host", s.Host != nil)
	check("Scheduler", s.Scheduler != nil)
	if len(missing) > 0 {
		return fmt.Errorf("player: missing services: %s", strings.Join(missing, ", "))
	}
	return nil
}
