package testing

import (
	"context"
	"testing"
	"time"

	"github.com/go-drift/videooverlay/pkg/graphics"
	"github.com/go-drift/videooverlay/pkg/platform"
	"github.com/go-drift/videooverlay/pkg/player"
)

const (
	// DefaultTestWidth is the default portrait window width.
	DefaultTestWidth = 400
	// DefaultTestHeight is the default portrait window height.
	DefaultTestHeight = 800
	// DefaultVolume is the OS volume reported until changed.
	DefaultVolume = 0.5
)

// PlayerTester drives a player against fakes for every collaborator.
type PlayerTester struct {
	Log         *CallLog
	Scheduler   *FakeScheduler
	Decoders    *FakeDecoders
	Orientation *FakeOrientation
	Immersive   *FakeImmersive
	StatusBar   *FakeStatusBar
	Volume      *FakeVolume
	Dimensions  *FakeDimensions
	Device      *FakeDevice
	Host        *FakeHost

	controller *player.Controller
}

// NewPlayerTester creates a tester with a portrait window, no notch and the
// OS volume at DefaultVolume. Call Cleanup() when done, or use
// NewPlayerTesterWithT() instead.
func NewPlayerTester() *PlayerTester {
	log := &CallLog{}
	t := &PlayerTester{
		Log:         log,
		Scheduler:   NewFakeScheduler(),
		Decoders:    &FakeDecoders{log: log},
		Orientation: &FakeOrientation{log: log},
		Immersive:   &FakeImmersive{log: log},
		StatusBar:   &FakeStatusBar{log: log},
		Volume:      &FakeVolume{current: DefaultVolume},
		Dimensions:  &FakeDimensions{size: graphics.Size{Width: DefaultTestWidth, Height: DefaultTestHeight}},
		Device:      &FakeDevice{Platform: platform.FamilyOther},
		Host:        &FakeHost{log: log},
	}
	return t
}

// NewPlayerTesterWithT creates a tester that auto-cleans up via t.Cleanup().
// This is the recommended constructor for tests.
func NewPlayerTesterWithT(t testing.TB) *PlayerTester {
	tester := NewPlayerTester()
	t.Cleanup(tester.Cleanup)
	return tester
}

// Services returns player services backed by the fakes.
func (t *PlayerTester) Services() player.Services {
	return player.Services{
		NewDecoder:  t.Decoders.New,
		Orientation: t.Orientation,
		Immersive:   t.Immersive,
		StatusBar:   t.StatusBar,
		Volume:      t.Volume,
		Dimensions:  t.Dimensions,
		Device:      t.Device,
		Host:        t.Host,
		Scheduler:   t.Scheduler,
	}
}

// Mount creates and mounts a controller, then waits for the initial volume
// query to land.
func (t *PlayerTester) Mount(cfg player.Config, opts ...player.Option) (*player.Controller, error) {
	c := player.New(cfg, t.Services(), opts...)
	if err := c.Mount(context.Background()); err != nil {
		return nil, err
	}
	t.controller = c
	t.SettleVolume()
	return c, nil
}

// MustMount is Mount that fails the test on error.
func (t *PlayerTester) MustMount(tb testing.TB, cfg player.Config, opts ...player.Option) *player.Controller {
	tb.Helper()
	c, err := t.Mount(cfg, opts...)
	if err != nil {
		tb.Fatalf("Mount: %v", err)
	}
	return c
}

// SettleVolume waits for the initial volume query to post its result and
// flushes it. It returns at once while the volume is held.
func (t *PlayerTester) SettleVolume() {
	if t.controller == nil || t.Volume.held() {
		return
	}
	// The query runs on its own goroutine.
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if t.Scheduler.Flush() > 0 {
			return
		}
		time.Sleep(time.Millisecond)
	}
}

// Decoder returns the current decoder.
func (t *PlayerTester) Decoder() *FakeDecoder {
	return t.Decoders.Latest()
}

// Pump advances fake time, firing due timers.
func (t *PlayerTester) Pump(d time.Duration) {
	t.Scheduler.Advance(d)
}

// Cleanup unmounts the controller if it is still mounted.
func (t *PlayerTester) Cleanup() {
	if t.controller != nil {
		t.controller.Unmount()
		t.controller = nil
	}
}
