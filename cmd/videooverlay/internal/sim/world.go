// Package sim simulates the device and the media decoder behind the preview
// command. Every callback it produces reaches the player through
// platform.Dispatch, the same path the native bridge uses.
package sim

import (
	"context"
	"sync"
	"time"

	"github.com/samber/lo"

	"github.com/go-drift/videooverlay/cmd/videooverlay/internal/config"
	"github.com/go-drift/videooverlay/pkg/graphics"
	"github.com/go-drift/videooverlay/pkg/platform"
	"github.com/go-drift/videooverlay/pkg/player"
)

// Lock is the orientation the simulated screen is locked to.
type Lock string

const (
	LockNone      Lock = ""
	LockPortrait  Lock = "portrait"
	LockLandscape Lock = "landscape"
)

// Snapshot is a copy of the simulated device state.
type Snapshot struct {
	Window        graphics.Size
	Lock          Lock
	Immersive     bool
	StatusHidden  bool
	ScrollEnabled bool
	ScrollOffset  graphics.Offset
	HostStyle     platform.HostStyle
	Volume        float64
	Notch         bool
	Platform      platform.Family
}

// World is the simulated device. Its Screen and Audio halves implement the
// player's OS collaborators.
type World struct {
	Screen *Screen
	Audio  *Audio

	device config.PreviewConfig
}

// NewWorld creates a device from the preview settings.
func NewWorld(cfg config.PreviewConfig) *World {
	w := &World{device: cfg}
	w.Screen = &Screen{
		window:        graphics.Size{Width: cfg.Width, Height: cfg.Height},
		rotateOnLock:  cfg.RotateOnLock,
		scrollEnabled: true,
	}
	w.Audio = &Audio{volume: cfg.Volume, delay: cfg.VolumeDelay}
	return w
}

// Services wires the world and a decoder factory into player services.
func (w *World) Services(newDecoder player.DecoderFactory) player.Services {
	return player.Services{
		NewDecoder:  newDecoder,
		Orientation: w.Screen,
		Immersive:   w.Screen,
		StatusBar:   w.Screen,
		Volume:      w.Audio,
		Dimensions:  w.Screen,
		Device:      w,
		Host:        w.Screen,
		Scheduler:   platform.UIScheduler{},
	}
}

// HasNotch reports whether the simulated display has a cutout.
func (w *World) HasNotch() bool { return w.device.Notch }

// Family returns the simulated platform family.
func (w *World) Family() platform.Family { return w.device.Platform }

// Snapshot returns the current device state.
func (w *World) Snapshot() Snapshot {
	s := w.Screen.snapshot()
	s.Volume = w.Audio.current()
	s.Notch = w.device.Notch
	s.Platform = w.device.Platform
	return s
}

type listeners[T any] struct {
	next     int
	handlers map[int]func(T)
}

func (l *listeners[T]) add(h func(T)) int {
	if l.handlers == nil {
		l.handlers = make(map[int]func(T))
	}
	l.next++
	l.handlers[l.next] = h
	return l.next
}

func (l *listeners[T]) snapshot() []func(T) {
	return lo.Values(l.handlers)
}

// notify dispatches value to every handler on the UI thread.
func notify[T any](handlers []func(T), value T) {
	if len(handlers) == 0 {
		return
	}
	platform.Dispatch(func() {
		for _, h := range handlers {
			h(value)
		}
	})
}

// Screen simulates the window, the system UI and the host scroll view.
type Screen struct {
	mu            sync.Mutex
	window        graphics.Size
	rotateOnLock  bool
	lock          Lock
	immersive     bool
	statusHidden  bool
	scrollEnabled bool
	offset        graphics.Offset
	style         platform.HostStyle
	resize        listeners[graphics.Size]
}

// LockToPortrait locks the orientation, rotating the window when enabled.
func (s *Screen) LockToPortrait() { s.setLock(LockPortrait) }

// LockToLandscape locks the orientation, rotating the window when enabled.
func (s *Screen) LockToLandscape() { s.setLock(LockLandscape) }

func (s *Screen) setLock(lock Lock) {
	s.mu.Lock()
	s.lock = lock
	portrait := s.window.IsPortrait()
	if !s.rotateOnLock || portrait == (lock == LockPortrait) {
		s.mu.Unlock()
		return
	}
	s.mu.Unlock()
	s.Rotate()
}

// Rotate swaps the window sides and notifies dimension listeners.
func (s *Screen) Rotate() {
	s.mu.Lock()
	s.window = graphics.Size{Width: s.window.Height, Height: s.window.Width}
	size, handlers := s.window, s.resize.snapshot()
	s.mu.Unlock()
	notify(handlers, size)
}

// On enables immersive mode.
func (s *Screen) On() { s.setImmersive(true) }

// Off disables immersive mode.
func (s *Screen) Off() { s.setImmersive(false) }

func (s *Screen) setImmersive(on bool) {
	s.mu.Lock()
	s.immersive = on
	s.mu.Unlock()
}

// SetHidden shows or hides the status bar.
func (s *Screen) SetHidden(hidden bool) {
	s.mu.Lock()
	s.statusHidden = hidden
	s.mu.Unlock()
}

// Size returns the window size.
func (s *Screen) Size() graphics.Size {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.window
}

// Listen registers a window size handler.
func (s *Screen) Listen(handler func(graphics.Size)) func() {
	s.mu.Lock()
	id := s.resize.add(handler)
	s.mu.Unlock()
	return func() {
		s.mu.Lock()
		delete(s.resize.handlers, id)
		s.mu.Unlock()
	}
}

// SetScrollEnabled toggles host scrolling.
func (s *Screen) SetScrollEnabled(enabled bool) {
	s.mu.Lock()
	s.scrollEnabled = enabled
	s.mu.Unlock()
}

// ScrollTo scrolls the host.
func (s *Screen) ScrollTo(x, y float64) {
	s.mu.Lock()
	s.offset = graphics.Offset{X: x, Y: y}
	s.mu.Unlock()
}

// SetStyle patches the host container style.
func (s *Screen) SetStyle(style platform.HostStyle) {
	s.mu.Lock()
	s.style = style
	s.mu.Unlock()
}

func (s *Screen) snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		Window:        s.window,
		Lock:          s.lock,
		Immersive:     s.immersive,
		StatusHidden:  s.statusHidden,
		ScrollEnabled: s.scrollEnabled,
		ScrollOffset:  s.offset,
		HostStyle:     s.style,
	}
}

// Audio simulates the OS media volume.
type Audio struct {
	mu      sync.Mutex
	volume  float64
	delay   time.Duration
	changes listeners[float64]
}

// Volume returns the OS volume after the simulated query latency.
func (a *Audio) Volume(ctx context.Context) (float64, error) {
	a.mu.Lock()
	delay := a.delay
	a.mu.Unlock()
	if delay > 0 {
		t := time.NewTimer(delay)
		defer t.Stop()
		select {
		case <-ctx.Done():
			return 0, ctx.Err()
		case <-t.C:
		}
	}
	return a.current(), nil
}

// Listen registers a volume change handler.
func (a *Audio) Listen(handler func(float64)) func() {
	a.mu.Lock()
	id := a.changes.add(handler)
	a.mu.Unlock()
	return func() {
		a.mu.Lock()
		delete(a.changes.handlers, id)
		a.mu.Unlock()
	}
}

// Step changes the OS volume by delta, clamped to [0, 1], as the hardware
// volume keys would.
func (a *Audio) Step(delta float64) float64 {
	a.mu.Lock()
	a.volume = lo.Clamp(a.volume+delta, 0, 1)
	v, handlers := a.volume, a.changes.snapshot()
	a.mu.Unlock()
	notify(handlers, v)
	return v
}

func (a *Audio) current() float64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.volume
}
