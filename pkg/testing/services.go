package testing

import (
	"context"
	"sync"

	"github.com/go-drift/videooverlay/pkg/graphics"
	"github.com/go-drift/videooverlay/pkg/platform"
)

// FakeOrientation records orientation locks.
type FakeOrientation struct {
	log *CallLog

	mu     sync.Mutex
	locked string
}

func (o *FakeOrientation) LockToPortrait() {
	o.log.record("orientation", "LockToPortrait", nil)
	o.set("portrait")
}

func (o *FakeOrientation) LockToLandscape() {
	o.log.record("orientation", "LockToLandscape", nil)
	o.set("landscape")
}

func (o *FakeOrientation) set(v string) {
	o.mu.Lock()
	o.locked = v
	o.mu.Unlock()
}

// Locked returns "portrait", "landscape" or "" when never locked.
func (o *FakeOrientation) Locked() string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.locked
}

// FakeImmersive records immersive mode toggles.
type FakeImmersive struct {
	log *CallLog

	mu      sync.Mutex
	enabled bool
}

func (i *FakeImmersive) On() {
	i.log.record("immersive", "On", nil)
	i.mu.Lock()
	i.enabled = true
	i.mu.Unlock()
}

func (i *FakeImmersive) Off() {
	i.log.record("immersive", "Off", nil)
	i.mu.Lock()
	i.enabled = false
	i.mu.Unlock()
}

// Enabled reports whether immersive mode is on.
func (i *FakeImmersive) Enabled() bool {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.enabled
}

// FakeStatusBar records status bar visibility.
type FakeStatusBar struct {
	log *CallLog

	mu     sync.Mutex
	hidden bool
}

func (s *FakeStatusBar) SetHidden(hidden bool) {
	s.log.record("statusBar", "SetHidden", hidden)
	s.mu.Lock()
	s.hidden = hidden
	s.mu.Unlock()
}

// Hidden reports whether the status bar is hidden.
func (s *FakeStatusBar) Hidden() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hidden
}

// listeners is a set of handlers keyed by registration order.
type listeners[T any] struct {
	mu       sync.Mutex
	next     int
	handlers map[int]func(T)
}

func (l *listeners[T]) add(h func(T)) (cancel func()) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.handlers == nil {
		l.handlers = make(map[int]func(T))
	}
	id := l.next
	l.next++
	l.handlers[id] = h
	return func() {
		l.mu.Lock()
		delete(l.handlers, id)
		l.mu.Unlock()
	}
}

func (l *listeners[T]) emit(v T) {
	l.mu.Lock()
	hs := make([]func(T), 0, len(l.handlers))
	for i := 0; i < l.next; i++ {
		if h, ok := l.handlers[i]; ok {
			hs = append(hs, h)
		}
	}
	l.mu.Unlock()
	for _, h := range hs {
		h(v)
	}
}

func (l *listeners[T]) count() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.handlers)
}

// FakeVolume is a controllable OS volume.
type FakeVolume struct {
	mu      sync.Mutex
	current float64
	err     error
	gate    chan struct{}

	listeners listeners[float64]
}

// Volume returns the current volume. While a gate is set it blocks until the
// gate is released or ctx is done.
func (v *FakeVolume) Volume(ctx context.Context) (float64, error) {
	v.mu.Lock()
	gate := v.gate
	v.mu.Unlock()
	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return 0, ctx.Err()
		}
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.current, v.err
}

func (v *FakeVolume) Listen(handler func(float64)) (cancel func()) {
	return v.listeners.add(handler)
}

// Set changes the OS volume and notifies listeners synchronously.
func (v *FakeVolume) Set(volume float64) {
	v.mu.Lock()
	v.current = volume
	v.mu.Unlock()
	v.listeners.emit(volume)
}

// Fail makes Volume return err.
func (v *FakeVolume) Fail(err error) {
	v.mu.Lock()
	v.err = err
	v.mu.Unlock()
}

// Hold makes Volume block until the returned release function is called.
func (v *FakeVolume) Hold() (release func()) {
	gate := make(chan struct{})
	v.mu.Lock()
	v.gate = gate
	v.mu.Unlock()
	var once sync.Once
	return func() { once.Do(func() { close(gate) }) }
}

func (v *FakeVolume) held() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.gate == nil {
		return false
	}
	select {
	case <-v.gate:
		return false
	default:
		return true
	}
}

// Listeners returns the number of active subscriptions.
func (v *FakeVolume) Listeners() int {
	return v.listeners.count()
}

// FakeDimensions is a controllable window size.
type FakeDimensions struct {
	mu   sync.Mutex
	size graphics.Size

	listeners listeners[graphics.Size]
}

func (d *FakeDimensions) Size() graphics.Size {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.size
}

func (d *FakeDimensions) Listen(handler func(graphics.Size)) (cancel func()) {
	return d.listeners.add(handler)
}

// Resize changes the window size and notifies listeners synchronously.
func (d *FakeDimensions) Resize(size graphics.Size) {
	d.mu.Lock()
	d.size = size
	d.mu.Unlock()
	d.listeners.emit(size)
}

// Listeners returns the number of active subscriptions.
func (d *FakeDimensions) Listeners() int {
	return d.listeners.count()
}

// FakeDevice answers capability queries from its fields.
type FakeDevice struct {
	Notch    bool
	Platform platform.Family
}

func (d *FakeDevice) HasNotch() bool { return d.Notch }

func (d *FakeDevice) Family() platform.Family {
	if d.Platform == "" {
		return platform.FamilyOther
	}
	return d.Platform
}

// FakeHost records host surface patches.
type FakeHost struct {
	log *CallLog

	mu            sync.Mutex
	scrollEnabled bool
	offset        graphics.Offset
	style         platform.HostStyle
}

func (h *FakeHost) SetScrollEnabled(enabled bool) {
	h.log.record("host", "SetScrollEnabled", enabled)
	h.mu.Lock()
	h.scrollEnabled = enabled
	h.mu.Unlock()
}

func (h *FakeHost) ScrollTo(x, y float64) {
	h.log.record("host", "ScrollTo", graphics.Offset{X: x, Y: y})
	h.mu.Lock()
	h.offset = graphics.Offset{X: x, Y: y}
	h.mu.Unlock()
}

func (h *FakeHost) SetStyle(style platform.HostStyle) {
	h.log.record("host", "SetStyle", style)
	h.mu.Lock()
	h.style = style
	h.mu.Unlock()
}

// ScrollEnabled reports the last scroll-enabled patch.
func (h *FakeHost) ScrollEnabled() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.scrollEnabled
}

// Offset returns the last scroll offset.
func (h *FakeHost) Offset() graphics.Offset {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.offset
}

// Style returns the last style patch.
func (h *FakeHost) Style() platform.HostStyle {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.style
}
