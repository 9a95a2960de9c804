package player

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	overlayerrors "github.com/go-drift/videooverlay/pkg/errors"
	"github.com/go-drift/videooverlay/pkg/graphics"
	"github.com/go-drift/videooverlay/pkg/log"
	"github.com/go-drift/videooverlay/pkg/platform"
)

// Timing and geometry constants.
const (
	// ResetDelay lets a seek settle before playback resumes, and separates
	// the portrait lock from the chrome changes when leaving fullscreen.
	ResetDelay = 100 * time.Millisecond
	// AutoHideDelay is the inactivity period after which controls hide.
	AutoHideDelay = 3000 * time.Millisecond
	// TapGuardWindow is how long taps on the surface are ignored after one
	// toggles the controls.
	TapGuardWindow = 300 * time.Millisecond
	// SkipInterval is the forward/backward skip distance.
	SkipInterval = 10 * time.Second
	// NotchInset is removed from the landscape width on devices with a
	// display cutout.
	NotchInset = 75
)

var (
	// ErrNotMounted is returned by operations that need a mounted controller.
	ErrNotMounted = errors.New("player: not mounted")
	// ErrAlreadyMounted is returned when Mount is called a second time.
	ErrAlreadyMounted = errors.New("player: already mounted")
)

// Option customizes a Controller.
type Option func(*Controller)

// WithOnChange registers a callback invoked on the UI thread after every
// transition that changed the state.
func WithOnChange(fn func(State)) Option {
	return func(c *Controller) { c.onChange = fn }
}

// WithLogger replaces the component logger.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Controller) { c.logger = l }
}

// guards holds the pending timers that gate transitions. A nil field means
// nothing is pending.
type guards struct {
	tap         platform.Timer // held while a surface tap is being debounced
	hide        platform.Timer // auto-hide of the controls
	reset       platform.Timer // resume after rewinding from the end
	orientation platform.Timer // deferred portrait lock after fullscreen
}

// Controller is the playback UI state machine. It is not safe for concurrent
// use; see the package documentation.
type Controller struct {
	cfg    Config
	svc    Services
	id     string
	logger zerolog.Logger

	state       State
	decoder     Decoder
	durationSet bool
	guards      guards
	onChange    func(State)

	// Liveness token: created by Mount, canceled exactly once by Unmount.
	ctx         context.Context
	cancel      context.CancelFunc
	released    bool
	unsubscribe []func()

	// stopAutoUnmount detaches the parent-cancellation hook.
	stopAutoUnmount func() bool
}

// New creates a controller. Nothing is acquired until Mount.
func New(cfg Config, svc Services, opts ...Option) *Controller {
	id := uuid.NewString()
	c := &Controller{
		cfg:    cfg,
		svc:    svc,
		id:     id,
		logger: log.WithComponent("player").With().Str(log.FieldInstance, id).Logger(),
		state:  initialState(cfg),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ID returns the instance id attached to log entries.
func (c *Controller) ID() string {
	return c.id
}

// Config returns the configuration the controller was created with.
func (c *Controller) Config() Config {
	return c.cfg
}

// State returns a copy of the current state.
func (c *Controller) State() State {
	return c.state
}

// View renders the current state.
func (c *Controller) View() View {
	return BuildView(c.state, c.cfg)
}

// Mount acquires the decoder, the volume and dimension subscriptions and
// starts the initial volume query. The controller stays alive until Unmount
// or until ctx is canceled; cancellation posts an Unmount to the scheduler.
func (c *Controller) Mount(ctx context.Context) error {
	if c.ctx != nil {
		return ErrAlreadyMounted
	}
	if err := c.cfg.Validate(); err != nil {
		return err
	}
	if err := c.svc.validate(); err != nil {
		return err
	}
	c.ctx, c.cancel = context.WithCancel(ctx)
	c.stopAutoUnmount = context.AfterFunc(c.ctx, func() {
		c.svc.Scheduler.Post(c.Unmount)
	})

	c.unsubscribe = append(c.unsubscribe,
		c.svc.Volume.Listen(func(v float64) {
			if c.alive() {
				c.SystemVolumeChanged(v)
			}
		}),
		c.svc.Dimensions.Listen(func(size graphics.Size) {
			if c.alive() {
				c.DimensionsChanged(size)
			}
		}),
	)
	c.DimensionsChanged(c.svc.Dimensions.Size())
	c.mountDecoder()
	c.fetchVolume(c.ctx)

	c.logger.Info().
		Str(log.FieldSource, c.cfg.Source.URI).
		Bool("autoplay", c.cfg.Autoplay).
		Msg("player mounted")
	return nil
}

// Unmount releases everything Mount acquired and stops every pending timer.
// Callbacks that arrive afterwards are ignored. It is idempotent.
func (c *Controller) Unmount() {
	if c.cancel == nil || c.released {
		return
	}
	c.released = true
	c.stopAutoUnmount()
	c.cancel()
	for _, cancel := range c.unsubscribe {
		cancel()
	}
	c.unsubscribe = nil
	c.stopTimer(&c.guards.tap)
	c.stopTimer(&c.guards.hide)
	c.stopTimer(&c.guards.reset)
	c.stopTimer(&c.guards.orientation)
	if c.decoder != nil {
		c.decoder.Dispose()
		c.decoder = nil
	}
	c.logger.Info().Msg("player unmounted")
}

// alive reports whether asynchronous work may still touch the state.
func (c *Controller) alive() bool {
	return c.ctx != nil && c.ctx.Err() == nil
}

// update applies a transition, pushes changed decoder props and notifies
// the change callback.
func (c *Controller) update(fn func(*State)) {
	old := c.state
	fn(&c.state)
	next := c.state
	if next == old {
		return
	}
	c.syncDecoder(old, next, false)
	if old.Playback() != next.Playback() {
		c.logger.Debug().
			Stringer(log.FieldOldState, old.Playback()).
			Stringer(log.FieldNewState, next.Playback()).
			Float64(log.FieldPosition, next.Position()).
			Msg("playback transition")
	}
	if c.onChange != nil {
		c.onChange(next)
	}
}

// syncDecoder pushes the paused, muted and volume props that differ between
// old and next, or all of them when force is set.
func (c *Controller) syncDecoder(old, next State, force bool) {
	if c.decoder == nil {
		return
	}
	if force || old.Paused != next.Paused {
		c.decoderCall("SetPaused", c.decoder.SetPaused(next.Paused))
	}
	if force || old.Mute.Muted != next.Mute.Muted {
		c.decoderCall("SetMuted", c.decoder.SetMuted(next.Mute.Muted))
	}
	if force || old.Mute.Effective() != next.Mute.Effective() {
		c.decoderCall("SetVolume", c.decoder.SetVolume(next.Mute.Effective()))
	}
}

func (c *Controller) decoderCall(op string, err error) {
	if err == nil {
		return
	}
	overlayerrors.Report(&overlayerrors.OverlayError{
		Op:   "player.decoder." + op,
		Kind: overlayerrors.KindPlatform,
		Err:  err,
	})
}

// schedule arms the timer in slot, stopping whatever it held. The callback
// only runs if the slot still holds the same timer and the controller is
// alive.
func (c *Controller) schedule(slot *platform.Timer, d time.Duration, fn func()) {
	c.stopTimer(slot)
	var t platform.Timer
	t = c.svc.Scheduler.AfterFunc(d, func() {
		if *slot != t {
			return
		}
		*slot = nil
		if !c.alive() {
			return
		}
		fn()
	})
	*slot = t
}

func (c *Controller) stopTimer(slot *platform.Timer) {
	if *slot != nil {
		(*slot).Stop()
		*slot = nil
	}
}
