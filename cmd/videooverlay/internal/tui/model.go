// Package tui renders the player overlay in a terminal and maps keys to the
// gestures a touch screen would produce.
package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/samber/lo"

	"github.com/go-drift/videooverlay/cmd/videooverlay/internal/config"
	"github.com/go-drift/videooverlay/cmd/videooverlay/internal/sim"
	overlayerrors "github.com/go-drift/videooverlay/pkg/errors"
	"github.com/go-drift/videooverlay/pkg/log"
	"github.com/go-drift/videooverlay/pkg/player"
	"github.com/go-drift/videooverlay/pkg/poster"
)

// scrubStep is how far one key press drags the seek bar.
const scrubStep = 0.05

// volumeStep is how far one key press moves the OS volume.
const volumeStep = 0.1

// Options configures the preview model.
type Options struct {
	Config config.Config
	World  *sim.World
	Engine *sim.Engine
}

type mountMsg struct{}

// ReloadMsg carries a configuration reloaded from disk. The player is
// remounted with the new settings; the simulated device keeps running.
type ReloadMsg struct {
	Config config.Config
}

// errorMsg surfaces a reported overlay error in the status line.
type errorMsg struct {
	err error
}

// Model is the bubbletea model of the preview. Update runs on the program's
// event loop, which is the UI thread of the player.
type Model struct {
	ctx    context.Context
	cfg    config.Config
	world  *sim.World
	engine *sim.Engine
	ctrl   *player.Controller
	logger zerolog.Logger

	keys    *keyMap
	help    help.Model
	spinner spinner.Model
	bar     progress.Model

	poster  string
	width   int
	status  string
	failure string
	reloads int
}

// New creates the preview model. ctx bounds the lifetime of the player.
func New(ctx context.Context, opts Options) *Model {
	m := &Model{
		ctx:    ctx,
		cfg:    opts.Config,
		world:  opts.World,
		engine: opts.Engine,
		logger: log.WithComponent("tui"),
		keys:   newKeyMap(),
		help:   help.New(),
	}
	m.applyTheme()
	return m
}

func (m *Model) applyTheme() {
	p := m.cfg.Player
	m.spinner = spinner.New(spinner.WithSpinner(spinner.Dot))
	m.spinner.Style = m.spinner.Style.Foreground(terminalColor(p.LoaderColor))
	m.bar = progress.New(
		progress.WithSolidFill(string(terminalColor(p.ThumbColor))),
		progress.WithoutPercentage(),
		progress.WithWidth(24),
	)
}

// Controller returns the mounted player, or nil before the first mount.
func (m *Model) Controller() *player.Controller {
	return m.ctrl
}

// Init mounts the player once the program is running.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, mount)
}

func mount() tea.Msg { return mountMsg{} }

// Update handles keys, dispatched callbacks and lifecycle messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case callbackMsg:
		m.run(msg)
		return m, nil

	case mountMsg:
		m.mount()
		return m, nil

	case ReloadMsg:
		return m, m.reload(msg.Config)

	case errorMsg:
		m.failure = msg.err.Error()
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m, m.handleKey(msg)
	}
	return m, nil
}

// run executes a dispatched callback. A panic is reported and the preview
// keeps running.
func (m *Model) run(cb func()) {
	defer overlayerrors.Recover("tui.dispatch")
	cb()
}

// Shutdown unmounts the player. It is safe to call more than once.
func (m *Model) Shutdown() {
	if m.ctrl != nil {
		m.ctrl.Unmount()
	}
}

func (m *Model) mount() {
	c := player.New(m.cfg.Player, m.world.Services(m.engine.NewDecoder))
	if err := c.Mount(m.ctx); err != nil {
		m.failure = err.Error()
		m.logger.Error().Err(err).Msg("mount failed")
		return
	}
	m.ctrl = c
	m.failure = ""
	m.poster = describePoster(m.cfg.Player.Thumbnail)
	m.logger.Info().Str(log.FieldInstance, c.ID()).Str(log.FieldSource, m.cfg.Player.Source.URI).Msg("player mounted")
}

func (m *Model) reload(cfg config.Config) tea.Cmd {
	if cfg.Preview != m.cfg.Preview {
		m.status = "preview settings change on restart"
	} else {
		m.status = "configuration reloaded"
	}
	m.Shutdown()
	m.ctrl = nil
	m.cfg.Player = cfg.Player
	m.cfg.Log = cfg.Log
	m.reloads++
	m.applyTheme()
	return mount
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.quit):
		m.Shutdown()
		return tea.Quit
	case key.Matches(msg, m.keys.help):
		m.help.ShowAll = !m.help.ShowAll
		return nil
	case key.Matches(msg, m.keys.rotate):
		m.world.Screen.Rotate()
		return nil
	case key.Matches(msg, m.keys.volumeUp):
		m.world.Audio.Step(volumeStep)
		return nil
	case key.Matches(msg, m.keys.volumeDown):
		m.world.Audio.Step(-volumeStep)
		return nil
	case key.Matches(msg, m.keys.fail):
		m.engine.InjectError()
		return nil
	}

	c := m.ctrl
	if c == nil {
		return nil
	}
	m.status = ""
	switch {
	case key.Matches(msg, m.keys.tap):
		c.TapSurface()
	case key.Matches(msg, m.keys.retry):
		if !c.View().RetryPrompt {
			return nil
		}
		if err := c.Retry(); err != nil {
			m.status = err.Error()
		}
	case key.Matches(msg, m.keys.playPause):
		m.press(c.TogglePlayPause)
	case key.Matches(msg, m.keys.forward):
		m.press(c.SeekForward)
	case key.Matches(msg, m.keys.backward):
		m.press(c.SeekBackward)
	case key.Matches(msg, m.keys.mute):
		m.press(c.ToggleMute)
	case key.Matches(msg, m.keys.fullscreen):
		m.press(c.ToggleFullScreen)
	case key.Matches(msg, m.keys.scrubForward):
		m.press(func() { m.scrub(scrubStep) })
	case key.Matches(msg, m.keys.scrubBack):
		m.press(func() { m.scrub(-scrubStep) })
	}
	return nil
}

// press runs fn as a touch on the control surface. Hidden controls cannot
// be pressed.
func (m *Model) press(fn func()) {
	c := m.ctrl
	if c.View().Controls == nil {
		m.status = "controls are hidden, tap the video first"
		return
	}
	c.ControlsTouchStarted()
	fn()
	c.ControlsTouchEnded()
}

func (m *Model) scrub(delta float64) {
	c := m.ctrl
	c.SeekBarSlidingStarted()
	c.SeekBarChanged(lo.Clamp(c.State().SeekFraction+delta, 0, 1))
	c.SeekBarSlidingEnded()
}

// describePoster labels the thumbnail with its format and size when it is a
// readable local image.
func describePoster(ref string) string {
	info, ok, err := poster.ProbeLocal(ref)
	switch {
	case err != nil:
		return ref + " (unreadable)"
	case !ok:
		return ref
	}
	return fmt.Sprintf("%s %s %.0fx%.0f", ref, info.Format, info.Size.Width, info.Size.Height)
}

func percent(v float64) string {
	return fmt.Sprintf("%d%%", int(v*100+0.5))
}
