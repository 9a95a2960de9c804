package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/samber/lo"

	"github.com/go-drift/videooverlay/cmd/videooverlay/internal/sim"
	"github.com/go-drift/videooverlay/pkg/player"
)

// Logical pixels per terminal cell.
const (
	pixelsPerColumn = 8
	pixelsPerRow    = 24
)

// View renders the overlay, the simulated device and the key help.
func (m *Model) View() string {
	var b strings.Builder
	b.WriteString(m.header())
	b.WriteString("\n")
	if m.ctrl != nil {
		b.WriteString(m.overlay(m.ctrl.View()))
		b.WriteString("\n")
	}
	b.WriteString(m.device())
	b.WriteString("\n")
	if m.failure != "" {
		b.WriteString(errorStyle.Render(m.failure))
		b.WriteString("\n")
	}
	if m.status != "" {
		b.WriteString(dimStyle.Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m *Model) header() string {
	title := titleStyle.Render("videooverlay")
	source := dimStyle.Render(m.cfg.Player.Source.URI)
	state := "unmounted"
	if m.ctrl != nil {
		state = m.ctrl.State().Playback().String()
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, title, " ", source, stateStyle.Render(state))
}

func (m *Model) overlay(v player.View) string {
	maxCols := 100
	if m.width > 4 {
		maxCols = m.width - 2
	}
	cols := lo.Clamp(int(v.PlayerSize.Width/pixelsPerColumn), 24, maxCols)
	rows := lo.Clamp(int(v.PlayerSize.Height/pixelsPerRow), 5, 30)

	box := boxStyle.Width(cols).Height(rows)
	if v.FullScreen {
		box = box.BorderForeground(lipgloss.Color("#FFFFFF"))
	}
	return box.Render(strings.Join(m.overlayLines(v), "\n"))
}

func (m *Model) overlayLines(v player.View) []string {
	if v.RetryPrompt {
		return []string{
			errorStyle.Render("playback failed"),
			"press r to retry",
		}
	}

	var lines []string
	if v.Poster != "" {
		lines = append(lines, dimStyle.Render("poster "+m.poster))
	}
	if v.Loader {
		lines = append(lines, m.spinner.View()+" loading")
	}
	c := v.Controls
	if c == nil {
		if len(lines) == 0 {
			lines = append(lines, dimStyle.Render("tap to show controls"))
		}
		return lines
	}

	buttons := lo.Compact([]string{c.BackwardIcon, c.PlayPauseIcon, c.ForwardIcon})
	lines = append(lines, icons(buttons...))

	m.bar.FullColor = string(terminalColor(c.SeekBar.ThumbColor))
	seek := fmt.Sprintf("%s %s %s", c.Elapsed, m.bar.ViewAs(c.SeekBar.Fraction), c.Total)
	if c.SeekBar.Busy {
		seek += " ◆"
	}
	lines = append(lines, seek)

	lines = append(lines, icons(lo.Compact([]string{c.MuteIcon, c.FullscreenIcon})...))
	return lines
}

func icons(names ...string) string {
	rendered := lo.Map(names, func(name string, _ int) string {
		return iconStyle.Render(name)
	})
	return lipgloss.JoinHorizontal(lipgloss.Center, rendered...)
}

func (m *Model) device() string {
	s := m.world.Snapshot()
	lock := string(s.Lock)
	if lock == "" {
		lock = "none"
	}
	orientation := "landscape"
	if s.Window.IsPortrait() {
		orientation = "portrait"
	}
	lines := []string{
		fmt.Sprintf("%s %.0fx%.0f %s · lock %s · immersive %s · status bar %s",
			s.Platform, s.Window.Width, s.Window.Height, orientation, lock,
			onOff(s.Immersive), lo.Ternary(s.StatusHidden, "hidden", "shown")),
		fmt.Sprintf("host scroll %s · padding top %.0f · background %s",
			onOff(s.ScrollEnabled), s.HostStyle.Padding.Top, s.HostStyle.Background),
		m.audio(s),
	}
	return dimStyle.Render(strings.Join(lines, "\n"))
}

func (m *Model) audio(s sim.Snapshot) string {
	line := "os volume " + percent(s.Volume)
	if m.ctrl == nil {
		return line
	}
	st := m.ctrl.State()
	line += " · player volume " + percent(st.Mute.Effective())
	if st.Mute.Muted {
		line += " (muted)"
	}
	return line
}

func onOff(b bool) string {
	return lo.Ternary(b, "on", "off")
}
