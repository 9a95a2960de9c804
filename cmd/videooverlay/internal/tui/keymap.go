package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	playPause, forward, backward,
	scrubBack, scrubForward,
	tap, mute, fullscreen,
	rotate, volumeUp, volumeDown,
	fail, retry,
	help, quit key.Binding
}

func newKeyMap() *keyMap {
	return &keyMap{
		playPause: key.NewBinding(
			key.WithKeys(" ", "k"),
			key.WithHelp("space", "play/pause"),
		),
		forward: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→", "skip +10s"),
		),
		backward: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←", "skip -10s"),
		),
		scrubBack: key.NewBinding(
			key.WithKeys(","),
			key.WithHelp(",", "drag seek bar back"),
		),
		scrubForward: key.NewBinding(
			key.WithKeys("."),
			key.WithHelp(".", "drag seek bar forward"),
		),
		tap: key.NewBinding(
			key.WithKeys("t", "enter"),
			key.WithHelp("t", "tap video"),
		),
		mute: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "mute"),
		),
		fullscreen: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "fullscreen"),
		),
		rotate: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "rotate device"),
		),
		volumeUp: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "os volume up"),
		),
		volumeDown: key.NewBinding(
			key.WithKeys("-"),
			key.WithHelp("-", "os volume down"),
		),
		fail: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "inject decode error"),
		),
		retry: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "retry"),
		),
		help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more keys"),
		),
		quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

func (k *keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.tap, k.playPause, k.fullscreen, k.retry, k.help, k.quit}
}

func (k *keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.tap, k.playPause, k.forward, k.backward, k.scrubBack, k.scrubForward},
		{k.mute, k.fullscreen, k.retry},
		{k.rotate, k.volumeUp, k.volumeDown, k.fail},
		{k.help, k.quit},
	}
}
