package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/go-drift/videooverlay/pkg/graphics"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FAFAFA")).Background(lipgloss.Color("#7D56F4")).Padding(0, 1)
	stateStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	iconStyle  = lipgloss.NewStyle().Padding(0, 1).Border(lipgloss.NormalBorder(), false, true)
	boxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Align(lipgloss.Center, lipgloss.Center)
)

// terminalColor drops the alpha channel, which terminals cannot render.
func terminalColor(c graphics.Color) lipgloss.Color {
	return lipgloss.Color(fmt.Sprintf("#%06X", uint32(c)&0x00FFFFFF))
}
