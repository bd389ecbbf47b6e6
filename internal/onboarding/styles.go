package onboarding

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/jask/onboard/core"
)

var (
	panelStyle   = lipgloss.NewStyle().Padding(1, 4).Align(lipgloss.Center)
	stepTagStyle = lipgloss.NewStyle().Foreground(core.ColorMuted)
	headingStyle = lipgloss.NewStyle().Foreground(core.ColorBrand).Bold(true)
	descStyle    = lipgloss.NewStyle().Foreground(core.ColorText)
	imageStyle   = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(core.ColorBorder).
			Foreground(core.ColorMuted).
			Padding(1, 6)
	checkStyle = lipgloss.NewStyle().Foreground(core.ColorSuccess)

	dotActiveStyle   = lipgloss.NewStyle().Foreground(core.ColorAccent).Bold(true)
	dotInactiveStyle = lipgloss.NewStyle().Foreground(core.ColorBorder)

	buttonStyle = lipgloss.NewStyle().
			Foreground(core.ColorBg).
			Background(core.ColorAccent).
			Bold(true).
			Padding(0, 2)
	buttonDisabledStyle = lipgloss.NewStyle().
				Foreground(core.ColorDisabled).
				Background(core.ColorSurface0).
				Padding(0, 2)
	linkStyle = lipgloss.NewStyle().Foreground(core.ColorMuted).Underline(true)
)

const (
	dotActive   = "●"
	dotInactive = "○"
	checkMark   = "✓"
)
