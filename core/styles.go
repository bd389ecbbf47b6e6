package core

import "github.com/charmbracelet/lipgloss"

var (
	appStyle = lipgloss.NewStyle().Foreground(ColorText)

	headerAppStyle   = lipgloss.NewStyle().Foreground(ColorBrand).Bold(true)
	headerTitleStyle = lipgloss.NewStyle().Foreground(ColorMuted)

	headerBarStyle = lipgloss.NewStyle().
			Background(ColorMantle).
			Foreground(ColorText)

	statusBarStyle = lipgloss.NewStyle().
			Foreground(ColorSuccess).
			Background(ColorSurface0)
	statusErrBarStyle = lipgloss.NewStyle().
				Foreground(ColorError).
				Background(ColorSurface0)
	footerStyle = lipgloss.NewStyle().
			Background(ColorMantle)
)
