package core

import "github.com/charmbracelet/lipgloss"

// Catppuccin Mocha.
var (
	ColorText     lipgloss.Color = "#cdd6f4"
	ColorMuted    lipgloss.Color = "#a6adc8"
	ColorBorder   lipgloss.Color = "#585b70"
	ColorBg       lipgloss.Color = "#1e1e2e"
	ColorAccent   lipgloss.Color = "#89b4fa"
	ColorBrand    lipgloss.Color = "#f5c2e7"
	ColorSuccess  lipgloss.Color = "#a6e3a1"
	ColorError    lipgloss.Color = "#f38ba8"
	ColorDisabled lipgloss.Color = "#6c7086"
	ColorSurface0 lipgloss.Color = "#313244"
	ColorMantle   lipgloss.Color = "#181825"
)
