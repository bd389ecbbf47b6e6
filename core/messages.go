package core

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/onboard/internal/config"
)

type StatusMsg struct {
	Text  string
	IsErr bool
}

// OnboardingCompleteMsg is the exit signal from the onboarding screen to
// whatever owns navigation.
type OnboardingCompleteMsg struct {
	At time.Time
}

// ConfigReloadedMsg carries a configuration re-read from disk.
type ConfigReloadedMsg struct {
	Config config.Config
}

func StatusCmd(text string) tea.Cmd {
	return func() tea.Msg { return StatusMsg{Text: text} }
}

func OnboardingCompleteCmd(at time.Time) tea.Cmd {
	return func() tea.Msg { return OnboardingCompleteMsg{At: at} }
}
