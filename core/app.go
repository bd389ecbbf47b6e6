package core

import (
	tea "github.com/charmbracelet/bubbletea"
)

type Screen interface {
	Update(msg tea.Msg) (Screen, tea.Cmd, bool)
	View(width, height int) string
	Scope() string
	Title() string
}

// CompletionHook is invoked when onboarding reports completion. Its error is
// kept on the model for the caller to report after the program exits.
type CompletionHook func(OnboardingCompleteMsg) error

type Model struct {
	width      int
	height     int
	title      string
	screens    ScreenStack
	keys       *KeyRegistry
	status     string
	statusErr  bool
	quitting   bool
	completed  bool
	onComplete CompletionHook
	err        error
}

func NewModel(title string, keys *KeyRegistry, root Screen, onComplete CompletionHook) Model {
	m := Model{
		title:      title,
		keys:       keys,
		onComplete: onComplete,
		status:     "Ready",
		width:      100,
		height:     32,
	}
	m.screens.Push(root)
	return m
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m *Model) SetError(err error) {
	if err == nil {
		m.status = ""
		m.statusErr = false
		return
	}
	m.status = err.Error()
	m.statusErr = true
}

func (m Model) ActiveScope() string {
	if top := m.screens.Top(); top != nil {
		return top.Scope()
	}
	return "app"
}

// Completed reports whether onboarding signalled completion.
func (m Model) Completed() bool {
	return m.completed
}

// Err is the completion hook's error, if any.
func (m Model) Err() error {
	return m.err
}

// bodySize is the area left to the top screen after the header, status bar
// and footer.
func (m Model) bodySize() (int, int) {
	return max(1, m.width), max(0, m.height-3)
}
