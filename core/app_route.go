package core

import (
	tea "github.com/charmbracelet/bubbletea"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		w, h := m.bodySize()
		return m.routeToScreen(tea.WindowSizeMsg{Width: w, Height: h})
	case StatusMsg:
		m.status = msg.Text
		m.statusErr = msg.IsErr
		return m, nil
	case OnboardingCompleteMsg:
		m.completed = true
		if m.onComplete != nil {
			if err := m.onComplete(msg); err != nil {
				m.err = err
				m.SetError(err)
			}
		}
		return m, nil
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.quitting = true
			return m, tea.Quit
		}
		if m.screens.Top() == nil && m.keys.IsAction(msg, ActionQuit, m.ActiveScope()) {
			m.quitting = true
			return m, tea.Quit
		}
	}
	return m.routeToScreen(msg)
}

func (m Model) routeToScreen(msg tea.Msg) (tea.Model, tea.Cmd) {
	top := m.screens.Top()
	if top == nil {
		return m, nil
	}
	next, cmd, pop := top.Update(msg)
	if pop {
		m.screens.Pop()
		return m.quitIfEmpty(cmd)
	}
	m.screens.ReplaceTop(next)
	return m, cmd
}

// quitIfEmpty quits once the last screen is gone, after cmd has been
// delivered so a final message such as OnboardingCompleteMsg is not lost.
func (m Model) quitIfEmpty(cmd tea.Cmd) (tea.Model, tea.Cmd) {
	if m.screens.Len() > 0 {
		return m, cmd
	}
	m.quitting = true
	if cmd == nil {
		return m, tea.Quit
	}
	return m, tea.Sequence(cmd, tea.Quit)
}
