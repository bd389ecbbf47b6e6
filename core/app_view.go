package core

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	header := renderHeader(m)
	status := RenderStatusBar(m)
	footer := RenderFooter(m)
	width, bodyHeight := m.bodySize()

	var body string
	if top := m.screens.Top(); top != nil && bodyHeight > 0 {
		body = top.View(width, bodyHeight)
	}
	body = fitHeight(body, bodyHeight)
	view := strings.Join([]string{header, body, status, footer}, "\n")
	view = fitHeight(view, max(1, m.height))
	return appStyle.Width(width).MaxWidth(width).Render(view)
}

func renderHeader(m Model) string {
	left := headerAppStyle.Render(m.title)
	right := ""
	if top := m.screens.Top(); top != nil {
		right = headerTitleStyle.Render(top.Title())
	}
	right = ansi.Truncate(right, max(1, m.width), "")
	leftW := ansi.StringWidth(left)
	rightW := ansi.StringWidth(right)
	gap := 1
	if leftW+rightW+1 < m.width {
		gap = m.width - leftW - rightW
	}
	return renderHeaderBar(headerBarStyle, max(1, m.width), left+strings.Repeat(" ", gap)+right)
}

func renderHeaderBar(style lipgloss.Style, width int, line string) string {
	line = ansi.Truncate(strings.ReplaceAll(line, "\n", " "), width, "")
	lineW := ansi.StringWidth(line)
	if lineW < width {
		line += strings.Repeat(" ", width-lineW)
	}
	return style.Width(width).MaxWidth(width).Render(line)
}
