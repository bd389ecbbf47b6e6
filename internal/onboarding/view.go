package onboarding

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/jask/onboard/internal/catalog"
)

// View renders the visible slice of the step strip plus the indicator and
// control rows.
func (s *Screen) View(width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	panelHeight := max(1, height-2)
	strip := s.renderStrip(width, panelHeight)
	return lipgloss.JoinVertical(lipgloss.Left,
		strip,
		s.renderIndicator(width),
		s.renderControls(width),
	)
}

// renderStrip lays every step out side by side and cuts the window that the
// current offset exposes.
func (s *Screen) renderStrip(width, height int) string {
	steps := s.catalog.Steps()
	panels := make([]string, len(steps))
	for i, step := range steps {
		panels[i] = renderPanel(step, width, height)
	}
	full := lipgloss.JoinHorizontal(lipgloss.Top, panels...)

	col := s.stripColumn(width, len(steps))
	lines := strings.Split(full, "\n")
	for i, line := range lines {
		lines[i] = ansi.Cut(line, col, col+width)
	}
	return strings.Join(lines, "\n")
}

// stripColumn converts the dp offset to the first visible column.
func (s *Screen) stripColumn(width, steps int) int {
	col := int(math.Round(-s.machine.Offset() * s.geom.density / s.geom.cellWidth))
	return min(max(col, 0), (steps-1)*width)
}

func renderPanel(step catalog.Step, width, height int) string {
	inner := max(1, width-panelStyle.GetHorizontalFrameSize())
	parts := []string{
		stepTagStyle.Render(step.Title),
		"",
	}
	if step.ImageRef != "" {
		parts = append(parts, imageStyle.Render(step.ImageRef), "")
	}
	parts = append(parts,
		headingStyle.Width(inner).Render(step.Heading),
		"",
		descStyle.Width(inner).Render(step.Description),
	)
	if step.ShowChecklist && len(step.Checklist) > 0 {
		items := make([]string, len(step.Checklist))
		for i, item := range step.Checklist {
			items[i] = checkStyle.Render(checkMark) + " " + item
		}
		parts = append(parts, "", lipgloss.JoinVertical(lipgloss.Left, items...))
	}
	return panelStyle.
		Width(width).
		MaxWidth(width).
		Height(height).
		MaxHeight(height).
		Render(lipgloss.JoinVertical(lipgloss.Center, parts...))
}

func (s *Screen) renderIndicator(width int) string {
	total := s.machine.Steps()
	current := s.machine.CurrentStep()
	dots := make([]string, total)
	for i := range dots {
		if i+1 == current {
			dots[i] = dotActiveStyle.Render(dotActive)
		} else {
			dots[i] = dotInactiveStyle.Render(dotInactive)
		}
	}
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, strings.Join(dots, " "))
}

// renderControls shows Skip while steps remain and Get Started, enabled only
// on the last step.
func (s *Screen) renderControls(width int) string {
	left := ""
	if !s.lastStep() {
		left = linkStyle.Render("Skip")
	}
	right := buttonDisabledStyle.Render("Get Started")
	if s.lastStep() {
		right = buttonStyle.Render("Get Started")
	}
	gap := width - ansi.StringWidth(left) - ansi.StringWidth(right) - 2
	if gap < 1 {
		return ansi.Truncate(left+" "+right, width, "")
	}
	return " " + left + strings.Repeat(" ", gap) + right + " "
}
