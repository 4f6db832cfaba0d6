package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/lectern/internal/ui/theme"
)

// ProgressBar displays a horizontal course progress bar.
type ProgressBar struct {
	Label       string
	Percent     int // 0..100
	ShowPercent bool
	Width       int

	// Detail is shown after the percentage, e.g. "3/8 lessons".
	Detail string
}

// NewProgressBar creates a new progress bar.
func NewProgressBar(label string, percent int, showPercent bool, width int) ProgressBar {
	return ProgressBar{
		Label:       label,
		Percent:     percent,
		ShowPercent: showPercent,
		Width:       width,
	}
}

// Filled returns how many of barWidth cells are filled.
func (p ProgressBar) Filled(barWidth int) int {
	pct := max(0, min(100, p.Percent))
	return barWidth * pct / 100
}

// View renders the progress bar.
func (p ProgressBar) View() string {
	var result string

	if p.Label != "" {
		result += lipgloss.NewStyle().Foreground(theme.Text).Render(p.Label) + "  "
	}

	labelWidth := lipgloss.Width(result)
	percentWidth := 0
	if p.ShowPercent {
		percentWidth = 6 // "  100%"
	}
	detail := ""
	if p.Detail != "" {
		detail = "  " + p.Detail
	}

	barWidth := max(p.Width-labelWidth-percentWidth-lipgloss.Width(detail), 4)
	filled := p.Filled(barWidth)

	result += theme.ProgressFilled.Render(strings.Repeat(" ", filled)) +
		theme.ProgressEmpty.Render(strings.Repeat(" ", barWidth-filled))

	if p.ShowPercent {
		result += lipgloss.NewStyle().
			Foreground(theme.TextDim).
			Render(fmt.Sprintf("  %d%%", max(0, min(100, p.Percent))))
	}
	if detail != "" {
		result += lipgloss.NewStyle().Foreground(theme.TextDim).Render(detail)
	}

	return result
}
