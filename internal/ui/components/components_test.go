package components

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
)

func TestProgressBarFilled(t *testing.T) {
	tests := []struct {
		percent, width, want int
	}{
		{0, 20, 0},
		{40, 20, 8},
		{100, 20, 20},
		{150, 20, 20},
		{-3, 20, 0},
	}
	for _, tt := range tests {
		bar := NewProgressBar("", tt.percent, true, 40)
		assert.Equal(t, tt.want, bar.Filled(tt.width), "percent %d", tt.percent)
	}
}

func TestProgressBarViewShowsPercent(t *testing.T) {
	bar := NewProgressBar("Progress", 40, true, 40)
	assert.Contains(t, bar.View(), "40%")
	assert.Contains(t, bar.View(), "Progress")
	assert.NotContains(t, bar.View(), "lessons")

	bar.Detail = "2/5 lessons"
	assert.Contains(t, bar.View(), "2/5 lessons")
}

func TestMenuSkipsDisabled(t *testing.T) {
	var picked string
	pick := func(s string) func() tea.Cmd {
		return func() tea.Cmd {
			picked = s
			return nil
		}
	}
	m := NewMenu([]MenuItem{
		{Label: "Disabled", Disabled: true},
		{Label: "Open", Action: pick("open")},
		{Label: "Also disabled", Disabled: true},
		{Label: "Back", Action: pick("back")},
	})
	assert.Equal(t, 1, m.Selected)

	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	assert.Equal(t, 3, m.Selected)
	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	assert.Equal(t, 3, m.Selected)

	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	assert.Equal(t, "back", picked)

	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	assert.Equal(t, 1, m.Selected)
}

func TestTextInputTrimsValue(t *testing.T) {
	in := NewTextInput("Email", "you@example.com", false, 0)
	in.SetValue("  a@b.io ")
	assert.Equal(t, "a@b.io", in.Value())
	assert.Contains(t, in.View(), "Email")
}
