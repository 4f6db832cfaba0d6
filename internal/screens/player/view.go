package player

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/tidwall/gjson"

	"github.com/abhisek/lectern/internal/course"
	engine "github.com/abhisek/lectern/internal/player"
	"github.com/abhisek/lectern/internal/ui/components"
	"github.com/abhisek/lectern/internal/ui/layout"
	"github.com/abhisek/lectern/internal/ui/theme"
)

func (s *PlayerScreen) View(width, height int) string {
	switch s.ctrl.Phase() {
	case engine.PhaseReady:
		return s.renderReady(width, height)
	case engine.PhaseError:
		return renderError(width, height, s.ctrl.Err())
	case engine.PhaseIdle:
		return centered(width, height, theme.Hint.Render("Redirecting…"))
	}
	return centered(width, height, theme.Hint.Render("Loading course…"))
}

func centered(width, height int, content string) string {
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

func renderError(width, height int, err *engine.LoadError) string {
	var title, body string
	switch err.Reason {
	case engine.ReasonNotFound:
		title = "Course not found"
		body = "There is no course with this id."
	default:
		title = "Could not load this course"
		body = err.Err.Error() + "\n\npress r to retry"
	}
	content := theme.Failure.Render(title) + "\n\n" + theme.Hint.Render(body)
	return centered(width, height, content)
}

func (s *PlayerScreen) renderReady(width, height int) string {
	p := s.ctrl.Player()

	pb := components.NewProgressBar("Progress", p.PercentComplete(), true, width-2)
	// Before the first local completion the percentage is the server's.
	if done := len(p.CompletedLessonIDs()); done > 0 {
		_, total := p.Position()
		pb.Detail = fmt.Sprintf("%d/%d lessons", done, total)
	}
	bar := pb.View()
	statusLine := ""
	if s.status != "" {
		style := theme.Hint
		if s.statusErr {
			style = theme.Failure
		}
		statusLine = style.Render(s.status)
	}

	paneHeight := max(height-lipgloss.Height(bar)-1, 3)
	outlineWidth := max(min(width/3, 48), 24)
	if layout.IsCompactWidth(width) {
		outlineWidth = 24
	}
	lessonWidth := max(width-outlineWidth, 20)

	outline := theme.Pane.
		Width(outlineWidth).
		Height(paneHeight).
		Render(s.renderOutline(p, outlineWidth-4, paneHeight-2))
	lesson := theme.ActivePane.
		Width(lessonWidth).
		Height(paneHeight).
		Render(renderLesson(p, lessonWidth-4))

	return bar + "\n" + lipgloss.JoinHorizontal(lipgloss.Top, outline, lesson) + "\n" + statusLine
}

func (s *PlayerScreen) renderOutline(p *engine.Player, width, height int) string {
	rows := p.Outline()
	if len(rows) == 0 {
		return theme.Hint.Render("This course has no sections yet.")
	}
	s.cursor = min(s.cursor, len(rows)-1)
	s.adjustScroll(height)

	var lines []string
	for i := s.scroll; i < len(rows) && len(lines) < height; i++ {
		lines = append(lines, renderRow(rows[i], i == s.cursor, width))
	}
	return strings.Join(lines, "\n")
}

// adjustScroll keeps the cursor inside the visible window.
func (s *PlayerScreen) adjustScroll(height int) {
	if height <= 0 {
		return
	}
	if s.cursor < s.scroll {
		s.scroll = s.cursor
	}
	if s.cursor >= s.scroll+height {
		s.scroll = s.cursor - height + 1
	}
}

func renderRow(r engine.Row, selected bool, width int) string {
	var text string
	style := theme.Unselected

	switch r.Kind {
	case engine.RowSection:
		fold := "▸"
		if r.Expanded {
			fold = "▾"
		}
		count := fmt.Sprintf(" %d/%d", r.Done, r.Total)
		text = fold + " " + layout.Truncate(r.Title, width-2-len(count)) + count
		style = theme.SectionHeader
	case engine.RowLesson:
		mark := "○"
		if r.Complete {
			mark = "✓"
			style = theme.Complete
		}
		if r.Active {
			mark = "▶"
		}
		text = "  " + mark + " " + layout.Truncate(r.Title, width-4)
	}

	if selected {
		style = theme.Selected
	}
	return style.Render(text)
}

func renderLesson(p *engine.Player, width int) string {
	ref, ok := p.ActiveLesson()
	if !ok {
		return theme.Hint.Render("This course has no lessons yet.")
	}
	l := ref.Lesson

	var b strings.Builder
	title := lipgloss.NewStyle().Bold(true).Foreground(theme.Text).Render(layout.Truncate(l.Title, width-8))
	if l.FreePreview {
		title += " " + theme.Badge.Render("FREE")
	}
	b.WriteString(title)
	b.WriteString("\n")

	i, total := p.Position()
	meta := []string{fmt.Sprintf("Lesson %d of %d", i+1, total)}
	if sec := p.Course().Section(ref.SectionID); sec != nil {
		meta = append([]string{sec.Title}, meta...)
	}
	if l.DurationSecs > 0 {
		meta = append(meta, formatDuration(l.DurationSecs))
	}
	if p.IsComplete(l.ID) {
		meta = append(meta, "completed")
	}
	b.WriteString(theme.Hint.Render(layout.Truncate(strings.Join(meta, " · "), width)))
	b.WriteString("\n\n")

	if l.VideoURL != "" {
		b.WriteString(theme.Body.Render("▶ " + layout.Truncate(l.VideoURL, width-2)))
		b.WriteString("\n\n")
	}
	if l.Description != "" {
		b.WriteString(lipgloss.NewStyle().Width(width).Foreground(theme.Text).Render(l.Description))
		b.WriteString("\n\n")
	}
	if titles := resourceTitles(l); len(titles) > 0 {
		b.WriteString(theme.SectionHeader.Render("Resources"))
		b.WriteString("\n")
		for _, t := range titles {
			b.WriteString(theme.Body.Render("  • " + layout.Truncate(t, width-4)))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}
	if n := len(gjson.ParseBytes(l.CodeSnippets).Array()); n > 0 {
		b.WriteString(theme.Hint.Render(fmt.Sprintf("%d code snippet(s)", n)))
		b.WriteString("\n")
	}
	if len(l.Quiz) > 0 && gjson.ValidBytes(l.Quiz) {
		b.WriteString(theme.Hint.Render("This lesson has a quiz"))
		b.WriteString("\n")
	}

	nav := []string{}
	if p.CanGoPrevious() {
		nav = append(nav, "← p previous")
	}
	if p.CanGoNext() {
		nav = append(nav, "n next →")
	}
	b.WriteString("\n" + theme.Hint.Render(strings.Join(nav, "   ")))
	return b.String()
}

// resourceTitles lists the titles of a lesson's resources. Resources are
// opaque payloads; entries without a title fall back to their url.
func resourceTitles(l course.Lesson) []string {
	if len(l.Resources) == 0 {
		return nil
	}
	var out []string
	for _, r := range gjson.ParseBytes(l.Resources).Array() {
		switch {
		case r.Type == gjson.String:
			out = append(out, r.String())
		case r.Get("title").Exists():
			out = append(out, r.Get("title").String())
		case r.Get("url").Exists():
			out = append(out, r.Get("url").String())
		}
	}
	return out
}

func formatDuration(secs int) string {
	if secs >= 3600 {
		return fmt.Sprintf("%d:%02d:%02d", secs/3600, secs%3600/60, secs%60)
	}
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}
