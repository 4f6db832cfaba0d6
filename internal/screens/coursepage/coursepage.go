// Package coursepage shows a course's public page. Viewers who are signed
// in but not enrolled land here from the player.
package coursepage

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lectern/internal/api"
	"github.com/abhisek/lectern/internal/auth"
	"github.com/abhisek/lectern/internal/course"
	"github.com/abhisek/lectern/internal/router"
	"github.com/abhisek/lectern/internal/screen"
	"github.com/abhisek/lectern/internal/ui/components"
	"github.com/abhisek/lectern/internal/ui/layout"
	"github.com/abhisek/lectern/internal/ui/theme"
)

type courseInfoMsg struct {
	course *course.Course
	err    error
}

// CoursePageScreen shows a course summary and where to go next.
type CoursePageScreen struct {
	backend  api.Backend
	courseID string
	session  *auth.Session
	course   *course.Course
	err      error
	menu     components.Menu
}

var _ screen.Screen = (*CoursePageScreen)(nil)
var _ screen.KeyHintProvider = (*CoursePageScreen)(nil)

// New creates a CoursePageScreen for courseID.
func New(courseID string, sess *auth.Session, backend api.Backend) *CoursePageScreen {
	s := &CoursePageScreen{backend: backend, courseID: courseID, session: sess}
	s.menu = components.NewMenu([]components.MenuItem{
		{Label: "Open player", Action: func() tea.Cmd { return router.Navigate(auth.PlayerRoute(courseID)) }},
		{Label: "Sign in as someone else", Action: func() tea.Cmd {
			return router.Navigate(auth.LoginRoute(auth.PlayerRoute(courseID)))
		}},
		{Label: "Back to courses", Action: func() tea.Cmd { return router.Navigate(auth.ListingRoute()) }},
	})
	return s
}

func (s *CoursePageScreen) Init() tea.Cmd {
	backend, id := s.backend, s.courseID
	return func() tea.Msg {
		c, err := backend.GetCourse(context.Background(), id)
		return courseInfoMsg{course: c, err: err}
	}
}

func (s *CoursePageScreen) Title() string {
	if s.course != nil {
		return s.course.Title
	}
	return "Course"
}

func (s *CoursePageScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *CoursePageScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case courseInfoMsg:
		s.course, s.err = msg.course, msg.err
		return s, nil
	case tea.KeyMsg:
		var cmd tea.Cmd
		s.menu, cmd = s.menu.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *CoursePageScreen) View(width, height int) string {
	var parts []string

	switch {
	case s.course != nil:
		parts = append(parts, theme.Title.Render(s.course.Title))
		if s.course.Description != "" {
			parts = append(parts, "", lipgloss.NewStyle().Width(min(70, width-8)).Foreground(theme.Text).Render(s.course.Description))
		}
		parts = append(parts, "", theme.Hint.Render(fmt.Sprintf("%d sections · %d lessons · %d min",
			len(s.course.Sections), s.course.LessonCount(), s.course.TotalDuration()/60)))
	case s.err != nil:
		parts = append(parts, theme.Failure.Render("Could not load course details"))
	default:
		parts = append(parts, theme.Hint.Render("Loading…"))
	}

	notice := "You are not enrolled in this course."
	if s.session.Valid() && s.session.Email != "" {
		notice = fmt.Sprintf("%s is not enrolled in this course.", s.session.Email)
	}
	parts = append(parts, "", theme.Body.Render(notice), "", s.menu.View())

	card := theme.Card.Width(min(80, width)).Render(strings.Join(parts, "\n"))
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card)
}
