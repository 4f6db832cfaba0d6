// Package listing is the landing screen: it lists courses recently opened
// on this machine so they can be resumed.
package listing

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lectern/internal/auth"
	"github.com/abhisek/lectern/internal/router"
	"github.com/abhisek/lectern/internal/screen"
	"github.com/abhisek/lectern/internal/store"
	"github.com/abhisek/lectern/internal/ui/components"
	"github.com/abhisek/lectern/internal/ui/layout"
	"github.com/abhisek/lectern/internal/ui/theme"
)

// recentLimit bounds how much of the journal is scanned for recent courses.
const recentLimit = 200

type recentMsg struct {
	courseIDs []string
	err       error
}

// ListingScreen shows recently opened courses.
type ListingScreen struct {
	events  store.EventRepo
	session *auth.Session
	loaded  bool
	recent  []string
	menu    components.Menu
}

var _ screen.Screen = (*ListingScreen)(nil)
var _ screen.KeyHintProvider = (*ListingScreen)(nil)

// New creates a ListingScreen. events may be nil.
func New(events store.EventRepo, sess *auth.Session) *ListingScreen {
	return &ListingScreen{events: events, session: sess}
}

func (s *ListingScreen) Init() tea.Cmd {
	if s.events == nil {
		return func() tea.Msg { return recentMsg{} }
	}
	events, userID := s.events, s.session.ID()
	return func() tea.Msg {
		ids, err := RecentCourses(context.Background(), events, userID)
		return recentMsg{courseIDs: ids, err: err}
	}
}

// RecentCourses returns the distinct courses userID opened, most recent
// first.
func RecentCourses(ctx context.Context, events store.EventRepo, userID string) ([]string, error) {
	evs, err := events.QueryPlayerEvents(ctx, store.QueryOpts{Limit: recentLimit})
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool)
	var ids []string
	for _, e := range evs {
		if e.Action != store.ActionOpened || e.UserID != userID || seen[e.CourseID] {
			continue
		}
		seen[e.CourseID] = true
		ids = append(ids, e.CourseID)
	}
	return ids, nil
}

func (s *ListingScreen) Title() string {
	return "Courses"
}

func (s *ListingScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Open"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (s *ListingScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case recentMsg:
		s.loaded = true
		s.recent = msg.courseIDs
		items := make([]components.MenuItem, 0, len(s.recent))
		for _, id := range s.recent {
			items = append(items, components.MenuItem{
				Label:  id,
				Action: func() tea.Cmd { return router.Navigate(auth.PlayerRoute(id)) },
			})
		}
		s.menu = components.NewMenu(items)
		return s, nil
	case tea.KeyMsg:
		var cmd tea.Cmd
		s.menu, cmd = s.menu.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *ListingScreen) View(width, height int) string {
	var parts []string
	if !layout.IsCompactHeight(height) {
		parts = append(parts, RenderBanner(width), "")
	}

	switch {
	case !s.loaded:
		parts = append(parts, theme.Hint.Render("Loading…"))
	case len(s.recent) == 0:
		parts = append(parts, theme.Body.Render("No courses opened yet."),
			theme.Hint.Render("Start one with: lectern play <course-id>"))
	default:
		parts = append(parts, theme.Subtitle.Render("Continue learning"), "", s.menu.View())
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, strings.Join(parts, "\n"))
}
