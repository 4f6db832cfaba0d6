package listing

import (
	"context"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/lectern/internal/auth"
	"github.com/abhisek/lectern/internal/router"
	"github.com/abhisek/lectern/internal/store"
)

type fakeEvents struct {
	events []store.PlayerEvent // newest first
}

func (f *fakeEvents) AppendPlayerEvent(context.Context, store.PlayerEventData) error { return nil }

func (f *fakeEvents) QueryPlayerEvents(context.Context, store.QueryOpts) ([]store.PlayerEvent, error) {
	return f.events, nil
}

func opened(user, courseID string) store.PlayerEvent {
	return store.PlayerEvent{PlayerEventData: store.PlayerEventData{UserID: user, CourseID: courseID, Action: store.ActionOpened}}
}

func TestRecentCourses(t *testing.T) {
	events := &fakeEvents{events: []store.PlayerEvent{
		opened("u1", "rust"),
		{PlayerEventData: store.PlayerEventData{UserID: "u1", CourseID: "sql", Action: store.ActionLessonViewed}},
		opened("u2", "k8s"),
		opened("u1", "go101"),
		opened("u1", "rust"),
	}}

	ids, err := RecentCourses(context.Background(), events, "u1")
	require.NoError(t, err)
	assert.Equal(t, []string{"rust", "go101"}, ids)
}

func TestListing_OpensCourse(t *testing.T) {
	events := &fakeEvents{events: []store.PlayerEvent{opened("u1", "rust"), opened("u1", "go101")}}
	s := New(events, &auth.Session{UserID: "u1", Token: "t"})
	s.Update(s.Init()())

	assert.Contains(t, s.View(120, 40), "go101")

	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	require.NotNil(t, cmd)
	nav, ok := cmd().(router.NavigateMsg)
	require.True(t, ok)
	assert.Equal(t, auth.PlayerRoute("go101"), nav.Route)
}

func TestListing_Empty(t *testing.T) {
	s := New(nil, nil)
	s.Update(s.Init()())
	assert.Contains(t, s.View(120, 40), "No courses opened yet.")
}
