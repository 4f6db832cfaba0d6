package player

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/lectern/internal/course"
)

func newTestTracker(server int, sizes ...int) *Tracker {
	c := testCourse("c1", sizes...)
	return NewTracker(c.ID, server, course.Flatten(c))
}

func TestTracker_PercentMatchesCompletedFraction(t *testing.T) {
	tr := newTestTracker(0, 3, 2)
	ids := course.Flatten(testCourse("c1", 3, 2)).IDs()

	want := []int{20, 40, 60, 80, 100}
	for i, id := range ids {
		rep, changed, err := tr.MarkComplete(id)
		require.NoError(t, err)
		assert.True(t, changed)
		assert.Equal(t, want[i], rep.Percent)
		assert.Equal(t, want[i], tr.Percent())
		assert.Equal(t, "c1", rep.CourseID)
	}
}

func TestTracker_ScenarioC(t *testing.T) {
	tr := newTestTracker(0, 3, 2)

	_, _, err := tr.MarkComplete("s0-l0")
	require.NoError(t, err)
	rep, changed, err := tr.MarkComplete("s0-l2")
	require.NoError(t, err)

	assert.True(t, changed)
	assert.Equal(t, 40, rep.Percent)
	assert.Equal(t, 40, tr.Percent())
}

func TestTracker_MarkCompleteIsIdempotent(t *testing.T) {
	tr := newTestTracker(0, 3)

	_, changed, err := tr.MarkComplete("s0-l1")
	require.NoError(t, err)
	require.True(t, changed)

	before := tr.Percent()
	rep, changed, err := tr.MarkComplete("s0-l1")
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, Report{}, rep)
	assert.Equal(t, before, tr.Percent())
	assert.Equal(t, []string{"s0-l1"}, tr.Completed())
}

func TestTracker_RejectsUnknownLesson(t *testing.T) {
	tr := newTestTracker(0, 2)

	_, changed, err := tr.MarkComplete("ghost")
	assert.ErrorIs(t, err, ErrUnknownLesson)
	assert.False(t, changed)
	assert.Empty(t, tr.Completed())
	assert.Equal(t, 0, tr.Percent())
}

func TestTracker_ServerPercentUntilFirstLocalCompletion(t *testing.T) {
	tr := newTestTracker(70, 2, 2)
	assert.Equal(t, 70, tr.Percent())
	assert.Empty(t, tr.Completed())

	_, _, err := tr.MarkComplete("s1-l0")
	require.NoError(t, err)
	assert.Equal(t, 25, tr.Percent())
}

func TestTracker_ServerPercentClamped(t *testing.T) {
	assert.Equal(t, 100, newTestTracker(140, 1).Percent())
	assert.Equal(t, 0, newTestTracker(-5, 1).Percent())
}

func TestTracker_EmptyCourse(t *testing.T) {
	tr := newTestTracker(0)
	assert.Equal(t, 0, tr.Percent())
	_, _, err := tr.MarkComplete("s0-l0")
	assert.ErrorIs(t, err, ErrUnknownLesson)
}

func TestTracker_CompletedInNavigationOrder(t *testing.T) {
	tr := newTestTracker(0, 2, 2)
	for _, id := range []string{"s1-l1", "s0-l0", "s1-l0"} {
		_, _, err := tr.MarkComplete(id)
		require.NoError(t, err)
	}
	assert.Equal(t, []string{"s0-l0", "s1-l0", "s1-l1"}, tr.Completed())

	done, total := tr.CompletedInSection("s1")
	assert.Equal(t, 2, done)
	assert.Equal(t, 2, total)
	done, total = tr.CompletedInSection("s0")
	assert.Equal(t, 1, done)
	assert.Equal(t, 2, total)
}

func TestPercentOf_Rounding(t *testing.T) {
	tests := []struct {
		done, total, want int
	}{
		{0, 0, 0},
		{0, 3, 0},
		{1, 3, 33},
		{2, 3, 67},
		{1, 8, 13},
		{3, 3, 100},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, percentOf(tt.done, tt.total), "%d/%d", tt.done, tt.total)
	}
}
