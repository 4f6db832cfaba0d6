package player

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlayer_InitialState(t *testing.T) {
	p := New(testCourse("c1", 3, 2), 35, nil)

	assert.Equal(t, "c1", p.Course().ID)
	assert.Equal(t, 5, p.Flat().Len())
	assert.Equal(t, "s0-l0", p.ActiveLessonID())
	assert.Equal(t, 35, p.PercentComplete())
	assert.Empty(t, p.CompletedLessonIDs())
	assert.Equal(t, []string{"s0"}, p.ExpandedSectionIDs())
}

func TestPlayer_MarkCompleteReturnsWriteThrough(t *testing.T) {
	p := New(testCourse("c1", 2, 2), 0, nil)

	rep, changed, err := p.MarkComplete("s1-l1")
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, Report{CourseID: "c1", Percent: 25}, rep)
	assert.True(t, p.IsComplete("s1-l1"))

	_, changed, err = p.MarkComplete("s1-l1")
	require.NoError(t, err)
	assert.False(t, changed)

	_, _, err = p.MarkComplete("missing")
	assert.ErrorIs(t, err, ErrUnknownLesson)
}

func TestPlayer_SelectUnknownKeepsActive(t *testing.T) {
	p := New(testCourse("c1", 2), 0, nil)
	require.True(t, p.Next())

	assert.ErrorIs(t, p.SelectLesson("nope"), ErrInvalidNavigation)
	assert.Equal(t, "s0-l1", p.ActiveLessonID())
}

func TestPlayer_Outline(t *testing.T) {
	p := New(testCourse("c1", 2, 1), 0, nil)
	_, _, err := p.MarkComplete("s0-l1")
	require.NoError(t, err)

	rows := p.Outline()
	require.Len(t, rows, 4)

	assert.Equal(t, RowSection, rows[0].Kind)
	assert.Equal(t, "s0", rows[0].SectionID)
	assert.True(t, rows[0].Expanded)
	assert.Equal(t, 1, rows[0].Done)
	assert.Equal(t, 2, rows[0].Total)

	assert.Equal(t, RowLesson, rows[1].Kind)
	assert.Equal(t, "s0-l0", rows[1].LessonID)
	assert.True(t, rows[1].Active)
	assert.False(t, rows[1].Complete)

	assert.Equal(t, "s0-l1", rows[2].LessonID)
	assert.True(t, rows[2].Complete)
	assert.False(t, rows[2].Active)

	assert.Equal(t, RowSection, rows[3].Kind)
	assert.Equal(t, "s1", rows[3].SectionID)
	assert.False(t, rows[3].Expanded)
	assert.Equal(t, 0, rows[3].Done)
	assert.Equal(t, 1, rows[3].Total)
}

func TestPlayer_OutlineFollowsNavigation(t *testing.T) {
	p := New(testCourse("c1", 1, 1), 0, nil)
	require.True(t, p.ToggleSectionExpanded("s0"))
	assert.Len(t, p.Outline(), 2)

	require.True(t, p.Next())
	rows := p.Outline()
	require.Len(t, rows, 3)
	assert.Equal(t, "s1-l0", rows[2].LessonID)
	assert.True(t, rows[2].Active)
}
