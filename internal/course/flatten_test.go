package course

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildCourse makes a course whose section i has sizes[i] lessons,
// with lesson ids "s<i>-l<j>".
func buildCourse(sizes ...int) *Course {
	c := &Course{ID: "c1", Title: "Go in Practice"}
	for i, n := range sizes {
		s := Section{ID: fmt.Sprintf("s%d", i), Title: fmt.Sprintf("Section %d", i)}
		for j := 0; j < n; j++ {
			s.Lessons = append(s.Lessons, Lesson{ID: fmt.Sprintf("s%d-l%d", i, j), Title: "Lesson"})
		}
		c.Sections = append(c.Sections, s)
	}
	return c
}

func TestFlatten_LengthAndOrder(t *testing.T) {
	tests := []struct {
		name  string
		sizes []int
	}{
		{"two sections", []int{3, 2}},
		{"single lesson", []int{1}},
		{"empty section in the middle", []int{2, 0, 3}},
		{"all sections empty", []int{0, 0}},
		{"no sections", nil},
		{"many sections", []int{1, 4, 1, 0, 7, 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := buildCourse(tt.sizes...)
			seq := Flatten(c)

			var want []string
			for _, s := range c.Sections {
				for _, l := range s.Lessons {
					want = append(want, l.ID)
				}
			}
			assert.Equal(t, c.LessonCount(), seq.Len())
			if len(want) == 0 {
				assert.Empty(t, seq.IDs())
				return
			}
			assert.Equal(t, want, seq.IDs())
		})
	}
}

func TestFlatten_SectionIndexIsNonDecreasing(t *testing.T) {
	seq := Flatten(buildCourse(2, 0, 3, 1))
	for i := 1; i < seq.Len(); i++ {
		assert.LessOrEqual(t, seq.At(i-1).SectionIndex, seq.At(i).SectionIndex)
	}
}

func TestFlatten_NilCourse(t *testing.T) {
	seq := Flatten(nil)
	assert.Equal(t, 0, seq.Len())
	assert.False(t, seq.Contains("anything"))
	assert.Equal(t, -1, seq.IndexOf("anything"))
}

func TestFlatten_Lookups(t *testing.T) {
	seq := Flatten(buildCourse(3, 2))
	require.Equal(t, 5, seq.Len())

	assert.Equal(t, 0, seq.IndexOf("s0-l0"))
	assert.Equal(t, 3, seq.IndexOf("s1-l0"))

	sec, ok := seq.SectionOf("s1-l1")
	require.True(t, ok)
	assert.Equal(t, "s1", sec)

	_, ok = seq.SectionOf("missing")
	assert.False(t, ok)
}

func TestFlatten_Deterministic(t *testing.T) {
	c := buildCourse(2, 3)
	assert.Equal(t, Flatten(c).IDs(), Flatten(c).IDs())
}

func TestFlatSequence_RefsIsACopy(t *testing.T) {
	seq := Flatten(buildCourse(2))
	refs := seq.Refs()
	refs[0].Lesson.ID = "mutated"
	assert.Equal(t, "s0-l0", seq.At(0).Lesson.ID)
}

func TestCourse_Helpers(t *testing.T) {
	c := buildCourse(2, 1)
	c.Sections[0].Lessons[0].DurationSecs = 90
	c.Sections[1].Lessons[0].DurationSecs = 30

	assert.Equal(t, 3, c.LessonCount())
	assert.Equal(t, 120, c.TotalDuration())
	require.NotNil(t, c.Section("s1"))
	assert.Nil(t, c.Section("nope"))

	var nilCourse *Course
	assert.Equal(t, 0, nilCourse.LessonCount())
}
