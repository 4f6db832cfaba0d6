package player

import (
	"fmt"

	"github.com/abhisek/lectern/internal/course"
)

// testCourse makes a course whose section i has sizes[i] lessons, with
// section ids "s<i>" and lesson ids "s<i>-l<j>".
func testCourse(id string, sizes ...int) *course.Course {
	c := &course.Course{ID: id, Title: "Course " + id}
	for i, n := range sizes {
		s := course.Section{ID: fmt.Sprintf("s%d", i), Title: fmt.Sprintf("Section %d", i)}
		for j := 0; j < n; j++ {
			s.Lessons = append(s.Lessons, course.Lesson{
				ID:    fmt.Sprintf("s%d-l%d", i, j),
				Title: fmt.Sprintf("Lesson %d.%d", i, j),
			})
		}
		c.Sections = append(c.Sections, s)
	}
	return c
}
