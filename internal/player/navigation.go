package player

import (
	"github.com/abhisek/lectern/internal/course"
)

// Navigator owns the active lesson and which outline sections are expanded.
type Navigator struct {
	flat     course.FlatSequence
	sections []string
	active   int // index into flat, -1 when the course has no lessons
	expanded map[string]bool
}

// NewNavigator positions on the first lesson and expands the first section.
func NewNavigator(c *course.Course, flat course.FlatSequence) *Navigator {
	n := &Navigator{
		flat:     flat,
		active:   -1,
		expanded: make(map[string]bool),
	}
	if c != nil {
		for _, s := range c.Sections {
			n.sections = append(n.sections, s.ID)
		}
	}
	if len(n.sections) > 0 {
		n.expanded[n.sections[0]] = true
	}
	if flat.Len() > 0 {
		n.moveTo(0)
	}
	return n
}

// Active returns the active lesson, or false if there is none.
func (n *Navigator) Active() (course.LessonRef, bool) {
	if n.active < 0 {
		return course.LessonRef{}, false
	}
	return n.flat.At(n.active), true
}

// ActiveID returns the active lesson id, or "".
func (n *Navigator) ActiveID() string {
	ref, ok := n.Active()
	if !ok {
		return ""
	}
	return ref.Lesson.ID
}

// Position returns the active index and the sequence length.
func (n *Navigator) Position() (int, int) {
	return n.active, n.flat.Len()
}

// Select makes id the active lesson. Ids outside the course leave the active
// lesson unchanged and return ErrInvalidNavigation.
func (n *Navigator) Select(id string) error {
	i := n.flat.IndexOf(id)
	if i < 0 {
		return ErrInvalidNavigation
	}
	n.moveTo(i)
	return nil
}

// CanGoNext reports whether a lesson follows the active one.
func (n *Navigator) CanGoNext() bool {
	return n.active >= 0 && n.active < n.flat.Len()-1
}

// CanGoPrevious reports whether a lesson precedes the active one.
func (n *Navigator) CanGoPrevious() bool {
	return n.active > 0
}

// Next moves to the following lesson. It is a no-op at the last lesson.
func (n *Navigator) Next() bool {
	if !n.CanGoNext() {
		return false
	}
	n.moveTo(n.active + 1)
	return true
}

// Previous moves to the preceding lesson. It is a no-op at the first lesson.
func (n *Navigator) Previous() bool {
	if !n.CanGoPrevious() {
		return false
	}
	n.moveTo(n.active - 1)
	return true
}

// moveTo activates index i and reveals its section, even if the viewer had
// collapsed it, so the active lesson is always visible in the outline.
func (n *Navigator) moveTo(i int) {
	n.active = i
	n.expanded[n.flat.At(i).SectionID] = true
}

// IsExpanded reports whether sectionID is expanded.
func (n *Navigator) IsExpanded(sectionID string) bool {
	return n.expanded[sectionID]
}

// ToggleSection flips the expansion of sectionID. Unknown ids are ignored.
func (n *Navigator) ToggleSection(sectionID string) bool {
	known := false
	for _, id := range n.sections {
		if id == sectionID {
			known = true
			break
		}
	}
	if !known {
		return false
	}
	if n.expanded[sectionID] {
		delete(n.expanded, sectionID)
	} else {
		n.expanded[sectionID] = true
	}
	return true
}

// Expanded returns the expanded section ids in course order.
func (n *Navigator) Expanded() []string {
	var out []string
	for _, id := range n.sections {
		if n.expanded[id] {
			out = append(out, id)
		}
	}
	return out
}
