package course

// LessonRef is one entry of a FlatSequence: the lesson plus the section it
// came from.
type LessonRef struct {
	Lesson       Lesson
	SectionID    string
	SectionIndex int
}

// FlatSequence is the navigation order of a course: every lesson of every
// section, sections in order and lessons in order within a section.
// It is read-only; use Flatten to build a new one when the course changes.
type FlatSequence struct {
	refs  []LessonRef
	index map[string]int
}

// Flatten derives the FlatSequence of c. Sections without lessons contribute
// nothing; a nil course or one without sections yields an empty sequence.
func Flatten(c *Course) FlatSequence {
	n := c.LessonCount()
	seq := FlatSequence{
		refs:  make([]LessonRef, 0, n),
		index: make(map[string]int, n),
	}
	if c == nil {
		return seq
	}
	for si, s := range c.Sections {
		for _, l := range s.Lessons {
			if _, dup := seq.index[l.ID]; !dup {
				seq.index[l.ID] = len(seq.refs)
			}
			seq.refs = append(seq.refs, LessonRef{Lesson: l, SectionID: s.ID, SectionIndex: si})
		}
	}
	return seq
}

// Len returns the number of lessons in the sequence.
func (f FlatSequence) Len() int { return len(f.refs) }

// At returns the entry at position i. It panics if i is out of range.
func (f FlatSequence) At(i int) LessonRef { return f.refs[i] }

// IndexOf returns the position of the lesson with the given id, or -1.
func (f FlatSequence) IndexOf(id string) int {
	if i, ok := f.index[id]; ok {
		return i
	}
	return -1
}

// Contains reports whether id is a lesson of the sequence.
func (f FlatSequence) Contains(id string) bool {
	_, ok := f.index[id]
	return ok
}

// SectionOf returns the id of the section holding lesson id.
func (f FlatSequence) SectionOf(id string) (string, bool) {
	i, ok := f.index[id]
	if !ok {
		return "", false
	}
	return f.refs[i].SectionID, true
}

// IDs returns the lesson ids in navigation order.
func (f FlatSequence) IDs() []string {
	ids := make([]string, len(f.refs))
	for i, r := range f.refs {
		ids[i] = r.Lesson.ID
	}
	return ids
}

// Refs returns a copy of the entries in navigation order.
func (f FlatSequence) Refs() []LessonRef {
	out := make([]LessonRef, len(f.refs))
	copy(out, f.refs)
	return out
}
