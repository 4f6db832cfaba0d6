package course

import "encoding/json"

// Course is a loaded course. It is immutable for the lifetime of a viewing
// session and replaced wholesale on reload.
type Course struct {
	ID          string
	Title       string
	Description string
	Thumbnail   string
	Sections    []Section
}

// Section groups lessons. Sections carry no completion state of their own.
type Section struct {
	ID      string
	Title   string
	Lessons []Lesson
}

// Lesson is the unit of navigation and completion.
type Lesson struct {
	ID           string
	Title        string
	VideoURL     string
	DurationSecs int
	FreePreview  bool

	// Opaque content payloads, passed through to the UI untouched.
	Description  string
	Resources    json.RawMessage
	CodeSnippets json.RawMessage
	Quiz         json.RawMessage
}

// LessonCount returns the total number of lessons across all sections.
func (c *Course) LessonCount() int {
	if c == nil {
		return 0
	}
	n := 0
	for _, s := range c.Sections {
		n += len(s.Lessons)
	}
	return n
}

// Section returns the section with the given id, or nil.
func (c *Course) Section(id string) *Section {
	if c == nil {
		return nil
	}
	for i := range c.Sections {
		if c.Sections[i].ID == id {
			return &c.Sections[i]
		}
	}
	return nil
}

// TotalDuration returns the summed lesson duration in seconds.
func (c *Course) TotalDuration() int {
	if c == nil {
		return 0
	}
	total := 0
	for _, s := range c.Sections {
		for _, l := range s.Lessons {
			total += l.DurationSecs
		}
	}
	return total
}
