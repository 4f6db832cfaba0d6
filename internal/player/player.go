package player

import (
	"log/slog"

	"github.com/abhisek/lectern/internal/course"
)

// Player is the ready state of a course: the loaded course, its navigation
// order, the active lesson and the completed set. It is only constructed
// after the course fetched and the viewer was authorized.
type Player struct {
	course  *course.Course
	flat    course.FlatSequence
	nav     *Navigator
	tracker *Tracker
	logger  *slog.Logger
}

// New builds a Player for c with the server's last known progress.
func New(c *course.Course, serverPercent int, logger *slog.Logger) *Player {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	flat := course.Flatten(c)
	return &Player{
		course:  c,
		flat:    flat,
		nav:     NewNavigator(c, flat),
		tracker: NewTracker(c.ID, serverPercent, flat),
		logger:  logger.With("course_id", c.ID),
	}
}

// Course returns the loaded course.
func (p *Player) Course() *course.Course { return p.course }

// Flat returns the course's lessons in navigation order.
func (p *Player) Flat() course.FlatSequence { return p.flat }

// ActiveLessonID returns the active lesson's id, or "" for an empty course.
func (p *Player) ActiveLessonID() string { return p.nav.ActiveID() }

// CanGoNext reports whether a lesson follows the active one.
func (p *Player) CanGoNext() bool { return p.nav.CanGoNext() }

// CanGoPrevious reports whether a lesson precedes the active one.
func (p *Player) CanGoPrevious() bool { return p.nav.CanGoPrevious() }

// PercentComplete returns the course progress, 0..100.
func (p *Player) PercentComplete() int { return p.tracker.Percent() }

// CompletedLessonIDs returns the lessons completed in this viewing.
func (p *Player) CompletedLessonIDs() []string { return p.tracker.Completed() }

// ExpandedSectionIDs returns the sections currently unfolded in the outline.
func (p *Player) ExpandedSectionIDs() []string { return p.nav.Expanded() }

// IsComplete reports whether lesson id has been completed.
func (p *Player) IsComplete(id string) bool { return p.tracker.IsComplete(id) }

// IsExpanded reports whether section id is unfolded.
func (p *Player) IsExpanded(id string) bool { return p.nav.IsExpanded(id) }

// ActiveLesson returns the active lesson, or false for an empty course.
func (p *Player) ActiveLesson() (course.LessonRef, bool) {
	return p.nav.Active()
}

// Position returns the active index and the number of lessons.
func (p *Player) Position() (int, int) {
	return p.nav.Position()
}

// SelectLesson activates id. Unknown ids are logged and ignored.
func (p *Player) SelectLesson(id string) error {
	if err := p.nav.Select(id); err != nil {
		p.logger.Warn("ignoring lesson selection", "lesson_id", id, "error", err)
		return err
	}
	return nil
}

// Next moves to the next lesson; false at the end of the course.
func (p *Player) Next() bool { return p.nav.Next() }

// Previous moves to the previous lesson; false at the start of the course.
func (p *Player) Previous() bool { return p.nav.Previous() }

// ToggleSectionExpanded flips a section's expansion in the outline.
func (p *Player) ToggleSectionExpanded(id string) bool { return p.nav.ToggleSection(id) }

// MarkComplete records id as completed. When the completed set changed it
// returns the write-through the caller should send without waiting on it.
func (p *Player) MarkComplete(id string) (Report, bool, error) {
	rep, changed, err := p.tracker.MarkComplete(id)
	if err != nil {
		p.logger.Warn("ignoring completion", "lesson_id", id, "error", err)
		return Report{}, false, err
	}
	if changed {
		p.logger.Debug("lesson completed", "lesson_id", id, "percent", rep.Percent)
	}
	return rep, changed, nil
}

// RowKind distinguishes outline rows.
type RowKind int

const (
	RowSection RowKind = iota
	RowLesson
)

// Row is one visible line of the course outline.
type Row struct {
	Kind      RowKind
	SectionID string
	Title     string
	LessonID  string // RowLesson only
	Active    bool
	Complete  bool
	Expanded  bool // RowSection only
	Done      int  // RowSection only: completed lessons in the section
	Total     int  // RowSection only
}

// Outline returns the outline rows: every section header, followed by its
// lessons when the section is expanded.
func (p *Player) Outline() []Row {
	active := p.nav.ActiveID()
	var rows []Row
	for _, s := range p.course.Sections {
		done, total := p.tracker.CompletedInSection(s.ID)
		expanded := p.nav.IsExpanded(s.ID)
		rows = append(rows, Row{
			Kind:      RowSection,
			SectionID: s.ID,
			Title:     s.Title,
			Expanded:  expanded,
			Done:      done,
			Total:     total,
		})
		if !expanded {
			continue
		}
		for _, l := range s.Lessons {
			rows = append(rows, Row{
				Kind:      RowLesson,
				SectionID: s.ID,
				Title:     l.Title,
				LessonID:  l.ID,
				Active:    l.ID == active,
				Complete:  p.tracker.IsComplete(l.ID),
			})
		}
	}
	return rows
}
