package player

import (
	"math"

	"github.com/abhisek/lectern/internal/course"
)

// Report is a progress write-through to send to the backend.
type Report struct {
	CourseID string
	Percent  int
}

// Tracker owns the set of lessons completed during this viewing session.
//
// A server-reported percentage cannot be inverted into lesson ids, so the
// completed set always starts empty. Until the first local completion the
// tracker reports the server's percentage; from then on it reports the local
// recomputation.
type Tracker struct {
	courseID      string
	flat          course.FlatSequence
	completed     map[string]struct{}
	serverPercent int
	local         bool
}

// NewTracker creates a Tracker for flat, seeded with the server's last
// known percentage.
func NewTracker(courseID string, serverPercent int, flat course.FlatSequence) *Tracker {
	return &Tracker{
		courseID:      courseID,
		flat:          flat,
		completed:     make(map[string]struct{}),
		serverPercent: max(0, min(100, serverPercent)),
	}
}

// MarkComplete adds id to the completed set. It returns the write-through to
// send and true when the set changed; marking an already completed lesson is
// a no-op and returns false.
func (t *Tracker) MarkComplete(id string) (Report, bool, error) {
	if !t.flat.Contains(id) {
		return Report{}, false, ErrUnknownLesson
	}
	if _, done := t.completed[id]; done {
		return Report{}, false, nil
	}
	t.completed[id] = struct{}{}
	t.local = true
	return Report{CourseID: t.courseID, Percent: t.Percent()}, true, nil
}

// IsComplete reports whether id was completed in this session.
func (t *Tracker) IsComplete(id string) bool {
	_, ok := t.completed[id]
	return ok
}

// Percent returns percent complete in 0..100.
func (t *Tracker) Percent() int {
	if !t.local {
		return t.serverPercent
	}
	return percentOf(len(t.completed), t.flat.Len())
}

// Completed returns completed lesson ids in navigation order.
func (t *Tracker) Completed() []string {
	out := make([]string, 0, len(t.completed))
	for _, id := range t.flat.IDs() {
		if _, ok := t.completed[id]; ok {
			out = append(out, id)
		}
	}
	return out
}

// CompletedInSection returns how many lessons of sectionID are complete.
func (t *Tracker) CompletedInSection(sectionID string) (done, total int) {
	for _, ref := range t.flat.Refs() {
		if ref.SectionID != sectionID {
			continue
		}
		total++
		if t.IsComplete(ref.Lesson.ID) {
			done++
		}
	}
	return done, total
}

// percentOf returns round(100*done/total), or 0 when total is 0.
func percentOf(done, total int) int {
	if total <= 0 {
		return 0
	}
	p := int(math.Round(100 * float64(done) / float64(total)))
	return max(0, min(100, p))
}
