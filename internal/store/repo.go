package store

import (
	"context"
	"time"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit    int       // max results (0 = unlimited)
	After    int64     // sequence > After
	Before   int64     // sequence < Before
	From     time.Time // timestamp >= From
	To       time.Time // timestamp <= To
	CourseID string    // only events for this course
}

// Player event actions.
const (
	ActionOpened          = "opened"
	ActionRedirected      = "redirected"
	ActionLoadFailed      = "load_failed"
	ActionLessonViewed    = "lesson_viewed"
	ActionLessonCompleted = "lesson_completed"
	ActionProgressFailed  = "progress_failed"
)

// PlayerEventData captures one thing that happened while viewing a course.
type PlayerEventData struct {
	ViewingID string // groups the events of one player screen
	UserID    string
	CourseID  string
	Action    string
	LessonID  string
	Percent   int
	Detail    string
}

// PlayerEvent is a journaled PlayerEventData.
type PlayerEvent struct {
	Sequence  int64
	Timestamp time.Time
	PlayerEventData
}

// EventRepo provides append and query access to the player journal.
type EventRepo interface {
	// AppendPlayerEvent records a player event.
	AppendPlayerEvent(ctx context.Context, data PlayerEventData) error

	// QueryPlayerEvents returns events newest first.
	QueryPlayerEvents(ctx context.Context, opts QueryOpts) ([]PlayerEvent, error)
}
