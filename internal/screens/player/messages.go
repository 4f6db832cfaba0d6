package player

import (
	engine "github.com/abhisek/lectern/internal/player"
)

// courseFetchedMsg carries the result of fetching the course.
type courseFetchedMsg struct {
	viewingID string
	res       engine.CourseResult
}

// accessCheckedMsg carries the enrollment gate's decision.
type accessCheckedMsg struct {
	viewingID string
	res       engine.AccessResult
}

// progressSavedMsg reports the outcome of a progress write-through.
type progressSavedMsg struct {
	viewingID string
	report    engine.Report
	err       error
}
