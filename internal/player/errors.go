package player

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidNavigation is returned when selecting a lesson that is not
	// part of the current course.
	ErrInvalidNavigation = errors.New("lesson is not part of this course")

	// ErrUnknownLesson is returned when completing a lesson that is not part
	// of the current course.
	ErrUnknownLesson = errors.New("unknown lesson")
)

// Reason classifies a load failure shown to the viewer.
type Reason string

const (
	ReasonNotFound   Reason = "not_found"
	ReasonLoadFailed Reason = "load_failed"
)

// LoadError is the error recorded when a load cycle ends in PhaseError.
type LoadError struct {
	Reason Reason
	Err    error
}

func (e *LoadError) Error() string {
	switch e.Reason {
	case ReasonNotFound:
		return fmt.Sprintf("course not found: %v", e.Err)
	default:
		return fmt.Sprintf("course failed to load: %v", e.Err)
	}
}

func (e *LoadError) Unwrap() error { return e.Err }
