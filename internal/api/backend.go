package api

import (
	"context"

	"github.com/abhisek/lectern/internal/auth"
	"github.com/abhisek/lectern/internal/course"
)

// Backend is the REST collaborator the player depends on.
type Backend interface {
	// GetCourse returns the course with the given id, or ErrNotFound.
	GetCourse(ctx context.Context, courseID string) (*course.Course, error)

	// CheckEnrollment reports whether the session's user is enrolled in
	// courseID, together with the server's last known progress.
	CheckEnrollment(ctx context.Context, sess *auth.Session, courseID string) (auth.Enrollment, error)

	// ReportProgress records percent complete for courseID.
	ReportProgress(ctx context.Context, sess *auth.Session, courseID string, percent int) error

	// Login exchanges credentials for a session.
	Login(ctx context.Context, email, password string) (*auth.Session, error)
}
