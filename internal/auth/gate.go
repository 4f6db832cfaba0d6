package auth

import (
	"context"
	"errors"
	"log/slog"
)

// Reason explains a redirect decision.
type Reason string

const (
	ReasonNone            Reason = ""
	ReasonUnauthenticated Reason = "unauthenticated"
	ReasonNotEnrolled     Reason = "not_enrolled"
)

// Enrollment is the backend's answer for a (user, course) pair.
type Enrollment struct {
	Enrolled bool
	// Progress is the last percent complete the server knows about.
	Progress int
}

// EnrollmentChecker answers whether a session's user is enrolled in a course.
type EnrollmentChecker interface {
	CheckEnrollment(ctx context.Context, sess *Session, courseID string) (Enrollment, error)
}

// Decision is the outcome of Gate.Authorize. Exactly one of Authorized,
// Redirect or Err is set.
type Decision struct {
	Authorized     bool
	ServerProgress int

	Redirect *Route
	Reason   Reason

	// Err is a failure to reach a decision (e.g. the enrollment check could
	// not be completed). It is not an authorization outcome.
	Err error
}

// Gate decides whether player content for a course may be shown.
type Gate struct {
	checker EnrollmentChecker
	logger  *slog.Logger
}

// NewGate creates a Gate that consults checker.
func NewGate(checker EnrollmentChecker, logger *slog.Logger) *Gate {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Gate{checker: checker, logger: logger}
}

// Authorize evaluates access to courseID for sess. Signed-out viewers are
// sent to login with the player route as the return target; signed-in
// viewers without an enrollment are sent to the course's public page.
func (g *Gate) Authorize(ctx context.Context, sess *Session, courseID string) Decision {
	if !sess.Valid() {
		return loginRedirect(courseID)
	}

	enr, err := g.checker.CheckEnrollment(ctx, sess, courseID)
	if err != nil {
		if errors.Is(err, ErrUnauthorized) {
			g.logger.Info("session rejected by backend", "user_id", sess.UserID, "course_id", courseID)
			return loginRedirect(courseID)
		}
		return Decision{Err: err}
	}
	if !enr.Enrolled {
		r := CourseRoute(courseID)
		return Decision{Redirect: &r, Reason: ReasonNotEnrolled}
	}
	return Decision{Authorized: true, ServerProgress: clampPercent(enr.Progress)}
}

func loginRedirect(courseID string) Decision {
	r := LoginRoute(PlayerRoute(courseID))
	return Decision{Redirect: &r, Reason: ReasonUnauthenticated}
}

func clampPercent(p int) int {
	return max(0, min(100, p))
}
