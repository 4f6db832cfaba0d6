package player

import (
	"context"
	"errors"
	"log/slog"

	"github.com/abhisek/lectern/internal/api"
	"github.com/abhisek/lectern/internal/auth"
	"github.com/abhisek/lectern/internal/course"
)

// Phase is the load state of the player.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseLoading
	PhaseReady
	PhaseError
)

func (p Phase) String() string {
	switch p {
	case PhaseLoading:
		return "loading"
	case PhaseReady:
		return "ready"
	case PhaseError:
		return "error"
	default:
		return "idle"
	}
}

// CourseSource fetches courses.
type CourseSource interface {
	GetCourse(ctx context.Context, courseID string) (*course.Course, error)
}

// Authorizer decides whether a session may view a course.
type Authorizer interface {
	Authorize(ctx context.Context, sess *auth.Session, courseID string) auth.Decision
}

// Cycle identifies one load attempt. Results carry the Cycle they were
// started for; the controller drops any result whose cycle is no longer
// the most recent one.
type Cycle struct {
	ID       uint64
	CourseID string
	Session  *auth.Session
}

// CourseResult is the outcome of FetchCourse.
type CourseResult struct {
	Cycle  Cycle
	Course *course.Course
	Err    error
}

// AccessResult is the outcome of CheckAccess.
type AccessResult struct {
	Cycle    Cycle
	Decision auth.Decision
}

// Outcome tells the caller what applying a result did.
type Outcome int

const (
	// OutcomeStale means the result belonged to a superseded cycle and was
	// discarded without touching any state.
	OutcomeStale Outcome = iota
	// OutcomeNeedsAccess means the course arrived; run CheckAccess next.
	OutcomeNeedsAccess
	// OutcomeReady means the player is ready.
	OutcomeReady
	// OutcomeRedirect means the viewer must be sent to Redirect().
	OutcomeRedirect
	// OutcomeFailed means the cycle ended in PhaseError.
	OutcomeFailed
)

// Controller runs the fetch → authorize → initialize sequence for the
// course being viewed. Its methods other than FetchCourse and CheckAccess
// must be called from the UI event loop; FetchCourse and CheckAccess block
// and only read immutable fields, so they may run off the loop.
type Controller struct {
	source CourseSource
	gate   Authorizer
	logger *slog.Logger

	seq      uint64
	current  Cycle
	phase    Phase
	err      *LoadError
	pending  *course.Course
	player   *Player
	redirect *auth.Route
}

// NewController creates an idle Controller.
func NewController(source CourseSource, gate Authorizer, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Controller{source: source, gate: gate, logger: logger}
}

// Phase returns the current load phase.
func (c *Controller) Phase() Phase { return c.phase }

// Err returns the load error when Phase is PhaseError.
func (c *Controller) Err() *LoadError { return c.err }

// Player returns the ready player, or nil unless Phase is PhaseReady.
func (c *Controller) Player() *Player { return c.player }

// CourseID returns the course of the most recent cycle.
func (c *Controller) CourseID() string { return c.current.CourseID }

// Redirect returns where the viewer was sent by the last completed cycle.
func (c *Controller) Redirect() *auth.Route { return c.redirect }

// Begin starts a load cycle for courseID as sess. A new cycle is only
// started when the (course, user) pair differs from the current one or the
// controller is idle or failed, so re-rendering never re-runs authorization.
// All state from the previous course is discarded.
func (c *Controller) Begin(courseID string, sess *auth.Session) (Cycle, bool) {
	if c.sameKey(courseID, sess) && (c.phase == PhaseLoading || c.phase == PhaseReady) {
		return c.current, false
	}
	return c.start(courseID, sess), true
}

// Retry restarts the current course after a failure.
func (c *Controller) Retry(sess *auth.Session) (Cycle, bool) {
	if c.phase != PhaseError || c.current.CourseID == "" {
		return Cycle{}, false
	}
	return c.start(c.current.CourseID, sess), true
}

// Reset drops all state, as when the viewer leaves the player. Results of
// in-flight cycles are discarded when they arrive.
func (c *Controller) Reset() {
	c.seq++
	c.current = Cycle{ID: c.seq}
	c.clear()
	c.phase = PhaseIdle
}

func (c *Controller) start(courseID string, sess *auth.Session) Cycle {
	c.seq++
	var captured *auth.Session
	if sess != nil {
		s := *sess
		captured = &s
	}
	c.current = Cycle{ID: c.seq, CourseID: courseID, Session: captured}
	c.clear()
	c.phase = PhaseLoading
	c.logger.Debug("load cycle started", "cycle", c.seq, "course_id", courseID, "user_id", sess.ID())
	return c.current
}

func (c *Controller) clear() {
	c.err = nil
	c.pending = nil
	c.player = nil
	c.redirect = nil
}

func (c *Controller) sameKey(courseID string, sess *auth.Session) bool {
	return c.current.CourseID == courseID && c.current.Session.ID() == sess.ID()
}

// live reports whether results for cy may still be applied. The course and
// viewer must match too, since cycle ids are only unique per controller.
func (c *Controller) live(cy Cycle) bool {
	return cy.ID == c.current.ID &&
		cy.CourseID == c.current.CourseID &&
		cy.Session.ID() == c.current.Session.ID() &&
		c.phase == PhaseLoading
}

// FetchCourse loads the course for cy. It does not touch controller state.
func (c *Controller) FetchCourse(ctx context.Context, cy Cycle) CourseResult {
	if cy.CourseID == "" {
		return CourseResult{Cycle: cy, Err: api.ErrNotFound}
	}
	crs, err := c.source.GetCourse(ctx, cy.CourseID)
	return CourseResult{Cycle: cy, Course: crs, Err: err}
}

// ApplyCourse applies a FetchCourse result.
func (c *Controller) ApplyCourse(res CourseResult) Outcome {
	if !c.live(res.Cycle) {
		c.logger.Debug("discarding stale course result", "cycle", res.Cycle.ID, "course_id", res.Cycle.CourseID)
		return OutcomeStale
	}
	if res.Err != nil || res.Course == nil {
		reason := ReasonLoadFailed
		err := res.Err
		if err == nil {
			err = errors.New("empty response")
		}
		if errors.Is(err, api.ErrNotFound) {
			reason = ReasonNotFound
		}
		return c.fail(reason, err)
	}
	c.pending = res.Course
	return OutcomeNeedsAccess
}

// CheckAccess runs the enrollment gate for cy. It does not touch
// controller state.
func (c *Controller) CheckAccess(ctx context.Context, cy Cycle) AccessResult {
	return AccessResult{Cycle: cy, Decision: c.gate.Authorize(ctx, cy.Session, cy.CourseID)}
}

// ApplyAccess applies a CheckAccess result. A redirect never produces a
// player: the cycle ends idle with Redirect set.
func (c *Controller) ApplyAccess(res AccessResult) Outcome {
	if !c.live(res.Cycle) || c.pending == nil {
		c.logger.Debug("discarding stale access result", "cycle", res.Cycle.ID, "course_id", res.Cycle.CourseID)
		return OutcomeStale
	}
	d := res.Decision
	switch {
	case d.Err != nil:
		return c.fail(ReasonLoadFailed, d.Err)
	case d.Redirect != nil:
		r := *d.Redirect
		c.pending = nil
		c.redirect = &r
		c.phase = PhaseIdle
		c.logger.Info("redirecting away from player", "course_id", res.Cycle.CourseID, "reason", d.Reason, "to", r.Path())
		return OutcomeRedirect
	case d.Authorized:
		c.player = New(c.pending, d.ServerProgress, c.logger)
		c.pending = nil
		c.phase = PhaseReady
		c.logger.Info("player ready", "course_id", res.Cycle.CourseID, "lessons", c.player.Flat().Len())
		return OutcomeReady
	default:
		return c.fail(ReasonLoadFailed, errors.New("authorization returned no decision"))
	}
}

func (c *Controller) fail(reason Reason, err error) Outcome {
	c.pending = nil
	c.err = &LoadError{Reason: reason, Err: err}
	c.phase = PhaseError
	c.logger.Warn("course load failed", "course_id", c.current.CourseID, "reason", reason, "error", err)
	return OutcomeFailed
}
