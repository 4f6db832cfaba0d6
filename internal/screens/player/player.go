// Package player implements the course player screen: it drives the load
// controller through tea commands and maps keys onto player operations.
package player

import (
	"context"
	"log/slog"

	tea "charm.land/bubbletea/v2"
	"github.com/google/uuid"

	"github.com/abhisek/lectern/internal/api"
	"github.com/abhisek/lectern/internal/auth"
	"github.com/abhisek/lectern/internal/logging"
	engine "github.com/abhisek/lectern/internal/player"
	"github.com/abhisek/lectern/internal/router"
	"github.com/abhisek/lectern/internal/screen"
	"github.com/abhisek/lectern/internal/store"
	"github.com/abhisek/lectern/internal/ui/layout"
)

// Deps are the collaborators the player screen needs.
type Deps struct {
	Backend api.Backend
	Events  store.EventRepo // optional journal
	Logger  *slog.Logger
}

// PlayerScreen shows one course: outline on the left, the active lesson on
// the right, progress on top.
type PlayerScreen struct {
	deps      Deps
	logger    *slog.Logger
	courseID  string
	session   *auth.Session
	ctrl      *engine.Controller
	viewingID string

	cursor    int // index into the outline rows
	scroll    int
	status    string
	statusErr bool
}

var _ screen.Screen = (*PlayerScreen)(nil)
var _ screen.KeyHintProvider = (*PlayerScreen)(nil)

// New creates a PlayerScreen for courseID viewed as sess (nil when signed
// out).
func New(courseID string, sess *auth.Session, deps Deps) *PlayerScreen {
	logger := deps.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	viewingID := uuid.NewString()
	logger = logger.With("viewing_id", viewingID)
	return &PlayerScreen{
		deps:      deps,
		logger:    logger,
		courseID:  courseID,
		session:   sess,
		ctrl:      engine.NewController(deps.Backend, auth.NewGate(deps.Backend, logger), logger),
		viewingID: viewingID,
	}
}

// Controller exposes the load controller.
func (s *PlayerScreen) Controller() *engine.Controller {
	return s.ctrl
}

func (s *PlayerScreen) Init() tea.Cmd {
	cy, started := s.ctrl.Begin(s.courseID, s.session)
	if !started {
		return nil
	}
	return s.fetchCourse(cy)
}

func (s *PlayerScreen) Title() string {
	if p := s.ctrl.Player(); p != nil {
		return p.Course().Title
	}
	return "Player"
}

func (s *PlayerScreen) KeyHints() []layout.KeyHint {
	switch s.ctrl.Phase() {
	case engine.PhaseReady:
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Outline"},
			{Key: "Enter", Description: "Open"},
			{Key: "Space", Description: "Fold"},
			{Key: "n/p", Description: "Next/Prev"},
			{Key: "c", Description: "Complete"},
			{Key: "Esc", Description: "Back"},
		}
	case engine.PhaseError:
		hints := []layout.KeyHint{{Key: "Esc", Description: "Back"}}
		if s.ctrl.Err().Reason == engine.ReasonLoadFailed {
			hints = append([]layout.KeyHint{{Key: "r", Description: "Retry"}}, hints...)
		}
		return hints
	}
	return nil
}

func (s *PlayerScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case courseFetchedMsg:
		if msg.viewingID != s.viewingID {
			return s, nil
		}
		return s, s.handleCourse(msg)
	case accessCheckedMsg:
		if msg.viewingID != s.viewingID {
			return s, nil
		}
		return s, s.handleAccess(msg)
	case progressSavedMsg:
		return s, s.handleProgressSaved(msg)
	case tea.KeyMsg:
		return s, s.handleKey(msg)
	}
	return s, nil
}

func (s *PlayerScreen) fetchCourse(cy engine.Cycle) tea.Cmd {
	ctrl, viewingID := s.ctrl, s.viewingID
	return func() tea.Msg {
		return courseFetchedMsg{viewingID: viewingID, res: ctrl.FetchCourse(context.Background(), cy)}
	}
}

func (s *PlayerScreen) checkAccess(cy engine.Cycle) tea.Cmd {
	ctrl, viewingID := s.ctrl, s.viewingID
	return func() tea.Msg {
		return accessCheckedMsg{viewingID: viewingID, res: ctrl.CheckAccess(context.Background(), cy)}
	}
}

func (s *PlayerScreen) handleCourse(msg courseFetchedMsg) tea.Cmd {
	switch s.ctrl.ApplyCourse(msg.res) {
	case engine.OutcomeNeedsAccess:
		return s.checkAccess(msg.res.Cycle)
	case engine.OutcomeFailed:
		return s.journal(store.ActionLoadFailed, "", s.ctrl.Err().Error())
	}
	return nil
}

func (s *PlayerScreen) handleAccess(msg accessCheckedMsg) tea.Cmd {
	switch s.ctrl.ApplyAccess(msg.res) {
	case engine.OutcomeReady:
		s.syncCursor()
		return tea.Batch(
			s.journal(store.ActionOpened, "", ""),
			s.journal(store.ActionLessonViewed, s.ctrl.Player().ActiveLessonID(), ""),
		)
	case engine.OutcomeRedirect:
		to := *s.ctrl.Redirect()
		return tea.Batch(
			s.journal(store.ActionRedirected, "", to.Path()),
			router.Navigate(to),
		)
	case engine.OutcomeFailed:
		return s.journal(store.ActionLoadFailed, "", s.ctrl.Err().Error())
	}
	return nil
}

func (s *PlayerScreen) handleProgressSaved(msg progressSavedMsg) tea.Cmd {
	if msg.viewingID != s.viewingID {
		return nil
	}
	if msg.err != nil {
		s.logger.Warn("progress write-through failed", "course_id", msg.report.CourseID, "percent", msg.report.Percent, logging.Err(msg.err))
		s.setStatus("Progress not saved", true)
		return s.journal(store.ActionProgressFailed, "", msg.err.Error())
	}
	return nil
}

func (s *PlayerScreen) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch s.ctrl.Phase() {
	case engine.PhaseError:
		if msg.String() == "r" && s.ctrl.Err().Reason == engine.ReasonLoadFailed {
			if cy, ok := s.ctrl.Retry(s.session); ok {
				return s.fetchCourse(cy)
			}
		}
		return nil
	case engine.PhaseReady:
		return s.handleReadyKey(msg)
	}
	return nil
}

func (s *PlayerScreen) handleReadyKey(msg tea.KeyMsg) tea.Cmd {
	p := s.ctrl.Player()
	rows := p.Outline()

	switch msg.String() {
	case "up", "k":
		s.cursor = max(s.cursor-1, 0)
	case "down", "j":
		s.cursor = min(s.cursor+1, len(rows)-1)
	case "enter":
		if s.cursor >= len(rows) {
			return nil
		}
		r := rows[s.cursor]
		if r.Kind == engine.RowSection {
			s.toggle(r.SectionID)
			return nil
		}
		if err := p.SelectLesson(r.LessonID); err != nil {
			return nil
		}
		return s.viewed()
	case "space":
		if s.cursor < len(rows) {
			s.toggle(rows[s.cursor].SectionID)
		}
	case "n", "right":
		if p.Next() {
			return s.viewed()
		}
	case "p", "left":
		if p.Previous() {
			return s.viewed()
		}
	case "c":
		return s.completeActive()
	}
	return nil
}

// toggle folds or unfolds a section and keeps the cursor on its header.
func (s *PlayerScreen) toggle(sectionID string) {
	p := s.ctrl.Player()
	if !p.ToggleSectionExpanded(sectionID) {
		return
	}
	for i, r := range p.Outline() {
		if r.Kind == engine.RowSection && r.SectionID == sectionID {
			s.cursor = i
			return
		}
	}
}

func (s *PlayerScreen) viewed() tea.Cmd {
	s.syncCursor()
	s.setStatus("", false)
	return s.journal(store.ActionLessonViewed, s.ctrl.Player().ActiveLessonID(), "")
}

// syncCursor puts the cursor on the active lesson's row.
func (s *PlayerScreen) syncCursor() {
	for i, r := range s.ctrl.Player().Outline() {
		if r.Active {
			s.cursor = i
			return
		}
	}
}

func (s *PlayerScreen) completeActive() tea.Cmd {
	p := s.ctrl.Player()
	id := p.ActiveLessonID()
	if id == "" {
		return nil
	}
	rep, changed, err := p.MarkComplete(id)
	if err != nil || !changed {
		return nil
	}
	s.setStatus("", false)
	return tea.Batch(
		s.reportProgress(rep),
		s.journal(store.ActionLessonCompleted, id, ""),
	)
}

// reportProgress sends the write-through without blocking the player.
func (s *PlayerScreen) reportProgress(rep engine.Report) tea.Cmd {
	backend, sess, viewingID := s.deps.Backend, s.session, s.viewingID
	return func() tea.Msg {
		err := backend.ReportProgress(context.Background(), sess, rep.CourseID, rep.Percent)
		return progressSavedMsg{viewingID: viewingID, report: rep, err: err}
	}
}

func (s *PlayerScreen) journal(action, lessonID, detail string) tea.Cmd {
	if s.deps.Events == nil {
		return nil
	}
	data := store.PlayerEventData{
		ViewingID: s.viewingID,
		UserID:    s.session.ID(),
		CourseID:  s.courseID,
		Action:    action,
		LessonID:  lessonID,
		Detail:    detail,
	}
	if p := s.ctrl.Player(); p != nil {
		data.Percent = p.PercentComplete()
	}
	events, logger := s.deps.Events, s.logger
	return func() tea.Msg {
		if err := events.AppendPlayerEvent(context.Background(), data); err != nil {
			logger.Warn("journal write failed", "action", action, logging.Err(err))
		}
		return nil
	}
}

func (s *PlayerScreen) setStatus(text string, isErr bool) {
	s.status = text
	s.statusErr = isErr
}
