// Package login implements the sign-in screen shown when a protected route
// is opened without a session.
package login

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lectern/internal/api"
	"github.com/abhisek/lectern/internal/auth"
	"github.com/abhisek/lectern/internal/logging"
	"github.com/abhisek/lectern/internal/router"
	"github.com/abhisek/lectern/internal/screen"
	"github.com/abhisek/lectern/internal/ui/components"
	"github.com/abhisek/lectern/internal/ui/layout"
	"github.com/abhisek/lectern/internal/ui/theme"
)

// Deps are the collaborators the login screen needs.
type Deps struct {
	Backend  api.Backend
	Sessions *auth.SessionManager
	Logger   *slog.Logger
}

type loginResultMsg struct {
	session *auth.Session
	err     error
}

// LoginScreen collects credentials and, on success, returns the viewer to
// the route that sent them here.
type LoginScreen struct {
	deps       Deps
	next       auth.Route
	inputs     []components.TextInput
	focus      int
	submitting bool
	errMsg     string
}

var _ screen.Screen = (*LoginScreen)(nil)
var _ screen.KeyHintProvider = (*LoginScreen)(nil)

// New creates a LoginScreen. returnTo is where to go after signing in; nil
// means the course listing.
func New(returnTo *auth.Route, deps Deps) *LoginScreen {
	if deps.Logger == nil {
		deps.Logger = logging.Discard()
	}
	next := auth.ListingRoute()
	if returnTo != nil {
		next = *returnTo
	}
	return &LoginScreen{
		deps: deps,
		next: next,
		inputs: []components.TextInput{
			components.NewTextInput("Email", "you@example.com", false, 254),
			components.NewTextInput("Password", "", true, 128),
		},
	}
}

// Next returns the route shown after a successful sign-in.
func (s *LoginScreen) Next() auth.Route {
	return s.next
}

func (s *LoginScreen) Init() tea.Cmd {
	return s.inputs[0].Focus()
}

func (s *LoginScreen) Title() string {
	return "Sign in"
}

func (s *LoginScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Tab", Description: "Next field"},
		{Key: "Enter", Description: "Sign in"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *LoginScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case loginResultMsg:
		return s, s.handleResult(msg)
	case tea.KeyMsg:
		switch msg.String() {
		case "tab", "down":
			return s, s.setFocus(s.focus + 1)
		case "shift+tab", "up":
			return s, s.setFocus(s.focus - 1)
		case "enter":
			if s.focus < len(s.inputs)-1 {
				return s, s.setFocus(s.focus + 1)
			}
			return s, s.submit()
		}
	}

	var cmd tea.Cmd
	s.inputs[s.focus], cmd = s.inputs[s.focus].Update(msg)
	return s, cmd
}

func (s *LoginScreen) setFocus(i int) tea.Cmd {
	n := len(s.inputs)
	i = (i%n + n) % n
	s.inputs[s.focus].Blur()
	s.focus = i
	return s.inputs[i].Focus()
}

func (s *LoginScreen) submit() tea.Cmd {
	if s.submitting {
		return nil
	}
	email, password := s.inputs[0].Value(), s.inputs[1].Value()
	if email == "" || password == "" {
		s.errMsg = "Enter your email and password"
		return nil
	}
	s.submitting = true
	s.errMsg = ""

	backend, sessions := s.deps.Backend, s.deps.Sessions
	return func() tea.Msg {
		ctx := context.Background()
		sess, err := backend.Login(ctx, email, password)
		if err != nil {
			return loginResultMsg{err: err}
		}
		if sessions != nil {
			sess, err = sessions.Save(ctx, *sess)
		}
		return loginResultMsg{session: sess, err: err}
	}
}

func (s *LoginScreen) handleResult(msg loginResultMsg) tea.Cmd {
	s.submitting = false
	if msg.err != nil {
		if errors.Is(msg.err, api.ErrUnauthorized) {
			s.errMsg = "Wrong email or password"
		} else {
			s.errMsg = "Could not sign in: " + msg.err.Error()
			s.deps.Logger.Warn("login failed", logging.Err(msg.err))
		}
		s.inputs[1].SetValue("")
		return nil
	}
	s.deps.Logger.Info("signed in", "user_id", msg.session.UserID)
	sess, next := *msg.session, s.next
	return func() tea.Msg {
		return router.SignedInMsg{Session: sess, Next: next}
	}
}

func (s *LoginScreen) View(width, height int) string {
	var parts []string
	parts = append(parts, theme.Title.Render("Sign in to continue"), "")
	for _, in := range s.inputs {
		parts = append(parts, in.View(), "")
	}
	switch {
	case s.submitting:
		parts = append(parts, theme.Hint.Render("Signing in…"))
	case s.errMsg != "":
		parts = append(parts, theme.Failure.Render(s.errMsg))
	}
	if s.next.Kind != auth.RouteListing {
		parts = append(parts, "", theme.Hint.Render("You'll return to "+s.next.Path()))
	}

	card := theme.Card.Width(min(60, width)).Render(strings.Join(parts, "\n"))
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card)
}
