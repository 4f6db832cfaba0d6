package app

import (
	"fmt"
	"log/slog"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lectern/internal/api"
	"github.com/abhisek/lectern/internal/auth"
	"github.com/abhisek/lectern/internal/logging"
	"github.com/abhisek/lectern/internal/router"
	"github.com/abhisek/lectern/internal/screen"
	"github.com/abhisek/lectern/internal/screens/coursepage"
	"github.com/abhisek/lectern/internal/screens/listing"
	"github.com/abhisek/lectern/internal/screens/login"
	"github.com/abhisek/lectern/internal/screens/player"
	"github.com/abhisek/lectern/internal/store"
	"github.com/abhisek/lectern/internal/ui/layout"
)

// Options holds dependencies for the TUI.
type Options struct {
	Backend  api.Backend
	Sessions *auth.SessionManager
	Events   store.EventRepo // optional
	Logger   *slog.Logger

	// Session is the signed-in session loaded at start-up, or nil.
	Session *auth.Session

	// Start is the first route shown.
	Start auth.Route
}

// AppModel is the root Bubble Tea model. It owns the current session and
// turns routes into screens.
type AppModel struct {
	opts    Options
	router  *router.Router
	route   auth.Route
	session *auth.Session
	width   int
	height  int
}

// newAppModel creates an AppModel showing opts.Start.
func newAppModel(opts Options) AppModel {
	if opts.Logger == nil {
		opts.Logger = logging.Discard()
	}
	m := AppModel{opts: opts, session: opts.Session, route: opts.Start}
	m.router = router.New(m.screenFor(opts.Start))
	return m
}

// screenFor builds the screen for r with the current session.
func (m AppModel) screenFor(r auth.Route) screen.Screen {
	switch r.Kind {
	case auth.RoutePlayer:
		return player.New(r.CourseID, m.session, player.Deps{
			Backend: m.opts.Backend,
			Events:  m.opts.Events,
			Logger:  m.opts.Logger,
		})
	case auth.RouteCourse:
		return coursepage.New(r.CourseID, m.session, m.opts.Backend)
	case auth.RouteLogin:
		return login.New(r.ReturnTo, login.Deps{
			Backend:  m.opts.Backend,
			Sessions: m.opts.Sessions,
			Logger:   m.opts.Logger,
		})
	default:
		return listing.New(m.opts.Events, m.session)
	}
}

func (m AppModel) navigate(r auth.Route) (AppModel, tea.Cmd) {
	m.opts.Logger.Debug("navigate", "from", m.route.Path(), "to", r.Path())
	m.route = r
	return m, m.router.Replace(m.screenFor(r))
}

func (m AppModel) Init() tea.Cmd {
	if active := m.router.Active(); active != nil {
		return active.Init()
	}
	return nil
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case router.NavigateMsg:
		return m.navigate(msg.Route)

	case router.SignedInMsg:
		sess := msg.Session
		m.session = &sess
		return m.navigate(msg.Next)

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			if m.route.Kind != auth.RouteListing {
				return m.navigate(auth.ListingRoute())
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

// Route returns the route currently shown.
func (m AppModel) Route() auth.Route {
	return m.route
}

// Session returns the session screens are built with.
func (m AppModel) Session() *auth.Session {
	return m.session
}

// Active returns the active screen.
func (m AppModel) Active() screen.Screen {
	return m.router.Active()
}

func (m AppModel) View() tea.View {
	v := tea.NewView(m.render())
	v.AltScreen = true
	return v
}

// render draws the full frame for the current size.
func (m AppModel) render() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	status := "signed out"
	if m.session.Valid() {
		status = m.session.Email
		if status == "" {
			status = m.session.UserID
		}
	}
	header := layout.RenderHeader(title, status, m.width)

	footerHints := []layout.KeyHint{
		{Key: "Esc", Description: "Back"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
	if p, ok := active.(screen.KeyHintProvider); ok {
		if hints := p.KeyHints(); len(hints) > 0 {
			footerHints = hints
		}
	}
	footer := layout.RenderFooter(footerHints, m.width)

	contentHeight := max(m.height-lipgloss.Height(header)-lipgloss.Height(footer), 0)

	content := m.router.View(m.width, contentHeight)
	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	p := tea.NewProgram(newAppModel(opts))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
