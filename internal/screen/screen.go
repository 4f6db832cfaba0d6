// Package screen defines what the router stacks: one full-window view such
// as the player, the login form or the course page.
package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/lectern/internal/ui/layout"
)

// Screen is a routed view. Screens start their own async work from Init and
// receive the results back through Update.
type Screen interface {
	Init() tea.Cmd

	// Update handles a message and returns the screen to keep showing.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the area between the header and the footer.
	View(width, height int) string

	// Title is shown in the header, e.g. the course title once it loads.
	Title() string
}

// KeyHintProvider lets a screen replace the default footer hints, which
// usually depend on its state (loading, error, ready).
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}
