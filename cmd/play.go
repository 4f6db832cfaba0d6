package cmd

import (
	"fmt"
	"os"

	"github.com/abhisek/lectern/internal/app"
	"github.com/abhisek/lectern/internal/auth"
	"github.com/abhisek/lectern/internal/logging"
	"github.com/spf13/cobra"
)

var playCmd = &cobra.Command{
	Use:   "play <course-id>",
	Short: "Open the course player",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd, auth.PlayerRoute(args[0]))
	},
}

// runApp opens dependencies, restores the saved session and launches the TUI
// at start.
func runApp(cmd *cobra.Command, start auth.Route) error {
	d, err := openDeps(cmd, true)
	if err != nil {
		return err
	}
	defer d.Close()

	sess, err := d.sessions.Load(cmd.Context())
	if err != nil {
		// An unreadable session is the same as being signed out.
		d.logger.Warn("load session", logging.Err(err))
		sess = nil
	}

	if d.demo {
		fmt.Fprintf(os.Stderr, "Demo mode: sign in as %s / %s, course %q\n", demoEmail, demoPassword, demoCourseID)
	}

	return app.Run(app.Options{
		Backend:  d.backend,
		Sessions: d.sessions,
		Events:   d.store.EventRepo(),
		Logger:   d.logger,
		Session:  sess,
		Start:    start,
	})
}
