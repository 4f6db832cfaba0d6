package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/abhisek/lectern/internal/api"
	"github.com/abhisek/lectern/internal/auth"
	"github.com/abhisek/lectern/internal/config"
	"github.com/abhisek/lectern/internal/logging"
	"github.com/abhisek/lectern/internal/store"
	"github.com/spf13/cobra"
)

// demoDSN keeps demo sessions and journal entries out of the real database.
const demoDSN = "file:lectern-demo?mode=memory&cache=shared"

// deps is everything a command needs, opened from config and flags.
type deps struct {
	cfg      config.Config
	demo     bool
	store    *store.Store
	backend  api.Backend
	sessions *auth.SessionManager
	logger   *slog.Logger

	closers []func() error
}

// openDeps opens the store, logger and backend. Interactive commands log to
// a file because the TUI owns the terminal; the rest log to stderr.
func openDeps(cmd *cobra.Command, interactive bool) (*deps, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	d := &deps{cfg: cfg, demo: isDemo(cmd)}

	dsn := demoDSN
	dbPath := filepath.Join(os.TempDir(), "lectern-demo.db")
	if !d.demo {
		if dbPath, err = resolveDBPath(cfg); err != nil {
			return nil, fmt.Errorf("resolve DB path: %w", err)
		}
		dsn = dbPath
	}

	if interactive {
		logger, closeLog, err := logging.OpenFile(cfg.Env, cfg.ResolveLogPath(dbPath))
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		d.logger = logger
		d.closers = append(d.closers, closeLog)
	} else {
		d.logger = logging.New(cfg.Env, os.Stderr)
	}

	st, err := store.Open(dsn)
	if err != nil {
		d.Close()
		return nil, fmt.Errorf("open store: %w", err)
	}
	d.store = st
	d.closers = append(d.closers, st.Close)
	d.sessions = auth.NewSessionManager(st.SessionRepo())

	if d.demo {
		d.backend = demoBackend()
	} else {
		d.backend = api.NewClient(cfg.APIBaseURL, cfg.RequestTimeout)
	}

	d.logger.Debug("opened", "demo", d.demo, "api", cfg.APIBaseURL, "db", dbPath)
	return d, nil
}

// Close releases everything openDeps opened, newest first.
func (d *deps) Close() error {
	var errs []error
	for i := len(d.closers) - 1; i >= 0; i-- {
		errs = append(errs, d.closers[i]())
	}
	d.closers = nil
	return errors.Join(errs...)
}
