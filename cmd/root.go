package cmd

import (
	"context"
	"fmt"

	"github.com/abhisek/lectern/internal/auth"
	"github.com/abhisek/lectern/internal/config"
	"github.com/abhisek/lectern/internal/store"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:          "lectern",
	Short:        "Terminal course player",
	Long:         "Lectern plays online courses in the terminal: browse the outline, watch lessons in order, and track completion.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd, auth.ListingRoute())
	},
}

func Execute() error {
	return rootCmd.ExecuteContext(context.Background())
}

func init() {
	rootCmd.PersistentFlags().String("api", "", "Course API base URL (overrides LECTERN_API_URL env var)")
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides LECTERN_DB env var)")
	rootCmd.PersistentFlags().String("env", "", "Log format: local, dev or prod (overrides LECTERN_ENV env var)")
	rootCmd.PersistentFlags().Bool("demo", false, "Use a built-in sample course instead of the API")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)
	rootCmd.AddCommand(outlineCmd)
	rootCmd.AddCommand(eventsCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig reads the environment, applies flags on top, and validates.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.FromEnv()
	if err != nil {
		return cfg, err
	}
	if v, _ := cmd.Flags().GetString("api"); v != "" {
		cfg.APIBaseURL = v
	}
	if v, _ := cmd.Flags().GetString("db"); v != "" {
		cfg.DBPath = v
	}
	if v, _ := cmd.Flags().GetString("env"); v != "" {
		cfg.Env = v
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// resolveDBPath returns the configured path (creating its directory) or the
// default XDG path.
func resolveDBPath(cfg config.Config) (string, error) {
	if cfg.DBPath != "" {
		return cfg.DBPath, store.EnsureDir(cfg.DBPath)
	}
	return store.DefaultDBPath()
}

func isDemo(cmd *cobra.Command) bool {
	demo, _ := cmd.Flags().GetBool("demo")
	return demo
}
