package cmd

import (
	"errors"
	"fmt"

	"github.com/abhisek/lectern/internal/api"
	"github.com/spf13/cobra"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in without opening the player",
	RunE: func(cmd *cobra.Command, args []string) error {
		email, _ := cmd.Flags().GetString("email")
		password, _ := cmd.Flags().GetString("password")
		if email == "" || password == "" {
			return fmt.Errorf("--email and --password are required")
		}

		d, err := openDeps(cmd, false)
		if err != nil {
			return err
		}
		defer d.Close()

		ctx := cmd.Context()
		sess, err := d.backend.Login(ctx, email, password)
		if errors.Is(err, api.ErrUnauthorized) {
			return fmt.Errorf("wrong email or password")
		}
		if err != nil {
			return fmt.Errorf("sign in: %w", err)
		}
		saved, err := d.sessions.Save(ctx, *sess)
		if err != nil {
			return fmt.Errorf("save session: %w", err)
		}

		fmt.Printf("Signed in as %s (%s)\n", displayName(saved.Email, saved.UserID), saved.UserID)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the saved session",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := openDeps(cmd, false)
		if err != nil {
			return err
		}
		defer d.Close()

		if err := d.sessions.Clear(cmd.Context()); err != nil {
			return fmt.Errorf("clear session: %w", err)
		}
		fmt.Println("Signed out")
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the saved session",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := openDeps(cmd, false)
		if err != nil {
			return err
		}
		defer d.Close()

		sess, err := d.sessions.Load(cmd.Context())
		if err != nil {
			return fmt.Errorf("load session: %w", err)
		}
		if !sess.Valid() {
			fmt.Println("Not signed in")
			return nil
		}
		fmt.Printf("User:      %s\n", sess.UserID)
		fmt.Printf("Email:     %s\n", displayName(sess.Email, "-"))
		if !sess.SavedAt.IsZero() {
			fmt.Printf("Signed in: %s\n", sess.SavedAt.Local().Format("2006-01-02 15:04:05"))
		}
		return nil
	},
}

func displayName(primary, fallback string) string {
	if primary != "" {
		return primary
	}
	return fallback
}

func init() {
	loginCmd.Flags().String("email", "", "Account email (required)")
	loginCmd.Flags().String("password", "", "Account password (required)")
}
