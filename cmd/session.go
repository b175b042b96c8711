package cmd

import (
	"errors"
	"fmt"

	"github.com/juanibiapina/venue/internal/app"
	"github.com/juanibiapina/venue/internal/session"
	"github.com/spf13/cobra"
)

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Log out",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *app.App) error {
			if err := a.Logout(); err != nil {
				return fmt.Errorf("failed to log out: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
			return nil
		})
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the logged-in email",
	Long: `Show the logged-in email.

Exit codes:
  0: Logged in
  1: Not logged in`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *app.App) error {
			email, err := a.CurrentUser()
			if errors.Is(err, session.ErrNotLoggedIn) {
				return errors.New("not logged in, run: venue login --email <address>")
			}
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), email)
			return nil
		})
	},
}

func init() {
	RootCmd.AddCommand(logoutCmd)
	RootCmd.AddCommand(whoamiCmd)
}
