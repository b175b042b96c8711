package cmd

import (
	"fmt"

	"github.com/juanibiapina/venue/internal/app"
	"github.com/juanibiapina/venue/internal/nav"
	"github.com/spf13/cobra"
)

var (
	loginEmail     string
	loginCode      string
	loginPrintCode bool
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in with a one-time code",
	Long: `Log in in two steps. Without --code, a one-time code is sent to the email
address. Run again with the code to log in. The login is kept until logout.

Example:
  venue login --email ada@example.com
  venue login --email ada@example.com --code 1234`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *app.App) error {
			out := cmd.OutOrStdout()
			if loginCode == "" {
				code, err := a.RequestLoginCode(cmd.Context(), loginEmail)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "Code sent to %s\n", loginEmail)
				if loginPrintCode {
					fmt.Fprintf(out, "Code: %s\n", code)
				}
				return nil
			}

			next, err := a.Login(cmd.Context(), loginEmail, loginCode, true, nav.PathHome)
			if err != nil {
				return err
			}
			user, _ := a.CurrentUser()
			fmt.Fprintf(out, "Logged in as %s\n", user)
			if next != nav.PathHome {
				fmt.Fprintf(out, "Continue with: venue tui --path %s\n", next)
			}
			return nil
		})
	},
}

func init() {
	loginCmd.Flags().StringVar(&loginEmail, "email", "", "Email address")
	loginCmd.Flags().StringVar(&loginCode, "code", "", "Code received by email")
	loginCmd.Flags().BoolVar(&loginPrintCode, "print-code", false, "Print the code (local use, no mail delivery)")
	loginCmd.MarkFlagRequired("email")
	RootCmd.AddCommand(loginCmd)
}
