package cmd

import (
	"github.com/juanibiapina/venue/internal/app"
	"github.com/juanibiapina/venue/internal/nav"
	"github.com/juanibiapina/venue/internal/tui"
	"github.com/spf13/cobra"
)

var (
	tuiPath        string
	tuiRevealCodes bool
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive browser",
	Long: `Launch a full-screen terminal browser for venues and caterers.

SCREENS:
  /                    Featured event centers and customer testimonials
  /venues              All event centers, paged, with search and price filter
  /catering            All caterers
  /venues/<id>         Venue details and a review carousel
  /venues/<id>/reviews Every review, paged
  /book/<id>           Book a venue (login required)
  /bookings            Your bookings (login required)
  /login               Log in with a one-time code

KEYBINDINGS:

  Navigation:
    ↑/k ↓/j   Move the selection
    enter     Open the selected venue
    esc       Go back
    g         Home
    e / t     Event centers / catering
    m         My bookings

  Carousels:
    ←/h →/l   Previous / next page (wraps around)
    1-9       Jump to a page
    click     Arrows and dots are clickable

  Listings:
    /         Search by name
    f         Price range filter (tab switches handle)
    r         Reload after an error

  Code entry:
    0-9       Fill the focused cell
    backspace Clear the cell, or move back
    ctrl+v    Paste the whole code
    ctrl+r    Send a new code

  Global:
    L / O     Log in / log out
    ?         Show help overlay
    q         Quit

Example:
  venue tui --path /catering`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *app.App) error {
			opts := tuiOptions(a.Config, tuiPath)
			opts.RevealCodes = tuiRevealCodes
			return tui.Start(a, opts)
		})
	},
}

func init() {
	tuiCmd.Flags().StringVar(&tuiPath, "path", nav.PathHome, "Screen to open, e.g. /venues or /venues/<id>")
	tuiCmd.Flags().BoolVar(&tuiRevealCodes, "print-codes", false, "Show one-time codes in the status bar (local use, no mail delivery)")
	RootCmd.AddCommand(tuiCmd)
}
