package cmd

import (
	"errors"
	"fmt"

	"github.com/juanibiapina/venue/internal/app"
	"github.com/juanibiapina/venue/internal/nav"
	"github.com/juanibiapina/venue/internal/session"
	"github.com/spf13/cobra"
)

var (
	bookDate      string
	bookGuests    int
	bookPrintCode bool
)

var bookCmd = &cobra.Command{
	Use:               "book <venue_id>",
	Short:             "Book a venue for a date",
	ValidArgsFunction: completeVenueIDs,
	Long: `Create a pending booking for the logged-in user. A confirmation code is
sent by email; confirm the booking with 'venue confirm'.

Example:
  venue book grand-hall --date 2026-12-31 --guests 250
  venue confirm <booking_id> --code 1234`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *app.App) error {
			b, code, err := a.CreateBooking(cmd.Context(), app.BookingRequest{
				VenueID:   args[0],
				EventDate: bookDate,
				Guests:    bookGuests,
			})
			if errors.Is(err, session.ErrNotLoggedIn) {
				a.Require(nav.BookPath(args[0]))
				return errors.New("log in first: venue login --email <address>")
			}
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Booking %s created for %s on %s (%d guests)\n",
				b.ID, b.VenueID, b.EventDate.Format("2006-01-02"), b.Guests)
			fmt.Fprintf(out, "Confirm with: venue confirm %s --code <code>\n", b.ID)
			if bookPrintCode {
				fmt.Fprintf(out, "Code: %s\n", code)
			}
			return nil
		})
	},
}

var confirmCode string

var confirmCmd = &cobra.Command{
	Use:   "confirm <booking_id>",
	Short: "Confirm a pending booking",
	Long:  `Confirm a pending booking with the code sent when it was created.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *app.App) error {
			if err := a.ConfirmBooking(cmd.Context(), args[0], confirmCode); err != nil {
				return fmt.Errorf("failed to confirm booking: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Booking %s confirmed\n", args[0])
			return nil
		})
	},
}

func init() {
	bookCmd.Flags().StringVar(&bookDate, "date", "", "Event date as YYYY-MM-DD")
	bookCmd.Flags().IntVar(&bookGuests, "guests", 0, "Number of guests")
	bookCmd.Flags().BoolVar(&bookPrintCode, "print-code", false, "Print the confirmation code (local use, no mail delivery)")
	bookCmd.MarkFlagRequired("date")
	bookCmd.MarkFlagRequired("guests")
	RootCmd.AddCommand(bookCmd)

	confirmCmd.Flags().StringVar(&confirmCode, "code", "", "Confirmation code")
	confirmCmd.MarkFlagRequired("code")
	RootCmd.AddCommand(confirmCmd)
}
