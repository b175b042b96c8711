package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/juanibiapina/venue/internal/app"
	"github.com/juanibiapina/venue/internal/storage"
	"github.com/spf13/cobra"
)

var bookingsJSON bool

var bookingsCmd = &cobra.Command{
	Use:   "bookings",
	Short: "List your bookings",
	Long: `List the logged-in user's bookings, upcoming first.

Output format:
  <booking_id>  <status>  <event date>  <guests>  <venue_id>

Where status is ✓ (confirmed) or ◉ (pending confirmation).`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *app.App) error {
			bookings, err := a.Bookings(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to list bookings: %w", err)
			}

			if len(bookings) == 0 {
				if bookingsJSON {
					fmt.Fprintln(cmd.OutOrStdout(), "[]")
				} else {
					fmt.Fprintln(cmd.OutOrStdout(), "No bookings found")
				}
				return nil
			}

			if bookingsJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(bookings)
			}

			for _, b := range bookings {
				status := "◉ pending"
				if b.Status == storage.BookingConfirmed {
					status = "✓ confirmed"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s  %-11s  %s  %5d guests  %s\n",
					b.ID, status, b.EventDate.Format("2006-01-02"), b.Guests, b.VenueID)
			}
			return nil
		})
	},
}

func init() {
	bookingsCmd.Flags().BoolVar(&bookingsJSON, "json", false, "Output in JSON format")
	RootCmd.AddCommand(bookingsCmd)
}
