package cmd

import (
	"fmt"

	"github.com/juanibiapina/venue/internal/app"
	"github.com/juanibiapina/venue/internal/listing"
	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:               "show <venue_id>",
	Short:             "Show a venue",
	Long:              `Show a venue's details and description.`,
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completeVenueIDs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *app.App) error {
			v, err := a.Venue(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			reviews, err := a.Reviews(cmd.Context(), v.ID)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s (%s)\n", v.Name, v.ID)
			fmt.Fprintf(out, "%s • up to %s guests • from %s • ★ %.1f from %d reviews\n\n",
				v.City, listing.FormatCount(v.Capacity), listing.FormatPrice(v.PriceFrom), v.Rating, len(reviews))
			fmt.Fprintln(out, v.Description)
			return nil
		})
	},
}

func init() {
	RootCmd.AddCommand(showCmd)
}
