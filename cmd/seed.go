package cmd

import (
	"fmt"

	"github.com/juanibiapina/venue/internal/app"
	"github.com/spf13/cobra"
)

var seedFile string

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Import a venue catalog",
	Long: `Import venues, reviews and testimonials. Without --file the built-in
sample catalog is imported. Venues already present are updated.

Catalog file format (TOML):
  [[venue]]
  id = "grand-hall"
  kind = "event_center"
  name = "Grand Hall"
  city = "Lagos"
  capacity = 800
  price_from = 45000
  description = "..."

    [[venue.review]]
    id = "gh-1"
    author = "Ada"
    rating = 5
    body = "..."
    date = 2025-11-02T10:00:00Z

  [[testimonial]]
  id = "t-1"
  author = "Tunde"
  rating = 5
  body = "..."`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *app.App) error {
			stats, err := a.Seed(cmd.Context(), seedFile)
			if err != nil {
				return fmt.Errorf("failed to import catalog: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d venues, %d reviews, %d testimonials\n",
				stats.Venues, stats.Reviews, stats.Testimonials)
			return nil
		})
	},
}

func init() {
	seedCmd.Flags().StringVarP(&seedFile, "file", "f", "", "Catalog TOML file")
	RootCmd.AddCommand(seedCmd)
}
