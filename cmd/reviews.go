package cmd

import (
	"fmt"
	"strings"

	"github.com/juanibiapina/venue/internal/app"
	"github.com/spf13/cobra"
)

var reviewsPage int

var reviewsCmd = &cobra.Command{
	Use:               "reviews <venue_id>",
	Short:             "Show a page of a venue's reviews",
	ValidArgsFunction: completeVenueIDs,
	Long: `Show one page of a venue's reviews, newest first. Pages have the same
size as the review carousel in the browser (review-page-size).

Example:
  venue reviews grand-hall --page 2`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *app.App) error {
			p, err := a.ReviewPage(cmd.Context(), args[0], reviewsPage-1)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if p.TotalPages() == 0 {
				fmt.Fprintln(out, "No reviews yet")
				return nil
			}
			for _, r := range p.Visible() {
				rating := min(max(r.Rating, 0), 5)
				fmt.Fprintf(out, "%s%s  %s  %s\n", strings.Repeat("★", rating), strings.Repeat("☆", 5-rating),
					r.Author, r.CreatedAt.Format("2006-01-02"))
				fmt.Fprintf(out, "  %s\n\n", r.Body)
			}
			fmt.Fprintf(out, "page %d of %d\n", p.Page()+1, p.TotalPages())
			return nil
		})
	},
}

func init() {
	reviewsCmd.Flags().IntVar(&reviewsPage, "page", 1, "Page number, starting at 1")
	RootCmd.AddCommand(reviewsCmd)
}
