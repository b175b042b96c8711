package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/juanibiapina/venue/internal/app"
	"github.com/juanibiapina/venue/internal/carousel"
	"github.com/juanibiapina/venue/internal/listing"
	"github.com/juanibiapina/venue/internal/storage"
	"github.com/spf13/cobra"
)

// listingFlags are shared by venues and catering.
type listingFlags struct {
	search   string
	minPrice int
	maxPrice int
	page     int
	json     bool
}

func newListingCmd(use, short string, kind storage.Kind) *cobra.Command {
	var f listingFlags

	c := &cobra.Command{
		Use:   use,
		Short: short,
		Long: short + `, one page at a time.

Output format:
  <id>  <name>  <city>  <capacity>  <starting price>  <rating>

Example:
  venue ` + use + ` --search garden --max-price 50000 --page 2`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if f.page < 1 {
				return fmt.Errorf("--page must be at least 1")
			}
			return withApp(func(a *app.App) error {
				size := a.Config.ListPageSize
				r := a.QueryVenues(cmd.Context(), listing.Query{
					Kind:     kind,
					Search:   f.search,
					MinPrice: f.minPrice,
					MaxPrice: f.maxPrice,
					Limit:    size,
					Offset:   (f.page - 1) * size,
				})
				if r.Err != nil {
					return fmt.Errorf("failed to list venues: %w", r.Err)
				}

				if f.json {
					enc := json.NewEncoder(cmd.OutOrStdout())
					enc.SetIndent("", "  ")
					return enc.Encode(r.Data)
				}

				out := cmd.OutOrStdout()
				if len(r.Data) == 0 {
					fmt.Fprintln(out, "No venues found")
					return nil
				}
				for _, v := range r.Data {
					fmt.Fprintf(out, "%s  %s  %s  %s guests  from %s  ★ %.1f\n",
						v.ID, v.Name, v.City, listing.FormatCount(v.Capacity),
						listing.FormatPrice(v.PriceFrom), v.Rating)
				}
				fmt.Fprintf(out, "\npage %d of %d • %s venues\n",
					f.page, carousel.TotalPages(r.Total, size), listing.FormatCount(r.Total))
				return nil
			})
		},
	}

	c.Flags().StringVar(&f.search, "search", "", "Fuzzy match on the name")
	c.Flags().IntVar(&f.minPrice, "min-price", 0, "Lowest starting price")
	c.Flags().IntVar(&f.maxPrice, "max-price", 0, "Highest starting price (0: no limit)")
	c.Flags().IntVar(&f.page, "page", 1, "Page number, starting at 1")
	c.Flags().BoolVar(&f.json, "json", false, "Output in JSON format")
	return c
}

func init() {
	RootCmd.AddCommand(newListingCmd("venues", "List event centers", storage.KindEventCenter))
	RootCmd.AddCommand(newListingCmd("catering", "List caterers", storage.KindCaterer))
}
