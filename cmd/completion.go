package cmd

import (
	"strings"

	"github.com/juanibiapina/venue/internal/app"
	"github.com/juanibiapina/venue/internal/storage"
	"github.com/spf13/cobra"
)

// completeVenueIDs provides completion for venue IDs
func completeVenueIDs(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	var completions []string
	err := withApp(func(a *app.App) error {
		venues, err := a.Store.ListVenues(cmd.Context(), storage.VenueFilter{})
		if err != nil {
			return err
		}
		for _, v := range venues {
			if strings.HasPrefix(v.ID, toComplete) {
				// Format: id\tname (tab-separated for description)
				completions = append(completions, v.ID+"\t"+v.Name)
			}
		}
		return nil
	})
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}

	return completions, cobra.ShellCompDirectiveNoFileComp
}
