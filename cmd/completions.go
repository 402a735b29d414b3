package cmd

import (
	"slices"

	"github.com/spf13/cobra"

	"github.com/samhoang/ccplus/internal/permissions"
)

// completeCategories completes permission category names not already given
func completeCategories(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	catalogue, err := permissions.Load()
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	var names []string
	for _, c := range catalogue.Categories {
		if !slices.Contains(args, c.Name) {
			names = append(names, c.Name+"\t"+c.Description)
		}
	}
	return names, cobra.ShellCompDirectiveNoFileComp
}
