package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/samhoang/ccplus/internal/permissions"
)

var permissionsCmd = &cobra.Command{
	Use:     "permissions [category...]",
	Aliases: []string{"perms"},
	Short:   "List the safe command catalogue",
	Long: `List the permission patterns the installer adds to settings.json.

Without arguments, prints each category with its pattern count. With category
names, prints every pattern in those categories.

Examples:
  claude-code-plus permissions
  claude-code-plus permissions git github`,
	ValidArgsFunction: completeCategories,
	RunE:              runPermissions,
}

func init() {
	rootCmd.AddCommand(permissionsCmd)
}

func runPermissions(cmd *cobra.Command, args []string) error {
	catalogue, err := permissions.Load()
	if err != nil {
		return err
	}

	if len(args) == 0 {
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "CATEGORY\tPATTERNS\tDESCRIPTION")
		for _, c := range catalogue.Categories {
			fmt.Fprintf(w, "%s\t%d\t%s\n", c.Name, len(c.Patterns()), c.Description)
		}
		w.Flush()
		fmt.Println()
		fmt.Printf("Total: %d patterns\n", len(catalogue.All()))
		return nil
	}

	for n, name := range args {
		c, ok := catalogue.Category(name)
		if !ok {
			return fmt.Errorf("unknown category %q", name)
		}
		if n > 0 {
			fmt.Println()
		}
		fmt.Printf("# %s: %s\n", c.Name, c.Description)
		for _, p := range c.Patterns() {
			fmt.Println(p)
		}
	}
	return nil
}
