package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newSearchCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "search QUERY",
		Short: "Search tasks by text in task or category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			results, err := a.db.Search(args[0])
			if err != nil {
				return err
			}

			r := a.renderer(cmd)
			if len(results) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), r.Warning("No results found."))
				return nil
			}

			// rows are numbered within the results, not the full list
			fmt.Fprintln(cmd.OutOrStdout(), r.Tasks(results))
			return nil
		},
	}
}
