package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdxmph/todos/internal/listing"
)

func newClearCompletedCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "clear-completed",
		Short: "Remove all completed tasks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			removed, err := a.db.ClearCompleted()
			if err != nil {
				return err
			}

			r := a.renderer(cmd)
			fmt.Fprintln(cmd.OutOrStdout(), r.Warning(fmt.Sprintf("Cleared %d completed task(s).", removed)))
			return a.showTasks(cmd, listing.Options{})
		},
	}
}
