package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdxmph/todos/internal/listing"
)

func newDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "delete POSITION",
		Aliases: []string{"rm"},
		Short:   "Delete a task by its shown position",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := a.resolvePosition(args[0])
			if err != nil {
				return err
			}

			if err := a.db.DeleteTask(id); err != nil {
				return err
			}

			r := a.renderer(cmd)
			fmt.Fprintln(cmd.OutOrStdout(), r.Danger(fmt.Sprintf("Deleted task (id=%d)", id)))
			return a.showTasks(cmd, listing.Options{})
		},
	}
}
