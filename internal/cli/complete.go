package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdxmph/todos/internal/listing"
)

func newCompleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "complete POSITION",
		Aliases: []string{"done"},
		Short:   "Mark a task completed by its shown position",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := a.resolvePosition(args[0])
			if err != nil {
				return err
			}

			if err := a.db.CompleteTask(id); err != nil {
				return err
			}

			r := a.renderer(cmd)
			fmt.Fprintln(cmd.OutOrStdout(), r.Info(fmt.Sprintf("Completed task (id=%d)", id)))
			return a.showTasks(cmd, listing.Options{})
		},
	}
}
