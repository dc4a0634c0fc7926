package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdxmph/todos/internal/db"
	"github.com/pdxmph/todos/internal/listing"
)

func newAddCmd(a *app) *cobra.Command {
	var priority, due string

	cmd := &cobra.Command{
		Use:   "add TASK CATEGORY",
		Short: "Add a new task",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			task, category := args[0], args[1]
			if strings.TrimSpace(task) == "" {
				return fmt.Errorf("%w: task description cannot be empty", listing.ErrInvalidArgument)
			}

			dueDate, err := listing.NormalizeOptionalDate(due)
			if err != nil {
				return err
			}
			p, err := listing.ParsePriority(priority)
			if err != nil {
				return err
			}

			id, err := a.db.Insert(db.Task{
				Task:     task,
				Category: category,
				Priority: p,
				DueDate:  db.NewNullString(dueDate),
			})
			if err != nil {
				return err
			}

			r := a.renderer(cmd)
			fmt.Fprintf(cmd.OutOrStdout(), "%s (id=%d): %s\n", r.Success("Added task"), id, task)
			return a.showTasks(cmd, listing.Options{})
		},
	}

	cmd.Flags().StringVarP(&priority, "priority", "p", string(db.PriorityMedium), "low|medium|high")
	cmd.Flags().StringVarP(&due, "due", "d", "", "Due date YYYY-MM-DD")

	return cmd
}
