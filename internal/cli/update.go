package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdxmph/todos/internal/db"
	"github.com/pdxmph/todos/internal/listing"
)

func newUpdateCmd(a *app) *cobra.Command {
	var task, category, priority, due string

	cmd := &cobra.Command{
		Use:   "update POSITION",
		Short: "Update fields of a task (by shown position)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var u db.TaskUpdate

			if cmd.Flags().Changed("task") {
				if strings.TrimSpace(task) == "" {
					return fmt.Errorf("%w: task description cannot be empty", listing.ErrInvalidArgument)
				}
				u.Task = &task
			}
			if cmd.Flags().Changed("category") {
				u.Category = &category
			}
			if priority != "" {
				p, err := listing.ParsePriority(priority)
				if err != nil {
					return err
				}
				u.Priority = &p
			}
			if due != "" {
				d, err := listing.NormalizeDate(due)
				if err != nil {
					return err
				}
				u.DueDate = &d
			}

			id, err := a.resolvePosition(args[0])
			if err != nil {
				return err
			}

			if err := a.db.UpdateTask(id, u); err != nil {
				return err
			}

			r := a.renderer(cmd)
			fmt.Fprintln(cmd.OutOrStdout(), r.Success(fmt.Sprintf("Updated task (id=%d)", id)))
			return a.showTasks(cmd, listing.Options{})
		},
	}

	cmd.Flags().StringVar(&task, "task", "", "New description")
	cmd.Flags().StringVar(&category, "category", "", "New category")
	cmd.Flags().StringVar(&priority, "priority", "", "low|medium|high")
	cmd.Flags().StringVar(&due, "due", "", "New due date YYYY-MM-DD")

	return cmd
}
