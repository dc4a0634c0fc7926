package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdxmph/todos/internal/export"
	"github.com/pdxmph/todos/internal/listing"
)

func newExportCmd(a *app) *cobra.Command {
	var filters filterFlags
	var format string

	cmd := &cobra.Command{
		Use:   "export PATH",
		Short: "Export tasks (filtered) to CSV, JSON or PDF",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]

			opts, err := filters.options()
			if err != nil {
				return err
			}
			f, err := export.Resolve(path, format)
			if err != nil {
				return fmt.Errorf("%w: %v", listing.ErrInvalidArgument, err)
			}

			tasks, err := a.db.ListTasks()
			if err != nil {
				return err
			}
			filtered := listing.Apply(tasks, opts)

			if err := export.ToFile(path, f, filtered); err != nil {
				return err
			}
			a.log.WithField("path", path).WithField("count", len(filtered)).Debug("exported tasks")

			r := a.renderer(cmd)
			fmt.Fprintln(cmd.OutOrStdout(), r.Success(fmt.Sprintf("Exported %d tasks to %s", len(filtered), path)))
			return nil
		},
	}

	filters.register(cmd, false)
	cmd.Flags().StringVar(&format, "format", "", "Output format: "+strings.Join(export.Formats(), "|")+" (default from file extension, else csv)")

	return cmd
}
