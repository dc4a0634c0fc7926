package cli

import (
	"github.com/spf13/cobra"
)

func newShowCmd(a *app) *cobra.Command {
	var filters filterFlags

	cmd := &cobra.Command{
		Use:     "show",
		Aliases: []string{"list", "ls"},
		Short:   "Show tasks (supports filters)",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := filters.options()
			if err != nil {
				return err
			}
			return a.showTasks(cmd, opts)
		},
	}

	filters.register(cmd, true)
	return cmd
}
