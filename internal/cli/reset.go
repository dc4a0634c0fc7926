package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newResetCmd(a *app) *cobra.Command {
	var confirm bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Reset the database (delete all tasks). Use --confirm to actually reset.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r := a.renderer(cmd)
			if !confirm {
				fmt.Fprintln(cmd.OutOrStdout(), r.Danger("This command will delete your database. Re-run with --confirm to proceed."))
				return nil
			}

			if err := a.db.Reset(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), r.Warning("Database reset complete."))
			return nil
		},
	}

	cmd.Flags().BoolVar(&confirm, "confirm", false, "Confirm reset; destroys all tasks")
	return cmd
}
