package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdxmph/todos/internal/db"
	"github.com/pdxmph/todos/internal/listing"
)

func newSeedCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:    "seed",
		Short:  "Add a set of sample tasks",
		Hidden: true,
		Args:   cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := db.SeedFixtures(a.db)
			if err != nil {
				return err
			}

			r := a.renderer(cmd)
			fmt.Fprintln(cmd.OutOrStdout(), r.Success(fmt.Sprintf("Added %d sample tasks.", n)))
			return a.showTasks(cmd, listing.Options{})
		},
	}
}
