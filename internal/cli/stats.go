package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newStatsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show simple stats",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.db.Stats()
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), a.renderer(cmd).Stats(s))
			return nil
		},
	}
}
