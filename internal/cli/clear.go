package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mcoot/connections-leaderboard/internal/model"
)

func newClearCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "clear <community>",
		Short: "Delete a community's leaderboard record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			community := model.CommunityID(args[0])
			if !force {
				return fmt.Errorf("refusing to clear %s without --force", community)
			}
			if err := boards.Clear(cmd.Context(), community); err != nil {
				return err
			}
			fmt.Printf("Cleared leaderboard for %s\n", community)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Actually delete the record")
	return cmd
}
