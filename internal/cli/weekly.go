package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mcoot/connections-leaderboard/internal/model"
	"github.com/mcoot/connections-leaderboard/internal/ranking"
	"github.com/mcoot/connections-leaderboard/internal/services/broadcast"
)

func newWeeklyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "weekly <community>",
		Short: "Print a community's rolling weekly leaderboard",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lb, err := boards.Snapshot(cmd.Context(), model.CommunityID(args[0]))
			if err != nil {
				return err
			}
			if lb.IsEmpty() {
				fmt.Println(broadcast.NoticeNoPuzzles)
				return nil
			}

			considered := len(lb.RecentPuzzles(ranking.WeeklyWindow))
			fmt.Print(broadcast.RenderWeekly(considered, ranking.Weekly(lb)))
			return nil
		},
	}
}
