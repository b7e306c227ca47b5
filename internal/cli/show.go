package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mcoot/connections-leaderboard/internal/model"
	"github.com/mcoot/connections-leaderboard/internal/ranking"
	"github.com/mcoot/connections-leaderboard/internal/services/broadcast"
)

func newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <community> [puzzle|today]",
		Short: "Print a community's daily leaderboard",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			community := model.CommunityID(args[0])

			lb, err := boards.Snapshot(cmd.Context(), community)
			if err != nil {
				return err
			}
			if lb.IsEmpty() {
				fmt.Println(broadcast.NoticeNoPuzzles)
				return nil
			}

			puzzle, ok := lb.LatestPuzzle()
			if len(args) == 2 && args[1] != "today" {
				var n int
				if _, err := fmt.Sscanf(args[1], "%d", &n); err != nil {
					return fmt.Errorf("invalid puzzle number %q", args[1])
				}
				puzzle = model.PuzzleID(n)
				ok = true
			}
			if !ok {
				fmt.Println(broadcast.NoticeNoPuzzles)
				return nil
			}

			entries := ranking.Daily(lb, puzzle)
			if len(entries) == 0 {
				fmt.Printf("No results yet for Puzzle #%d.\n", puzzle)
				return nil
			}
			fmt.Print(broadcast.RenderDaily(puzzle, entries))
			return nil
		},
	}
}

func newCommunitiesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "communities",
		Short: "List communities with stored records",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			communities, err := boards.Communities(cmd.Context())
			if err != nil {
				return err
			}
			for _, community := range communities {
				fmt.Println(community)
			}
			return nil
		},
	}
}

func newPathCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "path <community>",
		Short: "Print the community's record file path",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println(boards.RecordKey(model.CommunityID(args[0])))
			return nil
		},
	}
}
