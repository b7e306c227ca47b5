// Package cli implements lbctl, an offline inspection tool for stored
// leaderboard records. It reads the same file-backed records as the bot, so
// operators can examine or fix state without a running process.
package cli

import (
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/mcoot/connections-leaderboard/internal/services/leaderboard"
	filestorage "github.com/mcoot/connections-leaderboard/internal/storage/file"
)

var (
	dataDir string
	boards  *leaderboard.Service
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "lbctl",
		Short: "Inspect and manage stored puzzle leaderboards",
		Long: `lbctl works directly on the bot's file-backed leaderboard records.

It can list communities, print daily and weekly leaderboards, and clear a
community's record, all without a running bot.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			store, err := filestorage.New(dataDir)
			if err != nil {
				return err
			}
			boards = leaderboard.New(store, slog.New(slog.NewTextHandler(io.Discard, nil)))
			return nil
		},
		SilenceUsage: true,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", defaultDataDir(), "Leaderboard data directory (env: CONNLB_DATA_DIR)")

	// Add subcommands
	rootCmd.AddCommand(newCommunitiesCmd())
	rootCmd.AddCommand(newShowCmd())
	rootCmd.AddCommand(newWeeklyCmd())
	rootCmd.AddCommand(newClearCmd())
	rootCmd.AddCommand(newPathCmd())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func defaultDataDir() string {
	if dir := os.Getenv("CONNLB_DATA_DIR"); dir != "" {
		return dir
	}
	return "data"
}
