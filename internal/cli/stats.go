package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"votomatch/internal/config"
	"votomatch/internal/database"
	"votomatch/internal/output"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show snapshot row counts",
	Long: `Display the row counts of the currently loaded snapshot.

Examples:
  votomatch stats
  votomatch stats -o json`,
	RunE: runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	stats, err := db.Counts(ctx)
	if err != nil {
		return err
	}

	return output.Output(outputFmt, stats)
}
