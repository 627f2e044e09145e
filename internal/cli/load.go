package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"votomatch/internal/config"
	"votomatch/internal/database"
	"votomatch/internal/dataset"
	"votomatch/internal/table"
)

var loadDir string

var loadCmd = &cobra.Command{
	Use:   "load",
	Short: "Load the closed snapshot into the database",
	Long: `Load reads the closed CSV files produced by 'votomatch refine' plus
the legislator reference export, and replaces the database snapshot
wholesale. A load is all-or-nothing: on any failure the previous snapshot
stays in place.

Examples:
  votomatch load              # from the configured output directory
  votomatch load --dir=./out`,
	RunE: runLoad,
}

func init() {
	rootCmd.AddCommand(loadCmd)
	loadCmd.Flags().StringVar(&loadDir, "dir", "", "Directory holding the closed CSVs (default: from config)")
}

func runLoad(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	dir := override(loadDir, cfg.Data.OutputDir)

	billsTable, err := table.ReadFile(filepath.Join(dir, "upload_leis.csv"))
	if err != nil {
		return fmt.Errorf("reading bills: %w", err)
	}
	eventsTable, err := table.ReadFile(filepath.Join(dir, "upload_eventos.csv"))
	if err != nil {
		return fmt.Errorf("reading events: %w", err)
	}
	votesTable, err := table.ReadFile(filepath.Join(dir, "upload_votos.csv"))
	if err != nil {
		return fmt.Errorf("reading votes: %w", err)
	}

	bills, err := dataset.BillsFromTable(billsTable)
	if err != nil {
		return err
	}
	events, err := dataset.EventsFromTable(eventsTable)
	if err != nil {
		return err
	}
	votes, err := dataset.VotesFromTable(votesTable)
	if err != nil {
		return err
	}

	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	fmt.Printf("Loading snapshot (%d bills, %d events, %d votes)...\n",
		len(bills), len(events), len(votes))
	if err := db.ReplaceSnapshot(ctx, bills, events, votes); err != nil {
		return fmt.Errorf("failed to load snapshot: %w", err)
	}

	// Legislator reference data ships separately; keep the previous set
	// when the export is not around.
	legTable, err := table.ReadFile(cfg.Data.LegislatorsCSV)
	if os.IsNotExist(err) {
		fmt.Printf("Legislator export not found at %s, keeping current reference data\n",
			cfg.Data.LegislatorsCSV)
	} else if err != nil {
		return fmt.Errorf("reading legislators: %w", err)
	} else {
		legislators, err := dataset.LegislatorsFromTable(legTable)
		if err != nil {
			return err
		}
		if err := db.ReplaceLegislators(ctx, legislators); err != nil {
			return fmt.Errorf("failed to load legislators: %w", err)
		}
		fmt.Printf("Loaded %d legislators\n", len(legislators))
	}

	stats, err := db.Counts(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("Snapshot loaded: %d bills, %d events, %d votes, %d legislators\n",
		stats.Bills, stats.Events, stats.Votes, stats.Legislators)
	return nil
}
