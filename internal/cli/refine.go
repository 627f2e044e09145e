package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"votomatch/internal/config"
	"votomatch/internal/output"
	"votomatch/internal/refinery"
	"votomatch/internal/table"
)

var (
	refineBills  string
	refineEvents string
	refineVotes  string
	refineOut    string
)

var refineCmd = &cobra.Command{
	Use:   "refine",
	Short: "Filter the raw exports into a referentially closed snapshot",
	Long: `Refine runs the three-stage referential filter over the raw CSV
exports: bills anchor the valid id set, events referencing unknown bills are
dropped, and votes referencing dropped events are dropped with them.

The closed tables are written to the output directory as upload_leis.csv,
upload_eventos.csv and upload_votos.csv. A missing source file or a missing
mandatory column degrades that stage (and everything downstream) to an empty
table instead of failing the run.

Examples:
  votomatch refine                          # paths from config
  votomatch refine --bills=./proposicoes.csv --out=./out
  votomatch refine -o json                  # machine-readable report`,
	RunE: runRefine,
}

func init() {
	rootCmd.AddCommand(refineCmd)
	refineCmd.Flags().StringVar(&refineBills, "bills", "", "Bill export CSV (default: from config)")
	refineCmd.Flags().StringVar(&refineEvents, "events", "", "Event export CSV (default: from config)")
	refineCmd.Flags().StringVar(&refineVotes, "votes", "", "Vote export CSV (default: from config)")
	refineCmd.Flags().StringVar(&refineOut, "out", "", "Output directory (default: from config)")
}

func runRefine(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	billsPath := override(refineBills, cfg.Data.BillsCSV)
	eventsPath := override(refineEvents, cfg.Data.EventsCSV)
	votesPath := override(refineVotes, cfg.Data.VotesCSV)
	outDir := override(refineOut, cfg.Data.OutputDir)

	if err := cfg.EnsureDirectories(); err != nil {
		return err
	}

	fmt.Println("Refining raw exports...")
	bills := readSource(billsPath, "bills")
	events := readSource(eventsPath, "events")
	votes := readSource(votesPath, "votes")

	res := refinery.Run(bills, events, votes)

	outputs := []struct {
		name string
		data *table.Table
	}{
		{"upload_leis.csv", res.Bills},
		{"upload_eventos.csv", res.Events},
		{"upload_votos.csv", res.Votes},
	}
	for _, out := range outputs {
		path := filepath.Join(outDir, out.name)
		written, err := table.WriteFile(path, out.data)
		if err != nil {
			return err
		}
		if !written {
			fmt.Printf("  nothing to save in %s\n", out.name)
			continue
		}
		fmt.Printf("  saved %s (%d rows)\n", path, out.data.Len())
	}

	fmt.Println()
	return output.Output(outputFmt, &res.Report)
}

// readSource reads one raw export, degrading to nil when the file cannot be
// read; the pipeline reports the missing source instead of the run failing.
func readSource(path, label string) *table.Table {
	t, err := table.ReadFile(path)
	if err != nil {
		fmt.Printf("  %s: %v\n", label, err)
		return nil
	}
	fmt.Printf("  reading %s (%d rows", path, t.Len())
	if t.Skipped > 0 {
		fmt.Printf(", %d malformed skipped", t.Skipped)
	}
	fmt.Println(")")
	return t
}

func override(flag, fallback string) string {
	if flag != "" {
		return flag
	}
	return fallback
}
