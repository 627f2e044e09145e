package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"votomatch/internal/config"
	"votomatch/internal/database"
	"votomatch/internal/dataset"
	"votomatch/internal/match"
	"votomatch/internal/output"
)

var matchVotes []string

var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Rank legislators against your positions",
	Long: `Match compares your stated positions with the recorded votes in the
snapshot and ranks the most aligned legislators.

Each --vote takes an event id and your position, separated by '='.

Examples:
  votomatch match --vote 2270800-43=sim --vote 2270801-12=não
  votomatch match --vote 2270800-43=sim -o json`,
	RunE: runMatch,
}

func init() {
	rootCmd.AddCommand(matchCmd)
	matchCmd.Flags().StringArrayVar(&matchVotes, "vote", nil, "Position as eventID=vote (repeatable)")
}

func runMatch(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	prefs := make([]match.Preference, 0, len(matchVotes))
	eventIDs := make([]string, 0, len(matchVotes))
	for _, raw := range matchVotes {
		eventID, vote, ok := strings.Cut(raw, "=")
		if !ok {
			return fmt.Errorf("invalid --vote %q, expected eventID=vote", raw)
		}
		prefs = append(prefs, match.Preference{EventID: eventID, Vote: vote})
		eventIDs = append(eventIDs, dataset.NormalizeID(eventID))
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	votes, err := db.VotesForEvents(ctx, eventIDs)
	if err != nil {
		return err
	}
	reference, err := db.Legislators(ctx)
	if err != nil {
		return err
	}

	ranking, err := match.Rank(prefs, votes, reference)
	if errors.Is(err, match.ErrNoPreferences) {
		return fmt.Errorf("no positions given, pass at least one --vote")
	}
	if err != nil {
		return err
	}

	return output.Output(outputFmt, ranking)
}
