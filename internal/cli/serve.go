package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"votomatch/internal/api"
	"votomatch/internal/config"
	"votomatch/internal/database"
	"votomatch/internal/metrics"
	"votomatch/internal/simplify"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the match API over HTTP",
	Long: `Serve exposes the loaded snapshot over HTTP:

  GET  /api/cards    votation cards for the swipe UI
  POST /api/match    legislator affinity ranking for a set of user votes
  POST /api/explain  plain-language rendition of a bill summary (Gemini)
  GET  /healthz      liveness
  GET  /metrics      prometheus metrics

The Gemini key is read from the GEMINI_API_KEY environment variable; without
it /api/explain answers 503 and everything else works normally.

Examples:
  votomatch serve
  votomatch serve --addr=:9000`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (default: from config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if serveAddr != "" {
		cfg.Server.Addr = serveAddr
	}

	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	m := metrics.New(prometheus.DefaultRegisterer)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	stats, err := db.Counts(ctx)
	if err != nil {
		return err
	}
	m.SetSnapshotRows("leis", stats.Bills)
	m.SetSnapshotRows("eventos", stats.Events)
	m.SetSnapshotRows("votos", stats.Votes)
	m.SetSnapshotRows("deputados", stats.Legislators)
	if stats.Votes == 0 {
		logger.Warn("snapshot is empty, run 'votomatch refine' and 'votomatch load' first")
	}

	ai := simplify.New(cfg.AI.Endpoint, cfg.AI.Model, os.Getenv("GEMINI_API_KEY"))
	if !ai.Configured() {
		logger.Warn("GEMINI_API_KEY not set, /api/explain disabled")
	}

	srv := api.New(db, ai, logger, m, cfg.Server)
	if err := srv.ListenAndServe(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
