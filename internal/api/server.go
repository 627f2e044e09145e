// Package api exposes the card sampler, the match scorer and the AI
// simplifier over HTTP for the frontend.
package api

import (
	"context"
	"log/slog"
	"math/rand"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"votomatch/internal/config"
	"votomatch/internal/database"
	"votomatch/internal/metrics"
	"votomatch/internal/simplify"
)

type ctxKey string

const requestIDKey ctxKey = "request_id"

// Server wires the HTTP handlers to their dependencies. All collaborators
// are injected so tests can substitute them.
type Server struct {
	db      *database.DB
	ai      *simplify.Client
	logger  *slog.Logger
	metrics *metrics.Metrics
	cfg     config.ServerConfig

	mu  sync.Mutex
	rng *rand.Rand
}

// New constructs the server. A zero config seed draws one from the clock;
// a fixed seed makes card sampling reproducible.
func New(db *database.DB, ai *simplify.Client, logger *slog.Logger, m *metrics.Metrics, cfg config.ServerConfig) *Server {
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Server{
		db:      db,
		ai:      ai,
		logger:  logger,
		metrics: m,
		cfg:     cfg,
		rng:     rand.New(rand.NewSource(seed)),
	}
}

// Router builds the HTTP routing table.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(s.requestID)

	r.Get("/healthz", s.handleHealth)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Get("/cards", s.handleCards)
		r.Post("/match", s.handleMatch)
		r.Post("/explain", s.handleExplain)
	})

	return r
}

// ListenAndServe runs the server until ctx is cancelled, then drains
// in-flight requests.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	s.logger.Info("server listening", "addr", s.cfg.Addr)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// cardOffset draws the sampling offset for one card request. The rand source
// is not goroutine safe, hence the lock.
func (s *Server) cardOffset() int {
	if s.cfg.CardOffset == 0 {
		return 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Intn(s.cfg.CardOffset + 1)
}

func (s *Server) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.New().String()
		w.Header().Set("X-Request-Id", id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey, id)))
	})
}

func requestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}
