package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus"

	"votomatch/internal/config"
	"votomatch/internal/database"
	"votomatch/internal/dataset"
	"votomatch/internal/match"
	"votomatch/internal/metrics"
	"votomatch/internal/simplify"
)

func setupServer(t *testing.T) *Server {
	t.Helper()

	db, err := database.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	ctx := context.Background()
	bills := []dataset.Bill{
		{ID: "1", Type: "PL", Number: "123", Year: 2025, Summary: "Dispõe sobre saúde", Theme: "Saúde"},
		{ID: "2", Type: "PLP", Number: "7", Year: 2024, Summary: "Dispõe sobre tributos"},
	}
	events := []dataset.Event{
		{ID: "E1", BillID: "1", Date: "2025-03-01", Description: "votação nominal"},
		{ID: "E2", BillID: "2", Date: "2025-04-02", Description: "votação em plenário"},
	}
	votes := []dataset.Vote{
		{EventID: "E1", LegislatorID: "D1", Value: "Sim"},
		{EventID: "E2", LegislatorID: "D1", Value: "Sim"},
		{EventID: "E1", LegislatorID: "D2", Value: "Não"},
		{EventID: "E2", LegislatorID: "D2", Value: "Obstrução"},
	}
	if err := db.ReplaceSnapshot(ctx, bills, events, votes); err != nil {
		t.Fatalf("failed to seed snapshot: %v", err)
	}
	legislators := []dataset.Legislator{
		{ID: "D1", Name: "Fulana de Tal", Party: "ABC", Region: "SP", Photo: "https://example.org/d1.jpg"},
		{ID: "D2", Name: "Beltrano Silva", Party: "DEF", Region: "RJ", Photo: "https://example.org/d2.jpg"},
	}
	if err := db.ReplaceLegislators(ctx, legislators); err != nil {
		t.Fatalf("failed to seed legislators: %v", err)
	}

	cfg := config.ServerConfig{
		Addr:       ":0",
		BillTypes:  []string{"PL", "PLP"},
		CardWindow: 40,
		CardOffset: 0, // deterministic window start in tests
		Seed:       1,
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	m := metrics.New(prometheus.NewRegistry())
	ai := simplify.New("http://localhost:0", "test-model", "") // unconfigured

	return New(db, ai, logger, m, cfg)
}

func TestHandleCards(t *testing.T) {
	srv := setupServer(t)
	router := srv.Router()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/api/cards", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var cards []Card
	if err := json.NewDecoder(rec.Body).Decode(&cards); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(cards) != 2 {
		t.Fatalf("cards = %d, want 2", len(cards))
	}
	if cards[0].Title != "PL 123/2025" {
		t.Errorf("title = %q, want %q", cards[0].Title, "PL 123/2025")
	}
	if cards[0].EventID != "E1" {
		t.Errorf("event id = %q, want E1", cards[0].EventID)
	}
	if cards[1].Theme != "" {
		t.Errorf("bill 2 has no theme, got %q", cards[1].Theme)
	}

	if got := rec.Header().Get("X-Request-Id"); got == "" {
		t.Error("missing request id header")
	}
}

func TestHandleMatch(t *testing.T) {
	srv := setupServer(t)
	router := srv.Router()

	body, _ := json.Marshal([]preferenceRequest{
		{EventID: "E1", Vote: "sim"},
		{EventID: "E2", Vote: "não"},
	})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("POST", "/api/match", bytes.NewReader(body)))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	var ranking []match.Affinity
	if err := json.NewDecoder(rec.Body).Decode(&ranking); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	// D1: sim/sim -> 1 of 2. D2: não on E1 (miss... user said sim) 0 of 1?
	// D1 matches E1 only: 50.0. D2's only classifiable shared vote is "Não"
	// on E1 against the user's "sim": 0.0.
	if len(ranking) != 2 {
		t.Fatalf("ranking = %d entries, want 2: %+v", len(ranking), ranking)
	}
	if ranking[0].Name != "Fulana de Tal" || ranking[0].Percentage != 50.0 {
		t.Errorf("first = %+v, want Fulana at 50.0", ranking[0])
	}
	if ranking[1].Percentage != 0.0 {
		t.Errorf("second = %+v, want 0.0", ranking[1])
	}
}

func TestHandleMatchEmptyPreferences(t *testing.T) {
	srv := setupServer(t)
	router := srv.Router()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("POST", "/api/match", bytes.NewReader([]byte("[]"))))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}

	var resp errorResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Error == "" {
		t.Error("expected error message")
	}
}

func TestHandleMatchInvalidBody(t *testing.T) {
	srv := setupServer(t)
	router := srv.Router()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("POST", "/api/match", bytes.NewReader([]byte("{not json"))))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestHandleMatchUnknownEvents(t *testing.T) {
	srv := setupServer(t)
	router := srv.Router()

	body, _ := json.Marshal([]preferenceRequest{{EventID: "E99", Vote: "sim"}})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("POST", "/api/match", bytes.NewReader(body)))

	// No comparable votes is an empty ranking, not an error.
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var ranking []match.Affinity
	if err := json.NewDecoder(rec.Body).Decode(&ranking); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(ranking) != 0 {
		t.Errorf("ranking = %+v, want empty", ranking)
	}
}

func TestHandleExplainUnconfigured(t *testing.T) {
	srv := setupServer(t)
	router := srv.Router()

	body, _ := json.Marshal(explainRequest{Text: "texto técnico"})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("POST", "/api/explain", bytes.NewReader(body)))

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", rec.Code)
	}
}

func TestHandleExplainMissingText(t *testing.T) {
	srv := setupServer(t)
	router := srv.Router()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("POST", "/api/explain", bytes.NewReader([]byte("{}"))))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestHandleHealth(t *testing.T) {
	srv := setupServer(t)
	router := srv.Router()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/healthz", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}
