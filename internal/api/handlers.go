package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"votomatch/internal/dataset"
	"votomatch/internal/match"
)

// maxCards is the number of votation cards returned per request.
const maxCards = 10

// Card is one swipeable votation card: an event dressed with its bill.
type Card struct {
	EventID     string `json:"id_votacao"`
	Title       string `json:"titulo"`
	Summary     string `json:"resumo"`
	Description string `json:"descricao_tipo,omitempty"`
	Year        int    `json:"ano"`
	Theme       string `json:"tema,omitempty"`
	Type        string `json:"sigla"`
}

type preferenceRequest struct {
	EventID string `json:"id_votacao"`
	Vote    string `json:"voto"`
}

type explainRequest struct {
	Text string `json:"texto"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := s.db.Health(r.Context()); err != nil {
		writeError(w, http.StatusServiceUnavailable, "database unavailable")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleCards serves GET /api/cards: a randomized window of bills joined to
// their votation events.
func (s *Server) handleCards(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	s.metrics.CardsRequests.Inc()

	offset := s.cardOffset()
	bills, err := s.db.SampleBills(ctx, s.cfg.BillTypes, offset, s.cfg.CardWindow)
	if err != nil {
		s.logger.Error("sampling bills failed", "request_id", requestID(ctx), "error", err)
		writeError(w, http.StatusInternalServerError, "failed to fetch cards")
		return
	}
	if len(bills) == 0 {
		writeJSON(w, http.StatusOK, []Card{})
		return
	}

	billIndex := make(map[string]dataset.Bill, len(bills))
	billIDs := make([]string, 0, len(bills))
	for _, b := range bills {
		id := dataset.NormalizeID(b.ID)
		billIndex[id] = b
		billIDs = append(billIDs, id)
	}

	events, err := s.db.EventsForBills(ctx, billIDs, s.cfg.CardWindow)
	if err != nil {
		s.logger.Error("fetching events failed", "request_id", requestID(ctx), "error", err)
		writeError(w, http.StatusInternalServerError, "failed to fetch cards")
		return
	}

	cards := make([]Card, 0, len(events))
	for _, e := range events {
		bill, ok := billIndex[dataset.NormalizeID(e.BillID)]
		if !ok {
			continue
		}
		cards = append(cards, Card{
			EventID:     e.ID,
			Title:       fmt.Sprintf("%s %s/%d", bill.Type, bill.Number, bill.Year),
			Summary:     bill.Summary,
			Description: bill.Description,
			Year:        bill.Year,
			Theme:       bill.Theme,
			Type:        bill.Type,
		})
	}
	if len(cards) > maxCards {
		cards = cards[len(cards)-maxCards:]
	}

	s.logger.Info("cards served",
		"request_id", requestID(ctx),
		"offset", offset,
		"cards", len(cards),
	)
	writeJSON(w, http.StatusOK, cards)
}

// handleMatch serves POST /api/match: user preferences in, top-10 legislator
// ranking out.
func (s *Server) handleMatch(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	start := time.Now()

	var body []preferenceRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.metrics.ObserveMatch("rejected")
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	prefs := make([]match.Preference, 0, len(body))
	eventIDs := make([]string, 0, len(body))
	for _, p := range body {
		prefs = append(prefs, match.Preference{EventID: p.EventID, Vote: p.Vote})
		if id := dataset.NormalizeID(p.EventID); id != "" {
			eventIDs = append(eventIDs, id)
		}
	}

	votes, err := s.db.VotesForEvents(ctx, eventIDs)
	if err != nil {
		s.metrics.ObserveMatch("error")
		s.logger.Error("fetching votes failed", "request_id", requestID(ctx), "error", err)
		writeError(w, http.StatusInternalServerError, "failed to compute match")
		return
	}
	reference, err := s.db.Legislators(ctx)
	if err != nil {
		s.metrics.ObserveMatch("error")
		s.logger.Error("fetching legislators failed", "request_id", requestID(ctx), "error", err)
		writeError(w, http.StatusInternalServerError, "failed to compute match")
		return
	}

	ranking, err := match.Rank(prefs, votes, reference)
	if errors.Is(err, match.ErrNoPreferences) {
		s.metrics.ObserveMatch("rejected")
		writeError(w, http.StatusBadRequest, "no votes submitted")
		return
	}
	if err != nil {
		s.metrics.ObserveMatch("error")
		writeError(w, http.StatusInternalServerError, "failed to compute match")
		return
	}
	if ranking == nil {
		ranking = []match.Affinity{}
	}

	s.metrics.ObserveMatch("ok")
	s.logger.Info("match computed",
		"request_id", requestID(ctx),
		"preferences", len(prefs),
		"ranked", len(ranking),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	writeJSON(w, http.StatusOK, ranking)
}

// handleExplain serves POST /api/explain: plain-language rendition of a
// bill summary through the AI client.
func (s *Server) handleExplain(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var body explainRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Text == "" {
		s.metrics.ObserveExplain("rejected")
		writeError(w, http.StatusBadRequest, "missing text")
		return
	}

	if !s.ai.Configured() {
		s.metrics.ObserveExplain("unconfigured")
		writeError(w, http.StatusServiceUnavailable, "simplification service not configured")
		return
	}

	summary, err := s.ai.Explain(ctx, body.Text)
	if err != nil {
		s.metrics.ObserveExplain("upstream_error")
		s.logger.Error("simplification failed", "request_id", requestID(ctx), "error", err)
		writeError(w, http.StatusBadGateway, "simplification failed")
		return
	}

	s.metrics.ObserveExplain("ok")
	writeJSON(w, http.StatusOK, map[string]string{"resumo": summary})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}
