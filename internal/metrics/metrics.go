package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	MatchRequests   *prometheus.CounterVec
	CardsRequests   prometheus.Counter
	ExplainRequests *prometheus.CounterVec
	SnapshotRows    *prometheus.GaugeVec
}

// New registers the API metrics on the given registerer. Tests pass a fresh
// registry so repeated construction does not collide.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		MatchRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "votomatch_match_requests_total",
			Help: "Total number of match scoring requests",
		}, []string{"outcome"}),
		CardsRequests: factory.NewCounter(prometheus.CounterOpts{
			Name: "votomatch_cards_requests_total",
			Help: "Total number of votation card requests",
		}),
		ExplainRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "votomatch_explain_requests_total",
			Help: "Total number of AI simplification requests",
		}, []string{"outcome"}),
		SnapshotRows: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "votomatch_snapshot_rows",
			Help: "Row count of the loaded snapshot per table",
		}, []string{"table"}),
	}
}

func (m *Metrics) ObserveMatch(outcome string) {
	m.MatchRequests.WithLabelValues(outcome).Inc()
}

func (m *Metrics) ObserveExplain(outcome string) {
	m.ExplainRequests.WithLabelValues(outcome).Inc()
}

func (m *Metrics) SetSnapshotRows(table string, rows int) {
	m.SnapshotRows.WithLabelValues(table).Set(float64(rows))
}
