package refinery

// StageReport describes what one stage did to its input table.
type StageReport struct {
	Stage     Stage  `json:"stage"`
	Input     int    `json:"input"`
	Kept      int    `json:"kept"`
	Malformed int    `json:"malformed"`
	Degraded  bool   `json:"degraded"`
	Reason    string `json:"reason,omitempty"`
}

// Dropped returns the number of rows excluded by the referential filter.
func (r StageReport) Dropped() int {
	return r.Input - r.Kept
}

func (r *StageReport) degrade(reason string) {
	r.Degraded = true
	r.Reason = reason
	r.Kept = 0
}

// Report aggregates the per-stage reports of one pipeline run.
type Report struct {
	Bills  StageReport `json:"bills"`
	Events StageReport `json:"events"`
	Votes  StageReport `json:"votes"`
}

// Stages returns the per-stage reports in pipeline order.
func (r *Report) Stages() []StageReport {
	return []StageReport{r.Bills, r.Events, r.Votes}
}

// Degraded reports whether any stage failed to produce output.
func (r *Report) Degraded() bool {
	return r.Bills.Degraded || r.Events.Degraded || r.Votes.Degraded
}
