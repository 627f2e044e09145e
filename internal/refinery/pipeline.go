// Package refinery implements the three-stage referential filter that turns
// the raw bill/event/vote exports into a closed, internally consistent
// snapshot. Events referencing an unknown bill are dropped, and votes
// referencing a dropped event are dropped with them, so no "ghost" record
// survives whose parent was itself invalid.
package refinery

import (
	"votomatch/internal/dataset"
	"votomatch/internal/table"
)

// Stage names a pipeline stage in reports.
type Stage string

const (
	StageBills  Stage = "bills"
	StageEvents Stage = "events"
	StageVotes  Stage = "votes"
)

// Result holds the three closed tables and the run report. All tables are
// non-nil; a degraded stage yields an empty table.
type Result struct {
	Bills  *table.Table
	Events *table.Table
	Votes  *table.Table
	Report Report
}

// Run executes the full pipeline. Inputs may be nil when a source file was
// unavailable; the corresponding stage degrades to an empty output and every
// downstream stage filters against an empty survivor set. Stages must run in
// this order: the event survivor set, not the raw event universe, gates the
// vote stage.
func Run(bills, events, votes *table.Table) Result {
	closedBills, billIDs, billReport := FilterBills(bills)
	closedEvents, eventIDs, eventReport := FilterEvents(events, billIDs)
	closedVotes, voteReport := FilterVotes(votes, eventIDs)

	return Result{
		Bills:  closedBills,
		Events: closedEvents,
		Votes:  closedVotes,
		Report: Report{Bills: billReport, Events: eventReport, Votes: voteReport},
	}
}

// FilterBills validates the bill table and emits the set of valid bill ids.
// Bill rows pass through unchanged; this stage exists to anchor the cascade.
func FilterBills(t *table.Table) (*table.Table, map[string]struct{}, StageReport) {
	report := StageReport{Stage: StageBills, Input: t.Len()}

	if degraded, reason := checkSource(t, dataset.ColBillID); degraded {
		report.degrade(reason)
		return &table.Table{}, map[string]struct{}{}, report
	}

	ids := dataset.IDSet(t.Column(dataset.ColBillID))
	report.Kept = t.Len()
	report.Malformed = t.Skipped
	return t, ids, report
}

// FilterEvents keeps event rows whose bill reference is in validBills and
// emits the surviving event id set.
func FilterEvents(t *table.Table, validBills map[string]struct{}) (*table.Table, map[string]struct{}, StageReport) {
	report := StageReport{Stage: StageEvents, Input: t.Len()}

	mandatory := []string{dataset.ColEventID, dataset.ColEventBillID, dataset.ColEventDate, dataset.ColEventDescription}
	if degraded, reason := checkSource(t, mandatory...); degraded {
		report.degrade(reason)
		return &table.Table{}, map[string]struct{}{}, report
	}

	billCol := t.Col(dataset.ColEventBillID)
	idCol := t.Col(dataset.ColEventID)

	out := &table.Table{Columns: t.Columns}
	ids := make(map[string]struct{})
	for _, row := range t.Rows {
		if _, ok := validBills[dataset.NormalizeID(row[billCol])]; !ok {
			continue
		}
		out.Rows = append(out.Rows, row)
		if id := dataset.NormalizeID(row[idCol]); id != "" {
			ids[id] = struct{}{}
		}
	}

	report.Kept = out.Len()
	report.Malformed = t.Skipped
	return out, ids, report
}

// FilterVotes keeps vote rows whose event reference survived the event stage.
func FilterVotes(t *table.Table, validEvents map[string]struct{}) (*table.Table, StageReport) {
	report := StageReport{Stage: StageVotes, Input: t.Len()}

	mandatory := []string{dataset.ColVoteEventID, dataset.ColVoteValue, dataset.ColVoteLegislatorID}
	if degraded, reason := checkSource(t, mandatory...); degraded {
		report.degrade(reason)
		return &table.Table{}, report
	}

	eventCol := t.Col(dataset.ColVoteEventID)

	out := &table.Table{Columns: t.Columns}
	for _, row := range t.Rows {
		if _, ok := validEvents[dataset.NormalizeID(row[eventCol])]; !ok {
			continue
		}
		out.Rows = append(out.Rows, row)
	}

	report.Kept = out.Len()
	report.Malformed = t.Skipped
	return out, report
}

// checkSource reports whether a stage must degrade: the source was missing
// entirely, or a mandatory column is absent (schema drift upstream). Either
// way the stage returns empty output instead of failing the run.
func checkSource(t *table.Table, mandatory ...string) (bool, string) {
	if t == nil {
		return true, "source unavailable"
	}
	if missing := t.Missing(mandatory...); len(missing) > 0 {
		return true, "missing mandatory column: " + missing[0]
	}
	return false, ""
}
