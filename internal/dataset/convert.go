package dataset

import (
	"fmt"
	"strconv"

	"votomatch/internal/table"
)

// Optional bill and legislator columns in the source exports. Absent
// optional columns load as empty strings.
const (
	ColBillType        = "siglaTipo"
	ColBillNumber      = "numero"
	ColBillYear        = "ano"
	ColBillSummary     = "ementa"
	ColBillDescription = "descricaoTipo"
	ColBillTheme       = "tema"

	ColLegislatorID     = "id"
	ColLegislatorName   = "nome_parlamentar"
	ColLegislatorParty  = "sigla_partido"
	ColLegislatorRegion = "sigla_uf"
	ColLegislatorPhoto  = "url_foto"
)

// BillsFromTable converts a closed bill table into Bill values. Unlike the
// filter pipeline, loading a snapshot treats a missing mandatory column as a
// hard error: the caller pointed at the wrong file.
func BillsFromTable(t *table.Table) ([]Bill, error) {
	if missing := t.Missing(ColBillID); len(missing) > 0 {
		return nil, fmt.Errorf("bill table missing column %q", missing[0])
	}

	bills := make([]Bill, 0, t.Len())
	for i := range t.Rows {
		year, _ := strconv.Atoi(NormalizeID(cell(t, i, ColBillYear)))
		bills = append(bills, Bill{
			ID:          NormalizeID(cell(t, i, ColBillID)),
			Type:        cell(t, i, ColBillType),
			Number:      NormalizeID(cell(t, i, ColBillNumber)),
			Year:        year,
			Summary:     cell(t, i, ColBillSummary),
			Description: cell(t, i, ColBillDescription),
			Theme:       cell(t, i, ColBillTheme),
		})
	}
	return bills, nil
}

// EventsFromTable converts a closed event table into Event values.
func EventsFromTable(t *table.Table) ([]Event, error) {
	if missing := t.Missing(ColEventID, ColEventBillID, ColEventDate, ColEventDescription); len(missing) > 0 {
		return nil, fmt.Errorf("event table missing column %q", missing[0])
	}

	events := make([]Event, 0, t.Len())
	for i := range t.Rows {
		events = append(events, Event{
			ID:          NormalizeID(cell(t, i, ColEventID)),
			BillID:      NormalizeID(cell(t, i, ColEventBillID)),
			Date:        cell(t, i, ColEventDate),
			Description: cell(t, i, ColEventDescription),
		})
	}
	return events, nil
}

// VotesFromTable converts a closed vote table into Vote values.
func VotesFromTable(t *table.Table) ([]Vote, error) {
	if missing := t.Missing(ColVoteEventID, ColVoteValue, ColVoteLegislatorID); len(missing) > 0 {
		return nil, fmt.Errorf("vote table missing column %q", missing[0])
	}

	votes := make([]Vote, 0, t.Len())
	for i := range t.Rows {
		votes = append(votes, Vote{
			EventID:      NormalizeID(cell(t, i, ColVoteEventID)),
			LegislatorID: NormalizeID(cell(t, i, ColVoteLegislatorID)),
			Value:        cell(t, i, ColVoteValue),
		})
	}
	return votes, nil
}

// LegislatorsFromTable converts a legislator reference table.
func LegislatorsFromTable(t *table.Table) ([]Legislator, error) {
	if missing := t.Missing(ColLegislatorID, ColLegislatorName); len(missing) > 0 {
		return nil, fmt.Errorf("legislator table missing column %q", missing[0])
	}

	legislators := make([]Legislator, 0, t.Len())
	for i := range t.Rows {
		legislators = append(legislators, Legislator{
			ID:     NormalizeID(cell(t, i, ColLegislatorID)),
			Name:   cell(t, i, ColLegislatorName),
			Party:  cell(t, i, ColLegislatorParty),
			Region: cell(t, i, ColLegislatorRegion),
			Photo:  cell(t, i, ColLegislatorPhoto),
		})
	}
	return legislators, nil
}

func cell(t *table.Table, row int, col string) string {
	idx := t.Col(col)
	if idx < 0 {
		return ""
	}
	return t.Rows[row][idx]
}
