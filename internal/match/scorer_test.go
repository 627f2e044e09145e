package match

import (
	"errors"
	"fmt"
	"testing"

	"votomatch/internal/dataset"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		text string
		want Class
	}{
		{"Sim", ClassAffirmative},
		{"sim", ClassAffirmative},
		{"  SIM  ", ClassAffirmative},
		{"Não", ClassNegative},
		{"NÃO", ClassNegative},
		{"Obstrução", ClassUnknown},
		{"Abstenção", ClassUnknown},
		{"Artigo 17", ClassUnknown},
		{"", ClassUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			if got := Classify(tt.text); got != tt.want {
				t.Errorf("Classify(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func reference(ids ...string) map[string]dataset.Legislator {
	ref := make(map[string]dataset.Legislator)
	for _, id := range ids {
		ref[id] = dataset.Legislator{
			ID:     id,
			Name:   "Deputado " + id,
			Party:  "XYZ",
			Region: "SP",
			Photo:  "https://example.org/" + id + ".jpg",
		}
	}
	return ref
}

func TestRankEmptyPreferences(t *testing.T) {
	_, err := Rank(nil, []dataset.Vote{{EventID: "E1", LegislatorID: "D1", Value: "Sim"}}, reference("D1"))
	if !errors.Is(err, ErrNoPreferences) {
		t.Fatalf("err = %v, want ErrNoPreferences", err)
	}
}

func TestRankPercentage(t *testing.T) {
	prefs := []Preference{
		{EventID: "E1", Vote: "sim"},
		{EventID: "E2", Vote: "não"},
	}
	votes := []dataset.Vote{
		{EventID: "E1", LegislatorID: "D1", Value: "Sim"},
		{EventID: "E2", LegislatorID: "D1", Value: "Sim"},
		{EventID: "E3", LegislatorID: "D1", Value: "Não"}, // not in prefs, ignored
		{EventID: "E1", LegislatorID: "D2", Value: "Obstrução"},
	}

	ranking, err := Rank(prefs, votes, reference("D1", "D2"))
	if err != nil {
		t.Fatalf("Rank failed: %v", err)
	}

	// D1: 2 classifiable shared votes, 1 match -> 50.0.
	// D2: zero classifiable shared votes -> excluded.
	if len(ranking) != 1 {
		t.Fatalf("ranking length = %d, want 1", len(ranking))
	}
	if ranking[0].LegislatorID != "D1" {
		t.Errorf("ranked %s, want D1", ranking[0].LegislatorID)
	}
	if ranking[0].Percentage != 50.0 {
		t.Errorf("percentage = %v, want 50.0", ranking[0].Percentage)
	}
}

func TestRankAbstentionNotAMiss(t *testing.T) {
	prefs := []Preference{{EventID: "E1", Vote: "sim"}, {EventID: "E2", Vote: "sim"}}
	votes := []dataset.Vote{
		{EventID: "E1", LegislatorID: "D1", Value: "Sim"},
		{EventID: "E2", LegislatorID: "D1", Value: "Obstrução"},
	}

	ranking, err := Rank(prefs, votes, reference("D1"))
	if err != nil {
		t.Fatalf("Rank failed: %v", err)
	}
	// The abstention must not count as a mismatch: 1/1, not 1/2.
	if ranking[0].Percentage != 100.0 {
		t.Errorf("percentage = %v, want 100.0", ranking[0].Percentage)
	}
}

func TestRankRounding(t *testing.T) {
	prefs := []Preference{
		{EventID: "E1", Vote: "sim"},
		{EventID: "E2", Vote: "sim"},
		{EventID: "E3", Vote: "sim"},
	}
	votes := []dataset.Vote{
		{EventID: "E1", LegislatorID: "D1", Value: "Sim"},
		{EventID: "E2", LegislatorID: "D1", Value: "Não"},
		{EventID: "E3", LegislatorID: "D1", Value: "Não"},
	}

	ranking, err := Rank(prefs, votes, reference("D1"))
	if err != nil {
		t.Fatalf("Rank failed: %v", err)
	}
	// 1/3 -> 33.333... -> 33.3
	if ranking[0].Percentage != 33.3 {
		t.Errorf("percentage = %v, want 33.3", ranking[0].Percentage)
	}
}

func TestRankNormalizedIdentifiers(t *testing.T) {
	prefs := []Preference{{EventID: " E1 ", Vote: "Sim"}}
	votes := []dataset.Vote{{EventID: "E1", LegislatorID: "7.0", Value: "sim"}}

	ranking, err := Rank(prefs, votes, reference("7"))
	if err != nil {
		t.Fatalf("Rank failed: %v", err)
	}
	if len(ranking) != 1 || ranking[0].LegislatorID != "7" {
		t.Fatalf("typed legislator id not joined: %+v", ranking)
	}
}

func TestRankOrderAndTieBreak(t *testing.T) {
	prefs := []Preference{{EventID: "E1", Vote: "sim"}, {EventID: "E2", Vote: "sim"}}
	votes := []dataset.Vote{
		// D9 and D2 both score 100, D5 scores 50.
		{EventID: "E1", LegislatorID: "D9", Value: "Sim"},
		{EventID: "E1", LegislatorID: "D2", Value: "Sim"},
		{EventID: "E1", LegislatorID: "D5", Value: "Sim"},
		{EventID: "E2", LegislatorID: "D5", Value: "Não"},
	}

	ranking, err := Rank(prefs, votes, reference("D2", "D5", "D9"))
	if err != nil {
		t.Fatalf("Rank failed: %v", err)
	}

	got := []string{ranking[0].LegislatorID, ranking[1].LegislatorID, ranking[2].LegislatorID}
	want := []string{"D2", "D9", "D5"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}
}

func TestRankTruncation(t *testing.T) {
	prefs := []Preference{{EventID: "E1", Vote: "sim"}}

	var votes []dataset.Vote
	var ids []string
	for i := 0; i < 15; i++ {
		id := fmt.Sprintf("D%02d", i)
		ids = append(ids, id)
		votes = append(votes, dataset.Vote{EventID: "E1", LegislatorID: id, Value: "Sim"})
	}

	ranking, err := Rank(prefs, votes, reference(ids...))
	if err != nil {
		t.Fatalf("Rank failed: %v", err)
	}
	if len(ranking) != MaxRanking {
		t.Errorf("ranking length = %d, want %d", len(ranking), MaxRanking)
	}
}

func TestRankMissingReferenceSkipped(t *testing.T) {
	prefs := []Preference{{EventID: "E1", Vote: "sim"}}
	votes := []dataset.Vote{
		{EventID: "E1", LegislatorID: "D1", Value: "Sim"},
		{EventID: "E1", LegislatorID: "D2", Value: "Sim"},
	}

	ranking, err := Rank(prefs, votes, reference("D1")) // D2 has no reference record
	if err != nil {
		t.Fatalf("Rank failed: %v", err)
	}
	if len(ranking) != 1 || ranking[0].LegislatorID != "D1" {
		t.Errorf("expected only D1 in ranking, got %+v", ranking)
	}
}

func TestRankNoSharedEvents(t *testing.T) {
	prefs := []Preference{{EventID: "E9", Vote: "sim"}}
	votes := []dataset.Vote{{EventID: "E1", LegislatorID: "D1", Value: "Sim"}}

	ranking, err := Rank(prefs, votes, reference("D1"))
	if err != nil {
		t.Fatalf("empty ranking must not be an error: %v", err)
	}
	if len(ranking) != 0 {
		t.Errorf("ranking = %+v, want empty", ranking)
	}
}
