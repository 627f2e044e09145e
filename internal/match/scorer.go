// Package match computes per-legislator affinity against a user's stated
// positions on a set of votations.
package match

import (
	"errors"
	"math"
	"sort"

	"votomatch/internal/dataset"
)

// ErrNoPreferences is returned when the scorer is called without any user
// positions; there is nothing to compare against.
var ErrNoPreferences = errors.New("no user preferences given")

// MaxRanking is the length the ranking is truncated to.
const MaxRanking = 10

// Preference is one user position: a votation and a free-text vote statement.
type Preference struct {
	EventID string
	Vote    string
}

// Affinity is one ranked legislator with their match percentage.
type Affinity struct {
	LegislatorID string  `json:"id"`
	Name         string  `json:"nome"`
	Party        string  `json:"partido"`
	Region       string  `json:"uf"`
	Photo        string  `json:"foto"`
	Percentage   float64 `json:"porcentagem_match"`
}

// tally accumulates one legislator's comparable votes.
type tally struct {
	matches int
	total   int
}

type score struct {
	legislatorID string
	percentage   float64
}

// Rank compares the user's preferences against the closed vote table and
// returns up to MaxRanking legislators, descending by match percentage.
//
// Only votes on events the user voted on are considered. A legislator vote
// that classifies as neither affirmative nor negative is left out of that
// legislator's denominator entirely — an abstention is not a miss.
// Legislators with no classifiable vote on any shared event carry no signal
// and are excluded. Ties order by ascending legislator id so rankings are
// stable across runs. Legislators missing from the reference set are
// silently dropped from the result.
func Rank(prefs []Preference, votes []dataset.Vote, reference map[string]dataset.Legislator) ([]Affinity, error) {
	if len(prefs) == 0 {
		return nil, ErrNoPreferences
	}

	userClass := make(map[string]Class, len(prefs))
	for _, p := range prefs {
		if id := dataset.NormalizeID(p.EventID); id != "" {
			userClass[id] = Classify(p.Vote)
		}
	}

	tallies := make(map[string]*tally)
	var order []string // first-seen order, so accumulation stays deterministic
	for _, v := range votes {
		user, ok := userClass[dataset.NormalizeID(v.EventID)]
		if !ok {
			continue
		}
		class := Classify(v.Value)
		if class == ClassUnknown {
			continue
		}

		id := dataset.NormalizeID(v.LegislatorID)
		t := tallies[id]
		if t == nil {
			t = &tally{}
			tallies[id] = t
			order = append(order, id)
		}
		t.total++
		if user != ClassUnknown && class == user {
			t.matches++
		}
	}

	scores := make([]score, 0, len(order))
	for _, id := range order {
		t := tallies[id]
		if t.total == 0 {
			continue
		}
		pct := float64(t.matches) / float64(t.total) * 100
		scores = append(scores, score{
			legislatorID: id,
			percentage:   math.Round(pct*10) / 10,
		})
	}

	sort.SliceStable(scores, func(i, j int) bool {
		if scores[i].percentage != scores[j].percentage {
			return scores[i].percentage > scores[j].percentage
		}
		return scores[i].legislatorID < scores[j].legislatorID
	})
	if len(scores) > MaxRanking {
		scores = scores[:MaxRanking]
	}

	ranking := make([]Affinity, 0, len(scores))
	for _, s := range scores {
		leg, ok := reference[s.legislatorID]
		if !ok {
			continue
		}
		ranking = append(ranking, Affinity{
			LegislatorID: leg.ID,
			Name:         leg.Name,
			Party:        leg.Party,
			Region:       leg.Region,
			Photo:        leg.Photo,
			Percentage:   s.percentage,
		})
	}
	return ranking, nil
}
