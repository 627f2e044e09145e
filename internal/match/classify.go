package match

import "strings"

// Class is the two-state-plus-unclassifiable reading of a vote text.
type Class int

const (
	ClassUnknown Class = iota
	ClassAffirmative
	ClassNegative
)

const (
	affirmativeToken = "sim"
	negativeToken    = "não"
)

// Classify reads a free-text vote value. The source vocabulary is not
// controlled ("Sim", "Sim, com restrições", "Não", "Obstrução", ...), so
// classification is deliberately loose: case-normalized substring
// containment of the affirmative or negative token. Anything else —
// abstentions, procedural votes — is ClassUnknown.
func Classify(text string) Class {
	t := strings.ToLower(strings.TrimSpace(text))
	switch {
	case strings.Contains(t, affirmativeToken):
		return ClassAffirmative
	case strings.Contains(t, negativeToken):
		return ClassNegative
	default:
		return ClassUnknown
	}
}
