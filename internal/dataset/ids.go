package dataset

import "strings"

// NormalizeID converts an identifier value to its canonical comparison form.
//
// Source feeds disagree on identifier typing: the same id shows up as "42",
// " 42 ", or "42.0" depending on which tool exported the file (numeric
// readers stringify nullable integer columns with a trailing ".0"). Every
// membership test in the filter pipeline goes through this function on both
// sides, otherwise typed mismatches silently drop valid rows.
//
// An empty or missing identifier normalizes to "" and simply never matches.
func NormalizeID(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}
	if head, ok := integralPrefix(s); ok {
		return head
	}
	return s
}

// integralPrefix reports whether s is a decimal number with an all-zero
// fraction and returns the integer part if so ("42.0" -> "42").
func integralPrefix(s string) (string, bool) {
	dot := strings.IndexByte(s, '.')
	if dot <= 0 || dot == len(s)-1 {
		return "", false
	}
	head, frac := s[:dot], s[dot+1:]
	digits := head
	if digits[0] == '-' {
		digits = digits[1:]
	}
	if digits == "" {
		return "", false
	}
	for i := 0; i < len(digits); i++ {
		if digits[i] < '0' || digits[i] > '9' {
			return "", false
		}
	}
	for i := 0; i < len(frac); i++ {
		if frac[i] != '0' {
			return "", false
		}
	}
	return head, true
}

// IDSet builds a membership set from raw identifier values, normalizing each.
// Empty identifiers are excluded.
func IDSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		if id := NormalizeID(v); id != "" {
			set[id] = struct{}{}
		}
	}
	return set
}
