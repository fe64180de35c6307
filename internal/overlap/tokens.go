package overlap

import (
	"strings"
	"unicode"
)

// Normalize lowercases, strips punctuation and collapses whitespace so that
// phrase containment is insensitive to case and formatting
func Normalize(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	lastSpace := true
	for _, r := range strings.ToLower(s) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastSpace = false
		default:
			if !lastSpace {
				b.WriteRune(' ')
				lastSpace = true
			}
		}
	}

	return strings.TrimSpace(b.String())
}

// Tokens returns the normalized token set of a string
func Tokens(s string) map[string]bool {
	set := make(map[string]bool)
	for _, tok := range strings.Fields(Normalize(s)) {
		set[tok] = true
	}
	return set
}

// Similarity computes token-set Jaccard similarity between two strings,
// short-circuiting to 1.0 when one normalized string contains the other
func Similarity(a, b string) float64 {
	na, nb := Normalize(a), Normalize(b)
	if na == "" || nb == "" {
		return 0
	}
	if strings.Contains(na, nb) || strings.Contains(nb, na) {
		return 1.0
	}

	ta, tb := Tokens(a), Tokens(b)
	intersection := 0
	for tok := range ta {
		if tb[tok] {
			intersection++
		}
	}
	union := len(ta) + len(tb) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}

// ContainmentRatio reports what share of the source phrases appear verbatim
// (after normalization) inside the text
func ContainmentRatio(text string, phrases []string) float64 {
	if len(phrases) == 0 {
		return 0
	}

	normText := Normalize(text)
	contained := 0
	for _, phrase := range phrases {
		np := Normalize(phrase)
		if np != "" && strings.Contains(normText, np) {
			contained++
		}
	}
	return float64(contained) / float64(len(phrases))
}
