package score

import (
	"fmt"
	"strings"

	"github.com/okrenov/samforge/internal/model"
	"github.com/okrenov/samforge/internal/overlap"
)

// MaxRecentSample bounds the recent-map sample the consistency scorer reads
const MaxRecentSample = 5

// Each consistency sub-score contributes up to 25 points
const subScoreMax = 25

// Consistency computes the Authority Consistency score: positioning drift of
// the current map against the persisted profile and a small sample of the
// account's recent maps. Pure function of its inputs; same inputs always
// produce the same score and warnings.
//
// Each sub-score maps a token-set similarity in [0,1] to [0,25] linearly.
// With no profile and no history there is nothing to drift from and every
// sub-score is full.
func Consistency(current *model.AuthorityMap, profile *model.Profile, recent []model.AuthorityMap) model.AuthorityConsistency {
	if len(recent) > MaxRecentSample {
		recent = recent[:MaxRecentSample]
	}

	c := model.AuthorityConsistency{
		ThesisAlignment:      thesisAlignment(current, profile, recent),
		PositioningAlignment: positioningAlignment(current, profile),
		ToneMatch:            toneMatch(current, recent),
		ClaimThemeCoherence:  claimThemeCoherence(current, recent),
	}
	c.Total = clamp(c.ThesisAlignment+c.PositioningAlignment+c.ToneMatch+c.ClaimThemeCoherence, 0, 100)
	c.DriftWarnings = driftWarnings(&c, profile, recent)

	return c
}

// thesisAlignment compares the current thesis against the profile thesis and
// the recent theses
func thesisAlignment(current *model.AuthorityMap, profile *model.Profile, recent []model.AuthorityMap) int {
	var sims []float64

	if !profile.IsEmpty() && profile.Thesis != "" {
		sims = append(sims, overlap.Similarity(current.CoreThesis.Statement, profile.Thesis))
	}
	for _, m := range recent {
		sims = append(sims, overlap.Similarity(current.CoreThesis.Statement, m.CoreThesis.Statement))
	}

	if len(sims) == 0 {
		return subScoreMax
	}
	return toSubScore(max64(sims))
}

// positioningAlignment compares the profile positioning against the current
// differentiation statements
func positioningAlignment(current *model.AuthorityMap, profile *model.Profile) int {
	if profile.IsEmpty() || profile.Positioning == "" {
		return subScoreMax
	}

	var diff []string
	for _, c := range current.StrategicClaims {
		diff = append(diff, c.Differentiation)
	}
	sim := overlap.Similarity(profile.Positioning, strings.Join(diff, " "))
	return toSubScore(sim)
}

// toneMatch compares surface style signals (hook length, numeric density)
// against the recent sample
func toneMatch(current *model.AuthorityMap, recent []model.AuthorityMap) int {
	if len(recent) == 0 {
		return subScoreMax
	}

	curWords, curNumeric := hookStyle(current)
	var recWords, recNumeric float64
	for _, m := range recent {
		w, n := hookStyle(&m)
		recWords += w
		recNumeric += n
	}
	recWords /= float64(len(recent))
	recNumeric /= float64(len(recent))

	// Style distance in [0,1]: word-length delta normalized to a 10-word
	// band plus numeric-share delta, equally weighted
	wordDelta := minFloat(absFloat(curWords-recWords)/10.0, 1.0)
	numericDelta := absFloat(curNumeric - recNumeric)
	distance := (wordDelta + numericDelta) / 2

	return toSubScore(1 - distance)
}

// hookStyle returns average hook word count and the numeric-hook share
func hookStyle(m *model.AuthorityMap) (avgWords, numericShare float64) {
	total, words, numeric := 0, 0, 0
	for _, set := range m.HookMatrix.Categories {
		for _, h := range set.Hooks {
			total++
			words += len(strings.Fields(h))
			if strings.ContainsAny(h, "0123456789") {
				numeric++
			}
		}
	}
	if total == 0 {
		return 0, 0
	}
	return float64(words) / float64(total), float64(numeric) / float64(total)
}

// claimThemeCoherence checks whether the current claims develop themes the
// recent maps already established
func claimThemeCoherence(current *model.AuthorityMap, recent []model.AuthorityMap) int {
	if len(recent) == 0 {
		return subScoreMax
	}

	var perClaim []float64
	for _, c := range current.StrategicClaims {
		best := 0.0
		for _, m := range recent {
			for _, rc := range m.StrategicClaims {
				if sim := overlap.Similarity(c.Claim, rc.Claim); sim > best {
					best = sim
				}
			}
		}
		perClaim = append(perClaim, best)
	}

	if len(perClaim) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range perClaim {
		sum += v
	}
	return toSubScore(sum / float64(len(perClaim)))
}

// driftWarnings builds the bounded warning list from weak sub-scores
func driftWarnings(c *model.AuthorityConsistency, profile *model.Profile, recent []model.AuthorityMap) []string {
	warnings := []string{}

	if c.ThesisAlignment < 10 && (!profile.IsEmpty() || len(recent) > 0) {
		warnings = append(warnings, "thesis departs sharply from the established positioning thesis")
	}
	if c.PositioningAlignment < 10 && !profile.IsEmpty() && profile.Positioning != "" {
		warnings = append(warnings, "differentiation statements no longer reflect the stated positioning")
	}
	if c.ToneMatch < 10 && len(recent) > 0 {
		warnings = append(warnings, fmt.Sprintf("tone shifted noticeably against the last %d maps", len(recent)))
	}
	if c.ClaimThemeCoherence < 10 && len(recent) > 0 {
		warnings = append(warnings, "claims introduce themes with no continuity to recent maps")
	}

	return warnings
}

// toSubScore maps a similarity in [0,1] to [0,25]
func toSubScore(sim float64) int {
	if sim < 0 {
		sim = 0
	}
	if sim > 1 {
		sim = 1
	}
	return int(sim*float64(subScoreMax) + 0.5)
}

func max64(vals []float64) float64 {
	best := vals[0]
	for _, v := range vals[1:] {
		if v > best {
			best = v
		}
	}
	return best
}

func minFloat(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func absFloat(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
