package score

import (
	"fmt"
	"strings"

	"github.com/okrenov/samforge/internal/model"
	"github.com/okrenov/samforge/internal/validate"
)

// fillerOpeners never carry a hook; their presence costs points
var fillerOpeners = []string{
	"i think",
	"in today's",
	"let's talk about",
	"as we all know",
	"it goes without saying",
	"here's a thread about",
}

// genericDifferentiators signal a differentiation statement with no content
var genericDifferentiators = []string{
	"unique",
	"best in class",
	"world class",
	"innovative",
	"cutting edge",
	"game changing",
}

// comparativeMarkers indicate a differentiation statement that actually compares
var comparativeMarkers = []string{
	"unlike", "compared", "while", "instead of", "rather than", "whereas", "vs",
}

// dismissiveObjections are too generic to be worth rebutting
var dismissiveObjections = []string{
	"that's wrong",
	"this is false",
	"i disagree",
	"no it isn't",
}

// Messaging computes the Messaging Strength score: five sub-scores of 20
// points each over the intrinsic quality of the map. Pure and deterministic;
// every sub-score is clamped to [0,20] and the total to [0,100].
func Messaging(m *model.AuthorityMap) model.MessagingStrength {
	s := model.MessagingStrength{}

	var signals []model.ScoreSignal
	var sig model.ScoreSignal

	s.HookStrength, sig = hookStrength(m)
	signals = append(signals, sig)
	s.ClaimRobustness, sig = claimRobustness(m)
	signals = append(signals, sig)
	s.EvidenceDepth, sig = evidenceDepth(m)
	signals = append(signals, sig)
	s.DifferentiationClarity, sig = differentiationClarity(m)
	signals = append(signals, sig)
	s.ObjectionCoverage, sig = objectionCoverage(m)
	signals = append(signals, sig)

	s.Total = clamp(s.HookStrength+s.ClaimRobustness+s.EvidenceDepth+s.DifferentiationClarity+s.ObjectionCoverage, 0, 100)
	s.Signals = signals

	return s
}

// hookStrength rewards category coverage, hook depth, numeric hooks, hook
// length in the 8-18 word band, and absence of filler openers (0-20)
func hookStrength(m *model.AuthorityMap) (int, model.ScoreSignal) {
	score := 0

	categories := make(map[model.HookCategory]int)
	var allHooks []string
	for _, set := range m.HookMatrix.Categories {
		categories[set.Category] = len(set.Hooks)
		allHooks = append(allHooks, set.Hooks...)
	}

	// Full coverage of the five fixed categories
	fullCoverage := len(categories) == validate.HookCategoryCount
	if fullCoverage {
		score += 5
	}

	// At least 3 hooks in every category
	deepCoverage := fullCoverage
	for _, n := range categories {
		if n < validate.MinHooksPerSet {
			deepCoverage = false
		}
	}
	if deepCoverage {
		score += 4
	}

	// At least one numeric hook
	numeric := false
	for _, h := range allHooks {
		if strings.ContainsAny(h, "0123456789") {
			numeric = true
			break
		}
	}
	if numeric {
		score += 4
	}

	// Average hook length in the 8-18 word band
	avgWords := 0.0
	if len(allHooks) > 0 {
		total := 0
		for _, h := range allHooks {
			total += len(strings.Fields(h))
		}
		avgWords = float64(total) / float64(len(allHooks))
	}
	if avgWords >= 8 && avgWords <= 18 {
		score += 4
	}

	// No filler openers
	filler := 0
	for _, h := range allHooks {
		lower := strings.ToLower(h)
		for _, opener := range fillerOpeners {
			if strings.HasPrefix(lower, opener) {
				filler++
				break
			}
		}
	}
	if filler == 0 && len(allHooks) > 0 {
		score += 3
	}

	score = clamp(score, 0, 20)
	return score, model.ScoreSignal{
		Component:   "hook_strength",
		Description: fmt.Sprintf("%d hooks across %d categories, avg %.1f words", len(allHooks), len(categories), avgWords),
		Data: map[string]interface{}{
			"categories":     len(categories),
			"hooks":          len(allHooks),
			"numeric_hook":   numeric,
			"avg_words":      avgWords,
			"filler_openers": filler,
			"score":          score,
		},
	}
}

// claimRobustness rewards exactly 3 claims and, per claim, simultaneous
// satisfaction of minimum lengths across all four statements (0-20)
func claimRobustness(m *model.AuthorityMap) (int, model.ScoreSignal) {
	score := 0

	if len(m.StrategicClaims) == validate.ClaimCount {
		score += 5
	}

	robust := 0
	for _, c := range m.StrategicClaims {
		if len(c.Claim) >= 40 &&
			len(c.WhyItMatters) >= 40 &&
			len(c.CounterObjection) >= 30 &&
			isSubstantiveDifferentiation(c.Differentiation) {
			robust++
		}
	}
	score += robust * 5

	score = clamp(score, 0, 20)
	return score, model.ScoreSignal{
		Component:   "claim_robustness",
		Description: fmt.Sprintf("%d of %d claims fully robust", robust, len(m.StrategicClaims)),
		Data: map[string]interface{}{
			"claims":        len(m.StrategicClaims),
			"robust_claims": robust,
			"score":         score,
		},
	}
}

// evidenceDepth rewards evidence counts in bounds, type diversity,
// quantitative proof behind numeric claims, and substantive points (0-20)
func evidenceDepth(m *model.AuthorityMap) (int, model.ScoreSignal) {
	score := 0

	inBounds := len(m.StrategicClaims) > 0
	types := make(map[model.EvidenceType]bool)
	substantive := true
	hasMetricEvidence := false
	numericClaim := false

	for _, c := range m.StrategicClaims {
		if len(c.Evidence) < validate.MinEvidence || len(c.Evidence) > validate.MaxEvidence {
			inBounds = false
		}
		if strings.ContainsAny(c.Claim, "0123456789") {
			numericClaim = true
		}
		for _, ev := range c.Evidence {
			types[ev.Type] = true
			if ev.Type == model.EvidenceMetric || strings.ContainsAny(ev.Point, "0123456789") {
				hasMetricEvidence = true
			}
			if len(ev.Point) < 20 {
				substantive = false
			}
		}
	}

	if inBounds {
		score += 6
	}
	if len(types) >= 2 {
		score += 5
	}
	// Numeric assertions need quantitative proof; claims without numbers
	// are not penalized for lacking it
	if !numericClaim || hasMetricEvidence {
		score += 4
	}
	if substantive && len(m.StrategicClaims) > 0 {
		score += 5
	}

	score = clamp(score, 0, 20)
	return score, model.ScoreSignal{
		Component:   "evidence_depth",
		Description: fmt.Sprintf("%d evidence types, metric proof %v", len(types), hasMetricEvidence),
		Data: map[string]interface{}{
			"counts_in_bounds": inBounds,
			"distinct_types":   len(types),
			"numeric_claims":   numericClaim,
			"metric_evidence":  hasMetricEvidence,
			"substantive":      substantive,
			"score":            score,
		},
	}
}

// differentiationClarity rewards present, non-generic, comparative
// differentiation statements on all three claims (0-20)
func differentiationClarity(m *model.AuthorityMap) (int, model.ScoreSignal) {
	score := 0

	present := 0
	nonGeneric := 0
	comparative := 0
	for _, c := range m.StrategicClaims {
		if strings.TrimSpace(c.Differentiation) == "" {
			continue
		}
		present++
		if isSubstantiveDifferentiation(c.Differentiation) {
			nonGeneric++
		}
		lower := strings.ToLower(c.Differentiation)
		for _, marker := range comparativeMarkers {
			if strings.Contains(lower, marker) {
				comparative++
				break
			}
		}
	}

	if present == validate.ClaimCount {
		score += 8
	}
	if nonGeneric == validate.ClaimCount {
		score += 6
	}
	if comparative >= 2 {
		score += 6
	}

	score = clamp(score, 0, 20)
	return score, model.ScoreSignal{
		Component:   "differentiation_clarity",
		Description: fmt.Sprintf("%d present, %d non-generic, %d comparative", present, nonGeneric, comparative),
		Data: map[string]interface{}{
			"present":     present,
			"non_generic": nonGeneric,
			"comparative": comparative,
			"score":       score,
		},
	}
}

// objectionCoverage rewards objection count, substance, counter-objection
// coverage, and absence of dismissive objections (0-20)
func objectionCoverage(m *model.AuthorityMap) (int, model.ScoreSignal) {
	score := 0

	if len(m.Objections) >= validate.MinObjections && len(m.Objections) <= validate.MaxObjections {
		score += 6
	}

	substantive := 0
	dismissive := 0
	for _, o := range m.Objections {
		if len(strings.Fields(o)) >= 6 {
			substantive++
		}
		lower := strings.ToLower(o)
		for _, d := range dismissiveObjections {
			if strings.Contains(lower, d) {
				dismissive++
				break
			}
		}
	}
	if len(m.Objections) > 0 && substantive == len(m.Objections) {
		score += 5
	}

	countered := 0
	for _, c := range m.StrategicClaims {
		if strings.TrimSpace(c.CounterObjection) != "" {
			countered++
		}
	}
	if countered == validate.ClaimCount {
		score += 6
	}

	if dismissive == 0 && len(m.Objections) > 0 {
		score += 3
	}

	score = clamp(score, 0, 20)
	return score, model.ScoreSignal{
		Component:   "objection_coverage",
		Description: fmt.Sprintf("%d objections, %d substantive, %d claims countered", len(m.Objections), substantive, countered),
		Data: map[string]interface{}{
			"objections":  len(m.Objections),
			"substantive": substantive,
			"countered":   countered,
			"dismissive":  dismissive,
			"score":       score,
		},
	}
}

func isSubstantiveDifferentiation(d string) bool {
	if len(d) < 30 {
		return false
	}
	lower := strings.ToLower(d)
	matches := 0
	for _, g := range genericDifferentiators {
		if strings.Contains(lower, g) {
			matches++
		}
	}
	// A statement that is mostly generic vocabulary says nothing
	return matches < 2
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
