package extract

import (
	"fmt"
	"strings"

	"github.com/okrenov/samforge/internal/model"
	"github.com/okrenov/samforge/internal/validate"
)

// Safe defaults for enum values that drifted outside their closed sets
const (
	DefaultInputType = model.InputTypeMemo
	DefaultAngle     = model.AngleDataDriven
)

// placeholderEvidence fills missing evidence slots. Evidence is never
// invented from thin air: the placeholder is explicit about being one.
const placeholderEvidence = "Supporting evidence to be developed from the source material."

// Normalize repairs cardinality gaps in a parsed candidate map so the
// structural invariants hold: exactly 3 claims with ids C1-C3, exactly 5 hook
// categories, evidence and objection counts within bounds. Missing claims and
// hook categories are synthesized deterministically from the first available
// claim and the thesis statement. Idempotent: normalizing an already
// normalized map changes nothing.
func Normalize(m *model.AuthorityMap) {
	if m == nil {
		return
	}

	if !m.CoreThesis.InputType.IsValid() {
		m.CoreThesis.InputType = DefaultInputType
	}
	if !m.CoreThesis.Angle.IsValid() {
		m.CoreThesis.Angle = DefaultAngle
	}

	normalizeClaims(m)
	normalizeHooks(m)
	normalizeObjections(m)
	normalizeProofAssets(&m.ProofAssets)
}

func normalizeClaims(m *model.AuthorityMap) {
	if len(m.StrategicClaims) > validate.ClaimCount {
		m.StrategicClaims = m.StrategicClaims[:validate.ClaimCount]
	}

	var base *model.StrategicClaim
	if len(m.StrategicClaims) > 0 {
		base = &m.StrategicClaims[0]
	}

	for len(m.StrategicClaims) < validate.ClaimCount {
		idx := len(m.StrategicClaims)
		m.StrategicClaims = append(m.StrategicClaims, fallbackClaim(idx, base, m.CoreThesis.Statement))
		base = &m.StrategicClaims[0]
	}

	for i := range m.StrategicClaims {
		claim := &m.StrategicClaims[i]
		claim.ID = model.ClaimIDs[i]
		normalizeEvidence(claim)
	}
}

// fallbackClaim synthesizes a missing claim from the first available claim
// plus the thesis statement
func fallbackClaim(idx int, base *model.StrategicClaim, thesis string) model.StrategicClaim {
	seed := thesis
	if seed == "" && base != nil {
		seed = base.Claim
	}

	facets := []string{
		"The core position: %s",
		"What this means in practice: %s",
		"Why the conventional approach falls short: %s",
	}
	facet := facets[idx%len(facets)]

	claim := model.StrategicClaim{
		Claim:           fmt.Sprintf(facet, seed),
		WhyItMatters:    "It shapes the decisions the audience makes next.",
		CounterObjection: "This may not hold in every context.",
		Differentiation: "Grounded in the source's first-hand experience rather than received wisdom.",
	}
	if base != nil {
		claim.WhyItMatters = base.WhyItMatters
		claim.CounterObjection = base.CounterObjection
		claim.Differentiation = base.Differentiation
	}
	return claim
}

func normalizeEvidence(claim *model.StrategicClaim) {
	// Drop blank points, coerce drifted types, cap quote length
	kept := claim.Evidence[:0]
	for _, ev := range claim.Evidence {
		if strings.TrimSpace(ev.Point) == "" {
			continue
		}
		if !ev.Type.IsValid() {
			ev.Type = model.EvidencePrinciple
		}
		if ev.SourceQuote != nil {
			quote := strings.TrimSpace(*ev.SourceQuote)
			if quote == "" || len(strings.Fields(quote)) > validate.MaxQuoteWords {
				ev.SourceQuote = nil
			} else {
				ev.SourceQuote = &quote
			}
		}
		kept = append(kept, ev)
	}
	claim.Evidence = kept

	if len(claim.Evidence) > validate.MaxEvidence {
		claim.Evidence = claim.Evidence[:validate.MaxEvidence]
	}
	for len(claim.Evidence) < validate.MinEvidence {
		claim.Evidence = append(claim.Evidence, model.EvidencePoint{
			Point: placeholderEvidence,
			Type:  model.EvidencePrinciple,
		})
	}
}

// hookFallbacks seed a single hook per missing category from the thesis
var hookFallbacks = map[model.HookCategory]string{
	model.HookContrarian: "Most people get this wrong: %s",
	model.HookData:       "The numbers tell a different story: %s",
	model.HookStory:      "Here is how I learned this: %s",
	model.HookTactical:   "A practical way to apply this: %s",
	model.HookVision:     "Where this is heading: %s",
}

func normalizeHooks(m *model.AuthorityMap) {
	existing := make(map[model.HookCategory][]string, len(m.HookMatrix.Categories))
	for _, set := range m.HookMatrix.Categories {
		if _, ok := existing[set.Category]; ok {
			continue // First occurrence wins on duplicates
		}
		var hooks []string
		for _, h := range set.Hooks {
			if strings.TrimSpace(h) != "" {
				hooks = append(hooks, h)
			}
		}
		if len(hooks) > validate.MaxHooksPerSet {
			hooks = hooks[:validate.MaxHooksPerSet]
		}
		existing[set.Category] = hooks
	}

	categories := make([]model.HookSet, 0, validate.HookCategoryCount)
	for _, cat := range model.HookCategories {
		hooks := existing[cat]
		if len(hooks) == 0 {
			hooks = []string{fmt.Sprintf(hookFallbacks[cat], m.CoreThesis.Statement)}
		}
		categories = append(categories, model.HookSet{Category: cat, Hooks: hooks})
	}
	m.HookMatrix.Categories = categories
}

func normalizeObjections(m *model.AuthorityMap) {
	kept := m.Objections[:0]
	for _, o := range m.Objections {
		if strings.TrimSpace(o) != "" {
			kept = append(kept, o)
		}
	}
	m.Objections = kept

	if len(m.Objections) > validate.MaxObjections {
		m.Objections = m.Objections[:validate.MaxObjections]
	}

	// Backfill from claim counter-objections first, then generic fallbacks
	if len(m.Objections) < validate.MinObjections {
		seen := make(map[string]bool, len(m.Objections))
		for _, o := range m.Objections {
			seen[strings.ToLower(o)] = true
		}
		for _, claim := range m.StrategicClaims {
			if len(m.Objections) >= validate.MinObjections {
				break
			}
			co := strings.TrimSpace(claim.CounterObjection)
			if co != "" && !seen[strings.ToLower(co)] {
				seen[strings.ToLower(co)] = true
				m.Objections = append(m.Objections, co)
			}
		}
		generics := []string{
			"Is this backed by more than one example?",
			"Would this hold outside the source's own situation?",
			"Is this insight or just a restatement of the current trend?",
		}
		for _, g := range generics {
			if len(m.Objections) >= validate.MinObjections {
				break
			}
			if !seen[strings.ToLower(g)] {
				seen[strings.ToLower(g)] = true
				m.Objections = append(m.Objections, g)
			}
		}
	}
}

func normalizeProofAssets(assets *model.ProofAssets) {
	assets.Metrics = dropBlank(assets.Metrics)
	assets.Examples = dropBlank(assets.Examples)
	assets.Comparisons = dropBlank(assets.Comparisons)
}

func dropBlank(list []string) []string {
	kept := list[:0]
	for _, s := range list {
		if strings.TrimSpace(s) != "" {
			kept = append(kept, s)
		}
	}
	return kept
}
