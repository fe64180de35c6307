package score

import (
	"math"
	"strings"

	"github.com/okrenov/samforge/internal/model"
	"github.com/okrenov/samforge/internal/overlap"
	"github.com/okrenov/samforge/internal/validate"
)

// Section maxima of the quality breakdown
const (
	maxCoreThesis = 20
	maxHooks      = 25
	maxPosts      = 25
	maxInsights   = 25
	maxSummary    = 5
)

// sectionFactors are multiplicative adjustments per section, kept within
// the 0.85-1.15 band
type sectionFactors struct {
	CoreThesis float64
	Hooks      float64
	Posts      float64
	Insights   float64
	Summary    float64
}

func neutralFactors() sectionFactors {
	return sectionFactors{CoreThesis: 1, Hooks: 1, Posts: 1, Insights: 1, Summary: 1}
}

// inputTypeFactors adjusts section weight by the kind of source material
var inputTypeFactors = map[model.InputType]sectionFactors{
	model.InputTypeInterview:      {CoreThesis: 1, Hooks: 1.05, Posts: 1.05, Insights: 1, Summary: 1},
	model.InputTypeMemo:           {CoreThesis: 1.1, Hooks: 0.95, Posts: 1, Insights: 1.05, Summary: 1},
	model.InputTypeInvestorUpdate: {CoreThesis: 1, Hooks: 0.9, Posts: 0.95, Insights: 1.15, Summary: 1},
	model.InputTypeMeetingNotes:   {CoreThesis: 0.95, Hooks: 1, Posts: 1, Insights: 1.05, Summary: 1},
	model.InputTypePodcast:        {CoreThesis: 1, Hooks: 1.1, Posts: 1.05, Insights: 0.95, Summary: 1},
	model.InputTypeDraft:          {CoreThesis: 1.05, Hooks: 1, Posts: 1.1, Insights: 0.95, Summary: 1},
}

// angleFactors adjusts section weight by the strategic lens
var angleFactors = map[model.Angle]sectionFactors{
	model.AngleContrarian:      {CoreThesis: 1.05, Hooks: 1.15, Posts: 1, Insights: 0.95, Summary: 1},
	model.AngleDataDriven:      {CoreThesis: 1, Hooks: 0.95, Posts: 1, Insights: 1.15, Summary: 1},
	model.AngleStory:           {CoreThesis: 1, Hooks: 1.05, Posts: 1.1, Insights: 0.9, Summary: 1.05},
	model.AngleTactical:        {CoreThesis: 0.95, Hooks: 1, Posts: 1.05, Insights: 1.1, Summary: 1},
	model.AngleVisionary:       {CoreThesis: 1.15, Hooks: 1.05, Posts: 1, Insights: 0.9, Summary: 1},
	model.AngleIndustryInsider: {CoreThesis: 1, Hooks: 1, Posts: 1.05, Insights: 1.1, Summary: 1},
}

// Quality computes the Quality Breakdown: fixed-point checks per pack
// section, input-type and angle multipliers with per-section re-clamping,
// small additive adjustments from map-derived signals, and an optional
// profile consistency bonus. Total clamped to 100.
func Quality(pack *model.Pack, profile *model.Profile) model.QualityBreakdown {
	q := model.QualityBreakdown{
		CoreThesis: scoreCoreThesis(&pack.Thesis),
		Hooks:      scoreHooks(&pack.Map),
		Posts:      scorePosts(&pack.Assets),
		Insights:   scoreInsights(&pack.Map),
		Summary:    scoreSummary(&pack.Assets),
	}

	// Multiplicative adjustments, each section re-clamped to its maximum
	itf, ok := inputTypeFactors[pack.InputType]
	if !ok {
		itf = neutralFactors()
	}
	af, ok := angleFactors[pack.Angle]
	if !ok {
		af = neutralFactors()
	}

	q.CoreThesis = clamp(scale(q.CoreThesis, itf.CoreThesis*af.CoreThesis), 0, maxCoreThesis)
	q.Hooks = clamp(scale(q.Hooks, itf.Hooks*af.Hooks), 0, maxHooks)
	q.Posts = clamp(scale(q.Posts, itf.Posts*af.Posts), 0, maxPosts)
	q.Insights = clamp(scale(q.Insights, itf.Insights*af.Insights), 0, maxInsights)
	q.Summary = clamp(scale(q.Summary, itf.Summary*af.Summary), 0, maxSummary)

	// Additive adjustments from map-derived signals, then re-clamp
	q.Insights = clamp(q.Insights+insightsAdjustment(&pack.Map), 0, maxInsights)
	q.Hooks = clamp(q.Hooks+hooksAdjustment(&pack.Map), 0, maxHooks)

	q.ConsistencyBonus = consistencyBonus(profile, &pack.Assets)

	q.Total = clamp(q.CoreThesis+q.Hooks+q.Posts+q.Insights+q.Summary+q.ConsistencyBonus, 0, 100)
	return q
}

func scale(v int, factor float64) int {
	return int(math.Round(float64(v) * factor))
}

func scoreCoreThesis(view *model.CoreThesisView) int {
	score := 0
	if len(view.PrimaryThesis) >= 20 {
		score += 8
	}
	if len(view.SupportingThemes) >= 3 {
		score += 6
	}
	if strings.TrimSpace(view.TargetPersona) != "" {
		score += 6
	}
	return clamp(score, 0, maxCoreThesis)
}

func scoreHooks(m *model.AuthorityMap) int {
	total := 0
	words := 0
	numeric := false
	for _, set := range m.HookMatrix.Categories {
		for _, h := range set.Hooks {
			total++
			words += len(strings.Fields(h))
			if strings.ContainsAny(h, "0123456789") {
				numeric = true
			}
		}
	}

	score := 0
	if total >= 10 {
		score += 10
	}
	if total >= 15 {
		score += 5
	}
	if total > 0 {
		avg := float64(words) / float64(total)
		if avg >= 8 && avg <= 18 {
			score += 5
		}
	}
	if numeric {
		score += 5
	}
	return clamp(score, 0, maxHooks)
}

func scorePosts(assets *model.AssetSet) int {
	score := 0
	if len(assets.VariantA) >= 200 {
		score += 8
	}
	if len(assets.VariantB) >= 200 {
		score += 8
	}
	if assets.VariantA != "" && assets.VariantB != "" &&
		overlap.Similarity(assets.VariantA, assets.VariantB) < 0.7 {
		score += 5
	}
	if len(assets.Thread) >= 5 {
		score += 4
	}
	return clamp(score, 0, maxPosts)
}

func scoreInsights(m *model.AuthorityMap) int {
	score := 0
	if len(m.StrategicClaims) == validate.ClaimCount {
		score += 9
	}

	allEvidenced := len(m.StrategicClaims) > 0
	for _, c := range m.StrategicClaims {
		if len(c.Evidence) < validate.MinEvidence {
			allEvidenced = false
		}
	}
	if allEvidenced {
		score += 8
	}

	if len(m.Objections) >= validate.MinObjections {
		score += 4
	}
	if len(m.ProofAssets.Metrics)+len(m.ProofAssets.Examples)+len(m.ProofAssets.Comparisons) > 0 {
		score += 4
	}
	return clamp(score, 0, maxInsights)
}

func scoreSummary(assets *model.AssetSet) int {
	if len(assets.Newsletter) >= 400 {
		return maxSummary
	}
	if len(assets.Newsletter) >= 150 {
		return 3
	}
	return 0
}

// insightsAdjustment applies map-derived signals within a +-3 band
func insightsAdjustment(m *model.AuthorityMap) int {
	adj := 0

	allDeep := len(m.StrategicClaims) > 0
	for _, c := range m.StrategicClaims {
		if len(c.Evidence) < 2 {
			allDeep = false
		}
	}
	if allDeep {
		adj += 3
	}

	for _, c := range m.StrategicClaims {
		if len(c.Claim) < 30 {
			adj -= 3
			break
		}
	}

	return clamp(adj, -3, 3)
}

// hooksAdjustment applies map-derived signals within a +-3 band
func hooksAdjustment(m *model.AuthorityMap) int {
	adj := 0

	fullDepth := len(m.HookMatrix.Categories) == validate.HookCategoryCount
	for _, set := range m.HookMatrix.Categories {
		if len(set.Hooks) < validate.MinHooksPerSet {
			fullDepth = false
		}
	}
	if fullDepth {
		adj += 2
	}

	return clamp(adj, -3, 3)
}

// consistencyBonus grants up to 5 points when a substantial profile thesis
// shares sufficient stemmed token overlap with the produced assets
func consistencyBonus(profile *model.Profile, assets *model.AssetSet) int {
	if profile.IsEmpty() || len(profile.Thesis) < 20 {
		return 0
	}

	profileTokens := stemmedTokens(profile.Thesis)
	if len(profileTokens) < 2 {
		return 0
	}

	assetText := assets.VariantA + " " + assets.VariantB + " " + assets.Newsletter + " " + strings.Join(assets.Thread, " ")
	assetTokens := stemmedTokens(assetText)

	intersection := 0
	for tok := range profileTokens {
		if assetTokens[tok] {
			intersection++
		}
	}
	ratio := float64(intersection) / float64(len(profileTokens))

	switch {
	case ratio >= 0.5:
		return 5
	case ratio >= 0.3:
		return 3
	default:
		return 0
	}
}

// stemmedTokens lower-cases, strips common suffixes and drops short tokens
func stemmedTokens(s string) map[string]bool {
	tokens := make(map[string]bool)
	for tok := range overlap.Tokens(s) {
		if len(tok) <= 3 {
			continue // Stopword-length tokens carry no signal
		}
		tokens[stem(tok)] = true
	}
	return tokens
}

// stem is a crude suffix stripper, enough for token-set intersection
func stem(tok string) string {
	for _, suffix := range []string{"ing", "es", "ed", "s"} {
		if strings.HasSuffix(tok, suffix) && len(tok)-len(suffix) >= 3 {
			return tok[:len(tok)-len(suffix)]
		}
	}
	return tok
}
