package validate

import (
	"fmt"
	"strings"

	"github.com/okrenov/samforge/internal/model"
)

// Cardinality bounds of the map contract
const (
	ClaimCount        = 3
	HookCategoryCount = 5
	MinEvidence       = 2
	MaxEvidence       = 4
	MinHooksPerSet    = 3 // Requested from the model; normalization may leave fewer
	MaxHooksPerSet    = 5
	MinObjections     = 3
	MaxObjections     = 5
	MaxQuoteWords     = 20
)

// Result carries the validity verdict and the first violated rule
type Result struct {
	Valid  bool
	Reason string
}

func invalid(format string, args ...interface{}) Result {
	return Result{Valid: false, Reason: fmt.Sprintf(format, args...)}
}

var valid = Result{Valid: true}

// Map checks a candidate authority map against the full structural contract.
// Any single violation fails the whole structure: downstream code indexes
// fixed positions and assumes exact shape, so partial validity is not a
// concept here.
func Map(m *model.AuthorityMap) Result {
	if m == nil {
		return invalid("map is nil")
	}

	if r := coreThesis(&m.CoreThesis); !r.Valid {
		return r
	}
	if r := strategicClaims(m.StrategicClaims); !r.Valid {
		return r
	}
	if r := narrativeArc(&m.NarrativeArc); !r.Valid {
		return r
	}
	if r := hookMatrix(&m.HookMatrix); !r.Valid {
		return r
	}
	if r := objections(m.Objections); !r.Valid {
		return r
	}
	if r := proofAssets(&m.ProofAssets); !r.Valid {
		return r
	}

	return valid
}

func coreThesis(t *model.CoreThesis) Result {
	if strings.TrimSpace(t.Statement) == "" {
		return invalid("coreThesis.statement is empty")
	}
	if strings.TrimSpace(t.Audience) == "" {
		return invalid("coreThesis.audience is empty")
	}
	if !t.Angle.IsValid() {
		return invalid("coreThesis.angle %q is not a valid angle", t.Angle)
	}
	if !t.InputType.IsValid() {
		return invalid("coreThesis.inputType %q is not a valid input type", t.InputType)
	}
	return valid
}

func strategicClaims(claims []model.StrategicClaim) Result {
	if len(claims) != ClaimCount {
		return invalid("expected exactly %d strategicClaims, got %d", ClaimCount, len(claims))
	}

	seen := make(map[string]bool, ClaimCount)
	for i, c := range claims {
		if !validClaimID(c.ID) {
			return invalid("strategicClaims[%d].id %q is not in {C1,C2,C3}", i, c.ID)
		}
		if seen[c.ID] {
			return invalid("duplicate claim id %q", c.ID)
		}
		seen[c.ID] = true

		for field, value := range map[string]string{
			"claim":            c.Claim,
			"whyItMatters":     c.WhyItMatters,
			"counterObjection": c.CounterObjection,
			"differentiation":  c.Differentiation,
		} {
			if strings.TrimSpace(value) == "" {
				return invalid("strategicClaims[%d].%s is empty", i, field)
			}
		}

		if len(c.Evidence) < MinEvidence || len(c.Evidence) > MaxEvidence {
			return invalid("strategicClaims[%d] has %d evidence points, want %d-%d", i, len(c.Evidence), MinEvidence, MaxEvidence)
		}
		for j, ev := range c.Evidence {
			if strings.TrimSpace(ev.Point) == "" {
				return invalid("strategicClaims[%d].evidence[%d].point is empty", i, j)
			}
			if !ev.Type.IsValid() {
				return invalid("strategicClaims[%d].evidence[%d].type %q is not a valid evidence type", i, j, ev.Type)
			}
			if ev.SourceQuote != nil && len(strings.Fields(*ev.SourceQuote)) > MaxQuoteWords {
				return invalid("strategicClaims[%d].evidence[%d].sourceQuote exceeds %d words", i, j, MaxQuoteWords)
			}
		}
	}

	return valid
}

func validClaimID(id string) bool {
	for _, v := range model.ClaimIDs {
		if id == v {
			return true
		}
	}
	return false
}

func narrativeArc(arc *model.NarrativeArc) Result {
	for field, value := range map[string]string{
		"setup":        arc.Setup,
		"tension":      arc.Tension,
		"turningPoint": arc.TurningPoint,
		"resolution":   arc.Resolution,
		"takeaway":     arc.Takeaway,
	} {
		if strings.TrimSpace(value) == "" {
			return invalid("narrativeArc.%s is empty", field)
		}
	}
	return valid
}

func hookMatrix(matrix *model.HookMatrix) Result {
	if len(matrix.Categories) != HookCategoryCount {
		return invalid("expected exactly %d hook categories, got %d", HookCategoryCount, len(matrix.Categories))
	}

	seen := make(map[model.HookCategory]bool, HookCategoryCount)
	for i, set := range matrix.Categories {
		if !validHookCategory(set.Category) {
			return invalid("hookMatrix.categories[%d].category %q is not a valid category", i, set.Category)
		}
		if seen[set.Category] {
			return invalid("duplicate hook category %q", set.Category)
		}
		seen[set.Category] = true

		if len(set.Hooks) == 0 {
			return invalid("hookMatrix.categories[%d] has no hooks", i)
		}
		for j, hook := range set.Hooks {
			if strings.TrimSpace(hook) == "" {
				return invalid("hookMatrix.categories[%d].hooks[%d] is empty", i, j)
			}
		}
	}

	return valid
}

func validHookCategory(c model.HookCategory) bool {
	for _, v := range model.HookCategories {
		if c == v {
			return true
		}
	}
	return false
}

func objections(objs []string) Result {
	if len(objs) < MinObjections || len(objs) > MaxObjections {
		return invalid("expected %d-%d objections, got %d", MinObjections, MaxObjections, len(objs))
	}
	for i, o := range objs {
		if strings.TrimSpace(o) == "" {
			return invalid("objections[%d] is empty", i)
		}
	}
	return valid
}

func proofAssets(assets *model.ProofAssets) Result {
	for name, list := range map[string][]string{
		"metrics":     assets.Metrics,
		"examples":    assets.Examples,
		"comparisons": assets.Comparisons,
	} {
		for i, entry := range list {
			if strings.TrimSpace(entry) == "" {
				return invalid("proofAssets.%s[%d] is empty", name, i)
			}
		}
	}
	return valid
}
