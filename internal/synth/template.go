package synth

import (
	"fmt"
	"strings"

	"github.com/okrenov/samforge/internal/model"
)

// variantSeparator joins the blocks of the template variant
const variantSeparator = "\n\n---\n\n"

// TemplateVariant produces the deterministic variant C with no model call:
// thesis, narrative setup, each claim with its first evidence point, and the
// narrative takeaway. Zero-cost fallback and a baseline for comparing the two
// AI-authored variants.
func TemplateVariant(m *model.AuthorityMap) string {
	blocks := []string{
		m.CoreThesis.Statement,
		m.NarrativeArc.Setup,
	}

	for _, claim := range m.StrategicClaims {
		block := claim.Claim
		if len(claim.Evidence) > 0 {
			block = fmt.Sprintf("%s\n\nProof: %s", claim.Claim, claim.Evidence[0].Point)
		}
		blocks = append(blocks, block)
	}

	blocks = append(blocks, m.NarrativeArc.Takeaway)

	return strings.Join(blocks, variantSeparator)
}

// DeriveHooks projects the flat hook list from the map in canonical category
// order. Pure function, no model call.
func DeriveHooks(m *model.AuthorityMap) model.DerivedHooks {
	var hooks []string
	for _, cat := range model.HookCategories {
		for _, set := range m.HookMatrix.Categories {
			if set.Category == cat {
				hooks = append(hooks, set.Hooks...)
				break
			}
		}
	}
	return model.DerivedHooks{Hooks: hooks}
}
