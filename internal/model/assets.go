package model

// AssetSection identifies one independently regenerable slice of the asset set
type AssetSection string

const (
	SectionVariantA AssetSection = "variant_a" // AI-authored LinkedIn post, claim 1
	SectionVariantB AssetSection = "variant_b" // AI-authored LinkedIn post, claim 2
	SectionThread   AssetSection = "thread"    // Multi-line thread
	SectionHooks    AssetSection = "hooks"     // Hook derivation, no model call
)

// AssetSections lists the sections a regeneration request may target
var AssetSections = []AssetSection{
	SectionVariantA,
	SectionVariantB,
	SectionThread,
	SectionHooks,
}

// IsValid reports whether the section is a member of the closed set
func (s AssetSection) IsValid() bool {
	for _, v := range AssetSections {
		if s == v {
			return true
		}
	}
	return false
}

// AssetSet holds every asset derived from one authority map. Created fresh on
// full generation; individual members are replaced on section-scoped
// regeneration.
type AssetSet struct {
	VariantA   string   `json:"variantA"`   // AI-authored, built from claim 1
	VariantB   string   `json:"variantB"`   // AI-authored, built from claim 2
	VariantC   string   `json:"variantC"`   // Deterministic template, no model call
	Thread     []string `json:"thread"`     // 5-8 short lines, hook first, takeaway last
	Newsletter string   `json:"newsletter"` // Long-form body from a structured outline
	Hooks      []string `json:"hooks"`      // Flat hook projection of the map, no model call
}

// DerivedHooks is the flat hook list projected from the map for display
type DerivedHooks struct {
	Hooks []string `json:"hooks"`
}

// CoreThesisView is the legacy flattened projection of the map's thesis,
// mechanically derived and kept in lock-step with the map
type CoreThesisView struct {
	PrimaryThesis    string   `json:"primaryThesis"`
	SupportingThemes []string `json:"supportingThemes"`
	TargetPersona    string   `json:"targetPersona"`
	ContrarianAngle  string   `json:"contrarianAngle"`
}

// ProjectCoreThesis derives the legacy flattened thesis view from a map
func ProjectCoreThesis(m *AuthorityMap) CoreThesisView {
	view := CoreThesisView{
		PrimaryThesis: m.CoreThesis.Statement,
		TargetPersona: m.CoreThesis.Audience,
	}
	for _, claim := range m.StrategicClaims {
		view.SupportingThemes = append(view.SupportingThemes, claim.Claim)
	}
	if len(m.StrategicClaims) > 0 {
		view.ContrarianAngle = m.StrategicClaims[0].CounterObjection
	}
	return view
}
