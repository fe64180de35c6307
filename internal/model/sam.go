package model

// InputType categorizes the kind of source material being processed
type InputType string

const (
	InputTypeInterview      InputType = "interview"       // Long-form interview transcript
	InputTypeMemo           InputType = "memo"            // Internal strategy memo
	InputTypeInvestorUpdate InputType = "investor_update" // Periodic investor update
	InputTypeMeetingNotes   InputType = "meeting_notes"   // Raw meeting notes
	InputTypePodcast        InputType = "podcast"         // Podcast episode transcript
	InputTypeDraft          InputType = "draft"           // Rough written draft
)

// InputTypes lists every valid input type
var InputTypes = []InputType{
	InputTypeInterview,
	InputTypeMemo,
	InputTypeInvestorUpdate,
	InputTypeMeetingNotes,
	InputTypePodcast,
	InputTypeDraft,
}

// IsValid reports whether the input type is a member of the closed set
func (t InputType) IsValid() bool {
	for _, v := range InputTypes {
		if t == v {
			return true
		}
	}
	return false
}

// Angle selects the strategic lens applied during extraction
type Angle string

const (
	AngleContrarian      Angle = "contrarian"       // Challenge conventional wisdom
	AngleDataDriven      Angle = "data_driven"      // Lead with numbers and proof
	AngleStory           Angle = "story"            // Narrative-first framing
	AngleTactical        Angle = "tactical"         // Actionable how-to framing
	AngleVisionary       Angle = "visionary"        // Future-state framing
	AngleIndustryInsider Angle = "industry_insider" // Insider perspective framing
)

// Angles lists every valid angle
var Angles = []Angle{
	AngleContrarian,
	AngleDataDriven,
	AngleStory,
	AngleTactical,
	AngleVisionary,
	AngleIndustryInsider,
}

// IsValid reports whether the angle is a member of the closed set
func (a Angle) IsValid() bool {
	for _, v := range Angles {
		if a == v {
			return true
		}
	}
	return false
}

// EvidenceType classifies an evidence point attached to a claim
type EvidenceType string

const (
	EvidenceMetric     EvidenceType = "metric"     // Quantitative proof
	EvidenceExample    EvidenceType = "example"    // Concrete example or anecdote
	EvidenceComparison EvidenceType = "comparison" // Before/after or competitor comparison
	EvidencePrinciple  EvidenceType = "principle"  // First-principles reasoning
)

// EvidenceTypes lists every valid evidence type
var EvidenceTypes = []EvidenceType{
	EvidenceMetric,
	EvidenceExample,
	EvidenceComparison,
	EvidencePrinciple,
}

// IsValid reports whether the evidence type is a member of the closed set
func (t EvidenceType) IsValid() bool {
	for _, v := range EvidenceTypes {
		if t == v {
			return true
		}
	}
	return false
}

// HookCategory is one of the five fixed rhetorical framings
type HookCategory string

const (
	HookContrarian HookCategory = "Contrarian"
	HookData       HookCategory = "Data"
	HookStory      HookCategory = "Story"
	HookTactical   HookCategory = "Tactical"
	HookVision     HookCategory = "Vision"
)

// HookCategories lists the five categories in canonical order
var HookCategories = []HookCategory{
	HookContrarian,
	HookData,
	HookStory,
	HookTactical,
	HookVision,
}

// ClaimIDs is the fixed identifier set for strategic claims
var ClaimIDs = []string{"C1", "C2", "C3"}

// CoreThesis is the central positioning statement of the map
type CoreThesis struct {
	Statement string    `json:"statement"`
	Audience  string    `json:"audience"`
	Angle     Angle     `json:"angle"`
	InputType InputType `json:"inputType"`
}

// EvidencePoint supports a strategic claim
type EvidencePoint struct {
	Point       string       `json:"point"`
	SourceQuote *string      `json:"sourceQuote"` // Short quote from the source (<=20 words) or null
	Type        EvidenceType `json:"type"`
}

// StrategicClaim is one of exactly three defensible positions in the map
type StrategicClaim struct {
	ID               string          `json:"id"` // C1, C2 or C3
	Claim            string          `json:"claim"`
	WhyItMatters     string          `json:"whyItMatters"`
	CounterObjection string          `json:"counterObjection"`
	Differentiation  string          `json:"differentiation"`
	Evidence         []EvidencePoint `json:"evidence"` // 2-4 points
}

// NarrativeArc is the five-beat story structure of the map
type NarrativeArc struct {
	Setup        string `json:"setup"`
	Tension      string `json:"tension"`
	TurningPoint string `json:"turningPoint"`
	Resolution   string `json:"resolution"`
	Takeaway     string `json:"takeaway"`
}

// HookSet holds the hooks for one category
type HookSet struct {
	Category HookCategory `json:"category"`
	Hooks    []string     `json:"hooks"` // 3-5 short hooks
}

// HookMatrix holds exactly five hook sets, one per category
type HookMatrix struct {
	Categories []HookSet `json:"categories"`
}

// ProofAssets collects reusable proof material by kind
type ProofAssets struct {
	Metrics     []string `json:"metrics"`
	Examples    []string `json:"examples"`
	Comparisons []string `json:"comparisons"`
}

// AuthorityMap is the Strategic Authority Map: the validated structured
// representation extracted from source text. Immutable once produced for a
// pipeline run; regeneration replaces it wholesale.
type AuthorityMap struct {
	CoreThesis      CoreThesis       `json:"coreThesis"`
	StrategicClaims []StrategicClaim `json:"strategicClaims"` // exactly 3
	NarrativeArc    NarrativeArc     `json:"narrativeArc"`
	HookMatrix      HookMatrix       `json:"hookMatrix"` // exactly 5 categories
	Objections      []string         `json:"objections"` // 3-5
	ProofAssets     ProofAssets      `json:"proofAssets"`
}

// SourcePhrases flattens the map into the phrase list the overlap guard
// checks generated assets against: thesis, claims, rationales and evidence
func (m *AuthorityMap) SourcePhrases() []string {
	phrases := []string{m.CoreThesis.Statement}
	for _, claim := range m.StrategicClaims {
		phrases = append(phrases, claim.Claim, claim.WhyItMatters)
		for _, ev := range claim.Evidence {
			phrases = append(phrases, ev.Point)
		}
	}
	return phrases
}

// Claim returns the claim with the given index (0-2) or nil
func (m *AuthorityMap) Claim(idx int) *StrategicClaim {
	if idx < 0 || idx >= len(m.StrategicClaims) {
		return nil
	}
	return &m.StrategicClaims[idx]
}
