package model

// MessagingStrength scores the intrinsic quality of an authority map.
// Five sub-scores of 20 points each, total clamped to 100.
type MessagingStrength struct {
	HookStrength           int `json:"hookStrength"`
	ClaimRobustness        int `json:"claimRobustness"`
	EvidenceDepth          int `json:"evidenceDepth"`
	DifferentiationClarity int `json:"differentiationClarity"`
	ObjectionCoverage      int `json:"objectionCoverage"`
	Total                  int `json:"total"`

	Signals []ScoreSignal `json:"signals,omitempty"` // Diagnostic breakdown with transparent data
}

// ScoreSignal carries transparent scoring data so every point is explainable
type ScoreSignal struct {
	Component   string                 `json:"component"`
	Description string                 `json:"description"`
	Data        map[string]interface{} `json:"data,omitempty"`
}

// QualityBreakdown scores completeness and specificity of the derived pack
// sections. Section maxima: coreThesis 20, hooks 25, posts 25, insights 25,
// summary 5. Total clamped to 100.
type QualityBreakdown struct {
	CoreThesis int `json:"coreThesis"`
	Hooks      int `json:"hooks"`
	Posts      int `json:"posts"`
	Insights   int `json:"insights"`
	Summary    int `json:"summary"`
	Total      int `json:"total"`

	ConsistencyBonus int `json:"consistencyBonus,omitempty"` // <=5, profile token overlap
}

// AuthorityConsistency flags positioning drift against a persisted profile
// and a small sample of the account's recent maps
type AuthorityConsistency struct {
	ThesisAlignment      int      `json:"thesisAlignment"`
	PositioningAlignment int      `json:"positioningAlignment"`
	ToneMatch            int      `json:"toneMatch"`
	ClaimThemeCoherence  int      `json:"claimThemeCoherence"`
	Total                int      `json:"total"`
	DriftWarnings        []string `json:"driftWarnings"`
}

// ScoreSnapshot groups the three independently computed scores. Recomputed
// whenever the map or any asset changes; never hand-edited.
type ScoreSnapshot struct {
	Messaging   MessagingStrength     `json:"messaging"`
	Quality     QualityBreakdown      `json:"quality"`
	Consistency *AuthorityConsistency `json:"consistency,omitempty"`
}
