package extract

import (
	"fmt"

	"github.com/okrenov/samforge/internal/model"
	"github.com/okrenov/samforge/internal/overlap"
)

// IncoherenceThreshold is the token-set similarity at which two sections are
// considered near-duplicates
const IncoherenceThreshold = 0.7

// Incoherence describes an internal near-duplication in an extracted map.
// Empty reason means the map is coherent.
type Incoherence struct {
	Reason string
}

// CheckCoherence detects internal incoherence: the thesis restating a
// supporting claim or the contrarian angle, or two claims restating each
// other. Assets built from an incoherent map converge on one sentence, so
// extraction retries once with a distinctness instruction.
func CheckCoherence(m *model.AuthorityMap) *Incoherence {
	thesis := m.CoreThesis.Statement

	for i, claim := range m.StrategicClaims {
		if sim := overlap.Similarity(thesis, claim.Claim); sim >= IncoherenceThreshold {
			return &Incoherence{Reason: fmt.Sprintf("thesis near-duplicates claim %s (similarity %.2f)", claim.ID, sim)}
		}
		for j := i + 1; j < len(m.StrategicClaims); j++ {
			other := m.StrategicClaims[j]
			if sim := overlap.Similarity(claim.Claim, other.Claim); sim >= IncoherenceThreshold {
				return &Incoherence{Reason: fmt.Sprintf("claims %s and %s near-duplicate each other (similarity %.2f)", claim.ID, other.ID, sim)}
			}
		}
	}

	// The legacy projection exposes claim 1's counter-objection as the
	// contrarian angle; the thesis must not restate it either
	if len(m.StrategicClaims) > 0 {
		angle := m.StrategicClaims[0].CounterObjection
		if sim := overlap.Similarity(thesis, angle); sim >= IncoherenceThreshold {
			return &Incoherence{Reason: fmt.Sprintf("thesis near-duplicates the contrarian angle (similarity %.2f)", sim)}
		}
	}

	return nil
}
