package score

import (
	"testing"

	"github.com/okrenov/samforge/internal/model"
)

func strongMap() *model.AuthorityMap {
	claim := func(id, text string) model.StrategicClaim {
		return model.StrategicClaim{
			ID:               id,
			Claim:            text,
			WhyItMatters:     "Buyers consolidate spend around vendors that own the outcome end to end for them",
			CounterObjection: "Point solutions move faster, but they lose the renewal conversation later",
			Differentiation:  "Unlike horizontal platforms, this approach prices on delivered outcomes instead of seats",
			Evidence: []model.EvidencePoint{
				{Point: "Churn dropped from 9% to 3% within two quarters of the rebuild", Type: model.EvidenceMetric},
				{Point: "An enterprise buyer named integration depth as the deciding factor", Type: model.EvidenceExample},
			},
		}
	}

	var sets []model.HookSet
	for _, cat := range model.HookCategories {
		sets = append(sets, model.HookSet{
			Category: cat,
			Hooks: []string{
				"Most founders in vertical SaaS optimize the wrong funnel stage entirely",
				"Our churn fell from 9% to 3% and nobody believed the mechanism",
				"The exact playbook we used to escape seat pricing in 18 months",
			},
		})
	}

	return &model.AuthorityMap{
		CoreThesis: model.CoreThesis{
			Statement: "Vertical software wins by owning the whole workflow with 10x switching costs",
			Audience:  "B2B SaaS founders",
			Angle:     model.AngleDataDriven,
			InputType: model.InputTypeMemo,
		},
		StrategicClaims: []model.StrategicClaim{
			claim("C1", "Workflow ownership beats model quality as a moat in every vertical we studied"),
			claim("C2", "Outcome pricing compounds retention faster than any feature investment does"),
			claim("C3", "Integration depth is the last defensible distribution channel left standing"),
		},
		NarrativeArc: model.NarrativeArc{
			Setup:        "Every board meeting now starts with an AI strategy slide",
			Tension:      "Model capabilities are commoditizing faster than budgeted",
			TurningPoint: "Companies that rebuilt around the workflow stopped competing on the model",
			Resolution:   "Owning the workflow turned AI into a retention engine",
			Takeaway:     "Own the workflow and the model becomes a detail",
		},
		HookMatrix: model.HookMatrix{Categories: sets},
		Objections: []string{
			"Is this not simply repackaged services revenue with structurally worse margins",
			"Workflow lock-in invites regulatory scrutiny and switching-cost backlash eventually",
			"Foundation model vendors will move up the stack and absorb the workflow layer",
		},
		ProofAssets: model.ProofAssets{
			Metrics: []string{"Churn dropped from 9% to 3%"},
		},
	}
}

func TestMessaging_StrongMapScoresHigh(t *testing.T) {
	s := Messaging(strongMap())

	for name, sub := range map[string]int{
		"hookStrength":           s.HookStrength,
		"claimRobustness":        s.ClaimRobustness,
		"evidenceDepth":          s.EvidenceDepth,
		"differentiationClarity": s.DifferentiationClarity,
		"objectionCoverage":      s.ObjectionCoverage,
	} {
		if sub < 0 || sub > 20 {
			t.Errorf("%s = %d, outside [0,20]", name, sub)
		}
		if sub < 15 {
			t.Errorf("%s = %d, expected a strong map to score at least 15", name, sub)
		}
	}
	if s.Total != s.HookStrength+s.ClaimRobustness+s.EvidenceDepth+s.DifferentiationClarity+s.ObjectionCoverage {
		t.Errorf("total %d does not equal the sub-score sum", s.Total)
	}
	if len(s.Signals) != 5 {
		t.Errorf("expected 5 signals, got %d", len(s.Signals))
	}
	for _, sig := range s.Signals {
		if sig.Component == "" || len(sig.Data) == 0 {
			t.Errorf("signal %+v lacks transparent data", sig)
		}
	}
}

func TestMessaging_Deterministic(t *testing.T) {
	m := strongMap()
	a := Messaging(m)
	b := Messaging(m)
	if a.Total != b.Total {
		t.Errorf("same input scored %d then %d", a.Total, b.Total)
	}
}

func TestMessaging_EmptyMapScoresLow(t *testing.T) {
	s := Messaging(&model.AuthorityMap{})
	if s.Total > 10 {
		t.Errorf("empty map scored %d", s.Total)
	}
	if s.HookStrength != 0 {
		t.Errorf("empty map hook strength %d", s.HookStrength)
	}
}

func TestHookStrength_FillerOpenersCostPoints(t *testing.T) {
	clean := strongMap()
	filler := strongMap()
	for i := range filler.HookMatrix.Categories {
		filler.HookMatrix.Categories[i].Hooks[0] = "I think " + filler.HookMatrix.Categories[i].Hooks[0]
	}

	cs, _ := hookStrength(clean)
	fs, _ := hookStrength(filler)
	if fs >= cs {
		t.Errorf("filler openers did not cost points: clean %d, filler %d", cs, fs)
	}
}

func TestClaimRobustness_ShortClaimsNotRobust(t *testing.T) {
	m := strongMap()
	for i := range m.StrategicClaims {
		m.StrategicClaims[i].Claim = "Short claim"
	}
	score, sig := claimRobustness(m)
	if score != 5 {
		t.Errorf("expected only the count points (5), got %d", score)
	}
	if sig.Data["robust_claims"] != 0 {
		t.Errorf("robust_claims = %v, want 0", sig.Data["robust_claims"])
	}
}

func TestEvidenceDepth_NumericClaimNeedsMetricProof(t *testing.T) {
	stripProof := func(m *model.AuthorityMap) {
		for i := range m.StrategicClaims {
			for j := range m.StrategicClaims[i].Evidence {
				m.StrategicClaims[i].Evidence[j].Type = model.EvidencePrinciple
				m.StrategicClaims[i].Evidence[j].Point = "A qualitative observation about workflow ownership dynamics"
			}
		}
	}

	// Numeric claim with purely qualitative evidence
	numeric := strongMap()
	numeric.StrategicClaims[0].Claim = "We cut onboarding time by 70% across every vertical we studied"
	stripProof(numeric)
	numericScore, _ := evidenceDepth(numeric)

	// Same qualitative evidence under claims with no numeric assertion
	plain := strongMap()
	stripProof(plain)
	plainScore, _ := evidenceDepth(plain)

	if numericScore >= plainScore {
		t.Errorf("unproven numeric claim should score lower: numeric %d, plain %d", numericScore, plainScore)
	}
}

func TestDifferentiationClarity_GenericStatements(t *testing.T) {
	m := strongMap()
	for i := range m.StrategicClaims {
		m.StrategicClaims[i].Differentiation = "We are a unique, innovative, cutting edge platform solution"
	}
	score, _ := differentiationClarity(m)
	strong, _ := differentiationClarity(strongMap())
	if score >= strong {
		t.Errorf("generic differentiation should score lower: generic %d, strong %d", score, strong)
	}
}

func TestObjectionCoverage_DismissiveObjections(t *testing.T) {
	m := strongMap()
	m.Objections[0] = "That's wrong and everyone who says otherwise is simply mistaken"
	score, sig := objectionCoverage(m)
	strong, _ := objectionCoverage(strongMap())
	if score >= strong {
		t.Errorf("dismissive objection should cost points: got %d vs %d", score, strong)
	}
	if sig.Data["dismissive"] != 1 {
		t.Errorf("dismissive = %v, want 1", sig.Data["dismissive"])
	}
}

func TestClamp(t *testing.T) {
	if clamp(-5, 0, 20) != 0 || clamp(25, 0, 20) != 20 || clamp(7, 0, 20) != 7 {
		t.Error("clamp misbehaves")
	}
}
