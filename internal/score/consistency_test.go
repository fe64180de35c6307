package score

import (
	"testing"

	"github.com/okrenov/samforge/internal/model"
)

func TestConsistency_NoProfileNoHistoryIsFullScore(t *testing.T) {
	c := Consistency(strongMap(), nil, nil)
	if c.Total != 100 {
		t.Errorf("nothing to drift from, total %d want 100", c.Total)
	}
	if len(c.DriftWarnings) != 0 {
		t.Errorf("unexpected warnings: %v", c.DriftWarnings)
	}
}

func TestConsistency_Deterministic(t *testing.T) {
	profile := &model.Profile{Thesis: "Workflow ownership is the durable moat in vertical software"}
	recent := []model.AuthorityMap{*strongMap()}

	a := Consistency(strongMap(), profile, recent)
	b := Consistency(strongMap(), profile, recent)
	if a.Total != b.Total || len(a.DriftWarnings) != len(b.DriftWarnings) {
		t.Errorf("same inputs scored %+v then %+v", a, b)
	}
}

func TestConsistency_IdenticalRecentMapScoresHigh(t *testing.T) {
	current := strongMap()
	recent := []model.AuthorityMap{*strongMap()}

	c := Consistency(current, nil, recent)
	if c.ThesisAlignment != subScoreMax {
		t.Errorf("identical thesis alignment %d, want %d", c.ThesisAlignment, subScoreMax)
	}
	if c.ToneMatch != subScoreMax {
		t.Errorf("identical tone match %d, want %d", c.ToneMatch, subScoreMax)
	}
	if c.ClaimThemeCoherence != subScoreMax {
		t.Errorf("identical claim coherence %d, want %d", c.ClaimThemeCoherence, subScoreMax)
	}
	if len(c.DriftWarnings) != 0 {
		t.Errorf("unexpected warnings: %v", c.DriftWarnings)
	}
}

func driftedMap() *model.AuthorityMap {
	m := strongMap()
	m.CoreThesis.Statement = "Hardware certification pipelines determine aerospace supplier survival"
	for i := range m.StrategicClaims {
		m.StrategicClaims[i].Claim = []string{
			"Telemetry compliance audits gate every aerospace procurement cycle",
			"Certification lead times decide which supplier wins the airframe contract",
			"Legacy test rigs cannot express modern avionics failure modes",
		}[i]
		m.StrategicClaims[i].Differentiation = "Built for avionics labs, not generic industrial QA tooling"
	}
	// Terse, non-numeric hooks shift the tone signals
	for i := range m.HookMatrix.Categories {
		m.HookMatrix.Categories[i].Hooks = []string{"Certification is the product"}
	}
	return m
}

func TestConsistency_DriftProducesWarnings(t *testing.T) {
	profile := &model.Profile{
		Thesis:      "Vertical software wins by owning the whole workflow with 10x switching costs",
		Positioning: "The workflow ownership company for B2B vertical SaaS operators",
	}
	recent := []model.AuthorityMap{*strongMap(), *strongMap()}

	c := Consistency(driftedMap(), profile, recent)

	if c.Total > 60 {
		t.Errorf("drifted map scored %d, expected substantial penalty", c.Total)
	}
	if len(c.DriftWarnings) == 0 {
		t.Fatal("expected drift warnings")
	}
	if len(c.DriftWarnings) > 4 {
		t.Errorf("warning list unbounded: %d entries", len(c.DriftWarnings))
	}
}

func TestConsistency_RecentSampleBounded(t *testing.T) {
	var recent []model.AuthorityMap
	for i := 0; i < MaxRecentSample+4; i++ {
		recent = append(recent, *strongMap())
	}

	c := Consistency(strongMap(), nil, recent)
	// Only the bounded sample matters; an oversize slice must not change
	// the outcome relative to the first five
	bounded := Consistency(strongMap(), nil, recent[:MaxRecentSample])
	if c.Total != bounded.Total {
		t.Errorf("oversize sample scored %d, bounded %d", c.Total, bounded.Total)
	}
}

func TestToSubScore(t *testing.T) {
	tests := []struct {
		sim  float64
		want int
	}{
		{0, 0},
		{1, 25},
		{0.5, 13},
		{-0.3, 0},
		{1.7, 25},
	}
	for _, tt := range tests {
		if got := toSubScore(tt.sim); got != tt.want {
			t.Errorf("toSubScore(%.2f) = %d, want %d", tt.sim, got, tt.want)
		}
	}
}
