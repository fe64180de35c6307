package validate

import (
	"strings"
	"testing"

	"github.com/okrenov/samforge/internal/model"
)

func validMap() *model.AuthorityMap {
	quote := "we grew pipeline forty percent in two quarters"
	claim := func(id, text string) model.StrategicClaim {
		return model.StrategicClaim{
			ID:               id,
			Claim:            text,
			WhyItMatters:     "Buyers consolidate spend around vendors that own the workflow end to end",
			CounterObjection: "Point solutions move faster, but they lose the renewal conversation",
			Differentiation:  "Unlike horizontal platforms, this approach prices on outcomes instead of seats",
			Evidence: []model.EvidencePoint{
				{Point: "Churn dropped from 9% to 3% after the workflow rebuild", Type: model.EvidenceMetric, SourceQuote: &quote},
				{Point: "Two enterprise deals closed specifically on the integration depth", Type: model.EvidenceExample},
			},
		}
	}

	var sets []model.HookSet
	for _, cat := range model.HookCategories {
		sets = append(sets, model.HookSet{
			Category: cat,
			Hooks: []string{
				"Most founders optimize the wrong funnel stage entirely",
				"The data on workflow ownership surprised even our board",
				"Here is the exact playbook we used to escape seat pricing",
			},
		})
	}

	return &model.AuthorityMap{
		CoreThesis: model.CoreThesis{
			Statement: "Vertical software wins by owning the whole workflow, not by renting intelligence",
			Audience:  "B2B SaaS founders at seed through series B",
			Angle:     model.AngleDataDriven,
			InputType: model.InputTypeMemo,
		},
		StrategicClaims: []model.StrategicClaim{
			claim("C1", "Workflow ownership beats model quality as a moat"),
			claim("C2", "Outcome pricing compounds retention in vertical markets"),
			claim("C3", "Integration depth is the only defensible distribution channel left"),
		},
		NarrativeArc: model.NarrativeArc{
			Setup:        "Every vertical SaaS board meeting now starts with an AI strategy slide",
			Tension:      "Model capabilities are commoditizing faster than anyone budgeted for",
			TurningPoint: "The companies that rebuilt around the workflow stopped competing on the model",
			Resolution:   "Owning the workflow turned AI from a feature race into a retention engine",
			Takeaway:     "Own the workflow and the model becomes a detail",
		},
		HookMatrix: model.HookMatrix{Categories: sets},
		Objections: []string{
			"Isn't this just repackaged services revenue with worse margins",
			"Workflow lock-in invites regulatory and switching-cost backlash",
			"Foundation model vendors will move up the stack and absorb the workflow",
		},
		ProofAssets: model.ProofAssets{
			Metrics:     []string{"Churn dropped from 9% to 3%"},
			Examples:    []string{"Two enterprise deals closed on integration depth alone"},
			Comparisons: []string{"Outcome pricing vs seat pricing across two renewal cycles"},
		},
	}
}

func TestMap_ValidMapPasses(t *testing.T) {
	r := Map(validMap())
	if !r.Valid {
		t.Fatalf("expected valid map, got: %s", r.Reason)
	}
}

func TestMap_NilMap(t *testing.T) {
	r := Map(nil)
	if r.Valid {
		t.Fatal("expected nil map to fail")
	}
}

func TestMap_Rejections(t *testing.T) {
	longQuote := strings.Repeat("word ", MaxQuoteWords+1)

	tests := []struct {
		name   string
		mutate func(m *model.AuthorityMap)
		want   string
	}{
		{
			name:   "empty thesis statement",
			mutate: func(m *model.AuthorityMap) { m.CoreThesis.Statement = "  " },
			want:   "coreThesis.statement",
		},
		{
			name:   "invalid angle",
			mutate: func(m *model.AuthorityMap) { m.CoreThesis.Angle = "spicy" },
			want:   "angle",
		},
		{
			name:   "invalid input type",
			mutate: func(m *model.AuthorityMap) { m.CoreThesis.InputType = "tweetstorm" },
			want:   "inputType",
		},
		{
			name:   "two claims",
			mutate: func(m *model.AuthorityMap) { m.StrategicClaims = m.StrategicClaims[:2] },
			want:   "strategicClaims",
		},
		{
			name:   "four claims",
			mutate: func(m *model.AuthorityMap) { m.StrategicClaims = append(m.StrategicClaims, m.StrategicClaims[0]) },
			want:   "strategicClaims",
		},
		{
			name:   "bad claim id",
			mutate: func(m *model.AuthorityMap) { m.StrategicClaims[1].ID = "C9" },
			want:   "id",
		},
		{
			name: "duplicate claim id",
			mutate: func(m *model.AuthorityMap) {
				m.StrategicClaims[2].ID = "C1"
			},
			want: "duplicate claim id",
		},
		{
			name:   "empty counter objection",
			mutate: func(m *model.AuthorityMap) { m.StrategicClaims[0].CounterObjection = "" },
			want:   "counterObjection",
		},
		{
			name: "one evidence point",
			mutate: func(m *model.AuthorityMap) {
				m.StrategicClaims[0].Evidence = m.StrategicClaims[0].Evidence[:1]
			},
			want: "evidence",
		},
		{
			name: "five evidence points",
			mutate: func(m *model.AuthorityMap) {
				ev := m.StrategicClaims[0].Evidence[0]
				m.StrategicClaims[0].Evidence = []model.EvidencePoint{ev, ev, ev, ev, ev}
			},
			want: "evidence",
		},
		{
			name: "invalid evidence type",
			mutate: func(m *model.AuthorityMap) {
				m.StrategicClaims[0].Evidence[0].Type = "vibes"
			},
			want: "type",
		},
		{
			name: "over-long source quote",
			mutate: func(m *model.AuthorityMap) {
				m.StrategicClaims[0].Evidence[0].SourceQuote = &longQuote
			},
			want: "sourceQuote",
		},
		{
			name:   "empty arc beat",
			mutate: func(m *model.AuthorityMap) { m.NarrativeArc.TurningPoint = "" },
			want:   "turningPoint",
		},
		{
			name: "four hook categories",
			mutate: func(m *model.AuthorityMap) {
				m.HookMatrix.Categories = m.HookMatrix.Categories[:4]
			},
			want: "hook categories",
		},
		{
			name: "duplicate hook category",
			mutate: func(m *model.AuthorityMap) {
				m.HookMatrix.Categories[1].Category = m.HookMatrix.Categories[0].Category
			},
			want: "duplicate hook category",
		},
		{
			name: "category with no hooks",
			mutate: func(m *model.AuthorityMap) {
				m.HookMatrix.Categories[3].Hooks = nil
			},
			want: "no hooks",
		},
		{
			name: "blank hook",
			mutate: func(m *model.AuthorityMap) {
				m.HookMatrix.Categories[0].Hooks[1] = "   "
			},
			want: "hooks[1]",
		},
		{
			name:   "two objections",
			mutate: func(m *model.AuthorityMap) { m.Objections = m.Objections[:2] },
			want:   "objections",
		},
		{
			name: "six objections",
			mutate: func(m *model.AuthorityMap) {
				m.Objections = append(m.Objections, "a", "b", "c")
			},
			want: "objections",
		},
		{
			name: "blank proof asset",
			mutate: func(m *model.AuthorityMap) {
				m.ProofAssets.Metrics = []string{""}
			},
			want: "proofAssets.metrics",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := validMap()
			tt.mutate(m)
			r := Map(m)
			if r.Valid {
				t.Fatal("expected rejection, map passed")
			}
			if !strings.Contains(r.Reason, tt.want) {
				t.Errorf("reason %q does not mention %q", r.Reason, tt.want)
			}
		})
	}
}

func TestMap_SingleHookPerCategory(t *testing.T) {
	// A category reduced to one hook is still structurally valid
	m := validMap()
	for i := range m.HookMatrix.Categories {
		m.HookMatrix.Categories[i].Hooks = m.HookMatrix.Categories[i].Hooks[:1]
	}
	r := Map(m)
	if !r.Valid {
		t.Fatalf("expected single-hook categories to pass, got: %s", r.Reason)
	}
}

func TestMap_NilSourceQuote(t *testing.T) {
	m := validMap()
	for i := range m.StrategicClaims {
		for j := range m.StrategicClaims[i].Evidence {
			m.StrategicClaims[i].Evidence[j].SourceQuote = nil
		}
	}
	r := Map(m)
	if !r.Valid {
		t.Fatalf("expected nil source quotes to pass, got: %s", r.Reason)
	}
}
