package score

import (
	"strings"
	"testing"

	"github.com/okrenov/samforge/internal/model"
)

func strongPack() *model.Pack {
	m := strongMap()
	pack := model.NewPack("u1", "pasted", m.CoreThesis.InputType, m.CoreThesis.Angle)
	pack.Map = *m
	pack.Thesis = model.ProjectCoreThesis(m)
	pack.Assets = model.AssetSet{
		VariantA: strings.Repeat("Variant A develops workflow ownership with fresh language. ", 5),
		VariantB: strings.Repeat("Variant B argues outcome pricing compounds retention over renewals. ", 5),
		VariantC: "thesis\n\n---\n\nclaims",
		Thread: []string{
			"1/ Most founders optimize the wrong funnel stage",
			"2/ Workflow ownership changes renewals",
			"3/ Pricing follows outcomes",
			"4/ Integration depth closes deals",
			"5/ Own the workflow",
		},
		Newsletter: strings.Repeat("A newsletter paragraph interpreting the strategic claims in depth. ", 8),
		Hooks:      []string{"hook"},
	}
	return pack
}

func TestQuality_SectionBoundsAndTotal(t *testing.T) {
	q := Quality(strongPack(), nil)

	if q.CoreThesis < 0 || q.CoreThesis > 20 {
		t.Errorf("coreThesis %d outside [0,20]", q.CoreThesis)
	}
	if q.Hooks < 0 || q.Hooks > 25 {
		t.Errorf("hooks %d outside [0,25]", q.Hooks)
	}
	if q.Posts < 0 || q.Posts > 25 {
		t.Errorf("posts %d outside [0,25]", q.Posts)
	}
	if q.Insights < 0 || q.Insights > 25 {
		t.Errorf("insights %d outside [0,25]", q.Insights)
	}
	if q.Summary < 0 || q.Summary > 5 {
		t.Errorf("summary %d outside [0,5]", q.Summary)
	}
	if q.Total < 0 || q.Total > 100 {
		t.Errorf("total %d outside [0,100]", q.Total)
	}
	if q.ConsistencyBonus != 0 {
		t.Errorf("bonus %d without a profile", q.ConsistencyBonus)
	}
}

func TestQuality_Deterministic(t *testing.T) {
	pack := strongPack()
	a := Quality(pack, nil)
	b := Quality(pack, nil)
	if a != b {
		t.Errorf("same pack scored %+v then %+v", a, b)
	}
}

func TestQuality_MultipliersStayInBand(t *testing.T) {
	for it, f := range inputTypeFactors {
		for _, v := range []float64{f.CoreThesis, f.Hooks, f.Posts, f.Insights, f.Summary} {
			if v < 0.85 || v > 1.15 {
				t.Errorf("input type %s factor %.2f outside [0.85,1.15]", it, v)
			}
		}
	}
	for a, f := range angleFactors {
		for _, v := range []float64{f.CoreThesis, f.Hooks, f.Posts, f.Insights, f.Summary} {
			if v < 0.85 || v > 1.15 {
				t.Errorf("angle %s factor %.2f outside [0.85,1.15]", a, v)
			}
		}
	}
	// Every enum member carries a factor entry
	for _, it := range model.InputTypes {
		if _, ok := inputTypeFactors[it]; !ok {
			t.Errorf("no factors for input type %s", it)
		}
	}
	for _, a := range model.Angles {
		if _, ok := angleFactors[a]; !ok {
			t.Errorf("no factors for angle %s", a)
		}
	}
}

func TestQuality_InputTypeShiftsEmphasis(t *testing.T) {
	memo := strongPack()
	memo.InputType = model.InputTypeMemo

	update := strongPack()
	update.InputType = model.InputTypeInvestorUpdate

	qm := Quality(memo, nil)
	qu := Quality(update, nil)
	// investor_update weights insights up relative to memo's hook weighting
	if qu.Hooks > qm.Hooks {
		t.Errorf("investor_update hooks %d should not exceed memo hooks %d", qu.Hooks, qm.Hooks)
	}
}

func TestQuality_IdenticalVariantsLosePostPoints(t *testing.T) {
	distinct := strongPack()
	same := strongPack()
	same.Assets.VariantB = same.Assets.VariantA

	qd := Quality(distinct, nil)
	qs := Quality(same, nil)
	if qs.Posts >= qd.Posts {
		t.Errorf("identical variants should score lower: same %d, distinct %d", qs.Posts, qd.Posts)
	}
}

func TestQuality_ConsistencyBonusRequiresSubstantialProfile(t *testing.T) {
	pack := strongPack()

	if b := consistencyBonus(nil, &pack.Assets); b != 0 {
		t.Errorf("nil profile yielded bonus %d", b)
	}
	if b := consistencyBonus(&model.Profile{Thesis: "too short"}, &pack.Assets); b != 0 {
		t.Errorf("short thesis yielded bonus %d", b)
	}

	aligned := &model.Profile{Thesis: "Workflow ownership compounds retention through outcome pricing and renewals"}
	if b := consistencyBonus(aligned, &pack.Assets); b == 0 {
		t.Error("aligned profile yielded no bonus")
	}
	misaligned := &model.Profile{Thesis: "Quantum networking hardware certification for aerospace telemetry suppliers"}
	if b := consistencyBonus(misaligned, &pack.Assets); b != 0 {
		t.Errorf("misaligned profile yielded bonus %d", b)
	}
}

func TestStem(t *testing.T) {
	tests := map[string]string{
		"pricing":   "pric",
		"compounds": "compound",
		"owned":     "own",
		"outcomes":  "outcom",
		"map":       "map",
	}
	for in, want := range tests {
		if got := stem(in); got != want {
			t.Errorf("stem(%q) = %q, want %q", in, got, want)
		}
	}
}
