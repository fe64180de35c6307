package extract

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/okrenov/samforge/internal/llm"
	"github.com/okrenov/samforge/internal/model"
)

// fakeProvider returns canned responses in order and records every request
type fakeProvider struct {
	responses []string
	requests  []llm.Request
	err       error
}

func (f *fakeProvider) Name() string { return "fake" }

func (f *fakeProvider) Complete(ctx context.Context, req llm.Request) (*llm.Response, error) {
	f.requests = append(f.requests, req)
	if f.err != nil {
		return nil, f.err
	}
	idx := len(f.requests) - 1
	if idx >= len(f.responses) {
		idx = len(f.responses) - 1
	}
	return &llm.Response{Text: f.responses[idx], Model: "fake-model"}, nil
}

func (f *fakeProvider) IsAvailable(ctx context.Context) bool { return true }

func mapJSON(t *testing.T, m *model.AuthorityMap) string {
	t.Helper()
	data, err := json.Marshal(m)
	if err != nil {
		t.Fatalf("marshal fixture: %v", err)
	}
	return string(data)
}

func TestExtract_EmptySource(t *testing.T) {
	provider := &fakeProvider{responses: []string{"{}"}}
	e := NewExtractor(provider, 0)

	_, err := e.Extract(context.Background(), Request{SourceText: "   "})
	if !model.IsCode(err, model.CodeInputInvalid) {
		t.Fatalf("expected input_invalid, got %v", err)
	}
	if len(provider.requests) != 0 {
		t.Errorf("provider called %d times for empty source", len(provider.requests))
	}
}

func TestExtract_FirstAttemptSucceeds(t *testing.T) {
	provider := &fakeProvider{responses: []string{mapJSON(t, testMap())}}
	e := NewExtractor(provider, 0)

	m, err := e.Extract(context.Background(), Request{
		SourceText: "We rebuilt the product around the full underwriting workflow last year.",
		InputType:  model.InputTypeMemo,
		Angle:      model.AngleDataDriven,
	})
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if len(provider.requests) != 1 {
		t.Errorf("expected 1 completion call, got %d", len(provider.requests))
	}
	if len(m.StrategicClaims) != 3 {
		t.Errorf("expected 3 claims, got %d", len(m.StrategicClaims))
	}
	if provider.requests[0].Schema == nil {
		t.Error("extraction call carried no output schema")
	}
}

func TestExtract_RepairRetryAfterGarbage(t *testing.T) {
	provider := &fakeProvider{responses: []string{
		"I'm sorry, I can't produce that structure.",
		mapJSON(t, testMap()),
	}}
	e := NewExtractor(provider, 0)

	_, err := e.Extract(context.Background(), Request{
		SourceText: "Source text about workflow ownership and retention.",
		InputType:  model.InputTypeMemo,
		Angle:      model.AngleDataDriven,
	})
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if len(provider.requests) != 2 {
		t.Fatalf("expected 2 completion calls, got %d", len(provider.requests))
	}
	if !strings.Contains(provider.requests[1].User, "did not conform") {
		t.Error("repair retry prompt carries no reinforcement instruction")
	}
}

func TestExtract_FailsAfterSingleRetry(t *testing.T) {
	provider := &fakeProvider{responses: []string{"garbage", "still garbage"}}
	e := NewExtractor(provider, 0)

	_, err := e.Extract(context.Background(), Request{
		SourceText: "Some source text.",
		InputType:  model.InputTypeMemo,
		Angle:      model.AngleDataDriven,
	})
	if !model.IsCode(err, model.CodeExtractionParse) {
		t.Fatalf("expected extraction_parse_failure, got %v", err)
	}
	if len(provider.requests) != 2 {
		t.Errorf("expected exactly 2 completion calls, got %d", len(provider.requests))
	}
}

func TestExtract_RequestEnumsAuthoritative(t *testing.T) {
	echoed := testMap()
	echoed.CoreThesis.Angle = model.AngleStory
	echoed.CoreThesis.InputType = model.InputTypePodcast
	provider := &fakeProvider{responses: []string{mapJSON(t, echoed)}}
	e := NewExtractor(provider, 0)

	m, err := e.Extract(context.Background(), Request{
		SourceText: "Source text.",
		InputType:  model.InputTypeInterview,
		Angle:      model.AngleContrarian,
	})
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if m.CoreThesis.Angle != model.AngleContrarian {
		t.Errorf("angle %q, want the requested contrarian", m.CoreThesis.Angle)
	}
	if m.CoreThesis.InputType != model.InputTypeInterview {
		t.Errorf("input type %q, want the requested interview", m.CoreThesis.InputType)
	}
}

func TestExtract_InvalidEnumsFallBackToDefaults(t *testing.T) {
	provider := &fakeProvider{responses: []string{mapJSON(t, testMap())}}
	e := NewExtractor(provider, 0)

	m, err := e.Extract(context.Background(), Request{
		SourceText: "Source text.",
		InputType:  "webinar",
		Angle:      "snarky",
	})
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if m.CoreThesis.InputType != DefaultInputType || m.CoreThesis.Angle != DefaultAngle {
		t.Errorf("got %s/%s, want defaults %s/%s",
			m.CoreThesis.InputType, m.CoreThesis.Angle, DefaultInputType, DefaultAngle)
	}
}

func TestExtract_CoherenceRetryKeepsFirstValidMapOnFailure(t *testing.T) {
	incoherent := testMap()
	// All three claims restate the same sentence; IDs stay unique so the map
	// is structurally valid but incoherent
	dup := incoherent.StrategicClaims[0].Claim
	incoherent.StrategicClaims[1].Claim = dup
	incoherent.StrategicClaims[2].Claim = dup

	provider := &fakeProvider{responses: []string{
		mapJSON(t, incoherent),
		"retry produced garbage",
	}}
	e := NewExtractor(provider, 0)

	m, err := e.Extract(context.Background(), Request{
		SourceText: "Source text.",
		InputType:  model.InputTypeMemo,
		Angle:      model.AngleDataDriven,
	})
	if err != nil {
		t.Fatalf("expected first valid map to be kept, got %v", err)
	}
	if len(provider.requests) != 2 {
		t.Fatalf("expected 2 completion calls, got %d", len(provider.requests))
	}
	if !strings.Contains(provider.requests[1].User, "strategically distinct") {
		t.Error("coherence retry prompt carries no distinctness instruction")
	}
	if m.StrategicClaims[0].Claim != dup {
		t.Error("kept map is not the first valid one")
	}
}

func TestExtract_CoherenceRetryAdoptsBetterMap(t *testing.T) {
	incoherent := testMap()
	dup := incoherent.StrategicClaims[0].Claim
	incoherent.StrategicClaims[1].Claim = dup
	incoherent.StrategicClaims[2].Claim = dup

	provider := &fakeProvider{responses: []string{
		mapJSON(t, incoherent),
		mapJSON(t, testMap()),
	}}
	e := NewExtractor(provider, 0)

	m, err := e.Extract(context.Background(), Request{
		SourceText: "Source text.",
		InputType:  model.InputTypeMemo,
		Angle:      model.AngleDataDriven,
	})
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if m.StrategicClaims[1].Claim == dup {
		t.Error("retry map was not adopted")
	}
}
