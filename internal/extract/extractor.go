package extract

import (
	"context"
	"fmt"
	"strings"

	"github.com/okrenov/samforge/internal/llm"
	"github.com/okrenov/samforge/internal/model"
	"github.com/okrenov/samforge/internal/validate"
)

// Extractor drives completion calls that transform raw source text into a
// validated authority map
type Extractor struct {
	provider  llm.Provider
	maxTokens int
}

// NewExtractor creates a new extractor
func NewExtractor(provider llm.Provider, maxTokens int) *Extractor {
	if maxTokens <= 0 {
		maxTokens = 4000
	}
	return &Extractor{
		provider:  provider,
		maxTokens: maxTokens,
	}
}

// Request carries the extraction inputs. InputType and Angle outside their
// closed enums fall back to safe defaults rather than failing.
type Request struct {
	SourceText string
	InputType  model.InputType
	Angle      model.Angle
	Profile    *model.Profile
}

// Extract runs the full extraction sequence: one schema-constrained
// completion, layered parse recovery, normalization to invariants, strict
// validation with exactly one repair retry, and one coherence retry when the
// map's sections near-duplicate each other.
func (e *Extractor) Extract(ctx context.Context, req Request) (*model.AuthorityMap, error) {
	if strings.TrimSpace(req.SourceText) == "" {
		return nil, model.NewError(model.CodeInputInvalid, "source text is empty", nil)
	}

	if !req.InputType.IsValid() {
		req.InputType = DefaultInputType
	}
	if !req.Angle.IsValid() {
		req.Angle = DefaultAngle
	}

	// First attempt, then exactly one repair retry with reinforcement
	m, firstErr := e.attempt(ctx, req, "")
	if firstErr != nil {
		var retryErr error
		m, retryErr = e.attempt(ctx, req, reinforceInstruction)
		if retryErr != nil {
			return nil, model.NewError(model.CodeExtractionParse,
				fmt.Sprintf("completion output unusable after repair retry: %v (first attempt: %v)", retryErr, firstErr), retryErr)
		}
	}

	// One coherence retry; keep the first valid map if the retry fails
	if inc := CheckCoherence(m); inc != nil {
		if retried, err := e.attempt(ctx, req, distinctInstruction+"\n("+inc.Reason+")"); err == nil {
			m = retried
		}
	}

	return m, nil
}

// attempt performs one call-parse-normalize-validate cycle
func (e *Extractor) attempt(ctx context.Context, req Request, extra string) (*model.AuthorityMap, error) {
	resp, err := e.provider.Complete(ctx, llm.Request{
		System:    systemPrompt,
		User:      buildUserPrompt(req.SourceText, req.InputType, req.Angle, req.Profile, extra),
		Schema:    MapSchema(),
		MaxTokens: e.maxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("completion: %w", err)
	}

	m, err := ParseMap(resp.Text)
	if err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}

	// The request's enums are authoritative over whatever the model echoed
	m.CoreThesis.InputType = req.InputType
	m.CoreThesis.Angle = req.Angle

	Normalize(m)

	if r := validate.Map(m); !r.Valid {
		return nil, fmt.Errorf("validation: %s", r.Reason)
	}

	return m, nil
}
