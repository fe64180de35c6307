package synth

import (
	"context"
	"fmt"
	"strings"

	"github.com/okrenov/samforge/internal/llm"
	"github.com/okrenov/samforge/internal/model"
	"github.com/okrenov/samforge/internal/overlap"
)

// Synthesizer derives the per-platform asset set from a validated map
type Synthesizer struct {
	provider  llm.Provider
	maxTokens int
}

// NewSynthesizer creates a new synthesizer
func NewSynthesizer(provider llm.Provider, maxTokens int) *Synthesizer {
	if maxTokens <= 0 {
		maxTokens = 1500
	}
	return &Synthesizer{
		provider:  provider,
		maxTokens: maxTokens,
	}
}

// Synthesize produces the full asset set: two AI-authored LinkedIn variants
// built from different claims, the deterministic template variant, a thread,
// and a newsletter. Every AI-authored call goes through the overlap guard.
func (s *Synthesizer) Synthesize(ctx context.Context, m *model.AuthorityMap, profile *model.Profile) (*model.AssetSet, error) {
	variantA, err := s.Variant(ctx, m, profile, 0)
	if err != nil {
		return nil, err
	}

	variantB, err := s.Variant(ctx, m, profile, 1)
	if err != nil {
		return nil, err
	}

	thread, err := s.Thread(ctx, m, profile)
	if err != nil {
		return nil, err
	}

	newsletter, err := s.Newsletter(ctx, m, profile)
	if err != nil {
		return nil, err
	}

	return &model.AssetSet{
		VariantA:   variantA,
		VariantB:   variantB,
		VariantC:   TemplateVariant(m),
		Thread:     thread,
		Newsletter: newsletter,
		Hooks:      DeriveHooks(m).Hooks,
	}, nil
}

// Variant generates one AI-authored LinkedIn post. Variant 0 develops claim 1
// and variant 1 develops claim 2, so the two posts do not converge.
func (s *Synthesizer) Variant(ctx context.Context, m *model.AuthorityMap, profile *model.Profile, idx int) (string, error) {
	if idx != 0 && idx != 1 {
		return "", model.Errorf(model.CodeInputInvalid, "variant index %d out of range", idx)
	}
	claim := m.Claim(idx)
	if claim == nil {
		return "", model.Errorf(model.CodeInputInvalid, "map has no claim at index %d", idx)
	}

	name := "variant_a"
	if idx == 1 {
		name = "variant_b"
	}

	text, err := s.guarded(ctx, m, name, postSystemPrompt, func(instruction string) string {
		return buildPostPrompt(m, claim, profile, instruction)
	})
	if err != nil {
		return "", err
	}
	return text, nil
}

// Thread generates the thread and splits it into lines. An empty thread is
// not a degraded thread, it is an error.
func (s *Synthesizer) Thread(ctx context.Context, m *model.AuthorityMap, profile *model.Profile) ([]string, error) {
	text, err := s.guarded(ctx, m, "thread", threadSystemPrompt, func(instruction string) string {
		return buildThreadPrompt(m, profile, instruction)
	})
	if err != nil {
		return nil, err
	}

	lines := SplitThread(text)
	if len(lines) == 0 {
		return nil, model.NewError(model.CodeAssetGeneration, "thread generation produced no usable lines", nil)
	}
	return lines, nil
}

// Newsletter generates the newsletter body from the structured outline
func (s *Synthesizer) Newsletter(ctx context.Context, m *model.AuthorityMap, profile *model.Profile) (string, error) {
	return s.guarded(ctx, m, "newsletter", newsletterSystemPrompt, func(instruction string) string {
		return buildNewsletterPrompt(m, profile, instruction)
	})
}

// guarded wraps one AI-authored asset call in the overlap guard. Each
// underlying completion independently retries once at half the output budget
// on transport failure.
func (s *Synthesizer) guarded(ctx context.Context, m *model.AuthorityMap, asset, system string, prompt func(instruction string) string) (string, error) {
	generate := func(ctx context.Context, instruction string) (string, error) {
		return s.complete(ctx, system, prompt(instruction))
	}

	text, err := overlap.Guard(ctx, generate, m.SourcePhrases())
	if err != nil {
		return "", model.NewError(model.CodeAssetGeneration, fmt.Sprintf("%s generation failed: %v", asset, err), err)
	}
	if strings.TrimSpace(text) == "" {
		return "", model.NewError(model.CodeAssetGeneration, fmt.Sprintf("%s generation returned empty output", asset), nil)
	}
	return text, nil
}

// complete issues one completion call, retrying once at reduced output budget
// on transport failure
func (s *Synthesizer) complete(ctx context.Context, system, user string) (string, error) {
	resp, err := s.provider.Complete(ctx, llm.Request{
		System:    system,
		User:      user,
		MaxTokens: s.maxTokens,
	})
	if err == nil {
		return resp.Text, nil
	}
	if !llm.IsTransport(err) {
		return "", err
	}

	resp, retryErr := s.provider.Complete(ctx, llm.Request{
		System:    system,
		User:      user,
		MaxTokens: s.maxTokens / 2,
	})
	if retryErr != nil {
		return "", fmt.Errorf("retry at reduced budget: %w", retryErr)
	}
	return resp.Text, nil
}

// SplitThread splits completion output into non-empty thread lines
func SplitThread(text string) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
