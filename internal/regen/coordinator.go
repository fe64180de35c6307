package regen

import (
	"context"
	"fmt"
	"time"

	"github.com/okrenov/samforge/internal/extract"
	"github.com/okrenov/samforge/internal/model"
	"github.com/okrenov/samforge/internal/pipeline"
	"github.com/okrenov/samforge/internal/synth"
)

// Coordinator serializes regeneration per pack. Exactly one regeneration may
// run for a given pack at a time; a concurrent request fails fast instead of
// queuing. Regeneration always re-derives from the original source, so a
// fresh extraction precedes any synthesis, full or section-scoped.
type Coordinator struct {
	locks       *KeyLock
	fetcher     *pipeline.Fetcher
	extractor   *extract.Extractor
	synthesizer *synth.Synthesizer
	store       pipeline.PackStore
	rescorer    Rescorer
}

// Rescorer recomputes a pack's score snapshot after its map or assets change
type Rescorer interface {
	Rescore(ctx context.Context, pack *model.Pack, profile *model.Profile)
}

// NewCoordinator creates a regeneration coordinator with the given lock TTL
func NewCoordinator(lockTTL time.Duration, fetcher *pipeline.Fetcher, extractor *extract.Extractor, synthesizer *synth.Synthesizer, store pipeline.PackStore, rescorer Rescorer) *Coordinator {
	return &Coordinator{
		locks:       NewKeyLock(lockTTL),
		fetcher:     fetcher,
		extractor:   extractor,
		synthesizer: synthesizer,
		store:       store,
		rescorer:    rescorer,
	}
}

// Regenerate re-runs generation for an existing pack. An empty section means
// full regeneration; otherwise only the named asset is replaced, but the map
// itself is still re-extracted so the asset reflects current source content.
func (c *Coordinator) Regenerate(ctx context.Context, packID string, section model.AssetSection, source string, profile *model.Profile) (*model.Pack, error) {
	token, ok := c.locks.Acquire(packID)
	if !ok {
		return nil, model.NewError(model.CodeGenerationInProgress,
			"a regeneration for this pack is already running", nil)
	}
	defer c.locks.Release(packID, token)

	pack, err := c.store.Load(ctx, packID)
	if err != nil {
		return nil, model.NewError(model.CodeInputInvalid, fmt.Sprintf("pack %s not found", packID), err)
	}

	if source == "" {
		source = pack.Source
	}
	resolved, err := c.fetcher.Resolve(ctx, source)
	if err != nil {
		return nil, err
	}

	m, err := c.extractor.Extract(ctx, extract.Request{
		SourceText: resolved.Text,
		InputType:  pack.InputType,
		Angle:      pack.Angle,
		Profile:    profile,
	})
	if err != nil {
		return nil, err
	}

	if err := c.applySection(ctx, pack, m, section, profile); err != nil {
		return nil, err
	}

	pack.Map = *m
	pack.Thesis = model.ProjectCoreThesis(m)
	pack.Regenerations++
	c.rescorer.Rescore(ctx, pack, profile)

	if err := c.store.Save(ctx, pack); err != nil {
		return nil, fmt.Errorf("persist pack: %w", err)
	}
	return pack, nil
}

func (c *Coordinator) applySection(ctx context.Context, pack *model.Pack, m *model.AuthorityMap, section model.AssetSection, profile *model.Profile) error {
	switch section {
	case "":
		assets, err := c.synthesizer.Synthesize(ctx, m, profile)
		if err != nil {
			return err
		}
		pack.Assets = *assets
		return nil
	case model.SectionVariantA:
		text, err := c.synthesizer.Variant(ctx, m, profile, 0)
		if err != nil {
			return err
		}
		pack.Assets.VariantA = text
	case model.SectionVariantB:
		text, err := c.synthesizer.Variant(ctx, m, profile, 1)
		if err != nil {
			return err
		}
		pack.Assets.VariantB = text
	case model.SectionThread:
		lines, err := c.synthesizer.Thread(ctx, m, profile)
		if err != nil {
			return err
		}
		pack.Assets.Thread = lines
	case model.SectionHooks:
		// Pure projection, no model call
		pack.Assets.Hooks = synth.DeriveHooks(m).Hooks
	default:
		return model.NewError(model.CodeInputInvalid, fmt.Sprintf("unknown section %q", section), nil)
	}

	// The map was re-extracted either way; the deterministic members track it
	pack.Assets.VariantC = synth.TemplateVariant(m)
	if section != model.SectionHooks {
		pack.Assets.Hooks = synth.DeriveHooks(m).Hooks
	}
	return nil
}
