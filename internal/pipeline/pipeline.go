package pipeline

import (
	"context"
	"fmt"

	"github.com/okrenov/samforge/internal/extract"
	"github.com/okrenov/samforge/internal/model"
	"github.com/okrenov/samforge/internal/score"
	"github.com/okrenov/samforge/internal/synth"
)

// HistoryStore optionally exposes a user's recent maps for consistency
// scoring. Stores that cannot answer the query simply don't implement it.
type HistoryStore interface {
	Recent(ctx context.Context, userID string, limit int) ([]model.AuthorityMap, error)
}

// Pipeline wires source resolution, extraction, synthesis, scoring and
// persistence into a single generation run
type Pipeline struct {
	fetcher     *Fetcher
	extractor   *extract.Extractor
	synthesizer *synth.Synthesizer
	store       PackStore
	gate        UsageGate
	renderer    *Renderer
}

// NewPipeline creates a pipeline. A nil gate means no usage limits; a nil
// renderer gets the default one with the footer enabled.
func NewPipeline(fetcher *Fetcher, extractor *extract.Extractor, synthesizer *synth.Synthesizer, store PackStore, gate UsageGate, renderer *Renderer) *Pipeline {
	if gate == nil {
		gate = UnlimitedGate{}
	}
	if renderer == nil {
		renderer = NewRenderer(true)
	}
	return &Pipeline{
		fetcher:     fetcher,
		extractor:   extractor,
		synthesizer: synthesizer,
		store:       store,
		gate:        gate,
		renderer:    renderer,
	}
}

// GenerateRequest carries one generation run's inputs
type GenerateRequest struct {
	UserID    string
	Source    string // Pasted text or an http(s) reference
	InputType model.InputType
	Angle     model.Angle
	Profile   *model.Profile
}

// Generate runs the full pipeline: resolve the source, extract the authority
// map, synthesize assets from the validated map, score, persist, then count
// the run against the user's quota. Each stage consumes only the previous
// stage's validated output.
func (p *Pipeline) Generate(ctx context.Context, req GenerateRequest) (*model.Pack, error) {
	if !p.gate.Allow(req.UserID) {
		return nil, model.NewError(model.CodeInputInvalid, "generation limit reached for this account", nil)
	}

	resolved, err := p.fetcher.Resolve(ctx, req.Source)
	if err != nil {
		return nil, err
	}

	m, err := p.extractor.Extract(ctx, extract.Request{
		SourceText: resolved.Text,
		InputType:  req.InputType,
		Angle:      req.Angle,
		Profile:    req.Profile,
	})
	if err != nil {
		return nil, err
	}

	assets, err := p.synthesizer.Synthesize(ctx, m, req.Profile)
	if err != nil {
		return nil, err
	}

	pack := model.NewPack(req.UserID, resolved.Ref, m.CoreThesis.InputType, m.CoreThesis.Angle)
	pack.Map = *m
	pack.Thesis = model.ProjectCoreThesis(m)
	pack.Assets = *assets

	p.Rescore(ctx, pack, req.Profile)

	if err := p.store.Save(ctx, pack); err != nil {
		return nil, fmt.Errorf("persist pack: %w", err)
	}
	p.gate.Increment(req.UserID)

	return pack, nil
}

// Rescore recomputes the full score snapshot from the pack's current map and
// assets. Consistency is skipped when neither a profile nor history exists.
func (p *Pipeline) Rescore(ctx context.Context, pack *model.Pack, profile *model.Profile) {
	pack.Scores.Messaging = score.Messaging(&pack.Map)
	pack.Scores.Quality = score.Quality(pack, profile)

	recent := p.recentMaps(ctx, pack.UserID)
	if !profile.IsEmpty() || len(recent) > 0 {
		c := score.Consistency(&pack.Map, profile, recent)
		pack.Scores.Consistency = &c
	}
	pack.Touch()
}

func (p *Pipeline) recentMaps(ctx context.Context, userID string) []model.AuthorityMap {
	hs, ok := p.store.(HistoryStore)
	if !ok {
		return nil
	}
	maps, err := hs.Recent(ctx, userID, score.MaxRecentSample)
	if err != nil {
		return nil
	}
	return maps
}
