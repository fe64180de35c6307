package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/okrenov/samforge/internal/cache"
	"github.com/okrenov/samforge/internal/extract"
	"github.com/okrenov/samforge/internal/llm"
	"github.com/okrenov/samforge/internal/model"
	"github.com/okrenov/samforge/internal/synth"
	"github.com/okrenov/samforge/internal/worker"
)

// NewFromConfig wires a complete pipeline from configuration: completion
// provider, source fetcher with cache and per-host rate limiting, extractor,
// synthesizer, file-backed pack store and renderer.
func NewFromConfig(cfg *model.Config) (*Pipeline, error) {
	provider, err := llm.NewProvider(llm.ConfigFromModel(cfg.LLM))
	if err != nil {
		return nil, fmt.Errorf("initialize provider: %w", err)
	}

	var sourceCache cache.Cache
	if cfg.Cache.Enabled {
		dir := cfg.Cache.Dir
		if dir == "" {
			if home, err := os.UserHomeDir(); err == nil {
				dir = filepath.Join(home, ".samforge", "cache")
			}
		}
		memTTL := time.Duration(cfg.Cache.MemoryTTL) * time.Minute
		diskTTL := time.Duration(cfg.Cache.DiskTTL) * time.Minute
		if dir != "" {
			sourceCache = cache.NewLayeredCache(memTTL, dir, diskTTL)
		} else {
			sourceCache = cache.NewMemoryCache(memTTL, 10*time.Minute)
		}
	}

	limiter := worker.NewLimiter(cfg.Concurrency.RequestsPerSecond, cfg.Concurrency.Burst)
	fetcher := NewFetcher(
		time.Duration(cfg.HTTP.Timeout)*time.Second,
		cfg.HTTP.UserAgent,
		cfg.HTTP.MaxBodyBytes,
		limiter,
		sourceCache,
	)

	store := NewFileStore(filepath.Join(cfg.Output.Dir, "packs"))

	return NewPipeline(
		fetcher,
		extract.NewExtractor(provider, cfg.LLM.MaxTokens),
		synth.NewSynthesizer(provider, cfg.LLM.MaxTokens),
		store,
		UnlimitedGate{},
		NewRenderer(cfg.Output.IncludeFooter),
	), nil
}

// Store exposes the pack store so regeneration can share persistence
func (p *Pipeline) Store() PackStore { return p.store }

// Fetcher exposes source resolution for coordinators built on this pipeline
func (p *Pipeline) Fetcher() *Fetcher { return p.fetcher }

// Extractor exposes the map extractor
func (p *Pipeline) Extractor() *extract.Extractor { return p.extractor }

// Synthesizer exposes the asset synthesizer
func (p *Pipeline) Synthesizer() *synth.Synthesizer { return p.synthesizer }

// BoundGenerator binds fixed request fields to the pipeline so batch workers
// can run generations from a bare source reference
type BoundGenerator struct {
	Pipeline  *Pipeline
	UserID    string
	InputType model.InputType
	Angle     model.Angle
	Profile   *model.Profile
}

// GenerateFromSource runs one generation for the bound account settings
func (g *BoundGenerator) GenerateFromSource(ctx context.Context, source string) (*model.Pack, error) {
	return g.Pipeline.Generate(ctx, GenerateRequest{
		UserID:    g.UserID,
		Source:    source,
		InputType: g.InputType,
		Angle:     g.Angle,
		Profile:   g.Profile,
	})
}
