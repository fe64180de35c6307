package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/okrenov/samforge/internal/model"
)

// Generator runs one full generation for a single source reference. The
// caller binds account, input type and angle ahead of time so a batch shares
// them across every source.
type Generator interface {
	GenerateFromSource(ctx context.Context, source string) (*model.Pack, error)
}

// GenerateJob represents one source generation job
type GenerateJob struct {
	Source    string
	Generator Generator
}

// Execute runs the generation job
func (j *GenerateJob) Execute(ctx context.Context) Result {
	pack, err := j.Generator.GenerateFromSource(ctx, j.Source)
	return &GenerateResult{
		Source: j.Source,
		Pack:   pack,
		Error:  err,
	}
}

// GenerateResult represents the result of a generation job
type GenerateResult struct {
	Source string
	Pack   *model.Pack
	Error  error
}

// GetError returns the error from the generation result
func (r *GenerateResult) GetError() error {
	return r.Error
}

// BatchProcessor generates packs for multiple sources concurrently
type BatchProcessor struct {
	generator   Generator
	concurrency int
}

// NewBatchProcessor creates a new batch processor
func NewBatchProcessor(generator Generator, concurrency int) *BatchProcessor {
	return &BatchProcessor{
		generator:   generator,
		concurrency: concurrency,
	}
}

// ProcessSources generates packs for multiple sources concurrently
func (b *BatchProcessor) ProcessSources(ctx context.Context, sources []string) []*GenerateResult {
	if len(sources) == 0 {
		return []*GenerateResult{}
	}

	pool := NewPool(b.concurrency)
	pool.Start()

	// Submit concurrently with the drain below: the pool's channels hold far
	// fewer entries than a large source file, so queueing everything up front
	// would wedge once the buffers fill.
	go func() {
		for _, source := range sources {
			pool.Submit(&GenerateJob{
				Source:    source,
				Generator: b.generator,
			})
		}
		pool.Close()
	}()

	results := pool.Wait()

	generateResults := make([]*GenerateResult, len(results))
	for i, result := range results {
		generateResults[i] = result.(*GenerateResult)
	}

	return generateResults
}

// ProcessFile reads source references from a file and processes them
// concurrently
func (b *BatchProcessor) ProcessFile(ctx context.Context, filePath string) ([]*GenerateResult, error) {
	sources, err := ReadSourcesFromFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("read sources: %w", err)
	}

	return b.ProcessSources(ctx, sources), nil
}

// ReadSourcesFromFile reads source references from a file (one per line)
func ReadSourcesFromFile(filePath string) ([]string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var sources []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		// Skip empty lines and comments
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		// Deduplicate sources
		if !seen[line] {
			seen[line] = true
			sources = append(sources, line)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}

	return sources, nil
}
