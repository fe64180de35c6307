package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/okrenov/samforge/internal/model"
	"github.com/okrenov/samforge/internal/pipeline"
	"github.com/okrenov/samforge/internal/worker"
	"github.com/spf13/cobra"
)

var (
	concurrency  int
	batchTimeout time.Duration
	batchOutDir  string
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <file>",
	Short: "Generate packs for multiple sources from a file in parallel",
	Long: `Batch processes multiple sources concurrently:
- Read source references from input file (one per line, # comments allowed)
- Run full generations in parallel with a configurable worker count
- Write JSON and Markdown artifacts per pack

All sources in a batch share the same input type, angle and profile.

Example:
  samforge batch sources.txt --input-type interview
  samforge batch sources.txt --concurrency 5 --output-dir ./packs`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	// Concurrency flags
	batchCmd.Flags().IntVar(&concurrency, "concurrency", 3, "number of concurrent workers")
	batchCmd.Flags().StringVar(&batchOutDir, "output-dir", "./samforge-packs", "output directory for pack artifacts")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 20*time.Minute, "total timeout for batch processing")

	// Shared generation flags
	batchCmd.Flags().StringVar(&inputType, "input-type", "memo", "source kind applied to every source")
	batchCmd.Flags().StringVar(&angle, "angle", "data_driven", "content angle applied to every source")
	batchCmd.Flags().StringVar(&userID, "user", "local", "account the packs belong to")
	batchCmd.Flags().StringVar(&profilePath, "profile", "", "authority profile YAML")
	batchCmd.Flags().StringVar(&userAgent, "ua", "Samforge/0.1 (+https://github.com/okrenov/samforge)", "HTTP User-Agent")
	batchCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable source cache (force fresh fetch)")
	batchCmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable footer in Markdown reports")

	// Provider flags
	batchCmd.Flags().StringVar(&llmProvider, "provider", "openai", "completion provider (openai, anthropic, ollama)")
	batchCmd.Flags().StringVar(&llmModel, "model", "", "model name (provider default when empty)")
}

func runBatch(cmd *cobra.Command, args []string) error {
	file := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  Samforge Batch Processing\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Input file:   %s\n", file)
	fmt.Fprintf(os.Stderr, "  Workers:      %d\n", concurrency)
	fmt.Fprintf(os.Stderr, "  Output dir:   %s\n", batchOutDir)
	fmt.Fprintf(os.Stderr, "  Timeout:      %v\n", batchTimeout)
	fmt.Fprintf(os.Stderr, "\n")

	genTimeout = batchTimeout
	outputDir = batchOutDir
	cfg, err := buildConfig()
	if err != nil {
		return err
	}
	cfg.Concurrency.BatchWorkers = concurrency

	profile, err := loadProfile(profilePath)
	if err != nil {
		return err
	}

	// Create output directory
	if err := os.MkdirAll(batchOutDir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	p, err := pipeline.NewFromConfig(cfg)
	if err != nil {
		return err
	}

	generator := &pipeline.BoundGenerator{
		Pipeline:  p,
		UserID:    userID,
		InputType: model.InputType(inputType),
		Angle:     model.Angle(angle),
		Profile:   profile,
	}
	processor := worker.NewBatchProcessor(generator, concurrency)

	fmt.Fprintf(os.Stderr, "⚙️  Reading sources from file...\n")
	results, err := processor.ProcessFile(ctx, file)
	if err != nil {
		return fmt.Errorf("process file: %w", err)
	}

	fmt.Fprintf(os.Stderr, "✓ Loaded %d sources\n", len(results))
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "⚙️  Generating with %d workers...\n", concurrency)
	fmt.Fprintf(os.Stderr, "\n")

	successCount := 0
	failureCount := 0
	renderer := pipeline.NewRenderer(cfg.Output.IncludeFooter)

	for _, result := range results {
		if result.Error != nil {
			failureCount++
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", result.Source, result.Error)
			continue
		}

		successCount++

		jsonPath := filepath.Join(batchOutDir, result.Pack.ID+".json")
		mdPath := filepath.Join(batchOutDir, result.Pack.ID+".md")

		if err := renderer.RenderJSON(result.Pack, jsonPath); err != nil {
			fmt.Fprintf(os.Stderr, "✗ %s: failed to write JSON: %v\n", result.Source, err)
			continue
		}
		if err := renderer.RenderMarkdown(result.Pack, mdPath); err != nil {
			fmt.Fprintf(os.Stderr, "✗ %s: failed to write Markdown: %v\n", result.Source, err)
			continue
		}

		fmt.Fprintf(os.Stderr, "✓ %s (messaging: %d/100)\n", result.Source, result.Pack.Scores.Messaging.Total)
	}

	// Summary
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  Batch Complete\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Total:     %d sources\n", len(results))
	fmt.Fprintf(os.Stderr, "  Success:   %d\n", successCount)
	fmt.Fprintf(os.Stderr, "  Failures:  %d\n", failureCount)
	fmt.Fprintf(os.Stderr, "  Output:    %s\n", batchOutDir)
	fmt.Fprintf(os.Stderr, "\n")

	return nil
}
