package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/okrenov/samforge/internal/model"
	"github.com/okrenov/samforge/internal/pipeline"
	"github.com/okrenov/samforge/internal/regen"
	"github.com/spf13/cobra"
)

var (
	regenSection string
	regenSource  string
	regenTimeout time.Duration
)

// regenerateCmd represents the regenerate command
var regenerateCmd = &cobra.Command{
	Use:   "regenerate <pack-id>",
	Short: "Regenerate a stored pack, fully or one section at a time",
	Long: `Regenerate re-derives a stored pack from its source. The map is always
re-extracted; with --section only the named asset is replaced.

Sections: variant_a, variant_b, thread, hooks. Map content (claims,
thesis, evidence) cannot be patched directly - it is always re-derived.

Only one regeneration per pack runs at a time; a concurrent request
fails immediately rather than queuing.

Example:
  samforge regenerate 2f1c... --section thread
  samforge regenerate 2f1c... --source https://example.com/updated-post`,
	Args: cobra.ExactArgs(1),
	RunE: runRegenerate,
}

func init() {
	rootCmd.AddCommand(regenerateCmd)

	regenerateCmd.Flags().StringVar(&regenSection, "section", "", "asset section to regenerate (empty for the full pack)")
	regenerateCmd.Flags().StringVar(&regenSource, "source", "", "override the stored source reference")
	regenerateCmd.Flags().DurationVar(&regenTimeout, "timeout", 3*time.Minute, "overall regeneration timeout")
	regenerateCmd.Flags().StringVar(&profilePath, "profile", "", "authority profile YAML (default: $HOME/.samforge/profile.yaml if present)")
	regenerateCmd.Flags().StringVar(&outputDir, "output-dir", ".", "directory for the persistent pack store")
	regenerateCmd.Flags().StringVar(&llmProvider, "provider", "openai", "completion provider (openai, anthropic, ollama)")
	regenerateCmd.Flags().StringVar(&llmModel, "model", "", "model name (provider default when empty)")
}

func runRegenerate(cmd *cobra.Command, args []string) error {
	packID := args[0]

	var section model.AssetSection
	if regenSection != "" {
		section = model.AssetSection(regenSection)
		if !section.IsValid() {
			return fmt.Errorf("unknown section %q (valid: variant_a, variant_b, thread, hooks)", regenSection)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), regenTimeout)
	defer cancel()

	cfg, err := buildConfig()
	if err != nil {
		return err
	}

	profile, err := loadProfile(profilePath)
	if err != nil {
		return err
	}

	p, err := pipeline.NewFromConfig(cfg)
	if err != nil {
		return err
	}

	coordinator := regen.NewCoordinator(
		time.Duration(cfg.Regen.LockTTL)*time.Second,
		p.Fetcher(), p.Extractor(), p.Synthesizer(), p.Store(), p,
	)

	pack, err := coordinator.Regenerate(ctx, packID, section, regenSource, profile)
	if err != nil {
		return fmt.Errorf("regeneration failed: %w", err)
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "✓ Regenerated pack %s (run %d)\n", pack.ID, pack.Regenerations)
	}
	fmt.Printf("Pack %s regenerated", pack.ID)
	if section != "" {
		fmt.Printf(" (section %s)", section)
	}
	fmt.Printf(" | Messaging: %d/100 | Quality: %d/100\n",
		pack.Scores.Messaging.Total, pack.Scores.Quality.Total)

	return nil
}
