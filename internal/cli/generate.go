package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/okrenov/samforge/internal/model"
	"github.com/okrenov/samforge/internal/pipeline"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	outJSON     string
	outMD       string
	genTimeout  time.Duration
	userAgent   string
	maxBytes    int64
	noCache     bool
	noFooter    bool
	inputType   string
	angle       string
	userID      string
	profilePath string
	sourceFile  string
	llmProvider string
	llmModel    string
	outputDir   string
)

// generateCmd represents the generate command
var generateCmd = &cobra.Command{
	Use:   "generate [source]",
	Short: "Generate a Strategic Authority Map and content pack from source material",
	Long: `Generate runs the full pipeline on one piece of source material:
- Resolve the source (pasted text, article URL, or video link with captions)
- Extract a validated Strategic Authority Map
- Synthesize the content pack (post variants, thread, newsletter, hooks)
- Score the result with deterministic scorers
- Persist the pack and write the requested artifacts

The source is a URL argument, or text read from --file or stdin.

Example:
  samforge generate https://example.com/founder-interview --input-type interview
  samforge generate --file memo.txt --input-type memo --angle contrarian
  cat notes.txt | samforge generate --input-type meeting_notes --md pack.md`,
	Args: cobra.MaximumNArgs(1),
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)

	// Input flags
	generateCmd.Flags().StringVar(&sourceFile, "file", "", "read source text from file instead of a URL argument")
	generateCmd.Flags().StringVar(&inputType, "input-type", "memo", "source kind (interview, memo, investor_update, meeting_notes, podcast, draft)")
	generateCmd.Flags().StringVar(&angle, "angle", "data_driven", "content angle (contrarian, data_driven, story, tactical, visionary, industry_insider)")
	generateCmd.Flags().StringVar(&userID, "user", "local", "account the pack belongs to")
	generateCmd.Flags().StringVar(&profilePath, "profile", "", "authority profile YAML (default: $HOME/.samforge/profile.yaml if present)")

	// Output flags
	generateCmd.Flags().StringVar(&outJSON, "json", "pack.json", "output JSON path")
	generateCmd.Flags().StringVar(&outMD, "md", "", "output Markdown path (optional)")
	generateCmd.Flags().StringVar(&outputDir, "output-dir", ".", "directory for the persistent pack store")
	generateCmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable footer in Markdown reports")

	// HTTP flags
	generateCmd.Flags().DurationVar(&genTimeout, "timeout", 3*time.Minute, "overall generation timeout")
	generateCmd.Flags().StringVar(&userAgent, "ua", "Samforge/0.1 (+https://github.com/okrenov/samforge)", "HTTP User-Agent")
	generateCmd.Flags().Int64Var(&maxBytes, "max-bytes", 2_000_000, "max response bytes to read")
	generateCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable source cache (force fresh fetch)")

	// Provider flags
	generateCmd.Flags().StringVar(&llmProvider, "provider", "openai", "completion provider (openai, anthropic, ollama)")
	generateCmd.Flags().StringVar(&llmModel, "model", "", "model name (provider default when empty)")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	source, err := readSource(args)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), genTimeout)
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

	if verbose {
		fmt.Fprintf(os.Stderr, "Input type: %s | Angle: %s\n", inputType, angle)
		fmt.Fprintf(os.Stderr, "Provider: %s\n\n", cfg.LLM.Provider)
	}

	pack, err := p.Generate(ctx, pipeline.GenerateRequest{
		UserID:    userID,
		Source:    source,
		InputType: model.InputType(inputType),
		Angle:     model.Angle(angle),
		Profile:   profile,
	})
	if err != nil {
		return fmt.Errorf("generation failed: %w", err)
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "✓ Extracted %d claims\n", len(pack.Map.StrategicClaims))
		fmt.Fprintf(os.Stderr, "✓ Thread: %d lines, hooks: %d\n", len(pack.Assets.Thread), len(pack.Assets.Hooks))
		fmt.Fprintf(os.Stderr, "✓ Messaging strength: %d/100\n\n", pack.Scores.Messaging.Total)
	}

	if err := p.RenderOutputs(pack, outJSON, outMD, verbose); err != nil {
		return fmt.Errorf("render failed: %w", err)
	}

	return nil
}

// readSource resolves the source reference from the URL argument, --file, or
// stdin, in that order
func readSource(args []string) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}
	if sourceFile != "" {
		data, err := os.ReadFile(sourceFile)
		if err != nil {
			return "", fmt.Errorf("read source file: %w", err)
		}
		return string(data), nil
	}

	stat, err := os.Stdin.Stat()
	if err == nil && (stat.Mode()&os.ModeCharDevice) == 0 {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		if strings.TrimSpace(string(data)) != "" {
			return string(data), nil
		}
	}
	return "", fmt.Errorf("no source given: pass a URL argument, --file, or pipe text on stdin")
}

// buildConfig assembles configuration from defaults, flags and environment
func buildConfig() (*model.Config, error) {
	cfg := model.DefaultConfig()
	cfg.HTTP.Timeout = int(genTimeout.Seconds())
	cfg.HTTP.UserAgent = userAgent
	cfg.HTTP.MaxBodyBytes = maxBytes
	cfg.Cache.Enabled = !noCache
	cfg.Output.Dir = outputDir
	cfg.Output.IncludeFooter = !noFooter
	cfg.LLM.Provider = llmProvider
	if llmModel != "" {
		cfg.LLM.Model = llmModel
	}

	switch llmProvider {
	case "openai":
		cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
		if cfg.LLM.APIKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY environment variable not set")
		}
	case "anthropic", "claude":
		cfg.LLM.APIKey = os.Getenv("ANTHROPIC_API_KEY")
		if cfg.LLM.APIKey == "" {
			return nil, fmt.Errorf("ANTHROPIC_API_KEY environment variable not set")
		}
	case "ollama":
		// Ollama doesn't need an API key
		if baseURL := os.Getenv("OLLAMA_BASE_URL"); baseURL != "" {
			cfg.LLM.BaseURL = baseURL
		}
	}

	return cfg, nil
}

// loadProfile reads the authority profile YAML. A missing default path is
// fine; a missing explicit path is an error.
func loadProfile(path string) (*model.Profile, error) {
	explicit := path != ""
	if !explicit {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, nil
		}
		path = home + "/.samforge/profile.yaml"
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if explicit {
			return nil, fmt.Errorf("read profile: %w", err)
		}
		return nil, nil
	}

	var profile model.Profile
	if err := yaml.Unmarshal(data, &profile); err != nil {
		return nil, fmt.Errorf("parse profile: %w", err)
	}
	return &profile, nil
}
