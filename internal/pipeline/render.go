package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/okrenov/samforge/internal/model"
)

// Renderer writes pack artifacts as JSON and Markdown
type Renderer struct {
	includeFooter bool
}

// NewRenderer creates a renderer
func NewRenderer(includeFooter bool) *Renderer {
	return &Renderer{includeFooter: includeFooter}
}

// RenderJSON writes the full pack document to path
func (r *Renderer) RenderJSON(pack *model.Pack, path string) error {
	data, err := json.MarshalIndent(pack, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal pack: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write JSON: %w", err)
	}
	return nil
}

// RenderMarkdown writes a human-readable pack report to path
func (r *Renderer) RenderMarkdown(pack *model.Pack, path string) error {
	if err := os.WriteFile(path, []byte(r.Markdown(pack)), 0644); err != nil {
		return fmt.Errorf("write markdown: %w", err)
	}
	return nil
}

// Markdown renders the pack report document
func (r *Renderer) Markdown(pack *model.Pack) string {
	var b strings.Builder
	m := &pack.Map

	fmt.Fprintf(&b, "# Strategic Authority Map\n\n")
	fmt.Fprintf(&b, "- **Source:** %s\n", pack.Source)
	fmt.Fprintf(&b, "- **Input type:** %s | **Angle:** %s\n", pack.InputType, pack.Angle)
	fmt.Fprintf(&b, "- **Generated:** %s\n\n", pack.CreatedAt.Format("2006-01-02 15:04 UTC"))

	fmt.Fprintf(&b, "## Core Thesis\n\n%s\n\n", m.CoreThesis.Statement)
	fmt.Fprintf(&b, "**Audience:** %s\n\n", m.CoreThesis.Audience)

	fmt.Fprintf(&b, "## Strategic Claims\n\n")
	for _, claim := range m.StrategicClaims {
		fmt.Fprintf(&b, "### %s: %s\n\n", claim.ID, claim.Claim)
		fmt.Fprintf(&b, "- **Why it matters:** %s\n", claim.WhyItMatters)
		fmt.Fprintf(&b, "- **Differentiation:** %s\n", claim.Differentiation)
		fmt.Fprintf(&b, "- **Counter-objection:** %s\n", claim.CounterObjection)
		for _, ev := range claim.Evidence {
			fmt.Fprintf(&b, "- Evidence (%s): %s\n", ev.Type, ev.Point)
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "## Narrative Arc\n\n")
	fmt.Fprintf(&b, "1. **Setup:** %s\n", m.NarrativeArc.Setup)
	fmt.Fprintf(&b, "2. **Tension:** %s\n", m.NarrativeArc.Tension)
	fmt.Fprintf(&b, "3. **Turning point:** %s\n", m.NarrativeArc.TurningPoint)
	fmt.Fprintf(&b, "4. **Resolution:** %s\n", m.NarrativeArc.Resolution)
	fmt.Fprintf(&b, "5. **Takeaway:** %s\n\n", m.NarrativeArc.Takeaway)

	fmt.Fprintf(&b, "## Objections\n\n")
	for _, o := range m.Objections {
		fmt.Fprintf(&b, "- %s\n", o)
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "## Hook Matrix\n\n")
	for _, set := range m.HookMatrix.Categories {
		fmt.Fprintf(&b, "**%s**\n\n", set.Category)
		for _, hook := range set.Hooks {
			fmt.Fprintf(&b, "- %s\n", hook)
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "## Assets\n\n")
	fmt.Fprintf(&b, "### LinkedIn Variant A\n\n%s\n\n", pack.Assets.VariantA)
	fmt.Fprintf(&b, "### LinkedIn Variant B\n\n%s\n\n", pack.Assets.VariantB)
	fmt.Fprintf(&b, "### LinkedIn Variant C\n\n%s\n\n", pack.Assets.VariantC)
	fmt.Fprintf(&b, "### Thread\n\n")
	for _, line := range pack.Assets.Thread {
		fmt.Fprintf(&b, "%s\n\n", line)
	}
	fmt.Fprintf(&b, "### Newsletter Section\n\n%s\n\n", pack.Assets.Newsletter)

	r.writeScores(&b, pack)

	if r.includeFooter {
		fmt.Fprintf(&b, "---\n\n*Generated by samforge. Scores are deterministic; rerunning the scorers on the same pack yields the same numbers.*\n")
	}

	return b.String()
}

func (r *Renderer) writeScores(b *strings.Builder, pack *model.Pack) {
	s := &pack.Scores

	fmt.Fprintf(b, "## Scores\n\n")
	fmt.Fprintf(b, "### Messaging Strength: %d/100\n\n", s.Messaging.Total)
	fmt.Fprintf(b, "| Component | Score |\n|---|---|\n")
	fmt.Fprintf(b, "| Hook strength | %d/20 |\n", s.Messaging.HookStrength)
	fmt.Fprintf(b, "| Claim robustness | %d/20 |\n", s.Messaging.ClaimRobustness)
	fmt.Fprintf(b, "| Evidence depth | %d/20 |\n", s.Messaging.EvidenceDepth)
	fmt.Fprintf(b, "| Differentiation clarity | %d/20 |\n", s.Messaging.DifferentiationClarity)
	fmt.Fprintf(b, "| Objection coverage | %d/20 |\n\n", s.Messaging.ObjectionCoverage)

	fmt.Fprintf(b, "### Quality Breakdown: %d/100\n\n", s.Quality.Total)
	fmt.Fprintf(b, "| Section | Score |\n|---|---|\n")
	fmt.Fprintf(b, "| Core thesis | %d/20 |\n", s.Quality.CoreThesis)
	fmt.Fprintf(b, "| Hooks | %d/25 |\n", s.Quality.Hooks)
	fmt.Fprintf(b, "| Posts | %d/25 |\n", s.Quality.Posts)
	fmt.Fprintf(b, "| Insights | %d/25 |\n", s.Quality.Insights)
	fmt.Fprintf(b, "| Summary | %d/5 |\n", s.Quality.Summary)
	if s.Quality.ConsistencyBonus > 0 {
		fmt.Fprintf(b, "| Consistency bonus | +%d |\n", s.Quality.ConsistencyBonus)
	}
	b.WriteString("\n")

	if s.Consistency != nil {
		fmt.Fprintf(b, "### Authority Consistency: %d/100\n\n", s.Consistency.Total)
		for _, w := range s.Consistency.DriftWarnings {
			fmt.Fprintf(b, "- ⚠ %s\n", w)
		}
		b.WriteString("\n")
	}
}

// RenderSummary prints a short pack summary to stdout
func (r *Renderer) RenderSummary(pack *model.Pack) {
	fmt.Printf("\n%s\n", strings.Repeat("=", 60))
	fmt.Printf("Pack %s\n", pack.ID)
	fmt.Printf("%s\n", strings.Repeat("=", 60))
	fmt.Printf("Thesis: %s\n", pack.Map.CoreThesis.Statement)
	fmt.Printf("Claims: %d | Thread lines: %d | Hooks: %d\n",
		len(pack.Map.StrategicClaims), len(pack.Assets.Thread), len(pack.Assets.Hooks))
	fmt.Printf("Messaging: %d/100 | Quality: %d/100", pack.Scores.Messaging.Total, pack.Scores.Quality.Total)
	if pack.Scores.Consistency != nil {
		fmt.Printf(" | Consistency: %d/100", pack.Scores.Consistency.Total)
	}
	fmt.Println()
	for _, w := range driftWarningsOf(pack) {
		fmt.Printf("  drift: %s\n", w)
	}
}

func driftWarningsOf(pack *model.Pack) []string {
	if pack.Scores.Consistency == nil {
		return nil
	}
	return pack.Scores.Consistency.DriftWarnings
}

// RenderOutputs writes the requested artifact files and prints the summary
func (p *Pipeline) RenderOutputs(pack *model.Pack, jsonPath, mdPath string, verbose bool) error {
	r := p.renderer
	if jsonPath != "" {
		if err := r.RenderJSON(pack, jsonPath); err != nil {
			return fmt.Errorf("render JSON: %w", err)
		}
		if verbose {
			fmt.Printf("✓ Wrote JSON: %s\n", jsonPath)
		}
	}
	if mdPath != "" {
		if err := r.RenderMarkdown(pack, mdPath); err != nil {
			return fmt.Errorf("render markdown: %w", err)
		}
		if verbose {
			fmt.Printf("✓ Wrote Markdown: %s\n", mdPath)
		}
	}
	r.RenderSummary(pack)
	return nil
}
