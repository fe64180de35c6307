package synth

import (
	"fmt"
	"strings"

	"github.com/okrenov/samforge/internal/model"
)

// postSystemPrompt fixes the model's role for LinkedIn post generation
const postSystemPrompt = `You are a ghostwriter for a founder building authority on LinkedIn. You write posts that interpret and elaborate on strategic material: specific, conversational, no hashtag walls, no engagement bait. You never copy source sentences verbatim; you say it in the author's voice.`

// threadSystemPrompt fixes the model's role for thread generation
const threadSystemPrompt = `You are a ghostwriter who turns strategic material into short threads. Each line stands alone, is under 280 characters, and advances the argument. You interpret the material rather than restating it.`

// newsletterSystemPrompt fixes the model's role for newsletter generation
const newsletterSystemPrompt = `You are a ghostwriter for a founder's newsletter. You turn a structured outline into a readable long-form section: plain language, concrete examples, one idea per paragraph. You elaborate on the material in fresh language rather than repeating it.`

// buildPostPrompt assembles a LinkedIn post prompt around one strategic claim
func buildPostPrompt(m *model.AuthorityMap, claim *model.StrategicClaim, profile *model.Profile, instruction string) string {
	var b strings.Builder

	b.WriteString("Write one LinkedIn post that develops the strategic claim below for the stated audience.\n\n")
	fmt.Fprintf(&b, "Audience: %s\n", m.CoreThesis.Audience)
	fmt.Fprintf(&b, "Overall thesis (context, do not restate): %s\n\n", m.CoreThesis.Statement)
	fmt.Fprintf(&b, "Claim: %s\n", claim.Claim)
	fmt.Fprintf(&b, "Why it matters: %s\n", claim.WhyItMatters)
	fmt.Fprintf(&b, "Differentiation: %s\n", claim.Differentiation)
	if len(claim.Evidence) > 0 {
		fmt.Fprintf(&b, "Strongest evidence: %s\n", claim.Evidence[0].Point)
	}
	writeToneBlock(&b, profile)
	b.WriteString("\nStructure: open with a hook, develop the claim with the evidence, close with a pointed takeaway. 150-250 words. Plain text only.")
	writeInstruction(&b, instruction)

	return b.String()
}

// buildThreadPrompt assembles a thread prompt from the full claim list with
// each claim's top evidence point
func buildThreadPrompt(m *model.AuthorityMap, profile *model.Profile, instruction string) string {
	var b strings.Builder

	b.WriteString("Write a thread of 5-8 short lines from the strategic material below.\n\n")
	fmt.Fprintf(&b, "Thesis: %s\n", m.CoreThesis.Statement)
	fmt.Fprintf(&b, "Audience: %s\n\n", m.CoreThesis.Audience)
	for _, claim := range m.StrategicClaims {
		fmt.Fprintf(&b, "%s: %s", claim.ID, claim.Claim)
		if len(claim.Evidence) > 0 {
			fmt.Fprintf(&b, " (evidence: %s)", claim.Evidence[0].Point)
		}
		b.WriteString("\n")
	}
	writeToneBlock(&b, profile)
	fmt.Fprintf(&b, "\nFirst line is the hook, numbered \"1/\". Last line is the closing takeaway: %s\nOne line per thread entry, no blank lines between entries.", m.NarrativeArc.Takeaway)
	writeInstruction(&b, instruction)

	return b.String()
}

// buildNewsletterPrompt assembles a newsletter prompt from a structured
// intro/sections/takeaway outline
func buildNewsletterPrompt(m *model.AuthorityMap, profile *model.Profile, instruction string) string {
	var b strings.Builder

	b.WriteString("Write a newsletter section from the outline below.\n\n")
	b.WriteString("OUTLINE\n")
	fmt.Fprintf(&b, "Intro (set up the tension): %s / %s\n", m.NarrativeArc.Setup, m.NarrativeArc.Tension)
	for i, claim := range m.StrategicClaims {
		fmt.Fprintf(&b, "Section %d: %s", i+1, claim.Claim)
		if len(claim.Evidence) > 0 {
			fmt.Fprintf(&b, " (ground it in: %s)", claim.Evidence[0].Point)
		}
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "Takeaway: %s\n", m.NarrativeArc.Takeaway)
	fmt.Fprintf(&b, "\nAudience: %s\n", m.CoreThesis.Audience)
	writeToneBlock(&b, profile)
	b.WriteString("\n400-600 words. Markdown with short section headers.")
	writeInstruction(&b, instruction)

	return b.String()
}

func writeToneBlock(b *strings.Builder, profile *model.Profile) {
	if profile.IsEmpty() {
		return
	}
	if profile.Tone != "" {
		fmt.Fprintf(b, "Voice and tone: %s\n", profile.Tone)
	}
	if profile.Positioning != "" {
		fmt.Fprintf(b, "Author positioning: %s\n", profile.Positioning)
	}
}

func writeInstruction(b *strings.Builder, instruction string) {
	if instruction != "" {
		b.WriteString("\n\n")
		b.WriteString(instruction)
	}
}
