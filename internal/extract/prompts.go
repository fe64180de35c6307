package extract

import (
	"fmt"
	"strings"

	"github.com/okrenov/samforge/internal/model"
)

// systemPrompt fixes the model's role for extraction calls
const systemPrompt = `You are a strategic messaging analyst. You read long-form source material (transcripts, memos, updates) and distill it into a Strategic Authority Map: a precise, defensible structure of one core thesis, exactly three strategic claims with evidence, a five-beat narrative arc, a matrix of short hooks across five fixed rhetorical categories, likely objections, and reusable proof assets. You extract and sharpen what the source actually says. You never fabricate metrics, quotes or events that are not in the source.`

// reinforceInstruction is appended on the single repair retry after a parse
// or validation failure
const reinforceInstruction = "IMPORTANT: Your previous response did not conform to the required structure. Respond with ONLY a JSON object matching the schema exactly: exactly 3 strategicClaims with ids C1, C2, C3, each with 2-4 evidence points; exactly 5 hookMatrix categories (Contrarian, Data, Story, Tactical, Vision) with 3-5 hooks each; 3-5 objections; every mandatory string non-empty."

// distinctInstruction is appended on the single coherence retry when sections
// of the map are near-duplicates of each other
const distinctInstruction = "IMPORTANT: In your previous response the thesis and the strategic claims were near-duplicates of each other. Make every section strategically distinct: the thesis states the position, each claim defends a DIFFERENT facet of it, and no two sections restate the same sentence."

// inputTypeBias tells the model what to listen for in each kind of source
var inputTypeBias = map[model.InputType]string{
	model.InputTypeInterview:      "This is an interview transcript. Favor the speaker's spontaneous convictions, repeated themes, and concrete war stories over interviewer framing.",
	model.InputTypeMemo:           "This is an internal strategy memo. Favor deliberate positions, stated trade-offs, and the reasoning behind decisions.",
	model.InputTypeInvestorUpdate: "This is an investor update. Favor metrics, growth signals, and milestone evidence; translate internal shorthand into claims an outside audience can follow.",
	model.InputTypeMeetingNotes:   "These are raw meeting notes. Reconstruct the underlying positions from fragments; ignore logistics and action items.",
	model.InputTypePodcast:        "This is a podcast transcript. Favor the guest's strongest opinions and memorable formulations; strip filler and host banter.",
	model.InputTypeDraft:          "This is a rough written draft. Sharpen the existing argument rather than inventing a new one; preserve the author's voice.",
}

// anglePriority tells the model which material to select first for each lens
var anglePriority = map[model.Angle]string{
	model.AngleContrarian:      "Prioritize positions that challenge conventional wisdom in the field. Lead with what everyone else gets wrong.",
	model.AngleDataDriven:      "Prioritize quantitative material: metrics, benchmarks, measured outcomes. Every claim should be anchorable to a number where the source allows.",
	model.AngleStory:           "Prioritize narrative material: turning points, failures, recoveries. The arc carries the argument.",
	model.AngleTactical:        "Prioritize actionable material: playbooks, steps, concrete how-to detail a practitioner could apply this week.",
	model.AngleVisionary:       "Prioritize future-state material: where the field is heading, what becomes possible, what the source predicts.",
	model.AngleIndustryInsider: "Prioritize insider material: things only someone inside the industry would know, unspoken norms, behind-the-scenes mechanics.",
}

// buildUserPrompt assembles the extraction instruction: input-type bias,
// angle priority, optional compact profile block, then the source text
func buildUserPrompt(sourceText string, inputType model.InputType, angle model.Angle, profile *model.Profile, extra string) string {
	var b strings.Builder

	b.WriteString("Extract a Strategic Authority Map from the source material below.\n\n")
	b.WriteString(inputTypeBias[inputType])
	b.WriteString("\n")
	b.WriteString(anglePriority[angle])
	b.WriteString("\n")

	if block := profileBlock(profile); block != "" {
		b.WriteString("\n")
		b.WriteString(block)
	}

	if extra != "" {
		b.WriteString("\n")
		b.WriteString(extra)
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "\nSOURCE MATERIAL:\n%s\n", sourceText)

	return b.String()
}

// profileBlock renders a compact authority-profile context block, or ""
func profileBlock(profile *model.Profile) string {
	if profile.IsEmpty() {
		return ""
	}

	var lines []string
	if profile.Thesis != "" {
		lines = append(lines, "Standing thesis: "+profile.Thesis)
	}
	if profile.Positioning != "" {
		lines = append(lines, "Positioning: "+profile.Positioning)
	}
	if profile.Audience != "" {
		lines = append(lines, "Audience: "+profile.Audience)
	}
	if profile.Tone != "" {
		lines = append(lines, "Tone: "+profile.Tone)
	}

	return "AUTHORITY PROFILE (keep the map consistent with this, but extract from the source, not from the profile):\n" + strings.Join(lines, "\n")
}
