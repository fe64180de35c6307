package overlap

import (
	"context"
)

// RedundancyThreshold is the phrase-containment share above which an asset is
// judged to merely restate the map. Intentionally conservative (>50%) so
// short, naturally shared vocabulary does not over-trigger the guard.
const RedundancyThreshold = 0.5

// RephraseInstruction is appended to the prompt on the single guard retry
const RephraseInstruction = "Your previous draft repeated the source material nearly verbatim. Rephrase and elaborate: interpret the ideas in fresh language instead of restating them."

// GenerateFunc performs one completion call and returns normalized text.
// The instruction argument is empty on the first call and carries the
// rephrase instruction on the guard retry.
type GenerateFunc func(ctx context.Context, instruction string) (string, error)

// Guard runs the generator once and, if more than half of the source phrases
// appear verbatim in the result, issues exactly one rephrase retry. The retry
// result is accepted unconditionally: one retry ceiling, no loop.
func Guard(ctx context.Context, generate GenerateFunc, sourcePhrases []string) (string, error) {
	text, err := generate(ctx, "")
	if err != nil {
		return "", err
	}

	if ContainmentRatio(text, sourcePhrases) <= RedundancyThreshold {
		return text, nil
	}

	retried, err := generate(ctx, RephraseInstruction)
	if err != nil {
		return "", err
	}
	return retried, nil
}
