package extract

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/okrenov/samforge/internal/model"
)

// ParseMap parses completion output into a candidate authority map with
// three-tier recovery: direct parse, then fenced code block, then the
// substring between the first '{' and the last '}'
func ParseMap(text string) (*model.AuthorityMap, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("empty completion output")
	}

	// Tier 1: direct parse
	if m, err := unmarshalMap(text); err == nil {
		return m, nil
	}

	// Tier 2: fenced code block
	if fenced := extractFencedBlock(text); fenced != "" {
		if m, err := unmarshalMap(fenced); err == nil {
			return m, nil
		}
	}

	// Tier 3: first '{' to last '}'
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start >= 0 && end > start {
		if m, err := unmarshalMap(text[start : end+1]); err == nil {
			return m, nil
		}
	}

	return nil, fmt.Errorf("no parseable JSON object in completion output")
}

func unmarshalMap(s string) (*model.AuthorityMap, error) {
	var m model.AuthorityMap
	if err := json.Unmarshal([]byte(s), &m); err != nil {
		return nil, err
	}
	return &m, nil
}

// extractFencedBlock returns the contents of the first ``` fenced block, or ""
func extractFencedBlock(text string) string {
	start := strings.Index(text, "```")
	if start < 0 {
		return ""
	}

	rest := text[start+3:]
	// Skip a language tag like "json" on the fence line
	if nl := strings.Index(rest, "\n"); nl >= 0 {
		rest = rest[nl+1:]
	}

	end := strings.Index(rest, "```")
	if end < 0 {
		return strings.TrimSpace(rest)
	}
	return strings.TrimSpace(rest[:end])
}
