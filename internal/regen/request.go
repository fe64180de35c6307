package regen

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/okrenov/samforge/internal/model"
)

// allowedKeys is the closed set of request body keys regeneration accepts.
// Anything else is rejected before any model work happens.
var allowedKeys = map[string]bool{
	"section": true,
}

// rawInsightKeys are map-content keys callers sometimes send hoping to patch
// extracted insights directly. Regeneration always re-derives from source, so
// these get a explicit rejection rather than being silently dropped.
var rawInsightKeys = map[string]bool{
	"claim":      true,
	"claims":     true,
	"thesis":     true,
	"coreThesis": true,
	"insights":   true,
	"evidence":   true,
	"objections": true,
	"hookMatrix": true,
}

// ParseRequest decodes a regeneration request body and enforces the key
// allow-list. The body is optional; an empty body means full regeneration.
func ParseRequest(body []byte) (model.AssetSection, error) {
	if len(body) == 0 {
		return "", nil
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return "", model.NewError(model.CodeInputInvalid, "request body is not a JSON object", err)
	}

	var unknown []string
	for key := range fields {
		if allowedKeys[key] {
			continue
		}
		if rawInsightKeys[key] {
			return "", model.NewError(model.CodeInputInvalid,
				fmt.Sprintf("field %q cannot be supplied: insights are re-derived from the source, not patched", key), nil)
		}
		unknown = append(unknown, key)
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return "", model.NewError(model.CodeInputInvalid,
			fmt.Sprintf("unknown request fields: %s", strings.Join(unknown, ", ")), nil)
	}

	raw, ok := fields["section"]
	if !ok {
		return "", nil
	}
	var section string
	if err := json.Unmarshal(raw, &section); err != nil {
		return "", model.NewError(model.CodeInputInvalid, "section must be a string", err)
	}
	if section == "" {
		return "", nil
	}

	s := model.AssetSection(section)
	if !s.IsValid() {
		return "", model.NewError(model.CodeInputInvalid,
			fmt.Sprintf("unknown section %q", section), nil)
	}
	return s, nil
}
