package extract

import (
	"encoding/json"

	"github.com/okrenov/samforge/internal/llm"
)

// mapSchema is the strict output contract sent to providers that support
// structured output enforcement
const mapSchema = `{
  "type": "object",
  "required": ["coreThesis", "strategicClaims", "narrativeArc", "hookMatrix", "objections", "proofAssets"],
  "additionalProperties": false,
  "properties": {
    "coreThesis": {
      "type": "object",
      "required": ["statement", "audience", "angle", "inputType"],
      "additionalProperties": false,
      "properties": {
        "statement": {"type": "string"},
        "audience": {"type": "string"},
        "angle": {"type": "string", "enum": ["contrarian", "data_driven", "story", "tactical", "visionary", "industry_insider"]},
        "inputType": {"type": "string", "enum": ["interview", "memo", "investor_update", "meeting_notes", "podcast", "draft"]}
      }
    },
    "strategicClaims": {
      "type": "array",
      "minItems": 3,
      "maxItems": 3,
      "items": {
        "type": "object",
        "required": ["id", "claim", "whyItMatters", "counterObjection", "differentiation", "evidence"],
        "additionalProperties": false,
        "properties": {
          "id": {"type": "string", "enum": ["C1", "C2", "C3"]},
          "claim": {"type": "string"},
          "whyItMatters": {"type": "string"},
          "counterObjection": {"type": "string"},
          "differentiation": {"type": "string"},
          "evidence": {
            "type": "array",
            "minItems": 2,
            "maxItems": 4,
            "items": {
              "type": "object",
              "required": ["point", "sourceQuote", "type"],
              "additionalProperties": false,
              "properties": {
                "point": {"type": "string"},
                "sourceQuote": {"type": ["string", "null"]},
                "type": {"type": "string", "enum": ["metric", "example", "comparison", "principle"]}
              }
            }
          }
        }
      }
    },
    "narrativeArc": {
      "type": "object",
      "required": ["setup", "tension", "turningPoint", "resolution", "takeaway"],
      "additionalProperties": false,
      "properties": {
        "setup": {"type": "string"},
        "tension": {"type": "string"},
        "turningPoint": {"type": "string"},
        "resolution": {"type": "string"},
        "takeaway": {"type": "string"}
      }
    },
    "hookMatrix": {
      "type": "object",
      "required": ["categories"],
      "additionalProperties": false,
      "properties": {
        "categories": {
          "type": "array",
          "minItems": 5,
          "maxItems": 5,
          "items": {
            "type": "object",
            "required": ["category", "hooks"],
            "additionalProperties": false,
            "properties": {
              "category": {"type": "string", "enum": ["Contrarian", "Data", "Story", "Tactical", "Vision"]},
              "hooks": {"type": "array", "minItems": 3, "maxItems": 5, "items": {"type": "string"}}
            }
          }
        }
      }
    },
    "objections": {
      "type": "array",
      "minItems": 3,
      "maxItems": 5,
      "items": {"type": "string"}
    },
    "proofAssets": {
      "type": "object",
      "required": ["metrics", "examples", "comparisons"],
      "additionalProperties": false,
      "properties": {
        "metrics": {"type": "array", "items": {"type": "string"}},
        "examples": {"type": "array", "items": {"type": "string"}},
        "comparisons": {"type": "array", "items": {"type": "string"}}
      }
    }
  }
}`

// MapSchema returns the output schema for completion requests
func MapSchema() *llm.OutputSchema {
	return &llm.OutputSchema{
		Name:   "strategic_authority_map",
		Schema: json.RawMessage(mapSchema),
	}
}
