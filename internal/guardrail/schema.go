package guardrail

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// Length caps for externally produced content. Anything over these
// limits is rejected with over_length before deeper inspection.
const (
	maxPromptLen = 3000
	maxChoices   = 4
	maxChoiceLen = 120
	maxSteps     = 8
	maxStepLen   = 200
)

// candidateSchema constrains the shape of an external candidate:
// field presence, types, choice and step counts, and the correct
// index range. String lengths are checked separately so they map to
// their own rejection reason.
var candidateSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"prompt": map[string]any{
			"type": "string",
		},
		"choices": map[string]any{
			"type":     "array",
			"items":    map[string]any{"type": "string"},
			"minItems": maxChoices,
			"maxItems": maxChoices,
		},
		"correct_index": map[string]any{
			"type":    "integer",
			"minimum": 0,
			"maximum": maxChoices - 1,
		},
		"explanation_steps": map[string]any{
			"type":     "array",
			"items":    map[string]any{"type": "string"},
			"minItems": 1,
			"maxItems": maxSteps,
		},
		"diagram": map[string]any{
			"type": "object",
			"properties": map[string]any{
				"type":       map[string]any{"type": "string", "enum": []any{"right_triangle"}},
				"leg_a":      map[string]any{"type": "integer"},
				"leg_b":      map[string]any{"type": "integer"},
				"hypotenuse": map[string]any{"type": "integer"},
			},
			"required":             []any{"type", "leg_a", "leg_b"},
			"additionalProperties": false,
		},
	},
	"required":             []any{"prompt", "choices", "correct_index", "explanation_steps"},
	"additionalProperties": false,
}

var compileSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	// The jsonschema library expects a parsed JSON value, not raw
	// bytes. Marshal then unmarshal to get a clean representation.
	defBytes, err := json.Marshal(candidateSchema)
	if err != nil {
		return nil, fmt.Errorf("marshal schema definition: %w", err)
	}
	var defParsed any
	if err := json.Unmarshal(defBytes, &defParsed); err != nil {
		return nil, fmt.Errorf("parse schema definition: %w", err)
	}

	c := jsonschema.NewCompiler()
	const schemaURL = "schema://candidate.json"
	if err := c.AddResource(schemaURL, defParsed); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}
	compiled, err := c.Compile(schemaURL)
	if err != nil {
		return nil, fmt.Errorf("compile: %w", err)
	}
	return compiled, nil
})

// decodeCandidate validates raw JSON against the candidate schema and
// unmarshals it. Shape failures come back as schema_invalid.
func decodeCandidate(raw json.RawMessage) (*Candidate, *stageError) {
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, &stageError{Reason: ReasonSchemaInvalid, Message: fmt.Sprintf("invalid JSON: %v", err)}
	}

	compiled, err := compileSchema()
	if err != nil {
		return nil, &stageError{Reason: ReasonSchemaInvalid, Message: fmt.Sprintf("compile schema: %v", err)}
	}
	if err := compiled.Validate(parsed); err != nil {
		return nil, &stageError{Reason: ReasonSchemaInvalid, Message: err.Error()}
	}

	var cand Candidate
	if err := json.Unmarshal(raw, &cand); err != nil {
		return nil, &stageError{Reason: ReasonSchemaInvalid, Message: err.Error()}
	}
	return &cand, nil
}

// checkLengths enforces the string length caps. Counts are already
// bounded by the schema.
func checkLengths(c *Candidate) *stageError {
	if len(c.Prompt) > maxPromptLen {
		return &stageError{
			Reason:  ReasonOverLength,
			Message: fmt.Sprintf("prompt is %d characters, limit %d", len(c.Prompt), maxPromptLen),
		}
	}
	for i, choice := range c.Choices {
		if len(choice) > maxChoiceLen {
			return &stageError{
				Reason:  ReasonOverLength,
				Message: fmt.Sprintf("choice %d is %d characters, limit %d", i, len(choice), maxChoiceLen),
			}
		}
	}
	for i, step := range c.Steps {
		if len(step) > maxStepLen {
			return &stageError{
				Reason:  ReasonOverLength,
				Message: fmt.Sprintf("step %d is %d characters, limit %d", i, len(step), maxStepLen),
			}
		}
	}
	return nil
}
