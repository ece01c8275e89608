package aigen

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/piepengu/mathdrill/internal/skills"
)

const itemWriterSystem = `You are an item writer creating SAT-style math practice problems.

Rules:
- Write a single multiple-choice problem for the given skill and difficulty.
- Use plain ASCII text for all math. No LaTeX commands. Use / for fractions and standard operators.
- The prompt must be clear and self-contained.
- Provide exactly 4 answer choices where exactly one is correct. Distractors should reflect common mistakes such as sign errors or off-by-one slips, not random values.
- explanation_steps walks through the solution one short step per entry.
- For coordinate answers, format every choice as "(x, y)" or "(x, y, z)".
- Only include a diagram for right-triangle problems, with integer side lengths.`

// candidateSchema describes the expected item payload. The guardrail
// pipeline re-validates the payload independently; this copy only
// steers generation.
var candidateSchema = &Schema{
	Name:        "problem-candidate",
	Description: "A single multiple-choice math problem with solution steps",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"prompt": map[string]any{
				"type":        "string",
				"description": "The problem statement shown to the learner",
			},
			"choices": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"description": "Exactly 4 answer options",
			},
			"correct_index": map[string]any{
				"type":        "integer",
				"description": "Zero-based index of the correct choice",
			},
			"explanation_steps": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"description": "Step-by-step solution, one short step per entry",
			},
		},
		"required":             []any{"prompt", "choices", "correct_index", "explanation_steps"},
		"additionalProperties": false,
	},
}

// Source requests draft problem candidates from a provider. Each
// request gets a single attempt under one deadline.
type Source struct {
	provider Provider
	cfg      Config
}

// NewSource builds a Source around an initialized provider.
func NewSource(provider Provider, cfg Config) *Source {
	return &Source{provider: provider, cfg: cfg}
}

// ModelID reports the underlying provider's model.
func (s *Source) ModelID() string {
	return s.provider.ModelID()
}

// RequestCandidate asks the provider for one problem candidate and
// returns the raw JSON payload. The caller owns validation.
func (s *Source) RequestCandidate(ctx context.Context, skill skills.Skill, difficulty skills.Difficulty) (json.RawMessage, error) {
	info, ok := skills.Lookup(skill)
	if !ok {
		return nil, fmt.Errorf("unknown skill %q", skill)
	}

	ctx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()

	resp, err := s.provider.Generate(ctx, Request{
		System:      itemWriterSystem,
		User:        buildItemRequest(info, difficulty),
		Schema:      candidateSchema,
		MaxTokens:   1024,
		Temperature: 0.7,
	})
	if err != nil {
		return nil, err
	}
	if resp.StopReason == "max_tokens" {
		return nil, &ErrMaxTokensExceeded{Content: resp.Content}
	}
	return resp.Content, nil
}

// buildItemRequest constructs the user message for one candidate.
func buildItemRequest(info skills.Info, difficulty skills.Difficulty) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Skill: %s\n", info.Name)
	fmt.Fprintf(&b, "Topic area: %s\n", info.Domain)
	fmt.Fprintf(&b, "Difficulty: %s\n", difficulty)

	switch info.Kind {
	case skills.KindPair:
		b.WriteString("Answer shape: an ordered pair, every choice formatted as \"(x, y)\".\n")
	case skills.KindTriple:
		b.WriteString("Answer shape: an ordered triple, every choice formatted as \"(x, y, z)\".\n")
	case skills.KindDecimal:
		b.WriteString("Answer shape: a decimal number.\n")
	default:
		b.WriteString("Answer shape: a single number.\n")
	}

	return b.String()
}
