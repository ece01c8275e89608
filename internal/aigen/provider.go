// Package aigen requests draft problem candidates from hosted model
// providers. Providers return raw JSON payloads only; nothing in this
// package decides whether a candidate is servable.
package aigen

import (
	"context"
	"encoding/json"
)

// Provider is the abstraction over a hosted model API.
type Provider interface {
	// Generate sends one prompt and returns a structured response.
	// When the request carries a Schema the provider uses its native
	// structured output mechanism and the response Content is the
	// validated JSON.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model identifier this provider is
	// configured to use.
	ModelID() string
}

// Request is a single-turn prompt. Item drafting never continues a
// conversation, so there is no message history: one system
// instruction, one user turn.
type Request struct {
	// System sets the model's role and constraints.
	System string

	// User is the drafting instruction for one item.
	User string

	// Schema is the JSON Schema the response must conform to. Nil
	// means the response Content is raw text.
	Schema *Schema

	// MaxTokens caps the response length.
	MaxTokens int

	// Temperature controls sampling randomness, 0.0 to 1.0.
	Temperature float64
}

// Schema defines the JSON structure expected from the model.
type Schema struct {
	// Name identifies the schema to the provider API.
	Name string

	// Description guides generation.
	Description string

	// Definition is the JSON Schema definition as a map.
	Definition map[string]any
}

// Response holds the model's output.
type Response struct {
	// Content is the generated output, validated against the request
	// Schema when one was set.
	Content json.RawMessage

	// Usage reports token consumption for this request.
	Usage Usage

	// Model is the model that actually served the request.
	Model string

	// StopReason is normalized to "end" or "max_tokens".
	StopReason string
}

// Usage tracks token consumption for a single request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}
