package aigen

import (
	"context"
	"encoding/json"
	"sync"
)

// ScriptStep is one scripted reply: either a payload or an error.
type ScriptStep struct {
	Payload json.RawMessage
	Usage   Usage
	Err     error
}

// ScriptedProvider replays a fixed script of replies in order and
// records every request it receives. When the script runs out it
// reports ErrProviderUnavailable, so an empty ScriptedProvider stands
// in for a dead endpoint in tests.
type ScriptedProvider struct {
	mu    sync.Mutex
	steps []ScriptStep
	seen  []Request
}

func NewScriptedProvider(steps ...ScriptStep) *ScriptedProvider {
	return &ScriptedProvider{steps: steps}
}

func (s *ScriptedProvider) Generate(_ context.Context, req Request) (*Response, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seen = append(s.seen, req)
	if len(s.steps) == 0 {
		return nil, &ErrProviderUnavailable{}
	}

	step := s.steps[0]
	s.steps = s.steps[1:]
	if step.Err != nil {
		return nil, step.Err
	}
	return &Response{
		Content:    step.Payload,
		Usage:      step.Usage,
		Model:      "scripted",
		StopReason: "end",
	}, nil
}

func (s *ScriptedProvider) ModelID() string { return "scripted" }

// Push appends a reply to the script.
func (s *ScriptedProvider) Push(step ScriptStep) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.steps = append(s.steps, step)
}

// Requests returns a copy of every request received so far.
func (s *ScriptedProvider) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Request, len(s.seen))
	copy(out, s.seen)
	return out
}
