package aigen

import (
	"context"
	"log/slog"
	"time"
)

// loggingProvider decorates a Provider with structured request logs.
type loggingProvider struct {
	inner Provider
	log   *slog.Logger
}

// WithLogging wraps a provider so every request logs its model,
// duration, token usage, and outcome. A nil logger falls back to
// slog.Default.
func WithLogging(inner Provider, log *slog.Logger) Provider {
	if log == nil {
		log = slog.Default()
	}
	return &loggingProvider{inner: inner, log: log}
}

func (p *loggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	resp, err := p.inner.Generate(ctx, req)
	elapsed := time.Since(start)

	if err != nil {
		p.log.Warn("ai request failed",
			"model", p.inner.ModelID(),
			"duration_ms", elapsed.Milliseconds(),
			"error", err)
		return nil, err
	}

	p.log.Info("ai request completed",
		"model", resp.Model,
		"duration_ms", elapsed.Milliseconds(),
		"input_tokens", resp.Usage.InputTokens,
		"output_tokens", resp.Usage.OutputTokens,
		"stop_reason", resp.StopReason)
	return resp, nil
}

func (p *loggingProvider) ModelID() string {
	return p.inner.ModelID()
}
