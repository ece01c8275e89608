// Package guardrail validates externally produced problem candidates
// before they reach learners. Every candidate passes through an
// ordered stage pipeline; a failure at any stage short-circuits with
// a reason code and a deterministic template fallback, so a verdict
// always carries a servable item.
package guardrail

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/piepengu/mathdrill/internal/itemgen"
	"github.com/piepengu/mathdrill/internal/metrics"
	"github.com/piepengu/mathdrill/internal/skills"
)

// stage is one check in the pipeline. Implementations are stateless
// and safe for concurrent use.
type stage interface {
	// name returns a short identifier for logging.
	name() string

	// check returns nil if the candidate passes.
	check(c *Candidate, info skills.Info) *stageError
}

// stageError describes why a candidate failed a stage.
type stageError struct {
	Reason  Reason
	Message string
}

// fallbackAttempts bounds retries when drawing a replacement item.
const fallbackAttempts = 4

// Validator runs candidates through the stage pipeline and reports
// every outcome to the metrics sink.
type Validator struct {
	sink   metrics.Sink
	log    *slog.Logger
	stages []stage
}

// New builds a validator with the full stage pipeline. A nil logger
// falls back to slog.Default.
func New(sink metrics.Sink, log *slog.Logger) *Validator {
	if sink == nil {
		sink = metrics.NewMemorySink()
	}
	if log == nil {
		log = slog.Default()
	}
	return &Validator{
		sink: sink,
		log:  log,
		stages: []stage{
			&safetyStage{},
			&structuralStage{},
			&contentStage{},
		},
	}
}

// Validate runs a raw candidate payload through every stage in order.
// Accepted candidates become servable items; rejected ones are
// replaced by a freshly drawn template item carrying the rejection
// reason. The returned error covers internal failures only, never a
// bad candidate.
func (v *Validator) Validate(raw json.RawMessage, skill skills.Skill, difficulty skills.Difficulty) (Verdict, error) {
	info, ok := skills.Lookup(skill)
	if !ok {
		return Verdict{}, fmt.Errorf("unknown skill %q", skill)
	}

	cand, serr := decodeCandidate(raw)
	if serr == nil {
		serr = checkLengths(cand)
	}
	if serr == nil {
		for _, s := range v.stages {
			if serr = s.check(cand, info); serr != nil {
				v.log.Warn("candidate rejected",
					"stage", s.name(),
					"skill", string(skill),
					"reason", string(serr.Reason),
					"detail", serr.Message)
				break
			}
		}
	} else {
		v.log.Warn("candidate rejected",
			"stage", "schema",
			"skill", string(skill),
			"reason", string(serr.Reason),
			"detail", serr.Message)
	}

	if serr == nil {
		v.sink.Increment(string(OutcomeAccepted))
		return Accepted(cand.toItem(skill, difficulty)), nil
	}

	v.sink.Increment(string(serr.Reason))
	fb, err := v.fallbackItem(skill, difficulty)
	if err != nil {
		return Verdict{}, err
	}
	return Rejected(serr.Reason, fb), nil
}

// Unavailable builds the verdict for a candidate source that timed
// out or failed before producing a payload.
func (v *Validator) Unavailable(skill skills.Skill, difficulty skills.Difficulty) (Verdict, error) {
	v.sink.Increment(string(ReasonUnavailable))
	fb, err := v.fallbackItem(skill, difficulty)
	if err != nil {
		return Verdict{}, err
	}
	return Unavailable(fb), nil
}

// fallbackItem draws a replacement template item. Individual draws
// can land on degenerate parameter sets, so a few seeds are tried.
func (v *Validator) fallbackItem(skill skills.Skill, difficulty skills.Difficulty) (*itemgen.Item, error) {
	var lastErr error
	for i := 0; i < fallbackAttempts; i++ {
		item, err := itemgen.Draw(skill, difficulty)
		if err == nil {
			return item, nil
		}
		lastErr = err
	}
	return nil, fmt.Errorf("draw fallback item: %w", lastErr)
}
