// Package engine wires generation, grading, guardrails, adaptivity,
// and persistence behind one facade the CLI calls into.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/piepengu/mathdrill/internal/adapt"
	"github.com/piepengu/mathdrill/internal/aigen"
	"github.com/piepengu/mathdrill/internal/grader"
	"github.com/piepengu/mathdrill/internal/guardrail"
	"github.com/piepengu/mathdrill/internal/itemgen"
	"github.com/piepengu/mathdrill/internal/skills"
	"github.com/piepengu/mathdrill/internal/store"
)

// ErrInvalidParameter marks a request with an unknown skill,
// difficulty, or seed. Callers can present these as user errors.
var ErrInvalidParameter = errors.New("invalid parameter")

// ErrGradingReference marks a grading request whose reference item
// could not be rebuilt. The attempt is not recorded.
var ErrGradingReference = errors.New("grading reference unavailable")

// Engine is the application facade.
type Engine struct {
	store  *store.Store
	guard  *guardrail.Validator
	source *aigen.Source
	ctrl   *adapt.Controller
	log    *slog.Logger
}

// Options configures optional engine collaborators.
type Options struct {
	// Source supplies AI candidates. Nil disables the AI path; every
	// AI request then resolves to an unavailable verdict.
	Source *aigen.Source

	// Adapt tunes the difficulty controller.
	Adapt adapt.Config

	// Guard validates AI candidates. Nil builds a default validator.
	Guard *guardrail.Validator

	// Log is the structured logger. Nil falls back to slog.Default.
	Log *slog.Logger
}

// New builds an engine over an open store.
func New(st *store.Store, opts Options) *Engine {
	log := opts.Log
	if log == nil {
		log = slog.Default()
	}
	guard := opts.Guard
	if guard == nil {
		guard = guardrail.New(nil, log)
	}
	hist := &attemptHistory{repo: st.Attempts()}

	return &Engine{
		store:  st,
		guard:  guard,
		source: opts.Source,
		ctrl:   adapt.New(opts.Adapt, hist, log),
		log:    log,
	}
}

// GenerateItem builds the deterministic item for a (skill,
// difficulty, seed) key. Seed zero draws a fresh seed.
func (e *Engine) GenerateItem(skill, difficulty string, seed int64) (*itemgen.Item, error) {
	sk, diff, err := parseItemKey(skill, difficulty)
	if err != nil {
		return nil, err
	}
	if seed < 0 {
		return nil, fmt.Errorf("%w: seed must be positive, got %d", ErrInvalidParameter, seed)
	}
	if seed == 0 {
		seed = itemgen.DrawSeed()
	}

	item, err := itemgen.Generate(sk, diff, seed)
	if err != nil {
		return nil, fmt.Errorf("generate %s/%s seed %d: %w", skill, difficulty, seed, err)
	}
	return item, nil
}

// GenerateViaAI requests one candidate from the AI source and runs it
// through the guardrail pipeline. The verdict always carries a
// servable item; a missing source, transport failure, or expired
// deadline resolves to an unavailable verdict with a template
// fallback.
func (e *Engine) GenerateViaAI(ctx context.Context, skill, difficulty string) (guardrail.Verdict, error) {
	sk, diff, err := parseItemKey(skill, difficulty)
	if err != nil {
		return guardrail.Verdict{}, err
	}

	if e.source == nil {
		return e.guard.Unavailable(sk, diff)
	}

	raw, err := e.source.RequestCandidate(ctx, sk, diff)
	if err != nil {
		e.log.Warn("ai candidate request failed",
			"skill", skill,
			"difficulty", difficulty,
			"error", err)
		return e.guard.Unavailable(sk, diff)
	}
	return e.guard.Validate(raw, sk, diff)
}

// GradeSubmission grades an answer against the regenerated reference
// item and appends the attempt to the learner's history.
func (e *Engine) GradeSubmission(ctx context.Context, userID, skill, difficulty string, seed int64, sub grader.Submission, elapsed time.Duration) (*grader.Result, error) {
	sk, diff, err := parseItemKey(skill, difficulty)
	if err != nil {
		return nil, err
	}
	if seed <= 0 {
		return nil, fmt.Errorf("%w: seed must be positive, got %d", ErrInvalidParameter, seed)
	}

	res, err := grader.Grade(sk, diff, seed, sub)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGradingReference, err)
	}

	rec := &store.AttemptRecord{
		UserID:        userID,
		Domain:        skills.DomainOf(sk),
		Skill:         sk,
		Difficulty:    diff,
		Seed:          seed,
		Source:        store.SourceTemplate,
		Correct:       res.Correct,
		CorrectAnswer: res.CorrectAnswer,
		TimeMS:        elapsed.Milliseconds(),
	}
	if err := e.store.Attempts().Append(ctx, rec); err != nil {
		return nil, fmt.Errorf("record attempt: %w", err)
	}
	return res, nil
}

// RecordAIAttempt appends an attempt on an AI-produced item. AI items
// cannot be rebuilt from a seed, so the caller grades locally and
// reports the outcome.
func (e *Engine) RecordAIAttempt(ctx context.Context, userID, skill, difficulty string, correct bool, correctAnswer string, elapsed time.Duration) error {
	sk, diff, err := parseItemKey(skill, difficulty)
	if err != nil {
		return err
	}

	rec := &store.AttemptRecord{
		UserID:        userID,
		Domain:        skills.DomainOf(sk),
		Skill:         sk,
		Difficulty:    diff,
		Seed:          -1,
		Source:        store.SourceAI,
		Correct:       correct,
		CorrectAnswer: correctAnswer,
		TimeMS:        elapsed.Milliseconds(),
	}
	if err := e.store.Attempts().Append(ctx, rec); err != nil {
		return fmt.Errorf("record attempt: %w", err)
	}
	return nil
}

// NextDifficulty recommends the difficulty for a learner's next item
// on one skill.
func (e *Engine) NextDifficulty(ctx context.Context, userID, skill string) (skills.Difficulty, error) {
	sk, err := parseSkill(skill)
	if err != nil {
		return "", err
	}
	return e.ctrl.Next(ctx, userID, sk), nil
}

// Stats aggregates a learner's attempt history per skill.
func (e *Engine) Stats(ctx context.Context, userID string) ([]store.SkillStats, error) {
	return e.store.Attempts().Stats(ctx, userID)
}

// Reset deletes a learner's attempt history.
func (e *Engine) Reset(ctx context.Context, userID string) (int64, error) {
	return e.store.Attempts().Reset(ctx, userID)
}

// attemptHistory adapts the attempt repository to the controller's
// view of history.
type attemptHistory struct {
	repo *store.AttemptRepo
}

func (h *attemptHistory) Recent(ctx context.Context, userID string, skill skills.Skill, limit int) ([]adapt.Attempt, error) {
	recs, err := h.repo.Recent(ctx, userID, skill, limit)
	if err != nil {
		return nil, err
	}
	out := make([]adapt.Attempt, len(recs))
	for i, r := range recs {
		out[i] = adapt.Attempt{
			Correct:    r.Correct,
			Elapsed:    time.Duration(r.TimeMS) * time.Millisecond,
			Difficulty: r.Difficulty,
		}
	}
	return out, nil
}

func parseItemKey(skill, difficulty string) (skills.Skill, skills.Difficulty, error) {
	sk, err := parseSkill(skill)
	if err != nil {
		return "", "", err
	}
	diff, err := skills.ParseDifficulty(difficulty)
	if err != nil {
		return "", "", fmt.Errorf("%w: %v", ErrInvalidParameter, err)
	}
	return sk, diff, nil
}

func parseSkill(skill string) (skills.Skill, error) {
	sk, err := skills.Parse(skill)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidParameter, err)
	}
	return sk, nil
}
