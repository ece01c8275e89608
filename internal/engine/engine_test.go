package engine

import (
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/piepengu/mathdrill/internal/aigen"
	"github.com/piepengu/mathdrill/internal/grader"
	"github.com/piepengu/mathdrill/internal/guardrail"
	"github.com/piepengu/mathdrill/internal/skills"
	"github.com/piepengu/mathdrill/internal/store"
)

func newTestEngine(t *testing.T, opts Options) *Engine {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return New(st, opts)
}

func TestGenerateItemDeterministic(t *testing.T) {
	e := newTestEngine(t, Options{})

	a, err := e.GenerateItem("linear_equation", "medium", 42)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	b, err := e.GenerateItem("linear_equation", "medium", 42)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if a.Prompt != b.Prompt || a.Answer != b.Answer {
		t.Errorf("same key produced different items: %q vs %q", a.Prompt, b.Prompt)
	}
}

func TestGenerateItemDrawsSeedWhenZero(t *testing.T) {
	e := newTestEngine(t, Options{})

	item, err := e.GenerateItem("proportion", "easy", 0)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if item.Seed <= 0 {
		t.Errorf("seed = %d, want a drawn positive seed", item.Seed)
	}
}

func TestGenerateItemInvalidParams(t *testing.T) {
	e := newTestEngine(t, Options{})

	tests := []struct {
		name       string
		skill      string
		difficulty string
		seed       int64
	}{
		{"unknown skill", "calculus", "medium", 1},
		{"unknown difficulty", "linear_equation", "extreme", 1},
		{"negative seed", "linear_equation", "medium", -5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.GenerateItem(tt.skill, tt.difficulty, tt.seed)
			if !errors.Is(err, ErrInvalidParameter) {
				t.Errorf("err = %v, want ErrInvalidParameter", err)
			}
		})
	}
}

func TestGradeSubmissionRecordsAttempt(t *testing.T) {
	e := newTestEngine(t, Options{})
	ctx := context.Background()

	item, err := e.GenerateItem("two_step_equation", "medium", 7)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	res, err := e.GradeSubmission(ctx, "u1", "two_step_equation", "medium", item.Seed,
		grader.Submission{Answer: item.Answer}, 9*time.Second)
	if err != nil {
		t.Fatalf("grade: %v", err)
	}
	if !res.Correct {
		t.Errorf("canonical answer %q graded incorrect", item.Answer)
	}

	stats, err := e.Stats(ctx, "u1")
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if len(stats) != 1 || stats[0].Attempts != 1 || stats[0].Correct != 1 {
		t.Errorf("stats = %+v, want one correct attempt", stats)
	}
}

func TestGradeSubmissionWrongAnswer(t *testing.T) {
	e := newTestEngine(t, Options{})

	item, err := e.GenerateItem("linear_equation", "easy", 11)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	res, err := e.GradeSubmission(context.Background(), "u1", "linear_equation", "easy", item.Seed,
		grader.Submission{Answer: item.Answer + "1"}, 5*time.Second)
	if err != nil {
		t.Fatalf("grade: %v", err)
	}
	if res.Correct {
		t.Error("perturbed answer graded correct")
	}
	if res.CorrectAnswer != item.Answer {
		t.Errorf("correct answer = %q, want %q", res.CorrectAnswer, item.Answer)
	}
	if len(res.Steps) == 0 {
		t.Error("result should carry explanation steps")
	}
}

func TestGenerateViaAIWithoutSource(t *testing.T) {
	e := newTestEngine(t, Options{})

	verdict, err := e.GenerateViaAI(context.Background(), "linear_equation_mc", "medium")
	if err != nil {
		t.Fatalf("generate via ai: %v", err)
	}
	if verdict.Outcome != guardrail.OutcomeUnavailable {
		t.Errorf("outcome = %q, want unavailable", verdict.Outcome)
	}
	if verdict.Item == nil || verdict.Item.Seed <= 0 {
		t.Error("unavailable verdict should carry a template fallback")
	}
}

func TestGenerateViaAIAccepted(t *testing.T) {
	payload := json.RawMessage(`{"prompt":"Solve for x: 4(x + 1) = 12","choices":["2","3","-2","4"],"correct_index":0,"explanation_steps":["Divide both sides by 4.","Subtract 1."]}`)
	src := aigen.NewSource(aigen.NewScriptedProvider(aigen.ScriptStep{Payload: payload}), aigen.DefaultConfig())

	e := newTestEngine(t, Options{Source: src})

	verdict, err := e.GenerateViaAI(context.Background(), "linear_equation_mc", "medium")
	if err != nil {
		t.Fatalf("generate via ai: %v", err)
	}
	if verdict.Outcome != guardrail.OutcomeAccepted {
		t.Fatalf("outcome = %q (reason %q), want accepted", verdict.Outcome, verdict.Reason)
	}
	if verdict.Item.Answer != "2" {
		t.Errorf("answer = %q, want 2", verdict.Item.Answer)
	}
}

func TestGenerateViaAIProviderFailure(t *testing.T) {
	src := aigen.NewSource(aigen.NewScriptedProvider(), aigen.DefaultConfig())
	e := newTestEngine(t, Options{Source: src})

	verdict, err := e.GenerateViaAI(context.Background(), "proportion", "easy")
	if err != nil {
		t.Fatalf("generate via ai: %v", err)
	}
	if verdict.Outcome != guardrail.OutcomeUnavailable {
		t.Errorf("outcome = %q, want unavailable", verdict.Outcome)
	}
}

func TestRecordAIAttemptAndNextDifficulty(t *testing.T) {
	e := newTestEngine(t, Options{})
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		err := e.RecordAIAttempt(ctx, "u1", "linear_equation_mc", "medium", true, "4", 6*time.Second)
		if err != nil {
			t.Fatalf("record: %v", err)
		}
	}

	next, err := e.NextDifficulty(ctx, "u1", "linear_equation_mc")
	if err != nil {
		t.Fatalf("next: %v", err)
	}
	if next != skills.Hard {
		t.Errorf("next = %q, want hard after two fast correct attempts", next)
	}
}

func TestNextDifficultyColdStart(t *testing.T) {
	e := newTestEngine(t, Options{})

	next, err := e.NextDifficulty(context.Background(), "fresh-user", "linear_equation")
	if err != nil {
		t.Fatalf("next: %v", err)
	}
	if next != skills.Medium {
		t.Errorf("next = %q, want medium for a fresh user", next)
	}
}

func TestReset(t *testing.T) {
	e := newTestEngine(t, Options{})
	ctx := context.Background()

	if err := e.RecordAIAttempt(ctx, "u1", "proportion", "easy", true, "6", 4*time.Second); err != nil {
		t.Fatalf("record: %v", err)
	}

	n, err := e.Reset(ctx, "u1")
	if err != nil {
		t.Fatalf("reset: %v", err)
	}
	if n != 1 {
		t.Errorf("reset removed %d rows, want 1", n)
	}
}

func TestEstimateFromCounts(t *testing.T) {
	tests := []struct {
		name           string
		correct, total int64
		score          int
	}{
		{"no attempts", 0, 0, 500},
		{"perfect twenty", 20, 20, 773},
		{"all wrong", 0, 10, 250},
		{"half right", 10, 20, 500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			est := estimateFromCounts(tt.correct, tt.total)
			if est.Score != tt.score {
				t.Errorf("score = %d, want %d", est.Score, tt.score)
			}
			if est.Low > est.Score || est.High < est.Score {
				t.Errorf("interval [%d, %d] does not bracket %d", est.Low, est.High, est.Score)
			}
			if est.Low < 200 || est.High > 800 {
				t.Errorf("interval [%d, %d] outside the scale", est.Low, est.High)
			}
		})
	}
}

func TestEstimateIntervalNarrows(t *testing.T) {
	few := estimateFromCounts(3, 4)
	many := estimateFromCounts(75, 100)

	if (many.High - many.Low) >= (few.High - few.Low) {
		t.Errorf("interval should narrow with more attempts: few=%d wide, many=%d wide",
			few.High-few.Low, many.High-many.Low)
	}
}
