package adapt

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/piepengu/mathdrill/internal/skills"
)

func TestDecide(t *testing.T) {
	cfg := DefaultConfig()
	fast := 8 * time.Second
	slow := 35 * time.Second

	tests := []struct {
		name   string
		recent []Attempt
		want   skills.Difficulty
		branch string
	}{
		{
			name:   "cold start with no attempts",
			recent: nil,
			want:   skills.Medium,
			branch: "cold_start",
		},
		{
			name: "cold start with one attempt",
			recent: []Attempt{
				{Correct: true, Elapsed: fast, Difficulty: skills.Easy},
			},
			want:   skills.Medium,
			branch: "cold_start",
		},
		{
			name: "two fast correct promote",
			recent: []Attempt{
				{Correct: true, Elapsed: fast, Difficulty: skills.Medium},
				{Correct: true, Elapsed: fast, Difficulty: skills.Medium},
			},
			want:   skills.Hard,
			branch: "promote",
		},
		{
			name: "promotion clamps at hard",
			recent: []Attempt{
				{Correct: true, Elapsed: fast, Difficulty: skills.Hard},
				{Correct: true, Elapsed: fast, Difficulty: skills.Hard},
			},
			want:   skills.Hard,
			branch: "promote",
		},
		{
			name: "one wrong demotes",
			recent: []Attempt{
				{Correct: false, Elapsed: fast, Difficulty: skills.Medium},
				{Correct: true, Elapsed: fast, Difficulty: skills.Medium},
			},
			want:   skills.Easy,
			branch: "demote",
		},
		{
			name: "demotion clamps at easy",
			recent: []Attempt{
				{Correct: false, Elapsed: slow, Difficulty: skills.Easy},
				{Correct: false, Elapsed: slow, Difficulty: skills.Easy},
			},
			want:   skills.Easy,
			branch: "demote",
		},
		{
			name: "two slow correct demote",
			recent: []Attempt{
				{Correct: true, Elapsed: slow, Difficulty: skills.Hard},
				{Correct: true, Elapsed: slow, Difficulty: skills.Hard},
			},
			want:   skills.Medium,
			branch: "demote",
		},
		{
			name: "correct but mixed pace holds",
			recent: []Attempt{
				{Correct: true, Elapsed: slow, Difficulty: skills.Medium},
				{Correct: true, Elapsed: fast, Difficulty: skills.Medium},
			},
			want:   skills.Medium,
			branch: "hold",
		},
		{
			name: "boundary time counts as fast",
			recent: []Attempt{
				{Correct: true, Elapsed: cfg.FastThreshold, Difficulty: skills.Easy},
				{Correct: true, Elapsed: cfg.FastThreshold, Difficulty: skills.Easy},
			},
			want:   skills.Medium,
			branch: "promote",
		},
		{
			name: "unknown stored tier treated as medium",
			recent: []Attempt{
				{Correct: true, Elapsed: fast, Difficulty: skills.Difficulty("brutal")},
				{Correct: true, Elapsed: fast, Difficulty: skills.Medium},
			},
			want:   skills.Hard,
			branch: "promote",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, branch := Decide(cfg, skills.LinearEquation, tt.recent)
			if got != tt.want {
				t.Errorf("Decide() = %q, want %q", got, tt.want)
			}
			if branch != tt.branch {
				t.Errorf("branch = %q, want %q", branch, tt.branch)
			}
		})
	}
}

func TestDecideSkillThresholdOverride(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SkillThresholds = map[skills.Skill]time.Duration{
		skills.LinearSystem3x3: 45 * time.Second,
	}
	recent := []Attempt{
		{Correct: true, Elapsed: 30 * time.Second, Difficulty: skills.Medium},
		{Correct: true, Elapsed: 30 * time.Second, Difficulty: skills.Medium},
	}

	if got, branch := Decide(cfg, skills.LinearSystem3x3, recent); got != skills.Hard || branch != "promote" {
		t.Errorf("Decide(override) = %q/%q, want hard/promote", got, branch)
	}
	if got, branch := Decide(cfg, skills.LinearEquation, recent); got != skills.Easy || branch != "demote" {
		t.Errorf("Decide(default) = %q/%q, want easy/demote", got, branch)
	}
}

type stubHistory struct {
	attempts []Attempt
	err      error
}

func (s *stubHistory) Recent(context.Context, string, skills.Skill, int) ([]Attempt, error) {
	return s.attempts, s.err
}

func TestControllerNext(t *testing.T) {
	hist := &stubHistory{attempts: []Attempt{
		{Correct: true, Elapsed: 5 * time.Second, Difficulty: skills.Easy},
		{Correct: true, Elapsed: 6 * time.Second, Difficulty: skills.Easy},
	}}
	c := New(DefaultConfig(), hist, nil)

	if got := c.Next(context.Background(), "u1", skills.LinearEquation); got != skills.Medium {
		t.Errorf("Next() = %q, want medium", got)
	}
}

func TestControllerNextHistoryError(t *testing.T) {
	c := New(DefaultConfig(), &stubHistory{err: errors.New("db closed")}, nil)

	if got := c.Next(context.Background(), "u1", skills.Proportion); got != skills.Medium {
		t.Errorf("Next() = %q, want medium on history failure", got)
	}
}
