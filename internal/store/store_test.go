package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/piepengu/mathdrill/internal/skills"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)

	tests := []struct {
		pragma string
		want   string
	}{
		{"journal_mode", "wal"},
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		if err := s.DB().QueryRow("PRAGMA " + tt.pragma).Scan(&got); err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestAppendAndRecent(t *testing.T) {
	repo := openTestStore(t).Attempts()
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		rec := &AttemptRecord{
			UserID:        "u1",
			Domain:        skills.DomainAlgebra,
			Skill:         skills.LinearEquation,
			Difficulty:    skills.Medium,
			Seed:          int64(100 + i),
			Correct:       i != 1,
			CorrectAnswer: "4",
			TimeMS:        int64(9000 + i*1000),
			CreatedAt:     base.Add(time.Duration(i) * time.Minute),
		}
		if err := repo.Append(ctx, rec); err != nil {
			t.Fatalf("append: %v", err)
		}
		if rec.ID == "" {
			t.Fatal("append should assign an ID")
		}
	}

	recent, err := repo.Recent(ctx, "u1", skills.LinearEquation, 2)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(recent) != 2 {
		t.Fatalf("got %d records, want 2", len(recent))
	}
	if recent[0].Seed != 102 || recent[1].Seed != 101 {
		t.Errorf("order = %d, %d; want newest first (102, 101)", recent[0].Seed, recent[1].Seed)
	}
	if recent[0].Source != SourceTemplate {
		t.Errorf("source = %q, want default %q", recent[0].Source, SourceTemplate)
	}
	if recent[1].Correct {
		t.Error("middle attempt should be incorrect")
	}
}

func TestRecentScopedToUserAndSkill(t *testing.T) {
	repo := openTestStore(t).Attempts()
	ctx := context.Background()

	seedRec := func(user string, skill skills.Skill) {
		t.Helper()
		err := repo.Append(ctx, &AttemptRecord{
			UserID:        user,
			Domain:        skills.DomainOf(skill),
			Skill:         skill,
			Difficulty:    skills.Easy,
			Seed:          1,
			Correct:       true,
			CorrectAnswer: "1",
			TimeMS:        5000,
		})
		if err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	seedRec("u1", skills.LinearEquation)
	seedRec("u1", skills.Proportion)
	seedRec("u2", skills.LinearEquation)

	recent, err := repo.Recent(ctx, "u1", skills.LinearEquation, 10)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(recent) != 1 {
		t.Fatalf("got %d records, want 1", len(recent))
	}
}

func TestStatsAndTotals(t *testing.T) {
	repo := openTestStore(t).Attempts()
	ctx := context.Background()

	attempts := []struct {
		skill   skills.Skill
		correct bool
		timeMS  int64
	}{
		{skills.LinearEquation, true, 8000},
		{skills.LinearEquation, false, 12000},
		{skills.Proportion, true, 6000},
	}
	for _, a := range attempts {
		err := repo.Append(ctx, &AttemptRecord{
			UserID:        "u1",
			Domain:        skills.DomainOf(a.skill),
			Skill:         a.skill,
			Difficulty:    skills.Medium,
			Seed:          7,
			Correct:       a.correct,
			CorrectAnswer: "x",
			TimeMS:        a.timeMS,
		})
		if err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	stats, err := repo.Stats(ctx, "u1")
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if len(stats) != 2 {
		t.Fatalf("got %d skill rows, want 2", len(stats))
	}

	byskill := map[skills.Skill]SkillStats{}
	for _, s := range stats {
		byskill[s.Skill] = s
	}
	lin := byskill[skills.LinearEquation]
	if lin.Attempts != 2 || lin.Correct != 1 {
		t.Errorf("linear_equation stats = %d/%d, want 1/2", lin.Correct, lin.Attempts)
	}
	if lin.Accuracy() != 0.5 {
		t.Errorf("accuracy = %f, want 0.5", lin.Accuracy())
	}
	if lin.AvgTimeMS != 10000 {
		t.Errorf("avg time = %f, want 10000", lin.AvgTimeMS)
	}

	correct, total, err := repo.Totals(ctx, "u1")
	if err != nil {
		t.Fatalf("totals: %v", err)
	}
	if correct != 2 || total != 3 {
		t.Errorf("totals = %d/%d, want 2/3", correct, total)
	}
}

func TestReset(t *testing.T) {
	repo := openTestStore(t).Attempts()
	ctx := context.Background()

	for _, user := range []string{"u1", "u1", "u2"} {
		err := repo.Append(ctx, &AttemptRecord{
			UserID:        user,
			Domain:        skills.DomainAlgebra,
			Skill:         skills.LinearEquation,
			Difficulty:    skills.Easy,
			Seed:          3,
			Correct:       true,
			CorrectAnswer: "2",
			TimeMS:        4000,
		})
		if err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	n, err := repo.Reset(ctx, "u1")
	if err != nil {
		t.Fatalf("reset: %v", err)
	}
	if n != 2 {
		t.Errorf("reset removed %d rows, want 2", n)
	}

	_, total, err := repo.Totals(ctx, "u2")
	if err != nil {
		t.Fatalf("totals: %v", err)
	}
	if total != 1 {
		t.Errorf("u2 should keep their history, total = %d", total)
	}
}
