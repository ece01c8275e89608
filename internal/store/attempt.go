package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/piepengu/mathdrill/internal/skills"
)

// Attempt sources.
const (
	SourceTemplate = "template"
	SourceAI       = "ai"
)

// AttemptRecord is one graded attempt, append-only.
type AttemptRecord struct {
	ID            string
	UserID        string
	Domain        skills.Domain
	Skill         skills.Skill
	Difficulty    skills.Difficulty
	Seed          int64
	Source        string
	Correct       bool
	CorrectAnswer string
	TimeMS        int64
	CreatedAt     time.Time
}

// SkillStats aggregates a learner's attempts on one skill.
type SkillStats struct {
	Domain    skills.Domain
	Skill     skills.Skill
	Attempts  int64
	Correct   int64
	AvgTimeMS float64
}

// Accuracy returns the fraction of correct attempts, 0 when empty.
func (s SkillStats) Accuracy() float64 {
	if s.Attempts == 0 {
		return 0
	}
	return float64(s.Correct) / float64(s.Attempts)
}

// AttemptRepo reads and appends attempt records.
type AttemptRepo struct {
	db *sql.DB
}

// Append stores one attempt. A missing ID or timestamp is filled in.
func (r *AttemptRepo) Append(ctx context.Context, rec *AttemptRecord) error {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
	if rec.Source == "" {
		rec.Source = SourceTemplate
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO attempts
			(id, user_id, domain, skill, difficulty, seed, source, correct, correct_answer, time_ms, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.UserID, string(rec.Domain), string(rec.Skill), string(rec.Difficulty),
		rec.Seed, rec.Source, boolToInt(rec.Correct), rec.CorrectAnswer, rec.TimeMS, rec.CreatedAt)
	if err != nil {
		return fmt.Errorf("append attempt: %w", err)
	}
	return nil
}

// Recent returns a learner's latest attempts on one skill, newest
// first.
func (r *AttemptRepo) Recent(ctx context.Context, userID string, skill skills.Skill, limit int) ([]AttemptRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, domain, skill, difficulty, seed, source, correct, correct_answer, time_ms, created_at
		FROM attempts
		WHERE user_id = ? AND skill = ?
		ORDER BY created_at DESC, id DESC
		LIMIT ?`,
		userID, string(skill), limit)
	if err != nil {
		return nil, fmt.Errorf("query recent attempts: %w", err)
	}
	defer rows.Close()

	var out []AttemptRecord
	for rows.Next() {
		rec, err := scanAttempt(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// Stats aggregates a learner's attempts per skill.
func (r *AttemptRepo) Stats(ctx context.Context, userID string) ([]SkillStats, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT domain, skill, COUNT(*), SUM(correct), AVG(time_ms)
		FROM attempts
		WHERE user_id = ?
		GROUP BY domain, skill
		ORDER BY domain, skill`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("query stats: %w", err)
	}
	defer rows.Close()

	var out []SkillStats
	for rows.Next() {
		var s SkillStats
		var domain, skill string
		if err := rows.Scan(&domain, &skill, &s.Attempts, &s.Correct, &s.AvgTimeMS); err != nil {
			return nil, fmt.Errorf("scan stats: %w", err)
		}
		s.Domain = skills.Domain(domain)
		s.Skill = skills.Skill(skill)
		out = append(out, s)
	}
	return out, rows.Err()
}

// Totals returns a learner's overall correct and attempt counts.
func (r *AttemptRepo) Totals(ctx context.Context, userID string) (correct, total int64, err error) {
	err = r.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COALESCE(SUM(correct), 0) FROM attempts WHERE user_id = ?`,
		userID).Scan(&total, &correct)
	if err != nil {
		return 0, 0, fmt.Errorf("query totals: %w", err)
	}
	return correct, total, nil
}

// Reset deletes a learner's attempt history and returns the number
// of rows removed.
func (r *AttemptRepo) Reset(ctx context.Context, userID string) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM attempts WHERE user_id = ?`, userID)
	if err != nil {
		return 0, fmt.Errorf("reset attempts: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return n, nil
}

func scanAttempt(rows *sql.Rows) (AttemptRecord, error) {
	var rec AttemptRecord
	var domain, skill, difficulty string
	var correct int
	err := rows.Scan(&rec.ID, &rec.UserID, &domain, &skill, &difficulty,
		&rec.Seed, &rec.Source, &correct, &rec.CorrectAnswer, &rec.TimeMS, &rec.CreatedAt)
	if err != nil {
		return AttemptRecord{}, fmt.Errorf("scan attempt: %w", err)
	}
	rec.Domain = skills.Domain(domain)
	rec.Skill = skills.Skill(skill)
	rec.Difficulty = skills.Difficulty(difficulty)
	rec.Correct = correct != 0
	return rec, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
