// Package adapt chooses the next difficulty tier for a learner from
// their recent attempt history.
package adapt

import (
	"context"
	"log/slog"
	"time"

	"github.com/piepengu/mathdrill/internal/skills"
)

// Attempt is the slice of an attempt record the controller consults.
type Attempt struct {
	Correct    bool
	Elapsed    time.Duration
	Difficulty skills.Difficulty
}

// History supplies a learner's most recent attempts for one skill,
// newest first.
type History interface {
	Recent(ctx context.Context, userID string, skill skills.Skill, limit int) ([]Attempt, error)
}

// Config tunes the controller.
type Config struct {
	// FastThreshold is the solve time at or under which an attempt
	// counts as fast.
	FastThreshold time.Duration

	// SkillThresholds overrides FastThreshold for individual skills.
	SkillThresholds map[skills.Skill]time.Duration

	// Window is how many recent attempts the rule consults.
	Window int
}

func (c Config) fastThreshold(skill skills.Skill) time.Duration {
	if d, ok := c.SkillThresholds[skill]; ok && d > 0 {
		return d
	}
	return c.FastThreshold
}

// DefaultConfig returns the standard tuning: a 20 second fast
// threshold over a two-attempt window.
func DefaultConfig() Config {
	return Config{
		FastThreshold: 20 * time.Second,
		Window:        2,
	}
}

// Controller recommends the next difficulty tier. The rule never
// jumps more than one tier per decision.
type Controller struct {
	cfg  Config
	hist History
	log  *slog.Logger
}

// New builds a controller. A nil logger falls back to slog.Default.
func New(cfg Config, hist History, log *slog.Logger) *Controller {
	if cfg.FastThreshold <= 0 {
		cfg.FastThreshold = DefaultConfig().FastThreshold
	}
	if cfg.Window <= 0 {
		cfg.Window = DefaultConfig().Window
	}
	if log == nil {
		log = slog.Default()
	}
	return &Controller{cfg: cfg, hist: hist, log: log}
}

// Next recommends the difficulty for a learner's next item on one
// skill. A failed or empty history read holds at medium rather than
// surfacing an error.
func (c *Controller) Next(ctx context.Context, userID string, skill skills.Skill) skills.Difficulty {
	recent, err := c.hist.Recent(ctx, userID, skill, c.cfg.Window)
	if err != nil {
		c.log.Warn("history read failed, holding at medium",
			"user_id", userID,
			"skill", string(skill),
			"error", err)
		return skills.Medium
	}

	next, branch := Decide(c.cfg, skill, recent)
	c.log.Info("difficulty decision",
		"user_id", userID,
		"skill", string(skill),
		"consulted", len(recent),
		"branch", branch,
		"difficulty", string(next))
	return next
}

// Decide applies the adjustment rule to a window of attempts, newest
// first. With fewer attempts than the rule needs it holds at medium.
// Otherwise the current tier is the most recent attempt's tier:
// every consulted attempt correct and fast promotes, any incorrect
// attempt or an all-slow window demotes, anything else holds.
func Decide(cfg Config, skill skills.Skill, recent []Attempt) (skills.Difficulty, string) {
	if len(recent) < cfg.Window {
		return skills.Medium, "cold_start"
	}
	recent = recent[:cfg.Window]

	current := recent[0].Difficulty
	if !current.Valid() {
		current = skills.Medium
	}

	threshold := cfg.fastThreshold(skill)
	allCorrectFast := true
	anyWrong := false
	allSlow := true
	for _, a := range recent {
		fast := a.Elapsed <= threshold
		if !a.Correct {
			anyWrong = true
		}
		if !a.Correct || !fast {
			allCorrectFast = false
		}
		if fast {
			allSlow = false
		}
	}

	switch {
	case allCorrectFast:
		return current.Promote(), "promote"
	case anyWrong || allSlow:
		return current.Demote(), "demote"
	default:
		return current, "hold"
	}
}
