package skills

import "fmt"

// Difficulty is the tier the adaptive controller adjusts.
type Difficulty string

const (
	Easy   Difficulty = "easy"
	Medium Difficulty = "medium"
	Hard   Difficulty = "hard"
)

// AllDifficulties returns the tiers from easiest to hardest.
func AllDifficulties() []Difficulty {
	return []Difficulty{Easy, Medium, Hard}
}

// ParseDifficulty validates a difficulty tag from untrusted input.
func ParseDifficulty(s string) (Difficulty, error) {
	switch Difficulty(s) {
	case Easy, Medium, Hard:
		return Difficulty(s), nil
	}
	return "", fmt.Errorf("unknown difficulty: %q", s)
}

// Valid reports whether d is a known tier.
func (d Difficulty) Valid() bool {
	switch d {
	case Easy, Medium, Hard:
		return true
	}
	return false
}

// Promote returns the next tier up, clamped at Hard.
func (d Difficulty) Promote() Difficulty {
	switch d {
	case Easy:
		return Medium
	case Medium:
		return Hard
	default:
		return Hard
	}
}

// Demote returns the next tier down, clamped at Easy.
func (d Difficulty) Demote() Difficulty {
	switch d {
	case Hard:
		return Medium
	case Medium:
		return Easy
	default:
		return Easy
	}
}
