package guardrail

import (
	"fmt"
	"strings"

	"github.com/piepengu/mathdrill/internal/grader"
	"github.com/piepengu/mathdrill/internal/skills"
)

// structuralStage checks that every choice is well formed for the
// skill's answer shape, that the choices are pairwise distinct, and
// that any attached diagram is geometrically sane.
type structuralStage struct{}

func (s *structuralStage) name() string { return "structural" }

func (s *structuralStage) check(c *Candidate, info skills.Info) *stageError {
	if c.CorrectIndex < 0 || c.CorrectIndex >= len(c.Choices) {
		return &stageError{
			Reason:  ReasonContentInvalid,
			Message: fmt.Sprintf("correct_index %d out of range for %d choices", c.CorrectIndex, len(c.Choices)),
		}
	}

	for i, choice := range c.Choices {
		if err := checkChoiceShape(choice, info); err != nil {
			return &stageError{
				Reason:  ReasonContentInvalid,
				Message: fmt.Sprintf("choice %d %q: %v", i, choice, err),
			}
		}
	}

	seen := make(map[string]int, len(c.Choices))
	for i, choice := range c.Choices {
		key := normalizeChoice(choice)
		if j, dup := seen[key]; dup {
			return &stageError{
				Reason:  ReasonContentInvalid,
				Message: fmt.Sprintf("choices %d and %d are duplicates after normalization", j, i),
			}
		}
		seen[key] = i
	}

	if c.Diagram != nil {
		if c.Diagram.Type != "right_triangle" {
			return &stageError{
				Reason:  ReasonContentInvalid,
				Message: fmt.Sprintf("unsupported diagram type %q", c.Diagram.Type),
			}
		}
		if c.Diagram.LegA <= 0 || c.Diagram.LegB <= 0 || (c.Diagram.Hyp != 0 && c.Diagram.Hyp <= 0) {
			return &stageError{
				Reason:  ReasonContentInvalid,
				Message: "diagram sides must be positive",
			}
		}
	}

	return nil
}

// checkChoiceShape verifies one choice parses under the skill's
// answer shape: a number for scalar skills, a coordinate tuple for
// pair and triple skills.
func checkChoiceShape(choice string, info skills.Info) error {
	switch info.Kind {
	case skills.KindPair:
		_, err := grader.ParseTuple(choice, 2)
		return err
	case skills.KindTriple:
		_, err := grader.ParseTuple(choice, 3)
		return err
	default:
		_, err := grader.ParseNumber(choice)
		return err
	}
}

// normalizeChoice collapses formatting so "(3, 4)" and "3,4" count as
// the same option.
func normalizeChoice(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.NewReplacer("(", "", ")", "", " ", "").Replace(s)
	return s
}
