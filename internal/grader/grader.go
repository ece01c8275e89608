package grader

import (
	"fmt"

	"github.com/piepengu/mathdrill/internal/itemgen"
	"github.com/piepengu/mathdrill/internal/skills"
)

// Submission is a learner's answer to one item. Exactly one of Answer
// or ChoiceIndex is meaningful, depending on the item's format.
type Submission struct {
	// Answer is the free-response text ("7", "-3/2", "(2, -1)").
	Answer string

	// ChoiceIndex is the selected option for multiple-choice items.
	// Negative or out-of-range indexes grade as incorrect.
	ChoiceIndex int
}

// Result is the verdict for one submission. Correctness is strictly
// binary; Steps is always the generator's precomputed explanation.
type Result struct {
	Correct       bool     `json:"correct"`
	CorrectAnswer string   `json:"correct_answer"`
	Steps         []string `json:"explanation_steps"`

	// WhySelected explains the selected choice on multiple-choice
	// items (empty for free-response or when no choice was selected).
	WhySelected string `json:"why_selected,omitempty"`
}

// Grade regenerates the item for the (skill, difficulty, seed) key and
// checks the submission against its canonical answer. The item is
// never taken from the caller, so a tampered prompt or answer key in
// the request cannot change the verdict.
func Grade(skill skills.Skill, difficulty skills.Difficulty, seed int64, sub Submission) (*Result, error) {
	item, err := itemgen.Generate(skill, difficulty, seed)
	if err != nil {
		return nil, fmt.Errorf("regenerate item: %w", err)
	}
	return GradeItem(item, sub), nil
}

// GradeItem checks a submission against an already generated item.
func GradeItem(item *itemgen.Item, sub Submission) *Result {
	res := &Result{
		CorrectAnswer: item.Answer,
		Steps:         item.Steps,
	}

	if item.IsMultipleChoice() {
		if sub.ChoiceIndex < 0 || sub.ChoiceIndex >= len(item.Choices) {
			res.WhySelected = "No choice selected."
			return res
		}
		res.Correct = sub.ChoiceIndex == item.CorrectIndex
		if sub.ChoiceIndex < len(item.WhyIncorrect) {
			res.WhySelected = item.WhyIncorrect[sub.ChoiceIndex]
		}
		return res
	}

	info, _ := skills.Lookup(item.Skill)
	res.Correct = equivalent(sub.Answer, item.Answer, info)
	return res
}
