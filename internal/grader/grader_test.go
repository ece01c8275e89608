package grader

import (
	"strconv"
	"strings"
	"testing"

	"github.com/piepengu/mathdrill/internal/itemgen"
	"github.com/piepengu/mathdrill/internal/skills"
)

func TestGradeSoundness(t *testing.T) {
	// The canonical answer of every generated item must grade correct.
	for _, sk := range skills.All() {
		for _, diff := range skills.AllDifficulties() {
			for seed := int64(1); seed <= 20; seed++ {
				item, err := itemgen.Generate(sk, diff, seed)
				if err != nil {
					t.Fatalf("generate %s/%s seed %d: %v", sk, diff, seed, err)
				}

				var sub Submission
				if item.IsMultipleChoice() {
					sub = Submission{ChoiceIndex: item.CorrectIndex}
				} else {
					sub = Submission{Answer: item.Answer, ChoiceIndex: -1}
				}

				res, err := Grade(sk, diff, seed, sub)
				if err != nil {
					t.Fatalf("grade %s/%s seed %d: %v", sk, diff, seed, err)
				}
				if !res.Correct {
					t.Errorf("%s/%s seed %d: canonical answer %q graded incorrect", sk, diff, seed, item.Answer)
				}
				if res.CorrectAnswer != item.Answer {
					t.Errorf("%s/%s seed %d: echoed answer %q, want %q", sk, diff, seed, res.CorrectAnswer, item.Answer)
				}
			}
		}
	}
}

func TestGradeEquivalentForms(t *testing.T) {
	item, err := itemgen.Generate(skills.LinearEquation, skills.Medium, 3)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	sol, err := strconv.Atoi(item.Answer)
	if err != nil {
		t.Fatalf("non-integer canonical answer %q", item.Answer)
	}

	forms := []string{
		"  " + item.Answer + "  ",
		item.Answer + ".0",
		strconv.Itoa(sol*2) + "/2",
	}
	for _, form := range forms {
		res, err := Grade(skills.LinearEquation, skills.Medium, 3, Submission{Answer: form})
		if err != nil {
			t.Fatalf("grade: %v", err)
		}
		if !res.Correct {
			t.Errorf("form %q should grade correct for %q", form, item.Answer)
		}
	}

	res, err := Grade(skills.LinearEquation, skills.Medium, 3, Submission{Answer: strconv.Itoa(sol + 1)})
	if err != nil {
		t.Fatalf("grade: %v", err)
	}
	if res.Correct {
		t.Error("off-by-one answer graded correct")
	}
}

func TestGradeQuadraticOrderFree(t *testing.T) {
	item, err := itemgen.Generate(skills.QuadraticRoots, skills.Medium, 42)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	roots, err := ParseTuple(item.Answer, 2)
	if err != nil {
		t.Fatalf("parse canonical %q: %v", item.Answer, err)
	}

	hasFactorStep := false
	for _, s := range item.Steps {
		if strings.Contains(s, "Factor") {
			hasFactorStep = true
		}
	}
	if !hasFactorStep {
		t.Error("quadratic solution should include a factoring step")
	}

	// Reversed order is the same root set.
	reversed := "(" + trimFloat(roots[1]) + ", " + trimFloat(roots[0]) + ")"
	res, err := Grade(skills.QuadraticRoots, skills.Medium, 42, Submission{Answer: reversed})
	if err != nil {
		t.Fatalf("grade: %v", err)
	}
	if !res.Correct {
		t.Errorf("reversed roots %q should grade correct for %q", reversed, item.Answer)
	}

	// Negating a root changes the set unless it was symmetric.
	if roots[0] != -roots[1] {
		negated := "(" + trimFloat(-roots[0]) + ", " + trimFloat(roots[1]) + ")"
		res, err := Grade(skills.QuadraticRoots, skills.Medium, 42, Submission{Answer: negated})
		if err != nil {
			t.Fatalf("grade: %v", err)
		}
		if res.Correct {
			t.Errorf("negated root %q graded correct against %q", negated, item.Answer)
		}
	}
}

func TestGradeOrderedPairStrict(t *testing.T) {
	// 2x2 system solutions are coordinates; order matters.
	for seed := int64(1); seed <= 20; seed++ {
		item, err := itemgen.Generate(skills.LinearSystem2x2, skills.Medium, seed)
		if err != nil {
			t.Fatalf("generate: %v", err)
		}
		vals, err := ParseTuple(item.Answer, 2)
		if err != nil {
			t.Fatalf("parse %q: %v", item.Answer, err)
		}
		if vals[0] == vals[1] {
			continue
		}

		swapped := "(" + trimFloat(vals[1]) + ", " + trimFloat(vals[0]) + ")"
		res, err := Grade(skills.LinearSystem2x2, skills.Medium, seed, Submission{Answer: swapped})
		if err != nil {
			t.Fatalf("grade: %v", err)
		}
		if res.Correct {
			t.Errorf("seed %d: swapped pair %q graded correct against %q", seed, swapped, item.Answer)
		}
	}
}

func TestGradeMultipleChoice(t *testing.T) {
	item, err := itemgen.Generate(skills.LinearEquationMC, skills.Medium, 9)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	wrong := (item.CorrectIndex + 1) % len(item.Choices)
	res, err := Grade(skills.LinearEquationMC, skills.Medium, 9, Submission{ChoiceIndex: wrong})
	if err != nil {
		t.Fatalf("grade: %v", err)
	}
	if res.Correct {
		t.Error("wrong choice graded correct")
	}
	if res.WhySelected == "" {
		t.Error("wrong choice should explain the represented mistake")
	}

	res, err = Grade(skills.LinearEquationMC, skills.Medium, 9, Submission{ChoiceIndex: -1})
	if err != nil {
		t.Fatalf("grade: %v", err)
	}
	if res.Correct {
		t.Error("no selection graded correct")
	}

	res, err = Grade(skills.LinearEquationMC, skills.Medium, 9, Submission{ChoiceIndex: 99})
	if err != nil {
		t.Fatalf("grade: %v", err)
	}
	if res.Correct {
		t.Error("out-of-range selection graded correct")
	}
}

func TestGradeTamperedKeyIgnored(t *testing.T) {
	// Grading regenerates from the key, so a caller-supplied item
	// cannot change the verdict. An unknown seed shape simply yields
	// a different instance, never an exploitable answer.
	item, err := itemgen.Generate(skills.UnitRate, skills.Easy, 4)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	res, err := Grade(skills.UnitRate, skills.Easy, 4, Submission{Answer: item.Answer})
	if err != nil {
		t.Fatalf("grade: %v", err)
	}
	if !res.Correct {
		t.Errorf("canonical decimal answer %q graded incorrect", item.Answer)
	}
}

func trimFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
