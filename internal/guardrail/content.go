package guardrail

import (
	"fmt"
	"math"
	"regexp"
	"strconv"

	"github.com/piepengu/mathdrill/internal/grader"
	"github.com/piepengu/mathdrill/internal/skills"
)

// contentStage independently recomputes the declared correct answer
// from the prompt where the prompt's structure allows it. Prompts
// that cannot be parsed into a known equation form pass through
// silently; a parsed prompt whose recomputed answer disagrees with
// the declared choice is rejected.
type contentStage struct{}

func (s *contentStage) name() string { return "content" }

// Recognized equation forms in candidate prompts.
var (
	// a(x + b) = c
	linearParenRe = regexp.MustCompile(`(-?\d+)\s*\(\s*x\s*([+-])\s*(\d+)\s*\)\s*=\s*(-?\d+)`)

	// ax + b = c
	twoStepRe = regexp.MustCompile(`(-?\d+)\s*x\s*([+-])\s*(\d+)\s*=\s*(-?\d+)`)

	// legs 3 and 4, legs of length 3 and 4
	legsRe = regexp.MustCompile(`legs?\s+(?:of\s+(?:length\s+)?)?(\d+)\s+and\s+(\d+)`)

	hypotenuseRe = regexp.MustCompile(`(?i)hypotenuse`)

	// Plain binary arithmetic, guarded against matching fraction bars.
	plainArithRe = regexp.MustCompile(`(?:^|[^\d/(])(-?\d+(?:\.\d+)?)\s*([+\-*×])\s*(-?\d+(?:\.\d+)?)\s*[?=]`)
)

func (s *contentStage) check(c *Candidate, _ skills.Info) *stageError {
	declared, err := grader.ParseNumber(c.Choices[c.CorrectIndex])
	if err != nil {
		// Tuple-valued choices are shape-checked upstream; equation
		// recomputation only covers scalar answers.
		return nil
	}

	computed, ok := recomputeAnswer(c)
	if !ok {
		return nil
	}
	if math.Abs(computed-declared) > 1e-6 {
		return &stageError{
			Reason:  ReasonContentInvalid,
			Message: fmt.Sprintf("recomputed %0.4g but candidate declares %0.4g", computed, declared),
		}
	}
	return nil
}

// recomputeAnswer derives the answer from the prompt text. The second
// return is false when no recognized form is present.
func recomputeAnswer(c *Candidate) (float64, bool) {
	if m := linearParenRe.FindStringSubmatch(c.Prompt); m != nil {
		a, _ := strconv.ParseFloat(m[1], 64)
		b, _ := strconv.ParseFloat(m[3], 64)
		rhs, _ := strconv.ParseFloat(m[4], 64)
		if m[2] == "-" {
			b = -b
		}
		if a == 0 {
			return 0, false
		}
		return rhs/a - b, true
	}

	if m := twoStepRe.FindStringSubmatch(c.Prompt); m != nil {
		a, _ := strconv.ParseFloat(m[1], 64)
		b, _ := strconv.ParseFloat(m[3], 64)
		rhs, _ := strconv.ParseFloat(m[4], 64)
		if m[2] == "-" {
			b = -b
		}
		if a == 0 {
			return 0, false
		}
		return (rhs - b) / a, true
	}

	if hypotenuseRe.MatchString(c.Prompt) {
		var legA, legB float64
		switch {
		case c.Diagram != nil && c.Diagram.LegA > 0 && c.Diagram.LegB > 0:
			legA, legB = float64(c.Diagram.LegA), float64(c.Diagram.LegB)
		default:
			m := legsRe.FindStringSubmatch(c.Prompt)
			if m == nil {
				return 0, false
			}
			legA, _ = strconv.ParseFloat(m[1], 64)
			legB, _ = strconv.ParseFloat(m[2], 64)
		}
		return math.Sqrt(legA*legA + legB*legB), true
	}

	if m := plainArithRe.FindStringSubmatch(c.Prompt); m != nil {
		a, _ := strconv.ParseFloat(m[1], 64)
		b, _ := strconv.ParseFloat(m[3], 64)
		switch m[2] {
		case "+":
			return a + b, true
		case "-":
			return a - b, true
		case "*", "×":
			return a * b, true
		}
	}

	return 0, false
}
