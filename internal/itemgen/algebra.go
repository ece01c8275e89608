package itemgen

import (
	"fmt"
	"math/rand/v2"
	"strconv"

	"github.com/piepengu/mathdrill/internal/skills"
)

// span is an inclusive integer range.
type span struct {
	lo, hi int
}

func (s span) draw(r *rand.Rand) int {
	return intn(r, s.lo, s.hi)
}

// linearEquationGen produces a(x + b) = c with an integer root chosen
// first, so the instance is always exactly solvable.
type linearEquationGen struct{}

func (linearEquationGen) generate(r *rand.Rand, d skills.Difficulty) (Item, bool) {
	var coeff, root span
	switch d {
	case skills.Easy:
		coeff, root = span{2, 5}, span{-5, 5}
	case skills.Hard:
		coeff, root = span{2, 12}, span{-15, 15}
	default:
		coeff, root = span{2, 9}, span{-9, 9}
	}

	a := coeff.draw(r)
	x := root.draw(r)
	b := root.draw(r)
	c := a * (x + b)

	return Item{
		Prompt: fmt.Sprintf("Solve for x: %d(x %+d) = %d", a, b, c),
		Answer: strconv.Itoa(x),
		Steps: []string{
			fmt.Sprintf("Distribute: %dx %+d = %d", a, a*b, c),
			fmt.Sprintf("Subtract %+d from both sides: %dx = %d", a*b, a, c-a*b),
			fmt.Sprintf("Divide by %d: x = %d", a, x),
		},
	}, true
}

// linearEquationMCGen wraps linearEquationGen and attaches choices.
// Distractor policy: one small arithmetic slip, one sign flip, one
// stopped-early/larger slip. Collisions with the answer or each other
// are repaired deterministically, and the correct position comes from
// a seed-derived shuffle.
type linearEquationMCGen struct{}

func (linearEquationMCGen) generate(r *rand.Rand, d skills.Difficulty) (Item, bool) {
	base, ok := linearEquationGen{}.generate(r, d)
	if !ok {
		return Item{}, false
	}
	sol, err := strconv.Atoi(base.Answer)
	if err != nil {
		return Item{}, false
	}

	slip := sol + pick(r, -2, -1, 1, 2)
	flip := -sol
	early := sol + pick(r, 3, -3)
	ds := distinctInts(sol, slip, flip, early)

	options := []int{sol, ds[0], ds[1], ds[2]}
	r.Shuffle(len(options), func(i, j int) {
		options[i], options[j] = options[j], options[i]
	})

	choices := make([]string, len(options))
	why := make([]string, len(options))
	correct := 0
	for i, v := range options {
		choices[i] = strconv.Itoa(v)
		switch v {
		case sol:
			correct = i
			why[i] = "Correct: it satisfies the equation after distribution and isolation."
		case ds[1]:
			why[i] = "Sign error when moving terms across the equals sign."
		case ds[0]:
			why[i] = "Arithmetic slip (off by one or two) during the add or subtract step."
		default:
			why[i] = "Stopped early or misapplied the division step."
		}
	}

	base.Kind = skills.KindChoice
	base.Choices = choices
	base.CorrectIndex = correct
	base.WhyIncorrect = why
	return base, true
}

// twoStepEquationGen produces ax + b = c with an integer root.
type twoStepEquationGen struct{}

func (twoStepEquationGen) generate(r *rand.Rand, d skills.Difficulty) (Item, bool) {
	var coeff, root span
	switch d {
	case skills.Easy:
		coeff, root = span{2, 5}, span{-5, 5}
	case skills.Hard:
		coeff, root = span{2, 12}, span{-15, 15}
	default:
		coeff, root = span{2, 9}, span{-9, 9}
	}

	a := coeff.draw(r)
	x := root.draw(r)
	b := root.draw(r)
	c := a*x + b

	return Item{
		Prompt: fmt.Sprintf("Solve for x: %dx %+d = %d", a, b, c),
		Answer: strconv.Itoa(x),
		Steps: []string{
			fmt.Sprintf("Subtract %+d from both sides: %dx = %d", b, a, c-b),
			fmt.Sprintf("Divide by %d: x = %d", a, x),
		},
	}, true
}

// linearSystem2x2Gen produces a 2x2 system with an integer solution
// chosen first. A zero determinant is a degenerate draw.
type linearSystem2x2Gen struct{}

func (linearSystem2x2Gen) generate(r *rand.Rand, d skills.Difficulty) (Item, bool) {
	var sol, coeff span
	switch d {
	case skills.Easy:
		sol, coeff = span{-3, 3}, span{-3, 3}
	case skills.Hard:
		sol, coeff = span{-9, 9}, span{-9, 9}
	default:
		sol, coeff = span{-5, 5}, span{-5, 5}
	}

	x0 := sol.draw(r)
	y0 := sol.draw(r)

	a := nonZero(coeff.draw(r), 1)
	b := nonZero(coeff.draw(r), 2)
	c := nonZero(coeff.draw(r), -2)
	dd := nonZero(coeff.draw(r), 3)
	det := a*dd - b*c
	if det == 0 {
		return Item{}, false
	}

	e := a*x0 + b*y0
	f := c*x0 + dd*y0

	return Item{
		Prompt: fmt.Sprintf("Solve the system for (x, y): %dx %+dy = %d ; %dx %+dy = %d", a, b, e, c, dd, f),
		Answer: fmt.Sprintf("(%d, %d)", x0, y0),
		Steps: []string{
			"Use elimination or Cramer's rule to solve.",
			fmt.Sprintf("Determinant: %d*%d - %d*%d = %d", a, dd, b, c, det),
			fmt.Sprintf("Solution: x = %d, y = %d", x0, y0),
		},
	}, true
}

// nonZero substitutes fallback when v is zero, mirroring how the
// coefficient draws avoid degenerate zero terms without consuming
// extra randomness.
func nonZero(v, fallback int) int {
	if v == 0 {
		return fallback
	}
	return v
}
