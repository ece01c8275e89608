package itemgen

import (
	"fmt"
	"math/rand/v2"
	"strconv"

	"github.com/piepengu/mathdrill/internal/skills"
)

// quadraticRootsGen builds a quadratic from two distinct integer roots
// and a small leading coefficient, biased toward monic so the numbers
// stay friendly. Equal roots are a degenerate draw.
type quadraticRootsGen struct{}

func (quadraticRootsGen) generate(r *rand.Rand, d skills.Difficulty) (Item, bool) {
	var root span
	var lead []int
	switch d {
	case skills.Easy:
		root, lead = span{-3, 3}, []int{1}
	case skills.Hard:
		root, lead = span{-9, 9}, []int{1, 2, 2, 3}
	default:
		root, lead = span{-5, 5}, []int{1, 1, 1, 2, 3}
	}

	r1 := root.draw(r)
	r2 := root.draw(r)
	a := pick(r, lead...)
	if r1 == r2 {
		return Item{}, false
	}
	if r1 > r2 {
		r1, r2 = r2, r1
	}

	// a(x - r1)(x - r2) = ax^2 + bx + c
	b := -a * (r1 + r2)
	c := a * r1 * r2

	factored := fmt.Sprintf("(x %+d)(x %+d) = 0", -r1, -r2)
	if a != 1 {
		factored = fmt.Sprintf("%d(x %+d)(x %+d) = 0", a, -r1, -r2)
	}

	return Item{
		Prompt: fmt.Sprintf("Solve for x: %s = 0", formatQuadratic(a, b, c)),
		Answer: fmt.Sprintf("(%d, %d)", r1, r2),
		Steps: []string{
			"Factor: " + factored,
			fmt.Sprintf("Set each factor to zero: x %+d = 0 or x %+d = 0", -r1, -r2),
			fmt.Sprintf("Therefore, x = %d or x = %d", r1, r2),
		},
	}, true
}

// formatQuadratic renders ax^2 + bx + c with conventional signs and
// without a printed unit coefficient.
func formatQuadratic(a, b, c int) string {
	head := "x^2"
	if a != 1 {
		head = fmt.Sprintf("%dx^2", a)
	}
	return fmt.Sprintf("%s %+dx %+d", head, b, c)
}

// exponentialSolveGen produces a * b^x = c with a non-negative integer
// exponent so all values stay integral.
type exponentialSolveGen struct{}

func (exponentialSolveGen) generate(r *rand.Rand, d skills.Difficulty) (Item, bool) {
	var base, exp span
	switch d {
	case skills.Easy:
		base, exp = span{2, 3}, span{0, 2}
	case skills.Hard:
		base, exp = span{2, 6}, span{0, 5}
	default:
		base, exp = span{2, 5}, span{0, 3}
	}

	b := base.draw(r)
	x := exp.draw(r)
	a := pick(r, 1, 2, 3, 4)

	pow := 1
	for range x {
		pow *= b
	}
	c := a * pow

	return Item{
		Prompt: fmt.Sprintf("Solve for x: %d * %d^x = %d", a, b, c),
		Answer: strconv.Itoa(x),
		Steps: []string{
			fmt.Sprintf("Divide both sides by %d: %d^x = %d", a, b, pow),
			fmt.Sprintf("Since %d^%d = %d, x = %d", b, x, pow, x),
		},
	}, true
}

// rationalEquationGen produces a/(x + b) = c built from an integer
// solution. A zero denominator at the solution is a degenerate draw.
type rationalEquationGen struct{}

func (rationalEquationGen) generate(r *rand.Rand, d skills.Difficulty) (Item, bool) {
	var root span
	var rhs span
	switch d {
	case skills.Easy:
		root, rhs = span{-5, 5}, span{1, 3}
	case skills.Hard:
		root, rhs = span{-15, 15}, span{1, 6}
	default:
		root, rhs = span{-9, 9}, span{1, 4}
	}

	x := root.draw(r)
	b := root.draw(r)
	c := rhs.draw(r)
	if x+b == 0 {
		return Item{}, false
	}
	a := c * (x + b)

	return Item{
		Prompt: fmt.Sprintf("Solve for x: %d/(x %+d) = %d", a, b, c),
		Answer: strconv.Itoa(x),
		Steps: []string{
			fmt.Sprintf("Multiply both sides by (x %+d): %d = %d(x %+d)", b, a, c, b),
			fmt.Sprintf("Divide by %d: x %+d = %d", c, b, a/c),
			fmt.Sprintf("Subtract %+d: x = %d", b, x),
		},
	}, true
}

// linearSystem3x3Gen produces a 3x3 system with an integer solution
// chosen first. A singular coefficient matrix is a degenerate draw.
type linearSystem3x3Gen struct{}

func (linearSystem3x3Gen) generate(r *rand.Rand, d skills.Difficulty) (Item, bool) {
	var sol, coeff span
	switch d {
	case skills.Easy:
		sol, coeff = span{-2, 2}, span{-2, 2}
	case skills.Hard:
		sol, coeff = span{-6, 6}, span{-5, 5}
	default:
		sol, coeff = span{-4, 4}, span{-4, 4}
	}

	x0 := sol.draw(r)
	y0 := sol.draw(r)
	z0 := sol.draw(r)

	var m [3][3]int
	fallbacks := [3][3]int{{1, 2, -1}, {-2, 3, 1}, {1, -1, 2}}
	for i := range 3 {
		for j := range 3 {
			m[i][j] = nonZero(coeff.draw(r), fallbacks[i][j])
		}
	}
	det := det3(m)
	if det == 0 {
		return Item{}, false
	}

	var rhs [3]int
	for i := range 3 {
		rhs[i] = m[i][0]*x0 + m[i][1]*y0 + m[i][2]*z0
	}

	eqs := make([]string, 3)
	for i := range 3 {
		eqs[i] = fmt.Sprintf("%dx %+dy %+dz = %d", m[i][0], m[i][1], m[i][2], rhs[i])
	}

	return Item{
		Prompt: fmt.Sprintf("Solve the system for (x, y, z): %s ; %s ; %s", eqs[0], eqs[1], eqs[2]),
		Answer: fmt.Sprintf("(%d, %d, %d)", x0, y0, z0),
		Steps: []string{
			"Eliminate one variable at a time, or use matrix methods.",
			fmt.Sprintf("Coefficient determinant: %d (nonzero, so the solution is unique)", det),
			fmt.Sprintf("Solution: x = %d, y = %d, z = %d", x0, y0, z0),
		},
	}, true
}

// det3 computes the determinant of a 3x3 integer matrix.
func det3(m [3][3]int) int {
	return m[0][0]*(m[1][1]*m[2][2]-m[1][2]*m[2][1]) -
		m[0][1]*(m[1][0]*m[2][2]-m[1][2]*m[2][0]) +
		m[0][2]*(m[1][0]*m[2][1]-m[1][1]*m[2][0])
}
