package grader

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/piepengu/mathdrill/internal/skills"
)

// Tolerance band for numeric comparison. The relative term scales with
// the canonical magnitude so very large and very small answers are
// both checked sensibly; the absolute term covers answers near zero.
const (
	absTolerance = 1e-9
	relTolerance = 1e-6
)

// equivalent reports whether a submitted free-response answer matches
// the canonical one under the skill's answer shape.
func equivalent(submitted, canonical string, info skills.Info) bool {
	switch info.Kind {
	case skills.KindPair:
		return tuplesEqual(submitted, canonical, 2, info.OrderFree)
	case skills.KindTriple:
		return tuplesEqual(submitted, canonical, 3, info.OrderFree)
	default:
		return scalarsEqual(submitted, canonical)
	}
}

// scalarsEqual compares two scalar answers numerically, accepting
// integers, decimals, and fractions like "-3/2".
func scalarsEqual(submitted, canonical string) bool {
	a, err := ParseNumber(submitted)
	if err != nil {
		return false
	}
	b, err := ParseNumber(canonical)
	if err != nil {
		// Canonical answers are generator-produced; a parse failure
		// here means a non-numeric answer, compared textually.
		return strings.TrimSpace(submitted) == strings.TrimSpace(canonical)
	}
	return closeEnough(a, b)
}

func closeEnough(a, b float64) bool {
	return math.Abs(a-b) <= absTolerance+relTolerance*math.Max(math.Abs(a), math.Abs(b))
}

// ParseNumber parses an integer, decimal, or a/b fraction.
func ParseNumber(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty number")
	}

	if num, den, ok := strings.Cut(s, "/"); ok {
		n, err := strconv.ParseFloat(strings.TrimSpace(num), 64)
		if err != nil {
			return 0, fmt.Errorf("invalid numerator %q", num)
		}
		d, err := strconv.ParseFloat(strings.TrimSpace(den), 64)
		if err != nil {
			return 0, fmt.Errorf("invalid denominator %q", den)
		}
		if d == 0 {
			return 0, fmt.Errorf("zero denominator")
		}
		return n / d, nil
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q", s)
	}
	return v, nil
}

// tuplesEqual compares coordinate answers like "(2, -1)", accepting
// "2,-1", "2 -1", and parenthesized forms. When orderFree is set the
// components are sorted before comparison so "(3, 1)" matches "(1, 3)".
func tuplesEqual(submitted, canonical string, arity int, orderFree bool) bool {
	a, err := ParseTuple(submitted, arity)
	if err != nil {
		return false
	}
	b, err := ParseTuple(canonical, arity)
	if err != nil {
		return false
	}
	if orderFree {
		sort.Float64s(a)
		sort.Float64s(b)
	}
	for i := range a {
		if !closeEnough(a[i], b[i]) {
			return false
		}
	}
	return true
}

// ParseTuple extracts exactly arity numbers from a coordinate string.
func ParseTuple(s string, arity int) ([]float64, error) {
	s = strings.NewReplacer("(", "", ")", "").Replace(strings.TrimSpace(s))

	var parts []string
	if strings.Contains(s, ",") {
		parts = strings.Split(s, ",")
	} else {
		parts = strings.Fields(s)
	}

	fields := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			fields = append(fields, p)
		}
	}
	if len(fields) != arity {
		return nil, fmt.Errorf("expected %d values, got %d", arity, len(fields))
	}

	out := make([]float64, arity)
	for i, f := range fields {
		v, err := ParseNumber(f)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}
