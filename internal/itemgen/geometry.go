package itemgen

import (
	"fmt"
	"math"
	"math/rand/v2"
	"strconv"

	"github.com/piepengu/mathdrill/internal/skills"
)

// pythagoreanTriples are the primitive (and one near-primitive)
// triples the right-triangle skills scale from, so every instance has
// an integer answer.
var pythagoreanTriples = [][3]int{
	{3, 4, 5},
	{5, 12, 13},
	{7, 24, 25},
	{8, 15, 17},
	{9, 12, 15},
}

func tripleScale(d skills.Difficulty) span {
	switch d {
	case skills.Easy:
		return span{1, 2}
	case skills.Hard:
		return span{2, 8}
	default:
		return span{1, 5}
	}
}

type pythagoreanHypotenuseGen struct{}

func (pythagoreanHypotenuseGen) generate(r *rand.Rand, d skills.Difficulty) (Item, bool) {
	t := pick(r, pythagoreanTriples...)
	k := tripleScale(d).draw(r)
	leg1, leg2, hyp := t[0]*k, t[1]*k, t[2]*k

	return Item{
		Prompt: fmt.Sprintf("A right triangle has legs %d and %d. Find the length of the hypotenuse.", leg1, leg2),
		Answer: strconv.Itoa(hyp),
		Steps: []string{
			fmt.Sprintf("Use a^2 + b^2 = c^2: %d^2 + %d^2 = c^2", leg1, leg2),
			fmt.Sprintf("Compute: %d + %d = %d = c^2", leg1*leg1, leg2*leg2, hyp*hyp),
			fmt.Sprintf("Take the square root: c = %d", hyp),
		},
		Diagram: rightTriangleDiagram(leg1, leg2, strconv.Itoa(leg1), strconv.Itoa(leg2), "?"),
	}, true
}

type pythagoreanLegGen struct{}

func (pythagoreanLegGen) generate(r *rand.Rand, d skills.Difficulty) (Item, bool) {
	t := pick(r, pythagoreanTriples...)
	k := tripleScale(d).draw(r)
	known, other, hyp := t[0]*k, t[1]*k, t[2]*k

	return Item{
		Prompt: fmt.Sprintf("A right triangle has hypotenuse %d and one leg %d. Find the other leg.", hyp, known),
		Answer: strconv.Itoa(other),
		Steps: []string{
			fmt.Sprintf("Use c^2 - a^2 = b^2: %d^2 - %d^2 = b^2", hyp, known),
			fmt.Sprintf("Compute: %d - %d = %d = b^2", hyp*hyp, known*known, other*other),
			fmt.Sprintf("Take the square root: b = %d", other),
		},
		Diagram: rightTriangleDiagram(known, other, strconv.Itoa(known), "?", strconv.Itoa(hyp)),
	}, true
}

// rightTriangleDiagram places the right angle at the origin with the
// legs along the axes, so the coordinates follow directly from the
// prompt's side lengths.
func rightTriangleDiagram(legA, legB int, labelA, labelB, labelC string) *DiagramSpec {
	return &DiagramSpec{
		Type: "right_triangle",
		Points: map[string][2]float64{
			"A": {0, 0},
			"B": {float64(legA), 0},
			"C": {0, float64(legB)},
		},
		Labels: map[string]string{
			"a": labelA,
			"b": labelB,
			"c": labelC,
		},
		AngleMarkers: []AngleMarker{
			{At: "A", Style: "right"},
		},
	}
}

type rectangleAreaGen struct{}

func (rectangleAreaGen) generate(r *rand.Rand, d skills.Difficulty) (Item, bool) {
	w, h, ok := rectangleSides(r, d)
	if !ok {
		return Item{}, false
	}
	area := w * h

	return Item{
		Prompt: fmt.Sprintf("A rectangle is %d units wide and %d units tall. What is its area?", w, h),
		Answer: strconv.Itoa(area),
		Steps: []string{
			fmt.Sprintf("Multiply width by height: %d * %d = %d", w, h, area),
		},
		Diagram: rectangleDiagram(w, h),
	}, true
}

type rectanglePerimeterGen struct{}

func (rectanglePerimeterGen) generate(r *rand.Rand, d skills.Difficulty) (Item, bool) {
	w, h, ok := rectangleSides(r, d)
	if !ok {
		return Item{}, false
	}
	sum := w + h
	perim := 2 * sum

	return Item{
		Prompt: fmt.Sprintf("A rectangle is %d units wide and %d units tall. What is its perimeter?", w, h),
		Answer: strconv.Itoa(perim),
		Steps: []string{
			fmt.Sprintf("Add width and height: %d + %d = %d", w, h, sum),
			fmt.Sprintf("Multiply by 2: 2 * %d = %d", sum, perim),
		},
		Diagram: rectangleDiagram(w, h),
	}, true
}

// rectangleSides draws positive sides, rejecting squares so the
// prompt's width/height language stays meaningful.
func rectangleSides(r *rand.Rand, d skills.Difficulty) (w, h int, ok bool) {
	var side span
	switch d {
	case skills.Easy:
		side = span{2, 8}
	case skills.Hard:
		side = span{5, 25}
	default:
		side = span{3, 12}
	}
	w = side.draw(r)
	h = side.draw(r)
	if w <= 0 || h <= 0 || w == h {
		return 0, 0, false
	}
	return w, h, true
}

func rectangleDiagram(w, h int) *DiagramSpec {
	return &DiagramSpec{
		Type: "rectangle",
		Points: map[string][2]float64{
			"A": {0, 0},
			"B": {float64(w), 0},
			"C": {float64(w), float64(h)},
			"D": {0, float64(h)},
		},
		Labels: map[string]string{
			"width":  strconv.Itoa(w),
			"height": strconv.Itoa(h),
		},
		SideTicks: []SideTick{
			{Side: "AB", Count: 1},
			{Side: "CD", Count: 1},
			{Side: "BC", Count: 2},
			{Side: "DA", Count: 2},
		},
	}
}

type triangleAngleGen struct{}

func (triangleAngleGen) generate(r *rand.Rand, d skills.Difficulty) (Item, bool) {
	var first span
	switch d {
	case skills.Easy:
		first = span{30, 80}
	case skills.Hard:
		first = span{15, 110}
	default:
		first = span{20, 90}
	}

	a := first.draw(r)
	b := intn(r, 20, 160-a)
	c := 180 - a - b
	if c < 10 {
		return Item{}, false
	}

	return Item{
		Prompt: fmt.Sprintf("Two angles of a triangle measure %d degrees and %d degrees. What is the measure of the third angle?", a, b),
		Answer: strconv.Itoa(c),
		Steps: []string{
			"The interior angles of a triangle sum to 180 degrees.",
			fmt.Sprintf("Subtract the known angles: 180 - %d - %d = %d", a, b, c),
		},
		Diagram: triangleDiagram(a, b),
	}, true
}

// triangleDiagram derives vertex coordinates from the two known
// angles: the base AB has length 10, and C sits at the end of side
// AC, whose length follows from the law of sines. This stays finite
// for right and obtuse base angles.
func triangleDiagram(angleA, angleB int) *DiagramSpec {
	const base = 10.0
	radA := float64(angleA) * math.Pi / 180
	radB := float64(angleB) * math.Pi / 180
	radC := math.Pi - radA - radB
	ac := base * math.Sin(radB) / math.Sin(radC)
	cx := ac * math.Cos(radA)
	cy := ac * math.Sin(radA)

	return &DiagramSpec{
		Type: "triangle",
		Points: map[string][2]float64{
			"A": {0, 0},
			"B": {base, 0},
			"C": {cx, cy},
		},
		AngleMarkers: []AngleMarker{
			{At: "A", Style: "arc", Text: fmt.Sprintf("%d°", angleA)},
			{At: "B", Style: "arc", Text: fmt.Sprintf("%d°", angleB)},
			{At: "C", Style: "arc", Text: "?"},
		},
	}
}
