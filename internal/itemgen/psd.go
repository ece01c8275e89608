package itemgen

import (
	"fmt"
	"math/rand/v2"
	"strconv"

	"github.com/piepengu/mathdrill/internal/skills"
)

// proportionGen produces a/b = x/c where a is a multiple of b, so x
// is always an integer.
type proportionGen struct{}

func (proportionGen) generate(r *rand.Rand, d skills.Difficulty) (Item, bool) {
	var denom, mult span
	switch d {
	case skills.Easy:
		denom, mult = span{2, 6}, span{1, 5}
	case skills.Hard:
		denom, mult = span{3, 12}, span{2, 12}
	default:
		denom, mult = span{2, 9}, span{1, 9}
	}

	b := denom.draw(r)
	c := denom.draw(r)
	k := mult.draw(r)
	a := b * k
	x := k * c

	return Item{
		Prompt: fmt.Sprintf("Solve for x: %d/%d = x/%d", a, b, c),
		Answer: strconv.Itoa(x),
		Steps: []string{
			fmt.Sprintf("Cross-multiply: %d * %d = %d * x", a, c, b),
			fmt.Sprintf("Compute: %d = %dx", a*c, b),
			fmt.Sprintf("Divide both sides by %d: x = %d", b, x),
		},
	}, true
}

// unitRateGen produces a total-cost word problem with a clean
// two-decimal unit price.
type unitRateGen struct{}

func (unitRateGen) generate(r *rand.Rand, d skills.Difficulty) (Item, bool) {
	var count, cents span
	switch d {
	case skills.Easy:
		count, cents = span{2, 6}, span{10, 80} // price steps of 5 cents
	case skills.Hard:
		count, cents = span{4, 16}, span{20, 160}
	default:
		count, cents = span{2, 12}, span{10, 120}
	}

	n := count.draw(r)
	priceCents := cents.draw(r) * 5
	totalCents := n * priceCents

	total := float64(totalCents) / 100
	price := float64(priceCents) / 100

	return Item{
		Prompt: fmt.Sprintf("A pack of %d notebooks costs $%.2f. What is the cost per notebook, in dollars?", n, total),
		Answer: fmt.Sprintf("%.2f", price),
		Steps: []string{
			fmt.Sprintf("Divide the total cost by the number of notebooks: %.2f / %d", total, n),
			fmt.Sprintf("Cost per notebook: $%.2f", price),
		},
	}, true
}
