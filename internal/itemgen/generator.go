package itemgen

import (
	"fmt"
	"hash/fnv"
	"math/rand/v2"

	"github.com/piepengu/mathdrill/internal/skills"
)

// maxResamples bounds the degenerate-instance retry loop. Each retry
// reseeds from a derived sub-seed, so the whole loop is a pure
// function of the (skill, difficulty, seed) key.
const maxResamples = 8

// seedStride separates the sub-seeds of consecutive retries.
const seedStride = 0x9E3779B97F4A7C15

// generator produces one candidate instance from a seeded source.
// It returns ok=false for a degenerate draw (zero determinant,
// non-positive length, ...); the caller resamples with the next
// sub-seed.
type generator interface {
	generate(r *rand.Rand, d skills.Difficulty) (Item, bool)
}

// registry maps every skill to its generator. Checked against the
// skill enum at package init; a missing or extra entry is a
// programming error caught at startup, not at request time.
var registry = map[skills.Skill]generator{
	skills.LinearEquation:        linearEquationGen{},
	skills.LinearEquationMC:      linearEquationMCGen{},
	skills.TwoStepEquation:       twoStepEquationGen{},
	skills.LinearSystem2x2:       linearSystem2x2Gen{},
	skills.LinearSystem3x3:       linearSystem3x3Gen{},
	skills.QuadraticRoots:        quadraticRootsGen{},
	skills.ExponentialSolve:      exponentialSolveGen{},
	skills.RationalEquation:      rationalEquationGen{},
	skills.Proportion:            proportionGen{},
	skills.UnitRate:              unitRateGen{},
	skills.PythagoreanHypotenuse: pythagoreanHypotenuseGen{},
	skills.PythagoreanLeg:        pythagoreanLegGen{},
	skills.RectangleArea:         rectangleAreaGen{},
	skills.RectanglePerimeter:    rectanglePerimeterGen{},
	skills.TriangleAngle:         triangleAngleGen{},
}

func init() {
	if err := validateRegistry(); err != nil {
		panic(err)
	}
}

// validateRegistry checks that the registry and the skill enum agree.
func validateRegistry() error {
	all := skills.All()
	for _, s := range all {
		if _, ok := registry[s]; !ok {
			return fmt.Errorf("itemgen: no generator registered for skill %q", s)
		}
	}
	if len(registry) != len(all) {
		return fmt.Errorf("itemgen: registry has %d generators for %d skills", len(registry), len(all))
	}
	return nil
}

// Generate produces the Item for a (skill, difficulty, seed) key.
// It is pure: the same key always yields an identical Item.
func Generate(skill skills.Skill, difficulty skills.Difficulty, seed int64) (*Item, error) {
	info, ok := skills.Lookup(skill)
	if !ok {
		return nil, fmt.Errorf("unknown skill: %q", skill)
	}
	gen := registry[skill]

	for try := 0; try < maxResamples; try++ {
		r := seededRand(seed, skill, try)
		item, ok := gen.generate(r, difficulty)
		if !ok {
			continue
		}
		item.Skill = skill
		item.Domain = info.Domain
		item.Difficulty = difficulty
		item.Seed = seed
		if item.Kind == "" {
			item.Kind = info.Kind
		}
		if !item.IsMultipleChoice() {
			item.CorrectIndex = -1
		}
		return &item, nil
	}
	return nil, fmt.Errorf("degenerate instance for %s/%s seed %d after %d resamples", skill, difficulty, seed, maxResamples)
}

// Draw generates an item under a freshly drawn seed and returns it.
// The seed travels inside the Item so the caller can grade later.
func Draw(skill skills.Skill, difficulty skills.Difficulty) (*Item, error) {
	return Generate(skill, difficulty, DrawSeed())
}

// DrawSeed returns a fresh seed in [1, 10_000_000].
func DrawSeed() int64 {
	return rand.Int64N(10_000_000) + 1
}

// seededRand builds the deterministic source for one generation try.
// The skill tag salts the stream so different skills never share a
// coefficient sequence for the same seed, and the try index advances
// the sub-seed for resampling.
func seededRand(seed int64, skill skills.Skill, try int) *rand.Rand {
	h := fnv.New64a()
	h.Write([]byte(skill))
	return rand.New(rand.NewPCG(uint64(seed)+uint64(try)*seedStride, h.Sum64()))
}

// intn returns a uniform integer in [lo, hi], both inclusive,
// matching the convention the generators are written in.
func intn(r *rand.Rand, lo, hi int) int {
	return lo + r.IntN(hi-lo+1)
}

// pick returns a uniformly chosen element of vals.
func pick[T any](r *rand.Rand, vals ...T) T {
	return vals[r.IntN(len(vals))]
}
