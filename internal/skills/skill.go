package skills

import "fmt"

// Domain represents an SAT math content domain.
type Domain string

const (
	DomainAlgebra  Domain = "Algebra"
	DomainAdvanced Domain = "Advanced"
	DomainGeometry Domain = "Geometry"
	DomainPSD      Domain = "PSD"
)

// AllDomains returns all domains in display order.
func AllDomains() []Domain {
	return []Domain{DomainAlgebra, DomainAdvanced, DomainGeometry, DomainPSD}
}

// Valid reports whether d is a known domain.
func (d Domain) Valid() bool {
	switch d {
	case DomainAlgebra, DomainAdvanced, DomainGeometry, DomainPSD:
		return true
	}
	return false
}

// Skill identifies a single practicable skill. The set is closed:
// every Skill value maps to exactly one item generator.
type Skill string

const (
	LinearEquation        Skill = "linear_equation"
	LinearEquationMC      Skill = "linear_equation_mc"
	TwoStepEquation       Skill = "two_step_equation"
	LinearSystem2x2       Skill = "linear_system_2x2"
	LinearSystem3x3       Skill = "linear_system_3x3"
	QuadraticRoots        Skill = "quadratic_roots"
	ExponentialSolve      Skill = "exponential_solve"
	RationalEquation      Skill = "rational_equation"
	Proportion            Skill = "proportion"
	UnitRate              Skill = "unit_rate"
	PythagoreanHypotenuse Skill = "pythagorean_hypotenuse"
	PythagoreanLeg        Skill = "pythagorean_leg"
	RectangleArea         Skill = "rectangle_area"
	RectanglePerimeter    Skill = "rectangle_perimeter"
	TriangleAngle         Skill = "triangle_angle"
)

// AnswerKind describes the shape of a skill's canonical answer,
// which drives both grading and guardrail format checks.
type AnswerKind string

const (
	KindInteger AnswerKind = "integer" // single integer value
	KindDecimal AnswerKind = "decimal" // single decimal value
	KindPair    AnswerKind = "pair"    // "(x, y)" or "x,y"
	KindTriple  AnswerKind = "triple"  // "(x, y, z)"
	KindChoice  AnswerKind = "choice"  // multiple-choice index
)

// Info holds the static metadata for one skill.
type Info struct {
	Skill  Skill
	Domain Domain
	Name   string
	Kind   AnswerKind

	// OrderFree marks multi-value answers whose components may be
	// given in any order (e.g. the two roots of a quadratic).
	OrderFree bool
}

var infos = []Info{
	{Skill: LinearEquation, Domain: DomainAlgebra, Name: "Linear equation", Kind: KindInteger},
	{Skill: LinearEquationMC, Domain: DomainAlgebra, Name: "Linear equation (multiple choice)", Kind: KindChoice},
	{Skill: TwoStepEquation, Domain: DomainAlgebra, Name: "Two-step equation", Kind: KindInteger},
	{Skill: LinearSystem2x2, Domain: DomainAlgebra, Name: "2x2 linear system", Kind: KindPair},
	{Skill: LinearSystem3x3, Domain: DomainAdvanced, Name: "3x3 linear system", Kind: KindTriple},
	{Skill: QuadraticRoots, Domain: DomainAdvanced, Name: "Quadratic roots", Kind: KindPair, OrderFree: true},
	{Skill: ExponentialSolve, Domain: DomainAdvanced, Name: "Exponential equation", Kind: KindInteger},
	{Skill: RationalEquation, Domain: DomainAdvanced, Name: "Rational equation", Kind: KindInteger},
	{Skill: Proportion, Domain: DomainPSD, Name: "Proportion", Kind: KindInteger},
	{Skill: UnitRate, Domain: DomainPSD, Name: "Unit rate", Kind: KindDecimal},
	{Skill: PythagoreanHypotenuse, Domain: DomainGeometry, Name: "Pythagorean theorem (hypotenuse)", Kind: KindInteger},
	{Skill: PythagoreanLeg, Domain: DomainGeometry, Name: "Pythagorean theorem (leg)", Kind: KindInteger},
	{Skill: RectangleArea, Domain: DomainGeometry, Name: "Rectangle area", Kind: KindInteger},
	{Skill: RectanglePerimeter, Domain: DomainGeometry, Name: "Rectangle perimeter", Kind: KindInteger},
	{Skill: TriangleAngle, Domain: DomainGeometry, Name: "Triangle interior angle", Kind: KindInteger},
}

var byID = func() map[Skill]Info {
	m := make(map[Skill]Info, len(infos))
	for _, in := range infos {
		if _, dup := m[in.Skill]; dup {
			panic(fmt.Sprintf("skills: duplicate skill %q", in.Skill))
		}
		m[in.Skill] = in
	}
	return m
}()

// All returns every skill in registration order.
func All() []Skill {
	out := make([]Skill, len(infos))
	for i, in := range infos {
		out[i] = in.Skill
	}
	return out
}

// Lookup returns the Info for a skill.
func Lookup(s Skill) (Info, bool) {
	in, ok := byID[s]
	return in, ok
}

// Parse validates a skill tag from untrusted input.
func Parse(s string) (Skill, error) {
	if _, ok := byID[Skill(s)]; !ok {
		return "", fmt.Errorf("unknown skill: %q", s)
	}
	return Skill(s), nil
}

// DomainOf returns the domain a skill belongs to.
// The empty Domain is returned for unknown skills.
func DomainOf(s Skill) Domain {
	return byID[s].Domain
}

// KindOf returns the answer kind of a skill.
func KindOf(s Skill) AnswerKind {
	return byID[s].Kind
}
