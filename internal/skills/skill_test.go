package skills

import "testing"

func TestParse(t *testing.T) {
	sk, err := Parse("linear_equation")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if sk != LinearEquation {
		t.Errorf("got %q, want %q", sk, LinearEquation)
	}

	if _, err := Parse("calculus"); err == nil {
		t.Error("unknown skill should not parse")
	}
	if _, err := Parse(""); err == nil {
		t.Error("empty skill should not parse")
	}
}

func TestAllHaveInfo(t *testing.T) {
	for _, sk := range All() {
		info, ok := Lookup(sk)
		if !ok {
			t.Fatalf("no info for %q", sk)
		}
		if info.Name == "" {
			t.Errorf("%q has no display name", sk)
		}
		if !info.Domain.Valid() {
			t.Errorf("%q has unknown domain %q", sk, info.Domain)
		}
	}
}

func TestAnswerShapes(t *testing.T) {
	tests := []struct {
		skill Skill
		kind  AnswerKind
	}{
		{LinearEquation, KindInteger},
		{UnitRate, KindDecimal},
		{LinearSystem2x2, KindPair},
		{LinearSystem3x3, KindTriple},
		{LinearEquationMC, KindChoice},
		{QuadraticRoots, KindPair},
	}
	for _, tt := range tests {
		if got := KindOf(tt.skill); got != tt.kind {
			t.Errorf("KindOf(%q) = %q, want %q", tt.skill, got, tt.kind)
		}
	}

	info, _ := Lookup(QuadraticRoots)
	if !info.OrderFree {
		t.Error("quadratic roots should compare order-free")
	}
	info, _ = Lookup(LinearSystem2x2)
	if info.OrderFree {
		t.Error("system solutions are coordinates and must keep order")
	}
}

func TestDifficultyLadder(t *testing.T) {
	if Easy.Promote() != Medium || Medium.Promote() != Hard {
		t.Error("promotion ladder broken")
	}
	if Hard.Promote() != Hard {
		t.Error("promotion should clamp at hard")
	}
	if Hard.Demote() != Medium || Medium.Demote() != Easy {
		t.Error("demotion ladder broken")
	}
	if Easy.Demote() != Easy {
		t.Error("demotion should clamp at easy")
	}
}

func TestParseDifficulty(t *testing.T) {
	for _, d := range AllDifficulties() {
		got, err := ParseDifficulty(string(d))
		if err != nil || got != d {
			t.Errorf("ParseDifficulty(%q) = %q, %v", d, got, err)
		}
	}
	if _, err := ParseDifficulty("extreme"); err == nil {
		t.Error("unknown difficulty should not parse")
	}
}
