package prover

import (
	"testing"

	"github.com/ehrlich-b/axlab/internal/term"
)

func TestProveReflexivity(t *testing.T) {
	x0, _ := term.Parse("x0")
	result := Prove(nil, x0, x0, Config{MaxSteps: 1, MaxTerms: 10, MaxSeconds: 1.0})
	if result.Status != StatusProved {
		t.Fatalf("status = %s, want proved", result.Status)
	}
	if len(result.Steps) != 1 || result.Steps[0].Rule != "reflexivity" {
		t.Fatalf("unexpected steps: %+v", result.Steps)
	}
}

func TestProveOneStepScenarioS5(t *testing.T) {
	left, _ := term.Parse("f(f(x0,x0),x0)")
	right, _ := term.Parse("x0")
	axiom := Axiom{Name: "axiom_0", Left: left, Right: right}

	result := Prove([]Axiom{axiom}, left, right, Config{MaxSteps: 1, MaxTerms: 10, MaxSeconds: 1.0})
	if result.Status != StatusProved {
		t.Fatalf("status = %s, want proved", result.Status)
	}
	if len(result.Steps) != 1 || result.Steps[0].Rule != "axiom_0" {
		t.Fatalf("unexpected steps: %+v", result.Steps)
	}
}

func TestProveUnknownWhenUnreachable(t *testing.T) {
	left, _ := term.Parse("f(x0,x1)")
	right, _ := term.Parse("g(x0,x1)")
	result := Prove(nil, left, right, Config{MaxSteps: 3, MaxTerms: 50, MaxSeconds: 1.0})
	if result.Status != StatusUnknown {
		t.Fatalf("status = %s, want unknown", result.Status)
	}
}
