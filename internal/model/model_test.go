package model

import (
	"testing"

	"github.com/ehrlich-b/axlab/internal/term"
	"github.com/ehrlich-b/axlab/internal/universe"
)

func TestEmptySignatureSingleVariableScenarioS1(t *testing.T) {
	spec, err := universe.New("v0", "equational", nil, 1, 1)
	if err != nil {
		t.Fatal(err)
	}
	x0, _ := term.Parse("x0")
	eq := Equation{Left: x0, Right: x0}
	cfg := Config{MaxCandidates: 1000, MaxSeconds: 1.0}

	for _, engine := range []Engine{Naive{}, Prunable{}} {
		result := engine.FindModel(spec, []Equation{eq}, 1, cfg, nil)
		if result.Status != StatusFound {
			t.Fatalf("engine %T: status = %s, want found", engine, result.Status)
		}
	}
}

func TestEmptySignatureTwoVariablesScenarioS2(t *testing.T) {
	spec, err := universe.New("v0", "equational", nil, 2, 1)
	if err != nil {
		t.Fatal(err)
	}
	x0, _ := term.Parse("x0")
	x1, _ := term.Parse("x1")
	eq := Equation{Left: x0, Right: x1}
	cfg := Config{MaxCandidates: 1000, MaxSeconds: 1.0}

	for _, engine := range []Engine{Naive{}, Prunable{}} {
		r1 := engine.FindModel(spec, []Equation{eq}, 1, cfg, nil)
		if r1.Status != StatusFound {
			t.Fatalf("engine %T size 1: status = %s, want found", engine, r1.Status)
		}
		r2 := engine.FindModel(spec, []Equation{eq}, 2, cfg, nil)
		if r2.Status != StatusNotFound {
			t.Fatalf("engine %T size 2: status = %s, want not_found", engine, r2.Status)
		}
	}
}

func TestEngineAgreementCommutativity(t *testing.T) {
	spec, err := universe.New("v0", "equational", []universe.Operation{
		{Name: "f", Arity: 2},
	}, 2, 3)
	if err != nil {
		t.Fatal(err)
	}
	left, _ := term.Parse("f(x0,x1)")
	right, _ := term.Parse("f(x1,x0)")
	axiom := Equation{Left: left, Right: right}
	assoc := buildAssociative(t, "f")
	cfg := Config{MaxCandidates: 100000, MaxSeconds: 5.0}

	naive := Naive{}.FindModel(spec, []Equation{axiom}, 2, cfg, &assoc)
	prunable := Prunable{}.FindModel(spec, []Equation{axiom}, 2, cfg, &assoc)
	if naive.Status != prunable.Status {
		t.Fatalf("engine disagreement at size 2: naive=%s prunable=%s", naive.Status, prunable.Status)
	}
}

func buildAssociative(t *testing.T, opName string) Equation {
	t.Helper()
	left, err := term.Parse("f(f(x0,x1),x2)")
	if err != nil {
		t.Fatal(err)
	}
	right, err := term.Parse("f(x0,f(x1,x2))")
	if err != nil {
		t.Fatal(err)
	}
	return Equation{Left: left, Right: right}
}
