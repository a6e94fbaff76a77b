package probe

import (
	"testing"

	"github.com/ehrlich-b/axlab/internal/canon"
	"github.com/ehrlich-b/axlab/internal/model"
	"github.com/ehrlich-b/axlab/internal/term"
	"github.com/ehrlich-b/axlab/internal/universe"
)

func TestLibrarySelfConfirmation(t *testing.T) {
	spec, err := universe.New("v0", "equational", []universe.Operation{
		{Name: "f", Arity: 2},
	}, 4, 5)
	if err != nil {
		t.Fatal(err)
	}
	library := LibraryForSpec(spec)
	cfg := Config{MaxModelSize: 2, MaxModelCandidates: 20000, MaxModelSeconds: 2.0}
	engine := model.Prunable{}

	for _, theory := range library {
		cl, cr := canon.Equation(theory.Left, theory.Right, spec)
		axiom := model.Equation{Left: cl, Right: cr}
		results := Run(spec, axiom, []Theory{theory}, cfg, engine, nil)
		if len(results) != 1 {
			t.Fatalf("theory %s: expected 1 result, got %d", theory.Name, len(results))
		}
		if results[0].Status != StatusConfirmed {
			t.Errorf("theory %s self-confirmation: status = %s, want confirmed", theory.Name, results[0].Status)
		}
	}
}

func TestCommutativityProbeScenarioS3(t *testing.T) {
	spec, err := universe.New("v0", "equational", []universe.Operation{
		{Name: "f", Arity: 2},
	}, 3, 5)
	if err != nil {
		t.Fatal(err)
	}
	left, _ := term.Parse("f(x0,x1)")
	right, _ := term.Parse("f(x1,x0)")
	cl, cr := canon.Equation(left, right, spec)
	axiom := model.Equation{Left: cl, Right: cr}

	library := LibraryForSpec(spec)
	var assoc, commutative *Theory
	for i := range library {
		switch library[i].Name {
		case "associative":
			assoc = &library[i]
		case "commutative":
			commutative = &library[i]
		}
	}
	if assoc == nil || commutative == nil {
		t.Fatal("expected associative and commutative theories in library")
	}

	cfg := Config{MaxModelSize: 2, MaxModelCandidates: 50000, MaxModelSeconds: 3.0}
	results := Run(spec, axiom, []Theory{*assoc, *commutative}, cfg, model.Prunable{}, nil)

	byName := map[string]Result{}
	for _, r := range results {
		byName[r.Theory] = r
	}
	if byName["associative"].Status != StatusCounterexample {
		t.Errorf("associative status = %s, want counterexample", byName["associative"].Status)
	}
	if byName["commutative"].Status != StatusConfirmed {
		t.Errorf("commutative status = %s, want confirmed", byName["commutative"].Status)
	}
}
