package enum

import (
	"testing"

	"github.com/ehrlich-b/axlab/internal/term"
	"github.com/ehrlich-b/axlab/internal/universe"
)

func TestTermsMatchesScenarioS6(t *testing.T) {
	spec, err := universe.New("v0", "equational", []universe.Operation{
		{Name: "f", Arity: 2, Commutative: true},
	}, 2, 3)
	if err != nil {
		t.Fatal(err)
	}
	terms := Terms(spec)
	want := []string{"x0", "x1", "f(x0,x0)", "f(x0,x1)", "f(x1,x1)"}
	if len(terms) != len(want) {
		t.Fatalf("got %d terms, want %d: %v", len(terms), len(want), serializeAll(terms))
	}
	for i, w := range want {
		if terms[i].Serialize() != w {
			t.Fatalf("terms[%d] = %q, want %q (full: %v)", i, terms[i].Serialize(), w, serializeAll(terms))
		}
	}
}

func serializeAll(terms []*term.Term) []string {
	out := make([]string, len(terms))
	for i, t := range terms {
		out[i] = t.Serialize()
	}
	return out
}

func TestAxiomsCartesianProductOrder(t *testing.T) {
	spec, _ := universe.New("v0", "equational", nil, 2, 1)
	terms := Terms(spec)
	axioms := Axioms(terms)
	if len(axioms) != len(terms)*len(terms) {
		t.Fatalf("got %d axioms, want %d", len(axioms), len(terms)*len(terms))
	}
	if axioms[0].Left.Serialize() != terms[0].Serialize() || axioms[0].Right.Serialize() != terms[0].Serialize() {
		t.Fatalf("unexpected first axiom: %+v", axioms[0])
	}
}
