package perturb

import (
	"testing"

	"github.com/ehrlich-b/axlab/internal/term"
	"github.com/ehrlich-b/axlab/internal/universe"
)

func TestNeighborsExcludesOriginalAndDedups(t *testing.T) {
	spec, err := universe.New("v0", "equational", []universe.Operation{
		{Name: "f", Arity: 2, Commutative: false},
		{Name: "g", Arity: 2, Commutative: false},
	}, 2, 3)
	if err != nil {
		t.Fatal(err)
	}
	left, _ := term.Parse("f(x0,x1)")
	right, _ := term.Parse("x0")

	neighbors := Neighbors(spec, left, right, 0)
	if len(neighbors) == 0 {
		t.Fatal("expected at least one neighbor")
	}
	seen := map[string]bool{}
	for _, n := range neighbors {
		key := n.Left.Serialize() + "=" + n.Right.Serialize()
		if seen[key] {
			t.Fatalf("duplicate neighbor: %s", key)
		}
		seen[key] = true
		if key == "f(x0,x1)=x0" {
			t.Fatal("neighbors must exclude the original equation")
		}
	}
}

func TestNeighborsRespectsLimit(t *testing.T) {
	spec, _ := universe.New("v0", "equational", []universe.Operation{
		{Name: "f", Arity: 2},
	}, 3, 3)
	left, _ := term.Parse("f(x0,x1)")
	right, _ := term.Parse("x0")
	neighbors := Neighbors(spec, left, right, 2)
	if len(neighbors) > 2 {
		t.Fatalf("got %d neighbors, want at most 2", len(neighbors))
	}
}
