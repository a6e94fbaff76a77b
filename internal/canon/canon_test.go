package canon

import (
	"testing"

	"github.com/ehrlich-b/axlab/internal/term"
	"github.com/ehrlich-b/axlab/internal/universe"
)

func mustSpec(t *testing.T, commutative bool) *universe.Spec {
	t.Helper()
	spec, err := universe.New("v0", "equational", []universe.Operation{
		{Name: "f", Arity: 2, Commutative: commutative},
	}, 3, 5)
	if err != nil {
		t.Fatal(err)
	}
	return spec
}

func TestTermCanonicalizationSortsCommutativeArgs(t *testing.T) {
	spec := mustSpec(t, true)
	tm, _ := term.Parse("f(x1,x0)")
	got := Term(tm, spec).Serialize()
	if got != "f(x0,x1)" {
		t.Fatalf("Term() = %q, want f(x0,x1)", got)
	}
}

func TestCanonicalizationIdempotent(t *testing.T) {
	spec := mustSpec(t, true)
	left, _ := term.Parse("f(x1,x0)")
	right, _ := term.Parse("x0")
	cl, cr := Equation(left, right, spec)
	cl2, cr2 := Equation(cl, cr, spec)
	if cl.Serialize() != cl2.Serialize() || cr.Serialize() != cr2.Serialize() {
		t.Fatalf("canonicalization not idempotent: (%s,%s) vs (%s,%s)", cl.Serialize(), cr.Serialize(), cl2.Serialize(), cr2.Serialize())
	}
}

func TestCanonicalizationIdempotentAcrossSwap(t *testing.T) {
	spec := mustSpec(t, false)
	left, _ := term.Parse("f(x1,x2)")
	right, _ := term.Parse("x2")
	cl, cr := Equation(left, right, spec)
	cl2, cr2 := Equation(cl, cr, spec)
	if cl.Serialize() != cl2.Serialize() || cr.Serialize() != cr2.Serialize() {
		t.Fatalf("canonicalization not idempotent: (%s,%s) vs (%s,%s)", cl.Serialize(), cr.Serialize(), cl2.Serialize(), cr2.Serialize())
	}
}

func TestSideSymmetry(t *testing.T) {
	spec := mustSpec(t, false)
	left, _ := term.Parse("f(x0,x1)")
	right, _ := term.Parse("f(x1,x0)")
	cl1, cr1 := Equation(left, right, spec)
	cl2, cr2 := Equation(right, left, spec)
	if SymmetryClass(cl1, cr1) != SymmetryClass(cl2, cr2) {
		t.Fatalf("side symmetry violated: %s=%s vs %s=%s", cl1.Serialize(), cr1.Serialize(), cl2.Serialize(), cr2.Serialize())
	}
}

func TestVariableRenamingFirstEncounterOrder(t *testing.T) {
	spec := mustSpec(t, false)
	left, _ := term.Parse("f(x2,x1)")
	right, _ := term.Parse("x2")
	cl, cr := Equation(left, right, spec)
	// x2 (first seen on the left, first arg) should rename to x0, x1 to x1.
	if cl.Serialize() != "f(x0,x1)" && cr.Serialize() != "f(x0,x1)" {
		t.Fatalf("expected one side to be f(x0,x1), got %s = %s", cl.Serialize(), cr.Serialize())
	}
}
