package universe

import "testing"

func TestNewRejectsUnknownLogic(t *testing.T) {
	_, err := New("v0", "first-order", nil, 2, 3)
	if err == nil {
		t.Fatal("expected error")
	}
}

func TestNewRejectsDuplicateOperators(t *testing.T) {
	ops := []Operation{{Name: "f", Arity: 2}, {Name: "f", Arity: 1}}
	_, err := New("v0", "equational", ops, 2, 3)
	if err == nil {
		t.Fatal("expected duplicate operator error")
	}
}

func TestNewRejectsCommutativeUnary(t *testing.T) {
	ops := []Operation{{Name: "f", Arity: 1, Commutative: true}}
	_, err := New("v0", "equational", ops, 2, 3)
	if err == nil {
		t.Fatal("expected commutative-arity error")
	}
}

func TestParseJSON(t *testing.T) {
	data := []byte(`{"version":"v0","logic":"equational","operations":[{"name":"f","arity":2,"commutative":false}],"max_vars":2,"max_term_size":5}`)
	spec, err := ParseJSON(data)
	if err != nil {
		t.Fatal(err)
	}
	if spec.MaxVars != 2 || spec.MaxTermSize != 5 {
		t.Fatalf("unexpected spec: %+v", spec)
	}
	op, ok := spec.Operation("f")
	if !ok || op.Arity != 2 {
		t.Fatalf("expected operator f with arity 2, got %+v ok=%v", op, ok)
	}
}

func TestVariableNames(t *testing.T) {
	spec, err := New("v0", "equational", nil, 3, 1)
	if err != nil {
		t.Fatal(err)
	}
	names := spec.VariableNames()
	want := []string{"x0", "x1", "x2"}
	for i, w := range want {
		if names[i] != w {
			t.Fatalf("VariableNames()[%d] = %q, want %q", i, names[i], w)
		}
	}
}
