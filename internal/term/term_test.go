package term

import "testing"

func TestSerializeRoundTrip(t *testing.T) {
	cases := []string{"x0", "f(x0,x1)", "f(f(x0,x0),x1)", "g(x0)"}
	for _, c := range cases {
		parsed, err := Parse(c)
		if err != nil {
			t.Fatalf("Parse(%q): %v", c, err)
		}
		if got := parsed.Serialize(); got != c {
			t.Fatalf("round-trip mismatch: got %q want %q", got, c)
		}
	}
}

func TestParseRejectsTrailingInput(t *testing.T) {
	if _, err := Parse("x0)"); err == nil {
		t.Fatal("expected error for trailing input")
	}
}

func TestSizeAndDepth(t *testing.T) {
	tm, err := Parse("f(f(x0,x0),x1)")
	if err != nil {
		t.Fatal(err)
	}
	if got := tm.Size(); got != 5 {
		t.Fatalf("Size() = %d, want 5", got)
	}
	if got := tm.Depth(); got != 3 {
		t.Fatalf("Depth() = %d, want 3", got)
	}
}

func TestVarsOccurrenceOrder(t *testing.T) {
	tm, err := Parse("f(x1,f(x0,x1))")
	if err != nil {
		t.Fatal(err)
	}
	vars := tm.Vars()
	want := []string{"x1", "x0", "x1"}
	if len(vars) != len(want) {
		t.Fatalf("Vars() = %v, want %v", vars, want)
	}
	for i := range want {
		if vars[i] != want[i] {
			t.Fatalf("Vars() = %v, want %v", vars, want)
		}
	}
}

func TestContains(t *testing.T) {
	tm, _ := Parse("f(x0,x1)")
	x0, _ := Parse("x0")
	x2, _ := Parse("x2")
	if !tm.Contains(x0) {
		t.Fatal("expected tm to contain x0")
	}
	if tm.Contains(x2) {
		t.Fatal("expected tm not to contain x2")
	}
}
