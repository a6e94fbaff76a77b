// Package probe decides, for a canonicalized axiom and a library of
// named algebraic theories, whether the axiom implies each theory by
// searching for a counterexample model.
package probe

import (
	"github.com/ehrlich-b/axlab/internal/term"
	"github.com/ehrlich-b/axlab/internal/universe"
)

// Theory is one named law in the library: an equation plus the name
// used in probe results, facts, and narrative citations.
type Theory struct {
	Name  string
	Left  *term.Term
	Right *term.Term
}

// LibraryForSpec builds the fixed catalog of named theories applicable
// to spec: the standard binary-operator laws for the first declared
// binary operator, and the standard unary-operator laws for the first
// declared unary operator. Empty if neither exists.
func LibraryForSpec(spec *universe.Spec) []Theory {
	var out []Theory
	if op, ok := spec.FirstBinary(); ok {
		out = append(out, binaryTheories(op.Name)...)
	}
	if op, ok := spec.FirstUnary(); ok {
		out = append(out, unaryTheories(op.Name)...)
	}
	return out
}

func mustParse(s string) *term.Term {
	t, err := term.Parse(s)
	if err != nil {
		panic(err)
	}
	return t
}

func op2(name, a, b string) string { return name + "(" + a + "," + b + ")" }

func binaryTheories(f string) []Theory {
	return []Theory{
		{
			Name:  "associative",
			Left:  mustParse(op2(f, op2(f, "x0", "x1"), "x2")),
			Right: mustParse(op2(f, "x0", op2(f, "x1", "x2"))),
		},
		{
			Name:  "commutative",
			Left:  mustParse(op2(f, "x0", "x1")),
			Right: mustParse(op2(f, "x1", "x0")),
		},
		{
			Name:  "idempotent",
			Left:  mustParse(op2(f, "x0", "x0")),
			Right: mustParse("x0"),
		},
		{
			Name:  "left_alternative",
			Left:  mustParse(op2(f, op2(f, "x0", "x0"), "x1")),
			Right: mustParse(op2(f, "x0", op2(f, "x0", "x1"))),
		},
		{
			Name:  "right_alternative",
			Left:  mustParse(op2(f, "x0", op2(f, "x1", "x1"))),
			Right: mustParse(op2(f, op2(f, "x0", "x1"), "x1")),
		},
		{
			Name:  "flexible",
			Left:  mustParse(op2(f, op2(f, "x0", "x1"), "x0")),
			Right: mustParse(op2(f, "x0", op2(f, "x1", "x0"))),
		},
		{
			Name:  "left_self_distributive",
			Left:  mustParse(op2(f, "x0", op2(f, "x1", "x2"))),
			Right: mustParse(op2(f, op2(f, "x0", "x1"), op2(f, "x0", "x2"))),
		},
		{
			Name:  "right_self_distributive",
			Left:  mustParse(op2(f, op2(f, "x0", "x1"), "x2")),
			Right: mustParse(op2(f, op2(f, "x0", "x2"), op2(f, "x1", "x2"))),
		},
		{
			Name:  "medial",
			Left:  mustParse(op2(f, op2(f, "x0", "x1"), op2(f, "x2", "x3"))),
			Right: mustParse(op2(f, op2(f, "x0", "x2"), op2(f, "x1", "x3"))),
		},
		{
			Name:  "left_projection",
			Left:  mustParse(op2(f, "x0", "x1")),
			Right: mustParse("x0"),
		},
		{
			Name:  "right_projection",
			Left:  mustParse(op2(f, "x0", "x1")),
			Right: mustParse("x1"),
		},
	}
}

func unaryTheories(u string) []Theory {
	return []Theory{
		{
			Name:  "idempotent",
			Left:  mustParse(u + "(" + u + "(x0))"),
			Right: mustParse(u + "(x0)"),
		},
		{
			Name:  "involutive",
			Left:  mustParse(u + "(" + u + "(x0))"),
			Right: mustParse("x0"),
		},
	}
}
