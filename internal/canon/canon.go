// Package canon normalizes terms and equations into a canonical form
// stable under operator commutativity and variable renaming.
package canon

import (
	"fmt"
	"sort"

	"github.com/ehrlich-b/axlab/internal/term"
	"github.com/ehrlich-b/axlab/internal/universe"
)

// Term recursively sorts the argument tuple of every commutative binary
// operator by the serialized form of its children, ascending.
func Term(t *term.Term, spec *universe.Spec) *term.Term {
	if t.IsVar() {
		return term.NewVar(t.Name)
	}
	args := make([]*term.Term, len(t.Args))
	for i, a := range t.Args {
		args[i] = Term(a, spec)
	}
	if op, ok := spec.Operation(t.Name); ok && op.Commutative && len(args) == 2 {
		if args[0].Serialize() > args[1].Serialize() {
			args[0], args[1] = args[1], args[0]
		}
	}
	return term.NewOp(t.Name, args...)
}

// Equation canonicalizes both sides of L = R, orders the two sides so
// the lexicographically smaller (size, serialized) pair comes first,
// then renames variables to x0,x1,... in first-encounter order over
// that final ordering (first side walked before second). Deciding the
// side order before renaming, rather than after, is what keeps this
// idempotent: re-canonicalizing an already-canonical equation must walk
// variables in the same order it was first produced with.
func Equation(left, right *term.Term, spec *universe.Spec) (*term.Term, *term.Term) {
	cl := Term(left, spec)
	cr := Term(right, spec)

	if lessSide(cr, cl) {
		cl, cr = cr, cl
	}

	rename := make(map[string]string)
	cl = renameVars(cl, rename)
	cr = renameVars(cr, rename)

	return cl, cr
}

func lessSide(a, b *term.Term) bool {
	as, bs := a.Size(), b.Size()
	if as != bs {
		return as < bs
	}
	return a.Serialize() < b.Serialize()
}

// renameVars walks t pre-order, assigning x0,x1,... to each variable name
// in first-encounter order, sharing the rename map across calls so that a
// variable seen first on the left keeps its low index when it recurs on
// the right.
func renameVars(t *term.Term, rename map[string]string) *term.Term {
	if t.IsVar() {
		newName, ok := rename[t.Name]
		if !ok {
			newName = fmt.Sprintf("x%d", len(rename))
			rename[t.Name] = newName
		}
		return term.NewVar(newName)
	}
	args := make([]*term.Term, len(t.Args))
	for i, a := range t.Args {
		args[i] = renameVars(a, rename)
	}
	return term.NewOp(t.Name, args...)
}

// SymmetryClass returns the canonical "<left>=<right>" key used for
// cross-run dedup and archive lookups.
func SymmetryClass(left, right *term.Term) string {
	return left.Serialize() + "=" + right.Serialize()
}

// SortedStrings is a small shared helper used by enumeration and
// perturbation for deterministic dedup ordering.
func SortedStrings(in []string) []string {
	out := append([]string(nil), in...)
	sort.Strings(out)
	return out
}
