// Package perturb enumerates 1-edit neighbors of a canonical axiom in
// the canonical quotient: local syntactic mutations used to measure how
// robust an axiom's model-search signature is.
package perturb

import (
	"sort"

	"github.com/ehrlich-b/axlab/internal/canon"
	"github.com/ehrlich-b/axlab/internal/term"
	"github.com/ehrlich-b/axlab/internal/universe"
)

// Axiom is an ordered pair of terms read as left = right.
type Axiom struct {
	Left  *term.Term
	Right *term.Term
}

// Neighbors enumerates distinct 1-edit canonical neighbors of (left, right),
// excludes the original, dedups by canonical key, sorts by that key, and
// caps the result at limit (0 or negative means unlimited).
func Neighbors(spec *universe.Spec, left, right *term.Term, limit int) []Axiom {
	originalKey := canon.SymmetryClass(left, right)
	seen := map[string]Axiom{}

	for _, edited := range editsOfEquation(spec, left, right) {
		cl, cr := canon.Equation(edited.Left, edited.Right, spec)
		key := canon.SymmetryClass(cl, cr)
		if key == originalKey {
			continue
		}
		if _, ok := seen[key]; !ok {
			seen[key] = Axiom{Left: cl, Right: cr}
		}
	}

	keys := make([]string, 0, len(seen))
	for k := range seen {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]Axiom, 0, len(keys))
	for _, k := range keys {
		out = append(out, seen[k])
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out
}

// editsOfEquation produces every 1-edit variant of the equation by editing
// either side in place while leaving the other untouched.
func editsOfEquation(spec *universe.Spec, left, right *term.Term) []Axiom {
	var out []Axiom
	for _, edited := range editsOfTerm(spec, left) {
		out = append(out, Axiom{Left: edited, Right: right})
	}
	for _, edited := range editsOfTerm(spec, right) {
		out = append(out, Axiom{Left: left, Right: edited})
	}
	return out
}

// editsOfTerm returns every term obtained from t by exactly one local edit:
// variable substitution, operator substitution (same arity), argument swap
// (non-commutative binary nodes), applied at any position including
// recursively inside subterms.
func editsOfTerm(spec *universe.Spec, t *term.Term) []*term.Term {
	var out []*term.Term

	if t.IsVar() {
		for _, name := range spec.VariableNames() {
			if name == t.Name {
				continue
			}
			out = append(out, term.NewVar(name))
		}
		return out
	}

	op, _ := spec.Operation(t.Name)

	for _, candidate := range spec.Operations {
		if candidate.Name == t.Name || candidate.Arity != op.Arity {
			continue
		}
		out = append(out, term.NewOp(candidate.Name, cloneArgs(t.Args)...))
	}

	if op.Arity == 2 && !op.Commutative {
		swapped := []*term.Term{t.Args[1], t.Args[0]}
		out = append(out, term.NewOp(t.Name, cloneArgs(swapped)...))
	}

	for i, child := range t.Args {
		for _, edited := range editsOfTerm(spec, child) {
			args := cloneArgs(t.Args)
			args[i] = edited
			out = append(out, term.NewOp(t.Name, args...))
		}
	}

	return out
}

func cloneArgs(args []*term.Term) []*term.Term {
	out := make([]*term.Term, len(args))
	for i, a := range args {
		out[i] = a.Clone()
	}
	return out
}
