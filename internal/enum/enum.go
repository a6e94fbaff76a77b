// Package enum generates every well-formed term over a universe spec up
// to a size bound, and pairs them into candidate axioms.
package enum

import (
	"github.com/ehrlich-b/axlab/internal/term"
	"github.com/ehrlich-b/axlab/internal/universe"
)

// Axiom is an ordered pair of terms read as left = right.
type Axiom struct {
	Left  *term.Term
	Right *term.Term
}

// Terms produces all terms up to size spec.MaxTermSize by dynamic
// programming on size, in an order fully determined by operator
// declaration order and variable order so that downstream run ids stay
// reproducible.
func Terms(spec *universe.Spec) []*term.Term {
	bySize := make([][]*term.Term, spec.MaxTermSize+1)
	bySize[1] = make([]*term.Term, 0, spec.MaxVars)
	for _, name := range spec.VariableNames() {
		bySize[1] = append(bySize[1], term.NewVar(name))
	}

	for k := 2; k <= spec.MaxTermSize; k++ {
		var out []*term.Term
		for _, op := range spec.Operations {
			switch op.Arity {
			case 1:
				for _, child := range bySize[k-1] {
					out = append(out, term.NewOp(op.Name, child))
				}
			case 2:
				for i := 1; i <= k-2; i++ {
					j := k - 1 - i
					if j < 1 {
						continue
					}
					for _, l := range bySize[i] {
						for _, r := range bySize[j] {
							if op.Commutative && l.Serialize() > r.Serialize() {
								continue
							}
							out = append(out, term.NewOp(op.Name, l, r))
						}
					}
				}
			}
		}
		bySize[k] = out
	}

	var all []*term.Term
	for k := 1; k <= spec.MaxTermSize; k++ {
		all = append(all, bySize[k]...)
	}
	return all
}

// Axioms builds the Cartesian product terms x terms, in that order.
func Axioms(terms []*term.Term) []Axiom {
	axioms := make([]Axiom, 0, len(terms)*len(terms))
	for _, l := range terms {
		for _, r := range terms {
			axioms = append(axioms, Axiom{Left: l, Right: r})
		}
	}
	return axioms
}
