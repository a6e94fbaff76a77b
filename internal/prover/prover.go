// Package prover implements a bounded breadth-first term-rewriting
// search, used as an advisory witness generator after the model-search
// oracle has already confirmed an implication.
package prover

import (
	"sort"
	"time"

	"github.com/ehrlich-b/axlab/internal/term"
)

// Status values a proof search can report.
const (
	StatusProved  = "proved"
	StatusTimeout = "timeout"
	StatusCutoff  = "cutoff"
	StatusUnknown = "unknown"
)

// RuleOrder selects how the derived rewrite rules are tried at each
// position. All orders are deterministic.
type RuleOrder string

const (
	OrderGiven      RuleOrder = "given"
	OrderReverse    RuleOrder = "reverse"
	OrderShortestLHS RuleOrder = "shortest_lhs"
	OrderLongestLHS  RuleOrder = "longest_lhs"
)

// Config bounds one proof search.
type Config struct {
	MaxSteps   int
	MaxTerms   int
	MaxSeconds float64
	RuleOrder  RuleOrder
}

// Step is one rewrite step in a proof trace.
type Step struct {
	Rule  string
	Left  string
	Right string
}

// Result is the outcome of a proof search.
type Result struct {
	Status string
	Steps  []Step
}

// rule is a single directed rewrite lhs -> rhs, tagged with its origin
// axiom name for proof-step labeling.
type rule struct {
	name string
	lhs  *term.Term
	rhs  *term.Term
}

// Axiom is an ordered pair of terms usable as a bidirectional rewrite
// source.
type Axiom struct {
	Name  string
	Left  *term.Term
	Right *term.Term
}

// Prove searches for a rewrite path from goal.Left to goal.Right using
// the given axioms as bidirectional rewrite rules.
func Prove(axioms []Axiom, goalLeft, goalRight *term.Term, cfg Config) Result {
	if goalLeft.Serialize() == goalRight.Serialize() {
		return Result{Status: StatusProved, Steps: []Step{{Rule: "reflexivity", Left: goalLeft.Serialize(), Right: goalRight.Serialize()}}}
	}

	rules := buildRules(axioms)
	orderRules(rules, cfg.RuleOrder)

	start := time.Now()
	deadline := start.Add(time.Duration(cfg.MaxSeconds * float64(time.Second)))

	type queueEntry struct {
		t     *term.Term
		path  []Step
		depth int
	}

	visited := map[string]bool{goalLeft.Serialize(): true}
	queue := []queueEntry{{t: goalLeft, path: nil, depth: 0}}
	goalKey := goalRight.Serialize()
	termsSeen := 1

	for len(queue) > 0 {
		if time.Now().After(deadline) {
			return Result{Status: StatusTimeout}
		}
		current := queue[0]
		queue = queue[1:]

		if current.depth >= cfg.MaxSteps {
			continue
		}

		for _, r := range rules {
			for _, next := range rewriteAtEveryPosition(current.t, r) {
				key := next.Serialize()
				if key == goalKey {
					path := append(append([]Step{}, current.path...), Step{Rule: r.name, Left: current.t.Serialize(), Right: key})
					return Result{Status: StatusProved, Steps: path}
				}
				if visited[key] {
					continue
				}
				termsSeen++
				if termsSeen > cfg.MaxTerms {
					return Result{Status: StatusCutoff}
				}
				visited[key] = true
				newPath := append(append([]Step{}, current.path...), Step{Rule: r.name, Left: current.t.Serialize(), Right: key})
				queue = append(queue, queueEntry{t: next, path: newPath, depth: current.depth + 1})
			}
		}
	}
	return Result{Status: StatusUnknown}
}

func buildRules(axioms []Axiom) []rule {
	var rules []rule
	for _, a := range axioms {
		rules = append(rules, rule{name: a.Name, lhs: a.Left, rhs: a.Right})
		rules = append(rules, rule{name: a.Name + "_sym", lhs: a.Right, rhs: a.Left})
	}
	return rules
}

func orderRules(rules []rule, order RuleOrder) {
	switch order {
	case OrderReverse:
		for i, j := 0, len(rules)-1; i < j; i, j = i+1, j-1 {
			rules[i], rules[j] = rules[j], rules[i]
		}
	case OrderShortestLHS:
		sort.SliceStable(rules, func(i, j int) bool { return rules[i].lhs.Size() < rules[j].lhs.Size() })
	case OrderLongestLHS:
		sort.SliceStable(rules, func(i, j int) bool { return rules[i].lhs.Size() > rules[j].lhs.Size() })
	case OrderGiven, "":
		// keep declaration order
	}
}

// rewriteAtEveryPosition returns every term obtained by applying r at
// any position of t where r.lhs matches (linear substitution,
// first-use-binds, later-use-must-equal).
func rewriteAtEveryPosition(t *term.Term, r rule) []*term.Term {
	var out []*term.Term
	if bindings, ok := match(r.lhs, t, map[string]*term.Term{}); ok {
		out = append(out, substitute(r.rhs, bindings))
	}
	if t.IsOp() {
		for i, child := range t.Args {
			for _, replaced := range rewriteAtEveryPosition(child, r) {
				args := append([]*term.Term{}, t.Args...)
				args[i] = replaced
				out = append(out, term.NewOp(t.Name, args...))
			}
		}
	}
	return out
}

// match attempts to unify pattern against t, binding pattern variables
// linearly: a variable's first occurrence binds it, every later
// occurrence must match the same subterm structurally.
func match(pattern, t *term.Term, bindings map[string]*term.Term) (map[string]*term.Term, bool) {
	if pattern.IsVar() {
		if bound, ok := bindings[pattern.Name]; ok {
			if bound.Serialize() == t.Serialize() {
				return bindings, true
			}
			return nil, false
		}
		bindings[pattern.Name] = t
		return bindings, true
	}
	if !t.IsOp() || t.Name != pattern.Name || len(t.Args) != len(pattern.Args) {
		return nil, false
	}
	for i := range pattern.Args {
		var ok bool
		bindings, ok = match(pattern.Args[i], t.Args[i], bindings)
		if !ok {
			return nil, false
		}
	}
	return bindings, true
}

func substitute(t *term.Term, bindings map[string]*term.Term) *term.Term {
	if t.IsVar() {
		if bound, ok := bindings[t.Name]; ok {
			return bound.Clone()
		}
		return t.Clone()
	}
	args := make([]*term.Term, len(t.Args))
	for i, a := range t.Args {
		args[i] = substitute(a, bindings)
	}
	return term.NewOp(t.Name, args...)
}
