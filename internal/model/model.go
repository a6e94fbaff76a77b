// Package model implements the backtracking finite-model search that
// underlies every decision procedure in the lab: given a universe spec,
// a list of equations, a domain size, and a search budget, it tries to
// fill in operation tables so every equation holds for every variable
// assignment (and an optional must-violate equation fails for some).
package model

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/ehrlich-b/axlab/internal/obs"
	"github.com/ehrlich-b/axlab/internal/term"
	"github.com/ehrlich-b/axlab/internal/universe"
)

// Equation is an ordered pair of terms read as left = right.
type Equation struct {
	Left  *term.Term
	Right *term.Term
}

// Config bounds a single model search call.
type Config struct {
	MaxCandidates int
	MaxSeconds    float64
}

// Status values a ModelFinder call can report.
const (
	StatusFound     = "found"
	StatusNotFound  = "not_found"
	StatusTimeout   = "timeout"
	StatusCutoff    = "cutoff"
)

// Result is the outcome of one ModelFinder call.
type Result struct {
	Status         string
	Size           int
	Fingerprint    *string
	Candidates     int
	ElapsedSeconds float64
}

// Engine is the shared contract implemented by the naive and prunable
// finders. Both produce identical fingerprints given identical inputs
// and sufficient budget.
type Engine interface {
	FindModel(spec *universe.Spec, equations []Equation, size int, cfg Config, mustViolate *Equation) Result
}

// Instrument wraps engine so every FindModel call records its outcome
// and candidate count under axlab_model_search_* against the given
// metrics registry. name labels the engine (e.g. "naive", "prunable").
// Passing a nil metrics registry returns engine unchanged.
func Instrument(engine Engine, name string, metrics *obs.Metrics) Engine {
	if metrics == nil {
		return engine
	}
	return instrumentedEngine{engine: engine, name: name, metrics: metrics}
}

type instrumentedEngine struct {
	engine  Engine
	name    string
	metrics *obs.Metrics
}

func (e instrumentedEngine) FindModel(spec *universe.Spec, equations []Equation, size int, cfg Config, mustViolate *Equation) Result {
	result := e.engine.FindModel(spec, equations, size, cfg, mustViolate)
	e.metrics.ModelSearchOutcomesTotal.WithLabelValues(e.name, result.Status).Inc()
	e.metrics.ModelSearchCandidatesHistogram.WithLabelValues(e.name).Observe(float64(result.Candidates))
	return result
}

// table is a flattened operator table: index a for arity 1, a*n+b for
// arity 2. -1 marks an unassigned cell (used by the prunable engine).
type table struct {
	op     universe.Operation
	values []int
}

func slotCount(arity, n int) int {
	switch arity {
	case 1:
		return n
	case 2:
		return n * n
	}
	return 1
}

func buildTables(spec *universe.Spec, n int, unassigned bool) []*table {
	tables := make([]*table, len(spec.Operations))
	for i, op := range spec.Operations {
		count := slotCount(op.Arity, n)
		values := make([]int, count)
		if unassigned {
			for j := range values {
				values[j] = -1
			}
		}
		tables[i] = &table{op: op, values: values}
	}
	return tables
}

type modelView struct {
	tables []*table
	byName map[string]*table
}

func newModelView(tables []*table) *modelView {
	byName := make(map[string]*table, len(tables))
	for _, tb := range tables {
		byName[tb.op.Name] = tb
	}
	return &modelView{tables: tables, byName: byName}
}

// evalTotal evaluates t under a fully assigned model; panics only if the
// model is incomplete, which callers must never allow at this path.
func (m *modelView) evalTotal(t *term.Term, n int, assignment map[string]int) int {
	if t.IsVar() {
		return assignment[t.Name]
	}
	tb := m.byName[t.Name]
	switch t.Kind {
	case term.KindOp:
		switch len(t.Args) {
		case 1:
			a := m.evalTotal(t.Args[0], n, assignment)
			return tb.values[a]
		case 2:
			a := m.evalTotal(t.Args[0], n, assignment)
			b := m.evalTotal(t.Args[1], n, assignment)
			return tb.values[a*n+b]
		}
	}
	return 0
}

// evalPartial evaluates t, returning ok=false if any required cell is
// still unassigned (-1). Results are memoized per (subterm, assignment)
// within the caller-supplied cache, as required for one consistency
// check pass.
func (m *modelView) evalPartial(t *term.Term, n int, assignment map[string]int, cache map[string]int) (int, bool) {
	key := t.Serialize() + "|" + assignmentKey(t.Vars(), assignment)
	if v, ok := cache[key]; ok {
		if v == -2 {
			return 0, false
		}
		return v, true
	}
	v, ok := m.evalPartialUncached(t, n, assignment, cache)
	if !ok {
		cache[key] = -2
	} else {
		cache[key] = v
	}
	return v, ok
}

func (m *modelView) evalPartialUncached(t *term.Term, n int, assignment map[string]int, cache map[string]int) (int, bool) {
	if t.IsVar() {
		return assignment[t.Name], true
	}
	tb := m.byName[t.Name]
	switch len(t.Args) {
	case 1:
		a, ok := m.evalPartial(t.Args[0], n, assignment, cache)
		if !ok {
			return 0, false
		}
		v := tb.values[a]
		if v < 0 {
			return 0, false
		}
		return v, true
	case 2:
		a, ok := m.evalPartial(t.Args[0], n, assignment, cache)
		if !ok {
			return 0, false
		}
		b, ok := m.evalPartial(t.Args[1], n, assignment, cache)
		if !ok {
			return 0, false
		}
		v := tb.values[a*n+b]
		if v < 0 {
			return 0, false
		}
		return v, true
	}
	return 0, true
}

func assignmentKey(vars []string, assignment map[string]int) string {
	uniq := uniqueStrings(vars)
	parts := make([]string, len(uniq))
	for i, v := range uniq {
		parts[i] = v + "=" + strconv.Itoa(assignment[v])
	}
	return strings.Join(parts, ",")
}

func uniqueStrings(in []string) []string {
	seen := map[string]bool{}
	var out []string
	for _, s := range in {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	sort.Strings(out)
	return out
}

// orderedVars returns the distinct variables of t1/t2, in spec variable
// declaration order, so assignment enumeration is deterministic.
func orderedVars(spec *universe.Spec, terms ...*term.Term) []string {
	present := map[string]bool{}
	for _, t := range terms {
		for _, v := range t.Vars() {
			present[v] = true
		}
	}
	var out []string
	for _, name := range spec.VariableNames() {
		if present[name] {
			out = append(out, name)
		}
	}
	return out
}

// assignments enumerates every assignment of vars to domain values
// {0,...,n-1}, in lexicographic order of the variable tuple.
func assignments(vars []string, n int) []map[string]int {
	if len(vars) == 0 {
		return []map[string]int{{}}
	}
	var out []map[string]int
	counters := make([]int, len(vars))
	for {
		assignment := make(map[string]int, len(vars))
		for i, v := range vars {
			assignment[v] = counters[i]
		}
		out = append(out, assignment)

		i := len(vars) - 1
		for i >= 0 {
			counters[i]++
			if counters[i] < n {
				break
			}
			counters[i] = 0
			i--
		}
		if i < 0 {
			break
		}
	}
	return out
}

// equationHolds reports whether eq holds for every assignment of its
// free variables under a fully assigned model.
func (m *modelView) equationHolds(spec *universe.Spec, eq Equation, n int) bool {
	vars := orderedVars(spec, eq.Left, eq.Right)
	for _, a := range assignments(vars, n) {
		if m.evalTotal(eq.Left, n, a) != m.evalTotal(eq.Right, n, a) {
			return false
		}
	}
	return true
}

// violatesSomewhere reports whether eq fails for at least one assignment
// of its free variables under a fully assigned model.
func (m *modelView) violatesSomewhere(spec *universe.Spec, eq Equation, n int) bool {
	return !m.equationHolds(spec, eq, n)
}

// Fingerprint renders the deterministic witness string for a fully
// assigned model: "n=<n>;op1=v0,v1,...;op2=..." with operators in spec
// declaration order.
func Fingerprint(spec *universe.Spec, tables []*table, n int) string {
	parts := make([]string, 0, len(tables))
	byName := map[string]*table{}
	for _, tb := range tables {
		byName[tb.op.Name] = tb
	}
	for _, op := range spec.Operations {
		tb := byName[op.Name]
		vals := make([]string, len(tb.values))
		for i, v := range tb.values {
			vals[i] = strconv.Itoa(v)
		}
		parts = append(parts, fmt.Sprintf("%s=%s", op.Name, strings.Join(vals, ",")))
	}
	return fmt.Sprintf("n=%d;%s", n, strings.Join(parts, ";"))
}

// deadlineStatus resolves the cutoff-vs-timeout tie per the documented
// rule: candidate overflow wins over wall-clock expiry.
func deadlineStatus(candidates, maxCandidates int) string {
	if candidates > maxCandidates {
		return StatusCutoff
	}
	return StatusTimeout
}

func clockExpired(deadline time.Time) bool {
	return time.Now().After(deadline)
}
