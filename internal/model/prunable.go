package model

import (
	"time"

	"github.com/ehrlich-b/axlab/internal/universe"
)

// Prunable fills the model one cell at a time, in the same declaration
// order as Naive, but performs a partial-consistency check after each
// cell assignment: if some equation's two sides both fully evaluate
// under the partial model and disagree, it is already violated and the
// branch backtracks immediately. The must-violate goal is a positive
// one and can only be decided once the table is complete.
type Prunable struct{}

func (Prunable) FindModel(spec *universe.Spec, equations []Equation, n int, cfg Config, mustViolate *Equation) Result {
	start := time.Now()
	deadline := start.Add(secondsToDuration(cfg.MaxSeconds))

	tables := buildTables(spec, n, true)
	view := newModelView(tables)
	slots := flattenSlots(tables, n)

	search := &prunableSearch{
		spec:          spec,
		equations:     equations,
		mustViolate:   mustViolate,
		n:             n,
		view:          view,
		tables:        tables,
		slots:         slots,
		maxCandidates: cfg.MaxCandidates,
		deadline:      deadline,
	}
	status, fp := search.fill(0)
	if status == "" {
		status = StatusNotFound
	}
	result := Result{
		Status:         status,
		Size:           n,
		Candidates:     search.candidates,
		ElapsedSeconds: time.Since(start).Seconds(),
	}
	if status == StatusFound {
		result.Fingerprint = &fp
	}
	return result
}

type prunableSearch struct {
	spec          *universe.Spec
	equations     []Equation
	mustViolate   *Equation
	n             int
	view          *modelView
	tables        []*table
	slots         []slotRef
	maxCandidates int
	candidates    int
	deadline      time.Time
}

func (s *prunableSearch) fill(slotIdx int) (string, string) {
	if clockExpired(s.deadline) {
		return deadlineStatus(s.candidates, s.maxCandidates), ""
	}
	if slotIdx == len(s.slots) {
		return s.checkCandidate()
	}
	slot := s.slots[slotIdx]
	for v := 0; v < s.n; v++ {
		slot.table.values[slot.index] = v
		if !s.partialConsistent() {
			continue
		}
		status, fp := s.fill(slotIdx + 1)
		if status != "" {
			return status, fp
		}
	}
	slot.table.values[slot.index] = -1
	return "", ""
}

// partialConsistent checks every equation against every assignment of
// its free variables, short-circuiting on the first definite violation
// under the current (possibly incomplete) model. Evaluation is memoized
// per (subterm, assignment) for the duration of this single check.
func (s *prunableSearch) partialConsistent() bool {
	cache := map[string]int{}
	for _, eq := range s.equations {
		vars := orderedVars(s.spec, eq.Left, eq.Right)
		for _, a := range assignments(vars, s.n) {
			lv, lok := s.view.evalPartial(eq.Left, s.n, a, cache)
			rv, rok := s.view.evalPartial(eq.Right, s.n, a, cache)
			if lok && rok && lv != rv {
				return false
			}
		}
	}
	return true
}

func (s *prunableSearch) checkCandidate() (string, string) {
	s.candidates++
	if s.candidates > s.maxCandidates {
		return StatusCutoff, ""
	}
	for _, eq := range s.equations {
		if !s.view.equationHolds(s.spec, eq, s.n) {
			return "", ""
		}
	}
	if s.mustViolate != nil && !s.view.violatesSomewhere(s.spec, *s.mustViolate, s.n) {
		return "", ""
	}
	return StatusFound, Fingerprint(s.spec, s.tables, s.n)
}
