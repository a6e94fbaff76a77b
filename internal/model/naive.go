package model

import (
	"time"

	"github.com/ehrlich-b/axlab/internal/universe"
)

// Naive enumerates the full Cartesian product of operator tables in
// lexicographic order (operator declaration order, then slot index,
// then value 0..n-1), checking every equation on every assignment for
// each complete candidate table.
type Naive struct{}

func (Naive) FindModel(spec *universe.Spec, equations []Equation, n int, cfg Config, mustViolate *Equation) Result {
	start := time.Now()
	deadline := start.Add(secondsToDuration(cfg.MaxSeconds))

	tables := buildTables(spec, n, false)
	view := newModelView(tables)
	slots := flattenSlots(tables, n)

	search := &naiveSearch{
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

type slotRef struct {
	table *table
	index int
}

func flattenSlots(tables []*table, n int) []slotRef {
	var slots []slotRef
	for _, tb := range tables {
		for i := range tb.values {
			slots = append(slots, slotRef{table: tb, index: i})
		}
	}
	return slots
}

type naiveSearch struct {
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

func (s *naiveSearch) fill(slotIdx int) (string, string) {
	if clockExpired(s.deadline) {
		return deadlineStatus(s.candidates, s.maxCandidates), ""
	}
	if slotIdx == len(s.slots) {
		return s.checkCandidate()
	}
	slot := s.slots[slotIdx]
	for v := 0; v < s.n; v++ {
		slot.table.values[slot.index] = v
		status, fp := s.fill(slotIdx + 1)
		if status != "" {
			return status, fp
		}
	}
	return "", ""
}

func (s *naiveSearch) checkCandidate() (string, string) {
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

func secondsToDuration(seconds float64) time.Duration {
	return time.Duration(seconds * float64(time.Second))
}
