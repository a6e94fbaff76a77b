package dossier

import (
	"github.com/ehrlich-b/axlab/internal/model"
	"github.com/ehrlich-b/axlab/internal/probe"
	"github.com/ehrlich-b/axlab/internal/term"
	"github.com/ehrlich-b/axlab/internal/universe"
)

// translationSearch checks, for every theory the axiom was probed
// against, how the two relate: "equivalent" when each implies the
// other, "theory_stronger" when the axiom implies the theory but a
// counterexample shows the theory does not imply the axiom, "no_match"
// when the axiom does not imply the theory, and "inconclusive" when
// either search ran out of budget.
func translationSearch(spec *universe.Spec, canonLeft, canonRight *term.Term, implications []probe.Result, cfg Config) []TranslationCandidate {
	searchCfg := model.Config{MaxCandidates: cfg.MaxModelCandidates, MaxSeconds: cfg.MaxModelSeconds}
	axiom := model.Equation{Left: canonLeft, Right: canonRight}

	byTheory := map[string]probe.Result{}
	for _, p := range implications {
		byTheory[p.Theory] = p
	}

	var candidates []TranslationCandidate
	for _, theory := range probe.LibraryForSpec(spec) {
		p, ok := byTheory[theory.Name]
		if !ok {
			continue
		}
		axiomImplies := p.Status
		status := probe.StatusInconclusive
		theoryImplies := probe.StatusInconclusive
		var size *int
		var fp *string

		if axiomImplies == probe.StatusConfirmed {
			theoryImplies, size, fp = implicationStatus(
				spec,
				[]model.Equation{{Left: theory.Left, Right: theory.Right}},
				axiom,
				cfg.MaxModelSize,
				searchCfg,
			)
			switch theoryImplies {
			case probe.StatusConfirmed:
				status = "equivalent"
			case probe.StatusCounterexample:
				status = "theory_stronger"
			default:
				status = probe.StatusInconclusive
			}
		} else if axiomImplies == probe.StatusCounterexample {
			status = "no_match"
		}

		candidates = append(candidates, TranslationCandidate{
			Theory:                    theory.Name,
			AxiomImplies:              axiomImplies,
			TheoryImplies:             theoryImplies,
			Status:                    status,
			CounterexampleSize:        size,
			CounterexampleFingerprint: fp,
		})
	}
	return candidates
}
