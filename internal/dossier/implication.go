package dossier

import (
	"github.com/ehrlich-b/axlab/internal/model"
	"github.com/ehrlich-b/axlab/internal/probe"
	"github.com/ehrlich-b/axlab/internal/universe"
)

// implicationStatus decides whether axioms jointly imply identity by
// searching sizes 1..maxModelSize for a model that satisfies every
// axiom but violates identity somewhere. It always uses the naive
// engine: the dossier toolchain favors predictable, easy-to-audit
// search order over the prunable engine's speed.
func implicationStatus(spec *universe.Spec, axioms []model.Equation, identity model.Equation, maxModelSize int, searchCfg model.Config) (status string, counterexampleSize *int, counterexampleFingerprint *string) {
	engine := model.Naive{}
	cutoff := false
	for size := 1; size <= maxModelSize; size++ {
		r := engine.FindModel(spec, axioms, size, searchCfg, &identity)
		if r.Status == model.StatusFound {
			sz := size
			counterexampleSize = &sz
			counterexampleFingerprint = r.Fingerprint
			break
		}
		if r.Status == model.StatusTimeout || r.Status == model.StatusCutoff {
			cutoff = true
		}
	}
	if counterexampleSize != nil {
		return probe.StatusCounterexample, counterexampleSize, counterexampleFingerprint
	}
	if cutoff {
		return probe.StatusInconclusive, nil, nil
	}
	return probe.StatusConfirmed, nil, nil
}
