package probe

import (
	"github.com/ehrlich-b/axlab/internal/model"
	"github.com/ehrlich-b/axlab/internal/prover"
	"github.com/ehrlich-b/axlab/internal/term"
	"github.com/ehrlich-b/axlab/internal/universe"
)

// Status values an implication probe can report.
const (
	StatusConfirmed      = "confirmed"
	StatusCounterexample = "counterexample"
	StatusInconclusive   = "inconclusive"
)

// ProofArtifact carries the rewriting prover's witness for a confirmed
// implication, if the caller asked for one.
type ProofArtifact struct {
	Status         string
	ElapsedSeconds float64
	Steps          []prover.Step
}

// Result is the outcome of one theory probe.
type Result struct {
	Theory                     string
	Status                     string
	CheckedMaxSize             int
	CounterexampleSize         *int
	CounterexampleFingerprint  *string
	Proof                      *ProofArtifact
}

// Config bounds the model searches a probe runs.
type Config struct {
	MaxModelSize      int
	MaxModelCandidates int
	MaxModelSeconds   float64
}

// Run decides, for every theory in the library, whether axiom implies
// it by searching for a counterexample model up to config.MaxModelSize.
// If proverCfg is non-nil, the rewriting prover is run with it to
// attach a proof trace to every confirmed theory.
func Run(spec *universe.Spec, axiom model.Equation, library []Theory, cfg Config, engine model.Engine, proverCfg *prover.Config) []Result {
	searchCfg := model.Config{MaxCandidates: cfg.MaxModelCandidates, MaxSeconds: cfg.MaxModelSeconds}
	results := make([]Result, 0, len(library))

	for _, theory := range library {
		mustViolate := model.Equation{Left: theory.Left, Right: theory.Right}
		result := Result{Theory: theory.Name, CheckedMaxSize: cfg.MaxModelSize}

		cutoff := false
		for size := 1; size <= cfg.MaxModelSize; size++ {
			r := engine.FindModel(spec, []model.Equation{axiom}, size, searchCfg, &mustViolate)
			if r.Status == model.StatusFound {
				result.CounterexampleSize = intPtr(size)
				result.CounterexampleFingerprint = r.Fingerprint
				break
			}
			if r.Status == model.StatusTimeout || r.Status == model.StatusCutoff {
				cutoff = true
			}
		}

		var status string
		switch {
		case result.CounterexampleSize != nil:
			status = StatusCounterexample
		case cutoff:
			status = StatusInconclusive
		default:
			status = StatusConfirmed
		}
		result.Status = status

		if status == StatusConfirmed && proverCfg != nil {
			proved := prover.Prove(
				[]prover.Axiom{{Name: "axiom_0", Left: axiom.Left, Right: axiom.Right}},
				theory.Left, theory.Right,
				*proverCfg,
			)
			result.Proof = &ProofArtifact{Status: proved.Status, Steps: proved.Steps}
		}

		results = append(results, result)
	}
	return results
}

func intPtr(v int) *int { return &v }

// Axiom is a thin re-export convenience so callers need not import
// internal/term directly just to build a model.Equation.
func Axiom(left, right *term.Term) model.Equation {
	return model.Equation{Left: left, Right: right}
}
