package dossier

import (
	"github.com/ehrlich-b/axlab/internal/model"
	"github.com/ehrlich-b/axlab/internal/term"
	"github.com/ehrlich-b/axlab/internal/universe"
)

type benchmarkIdentity struct {
	Name  string
	Left  *term.Term
	Right *term.Term
}

func benchmarkIdentities(spec *universe.Spec) []benchmarkIdentity {
	var out []benchmarkIdentity
	if op, ok := spec.FirstBinary(); ok {
		f := func(a, b *term.Term) *term.Term { return term.NewOp(op.Name, a, b) }
		x0, x1, x2, x3 := term.NewVar("x0"), term.NewVar("x1"), term.NewVar("x2"), term.NewVar("x3")
		out = append(out,
			benchmarkIdentity{"left_absorption", f(x0, f(x0, x1)), x0},
			benchmarkIdentity{"right_absorption", f(f(x0, x1), x1), x1},
			benchmarkIdentity{"left_distributive", f(x0, f(x1, x2)), f(f(x0, x1), f(x0, x2))},
			benchmarkIdentity{"right_distributive", f(f(x0, x1), x2), f(f(x0, x2), f(x1, x2))},
			benchmarkIdentity{"medial", f(f(x0, x1), f(x2, x3)), f(f(x0, x2), f(x1, x3))},
		)
	}
	if op, ok := spec.FirstUnary(); ok {
		g := func(a *term.Term) *term.Term { return term.NewOp(op.Name, a) }
		x0 := term.NewVar("x0")
		out = append(out,
			benchmarkIdentity{"unary_idempotent", g(g(x0)), g(x0)},
			benchmarkIdentity{"unary_involutive", g(g(x0)), x0},
		)
	}
	return out
}

func runBenchmarkSuite(spec *universe.Spec, canonLeft, canonRight *term.Term, cfg Config) []BenchmarkIdentityResult {
	searchCfg := model.Config{MaxCandidates: cfg.MaxModelCandidates, MaxSeconds: cfg.MaxModelSeconds}
	axiom := model.Equation{Left: canonLeft, Right: canonRight}

	results := make([]BenchmarkIdentityResult, 0, len(benchmarkIdentities(spec)))
	for _, b := range benchmarkIdentities(spec) {
		status, size, fp := implicationStatus(spec, []model.Equation{axiom}, model.Equation{Left: b.Left, Right: b.Right}, cfg.MaxModelSize, searchCfg)
		results = append(results, BenchmarkIdentityResult{
			Name:                      b.Name,
			Left:                      b.Left.Serialize(),
			Right:                     b.Right.Serialize(),
			Status:                    status,
			CounterexampleSize:        size,
			CounterexampleFingerprint: fp,
		})
	}
	return results
}
