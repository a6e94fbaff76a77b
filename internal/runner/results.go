package runner

import (
	"github.com/ehrlich-b/axlab/internal/battery"
	"github.com/ehrlich-b/axlab/internal/probe"
)

func resultToMap(axiom Axiom, result battery.Result) map[string]any {
	implications := make([]any, len(result.Implications))
	for i, p := range result.Implications {
		implications[i] = implicationToMap(p)
	}
	neighbors := make([]any, len(result.PerturbationNeighbors))
	for i, n := range result.PerturbationNeighbors {
		neighbors[i] = perturbationNeighborToMap(n)
	}
	modelSpectrum := make([]any, len(result.ModelSpectrum))
	for i, e := range result.ModelSpectrum {
		modelSpectrum[i] = map[string]any{
			"size":            e.Size,
			"status":          e.Status,
			"fingerprint":     derefString(e.Fingerprint),
			"candidates":      e.Candidates,
			"elapsed_seconds": e.ElapsedSeconds,
		}
	}

	return map[string]any{
		"axiom": map[string]any{
			"left":  axiom.Left.Serialize(),
			"right": axiom.Right.Serialize(),
		},
		"features": map[string]any{
			"left_size":      result.Features.LeftSize,
			"right_size":     result.Features.RightSize,
			"total_size":     result.Features.TotalSize,
			"left_depth":     result.Features.LeftDepth,
			"right_depth":    result.Features.RightDepth,
			"max_depth":      result.Features.MaxDepth,
			"var_count":      result.Features.VarCount,
			"symmetry_class": result.Features.SymmetryClass,
		},
		"degeneracy": map[string]any{
			"trivial_identity":    result.Degeneracy.TrivialIdentity,
			"projection_collapse": result.Degeneracy.ProjectionCollapse,
			"constant_collapse":   result.Degeneracy.ConstantCollapse,
		},
		"model_spectrum":         modelSpectrum,
		"smallest_model_size":    derefInt(result.SmallestModelSize),
		"implications":           implications,
		"perturbation_neighbors": neighbors,
		"metrics":                result.Metrics,
	}
}

func implicationToMap(p probe.Result) map[string]any {
	data := map[string]any{
		"theory":                     p.Theory,
		"status":                     p.Status,
		"checked_max_size":           p.CheckedMaxSize,
		"counterexample_size":        derefInt(p.CounterexampleSize),
		"counterexample_fingerprint": derefString(p.CounterexampleFingerprint),
		"proof_status":               nil,
		"proof_elapsed_seconds":      nil,
		"proof_steps":                nil,
	}
	if p.Proof != nil {
		data["proof_status"] = p.Proof.Status
		data["proof_elapsed_seconds"] = p.Proof.ElapsedSeconds
		steps := make([]any, len(p.Proof.Steps))
		for i, s := range p.Proof.Steps {
			steps[i] = map[string]any{"rule": s.Rule, "left": s.Left, "right": s.Right}
		}
		data["proof_steps"] = steps
	}
	return data
}

func perturbationNeighborToMap(n battery.PerturbationNeighbor) map[string]any {
	statuses := make([]any, len(n.ModelStatuses))
	for i, s := range n.ModelStatuses {
		statuses[i] = s
	}
	return map[string]any{
		"left":                n.Left.Serialize(),
		"right":               n.Right.Serialize(),
		"model_statuses":      statuses,
		"smallest_model_size": derefInt(n.SmallestModelSize),
	}
}

func derefInt(v *int) any {
	if v == nil {
		return nil
	}
	return *v
}

func derefString(v *string) any {
	if v == nil {
		return nil
	}
	return *v
}
