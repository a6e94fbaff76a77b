package battery

import "github.com/ehrlich-b/axlab/internal/probe"

func ratio(numerator, denominator int) any {
	if denominator <= 0 {
		return nil
	}
	return float64(numerator) / float64(denominator)
}

func countModelStatuses(spectrum []ModelSpectrumEntry) map[string]int {
	counts := map[string]int{}
	for _, e := range spectrum {
		counts[e.Status]++
	}
	return counts
}

func countImplicationStatuses(implications []probe.Result) map[string]int {
	counts := map[string]int{}
	for _, p := range implications {
		counts[p.Status]++
	}
	return counts
}

func agreementRatio(base, candidate []string) any {
	if len(base) == 0 {
		return nil
	}
	matches := 0
	for i := range base {
		if i >= len(candidate) {
			break
		}
		if base[i] == candidate[i] {
			matches++
		}
	}
	return float64(matches) / float64(len(base))
}

// ComputeMetrics computes the required metrics map, matching the
// Python reference key for key, including its null-vs-zero-denominator
// discipline.
func ComputeMetrics(
	features SyntacticFeatures,
	degeneracy DegeneracyReport,
	spectrum []ModelSpectrumEntry,
	implications []probe.Result,
	smallestModelSize *int,
	noveltyVsArchive *float64,
	neighbors []PerturbationNeighbor,
) map[string]any {
	modelCounts := countModelStatuses(spectrum)
	implCounts := countImplicationStatuses(implications)

	modelFound := modelCounts["found"]
	modelNotFound := modelCounts["not_found"]
	modelTimeout := modelCounts["timeout"]
	modelCutoff := modelCounts["cutoff"]
	modelTotal := len(spectrum)
	modelDecisive := modelFound + modelNotFound

	implConfirmed := implCounts["confirmed"]
	implCounterexample := implCounts["counterexample"]
	implInconclusive := implCounts["inconclusive"]
	implTotal := len(implications)

	proofAttempted := 0
	proofProved := 0
	var proofStepCounts []int
	for _, p := range implications {
		if p.Proof == nil {
			continue
		}
		proofAttempted++
		if p.Proof.Status == "proved" {
			proofProved++
			proofStepCounts = append(proofStepCounts, len(p.Proof.Steps))
		}
	}
	proofStepTotal := 0
	for _, c := range proofStepCounts {
		proofStepTotal += c
	}
	var proofStepMax any
	if len(proofStepCounts) > 0 {
		max := proofStepCounts[0]
		for _, c := range proofStepCounts[1:] {
			if c > max {
				max = c
			}
		}
		proofStepMax = max
	}

	var knownTheoryDistance any
	if implTotal > 0 {
		knownTheoryDistance = (float64(implCounterexample) + 0.5*float64(implInconclusive)) / float64(implTotal)
	}

	perturbationNeighborCount := 0
	var perturbationSignatureAgreementRatio any
	var perturbationExactSignatureMatchRatio any
	var perturbationSmallestModelSizeMatchRatio any
	var perturbationRobustness any

	if len(neighbors) > 0 {
		perturbationNeighborCount = len(neighbors)
		baselineLen := len(neighbors[0].ModelStatuses)
		baselineStatuses := make([]string, 0, baselineLen)
		for i := 0; i < baselineLen && i < len(spectrum); i++ {
			baselineStatuses = append(baselineStatuses, spectrum[i].Status)
		}

		var agreementSum float64
		agreementCount := 0
		exactMatches := 0
		smallestMatches := 0
		for _, n := range neighbors {
			if r := agreementRatio(baselineStatuses, n.ModelStatuses); r != nil {
				agreementSum += r.(float64)
				agreementCount++
			}
			if sameStatuses(baselineStatuses, n.ModelStatuses) {
				exactMatches++
			}
			if intPtrEqual(n.SmallestModelSize, smallestModelSize) {
				smallestMatches++
			}
		}
		perturbationSignatureAgreementRatio = ratio(int(agreementSum), agreementCount)
		if agreementCount > 0 {
			perturbationSignatureAgreementRatio = agreementSum / float64(agreementCount)
		} else {
			perturbationSignatureAgreementRatio = nil
		}
		perturbationExactSignatureMatchRatio = ratio(exactMatches, perturbationNeighborCount)
		perturbationSmallestModelSizeMatchRatio = ratio(smallestMatches, perturbationNeighborCount)
		perturbationRobustness = perturbationExactSignatureMatchRatio
	} else {
		perturbationRobustness = ratio(modelDecisive, modelTotal)
	}

	candidateTotal := 0
	var elapsedTotal float64
	for _, e := range spectrum {
		candidateTotal += e.Candidates
		elapsedTotal += e.ElapsedSeconds
	}

	var novelty any
	if noveltyVsArchive != nil {
		novelty = *noveltyVsArchive
	}

	return map[string]any{
		"left_size":            features.LeftSize,
		"right_size":           features.RightSize,
		"total_size":           features.TotalSize,
		"left_depth":           features.LeftDepth,
		"right_depth":          features.RightDepth,
		"max_depth":            features.MaxDepth,
		"var_count":            features.VarCount,
		"syntactic_complexity": features.TotalSize + features.MaxDepth + features.VarCount,
		"smallest_model_size":  intOrNil(smallestModelSize),

		"trivial_identity":    degeneracy.TrivialIdentity,
		"projection_collapse": degeneracy.ProjectionCollapse,
		"constant_collapse":   degeneracy.ConstantCollapse,

		"nontrivial_model_spectrum": modelFound > 0 && modelNotFound > 0,
		"model_found_count":         modelFound,
		"model_not_found_count":     modelNotFound,
		"model_timeout_count":       modelTimeout,
		"model_cutoff_count":        modelCutoff,
		"model_found_ratio":         ratio(modelFound, modelTotal),
		"model_decisive_ratio":      ratio(modelDecisive, modelTotal),

		"robustness_under_perturbation": perturbationRobustness,
		"perturbation_neighbor_count":   perturbationNeighborCount,
		"perturbation_signature_agreement_ratio":       perturbationSignatureAgreementRatio,
		"perturbation_exact_signature_match_ratio":     perturbationExactSignatureMatchRatio,
		"perturbation_smallest_model_size_match_ratio": perturbationSmallestModelSizeMatchRatio,

		"model_candidate_total": candidateTotal,
		"model_elapsed_total":   elapsedTotal,

		"implication_confirmed_count":      implConfirmed,
		"implication_counterexample_count": implCounterexample,
		"implication_inconclusive_count":   implInconclusive,
		"implication_confirmed_ratio":      ratio(implConfirmed, implTotal),
		"implication_counterexample_ratio": ratio(implCounterexample, implTotal),
		"implication_inconclusive_ratio":   ratio(implInconclusive, implTotal),

		"implication_proof_attempted_count": proofAttempted,
		"implication_proved_count":          proofProved,
		"implication_proved_ratio":          ratio(proofProved, proofAttempted),
		"proof_step_total":                  proofStepTotal,
		"proof_step_mean":                   ratio(proofStepTotal, len(proofStepCounts)),
		"proof_step_max":                    proofStepMax,

		"known_theory_distance": knownTheoryDistance,
		"novelty_vs_archive":    novelty,
	}
}

func intOrNil(v *int) any {
	if v == nil {
		return nil
	}
	return *v
}

func sameStatuses(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func intPtrEqual(a, b *int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
