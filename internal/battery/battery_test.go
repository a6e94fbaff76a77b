package battery

import (
	"testing"

	"github.com/ehrlich-b/axlab/internal/term"
	"github.com/ehrlich-b/axlab/internal/universe"
)

func specWithBinaryF(t *testing.T) *universe.Spec {
	t.Helper()
	spec, err := universe.New("v0", "equational", []universe.Operation{
		{Name: "f", Arity: 2},
	}, 3, 5)
	if err != nil {
		t.Fatal(err)
	}
	return spec
}

func TestAnalyzeAxiomCommutativity(t *testing.T) {
	spec := specWithBinaryF(t)
	left, _ := term.Parse("f(x0,x1)")
	right, _ := term.Parse("f(x1,x0)")

	cfg := DefaultConfig()
	cfg.MaxModelSize = 2
	cfg.MaxModelCandidates = 50000
	cfg.MaxModelSeconds = 3.0

	result, err := AnalyzeAxiom(spec, left, right, cfg, nil)
	if err != nil {
		t.Fatal(err)
	}

	if result.Degeneracy.TrivialIdentity {
		t.Error("commutativity should not be flagged as a trivial identity")
	}
	if result.Degeneracy.ProjectionCollapse {
		t.Error("commutativity should not be flagged as a projection collapse")
	}
	if result.Degeneracy.ConstantCollapse {
		t.Error("commutativity should not be flagged as a constant collapse")
	}
	if len(result.ModelSpectrum) != 2 {
		t.Fatalf("expected 2 spectrum entries, got %d", len(result.ModelSpectrum))
	}

	var commutativeResult, associativeResult *string
	for i := range result.Implications {
		imp := result.Implications[i]
		switch imp.Theory {
		case "commutative":
			commutativeResult = &result.Implications[i].Status
		case "associative":
			associativeResult = &result.Implications[i].Status
		}
	}
	if commutativeResult == nil || *commutativeResult != "confirmed" {
		t.Errorf("commutative implication = %v, want confirmed", commutativeResult)
	}
	if associativeResult == nil || *associativeResult != "counterexample" {
		t.Errorf("associative implication = %v, want counterexample", associativeResult)
	}

	if result.Metrics["trivial_identity"] != false {
		t.Errorf("metrics trivial_identity = %v, want false", result.Metrics["trivial_identity"])
	}
	if result.Metrics["model_found_ratio"] == nil {
		t.Error("model_found_ratio should not be nil when spectrum is non-empty")
	}
}

func TestAnalyzeAxiomTrivialIdentity(t *testing.T) {
	spec := specWithBinaryF(t)
	left, _ := term.Parse("x0")
	right, _ := term.Parse("x0")

	cfg := DefaultConfig()
	cfg.MaxModelSize = 1
	cfg.MaxModelCandidates = 1000
	cfg.MaxModelSeconds = 1.0

	result, err := AnalyzeAxiom(spec, left, right, cfg, nil)
	if err != nil {
		t.Fatal(err)
	}
	if !result.Degeneracy.TrivialIdentity {
		t.Error("x0 = x0 should be flagged as a trivial identity")
	}
}

func TestAnalyzeAxiomProjectionCollapse(t *testing.T) {
	spec := specWithBinaryF(t)
	left, _ := term.Parse("f(x0,x1)")
	right, _ := term.Parse("x0")

	cfg := DefaultConfig()
	cfg.MaxModelSize = 1
	cfg.MaxModelCandidates = 1000
	cfg.MaxModelSeconds = 1.0

	result, err := AnalyzeAxiom(spec, left, right, cfg, nil)
	if err != nil {
		t.Fatal(err)
	}
	if !result.Degeneracy.ProjectionCollapse {
		t.Error("f(x0,x1) = x0 should be flagged as a projection collapse")
	}
}

func TestComputeMetricsNullableRatios(t *testing.T) {
	features := SyntacticFeatures{LeftSize: 1, RightSize: 1, TotalSize: 2, VarCount: 1}
	degeneracy := DegeneracyReport{}
	metrics := ComputeMetrics(features, degeneracy, nil, nil, nil, nil, nil)

	for _, key := range []string{
		"model_found_ratio",
		"model_decisive_ratio",
		"implication_confirmed_ratio",
		"implication_proved_ratio",
		"known_theory_distance",
		"perturbation_signature_agreement_ratio",
	} {
		if metrics[key] != nil {
			t.Errorf("metric %q = %v, want nil for empty inputs", key, metrics[key])
		}
	}
	if metrics["smallest_model_size"] != nil {
		t.Errorf("smallest_model_size = %v, want nil", metrics["smallest_model_size"])
	}
	if metrics["robustness_under_perturbation"] != nil {
		t.Errorf("robustness_under_perturbation with empty spectrum/neighbors = %v, want nil", metrics["robustness_under_perturbation"])
	}
}

func TestArchiveLookupDrivesNovelty(t *testing.T) {
	spec := specWithBinaryF(t)
	left, _ := term.Parse("f(x0,x1)")
	right, _ := term.Parse("f(x1,x0)")

	cfg := DefaultConfig()
	cfg.MaxModelSize = 1
	cfg.MaxModelCandidates = 1000
	cfg.MaxModelSeconds = 1.0

	seenClasses := map[string]bool{}
	result, err := AnalyzeAxiom(spec, left, right, cfg, func(class string) bool {
		seenClasses[class] = true
		return true
	})
	if err != nil {
		t.Fatal(err)
	}
	if result.Metrics["novelty_vs_archive"] != 0.0 {
		t.Errorf("novelty_vs_archive = %v, want 0.0 when archive lookup reports a hit", result.Metrics["novelty_vs_archive"])
	}
	if len(seenClasses) == 0 {
		t.Error("archive lookup was never invoked")
	}
}
