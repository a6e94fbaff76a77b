package dossier

import (
	"testing"

	"github.com/ehrlich-b/axlab/internal/battery"
	"github.com/ehrlich-b/axlab/internal/term"
	"github.com/ehrlich-b/axlab/internal/universe"
)

func testSpec(t *testing.T) *universe.Spec {
	t.Helper()
	spec, err := universe.New("v0", "equational", []universe.Operation{
		{Name: "f", Arity: 2},
	}, 4, 5)
	if err != nil {
		t.Fatal(err)
	}
	return spec
}

func TestInterpretAxiomCommutativity(t *testing.T) {
	spec := testSpec(t)
	left, _ := term.Parse("f(x0,x1)")
	right, _ := term.Parse("f(x1,x0)")

	bcfg := battery.DefaultConfig()
	bcfg.MaxModelSize = 2
	bcfg.MaxModelCandidates = 50000
	bcfg.MaxModelSeconds = 3.0

	result, err := battery.AnalyzeAxiom(spec, left, right, bcfg, nil)
	if err != nil {
		t.Fatal(err)
	}

	cfg := FromBatteryConfig(bcfg)
	d := InterpretAxiom(spec, left, right, result, cfg, nil)

	if err := ValidateCitations(d); err != nil {
		t.Fatalf("dossier failed citation validation: %v", err)
	}

	if len(d.Narrative) == 0 {
		t.Fatal("expected non-empty narrative")
	}

	var commutativeConfirmed bool
	for _, p := range d.Properties {
		if p.Name == "commutative" && p.Status == "confirmed" {
			commutativeConfirmed = true
		}
	}
	if !commutativeConfirmed {
		t.Error("expected commutative property to be confirmed")
	}

	var equivalentFound bool
	for _, tr := range d.Translations {
		if tr.Theory == "commutative" && tr.Status == "equivalent" {
			equivalentFound = true
		}
	}
	if !equivalentFound {
		t.Error("expected commutative translation to be equivalent")
	}
}

func TestValidateCitationsRejectsMissingSource(t *testing.T) {
	d := TheoryDossier{
		Facts:     []Fact{{Statement: "x", Source: ""}},
		Narrative: []string{"line with [citation]"},
	}
	if err := ValidateCitations(d); err == nil {
		t.Error("expected error for fact without source")
	}
}

func TestValidateCitationsRejectsUncitedNarrative(t *testing.T) {
	d := TheoryDossier{
		Narrative: []string{"a line with no citation"},
	}
	if err := ValidateCitations(d); err == nil {
		t.Error("expected error for narrative line without citation")
	}
}
