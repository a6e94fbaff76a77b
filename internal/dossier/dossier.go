// Package dossier turns a battery result into a human-readable theory
// dossier: confirmed/refuted properties, benchmark identities, nearby
// axioms, and a citation-backed narrative.
package dossier

import (
	"github.com/ehrlich-b/axlab/internal/battery"
	"github.com/ehrlich-b/axlab/internal/canon"
	"github.com/ehrlich-b/axlab/internal/probe"
	"github.com/ehrlich-b/axlab/internal/prover"
	"github.com/ehrlich-b/axlab/internal/term"
	"github.com/ehrlich-b/axlab/internal/universe"
)

// Config bounds the extra model searches the dossier toolchain runs
// (benchmark suite, translation search) on top of the battery's own
// model spectrum.
type Config struct {
	MaxModelSize       int
	MaxModelCandidates int
	MaxModelSeconds    float64
	NeighborCount      int
}

// FromBatteryConfig mirrors the battery's own budget unless overridden.
func FromBatteryConfig(cfg battery.Config) Config {
	return Config{
		MaxModelSize:       cfg.MaxModelSize,
		MaxModelCandidates: cfg.MaxModelCandidates,
		MaxModelSeconds:    cfg.MaxModelSeconds,
		NeighborCount:      3,
	}
}

// PropertyCheck restates one implication probe result as a named
// property, with its proof trace inlined if one was attached.
type PropertyCheck struct {
	Name                      string
	Status                    string
	CounterexampleSize        *int
	CounterexampleFingerprint *string
	ProofStatus               *string
	ProofSteps                []prover.Step
}

// BenchmarkIdentityResult is one fixed identity (absorption,
// distributivity, ...) checked against the axiom the same way an
// implication probe is.
type BenchmarkIdentityResult struct {
	Name                      string
	Left                      string
	Right                     string
	Status                    string
	CounterexampleSize        *int
	CounterexampleFingerprint *string
}

// PrettyModel renders one found model's fingerprint as human-readable
// operation-table rows.
type PrettyModel struct {
	Size        int
	Fingerprint string
	Lines       []string
}

// TranslationCandidate records whether a known theory and the axiom are
// definitionally equivalent, the axiom is strictly stronger, or no
// relation could be established.
type TranslationCandidate struct {
	Theory                    string
	AxiomImplies              string
	TheoryImplies             string
	Status                    string
	CounterexampleSize        *int
	CounterexampleFingerprint *string
}

// NearestNeighbor is a peer axiom close in implication-signature space.
type NearestNeighbor struct {
	AxiomID         string
	Left            string
	Right           string
	Distance        float64
	SharedConfirmed []string
}

// Fact is a single citable statement: a narrative line must cite at
// least one of these by its source tag.
type Fact struct {
	Statement string
	Source    string
}

// TheoryDossier is the complete interpretation bundle for one axiom.
type TheoryDossier struct {
	Axiom               map[string]string
	CanonicalAxiom      map[string]string
	MinimalBasis        []map[string]string
	Features            battery.SyntacticFeatures
	Degeneracy          battery.DegeneracyReport
	ModelSpectrum       []battery.ModelSpectrumEntry
	SmallestModelSize   *int
	ModelPretty         []PrettyModel
	Properties          []PropertyCheck
	BenchmarkIdentities []BenchmarkIdentityResult
	DerivedLaws         []Fact
	Translations        []TranslationCandidate
	NearestNeighbors    []NearestNeighbor
	Facts               []Fact
	Narrative           []string
	OpenQuestions       []string
}

// PeerResult is one other axiom's battery result, used as a candidate
// nearest neighbor.
type PeerResult struct {
	AxiomID string
	Left    *term.Term
	Right   *term.Term
	Result  battery.Result
}

// InterpretAxiom builds the full dossier for one axiom's battery
// result, optionally comparing it against a set of peer results already
// analyzed in the same run.
func InterpretAxiom(spec *universe.Spec, left, right *term.Term, result battery.Result, cfg Config, peers []PeerResult) TheoryDossier {
	canonLeft, canonRight := canon.Equation(left, right, spec)
	canonicalAxiom := map[string]string{"left": canonLeft.Serialize(), "right": canonRight.Serialize()}

	properties := propertiesFromImplications(result.Implications)
	benchmarks := runBenchmarkSuite(spec, canonLeft, canonRight, cfg)
	modelPretty := prettyModels(spec, result.ModelSpectrum)
	translations := translationSearch(spec, canonLeft, canonRight, result.Implications, cfg)
	neighbors := nearestNeighbors(result, peers, cfg.NeighborCount)
	derivedLaws := derivedLaws(properties, benchmarks)
	facts := buildFacts(result, properties, benchmarks, translations, neighbors)
	narrative := compileNarrative(canonicalAxiom, result, properties, benchmarks, facts)
	openQuestions := openQuestions(properties, benchmarks, translations)

	return TheoryDossier{
		Axiom:               map[string]string{"left": left.Serialize(), "right": right.Serialize()},
		CanonicalAxiom:      canonicalAxiom,
		MinimalBasis:        []map[string]string{canonicalAxiom},
		Features:            result.Features,
		Degeneracy:          result.Degeneracy,
		ModelSpectrum:       result.ModelSpectrum,
		SmallestModelSize:   result.SmallestModelSize,
		ModelPretty:         modelPretty,
		Properties:          properties,
		BenchmarkIdentities: benchmarks,
		DerivedLaws:         derivedLaws,
		Translations:        translations,
		NearestNeighbors:    neighbors,
		Facts:               facts,
		Narrative:           narrative,
		OpenQuestions:       openQuestions,
	}
}

func propertiesFromImplications(implications []probe.Result) []PropertyCheck {
	checks := make([]PropertyCheck, 0, len(implications))
	for _, p := range implications {
		check := PropertyCheck{
			Name:                      p.Theory,
			Status:                    p.Status,
			CounterexampleSize:        p.CounterexampleSize,
			CounterexampleFingerprint: p.CounterexampleFingerprint,
		}
		if p.Proof != nil {
			status := p.Proof.Status
			check.ProofStatus = &status
			check.ProofSteps = p.Proof.Steps
		}
		checks = append(checks, check)
	}
	return checks
}

func derivedLaws(properties []PropertyCheck, benchmarks []BenchmarkIdentityResult) []Fact {
	var facts []Fact
	for _, p := range properties {
		if p.Status == probe.StatusConfirmed {
			facts = append(facts, Fact{Statement: p.Name + " confirmed", Source: "implication." + p.Name})
		}
	}
	for _, b := range benchmarks {
		if b.Status == probe.StatusConfirmed {
			facts = append(facts, Fact{Statement: b.Name + " identity holds", Source: "benchmark." + b.Name})
		}
	}
	return facts
}
