package dossier

import (
	"fmt"

	"github.com/ehrlich-b/axlab/internal/battery"
	"github.com/ehrlich-b/axlab/internal/probe"
)

func buildFacts(result battery.Result, properties []PropertyCheck, benchmarks []BenchmarkIdentityResult, translations []TranslationCandidate, neighbors []NearestNeighbor) []Fact {
	var facts []Fact
	if result.SmallestModelSize != nil {
		facts = append(facts, Fact{
			Statement: fmt.Sprintf("smallest model size %d", *result.SmallestModelSize),
			Source:    "models.spectrum",
		})
	}
	for _, p := range properties {
		switch p.Status {
		case probe.StatusConfirmed:
			facts = append(facts, Fact{Statement: p.Name + " property confirmed", Source: "implication." + p.Name})
		case probe.StatusCounterexample:
			facts = append(facts, Fact{Statement: p.Name + " property refuted", Source: "implication." + p.Name})
		}
	}
	for _, b := range benchmarks {
		if b.Status == probe.StatusConfirmed {
			facts = append(facts, Fact{Statement: b.Name + " benchmark confirmed", Source: "benchmark." + b.Name})
		}
	}
	for _, c := range translations {
		if c.Status == "equivalent" {
			facts = append(facts, Fact{
				Statement: "definitional equivalence with " + c.Theory,
				Source:    "translation." + c.Theory,
			})
		}
	}
	for _, n := range neighbors {
		facts = append(facts, Fact{
			Statement: fmt.Sprintf("nearest neighbor %s at distance %g", n.AxiomID, n.Distance),
			Source:    "neighbors.implication",
		})
	}
	return facts
}
