package dossier

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ehrlich-b/axlab/internal/battery"
	"github.com/ehrlich-b/axlab/internal/probe"
)

func citationList(prefix string, names []string) string {
	seen := map[string]bool{}
	var uniq []string
	for _, n := range names {
		if !seen[n] {
			seen[n] = true
			uniq = append(uniq, n)
		}
	}
	sort.Strings(uniq)
	cites := make([]string, len(uniq))
	for i, n := range uniq {
		cites[i] = prefix + "." + n
	}
	return strings.Join(cites, ", ")
}

// compileNarrative builds the dossier's prose summary. Every line ends
// in at least one bracketed citation, as required by the citation
// validator.
func compileNarrative(canonicalAxiom map[string]string, result battery.Result, properties []PropertyCheck, benchmarks []BenchmarkIdentityResult, facts []Fact) []string {
	var lines []string
	lines = append(lines, fmt.Sprintf("Canonical axiom: %s = %s [axiom]", canonicalAxiom["left"], canonicalAxiom["right"]))

	if result.SmallestModelSize != nil {
		lines = append(lines, fmt.Sprintf("Smallest model found at size %d [models.spectrum]", *result.SmallestModelSize))
	}

	var confirmedProps, refutedProps []string
	for _, p := range properties {
		switch p.Status {
		case probe.StatusConfirmed:
			confirmedProps = append(confirmedProps, p.Name)
		case probe.StatusCounterexample:
			refutedProps = append(refutedProps, p.Name)
		}
	}
	if len(confirmedProps) > 0 {
		sorted := append([]string(nil), confirmedProps...)
		sort.Strings(sorted)
		lines = append(lines, fmt.Sprintf("Confirmed properties: %s [%s]", strings.Join(sorted, ", "), citationList("implication", confirmedProps)))
	}
	if len(refutedProps) > 0 {
		sorted := append([]string(nil), refutedProps...)
		sort.Strings(sorted)
		lines = append(lines, fmt.Sprintf("Refuted properties: %s [%s]", strings.Join(sorted, ", "), citationList("implication", refutedProps)))
	}

	var confirmedBench []string
	for _, b := range benchmarks {
		if b.Status == probe.StatusConfirmed {
			confirmedBench = append(confirmedBench, b.Name)
		}
	}
	if len(confirmedBench) > 0 {
		sorted := append([]string(nil), confirmedBench...)
		sort.Strings(sorted)
		lines = append(lines, fmt.Sprintf("Benchmark identities satisfied: %s [%s]", strings.Join(sorted, ", "), citationList("benchmark", confirmedBench)))
	}

	if len(facts) > 0 {
		limit := len(facts)
		if limit > 4 {
			limit = 4
		}
		parts := make([]string, limit)
		for i := 0; i < limit; i++ {
			parts[i] = fmt.Sprintf("%s [%s]", facts[i].Statement, facts[i].Source)
		}
		lines = append(lines, "Evidence summary: "+strings.Join(parts, "; "))
	}

	return lines
}

func openQuestions(properties []PropertyCheck, benchmarks []BenchmarkIdentityResult, translations []TranslationCandidate) []string {
	var questions []string
	for _, p := range properties {
		if p.Status == probe.StatusInconclusive {
			questions = append(questions, fmt.Sprintf("Resolve property %s with larger model search.", p.Name))
		}
	}
	for _, b := range benchmarks {
		if b.Status == probe.StatusInconclusive {
			questions = append(questions, fmt.Sprintf("Resolve benchmark %s with larger model search.", b.Name))
		}
	}
	for _, c := range translations {
		if c.Status == probe.StatusInconclusive {
			questions = append(questions, fmt.Sprintf("Check definitional equivalence with %s.", c.Theory))
		}
	}
	return questions
}
