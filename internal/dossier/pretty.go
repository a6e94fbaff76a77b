package dossier

import (
	"strconv"
	"strings"

	"github.com/ehrlich-b/axlab/internal/battery"
	"github.com/ehrlich-b/axlab/internal/model"
	"github.com/ehrlich-b/axlab/internal/universe"
)

func prettyModels(spec *universe.Spec, spectrum []battery.ModelSpectrumEntry) []PrettyModel {
	var out []PrettyModel
	for _, entry := range spectrum {
		if entry.Status != model.StatusFound || entry.Fingerprint == nil {
			continue
		}
		out = append(out, prettyModelFromFingerprint(spec, *entry.Fingerprint))
	}
	return out
}

// prettyModelFromFingerprint re-parses the "n=<n>;op=v0,v1,..." witness
// string into readable operation-table rows, in spec declaration order.
func prettyModelFromFingerprint(spec *universe.Spec, fingerprint string) PrettyModel {
	size := 0
	tables := map[string][]int{}
	for _, part := range strings.Split(fingerprint, ";") {
		if strings.HasPrefix(part, "n=") {
			size, _ = strconv.Atoi(part[2:])
			continue
		}
		name, payload, ok := strings.Cut(part, "=")
		if !ok {
			continue
		}
		if payload == "" {
			tables[name] = nil
			continue
		}
		values := strings.Split(payload, ",")
		nums := make([]int, len(values))
		for i, v := range values {
			nums[i], _ = strconv.Atoi(v)
		}
		tables[name] = nums
	}

	var lines []string
	for _, op := range spec.Operations {
		vals := tables[op.Name]
		lines = append(lines, op.Name+":")
		if op.Arity == 1 {
			row := make([]string, len(vals))
			for i, v := range vals {
				row[i] = strconv.Itoa(v)
			}
			lines = append(lines, "  "+strings.Join(row, " "))
			continue
		}
		for r := 0; r < size; r++ {
			start := r * size
			end := start + size
			if end > len(vals) {
				end = len(vals)
			}
			row := make([]string, 0, size)
			for _, v := range vals[start:end] {
				row = append(row, strconv.Itoa(v))
			}
			lines = append(lines, "  "+strings.Join(row, " "))
		}
	}
	return PrettyModel{Size: size, Fingerprint: fingerprint, Lines: lines}
}
