package runner

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ehrlich-b/axlab/internal/battery"
	"github.com/ehrlich-b/axlab/internal/probe"
	"github.com/ehrlich-b/axlab/internal/prover"
	"github.com/ehrlich-b/axlab/internal/store"
	"github.com/ehrlich-b/axlab/internal/term"
)

// HydratedResult pairs a parsed axiom with its rehydrated battery
// result, as returned by LoadResultsAsBattery and LoadRunFromStore.
type HydratedResult struct {
	Left   *term.Term
	Right  *term.Term
	Result battery.Result
}

// LoadRunManifest reads a run.json file written by RunBatteryAndPersist.
func LoadRunManifest(path string) (RunManifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return RunManifest{}, err
	}
	var raw struct {
		RunID         string         `json:"run_id"`
		Spec          map[string]any `json:"spec"`
		BatteryConfig map[string]any `json:"battery_config"`
		AxiomCount    float64        `json:"axiom_count"`
		ResultsPath   string         `json:"results_path"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return RunManifest{}, fmt.Errorf("decode run manifest: %w", err)
	}
	return RunManifest{
		RunID:         raw.RunID,
		Spec:          raw.Spec,
		BatteryConfig: raw.BatteryConfig,
		AxiomCount:    int(raw.AxiomCount),
		ResultsPath:   raw.ResultsPath,
	}, nil
}

// ResolveResultsPath resolves a manifest's recorded results_path,
// preferring a path relative to runDir (the directory the manifest
// itself lives in) and falling back to the path as given.
func ResolveResultsPath(resultsPath, runDir string) string {
	if filepath.IsAbs(resultsPath) {
		return resultsPath
	}
	if runDir == "" {
		return resultsPath
	}
	candidate := filepath.Join(runDir, resultsPath)
	if _, err := os.Stat(candidate); err == nil {
		return candidate
	}
	if _, err := os.Stat(resultsPath); err == nil {
		return resultsPath
	}
	return candidate
}

func parseResultsJSONL(data []byte) ([]map[string]any, error) {
	var out []map[string]any
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		var entry map[string]any
		if err := json.Unmarshal(line, &entry); err != nil {
			return nil, fmt.Errorf("decode result line: %w", err)
		}
		out = append(out, entry)
	}
	return out, scanner.Err()
}

// LoadResults reads and parses a results.jsonl file into raw maps,
// without rehydrating battery types.
func LoadResults(path string) ([]map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return parseResultsJSONL(data)
}

// LoadResultsAsBattery reads results.jsonl and rehydrates each entry
// into a parsed axiom plus a battery.Result.
func LoadResultsAsBattery(path string) ([]HydratedResult, error) {
	entries, err := LoadResults(path)
	if err != nil {
		return nil, err
	}
	return rehydrateResults(entries)
}

// LoadRunFromStore reconstructs a run's manifest and hydrated results
// from a store's persisted artifacts.
func LoadRunFromStore(st *store.Store, runID string) (RunManifest, []HydratedResult, error) {
	record, err := st.LoadRun(runID)
	if err != nil {
		return RunManifest{}, nil, err
	}
	if record == nil {
		return RunManifest{}, nil, fmt.Errorf("unknown run_id: %s", runID)
	}
	var manifest RunManifest
	if err := st.ReadJSON(record.ManifestDigest, &manifestRaw{&manifest}); err != nil {
		return RunManifest{}, nil, fmt.Errorf("read manifest artifact: %w", err)
	}
	resultsBytes, err := st.ReadBytes(record.ResultsDigest)
	if err != nil {
		return RunManifest{}, nil, fmt.Errorf("read results artifact: %w", err)
	}
	entries, err := parseResultsJSONL(resultsBytes)
	if err != nil {
		return RunManifest{}, nil, err
	}
	results, err := rehydrateResults(entries)
	if err != nil {
		return RunManifest{}, nil, err
	}
	return manifest, results, nil
}

// manifestRaw adapts RunManifest's float64-from-JSON axiom_count field
// through json.Unmarshal the same way LoadRunManifest does.
type manifestRaw struct {
	dst *RunManifest
}

func (m *manifestRaw) UnmarshalJSON(data []byte) error {
	var raw struct {
		RunID         string         `json:"run_id"`
		Spec          map[string]any `json:"spec"`
		BatteryConfig map[string]any `json:"battery_config"`
		AxiomCount    float64        `json:"axiom_count"`
		ResultsPath   string         `json:"results_path"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*m.dst = RunManifest{
		RunID:         raw.RunID,
		Spec:          raw.Spec,
		BatteryConfig: raw.BatteryConfig,
		AxiomCount:    int(raw.AxiomCount),
		ResultsPath:   raw.ResultsPath,
	}
	return nil
}

// rehydrateResults reconstructs parsed terms and battery.Result values
// from raw JSONL entries, recomputing metrics from the stored fields
// and only filling in any key missing from a stored metrics map
// (never overwriting a value that was actually persisted).
func rehydrateResults(entries []map[string]any) ([]HydratedResult, error) {
	out := make([]HydratedResult, 0, len(entries))
	for _, entry := range entries {
		axiomRaw, _ := entry["axiom"].(map[string]any)
		leftStr, _ := axiomRaw["left"].(string)
		rightStr, _ := axiomRaw["right"].(string)
		left, err := term.Parse(leftStr)
		if err != nil {
			return nil, fmt.Errorf("parse left term %q: %w", leftStr, err)
		}
		right, err := term.Parse(rightStr)
		if err != nil {
			return nil, fmt.Errorf("parse right term %q: %w", rightStr, err)
		}

		features := parseFeatures(entry["features"])
		degeneracy := parseDegeneracy(entry["degeneracy"])
		modelSpectrum := parseModelSpectrum(entry["model_spectrum"])
		implications := parseImplications(entry["implications"])
		neighbors := parsePerturbationNeighbors(entry["perturbation_neighbors"])
		smallest := intPtrFromAny(entry["smallest_model_size"])

		computed := battery.ComputeMetrics(features, degeneracy, modelSpectrum, implications, smallest, nil, neighbors)
		metrics, _ := entry["metrics"].(map[string]any)
		if metrics == nil {
			metrics = computed
		} else {
			for k, v := range computed {
				if _, exists := metrics[k]; !exists {
					metrics[k] = v
				}
			}
		}

		out = append(out, HydratedResult{
			Left:  left,
			Right: right,
			Result: battery.Result{
				Features:              features,
				Degeneracy:            degeneracy,
				ModelSpectrum:         modelSpectrum,
				SmallestModelSize:     smallest,
				Implications:          implications,
				PerturbationNeighbors: neighbors,
				Metrics:               metrics,
			},
		})
	}
	return out, nil
}

func parseFeatures(v any) battery.SyntacticFeatures {
	m, _ := v.(map[string]any)
	return battery.SyntacticFeatures{
		LeftSize:      intFromAny(m["left_size"]),
		RightSize:     intFromAny(m["right_size"]),
		TotalSize:     intFromAny(m["total_size"]),
		LeftDepth:     intFromAny(m["left_depth"]),
		RightDepth:    intFromAny(m["right_depth"]),
		MaxDepth:      intFromAny(m["max_depth"]),
		VarCount:      intFromAny(m["var_count"]),
		SymmetryClass: stringFromAny(m["symmetry_class"]),
	}
}

func parseDegeneracy(v any) battery.DegeneracyReport {
	m, _ := v.(map[string]any)
	return battery.DegeneracyReport{
		TrivialIdentity:    boolFromAny(m["trivial_identity"]),
		ProjectionCollapse: boolFromAny(m["projection_collapse"]),
		ConstantCollapse:   boolFromAny(m["constant_collapse"]),
	}
}

func parseModelSpectrum(v any) []battery.ModelSpectrumEntry {
	items, _ := v.([]any)
	out := make([]battery.ModelSpectrumEntry, 0, len(items))
	for _, item := range items {
		m, _ := item.(map[string]any)
		out = append(out, battery.ModelSpectrumEntry{
			Size:           intFromAny(m["size"]),
			Status:         stringFromAny(m["status"]),
			Fingerprint:    stringPtrFromAny(m["fingerprint"]),
			Candidates:     intFromAny(m["candidates"]),
			ElapsedSeconds: floatFromAny(m["elapsed_seconds"]),
		})
	}
	return out
}

func parseImplications(v any) []probe.Result {
	items, _ := v.([]any)
	out := make([]probe.Result, 0, len(items))
	for _, item := range items {
		m, _ := item.(map[string]any)
		r := probe.Result{
			Theory:                    stringFromAny(m["theory"]),
			Status:                    stringFromAny(m["status"]),
			CheckedMaxSize:            intFromAny(m["checked_max_size"]),
			CounterexampleSize:        intPtrFromAny(m["counterexample_size"]),
			CounterexampleFingerprint: stringPtrFromAny(m["counterexample_fingerprint"]),
		}
		if stepsRaw, ok := m["proof_steps"].([]any); ok {
			status := stringFromAny(m["proof_status"])
			steps := make([]prover.Step, 0, len(stepsRaw))
			for _, s := range stepsRaw {
				sm, _ := s.(map[string]any)
				steps = append(steps, prover.Step{
					Rule:  stringFromAny(sm["rule"]),
					Left:  stringFromAny(sm["left"]),
					Right: stringFromAny(sm["right"]),
				})
			}
			r.Proof = &probe.ProofArtifact{Status: status, ElapsedSeconds: floatFromAny(m["proof_elapsed_seconds"]), Steps: steps}
		}
		out = append(out, r)
	}
	return out
}

func parsePerturbationNeighbors(v any) []battery.PerturbationNeighbor {
	items, _ := v.([]any)
	out := make([]battery.PerturbationNeighbor, 0, len(items))
	for _, item := range items {
		m, _ := item.(map[string]any)
		left, err := term.Parse(stringFromAny(m["left"]))
		if err != nil {
			continue
		}
		right, err := term.Parse(stringFromAny(m["right"]))
		if err != nil {
			continue
		}
		statusesRaw, _ := m["model_statuses"].([]any)
		statuses := make([]string, 0, len(statusesRaw))
		for _, s := range statusesRaw {
			statuses = append(statuses, stringFromAny(s))
		}
		out = append(out, battery.PerturbationNeighbor{
			Left: left, Right: right, ModelStatuses: statuses,
			SmallestModelSize: intPtrFromAny(m["smallest_model_size"]),
		})
	}
	return out
}

func intFromAny(v any) int {
	f, _ := v.(float64)
	return int(f)
}

func floatFromAny(v any) float64 {
	f, _ := v.(float64)
	return f
}

func boolFromAny(v any) bool {
	b, _ := v.(bool)
	return b
}

func stringFromAny(v any) string {
	s, _ := v.(string)
	return s
}

func intPtrFromAny(v any) *int {
	if v == nil {
		return nil
	}
	i := intFromAny(v)
	return &i
}

func stringPtrFromAny(v any) *string {
	if v == nil {
		return nil
	}
	s := stringFromAny(v)
	return &s
}
