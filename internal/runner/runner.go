// Package runner computes run/axiom ids, dispatches the battery across
// a worker pool, and persists results as an ordered JSONL file plus
// (optionally) an ArtifactStore-backed index.
package runner

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ehrlich-b/axlab/internal/battery"
	"github.com/ehrlich-b/axlab/internal/digest"
	"github.com/ehrlich-b/axlab/internal/obs"
	"github.com/ehrlich-b/axlab/internal/store"
	"github.com/ehrlich-b/axlab/internal/term"
	"github.com/ehrlich-b/axlab/internal/universe"
)

// Axiom is one (left, right) pair to run the battery against.
type Axiom struct {
	Left  *term.Term
	Right *term.Term
}

// RunManifest summarizes one completed run: its id, the spec and
// battery config it ran under, how many axioms it covered, and where
// the per-axiom results live.
type RunManifest struct {
	RunID         string         `json:"run_id"`
	Spec          map[string]any `json:"spec"`
	BatteryConfig map[string]any `json:"battery_config"`
	AxiomCount    int            `json:"axiom_count"`
	ResultsPath   string         `json:"results_path"`
}

func (m RunManifest) toMap() map[string]any {
	return map[string]any{
		"run_id":         m.RunID,
		"spec":           m.Spec,
		"battery_config": m.BatteryConfig,
		"axiom_count":    m.AxiomCount,
		"results_path":   m.ResultsPath,
	}
}

// ComputeRunID derives a 16-character id from the spec, battery config,
// and the ordered list of axiom serializations.
func ComputeRunID(spec *universe.Spec, axioms []Axiom, cfg battery.Config) (string, error) {
	axiomList := make([]map[string]any, len(axioms))
	for i, a := range axioms {
		axiomList[i] = map[string]any{"left": a.Left.Serialize(), "right": a.Right.Serialize()}
	}
	payload := map[string]any{
		"spec":           spec.ToMap(),
		"battery_config": cfg.ToMap(),
		"axioms":         axiomList,
	}
	encoded, err := digest.StableJSON(payload)
	if err != nil {
		return "", fmt.Errorf("encode run id payload: %w", err)
	}
	return digest.SHA256HexTruncated(encoded, 16), nil
}

// ComputeAxiomID derives a full SHA-256 id from one axiom's serialized
// form; unlike the run id, it is not truncated, since axiom ids are
// the primary key of a much larger table.
func ComputeAxiomID(left, right *term.Term) (string, error) {
	payload := map[string]any{"left": left.Serialize(), "right": right.Serialize()}
	encoded, err := digest.StableJSON(payload)
	if err != nil {
		return "", fmt.Errorf("encode axiom id payload: %w", err)
	}
	return digest.SHA256Hex(encoded), nil
}

// Config bounds how RunBatteryAndPersist dispatches work.
type Config struct {
	Workers int
	// Metrics, if set, observes per-axiom duration and per-run outcome
	// under axlab_runner_*.
	Metrics *obs.Metrics
}

func (c Config) workerCount() int {
	if c.Workers > 0 {
		return c.Workers
	}
	n := runtime.NumCPU()
	if n < 1 {
		return 1
	}
	return n
}

// RunBatteryAndPersist runs the battery over every axiom (in parallel,
// bounded by runCfg.Workers, or runtime.NumCPU when that is not
// positive), writes results.jsonl and run.json under
// outputDir in axiom order, and — if st is non-nil — indexes the run,
// every axiom, its model spectrum, implications, and metrics in the
// store.
func RunBatteryAndPersist(ctx context.Context, spec *universe.Spec, axioms []Axiom, outputDir string, cfg battery.Config, runCfg Config, st *store.Store) (manifest RunManifest, err error) {
	if runCfg.Metrics != nil {
		defer func() {
			status := "ok"
			if err != nil {
				status = "error"
			}
			runCfg.Metrics.RunsCompletedTotal.WithLabelValues(status).Inc()
		}()
	}

	runID, err := ComputeRunID(spec, axioms, cfg)
	if err != nil {
		return RunManifest{}, err
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return RunManifest{}, fmt.Errorf("create output dir: %w", err)
	}

	var archiveLookup battery.ArchiveLookup
	if st != nil {
		archiveLookup = func(symmetryClass string) bool {
			exists, _ := st.AxiomSymmetryExists(symmetryClass)
			return exists
		}
	}

	results := make([]battery.Result, len(axioms))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runCfg.workerCount())
	for i, axiom := range axioms {
		i, axiom := i, axiom
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			axiomStart := time.Now()
			result, err := battery.AnalyzeAxiom(spec, axiom.Left, axiom.Right, cfg, archiveLookup)
			if err != nil {
				return fmt.Errorf("axiom %s=%s: %w", axiom.Left.Serialize(), axiom.Right.Serialize(), err)
			}
			if runCfg.Metrics != nil {
				runCfg.Metrics.AxiomsAnalyzedTotal.Inc()
				runCfg.Metrics.AxiomAnalysisDuration.Observe(time.Since(axiomStart).Seconds())
			}
			results[i] = result
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return RunManifest{}, err
	}

	resultsPath := filepath.Join(outputDir, "results.jsonl")
	resultsFile, err := os.Create(resultsPath)
	if err != nil {
		return RunManifest{}, fmt.Errorf("create results file: %w", err)
	}
	defer resultsFile.Close()

	for i, axiom := range axioms {
		result := results[i]
		payload := resultToMap(axiom, result)
		line, err := digest.StableJSON(payload)
		if err != nil {
			return RunManifest{}, fmt.Errorf("encode result line: %w", err)
		}
		if _, err := resultsFile.Write(append(line, '\n')); err != nil {
			return RunManifest{}, fmt.Errorf("write result line: %w", err)
		}

		if st != nil {
			if err := persistAxiom(st, runID, axiom, result); err != nil {
				return RunManifest{}, err
			}
		}
	}
	if err := resultsFile.Close(); err != nil {
		return RunManifest{}, fmt.Errorf("close results file: %w", err)
	}

	manifest = RunManifest{
		RunID:         runID,
		Spec:          spec.ToMap(),
		BatteryConfig: cfg.ToMap(),
		AxiomCount:    len(axioms),
		ResultsPath:   resultsPath,
	}
	manifestPath := filepath.Join(outputDir, "run.json")
	manifestJSON, err := digest.StableJSON(manifest.toMap())
	if err != nil {
		return RunManifest{}, fmt.Errorf("encode manifest: %w", err)
	}
	if err := os.WriteFile(manifestPath, append(manifestJSON, '\n'), 0o644); err != nil {
		return RunManifest{}, fmt.Errorf("write manifest: %w", err)
	}

	if st != nil {
		manifestBytes, err := os.ReadFile(manifestPath)
		if err != nil {
			return RunManifest{}, err
		}
		resultsBytes, err := os.ReadFile(resultsPath)
		if err != nil {
			return RunManifest{}, err
		}
		manifestDigest, err := st.WriteBytes("run_manifest", manifestBytes)
		if err != nil {
			return RunManifest{}, err
		}
		resultsDigest, err := st.WriteBytes("run_results", resultsBytes)
		if err != nil {
			return RunManifest{}, err
		}
		if err := st.RecordRun(runID, spec.ToMap(), cfg.ToMap(), manifestDigest, resultsDigest); err != nil {
			return RunManifest{}, err
		}
	}

	return manifest, nil
}

func persistAxiom(st *store.Store, runID string, axiom Axiom, result battery.Result) error {
	axiomID, err := ComputeAxiomID(axiom.Left, axiom.Right)
	if err != nil {
		return err
	}
	if err := st.RecordAxiom(runID, axiomID, axiom.Left.Serialize(), axiom.Right.Serialize(), result.Features.SymmetryClass); err != nil {
		return fmt.Errorf("record axiom: %w", err)
	}
	if err := st.RecordMetrics(runID, axiomID, result.Metrics); err != nil {
		return fmt.Errorf("record metrics: %w", err)
	}

	models := make([]store.ModelRecord, len(result.ModelSpectrum))
	for i, entry := range result.ModelSpectrum {
		models[i] = store.ModelRecord{
			Size: entry.Size, Status: entry.Status, Fingerprint: entry.Fingerprint,
			Candidates: entry.Candidates, ElapsedSeconds: entry.ElapsedSeconds,
		}
	}
	if err := st.RecordModels(runID, axiomID, models); err != nil {
		return fmt.Errorf("record models: %w", err)
	}

	implications := make([]store.ImplicationRecord, len(result.Implications))
	for i, p := range result.Implications {
		rec := store.ImplicationRecord{
			Theory: p.Theory, Status: p.Status, CheckedMaxSize: p.CheckedMaxSize,
			CounterexampleSize: p.CounterexampleSize, CounterexampleFingerprint: p.CounterexampleFingerprint,
		}
		if p.Proof != nil {
			status := p.Proof.Status
			elapsed := p.Proof.ElapsedSeconds
			rec.ProofStatus = &status
			rec.ProofElapsedSeconds = &elapsed
			steps := make([]map[string]string, len(p.Proof.Steps))
			for j, s := range p.Proof.Steps {
				steps[j] = map[string]string{"rule": s.Rule, "left": s.Left, "right": s.Right}
			}
			rec.ProofSteps = steps
		}
		implications[i] = rec
	}
	if err := st.RecordImplications(runID, axiomID, implications); err != nil {
		return fmt.Errorf("record implications: %w", err)
	}
	return nil
}
