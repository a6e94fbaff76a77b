// Package battery runs the full per-axiom analysis pipeline: syntactic
// features, degeneracy detection, the model-spectrum sweep, implication
// probes, perturbation-neighbor robustness, and the aggregated metrics
// map.
package battery

import (
	"github.com/ehrlich-b/axlab/internal/canon"
	"github.com/ehrlich-b/axlab/internal/model"
	"github.com/ehrlich-b/axlab/internal/obs"
	"github.com/ehrlich-b/axlab/internal/perturb"
	"github.com/ehrlich-b/axlab/internal/probe"
	"github.com/ehrlich-b/axlab/internal/prover"
	"github.com/ehrlich-b/axlab/internal/term"
	"github.com/ehrlich-b/axlab/internal/universe"
)

// Config mirrors the BatteryConfig JSON/YAML schema of SPEC_FULL.md §6,
// field for field.
type Config struct {
	MaxModelSize       int     `json:"max_model_size" yaml:"max_model_size"`
	MaxModelCandidates int     `json:"max_model_candidates" yaml:"max_model_candidates"`
	MaxModelSeconds    float64 `json:"max_model_seconds" yaml:"max_model_seconds"`
	ModelFinder        string  `json:"model_finder" yaml:"model_finder"`

	ImplicationMaxModelSize       *int     `json:"implication_max_model_size,omitempty" yaml:"implication_max_model_size,omitempty"`
	ImplicationMaxModelCandidates *int     `json:"implication_max_model_candidates,omitempty" yaml:"implication_max_model_candidates,omitempty"`
	ImplicationMaxModelSeconds    *float64 `json:"implication_max_model_seconds,omitempty" yaml:"implication_max_model_seconds,omitempty"`

	PerturbationMaxNeighbors      int      `json:"perturbation_max_neighbors" yaml:"perturbation_max_neighbors"`
	PerturbationMaxModelSize      *int     `json:"perturbation_max_model_size,omitempty" yaml:"perturbation_max_model_size,omitempty"`
	PerturbationMaxModelCandidates *int    `json:"perturbation_max_model_candidates,omitempty" yaml:"perturbation_max_model_candidates,omitempty"`
	PerturbationMaxModelSeconds   *float64 `json:"perturbation_max_model_seconds,omitempty" yaml:"perturbation_max_model_seconds,omitempty"`

	// Metrics, if set, observes every model search call this axiom's
	// analysis makes (spectrum sweep and perturbation neighbors alike)
	// under axlab_model_search_*. Excluded from ToMap/digesting — it's
	// an instrumentation hook, not part of the run's identity.
	Metrics *obs.Metrics `json:"-" yaml:"-"`
}

// DefaultConfig mirrors the Python dataclass defaults.
func DefaultConfig() Config {
	return Config{
		MaxModelSize:             3,
		MaxModelCandidates:       10000,
		MaxModelSeconds:          1.0,
		ModelFinder:              "prunable",
		PerturbationMaxNeighbors: 8,
	}
}

// ToMap renders Config for stable-JSON digesting, matching the field
// names of the Python dataclass's __dict__.
func (c Config) ToMap() map[string]any {
	m := map[string]any{
		"max_model_size":                  c.MaxModelSize,
		"max_model_candidates":            c.MaxModelCandidates,
		"max_model_seconds":               c.MaxModelSeconds,
		"model_finder":                    c.ModelFinder,
		"implication_max_model_size":      nil,
		"implication_max_model_candidates": nil,
		"implication_max_model_seconds":   nil,
		"perturbation_max_neighbors":      c.PerturbationMaxNeighbors,
		"perturbation_max_model_size":     nil,
		"perturbation_max_model_candidates": nil,
		"perturbation_max_model_seconds":  nil,
	}
	if c.ImplicationMaxModelSize != nil {
		m["implication_max_model_size"] = *c.ImplicationMaxModelSize
	}
	if c.ImplicationMaxModelCandidates != nil {
		m["implication_max_model_candidates"] = *c.ImplicationMaxModelCandidates
	}
	if c.ImplicationMaxModelSeconds != nil {
		m["implication_max_model_seconds"] = *c.ImplicationMaxModelSeconds
	}
	if c.PerturbationMaxModelSize != nil {
		m["perturbation_max_model_size"] = *c.PerturbationMaxModelSize
	}
	if c.PerturbationMaxModelCandidates != nil {
		m["perturbation_max_model_candidates"] = *c.PerturbationMaxModelCandidates
	}
	if c.PerturbationMaxModelSeconds != nil {
		m["perturbation_max_model_seconds"] = *c.PerturbationMaxModelSeconds
	}
	return m
}

// SyntacticFeatures is derived from a canonicalized equation.
type SyntacticFeatures struct {
	LeftSize      int    `json:"left_size"`
	RightSize     int    `json:"right_size"`
	TotalSize     int    `json:"total_size"`
	LeftDepth     int    `json:"left_depth"`
	RightDepth    int    `json:"right_depth"`
	MaxDepth      int    `json:"max_depth"`
	VarCount      int    `json:"var_count"`
	SymmetryClass string `json:"symmetry_class"`
}

// DegeneracyReport captures three independent degeneracy signals.
type DegeneracyReport struct {
	TrivialIdentity   bool `json:"trivial_identity"`
	ProjectionCollapse bool `json:"projection_collapse"`
	ConstantCollapse  bool `json:"constant_collapse"`
}

// ModelSpectrumEntry is one point in the per-size model-search sweep.
type ModelSpectrumEntry struct {
	Size           int     `json:"size"`
	Status         string  `json:"status"`
	Fingerprint    *string `json:"fingerprint"`
	Candidates     int     `json:"candidates"`
	ElapsedSeconds float64 `json:"elapsed_seconds"`
}

// PerturbationNeighbor is a nearby canonical axiom plus its model-status
// signature.
type PerturbationNeighbor struct {
	Left               *term.Term
	Right              *term.Term
	ModelStatuses      []string
	SmallestModelSize  *int
}

// Result bundles every field of one axiom's analysis.
type Result struct {
	Features              SyntacticFeatures
	Degeneracy            DegeneracyReport
	ModelSpectrum         []ModelSpectrumEntry
	SmallestModelSize     *int
	Implications          []probe.Result
	PerturbationNeighbors []PerturbationNeighbor
	Metrics               map[string]any
}

// ArchiveLookup resolves a symmetry class against a prior archive
// (typically an ArtifactStore); presence implies the axiom is not novel.
type ArchiveLookup func(symmetryClass string) bool

func symmetryClass(left, right *term.Term) string {
	return left.Serialize() + "=" + right.Serialize()
}

func projectionCollapse(left, right *term.Term) bool {
	if left.IsOp() {
		for _, a := range left.Args {
			if a.Equal(right) {
				return true
			}
		}
	}
	if right.IsOp() {
		for _, a := range right.Args {
			if a.Equal(left) {
				return true
			}
		}
	}
	return false
}

func constantCollapse(left, right *term.Term) bool {
	if left.IsVar() && !containsVar(right, left.Name) {
		return true
	}
	if right.IsVar() && !containsVar(left, right.Name) {
		return true
	}
	return false
}

func containsVar(t *term.Term, name string) bool {
	for _, v := range t.Vars() {
		if v == name {
			return true
		}
	}
	return false
}

func uniqueVarCount(terms ...*term.Term) int {
	seen := map[string]bool{}
	for _, t := range terms {
		for _, v := range t.Vars() {
			seen[v] = true
		}
	}
	return len(seen)
}

// AnalyzeAxiom runs the full battery on one axiom.
func AnalyzeAxiom(spec *universe.Spec, left, right *term.Term, cfg Config, archiveLookup ArchiveLookup) (Result, error) {
	engine, err := model.Resolve(cfg.ModelFinder)
	if err != nil {
		return Result{}, err
	}
	engine = model.Instrument(engine, cfg.ModelFinder, cfg.Metrics)

	canonLeft, canonRight := canon.Equation(left, right, spec)

	features := SyntacticFeatures{
		LeftSize:      canonLeft.Size(),
		RightSize:     canonRight.Size(),
		LeftDepth:     canonLeft.Depth(),
		RightDepth:    canonRight.Depth(),
		VarCount:      uniqueVarCount(canonLeft, canonRight),
		SymmetryClass: symmetryClass(canonLeft, canonRight),
	}
	features.TotalSize = features.LeftSize + features.RightSize
	if features.LeftDepth > features.RightDepth {
		features.MaxDepth = features.LeftDepth
	} else {
		features.MaxDepth = features.RightDepth
	}

	degeneracy := DegeneracyReport{
		TrivialIdentity:    canonLeft.Serialize() == canonRight.Serialize(),
		ProjectionCollapse: projectionCollapse(canonLeft, canonRight),
		ConstantCollapse:   constantCollapse(canonLeft, canonRight),
	}

	axiom := model.Equation{Left: canonLeft, Right: canonRight}
	searchCfg := model.Config{MaxCandidates: cfg.MaxModelCandidates, MaxSeconds: cfg.MaxModelSeconds}

	var spectrum []ModelSpectrumEntry
	var smallest *int
	for size := 1; size <= cfg.MaxModelSize; size++ {
		r := engine.FindModel(spec, []model.Equation{axiom}, size, searchCfg, nil)
		spectrum = append(spectrum, ModelSpectrumEntry{
			Size: size, Status: r.Status, Fingerprint: r.Fingerprint,
			Candidates: r.Candidates, ElapsedSeconds: r.ElapsedSeconds,
		})
		if smallest == nil && r.Status == model.StatusFound {
			sz := size
			smallest = &sz
		}
	}

	implCfg := probe.Config{
		MaxModelSize:       firstNonZeroIntPtr(cfg.ImplicationMaxModelSize, cfg.MaxModelSize),
		MaxModelCandidates: firstNonZeroIntPtr(cfg.ImplicationMaxModelCandidates, cfg.MaxModelCandidates),
		MaxModelSeconds:    firstNonZeroFloatPtr(cfg.ImplicationMaxModelSeconds, cfg.MaxModelSeconds),
	}
	library := probe.LibraryForSpec(spec)
	implications := probe.Run(spec, axiom, library, implCfg, engine, nil)

	var neighbors []PerturbationNeighbor
	neighborLimit := cfg.PerturbationMaxNeighbors
	neighborMaxSize := firstNonZeroIntPtr(cfg.PerturbationMaxModelSize, cfg.MaxModelSize)
	if neighborMaxSize > cfg.MaxModelSize {
		neighborMaxSize = cfg.MaxModelSize
	}
	if neighborLimit > 0 && neighborMaxSize > 0 {
		neighborAxioms := perturb.Neighbors(spec, canonLeft, canonRight, neighborLimit)
		neighborSearchCfg := model.Config{
			MaxCandidates: firstNonZeroIntPtr(cfg.PerturbationMaxModelCandidates, cfg.MaxModelCandidates),
			MaxSeconds:    firstNonZeroFloatPtr(cfg.PerturbationMaxModelSeconds, cfg.MaxModelSeconds),
		}
		for _, na := range neighborAxioms {
			var statuses []string
			var nSmallest *int
			for size := 1; size <= neighborMaxSize; size++ {
				r := engine.FindModel(spec, []model.Equation{{Left: na.Left, Right: na.Right}}, size, neighborSearchCfg, nil)
				statuses = append(statuses, r.Status)
				if nSmallest == nil && r.Status == model.StatusFound {
					sz := size
					nSmallest = &sz
				}
			}
			neighbors = append(neighbors, PerturbationNeighbor{
				Left: na.Left, Right: na.Right, ModelStatuses: statuses, SmallestModelSize: nSmallest,
			})
		}
	}

	var novelty *float64
	if archiveLookup != nil {
		v := 1.0
		if archiveLookup(features.SymmetryClass) {
			v = 0.0
		}
		novelty = &v
	}

	metrics := ComputeMetrics(features, degeneracy, spectrum, implications, smallest, novelty, neighbors)

	return Result{
		Features:              features,
		Degeneracy:            degeneracy,
		ModelSpectrum:         spectrum,
		SmallestModelSize:     smallest,
		Implications:          implications,
		PerturbationNeighbors: neighbors,
		Metrics:               metrics,
	}, nil
}

func firstNonZeroIntPtr(override *int, fallback int) int {
	if override != nil && *override != 0 {
		return *override
	}
	return fallback
}

func firstNonZeroFloatPtr(override *float64, fallback float64) float64 {
	if override != nil && *override != 0 {
		return *override
	}
	return fallback
}
