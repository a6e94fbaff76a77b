package runner

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/ehrlich-b/axlab/internal/battery"
	"github.com/ehrlich-b/axlab/internal/store"
	"github.com/ehrlich-b/axlab/internal/term"
	"github.com/ehrlich-b/axlab/internal/universe"
)

func testSpec(t *testing.T) *universe.Spec {
	t.Helper()
	spec, err := universe.New("v0", "equational", []universe.Operation{
		{Name: "f", Arity: 2},
	}, 3, 5)
	if err != nil {
		t.Fatal(err)
	}
	return spec
}

func mustTerm(t *testing.T, s string) *term.Term {
	t.Helper()
	tm, err := term.Parse(s)
	if err != nil {
		t.Fatal(err)
	}
	return tm
}

func TestComputeRunIDDeterministic(t *testing.T) {
	spec := testSpec(t)
	axioms := []Axiom{{Left: mustTerm(t, "f(x0,x1)"), Right: mustTerm(t, "f(x1,x0)")}}
	cfg := battery.DefaultConfig()
	id1, err := ComputeRunID(spec, axioms, cfg)
	if err != nil {
		t.Fatal(err)
	}
	id2, err := ComputeRunID(spec, axioms, cfg)
	if err != nil {
		t.Fatal(err)
	}
	if id1 != id2 {
		t.Fatalf("expected deterministic run id, got %s and %s", id1, id2)
	}
	if len(id1) != 16 {
		t.Fatalf("expected 16-char run id, got %q", id1)
	}
}

func TestRunBatteryAndPersistRoundTrip(t *testing.T) {
	spec := testSpec(t)
	axioms := []Axiom{
		{Left: mustTerm(t, "f(x0,x1)"), Right: mustTerm(t, "f(x1,x0)")},
		{Left: mustTerm(t, "x0"), Right: mustTerm(t, "x0")},
	}
	cfg := battery.DefaultConfig()
	cfg.MaxModelSize = 1
	cfg.MaxModelCandidates = 1000
	cfg.MaxModelSeconds = 1.0

	dir := t.TempDir()
	st, err := store.Open(filepath.Join(dir, "store"))
	if err != nil {
		t.Fatal(err)
	}
	defer st.Close()

	manifest, err := RunBatteryAndPersist(context.Background(), spec, axioms, filepath.Join(dir, "run"), cfg, Config{Workers: 2}, st)
	if err != nil {
		t.Fatal(err)
	}
	if manifest.AxiomCount != 2 {
		t.Fatalf("axiom count = %d, want 2", manifest.AxiomCount)
	}

	loadedManifest, err := LoadRunManifest(filepath.Join(dir, "run", "run.json"))
	if err != nil {
		t.Fatal(err)
	}
	if loadedManifest.RunID != manifest.RunID {
		t.Fatalf("reloaded run id %s != original %s", loadedManifest.RunID, manifest.RunID)
	}

	resultsPath := ResolveResultsPath(loadedManifest.ResultsPath, filepath.Join(dir, "run"))
	hydrated, err := LoadResultsAsBattery(resultsPath)
	if err != nil {
		t.Fatal(err)
	}
	if len(hydrated) != 2 {
		t.Fatalf("expected 2 hydrated results, got %d", len(hydrated))
	}
	if hydrated[0].Left.Serialize() != "f(x0,x1)" {
		t.Errorf("unexpected first axiom left: %s", hydrated[0].Left.Serialize())
	}
	if hydrated[1].Result.Degeneracy.TrivialIdentity != true {
		t.Error("expected second axiom to be flagged trivial_identity")
	}

	storeManifest, storeResults, err := LoadRunFromStore(st, manifest.RunID)
	if err != nil {
		t.Fatal(err)
	}
	if storeManifest.RunID != manifest.RunID {
		t.Fatalf("store manifest run id mismatch: %s != %s", storeManifest.RunID, manifest.RunID)
	}
	if len(storeResults) != 2 {
		t.Fatalf("expected 2 store-hydrated results, got %d", len(storeResults))
	}
}
