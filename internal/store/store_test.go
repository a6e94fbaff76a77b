package store

import (
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestWriteBytesIsContentAddressedAndIdempotent(t *testing.T) {
	s := openTestStore(t)
	digest1, err := s.WriteBytes("manifest", []byte("hello"))
	if err != nil {
		t.Fatal(err)
	}
	digest2, err := s.WriteBytes("manifest", []byte("hello"))
	if err != nil {
		t.Fatal(err)
	}
	if digest1 != digest2 {
		t.Fatalf("expected identical digests for identical content, got %s and %s", digest1, digest2)
	}
	data, err := s.ReadBytes(digest1)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "hello" {
		t.Fatalf("read back %q, want %q", data, "hello")
	}
}

func TestWriteJSONStableDigest(t *testing.T) {
	s := openTestStore(t)
	a := map[string]any{"b": 1, "a": 2}
	b := map[string]any{"a": 2, "b": 1}
	da, err := s.WriteJSON("spec", a)
	if err != nil {
		t.Fatal(err)
	}
	db, err := s.WriteJSON("spec", b)
	if err != nil {
		t.Fatal(err)
	}
	if da != db {
		t.Fatalf("expected stable-JSON digests to match regardless of key order, got %s and %s", da, db)
	}
}

func TestRunRoundTrip(t *testing.T) {
	s := openTestStore(t)
	spec := map[string]any{"version": "v0"}
	cfg := map[string]any{"max_model_size": 3.0}
	if err := s.RecordRun("run1", spec, cfg, "digest-m", "digest-r"); err != nil {
		t.Fatal(err)
	}
	rec, err := s.LoadRun("run1")
	if err != nil {
		t.Fatal(err)
	}
	if rec == nil {
		t.Fatal("expected run record, got nil")
	}
	if rec.ManifestDigest != "digest-m" || rec.ResultsDigest != "digest-r" {
		t.Fatalf("unexpected digests: %+v", rec)
	}
}

func TestAxiomLookupBySymmetry(t *testing.T) {
	s := openTestStore(t)
	if err := s.RecordAxiom("run1", "axiom1", "f(x0,x1)", "f(x1,x0)", "class-a"); err != nil {
		t.Fatal(err)
	}
	rec, err := s.LookupAxiomBySymmetry("class-a")
	if err != nil {
		t.Fatal(err)
	}
	if rec == nil || rec.AxiomID != "axiom1" {
		t.Fatalf("expected axiom1, got %+v", rec)
	}
	exists, err := s.AxiomSymmetryExists("class-missing")
	if err != nil {
		t.Fatal(err)
	}
	if exists {
		t.Error("expected class-missing to not exist")
	}
}

func TestModelsRoundTrip(t *testing.T) {
	s := openTestStore(t)
	fp := "n=1;f=0"
	models := []ModelRecord{
		{Size: 1, Status: "found", Fingerprint: &fp, Candidates: 1, ElapsedSeconds: 0.01},
		{Size: 2, Status: "not_found", Candidates: 16, ElapsedSeconds: 0.05},
	}
	if err := s.RecordModels("run1", "axiom1", models); err != nil {
		t.Fatal(err)
	}
	loaded, err := s.LoadModels("run1", "axiom1")
	if err != nil {
		t.Fatal(err)
	}
	if len(loaded) != 2 || loaded[0].Size != 1 || loaded[1].Size != 2 {
		t.Fatalf("unexpected models: %+v", loaded)
	}
}

func TestMetricsRoundTripNullableAndTyped(t *testing.T) {
	s := openTestStore(t)
	metrics := map[string]any{
		"model_found_ratio": 0.5,
		"trivial_identity":  false,
		"novelty_vs_archive": nil,
		"proof_step_max":    3,
	}
	if err := s.RecordMetrics("run1", "axiom1", metrics); err != nil {
		t.Fatal(err)
	}
	loaded, err := s.LoadMetrics("run1", "axiom1")
	if err != nil {
		t.Fatal(err)
	}
	if loaded["model_found_ratio"] != 0.5 {
		t.Errorf("model_found_ratio = %v, want 0.5", loaded["model_found_ratio"])
	}
	if loaded["trivial_identity"] != 0.0 {
		t.Errorf("trivial_identity = %v, want 0.0 (bool stored as 0/1)", loaded["trivial_identity"])
	}
	if loaded["novelty_vs_archive"] != nil {
		t.Errorf("novelty_vs_archive = %v, want nil", loaded["novelty_vs_archive"])
	}
}

func TestNotesAppendOnly(t *testing.T) {
	s := openTestStore(t)
	n1, err := s.AddNote("run1", "axiom1", "first")
	if err != nil {
		t.Fatal(err)
	}
	n2, err := s.AddNote("run1", "axiom1", "second")
	if err != nil {
		t.Fatal(err)
	}
	if n1.NoteID == n2.NoteID {
		t.Fatal("expected distinct note ids")
	}
	notes, err := s.LoadNotes("run1", "axiom1")
	if err != nil {
		t.Fatal(err)
	}
	if len(notes) != 2 || notes[0].Body != "first" || notes[1].Body != "second" {
		t.Fatalf("unexpected notes order: %+v", notes)
	}
}
