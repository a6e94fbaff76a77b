package store

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/ehrlich-b/axlab/internal/digest"
)

// RunRecord is the persisted summary of one lab run.
type RunRecord struct {
	RunID           string
	Spec            map[string]any
	BatteryConfig   map[string]any
	ManifestDigest  string
	ResultsDigest   string
}

// AxiomRecord identifies one axiom analyzed within a run.
type AxiomRecord struct {
	RunID         string
	AxiomID       string
	LeftTerm      string
	RightTerm     string
	SymmetryClass string
}

// ModelRecord is one point of an axiom's persisted model spectrum.
type ModelRecord struct {
	Size           int
	Status         string
	Fingerprint    *string
	Candidates     int
	ElapsedSeconds float64
}

// ImplicationRecord is one persisted theory-probe outcome, with its
// proof trace inlined if a proof was attempted.
type ImplicationRecord struct {
	Theory                    string
	Status                    string
	CheckedMaxSize            int
	CounterexampleSize        *int
	CounterexampleFingerprint *string
	ProofStatus               *string
	ProofElapsedSeconds       *float64
	ProofSteps                []map[string]string
}

// NoteRecord is a free-form annotation attached to a run/axiom pair.
type NoteRecord struct {
	NoteID    int64
	RunID     string
	AxiomID   string
	Body      string
	CreatedAt string
}

// RecordRun upserts a run's manifest/results digests and config.
func (s *Store) RecordRun(runID string, spec, batteryConfig map[string]any, manifestDigest, resultsDigest string) error {
	specJSON, err := digest.StableJSON(spec)
	if err != nil {
		return fmt.Errorf("encode spec: %w", err)
	}
	configJSON, err := digest.StableJSON(batteryConfig)
	if err != nil {
		return fmt.Errorf("encode battery config: %w", err)
	}
	_, err = s.db.Exec(
		`INSERT OR REPLACE INTO runs(run_id, created_at, spec_json, battery_config_json, manifest_digest, results_digest)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		runID, utcNow(), string(specJSON), string(configJSON), manifestDigest, resultsDigest,
	)
	return err
}

// LoadRun fetches a run's persisted record, or (nil, nil) if absent.
func (s *Store) LoadRun(runID string) (*RunRecord, error) {
	row := s.db.QueryRow(
		"SELECT spec_json, battery_config_json, manifest_digest, results_digest FROM runs WHERE run_id = ?",
		runID,
	)
	var specJSON, configJSON, manifestDigest, resultsDigest string
	if err := row.Scan(&specJSON, &configJSON, &manifestDigest, &resultsDigest); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	var spec, config map[string]any
	if err := json.Unmarshal([]byte(specJSON), &spec); err != nil {
		return nil, fmt.Errorf("decode spec: %w", err)
	}
	if err := json.Unmarshal([]byte(configJSON), &config); err != nil {
		return nil, fmt.Errorf("decode battery config: %w", err)
	}
	return &RunRecord{
		RunID:          runID,
		Spec:           spec,
		BatteryConfig:  config,
		ManifestDigest: manifestDigest,
		ResultsDigest:  resultsDigest,
	}, nil
}

// RecordAxiom upserts one axiom's identity within a run.
func (s *Store) RecordAxiom(runID, axiomID, leftTerm, rightTerm, symmetryClass string) error {
	_, err := s.db.Exec(
		`INSERT OR REPLACE INTO axioms(run_id, axiom_id, left_term, right_term, symmetry_class, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		runID, axiomID, leftTerm, rightTerm, symmetryClass, utcNow(),
	)
	return err
}

// LoadAxiom fetches one axiom's identity record, or (nil, nil) if absent.
func (s *Store) LoadAxiom(runID, axiomID string) (*AxiomRecord, error) {
	row := s.db.QueryRow(
		"SELECT left_term, right_term, symmetry_class FROM axioms WHERE run_id = ? AND axiom_id = ?",
		runID, axiomID,
	)
	var left, right, symmetry string
	if err := row.Scan(&left, &right, &symmetry); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &AxiomRecord{RunID: runID, AxiomID: axiomID, LeftTerm: left, RightTerm: right, SymmetryClass: symmetry}, nil
}

// ListAxioms returns every axiom recorded for a run.
func (s *Store) ListAxioms(runID string) ([]AxiomRecord, error) {
	rows, err := s.db.Query(
		"SELECT axiom_id, left_term, right_term, symmetry_class FROM axioms WHERE run_id = ?",
		runID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []AxiomRecord
	for rows.Next() {
		var rec AxiomRecord
		rec.RunID = runID
		if err := rows.Scan(&rec.AxiomID, &rec.LeftTerm, &rec.RightTerm, &rec.SymmetryClass); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// LookupAxiomBySymmetry finds the earliest-recorded axiom matching a
// symmetry class (by created_at, then insertion order), across all
// runs. Used to decide novelty against a prior archive.
func (s *Store) LookupAxiomBySymmetry(symmetryClass string) (*AxiomRecord, error) {
	row := s.db.QueryRow(
		`SELECT run_id, axiom_id, left_term, right_term, symmetry_class
		 FROM axioms WHERE symmetry_class = ? ORDER BY created_at, rowid LIMIT 1`,
		symmetryClass,
	)
	var rec AxiomRecord
	if err := row.Scan(&rec.RunID, &rec.AxiomID, &rec.LeftTerm, &rec.RightTerm, &rec.SymmetryClass); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

// AxiomSymmetryExists is a convenience wrapper for archive-based novelty
// lookups.
func (s *Store) AxiomSymmetryExists(symmetryClass string) (bool, error) {
	rec, err := s.LookupAxiomBySymmetry(symmetryClass)
	if err != nil {
		return false, err
	}
	return rec != nil, nil
}

// RecordModels upserts every point of an axiom's model spectrum.
func (s *Store) RecordModels(runID, axiomID string, models []ModelRecord) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	stmt, err := tx.Prepare(
		`INSERT OR REPLACE INTO models(run_id, axiom_id, size, status, fingerprint, candidates, elapsed_seconds, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
	)
	if err != nil {
		tx.Rollback()
		return err
	}
	defer stmt.Close()
	now := utcNow()
	for _, m := range models {
		if _, err := stmt.Exec(runID, axiomID, m.Size, m.Status, m.Fingerprint, m.Candidates, m.ElapsedSeconds, now); err != nil {
			tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

// LoadModels returns an axiom's persisted model spectrum, ordered by size.
func (s *Store) LoadModels(runID, axiomID string) ([]ModelRecord, error) {
	rows, err := s.db.Query(
		`SELECT size, status, fingerprint, candidates, elapsed_seconds
		 FROM models WHERE run_id = ? AND axiom_id = ? ORDER BY size`,
		runID, axiomID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []ModelRecord
	for rows.Next() {
		var m ModelRecord
		if err := rows.Scan(&m.Size, &m.Status, &m.Fingerprint, &m.Candidates, &m.ElapsedSeconds); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// RecordImplications upserts every theory-probe outcome for an axiom.
func (s *Store) RecordImplications(runID, axiomID string, implications []ImplicationRecord) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	stmt, err := tx.Prepare(
		`INSERT OR REPLACE INTO implications(run_id, axiom_id, theory, status, checked_max_size,
		  counterexample_size, counterexample_fingerprint, proof_status, proof_elapsed_seconds, proof_steps_json, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
	)
	if err != nil {
		tx.Rollback()
		return err
	}
	defer stmt.Close()
	now := utcNow()
	for _, r := range implications {
		var stepsJSON *string
		if r.ProofSteps != nil {
			encoded, err := digest.StableJSON(r.ProofSteps)
			if err != nil {
				tx.Rollback()
				return fmt.Errorf("encode proof steps: %w", err)
			}
			s := string(encoded)
			stepsJSON = &s
		}
		if _, err := stmt.Exec(
			runID, axiomID, r.Theory, r.Status, r.CheckedMaxSize,
			r.CounterexampleSize, r.CounterexampleFingerprint,
			r.ProofStatus, r.ProofElapsedSeconds, stepsJSON, now,
		); err != nil {
			tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

// LoadImplications returns an axiom's persisted theory-probe outcomes,
// ordered by theory name.
func (s *Store) LoadImplications(runID, axiomID string) ([]ImplicationRecord, error) {
	rows, err := s.db.Query(
		`SELECT theory, status, checked_max_size, counterexample_size, counterexample_fingerprint,
		  proof_status, proof_elapsed_seconds, proof_steps_json
		 FROM implications WHERE run_id = ? AND axiom_id = ? ORDER BY theory`,
		runID, axiomID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []ImplicationRecord
	for rows.Next() {
		var r ImplicationRecord
		var stepsJSON *string
		if err := rows.Scan(
			&r.Theory, &r.Status, &r.CheckedMaxSize, &r.CounterexampleSize, &r.CounterexampleFingerprint,
			&r.ProofStatus, &r.ProofElapsedSeconds, &stepsJSON,
		); err != nil {
			return nil, err
		}
		if stepsJSON != nil {
			if err := json.Unmarshal([]byte(*stepsJSON), &r.ProofSteps); err != nil {
				return nil, fmt.Errorf("decode proof steps: %w", err)
			}
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// RecordMetrics upserts an axiom's computed metrics map. Numeric and
// boolean values are stored in the value column; everything else
// (nested structures, strings) is stable-JSON-encoded into value_json.
func (s *Store) RecordMetrics(runID, axiomID string, metrics map[string]any) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	stmt, err := tx.Prepare(
		`INSERT OR REPLACE INTO metrics(run_id, axiom_id, name, value, value_json, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
	)
	if err != nil {
		tx.Rollback()
		return err
	}
	defer stmt.Close()
	now := utcNow()
	for name, value := range metrics {
		numeric, payload, err := metricPayload(value)
		if err != nil {
			tx.Rollback()
			return err
		}
		if _, err := stmt.Exec(runID, axiomID, name, numeric, payload, now); err != nil {
			tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

func metricPayload(value any) (*float64, *string, error) {
	if value == nil {
		return nil, nil, nil
	}
	switch v := value.(type) {
	case bool:
		f := 0.0
		if v {
			f = 1.0
		}
		return &f, nil, nil
	case int:
		f := float64(v)
		return &f, nil, nil
	case float64:
		return &v, nil, nil
	default:
		encoded, err := digest.StableJSON(value)
		if err != nil {
			return nil, nil, fmt.Errorf("encode metric value: %w", err)
		}
		s := string(encoded)
		return nil, &s, nil
	}
}

func parseMetricValue(value *float64, valueJSON *string) (any, error) {
	if valueJSON != nil {
		var v any
		if err := json.Unmarshal([]byte(*valueJSON), &v); err != nil {
			return nil, err
		}
		return v, nil
	}
	if value == nil {
		return nil, nil
	}
	return *value, nil
}

// LoadMetrics returns an axiom's persisted metrics map.
func (s *Store) LoadMetrics(runID, axiomID string) (map[string]any, error) {
	rows, err := s.db.Query(
		"SELECT name, value, value_json FROM metrics WHERE run_id = ? AND axiom_id = ?",
		runID, axiomID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := map[string]any{}
	for rows.Next() {
		var name string
		var value *float64
		var valueJSON *string
		if err := rows.Scan(&name, &value, &valueJSON); err != nil {
			return nil, err
		}
		parsed, err := parseMetricValue(value, valueJSON)
		if err != nil {
			return nil, fmt.Errorf("decode metric %s: %w", name, err)
		}
		out[name] = parsed
	}
	return out, rows.Err()
}

// AddNote appends a free-form note to a run/axiom pair.
func (s *Store) AddNote(runID, axiomID, body string) (*NoteRecord, error) {
	createdAt := utcNow()
	result, err := s.db.Exec(
		"INSERT INTO notes(run_id, axiom_id, body, created_at) VALUES (?, ?, ?, ?)",
		runID, axiomID, body, createdAt,
	)
	if err != nil {
		return nil, err
	}
	noteID, err := result.LastInsertId()
	if err != nil {
		return nil, err
	}
	return &NoteRecord{NoteID: noteID, RunID: runID, AxiomID: axiomID, Body: body, CreatedAt: createdAt}, nil
}

// LoadNotes returns every note for a run/axiom pair, in insertion order.
func (s *Store) LoadNotes(runID, axiomID string) ([]NoteRecord, error) {
	rows, err := s.db.Query(
		"SELECT note_id, body, created_at FROM notes WHERE run_id = ? AND axiom_id = ? ORDER BY note_id",
		runID, axiomID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []NoteRecord
	for rows.Next() {
		var n NoteRecord
		n.RunID, n.AxiomID = runID, axiomID
		if err := rows.Scan(&n.NoteID, &n.Body, &n.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}
