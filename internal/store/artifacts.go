package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/ehrlich-b/axlab/internal/digest"
)

func artifactPath(root, digest string) string {
	return filepath.Join(root, "artifacts", digest[:2], digest)
}

// WriteBytes stores data under its content digest if not already
// present and indexes it in the artifacts table, returning the digest.
func (s *Store) WriteBytes(kind string, data []byte) (string, error) {
	start := time.Now()
	sum := digest.SHA256Hex(data)
	path := artifactPath(s.root, sum)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return "", fmt.Errorf("create artifact dir: %w", err)
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return "", fmt.Errorf("write artifact: %w", err)
		}
	}
	_, err := s.db.Exec(
		"INSERT OR IGNORE INTO artifacts(digest, kind, size, created_at) VALUES (?, ?, ?, ?)",
		sum, kind, len(data), utcNow(),
	)
	if err != nil {
		return "", fmt.Errorf("index artifact: %w", err)
	}
	if s.metrics != nil {
		s.metrics.StoreWriteLatency.WithLabelValues("write_bytes").Observe(time.Since(start).Seconds())
		s.metrics.ArtifactsWrittenTotal.WithLabelValues(kind).Inc()
	}
	return sum, nil
}

// WriteJSON stable-JSON-encodes data and stores it as a bytes artifact.
func (s *Store) WriteJSON(kind string, data any) (string, error) {
	payload, err := digest.StableJSON(data)
	if err != nil {
		return "", fmt.Errorf("encode artifact json: %w", err)
	}
	return s.WriteBytes(kind, payload)
}

// ReadBytes reads a previously written artifact by its digest.
func (s *Store) ReadBytes(sum string) ([]byte, error) {
	return os.ReadFile(artifactPath(s.root, sum))
}

// ReadJSON reads and decodes a JSON artifact by its digest.
func (s *Store) ReadJSON(sum string, out any) error {
	data, err := s.ReadBytes(sum)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, out)
}

func utcNow() string {
	return time.Now().UTC().Format(time.RFC3339Nano)
}
