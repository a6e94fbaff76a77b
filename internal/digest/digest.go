// Package digest provides the deterministic JSON encoding and content
// hashing used to derive run ids, axiom ids, and artifact digests.
package digest

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"sort"
)

// StableJSON renders data as JSON with keys sorted and no insignificant
// whitespace, so structurally identical values always digest to the
// same bytes regardless of map iteration order.
func StableJSON(data any) ([]byte, error) {
	normalized := normalize(data)
	return json.Marshal(normalized)
}

// normalize converts map[string]any into a form encoding/json already
// renders with sorted keys (true since Go 1.12), but recurses through
// slices and nested maps so every level is covered uniformly.
func normalize(v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			out[k] = normalize(val[k])
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = normalize(item)
		}
		return out
	default:
		return v
	}
}

// SHA256Hex returns the lowercase hex-encoded SHA-256 digest of data.
func SHA256Hex(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// SHA256HexTruncated returns the first n hex characters of the SHA-256
// digest of data, used for shorter human-facing ids like run ids.
func SHA256HexTruncated(data []byte, n int) string {
	full := SHA256Hex(data)
	if n >= len(full) {
		return full
	}
	return full[:n]
}
