// Package metadata describes a loaded dataset: when it was loaded, how large it was, and a content hash.
package metadata

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"strings"
	"time"
)

// Metadata contains the load information of one dataset.
type Metadata struct {
	LoadedAt time.Time        `json:"loadedAt"`
	Sizes    map[string]int64 `json:"sizes"`
	Hash     string           `json:"hash"`
}

// New computes the metadata for the given named payloads. Names fix the
// hashing order, so the same payloads always produce the same hash.
func New(names []string, payloads [][]byte) *Metadata {
	sizes := make(map[string]int64, len(names))
	for i, name := range names {
		if i < len(payloads) {
			sizes[name] = int64(len(payloads[i]))
		}
	}

	return &Metadata{
		LoadedAt: time.Now().UTC(),
		Sizes:    sizes,
		Hash:     CalculateHash(payloads...),
	}
}

// CalculateHash computes the SHA-256 over the payloads, each prefixed by its length
// so that moving bytes between payloads changes the hash.
func CalculateHash(payloads ...[]byte) string {
	h := sha256.New()

	var prefix [8]byte
	for _, p := range payloads {
		binary.BigEndian.PutUint64(prefix[:], uint64(len(p)))
		h.Write(prefix[:])
		h.Write(p)
	}

	return hex.EncodeToString(h.Sum(nil))
}

// ETag returns the strong entity tag for the dataset.
func (m *Metadata) ETag() string {
	if m == nil || len(m.Hash) < 16 {
		return ""
	}

	return `"` + m.Hash[:16] + `"`
}

// MatchesETag reports whether an If-None-Match header value names this dataset.
func (m *Metadata) MatchesETag(ifNoneMatch string) bool {
	etag := m.ETag()
	if etag == "" || ifNoneMatch == "" {
		return false
	}

	for _, candidate := range strings.Split(ifNoneMatch, ",") {
		candidate = strings.TrimSpace(candidate)
		candidate = strings.TrimPrefix(candidate, "W/")

		if candidate == "*" || candidate == etag {
			return true
		}
	}

	return false
}
