// Package sha256 fingerprints rendered documents.
package sha256

import (
	"crypto/sha256"
	"encoding/hex"
)

// Prefix marks the digest algorithm in returned fingerprints.
const Prefix = "sha256:"

// Hasher produces "sha256:<hex>" digests.
type Hasher struct{}

// New returns a SHA-256 hasher.
func New() *Hasher {
	return &Hasher{}
}

// Hash returns the prefixed hex digest of data.
func (h *Hasher) Hash(data []byte) (string, error) {
	sum := sha256.Sum256(data)
	return Prefix + hex.EncodeToString(sum[:]), nil
}
