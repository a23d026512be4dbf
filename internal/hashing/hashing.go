// Package hashing fingerprints downloaded datasets so identical
// publications can be detected and skipped.
package hashing

import (
	"crypto/sha256"
	"encoding/hex"
)

// Sum returns the hex-encoded SHA-256 digest of payload. The digest is
// an equality check between dataset snapshots, not a security boundary.
func Sum(payload []byte) string {
	sum := sha256.Sum256(payload)
	return hex.EncodeToString(sum[:])
}
