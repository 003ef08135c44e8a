package utils

import (
	"crypto/sha256"
	"encoding/hex"
)

// HashString returns the hex-encoded SHA-256 digest of s. Used for rate-limit
// fingerprints and consent ip/user-agent hashes; deterministic and one-way,
// never a re-identification tool.
func HashString(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}
