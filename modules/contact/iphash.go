package contact

import (
	"crypto/sha256"
	"encoding/hex"
)

// HashIP returns the SHA-256 hex digest of the raw client IP concatenated
// with a server-held salt. The transform is deterministic and one-way: the
// stored value can be correlated across submissions but never reversed to
// the original address. Callers must not log or persist rawIP beyond this
// computation.
func HashIP(rawIP, salt string) string {
	sum := sha256.Sum256([]byte(rawIP + salt))
	return hex.EncodeToString(sum[:])
}
