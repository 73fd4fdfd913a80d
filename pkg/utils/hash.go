package utils

import (
	"crypto/sha256"
	"encoding/hex"
)

// shortHashLen is the number of hex characters kept from a URL digest.
const shortHashLen = 8

// URLHash computes a short deterministic hex digest of a URL string.
// Two distinct URLs yield distinct digests for filename purposes.
func URLHash(rawURL string) string {
	sum := sha256.Sum256([]byte(rawURL))
	return hex.EncodeToString(sum[:])[:shortHashLen]
}
