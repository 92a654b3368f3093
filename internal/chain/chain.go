// Package chain implements the hash-chain engine: two pure functions that
// link each record to its predecessor by digest.
package chain

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// DigestLength is the character length of every digest this package
// produces, including the genesis digest.
const DigestLength = 64

// Genesis returns the fixed 64-character zero digest used as the
// predecessor of the first record in a chain.
func Genesis() string {
	return strings.Repeat("0", DigestLength)
}

// Compute returns the lowercase hex SHA-256 digest of prevDigest
// concatenated with canonicalBytes. It holds no state: given identical
// inputs it always returns the identical digest, and differs for any
// other prevDigest.
func Compute(prevDigest string, canonicalBytes []byte) string {
	h := sha256.New()
	h.Write([]byte(prevDigest))
	h.Write(canonicalBytes)
	return hex.EncodeToString(h.Sum(nil))
}
