package project

import "encoding/hex"

// Digest is a SHA-256 content hash, the key space for cache lookups.
type Digest [32]byte

// Hex renders the digest for file names and logs.
func (d Digest) Hex() string {
	return hex.EncodeToString(d[:])
}

// IsZero reports whether the digest is all zeroes (never a real hash).
func (d Digest) IsZero() bool {
	var z Digest
	return d == z
}
