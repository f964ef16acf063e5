package core

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"unicode"
)

// Hash represents a cryptographic hash
type Hash string

// NewHash creates a new hash from data
func NewHash(data []byte) Hash {
	sum := sha256.Sum256(data)
	return Hash(hex.EncodeToString(sum[:]))
}

// String returns the string representation
func (h Hash) String() string {
	return string(h)
}

// IsEmpty checks if the hash is empty
func (h Hash) IsEmpty() bool {
	return h == ""
}

// Equals checks if two hashes are equal
func (h Hash) Equals(other Hash) bool {
	return h == other
}

// StudentHash is the anonymized form of a raw student identifier.
// It carries no link back to the raw value except through deterministic
// re-computation by AnonymizeID.
type StudentHash Hash

func (h StudentHash) String() string { return Hash(h).String() }

// NormalizeID trims and case-normalizes a raw student identifier. When
// stripPrefix is set and the identifier begins with a single non-digit
// character, that character is removed first, so "s123" and "123"
// normalize identically. Stripping happens before case folding and
// applies uniformly to pre- and post-survey identifiers.
func NormalizeID(raw string, stripPrefix bool) string {
	id := strings.TrimSpace(raw)
	if stripPrefix && id != "" && !unicode.IsDigit(rune(id[0])) {
		id = id[1:]
	}
	return strings.ToLower(id)
}

// AnonymizeID computes the stable pseudonymous hash for a raw student
// identifier. The same raw identifier always yields the same hash across
// calls and across runs; distinct normalized identifiers collide only
// with negligible probability.
func AnonymizeID(raw string, stripPrefix bool) (StudentHash, error) {
	id := NormalizeID(raw, stripPrefix)
	if id == "" {
		return "", ErrEmptyIdentifier
	}
	return StudentHash(NewHash([]byte(id))), nil
}
