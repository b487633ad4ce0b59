package utils // package utils provides helper functions for token creation and hashing

import (
	"crypto/rand"   // secure random number generation
	"crypto/sha256" // SHA-256 hashing for stored tokens
	"encoding/hex"  // hex encoding of token bytes and digests
)

// authTokenBytes is the number of random bytes in a raw auth token. The raw
// string handed to the client is twice as long once hex-encoded (40 chars).
const authTokenBytes = 20

// NewAuthToken returns a cryptographically secure opaque token string. The
// raw value is returned to the client exactly once, at issuance; only its
// hash is ever persisted.
func NewAuthToken() (string, error) {
	return randomHex(authTokenBytes)
}

// HashToken returns the SHA-256 hash of a raw auth token as a hex string.
// Storing only the hash in the database prevents attackers from using
// stolen database entries as bearer credentials.
func HashToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}

// randomHex returns a hex-encoded string generated from n bytes of
// cryptographically secure random data.
func randomHex(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
