package varnish

import (
	"crypto/sha256"
	"encoding/hex"
)

// challengeSize is the length of the random challenge that opens an
// authentication banner.
const challengeSize = 32

// authDigest computes the proof of secret knowledge for a challenge:
// the hex encoded SHA-256 over the challenge and the secret, each
// terminated by a newline, with the challenge repeated at the end.
// The secret is hashed exactly as configured.
func authDigest(challenge, secret string) string {
	sum := sha256.Sum256([]byte(challenge + "\n" + secret + "\n" + challenge + "\n"))
	return hex.EncodeToString(sum[:])
}
