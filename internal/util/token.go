package util

import (
	"crypto/rand"
	"encoding/hex"
)

const tokenBytes = 32

// GenerateOpaqueToken returns a 64-character hex token with 256 bits of
// entropy, used for password-reset tokens and dashboard session cookies.
func GenerateOpaqueToken() (string, error) {
	b := make([]byte, tokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
