package utils

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// GenerateSecret generates a cryptographically secure random secret
func GenerateSecret(bytes int) (string, error) {
	b := make([]byte, bytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// RandomToken returns a short random token for collision-resistant file
// naming. Panics only if the OS entropy source is broken.
func RandomToken() string {
	token, err := GenerateSecret(6)
	if err != nil {
		panic(err)
	}
	return token
}
