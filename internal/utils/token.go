package utils

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// GenerateTokenID returns a random 32-character hex string used to make
// signed tokens unique.
func GenerateTokenID() (string, error) {
	bytes := make([]byte, 16)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}
	return hex.EncodeToString(bytes), nil
}
