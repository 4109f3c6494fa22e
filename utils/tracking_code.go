package utils

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

// GenerateTrackingCode creates the capability token for a quiz: 32 bytes of
// crypto/rand encoded URL-safe. Anyone holding the code can fetch the quiz's
// tracking snippet, so it must not be guessable or derivable from the quiz id.
func GenerateTrackingCode() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate random bytes for tracking code: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
