package pkg

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

// GenerateInstanceID - generates a unique id for the running process.
func GenerateInstanceID() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate instance id: %w", err)
	}

	return base64.RawURLEncoding.EncodeToString(b), nil
}
