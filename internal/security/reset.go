package security

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// GenerateResetToken returns a 64-character hex string from 32 bytes of
// CSPRNG output, matching the reset-link format the frontend expects.
func GenerateResetToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate reset token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
