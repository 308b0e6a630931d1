package oauth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
)

// stateBytes is the amount of randomness in a generated state (256 bits).
const stateBytes = 32

// stateParam is the callback parameter carrying the state token.
const stateParam = "state"

// StateGenerator produces unguessable, URL-safe state tokens.
type StateGenerator interface {
	Generate() (string, error)
}

// StateGeneratorFunc adapts a function to StateGenerator.
type StateGeneratorFunc func() (string, error)

// Generate calls f.
func (f StateGeneratorFunc) Generate() (string, error) {
	return f()
}

// RandomState is the default StateGenerator: 32 bytes from crypto/rand,
// base64url encoded without padding.
type RandomState struct{}

// Generate returns a new random state token.
func (RandomState) Generate() (string, error) {
	buf := make([]byte, stateBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("oauth: read random state: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// VerifyState checks the state received on the callback against the
// expected one. Absence on either side is a mismatch.
func VerifyState(expected, received string) error {
	if expected == "" || received == "" {
		return &CallbackCSRFError{Key: stateParam}
	}
	if subtle.ConstantTimeCompare([]byte(expected), []byte(received)) != 1 {
		return &CallbackCSRFError{Key: stateParam}
	}
	return nil
}
