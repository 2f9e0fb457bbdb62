package oauth

import (
	"crypto/rand"
	"encoding/base64"
	"errors"

	"golang.org/x/oauth2"
)

// CodeChallengeMethodS256 is the only PKCE method used; plain is never sent.
const CodeChallengeMethodS256 = "S256"

const stateBytes = 32

// GenerateCodeVerifier returns a 43 character URL-safe PKCE verifier
// built from 32 random bytes.
func GenerateCodeVerifier() string {
	return oauth2.GenerateVerifier()
}

// CodeChallenge derives BASE64URL(SHA256(verifier)).
func CodeChallenge(verifier string) string {
	return oauth2.S256ChallengeFromVerifier(verifier)
}

// GenerateState returns an unguessable URL-safe state value.
func GenerateState() (string, error) {
	b := make([]byte, stateBytes)
	if _, err := rand.Read(b); err != nil {
		return "", errors.Join(errors.New("oauth: failed to generate state"), err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
