package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"

	"github.com/pkg/errors"
)

const (
	// 32 bytes gives 256 bits of entropy for the PKCE verifier and
	// encodes to 43 base64url characters, the RFC 7636 minimum.
	pkceVerifierBytes = 32
	stateBytes        = 32
)

// PKCEChallenge holds a generated PKCE verifier/challenge pair for the
// authorization-code flow.
type PKCEChallenge struct {
	CodeVerifier        string
	CodeChallenge       string
	CodeChallengeMethod string
}

// GeneratePKCE generates a PKCE code verifier and its S256 challenge.
func GeneratePKCE() (*PKCEChallenge, error) {
	verifierBytes := make([]byte, pkceVerifierBytes)
	if _, err := rand.Read(verifierBytes); err != nil {
		return nil, errors.Wrap(err, "[GeneratePKCE] rand.Read")
	}
	verifier := base64.RawURLEncoding.EncodeToString(verifierBytes)

	hash := sha256.Sum256([]byte(verifier))
	return &PKCEChallenge{
		CodeVerifier:        verifier,
		CodeChallenge:       base64.RawURLEncoding.EncodeToString(hash[:]),
		CodeChallengeMethod: "S256",
	}, nil
}

// GenerateState generates a random state parameter for CSRF protection.
func GenerateState() (string, error) {
	raw := make([]byte, stateBytes)
	if _, err := rand.Read(raw); err != nil {
		return "", errors.Wrap(err, "[GenerateState] rand.Read")
	}
	return base64.RawURLEncoding.EncodeToString(raw), nil
}

// HashState returns the comparison form of a state parameter. The flow
// keeps only the hash between redirect and callback.
func HashState(state string) string {
	hash := sha256.Sum256([]byte(state))
	return base64.URLEncoding.EncodeToString(hash[:])
}
