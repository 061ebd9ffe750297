package auth

// TokenResponse is the platform's /oauth2/token response (RFC 6749).
// Decoded on login code exchange and on every refresh.
type TokenResponse struct {
	// AccessToken is the JWT presented as "Authorization: Bearer <token>"
	// on every platform API call.
	AccessToken string `json:"access_token"`

	// IdToken is the OIDC ID token; present when the "openid" scope was
	// requested. Verified at login, then kept for display claims.
	IdToken string `json:"id_token,omitempty"`

	// TokenType is "bearer" for every grant the platform issues.
	TokenType string `json:"token_type,omitempty"`

	// ExpiresIn is the access-token lifetime in seconds. The session
	// store converts it to an absolute expiry at receipt.
	ExpiresIn int `json:"expires_in,omitempty"`

	// RefreshToken is the opaque token exchanged for new access tokens.
	// The platform rotates it on each refresh.
	RefreshToken string `json:"refresh_token,omitempty"`

	// Scope is the space-separated list of granted scopes; may be less
	// than requested.
	Scope string `json:"scope,omitempty"`
}
