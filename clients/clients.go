package clients

import (
	"fmt"
	"strings"
)

// GrantType values the platform accepts for a registered client.
const (
	GrantAuthorizationCode = "authorization_code"
	GrantClientCredentials = "client_credentials"
	GrantRefreshToken      = "refresh_token"
)

// Client is a registered OAuth2 client as managed from the console.
type Client struct {
	ClientID             string   `json:"clientId"`
	ClientName           string   `json:"clientName"`
	ClientSecret         string   `json:"clientSecret,omitempty"` // only populated on create/regenerate
	RedirectUris         []string `json:"redirectUris,omitempty"`
	Scopes               []string `json:"scopes,omitempty"`
	GrantTypes           []string `json:"grantTypes,omitempty"`
	AccessTokenValidity  int      `json:"accessTokenValidity,omitempty"`  // seconds
	RefreshTokenValidity int      `json:"refreshTokenValidity,omitempty"` // seconds
	Status               string   `json:"status,omitempty"`
}

// Validate checks the in-progress client form synchronously, before the
// network layer is involved.
func (c *Client) Validate() error {
	if strings.TrimSpace(c.ClientID) == "" {
		return fmt.Errorf("clientId is required")
	}
	if strings.TrimSpace(c.ClientName) == "" {
		return fmt.Errorf("clientName is required")
	}

	for _, uri := range c.RedirectUris {
		if err := ValidateRedirectURI(uri); err != nil {
			return err
		}
	}

	for _, grant := range c.GrantTypes {
		switch grant {
		case GrantAuthorizationCode, GrantClientCredentials, GrantRefreshToken:
		default:
			return fmt.Errorf("unsupported grant type %q", grant)
		}
	}

	if c.AccessTokenValidity < 0 {
		return fmt.Errorf("accessTokenValidity must not be negative")
	}
	if c.RefreshTokenValidity < 0 {
		return fmt.Errorf("refreshTokenValidity must not be negative")
	}

	requiresRedirect := false
	for _, grant := range c.GrantTypes {
		if grant == GrantAuthorizationCode {
			requiresRedirect = true
		}
	}
	if requiresRedirect && len(c.RedirectUris) == 0 {
		return fmt.Errorf("authorization_code clients require at least one redirect URI")
	}
	return nil
}

// ValidateRedirectURI validates redirect URI format
func ValidateRedirectURI(uri string) error {
	uri = strings.TrimSpace(uri)
	if uri == "" {
		return fmt.Errorf("redirect URI must not be empty")
	}

	// Must start with http:// or https://
	if !strings.HasPrefix(uri, "http://") && !strings.HasPrefix(uri, "https://") {
		return fmt.Errorf("redirect URI must use http or https scheme")
	}

	// Should not contain fragments
	if strings.Contains(uri, "#") {
		return fmt.Errorf("redirect URI must not contain fragments")
	}

	return nil
}

// HasScope checks if the client has permission for a specific scope
func (c *Client) HasScope(scope string) bool {
	for _, s := range c.Scopes {
		if s == scope {
			return true
		}
	}
	return false
}
