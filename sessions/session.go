package sessions

import (
	"time"
)

// ExpiryMargin is subtracted when checking access-token validity. It
// accounts for clock skew between the console and the platform plus
// network latency, so a token is never presented moments before expiry.
const ExpiryMargin = 30 * time.Second

// Profile is the cached user profile, written at login and read at
// bootstrap. It is a cache, not a source of truth; the platform's
// user endpoint always wins.
type Profile struct {
	ID        string   `json:"id,omitempty"`
	UserName  string   `json:"userName,omitempty"`
	Email     string   `json:"email,omitempty"`
	FirstName string   `json:"firstName,omitempty"`
	LastName  string   `json:"lastName,omitempty"`
	Roles     []string `json:"roles,omitempty"`
	AccountID string   `json:"accountId,omitempty"`
}

// Session is the authenticated console session. Created on a successful
// login callback, mutated on token refresh, destroyed on logout.
type Session struct {
	User         *Profile  `json:"user,omitempty"`
	AccessToken  string    `json:"accessToken,omitempty"`
	RefreshToken string    `json:"refreshToken,omitempty"`
	IDToken      string    `json:"idToken,omitempty"`
	TokenType    string    `json:"tokenType,omitempty"`
	Scope        string    `json:"scope,omitempty"`
	ExpiresAt    time.Time `json:"expiresAt,omitempty"`
}

// Valid reports whether the access token is still usable at the given
// time, applying ExpiryMargin.
func (s *Session) Valid(now time.Time) bool {
	if s == nil || s.AccessToken == "" {
		return false
	}
	return now.Add(ExpiryMargin).Before(s.ExpiresAt)
}

// HasRole reports whether the cached profile carries the given role.
func (s *Session) HasRole(role string) bool {
	if s == nil || s.User == nil {
		return false
	}
	for _, r := range s.User.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// DisplayName returns a human-readable name for the session's user.
func (s *Session) DisplayName() string {
	if s == nil || s.User == nil {
		return ""
	}
	if s.User.FirstName != "" || s.User.LastName != "" {
		name := s.User.FirstName
		if s.User.LastName != "" {
			if name != "" {
				name += " "
			}
			name += s.User.LastName
		}
		return name
	}
	if s.User.UserName != "" {
		return s.User.UserName
	}
	return s.User.Email
}
