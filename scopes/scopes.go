package scopes

import (
	"fmt"
	"regexp"
	"strings"
)

// Scope is an individually-grantable permission. Predefined scopes ship
// with the platform and cannot be deleted; administrative scopes are
// only assignable by platform admins.
type Scope struct {
	Name           string `json:"name"`
	Description    string `json:"description,omitempty"`
	Administrative bool   `json:"administrative,omitempty"`
	Predefined     bool   `json:"predefined,omitempty"`
}

var scopeNamePattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9._]{1,127}$`)

// Validate checks the scope form synchronously.
func (s *Scope) Validate() error {
	name := strings.TrimSpace(s.Name)
	if name == "" {
		return fmt.Errorf("name is required")
	}
	if !scopeNamePattern.MatchString(name) {
		return fmt.Errorf("name must be letters, digits, '.' or '_'")
	}
	return nil
}
