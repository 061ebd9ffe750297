package roles

import (
	"fmt"
	"regexp"
	"strings"
)

// Role groups a set of scopes under an assignable name.
type Role struct {
	ID          string   `json:"id,omitempty"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Scopes      []string `json:"scopes,omitempty"`
}

var roleNamePattern = regexp.MustCompile(`^[A-Z][A-Z0-9_]{1,63}$`)

// Validate checks the role form synchronously. Role names follow the
// platform convention of upper-snake identifiers (ADMIN, VEHICLE_OWNER).
func (r *Role) Validate() error {
	name := strings.TrimSpace(r.Name)
	if name == "" {
		return fmt.Errorf("name is required")
	}
	if !roleNamePattern.MatchString(name) {
		return fmt.Errorf("name must be upper-case letters, digits and underscores")
	}
	if len(r.Scopes) == 0 {
		return fmt.Errorf("at least one scope is required")
	}
	return nil
}
