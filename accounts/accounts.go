package accounts

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/padmaja-j12/uidam-portal-padmaja-sub002/jsonpatch"
)

// Account is an organizational unit of the platform. Users hold roles
// per account; clients are registered against one.
type Account struct {
	ID       string   `json:"id,omitempty"`
	Name     string   `json:"accountName,omitempty"`
	ParentID string   `json:"parentId,omitempty"`
	Roles    []string `json:"roles,omitempty"` // roles assignable within this account
	Status   string   `json:"status,omitempty"`
}

var accountNamePattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9 ._-]{0,253}$`)

// Validate checks the account form synchronously.
func (a *Account) Validate() error {
	name := strings.TrimSpace(a.Name)
	if name == "" {
		return fmt.Errorf("accountName is required")
	}
	if !accountNamePattern.MatchString(name) {
		return fmt.Errorf("accountName contains invalid characters")
	}
	return nil
}

// RoleMapping is a user's role assignment within one account. It is the
// in-progress edit of an assignment modal: created when the modal opens,
// mutated per selection, diffed on submit.
type RoleMapping struct {
	UserID    string   `json:"userId"`
	AccountID string   `json:"accountId"`
	Roles     []string `json:"roles,omitempty"`
	Selected  bool     `json:"-"` // whether the account is still selected in the edit
}

// MappingPatch computes the JSON-Patch operations turning the original
// role assignment into the edited one. Role-set differences are emitted
// as individual add/remove operations per role, never a single replace.
// A deselected account emits a remove for every previously-assigned
// role, in the original order.
func MappingPatch(original, edited *RoleMapping) []jsonpatch.Operation {
	var origRoles, editRoles []string
	if original != nil {
		origRoles = original.Roles
	}
	if edited != nil && edited.Selected {
		editRoles = edited.Roles
	}
	return jsonpatch.RoleChanges(origRoles, editRoles, "/roles")
}
