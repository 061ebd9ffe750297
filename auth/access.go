package auth

import (
	"github.com/pkg/errors"

	consoleerrors "github.com/padmaja-j12/uidam-portal-padmaja-sub002/internal/errors"
	"github.com/padmaja-j12/uidam-portal-padmaja-sub002/sessions"
)

// Console role names as issued in access-token claims.
const (
	RoleSuperAdmin = "SUPER_ADMIN" // manages accounts, clients, scopes platform-wide
	RoleAdmin      = "ADMIN"       // manages users and roles within an account
	RoleUser       = "USER"        // read-only console access
)

// Require gates a command on the session's roles, mirroring the
// console's per-route access control: no session means login is
// required, and a session lacking every listed role is forbidden.
// With no roles listed, any authenticated session passes.
func Require(session *sessions.Session, roles ...string) error {
	if session == nil || session.AccessToken == "" {
		return consoleerrors.ErrLoginRequired
	}
	if len(roles) == 0 {
		return nil
	}
	for _, role := range roles {
		if session.HasRole(role) {
			return nil
		}
	}
	return errors.Wrapf(consoleerrors.ErrForbidden, "requires one of %v", roles)
}
