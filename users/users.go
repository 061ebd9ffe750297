package users

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
)

// Status values the platform reports for a user account.
type Status string

const (
	StatusPending     Status = "PENDING"
	StatusActive      Status = "ACTIVE"
	StatusDeactivated Status = "DEACTIVATED"
	StatusBlocked     Status = "BLOCKED"
)

// User is a platform user as managed from the console.
type User struct {
	ID        string   `json:"id,omitempty"`        // Unique identifier for the user
	UserName  string   `json:"userName,omitempty"`  // Unique username
	Email     string   `json:"email,omitempty"`     // User's email address
	Password  string   `json:"password,omitempty"`  // Only populated on create; never returned by the platform
	FirstName string   `json:"firstName,omitempty"` // First name of the user
	LastName  string   `json:"lastName,omitempty"`  // Last name of the user
	Roles     []string `json:"roles,omitempty"`     // Role names assigned to the user
	Accounts  []string `json:"accounts,omitempty"`  // Account names the user belongs to
	Status    Status   `json:"status,omitempty"`
}

var (
	emailPattern    = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	userNamePattern = regexp.MustCompile(`^[A-Za-z0-9._-]{3,254}$`)
)

// Validate checks the in-progress edit synchronously, before anything
// reaches the network layer. forCreate additionally requires a password.
func (u *User) Validate(forCreate bool) error {
	userName := strings.TrimSpace(u.UserName)
	if userName == "" {
		return fmt.Errorf("userName is required")
	}
	if !userNamePattern.MatchString(userName) {
		return fmt.Errorf("userName may only contain letters, digits, '.', '_' and '-'")
	}

	email := strings.TrimSpace(u.Email)
	if email == "" {
		return fmt.Errorf("email is required")
	}
	if !emailPattern.MatchString(email) {
		return fmt.Errorf("invalid email format")
	}

	if forCreate {
		if err := ValidatePasswordStrength(u.Password); err != nil {
			return err
		}
	}

	if len(u.Roles) == 0 {
		return fmt.Errorf("at least one role is required")
	}
	return nil
}

// ValidatePasswordStrength checks if a password meets the platform's
// requirements:
// - At least 8 characters long
// - Contains uppercase and lowercase letters
// - Contains at least one number
func ValidatePasswordStrength(password string) error {
	if len(password) < 8 {
		return fmt.Errorf("password must be at least 8 characters long")
	}

	var (
		hasUpper  bool
		hasLower  bool
		hasNumber bool
	)

	for _, char := range password {
		if unicode.IsUpper(char) {
			hasUpper = true
		} else if unicode.IsLower(char) {
			hasLower = true
		} else if unicode.IsDigit(char) {
			hasNumber = true
		}
	}

	if !hasUpper {
		return fmt.Errorf("password must contain at least one uppercase letter")
	}
	if !hasLower {
		return fmt.Errorf("password must contain at least one lowercase letter")
	}
	if !hasNumber {
		return fmt.Errorf("password must contain at least one number")
	}

	return nil
}

// HasRole reports whether the user carries the given role.
func (u *User) HasRole(role string) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// FilterCriteria is the body of a filtered user search. Empty fields
// are omitted so the platform treats them as unconstrained.
type FilterCriteria struct {
	UserNames []string `json:"userNames,omitempty"`
	Emails    []string `json:"emails,omitempty"`
	Roles     []string `json:"roles,omitempty"`
	Accounts  []string `json:"accounts,omitempty"`
	Status    []Status `json:"status,omitempty"`
}
