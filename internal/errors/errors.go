package errors

import (
	"errors"
	"fmt"
)

// Common error types for the console
var (
	// Session errors
	ErrLoginRequired  = errors.New("login required")
	ErrSessionExpired = errors.New("session expired")
	ErrRefreshFailed  = errors.New("token refresh failed")

	// API errors
	ErrNoResult  = errors.New("no result in response")
	ErrNotFound  = errors.New("not found")
	ErrForbidden = errors.New("forbidden")

	// Form errors
	ErrInvalidForm = errors.New("invalid form data")
)

// Wrapf wraps an error with context using fmt.Errorf
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
