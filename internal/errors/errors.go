package errors

import (
	"errors"
	"fmt"
)

// Common error types for the RecycleMate client
var (
	// Authentication errors
	ErrInvalidCredentials     = errors.New("invalid credentials")
	ErrInvalidLoginResponse   = errors.New("invalid login response")
	ErrAdminSignupUnsupported = errors.New("admin accounts cannot be self-registered")
	ErrWeakPassword           = errors.New("password does not meet strength requirements")
	ErrInvalidSignupForm      = errors.New("invalid signup form")

	// Session errors
	ErrSessionNotFound = errors.New("session not found")
	ErrInvalidRole     = errors.New("invalid role")

	// Gateway errors
	ErrNotConfigured    = errors.New("gateway not configured")
	ErrInvalidBaseURL   = errors.New("invalid base URL")
	ErrInvalidMethod    = errors.New("unsupported HTTP method")
	ErrInvalidPath      = errors.New("invalid request path")
	ErrCredentialInPath = errors.New("request path contains the session credential")

	// Pickup errors
	ErrInvalidStatus     = errors.New("invalid pickup status")
	ErrInvalidTransition = errors.New("invalid pickup status transition")
	ErrInvalidPickup     = errors.New("invalid pickup request")

	// General errors
	ErrNotFound    = errors.New("not found")
	ErrInternal    = errors.New("internal error")
	ErrUnsupported = errors.New("unsupported operation")
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
