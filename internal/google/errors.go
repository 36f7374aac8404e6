package google

import (
	"errors"
	"fmt"
)

// Operations reported in AuthError.Op
const (
	OpConfig  = "config"
	OpFlow    = "flow"
	OpRefresh = "refresh"
)

// ErrAccessDenied is returned when the user declines the consent screen
var ErrAccessDenied = errors.New("authorization was denied")

// ErrStateMismatch is returned when the redirect carries an unknown state value
var ErrStateMismatch = errors.New("oauth state mismatch")

// AuthError reports a failure to obtain a token
type AuthError struct {
	Op  string
	Err error
}

// Error implements the error interface
func (e *AuthError) Error() string {
	return fmt.Sprintf("google auth %s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error
func (e *AuthError) Unwrap() error {
	return e.Err
}
