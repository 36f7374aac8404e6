package config

import (
	"errors"
	"fmt"
)

// ErrNoClientSecret is returned when neither a client secret file nor client
// credentials in the environment are configured
var ErrNoClientSecret = errors.New("no OAuth client configured: set " + EnvClientSecretFile + " or " + EnvClientID + " and " + EnvClientSecret)

// Error reports an invalid or missing setting
type Error struct {
	Key string
	Err error
}

// Error implements the error interface
func (e *Error) Error() string {
	return fmt.Sprintf("config %s: %v", e.Key, e.Err)
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Err
}
