package tokenstore

import "fmt"

// IOError reports a filesystem failure while accessing a token file
type IOError struct {
	Op   string // "read", "write", "delete", "mkdir"
	Path string
	Err  error
}

// Error implements the error interface
func (e *IOError) Error() string {
	return fmt.Sprintf("token file %s %s: %v", e.Op, e.Path, e.Err)
}

// Unwrap returns the underlying filesystem error
func (e *IOError) Unwrap() error {
	return e.Err
}

// SerializationError reports a token file that could not be decoded, or a token
// that could not be encoded
type SerializationError struct {
	Path string
	Err  error
}

// Error implements the error interface
func (e *SerializationError) Error() string {
	return fmt.Sprintf("token file %s is not valid JSON: %v", e.Path, e.Err)
}

// Unwrap returns the underlying encoding error
func (e *SerializationError) Unwrap() error {
	return e.Err
}
