// Package logging provides structured logging utilities for nextmeet.
//
// The report itself goes to stdout; everything logged through this package goes
// to stderr so the two never mix. The default level is warn, which keeps normal
// runs quiet.
//
// # Usage Patterns
//
// Build the process logger once at startup:
//
//	level, err := logging.ParseLevel("debug")
//	logger := logging.New(os.Stderr, level)
//	slog.SetDefault(logger)
//
// Attach consistent attributes:
//
//	logger := logging.WithOperation(slog.Default(), "calendar.list")
//	logger.Info("listed events", logging.Status(logging.StatusSuccess))
//
// # Security Considerations
//
// Tokens are never logged directly; use SanitizeToken.
package logging
