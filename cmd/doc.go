// Package cmd implements the command-line interface for nextmeet.
//
// This package provides the following commands:
//   - nextmeet: print the next meeting on the primary Google calendar
//   - auth login: run the browser authorization and store the token
//   - auth status: show where the token is stored and whether it is still valid
//   - auth logout: remove the stored token
//   - version: display version information
package cmd
