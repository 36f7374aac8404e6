// Package google obtains OAuth2 tokens for the Google Calendar API.
//
// The Authenticator reads the cached token from a tokenstore.Store, refreshes
// it when it has expired and falls back to an interactive browser flow when
// no usable token is left. Every token it hands out has been written to the
// store first.
package google
