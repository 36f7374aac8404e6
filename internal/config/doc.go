// Package config resolves nextmeet's runtime settings: the config directory,
// the OAuth client credentials and the output mode.
//
// Values come from command line flags, environment variables and an optional
// .env file in the config directory, in that order of precedence.
package config
