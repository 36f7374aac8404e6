package config

import (
	"fmt"
	"os"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// OAuth2 builds the OAuth client configuration for scopes. A client secret
// file takes precedence over client credentials in the environment.
func (c *Config) OAuth2(scopes []string) (*oauth2.Config, error) {
	if c.ClientSecretFile != "" {
		return LoadSecretFile(c.ClientSecretFile, scopes)
	}
	return SecretFromEnv(scopes)
}

// LoadSecretFile parses a client secret JSON file as downloaded from the
// Google Cloud console. Both "installed" and "web" clients are accepted.
func LoadSecretFile(path string, scopes []string) (*oauth2.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &Error{Key: "client secret file", Err: err}
	}

	cfg, err := google.ConfigFromJSON(data, scopes...)
	if err != nil {
		return nil, &Error{Key: "client secret file", Err: fmt.Errorf("%s: %w", path, err)}
	}
	if cfg.ClientID == "" {
		return nil, &Error{Key: "client secret file", Err: fmt.Errorf("%s has no client_id", path)}
	}
	return cfg, nil
}

// SecretFromEnv builds the client configuration from NEXTMEET_CLIENT_ID and
// NEXTMEET_CLIENT_SECRET. The Google endpoints can be overridden with
// NEXTMEET_AUTH_URL and NEXTMEET_TOKEN_URL.
func SecretFromEnv(scopes []string) (*oauth2.Config, error) {
	id := os.Getenv(EnvClientID)
	secret := os.Getenv(EnvClientSecret)
	if id == "" || secret == "" {
		return nil, &Error{Key: "client secret", Err: ErrNoClientSecret}
	}

	endpoint := google.Endpoint
	if v := os.Getenv(EnvAuthURL); v != "" {
		endpoint.AuthURL = v
	}
	if v := os.Getenv(EnvTokenURL); v != "" {
		endpoint.TokenURL = v
	}

	return &oauth2.Config{
		ClientID:     id,
		ClientSecret: secret,
		Endpoint:     endpoint,
		Scopes:       append([]string(nil), scopes...),
	}, nil
}
