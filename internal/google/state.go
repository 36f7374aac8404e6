package google

import (
	"fmt"
	"time"

	"golang.org/x/oauth2"

	"github.com/teemow/nextmeet/internal/tokenstore"
)

// ExpiryLeeway is subtracted from a token's expiry so that a token about to
// expire mid-request is refreshed up front
const ExpiryLeeway = time.Minute

// State is the authentication state derived from the cached token
type State int

const (
	// NoToken means nothing is cached for the scope key
	NoToken State = iota
	// ValidToken means the cached token can be used as is
	ValidToken
	// ExpiredToken means the cached token needs a refresh
	ExpiredToken
)

func (s State) String() string {
	switch s {
	case NoToken:
		return "no_token"
	case ValidToken:
		return "valid"
	case ExpiredToken:
		return "expired"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Classify returns the state of tok at now. A token without an expiry never
// expires. A token holding only a refresh token is expired.
func Classify(tok *oauth2.Token, now time.Time) State {
	if tok == nil || (tok.AccessToken == "" && tok.RefreshToken == "") {
		return NoToken
	}
	if tok.AccessToken == "" {
		return ExpiredToken
	}
	if tok.Expiry.IsZero() || tok.Expiry.After(now.Add(ExpiryLeeway)) {
		return ValidToken
	}
	return ExpiredToken
}

// Inspect returns the state of the token cached in store for scopes. It
// neither refreshes nor contacts Google and needs no client credentials.
func Inspect(store *tokenstore.Store, scopes []string, now time.Time) (State, *tokenstore.Token, error) {
	stored, err := store.Get(tokenstore.ScopeKey(scopes))
	if err != nil {
		return NoToken, nil, err
	}
	return Classify(stored.OAuth2(), now), stored, nil
}
