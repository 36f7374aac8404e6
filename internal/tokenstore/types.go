package tokenstore

import (
	"fmt"
	"hash/fnv"
	"sort"
	"time"

	"golang.org/x/oauth2"
)

// Token is the on-disk representation of an OAuth2 token and the scopes it was granted for
type Token struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token,omitempty"`
	TokenType    string    `json:"token_type,omitempty"`
	Expiry       time.Time `json:"expiry,omitempty"`
	Scopes       []string  `json:"scopes,omitempty"`
}

// FromOAuth2 converts an oauth2.Token into a storable Token
func FromOAuth2(t *oauth2.Token, scopes []string) *Token {
	if t == nil {
		return nil
	}
	return &Token{
		AccessToken:  t.AccessToken,
		RefreshToken: t.RefreshToken,
		TokenType:    t.TokenType,
		Expiry:       t.Expiry,
		Scopes:       append([]string(nil), scopes...),
	}
}

// OAuth2 converts the stored token back into an oauth2.Token
func (t *Token) OAuth2() *oauth2.Token {
	if t == nil {
		return nil
	}
	return &oauth2.Token{
		AccessToken:  t.AccessToken,
		RefreshToken: t.RefreshToken,
		TokenType:    t.TokenType,
		Expiry:       t.Expiry,
	}
}

// ScopeKey returns a stable identifier for a set of OAuth scopes.
// Duplicates and ordering do not change the key.
func ScopeKey(scopes []string) string {
	uniq := make(map[string]struct{}, len(scopes))
	sorted := make([]string, 0, len(scopes))
	for _, s := range scopes {
		if _, ok := uniq[s]; ok {
			continue
		}
		uniq[s] = struct{}{}
		sorted = append(sorted, s)
	}
	sort.Strings(sorted)

	h := fnv.New64a()
	for _, s := range sorted {
		_, _ = h.Write([]byte(s))
		_, _ = h.Write([]byte{0})
	}
	return fmt.Sprintf("%016x", h.Sum64())
}
