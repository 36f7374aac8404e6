package google

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/oauth2"

	"github.com/teemow/nextmeet/internal/instrumentation"
	"github.com/teemow/nextmeet/internal/logging"
	"github.com/teemow/nextmeet/internal/tokenstore"
)

var errNoRefreshToken = errors.New("token has no refresh token")

// Authenticator hands out valid tokens for one OAuth client and scope set
type Authenticator struct {
	config   *oauth2.Config
	store    *tokenstore.Store
	scopeKey string
	flow     Flow
	metrics  *instrumentation.Metrics
	logger   *slog.Logger
	now      func() time.Time
}

// Option configures an Authenticator
type Option func(*Authenticator)

// WithFlow sets the interactive flow used when no usable token is cached
func WithFlow(f Flow) Option {
	return func(a *Authenticator) { a.flow = f }
}

// WithMetrics records auth and token store results in m
func WithMetrics(m *instrumentation.Metrics) Option {
	return func(a *Authenticator) { a.metrics = m }
}

// WithLogger sets the logger used by the authenticator
func WithLogger(l *slog.Logger) Option {
	return func(a *Authenticator) {
		if l != nil {
			a.logger = l
		}
	}
}

// NewAuthenticator creates an Authenticator for config backed by store.
// When config has no scopes, Scopes is used.
func NewAuthenticator(config *oauth2.Config, store *tokenstore.Store, opts ...Option) (*Authenticator, error) {
	if config == nil || config.ClientID == "" {
		return nil, &AuthError{Op: OpConfig, Err: errors.New("oauth client id is not configured")}
	}
	if store == nil {
		return nil, &AuthError{Op: OpConfig, Err: errors.New("token store cannot be nil")}
	}

	cfg := *config
	if len(cfg.Scopes) == 0 {
		cfg.Scopes = append([]string(nil), Scopes...)
	}

	a := &Authenticator{
		config:   &cfg,
		store:    store,
		scopeKey: tokenstore.ScopeKey(cfg.Scopes),
		flow:     NewLocalFlow(DefaultPort, nil),
		logger:   slog.Default(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	a.logger = logging.WithService(a.logger, "oauth").With(logging.ScopeKey(a.scopeKey))

	return a, nil
}

// ScopeKey returns the key the token is stored under
func (a *Authenticator) ScopeKey() string {
	return a.scopeKey
}

// TokenPath returns the file the token is stored in
func (a *Authenticator) TokenPath() string {
	return a.store.Path(a.scopeKey)
}

// Token returns a valid token. An expired token is refreshed; when that is not
// possible the cached token is dropped and the interactive flow runs. Token
// store failures are returned unwrapped.
func (a *Authenticator) Token(ctx context.Context) (*oauth2.Token, error) {
	ctx, span := instrumentation.StartSpan(ctx, "oauth.token")
	defer span.End()

	stored, err := a.load(ctx)
	if err != nil {
		instrumentation.SetSpanError(span, err)
		return nil, err
	}

	tok := stored.OAuth2()
	state := Classify(tok, a.now())
	span.SetAttributes(attribute.String(instrumentation.SpanAttrAuthState, state.String()))
	logger := logging.WithOperation(a.logger, "oauth.token").With(logging.State(state))

	switch state {
	case ValidToken:
		logger.Debug("using cached token")
		instrumentation.SetSpanSuccess(span)
		return tok, nil

	case ExpiredToken:
		refreshed, err := a.refresh(ctx, tok)
		if err == nil {
			if err := a.save(ctx, refreshed); err != nil {
				instrumentation.SetSpanError(span, err)
				return nil, err
			}
			logger.Debug("refreshed token")
			instrumentation.SetSpanSuccess(span)
			return refreshed, nil
		}

		logger.Info("token refresh failed, re-authenticating", logging.Err(err))
		// a transient failure keeps the refresh token; a successful login overwrites it
		if refreshRejected(err) {
			if err := a.remove(ctx); err != nil {
				instrumentation.SetSpanError(span, err)
				return nil, err
			}
		}
	}

	tok, err = a.Login(ctx)
	if err != nil {
		instrumentation.SetSpanError(span, err)
		return nil, err
	}
	instrumentation.SetSpanSuccess(span)
	return tok, nil
}

// Login runs the interactive flow regardless of the cached token and stores
// the result
func (a *Authenticator) Login(ctx context.Context) (*oauth2.Token, error) {
	logger := logging.WithOperation(a.logger, "oauth.login")

	tok, err := a.flow.Run(ctx, a.config)
	if err != nil {
		a.metrics.RecordOAuthAuth(ctx, instrumentation.OAuthResultFailure)
		logger.Warn("interactive authorization failed", logging.Err(err))
		return nil, &AuthError{Op: OpFlow, Err: err}
	}
	a.metrics.RecordOAuthAuth(ctx, instrumentation.OAuthResultSuccess)

	if err := a.save(ctx, tok); err != nil {
		return nil, err
	}
	logger.Info("stored new token", slog.String("path", a.TokenPath()))
	return tok, nil
}

// HTTPClient returns a client that authorizes requests with a valid token.
// Tokens refreshed while the client is in use are written to the store.
func (a *Authenticator) HTTPClient(ctx context.Context) (*http.Client, error) {
	tok, err := a.Token(ctx)
	if err != nil {
		return nil, err
	}

	src := &persistingSource{
		auth: a,
		ctx:  ctx,
		base: a.config.TokenSource(ctx, tok),
		last: tok.AccessToken,
	}
	return oauth2.NewClient(ctx, oauth2.ReuseTokenSource(tok, src)), nil
}

func (a *Authenticator) refresh(ctx context.Context, old *oauth2.Token) (*oauth2.Token, error) {
	if old.RefreshToken == "" {
		a.metrics.RecordOAuthTokenRefresh(ctx, instrumentation.OAuthResultExpired)
		return nil, &AuthError{Op: OpRefresh, Err: errNoRefreshToken}
	}

	// an empty access token forces the source to hit the token endpoint
	tok, err := a.config.TokenSource(ctx, &oauth2.Token{RefreshToken: old.RefreshToken}).Token()
	if err != nil {
		a.metrics.RecordOAuthTokenRefresh(ctx, instrumentation.OAuthResultFailure)
		return nil, &AuthError{Op: OpRefresh, Err: err}
	}
	a.metrics.RecordOAuthTokenRefresh(ctx, instrumentation.OAuthResultSuccess)

	return keepRefreshToken(tok, old), nil
}

// refreshRejected reports whether err means the refresh token can never work
// again, as opposed to a network or server failure
func refreshRejected(err error) bool {
	if errors.Is(err, errNoRefreshToken) {
		return true
	}
	var retrieveErr *oauth2.RetrieveError
	return errors.As(err, &retrieveErr) && retrieveErr.ErrorCode == "invalid_grant"
}

// keepRefreshToken carries the previous refresh token over when the token
// endpoint did not issue a new one
func keepRefreshToken(tok, old *oauth2.Token) *oauth2.Token {
	if tok.RefreshToken != "" || old == nil {
		return tok
	}
	cp := *tok
	cp.RefreshToken = old.RefreshToken
	return &cp
}

func (a *Authenticator) load(ctx context.Context) (*tokenstore.Token, error) {
	stored, err := a.store.Get(a.scopeKey)
	a.recordStore(ctx, instrumentation.OperationRead, err)
	return stored, err
}

func (a *Authenticator) save(ctx context.Context, tok *oauth2.Token) error {
	err := a.store.Set(a.scopeKey, tokenstore.FromOAuth2(tok, a.config.Scopes))
	a.recordStore(ctx, instrumentation.OperationWrite, err)
	return err
}

func (a *Authenticator) remove(ctx context.Context) error {
	err := a.store.Delete(a.scopeKey)
	a.recordStore(ctx, instrumentation.OperationDelete, err)
	return err
}

func (a *Authenticator) recordStore(ctx context.Context, op string, err error) {
	status := instrumentation.StatusSuccess
	if err != nil {
		status = instrumentation.StatusError
	}
	a.metrics.RecordTokenStoreOperation(ctx, op, status)
}

// persistingSource writes every newly minted token through to the store
type persistingSource struct {
	auth *Authenticator
	ctx  context.Context
	base oauth2.TokenSource

	mu   sync.Mutex
	last string
}

func (s *persistingSource) Token() (*oauth2.Token, error) {
	tok, err := s.base.Token()
	if err != nil {
		s.auth.metrics.RecordOAuthTokenRefresh(s.ctx, instrumentation.OAuthResultFailure)
		return nil, &AuthError{Op: OpRefresh, Err: err}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if tok.AccessToken == s.last {
		return tok, nil
	}

	s.auth.metrics.RecordOAuthTokenRefresh(s.ctx, instrumentation.OAuthResultSuccess)
	if err := s.auth.save(s.ctx, tok); err != nil {
		return nil, fmt.Errorf("failed to store refreshed token: %w", err)
	}
	s.last = tok.AccessToken
	return tok, nil
}
