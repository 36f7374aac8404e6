package google

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os/exec"
	"runtime"
	"strconv"
	"time"

	"github.com/google/uuid"
	"golang.org/x/oauth2"

	"github.com/teemow/nextmeet/internal/logging"
)

// DefaultPort is the local port the redirect listener binds to
const DefaultPort = 2383

const shutdownTimeout = 5 * time.Second

// Flow obtains a fresh token from the user
type Flow interface {
	Run(ctx context.Context, config *oauth2.Config) (*oauth2.Token, error)
}

// LocalFlow runs the installed-app authorization code flow. It serves the
// redirect on 127.0.0.1 and waits until the browser comes back or ctx is done.
type LocalFlow struct {
	// Port to listen on. Zero picks a free port.
	Port int
	// Prompt receives the authorization URL
	Prompt io.Writer
	// OpenBrowser is called with the authorization URL. Failures are ignored
	// since the URL is also printed.
	OpenBrowser func(url string) error
	Logger      *slog.Logger
}

// NewLocalFlow returns a LocalFlow on port that prints to prompt and opens
// the system browser
func NewLocalFlow(port int, prompt io.Writer) *LocalFlow {
	return &LocalFlow{
		Port:        port,
		Prompt:      prompt,
		OpenBrowser: openBrowser,
		Logger:      slog.Default(),
	}
}

type callbackResult struct {
	code string
	err  error
}

// Run implements Flow
func (f *LocalFlow) Run(ctx context.Context, config *oauth2.Config) (*oauth2.Token, error) {
	logger := logging.WithOperation(f.logger(), "oauth.local_flow")

	ln, err := net.Listen("tcp", net.JoinHostPort("127.0.0.1", strconv.Itoa(f.Port)))
	if err != nil {
		return nil, fmt.Errorf("failed to listen for the oauth redirect: %w", err)
	}
	port := ln.Addr().(*net.TCPAddr).Port

	cfg := *config
	cfg.RedirectURL = fmt.Sprintf("http://127.0.0.1:%d/", port)
	state := uuid.NewString()

	results := make(chan callbackResult, 1)
	srv := &http.Server{Handler: callbackHandler(state, results)}
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			deliver(results, callbackResult{err: err})
		}
	}()
	defer func() {
		// let the browser receive the final page before the listener goes away
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	authURL := cfg.AuthCodeURL(state, oauth2.AccessTypeOffline)
	if f.Prompt != nil {
		_, _ = fmt.Fprintf(f.Prompt, "Opening browser for Google authorization...\n\nIf the browser doesn't open, visit this URL:\n%s\n\n", authURL)
	}
	if f.OpenBrowser != nil {
		if err := f.OpenBrowser(authURL); err != nil {
			logger.Debug("could not open browser", logging.Err(err))
		}
	}

	logger.Debug("waiting for oauth redirect", slog.Int("port", port))

	var res callbackResult
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res = <-results:
	}
	if res.err != nil {
		return nil, res.err
	}

	tok, err := cfg.Exchange(ctx, res.code)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange authorization code: %w", err)
	}
	logger.Debug("exchanged authorization code", "access_token", logging.SanitizeToken(tok.AccessToken))
	return tok, nil
}

func (f *LocalFlow) logger() *slog.Logger {
	if f.Logger == nil {
		return slog.Default()
	}
	return f.Logger
}

// callbackHandler accepts the first redirect carrying the expected state.
// Requests with a different state are rejected and do not end the flow.
func callbackHandler(state string, results chan<- callbackResult) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("state") != state {
			http.Error(w, ErrStateMismatch.Error(), http.StatusBadRequest)
			return
		}

		if reason := q.Get("error"); reason != "" {
			deliver(results, callbackResult{err: fmt.Errorf("%w: %s", ErrAccessDenied, reason)})
			http.Error(w, "Authorization was denied. You can close this window.", http.StatusForbidden)
			return
		}

		code := q.Get("code")
		if code == "" {
			http.Error(w, "no authorization code received", http.StatusBadRequest)
			return
		}

		deliver(results, callbackResult{code: code})
		_, _ = io.WriteString(w, "Authorization successful! You can close this window.\n")
	})
}

// deliver hands res to the waiting flow unless a result is already queued
func deliver(results chan<- callbackResult, res callbackResult) {
	select {
	case results <- res:
	default:
	}
}

// openBrowser attempts to open url in the default browser
func openBrowser(url string) error {
	var cmd string
	var args []string

	switch runtime.GOOS {
	case "darwin":
		cmd = "open"
		args = []string{url}
	case "windows":
		cmd = "cmd"
		args = []string{"/c", "start", url}
	default:
		cmd = "xdg-open"
		args = []string{url}
	}

	return exec.Command(cmd, args...).Start()
}
