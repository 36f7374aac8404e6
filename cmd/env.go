package cmd

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/teemow/nextmeet/internal/config"
	"github.com/teemow/nextmeet/internal/google"
	"github.com/teemow/nextmeet/internal/instrumentation"
	"github.com/teemow/nextmeet/internal/logging"
	"github.com/teemow/nextmeet/internal/tokenstore"
)

const shutdownTimeout = 5 * time.Second

// env is the state every command needs, built once per invocation
type env struct {
	cfg      *config.Config
	logger   *slog.Logger
	provider *instrumentation.Provider
	store    *tokenstore.Store
}

func newEnv(ctx context.Context, opts *rootOptions, stderr io.Writer) (*env, error) {
	cfg, err := config.Load(config.Options{
		Dir:              opts.configDir,
		ClientSecretFile: opts.clientSecretFile,
		Port:             opts.port,
		TimeOnly:         opts.timeOnly,
		Join:             opts.join,
		LogLevel:         opts.logLevel,
	})
	if err != nil {
		return nil, err
	}

	logger := logging.New(stderr, cfg.LogLevel)
	slog.SetDefault(logger)

	instrConfig := instrumentation.DefaultConfig()
	instrConfig.ServiceVersion = version

	provider, err := instrumentation.NewProvider(ctx, instrConfig)
	if err != nil {
		return nil, &config.Error{Key: "instrumentation", Err: err}
	}

	logger.Debug("resolved configuration",
		slog.String("dir", cfg.Dir),
		slog.String("mode", cfg.Mode.String()),
		slog.Bool("instrumentation", provider.Enabled()))

	return &env{
		cfg:      cfg,
		logger:   logger,
		provider: provider,
		store:    tokenstore.New(cfg.Dir, config.ProgramName).WithLogger(logger),
	}, nil
}

// authenticator builds the Authenticator. The authorization URL is printed to prompt.
func (e *env) authenticator(prompt io.Writer) (*google.Authenticator, error) {
	oauthConfig, err := e.cfg.OAuth2(google.Scopes)
	if err != nil {
		return nil, &google.AuthError{Op: google.OpConfig, Err: err}
	}

	flow := google.NewLocalFlow(e.cfg.Port, prompt)
	flow.Logger = e.logger

	return google.NewAuthenticator(oauthConfig, e.store,
		google.WithFlow(flow),
		google.WithMetrics(e.provider.Metrics()),
		google.WithLogger(e.logger))
}

// close flushes telemetry. It runs on a fresh context so that an interrupted
// run still exports what it recorded.
func (e *env) close() {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.provider.Shutdown(ctx); err != nil {
		e.logger.Warn("instrumentation shutdown failed", logging.Err(err))
	}
}
