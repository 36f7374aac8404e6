package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/teemow/nextmeet/internal/calendar"
	"github.com/teemow/nextmeet/internal/google"
	"github.com/teemow/nextmeet/internal/instrumentation"
	"github.com/teemow/nextmeet/internal/meeting"
)

// version will be set by main
var version = "dev"

// SetVersion sets the version reported by the version command
func SetVersion(v string) {
	version = v
}

// rootOptions holds the flags shared by all commands
type rootOptions struct {
	configDir        string
	clientSecretFile string
	logLevel         string
	port             int
	timeOnly         bool
	join             bool
}

// Execute is the main entry point for the CLI application
func Execute() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	cancel()

	if err != nil {
		msg, code := describeError(err)
		_, _ = fmt.Fprintf(os.Stderr, "Error: %s\n", msg)
		os.Exit(code)
	}
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "nextmeet",
		Short: "Shows how long until your next Google Calendar meeting",
		Long: `nextmeet looks up the upcoming events on your primary Google Calendar and
prints the next meeting together with the time until it starts.

The first run opens a browser to authorize read-only calendar access. The
token is cached in the config directory and refreshed automatically.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(cmd, opts)
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&opts.configDir, "config-dir", "", "Directory holding the token and .env file (default $NEXTMEET_CONFIG_DIR or the XDG config dir)")
	pf.StringVar(&opts.clientSecretFile, "client-secret-file", "", "Google OAuth client secret JSON file. Can also use NEXTMEET_CLIENT_SECRET_FILE env var.")
	pf.StringVar(&opts.logLevel, "log-level", "warn", "Log level: debug, info, warn or error")
	pf.IntVar(&opts.port, "port", google.DefaultPort, "Local port for the OAuth redirect")

	cmd.Flags().BoolVarP(&opts.timeOnly, "time", "t", false, "Only print the time until the meeting")
	cmd.Flags().BoolVarP(&opts.join, "join", "j", false, "Also print the link to join the meeting")

	cmd.AddCommand(newAuthCmd(opts))
	cmd.AddCommand(newVersionCmd())

	return cmd
}

func runReport(cmd *cobra.Command, opts *rootOptions) error {
	ctx := cmd.Context()

	e, err := newEnv(ctx, opts, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer e.close()

	auth, err := e.authenticator(cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	httpClient, err := auth.HTTPClient(ctx)
	if err != nil {
		return err
	}

	client, err := calendar.NewClient(ctx, httpClient,
		calendar.WithMetrics(e.provider.Metrics()),
		calendar.WithLogger(e.logger))
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	summarizer := meeting.NewSummarizer(e.cfg.Mode, stylesFor(out))
	return report(ctx, client, summarizer, time.Now(), out, e.provider.Metrics())
}

// eventLister is satisfied by *calendar.Client
type eventLister interface {
	ListUpcoming(ctx context.Context, now time.Time) ([]calendar.Event, error)
}

// report fetches the upcoming events and writes the summary to w
func report(ctx context.Context, lister eventLister, s *meeting.Summarizer, now time.Time, w io.Writer, metrics *instrumentation.Metrics) error {
	events, err := lister.ListUpcoming(ctx, now)
	if err != nil {
		return err
	}

	r := s.Summarize(events, now)
	result := instrumentation.LookupNone
	if r.Found() {
		result = instrumentation.LookupFound
	}
	metrics.RecordMeetingLookup(ctx, result)

	if _, err := r.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}
