package cmd

import (
	"bytes"
	"context"
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"

	"github.com/teemow/nextmeet/internal/calendar"
	"github.com/teemow/nextmeet/internal/config"
	"github.com/teemow/nextmeet/internal/google"
	"github.com/teemow/nextmeet/internal/meeting"
	"github.com/teemow/nextmeet/internal/tokenstore"
)

type fakeLister struct {
	events []calendar.Event
	err    error
	gotNow time.Time
}

func (f *fakeLister) ListUpcoming(ctx context.Context, now time.Time) ([]calendar.Event, error) {
	f.gotNow = now
	return f.events, f.err
}

func strPtr(s string) *string { return &s }

func TestReport(t *testing.T) {
	now := time.Date(2026, 10, 19, 10, 0, 0, 0, time.UTC)
	start := now.Add(2*time.Hour + 15*time.Minute)
	lister := &fakeLister{events: []calendar.Event{
		{Summary: strPtr("Design review"), Start: &start, Location: strPtr("Room 1"), JoinLink: strPtr("https://meet.google.com/xyz")},
	}}

	var out bytes.Buffer
	s := meeting.NewSummarizer(meeting.ModeFullWithJoin, meeting.Styles{})
	require.NoError(t, report(context.Background(), lister, s, now, &out, nil))

	assert.Equal(t, now, lister.gotNow)
	assert.Equal(t, "Next Meeting Details:\nDesign review\nStarts in 2h 15m in location Room 1\nJoin: https://meet.google.com/xyz\n", out.String())
}

func TestReport_NoMeetings(t *testing.T) {
	var out bytes.Buffer
	s := meeting.NewSummarizer(meeting.ModeTimeOnly, meeting.Styles{})
	require.NoError(t, report(context.Background(), &fakeLister{}, s, time.Now(), &out, nil))
	assert.Equal(t, meeting.NoMeetingsMessage+"\n", out.String())
}

func TestReport_RemoteError(t *testing.T) {
	want := &calendar.RemoteError{Kind: calendar.KindHTTP, Err: errors.New("down")}

	var out bytes.Buffer
	s := meeting.NewSummarizer(meeting.ModeFull, meeting.Styles{})
	err := report(context.Background(), &fakeLister{err: want}, s, time.Now(), &out, nil)

	assert.Same(t, want, err)
	assert.Empty(t, out.String())
}

// isolate points the config dir at a temp dir and clears client credentials
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv(config.EnvConfigDir, dir)
	t.Setenv(config.EnvClientSecretFile, "")
	t.Setenv(config.EnvClientID, "")
	t.Setenv(config.EnvClientSecret, "")
	return dir
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func TestRootCmd_MissingClientSecret(t *testing.T) {
	isolate(t)

	_, _, err := execute(t, "-t", "-j")
	require.Error(t, err)

	var authErr *google.AuthError
	require.True(t, errors.As(err, &authErr))
	_, code := describeError(err)
	assert.Equal(t, exitAuth, code)
}

func TestRootCmd_InvalidLogLevel(t *testing.T) {
	isolate(t)

	_, _, err := execute(t, "--log-level", "chatty")
	var cfgErr *config.Error
	require.True(t, errors.As(err, &cfgErr))
	_, code := describeError(err)
	assert.Equal(t, exitGeneric, code)
}

func TestRootCmd_RejectsArgs(t *testing.T) {
	isolate(t)

	_, _, err := execute(t, "unexpected")
	require.Error(t, err)
}

func TestVersionCmd(t *testing.T) {
	orig := version
	SetVersion("1.2.3")
	t.Cleanup(func() { SetVersion(orig) })

	out, _, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "nextmeet version 1.2.3\n", out)
}

func TestAuthStatus(t *testing.T) {
	dir := isolate(t)

	out, _, err := execute(t, "auth", "status")
	require.NoError(t, err)
	assert.Contains(t, out, "State:      no_token")
	assert.Contains(t, out, dir)
	assert.NotContains(t, out, "Expires:")

	store := tokenstore.New(dir, config.ProgramName)
	tok := &oauth2.Token{AccessToken: "secret-access", RefreshToken: "secret-refresh", Expiry: time.Now().Add(time.Hour)}
	require.NoError(t, store.Set(tokenstore.ScopeKey(google.Scopes), tokenstore.FromOAuth2(tok, google.Scopes)))

	out, _, err = execute(t, "auth", "status")
	require.NoError(t, err)
	assert.Contains(t, out, "State:      valid")
	assert.Contains(t, out, "Refresh:    true")
	assert.False(t, strings.Contains(out, "secret-access"), "status must not print the token")
	assert.False(t, strings.Contains(out, "secret-refresh"), "status must not print the token")
}

func TestAuthStatus_CorruptToken(t *testing.T) {
	dir := isolate(t)
	store := tokenstore.New(dir, config.ProgramName)
	require.NoError(t, os.WriteFile(store.Path(tokenstore.ScopeKey(google.Scopes)), []byte("{"), 0600))

	_, _, err := execute(t, "auth", "status")
	_, code := describeError(err)
	assert.Equal(t, exitTokenStore, code)
}

func TestAuthLogout(t *testing.T) {
	dir := isolate(t)
	store := tokenstore.New(dir, config.ProgramName)
	key := tokenstore.ScopeKey(google.Scopes)
	require.NoError(t, store.Set(key, &tokenstore.Token{AccessToken: "a"}))

	out, _, err := execute(t, "auth", "logout")
	require.NoError(t, err)
	assert.Contains(t, out, "Removed")

	got, err := store.Get(key)
	require.NoError(t, err)
	assert.Nil(t, got)

	// logging out twice is fine
	_, _, err = execute(t, "auth", "logout")
	require.NoError(t, err)
}

func TestStylesFor_NonTerminal(t *testing.T) {
	var buf bytes.Buffer
	assert.False(t, stylesFor(&buf).Enabled)

	t.Setenv("NO_COLOR", "1")
	assert.False(t, stylesFor(os.Stdout).Enabled)
}
