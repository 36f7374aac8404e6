package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/teemow/nextmeet/internal/calendar"
	"github.com/teemow/nextmeet/internal/config"
	"github.com/teemow/nextmeet/internal/google"
	"github.com/teemow/nextmeet/internal/tokenstore"
)

func TestDescribeError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantMsg  string
	}{
		{"generic", errors.New("boom"), exitGeneric, "boom"},
		{"config", &config.Error{Key: "port", Err: errors.New("out of range")}, exitGeneric, "invalid configuration"},
		{"io", &tokenstore.IOError{Op: "read", Path: "/t.json", Err: errors.New("permission denied")}, exitTokenStore, "cannot read token file /t.json"},
		{"wrapped io", fmt.Errorf("storing: %w", &tokenstore.IOError{Op: "write", Path: "/t.json", Err: errors.New("disk full")}), exitTokenStore, "cannot write token file"},
		{"serialization", &tokenstore.SerializationError{Path: "/t.json", Err: errors.New("bad")}, exitTokenStore, "auth logout"},
		{"no client secret", &google.AuthError{Op: google.OpConfig, Err: &config.Error{Key: "client secret", Err: config.ErrNoClientSecret}}, exitAuth, "--client-secret-file"},
		{"bad client config", &google.AuthError{Op: google.OpConfig, Err: errors.New("no client id")}, exitAuth, "invalid OAuth client configuration"},
		{"auth cancelled", &google.AuthError{Op: google.OpFlow, Err: context.Canceled}, exitAuth, "authorization cancelled"},
		{"auth denied", &google.AuthError{Op: google.OpFlow, Err: google.ErrAccessDenied}, exitAuth, "denied"},
		{"auth failed", &google.AuthError{Op: google.OpFlow, Err: errors.New("exchange failed")}, exitAuth, "authorization failed: exchange failed"},
		{"refresh failed during remote call", &calendar.RemoteError{Kind: calendar.KindMissingToken, Err: &google.AuthError{Op: google.OpRefresh, Err: errors.New("invalid_grant")}}, exitRemote, "auth login"},
		{"remote missing token", &calendar.RemoteError{Kind: calendar.KindMissingToken, Status: 401}, exitRemote, "auth login"},
		{"remote rate limit", &calendar.RemoteError{Kind: calendar.KindRateOrSizeLimit, Status: 429}, exitRemote, "rate limit"},
		{"remote bad request", &calendar.RemoteError{Kind: calendar.KindBadRequest, Status: 400, Err: errors.New("invalid timeMin")}, exitRemote, "rejected the request: invalid timeMin"},
		{"remote decode", &calendar.RemoteError{Kind: calendar.KindDecode, Err: errors.New("unexpected EOF")}, exitRemote, "decode"},
		{"remote http", &calendar.RemoteError{Kind: calendar.KindHTTP, Err: errors.New("connection refused")}, exitRemote, "could not reach Google Calendar"},
		{"remote cancelled", &calendar.RemoteError{Kind: calendar.KindCancelled, Err: context.Canceled}, exitRemote, "cancelled"},
		{"remote other", &calendar.RemoteError{Kind: calendar.KindOther, Err: errors.New("weird")}, exitRemote, "request failed: weird"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg, code := describeError(tt.err)
			if code != tt.wantCode {
				t.Errorf("describeError() code = %d, want %d", code, tt.wantCode)
			}
			if !strings.Contains(msg, tt.wantMsg) {
				t.Errorf("describeError() msg = %q, want it to contain %q", msg, tt.wantMsg)
			}
		})
	}
}

func TestDescribeError_DistinctRemoteMessages(t *testing.T) {
	kinds := []calendar.Kind{
		calendar.KindOther,
		calendar.KindHTTP,
		calendar.KindMissingToken,
		calendar.KindRateOrSizeLimit,
		calendar.KindBadRequest,
		calendar.KindDecode,
		calendar.KindCancelled,
	}

	seen := map[string]calendar.Kind{}
	for _, k := range kinds {
		msg, _ := describeError(&calendar.RemoteError{Kind: k, Err: errors.New("x")})
		if prev, ok := seen[msg]; ok {
			t.Errorf("kinds %v and %v share the message %q", prev, k, msg)
		}
		seen[msg] = k
	}
}
