package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/teemow/nextmeet/internal/calendar"
	"github.com/teemow/nextmeet/internal/config"
	"github.com/teemow/nextmeet/internal/google"
	"github.com/teemow/nextmeet/internal/tokenstore"
)

// Process exit codes
const (
	exitGeneric    = 1
	exitAuth       = 2
	exitTokenStore = 3
	exitRemote     = 4
)

// describeError maps err to the message printed on stderr and the exit code
func describeError(err error) (string, int) {
	var (
		ioErr     *tokenstore.IOError
		serialErr *tokenstore.SerializationError
		authErr   *google.AuthError
		remoteErr *calendar.RemoteError
		cfgErr    *config.Error
	)

	switch {
	case errors.As(err, &ioErr):
		return fmt.Sprintf("cannot %s token file %s: %v", ioErr.Op, ioErr.Path, ioErr.Err), exitTokenStore

	case errors.As(err, &serialErr):
		return fmt.Sprintf("token file %s is corrupt (%v); run 'nextmeet auth logout' and try again", serialErr.Path, serialErr.Err), exitTokenStore

	// a refresh failing inside a calendar call wraps an AuthError in a RemoteError
	case errors.As(err, &remoteErr):
		return describeRemoteError(remoteErr), exitRemote

	case errors.As(err, &authErr):
		return describeAuthError(authErr), exitAuth

	case errors.As(err, &cfgErr):
		return fmt.Sprintf("invalid configuration: %v", cfgErr), exitGeneric

	default:
		return err.Error(), exitGeneric
	}
}

func describeAuthError(err *google.AuthError) string {
	switch {
	case errors.Is(err, config.ErrNoClientSecret):
		return "no Google OAuth client configured; pass --client-secret-file or set NEXTMEET_CLIENT_ID and NEXTMEET_CLIENT_SECRET"
	case errors.Is(err, context.Canceled):
		return "authorization cancelled"
	case errors.Is(err, google.ErrAccessDenied):
		return "authorization was denied in the browser"
	case err.Op == google.OpConfig:
		return fmt.Sprintf("invalid OAuth client configuration: %v", err.Err)
	default:
		return fmt.Sprintf("authorization failed: %v", err.Err)
	}
}

func describeRemoteError(err *calendar.RemoteError) string {
	switch err.Kind {
	case calendar.KindMissingToken:
		return "Google rejected the stored authorization; run 'nextmeet auth login'"
	case calendar.KindRateOrSizeLimit:
		return "Google Calendar rate limit or quota exceeded; try again later"
	case calendar.KindBadRequest:
		return fmt.Sprintf("Google Calendar rejected the request: %v", err.Err)
	case calendar.KindDecode:
		return fmt.Sprintf("could not decode the Google Calendar response: %v", err.Err)
	case calendar.KindHTTP:
		return fmt.Sprintf("could not reach Google Calendar: %v", err.Err)
	case calendar.KindCancelled:
		return "request to Google Calendar cancelled"
	default:
		return fmt.Sprintf("Google Calendar request failed: %v", err.Err)
	}
}
