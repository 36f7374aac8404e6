package calendar

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"

	"golang.org/x/oauth2"
	"google.golang.org/api/googleapi"
)

// Kind classifies a failed calendar query
type Kind int

// The closed set of remote error kinds
const (
	KindOther Kind = iota
	KindHTTP
	KindMissingToken
	KindRateOrSizeLimit
	KindBadRequest
	KindDecode
	KindCancelled
)

// String returns the label used in logs and metrics
func (k Kind) String() string {
	switch k {
	case KindHTTP:
		return "http"
	case KindMissingToken:
		return "missing_token"
	case KindRateOrSizeLimit:
		return "rate_or_size_limit"
	case KindBadRequest:
		return "bad_request"
	case KindDecode:
		return "decode"
	case KindCancelled:
		return "cancelled"
	default:
		return "other"
	}
}

// RemoteError is returned for every failed calendar query
type RemoteError struct {
	Kind Kind
	// Status is the HTTP status code when the API answered, 0 otherwise
	Status int
	Err    error
}

// Error implements the error interface
func (e *RemoteError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("calendar query failed (%s, HTTP %d): %v", e.Kind, e.Status, e.Err)
	}
	return fmt.Sprintf("calendar query failed (%s): %v", e.Kind, e.Err)
}

// Unwrap returns the underlying error
func (e *RemoteError) Unwrap() error {
	return e.Err
}

// rate limit reasons reported by the Calendar API on 403 responses
var rateLimitReasons = map[string]bool{
	"rateLimitExceeded":     true,
	"userRateLimitExceeded": true,
	"quotaExceeded":         true,
	"dailyLimitExceeded":    true,
}

// classifyError wraps err into a RemoteError
func classifyError(err error) *RemoteError {
	if err == nil {
		return nil
	}

	var remoteErr *RemoteError
	if errors.As(err, &remoteErr) {
		return remoteErr
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return &RemoteError{Kind: KindCancelled, Err: err}
	}

	// token refresh inside the oauth2 transport failed
	var retrieveErr *oauth2.RetrieveError
	if errors.As(err, &retrieveErr) {
		status := 0
		if retrieveErr.Response != nil {
			status = retrieveErr.Response.StatusCode
		}
		return &RemoteError{Kind: KindMissingToken, Status: status, Err: err}
	}

	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		return &RemoteError{Kind: kindForStatus(apiErr), Status: apiErr.Code, Err: err}
	}

	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) || errors.Is(err, io.ErrUnexpectedEOF) {
		return &RemoteError{Kind: KindDecode, Err: err}
	}

	var urlErr *url.Error
	var netErr net.Error
	if errors.As(err, &urlErr) || errors.As(err, &netErr) {
		return &RemoteError{Kind: KindHTTP, Err: err}
	}

	return &RemoteError{Kind: KindOther, Err: err}
}

func kindForStatus(apiErr *googleapi.Error) Kind {
	switch code := apiErr.Code; {
	case code == http.StatusUnauthorized:
		return KindMissingToken
	case code == http.StatusTooManyRequests, code == http.StatusRequestEntityTooLarge:
		return KindRateOrSizeLimit
	case code == http.StatusForbidden:
		for _, item := range apiErr.Errors {
			if rateLimitReasons[item.Reason] {
				return KindRateOrSizeLimit
			}
		}
		return KindBadRequest
	case code >= 500:
		return KindHTTP
	case code >= 400:
		return KindBadRequest
	default:
		return KindOther
	}
}
