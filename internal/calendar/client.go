package calendar

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"go.opentelemetry.io/otel/attribute"
	calendar "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"github.com/teemow/nextmeet/internal/instrumentation"
	"github.com/teemow/nextmeet/internal/logging"
)

// Fixed query parameters for ListUpcoming
const (
	PrimaryCalendar = "primary"
	MaxAttendees    = 25
)

// Client wraps the Google Calendar service
type Client struct {
	svc     *calendar.Service
	metrics *instrumentation.Metrics
	logger  *slog.Logger
}

// Option configures a Client
type Option func(*clientOptions)

type clientOptions struct {
	endpoint string
	metrics  *instrumentation.Metrics
	logger   *slog.Logger
}

// WithEndpoint overrides the Calendar API base URL
func WithEndpoint(endpoint string) Option {
	return func(o *clientOptions) { o.endpoint = endpoint }
}

// WithMetrics records every query in m
func WithMetrics(m *instrumentation.Metrics) Option {
	return func(o *clientOptions) { o.metrics = m }
}

// WithLogger sets the logger used by the client
func WithLogger(l *slog.Logger) Option {
	return func(o *clientOptions) { o.logger = l }
}

// NewClient creates a Calendar client that sends requests through httpClient.
// httpClient is expected to carry OAuth2 credentials.
func NewClient(ctx context.Context, httpClient *http.Client, opts ...Option) (*Client, error) {
	if httpClient == nil {
		return nil, fmt.Errorf("http client cannot be nil")
	}

	o := clientOptions{logger: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}

	svcOpts := []option.ClientOption{option.WithHTTPClient(httpClient)}
	if o.endpoint != "" {
		svcOpts = append(svcOpts, option.WithEndpoint(o.endpoint))
	}

	svc, err := calendar.NewService(ctx, svcOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Calendar service: %w", err)
	}

	return &Client{
		svc:     svc,
		metrics: o.metrics,
		logger:  logging.WithService(o.logger, instrumentation.ServiceCalendar),
	}, nil
}

// ListUpcoming returns the events of the primary calendar that start at or
// after now, ordered ascending by start time. Recurring events are expanded
// into their instances and there is no upper time bound.
func (c *Client) ListUpcoming(ctx context.Context, now time.Time) ([]Event, error) {
	ctx, span := instrumentation.StartGoogleAPISpan(ctx,
		instrumentation.ServiceCalendar, instrumentation.OperationList,
		attribute.String(instrumentation.SpanAttrCalendarID, PrimaryCalendar))
	defer span.End()

	start := time.Now()
	logger := logging.WithOperation(c.logger, "calendar.list_upcoming")

	resp, err := c.svc.Events.List(PrimaryCalendar).
		TimeMin(now.Format(time.RFC3339)).
		SingleEvents(true).
		MaxAttendees(MaxAttendees).
		OrderBy("startTime").
		Context(ctx).
		Do()
	if err != nil {
		remoteErr := classifyError(err)
		c.metrics.RecordGoogleAPIOperation(ctx, instrumentation.ServiceCalendar, instrumentation.OperationList,
			instrumentation.StatusError, remoteErr.Kind.String(), time.Since(start))
		span.SetAttributes(attribute.String(instrumentation.SpanAttrErrorKind, remoteErr.Kind.String()))
		instrumentation.SetSpanError(span, remoteErr)
		logger.Warn("listing events failed",
			logging.Status(logging.StatusError),
			slog.String("kind", remoteErr.Kind.String()),
			slog.String("trace_id", instrumentation.GetTraceID(ctx)),
			logging.Err(err))
		return nil, remoteErr
	}

	events := make([]Event, 0, len(resp.Items))
	for _, item := range resp.Items {
		events = append(events, toEvent(item))
	}

	c.metrics.RecordGoogleAPIOperation(ctx, instrumentation.ServiceCalendar, instrumentation.OperationList,
		instrumentation.StatusSuccess, "", time.Since(start))
	span.SetAttributes(attribute.Int(instrumentation.SpanAttrEventCount, len(events)))
	instrumentation.SetSpanSuccess(span)
	logger.Debug("listed events",
		logging.Status(logging.StatusSuccess),
		slog.Int("count", len(events)),
		slog.Duration(logging.KeyDuration, time.Since(start)))

	return events, nil
}
