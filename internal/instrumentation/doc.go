// Package instrumentation provides optional OpenTelemetry instrumentation for nextmeet.
//
// A single run of nextmeet is short-lived, so instrumentation is disabled by
// default. When enabled, metrics and traces are pushed (OTLP over HTTP) or
// written to stderr (stdout exporter) and flushed by Provider.Shutdown before the process exits.
//
// # Metrics
//
// Google API Metrics:
//   - google_api_operations_total: Counter of Google API operations by service, operation, status
//   - google_api_operation_duration_seconds: Histogram of Google API operation durations
//
// OAuth Authentication Metrics:
//   - oauth_auth_total: Counter of interactive OAuth flows by result
//   - oauth_token_refresh_total: Counter of token refresh attempts by result
//
// Token Storage Metrics:
//   - token_store_operations_total: Counter of token file reads, writes and deletes by status
//
// Meeting Metrics:
//   - meeting_lookups_total: Counter of next-meeting lookups by result (found, none)
//
// # Tracing
//
// Spans are created for Google API calls (google.<service>.<operation>) and
// for the authenticator (oauth.token).
//
// # Configuration
//
// Instrumentation is configured via environment variables:
//   - INSTRUMENTATION_ENABLED: Enable/disable instrumentation (default: false)
//   - METRICS_EXPORTER: Metrics exporter type (otlp, stdout, none, default: none)
//   - TRACING_EXPORTER: Tracing exporter type (otlp, stdout, none, default: none)
//   - OTEL_EXPORTER_OTLP_ENDPOINT: OTLP endpoint for traces/metrics
//   - OTEL_EXPORTER_OTLP_INSECURE: Use plain HTTP for OTLP (default: false)
//   - OTEL_TRACES_SAMPLER_ARG: Sampling rate (0.0 to 1.0, default: 1.0)
//   - OTEL_SERVICE_NAME: Service name (default: nextmeet)
//
// # Example Usage
//
//	provider, err := instrumentation.NewProvider(ctx, instrumentation.DefaultConfig())
//	if err != nil {
//		return err
//	}
//	defer provider.Shutdown(ctx)
//
//	recorder := provider.Metrics()
//	recorder.RecordGoogleAPIOperation(ctx, "calendar", "list", "success", "", time.Since(start))
package instrumentation
