package oauth

import (
	"log/slog"
	"net/http"
)

// Option configures a Strategy.
type Option func(*options)

type options struct {
	httpClient *http.Client
	logger     *slog.Logger
	state      StateGenerator
}

// WithHTTPClient sets the HTTP client for token and user requests.
// Timeouts, proxies and pooling are the client's concern; use this to
// inject httptest servers or custom transports.
func WithHTTPClient(client *http.Client) Option {
	return func(o *options) {
		o.httpClient = client
	}
}

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithStateGenerator replaces the RandomState generator.
func WithStateGenerator(g StateGenerator) Option {
	return func(o *options) {
		o.state = g
	}
}
