package client

import (
	"net/http"
	"time"

	"go.uber.org/zap"
)

const (
	defaultAttempts = 3
	defaultBackoff  = 200 * time.Millisecond
)

type options struct {
	logger     *zap.Logger
	token      string
	httpClient *http.Client
	attempts   int
	backoff    time.Duration
}

// Option configures a client.
type Option func(*options)

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithToken sends token as a bearer token on every call.
func WithToken(token string) Option {
	return func(o *options) { o.token = token }
}

// WithHTTPClient replaces the client used by the HTTP backend.
func WithHTTPClient(c *http.Client) Option {
	return func(o *options) { o.httpClient = c }
}

// WithRetry sets how many times the HTTP backend tries a GET and how long it
// waits between tries.
func WithRetry(attempts int, backoff time.Duration) Option {
	return func(o *options) {
		if attempts > 0 {
			o.attempts = attempts
		}
		o.backoff = backoff
	}
}

func newOptions(opts []Option) options {
	o := options{
		logger:     zap.NewNop(),
		httpClient: &http.Client{Timeout: 10 * time.Second},
		attempts:   defaultAttempts,
		backoff:    defaultBackoff,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
