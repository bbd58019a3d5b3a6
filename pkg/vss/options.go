package vss

import (
	"net/http"
	"time"

	"github.com/dmitrijs2005/vssclient/internal/logging"
)

const defaultTimeout = 30 * time.Second

type options struct {
	httpClient *http.Client
	logger     logging.Logger
	timeout    time.Duration
}

func defaultOptions() options {
	return options{
		logger:  logging.Nop(),
		timeout: defaultTimeout,
	}
}

// Option customizes a Client at construction time.
type Option func(*options)

// WithHTTPClient replaces the HTTP client used for both storage and auth
// calls, e.g. to configure TLS or proxies.
func WithHTTPClient(hc *http.Client) Option {
	return func(o *options) {
		if hc != nil {
			o.httpClient = hc
		}
	}
}

// WithLogger attaches a logger. The default discards everything.
func WithLogger(l logging.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithTimeout bounds each operation, pagination included. Zero disables the
// bound, leaving deadlines entirely to the caller's context.
func WithTimeout(d time.Duration) Option {
	return func(o *options) {
		o.timeout = d
	}
}
