package apiclient

import (
	"net/http"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/trace"

	"github.com/jrsteele09/research-platform-client/tokens"
)

type Option func(*Client)

// WithHTTPClient sets the transport. Timeouts are whatever this client enforces.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithStore sets the durable store the session is read from and written to.
// Without it the session lives in memory only.
func WithStore(store tokens.Store) Option {
	return func(c *Client) {
		c.store = store
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(c *Client) {
		if tp != nil {
			c.tracer = tp.Tracer(instrumentationName)
		}
	}
}

// WithRefreshCoalescing makes concurrent 401s share a single refresh call.
// Off by default, in which case every 401 performs its own refresh.
func WithRefreshCoalescing(enabled bool) Option {
	return func(c *Client) {
		c.coalesceRefresh = enabled
	}
}
