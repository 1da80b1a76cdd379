package fetch

import (
	"net/http"

	"github.com/dydra/dydra/pkg/auth"
	"github.com/dydra/dydra/pkg/metrics"
	"go.uber.org/zap"
)

// Option is a functor to pass optional parameters to the fetcher
type Option func(*HTTPFetcher)

// WithHTTPClient sets the http client (the default has a 5m timeout)
func WithHTTPClient(hc *http.Client) Option {
	return func(f *HTTPFetcher) {
		if hc != nil {
			f.hc = hc
		}
	}
}

// WithHeader adds a default header, sent with every request unless overridden by a call
func WithHeader(key, value string) Option {
	return func(f *HTTPFetcher) {
		f.headers[http.CanonicalHeaderKey(key)] = value
	}
}

// WithCredentials authenticates all requests
func WithCredentials(credentials auth.Credentials) Option {
	return func(f *HTTPFetcher) {
		f.credentials = credentials
	}
}

// WithMaxBodySize limits the size of fetched bodies. The default is no limit.
func WithMaxBodySize(size int64) Option {
	return func(f *HTTPFetcher) {
		f.maxBody = size
	}
}

// Logger specifies a logger for this fetcher
func Logger(logger *zap.Logger) Option {
	return func(f *HTTPFetcher) {
		if logger != nil {
			f.l = logger
		}
	}
}

// WithMetrics enables IO metrics on requests
func WithMetrics(enabled bool) Option {
	return func(f *HTTPFetcher) {
		if enabled {
			f.m = metrics.NewIOMetrics("http")
			return
		}
		f.m = nil
	}
}
