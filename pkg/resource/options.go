package resource

import (
	"github.com/dydra/dydra/pkg/fetch"
	"github.com/dydra/dydra/pkg/process"
	"go.uber.org/zap"
)

// Option is a functor to pass optional parameters to the client
type Option func(*Client)

// WithFetcher sets the fetcher used to retrieve RDF representations (the default is fetch.New())
func WithFetcher(f fetch.Fetcher) Option {
	return func(c *Client) {
		if f != nil {
			c.fetcher = f
		}
	}
}

// Logger specifies a logger for this client and the processes it starts
func Logger(logger *zap.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.l = logger
		}
	}
}

// WithInfoCache caches repository metadata: the first successful repository.info call
// on a Repository handle is reused by subsequent accessors on that same handle.
func WithInfoCache(enabled bool) Option {
	return func(c *Client) {
		c.cacheInfo = enabled
	}
}

// WithConcurrency bounds the number of concurrent remote checks when validating specs (the default is 8)
func WithConcurrency(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.concurrency = n
		}
	}
}

// WithProcessOptions sets options applied to every process started by this client
func WithProcessOptions(opts ...process.Option) Option {
	return func(c *Client) {
		c.processOpts = append(c.processOpts, opts...)
	}
}
