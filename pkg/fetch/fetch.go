// Package fetch retrieves the RDF representation of resources over plain HTTP.
//
// This is the only path to the service which does not go through the RPC dispatcher.
package fetch

import (
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/dydra/dydra/pkg/auth"
	"github.com/dydra/dydra/pkg/metrics"
	"github.com/dydra/dydra/pkg/rpc/status"
	"go.uber.org/zap"
)

// DefaultAccept is the media type requested by default: N-Triples
const DefaultAccept = "text/plain"

// Response from a GET or HEAD request. Body is empty for HEAD.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// OK tells if the response has a 2xx status
func (r *Response) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode <= 299
}

// Fetcher knows how to retrieve resources.
//
// Implementations return a Response for any HTTP status: only transport
// failures are reported as errors. Use Check to qualify a status as an error.
type Fetcher interface {
	Get(ctx context.Context, url, format string, headers map[string]string) (*Response, error)
	Head(ctx context.Context, url, format string, headers map[string]string) (*Response, error)
}

var _ Fetcher = &HTTPFetcher{}

// HTTPFetcher is a Fetcher over net/http
type HTTPFetcher struct {
	hc          *http.Client
	headers     map[string]string
	credentials auth.Credentials
	maxBody     int64
	l           *zap.Logger
	m           *metrics.IOMetrics
}

// New builds an HTTP fetcher
func New(opts ...Option) *HTTPFetcher {
	f := &HTTPFetcher{
		hc:      &http.Client{Timeout: 5 * time.Minute},
		headers: map[string]string{"Accept": DefaultAccept},
		l:       zap.NewNop(),
	}
	for _, apply := range opts {
		apply(f)
	}
	return f
}

// Get a resource, with an optional format suffix such as "nt" and header overrides
func (f *HTTPFetcher) Get(ctx context.Context, url, format string, headers map[string]string) (*Response, error) {
	return f.do(ctx, http.MethodGet, url, format, headers)
}

// Head checks a resource, with an optional format suffix and header overrides
func (f *HTTPFetcher) Head(ctx context.Context, url, format string, headers map[string]string) (*Response, error) {
	return f.do(ctx, http.MethodHead, url, format, headers)
}

func (f *HTTPFetcher) do(ctx context.Context, method, url, format string, headers map[string]string) (resp *Response, err error) {
	target := WithFormat(url, format)
	var size int64
	defer func(t0 time.Time) {
		f.m.IORecord(t0, strings.ToLower(method))(size, err)
	}(time.Now())

	req, err := http.NewRequestWithContext(ctx, method, target, nil)
	if err != nil {
		return nil, status.ErrTransportFailure.Wrap(err)
	}
	for k, v := range f.headers {
		req.Header.Set(k, v)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	f.credentials.Apply(req)

	f.l.Debug("fetching", zap.String("method", method), zap.String("url", target), zap.String("accept", req.Header.Get("Accept")))
	httpResp, err := f.hc.Do(req)
	if err != nil {
		return nil, status.ErrTransportFailure.Wrap(err)
	}
	defer func() {
		_ = httpResp.Body.Close()
	}()

	resp = &Response{
		StatusCode: httpResp.StatusCode,
		Header:     httpResp.Header,
	}
	if method == http.MethodHead {
		return resp, nil
	}

	var body io.Reader = httpResp.Body
	if f.maxBody > 0 {
		body = io.LimitReader(httpResp.Body, f.maxBody+1)
	}
	resp.Body, err = io.ReadAll(body)
	if err != nil {
		return nil, status.ErrTransportFailure.Wrap(err)
	}
	if f.maxBody > 0 && int64(len(resp.Body)) > f.maxBody {
		return nil, status.ErrTransportFailure.Wrapf("response from %s exceeds %d bytes", target, f.maxBody)
	}
	size = int64(len(resp.Body))
	return resp, nil
}

// WithFormat appends a format extension to a URL, e.g. "nt" or ".nt"
func WithFormat(url, format string) string {
	format = strings.TrimPrefix(format, ".")
	if format == "" {
		return url
	}
	return url + "." + format
}

// Check qualifies the status of a response as an error, naming the url.
//
// 401 and 403 are reported as AuthenticationRequired, any other non-2xx status as RemoteRejected.
func Check(url string, resp *Response) error {
	switch {
	case resp.OK():
		return nil
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return status.ErrAuthenticationRequired.Wrapf("%s: %d %s", url, resp.StatusCode, http.StatusText(resp.StatusCode))
	default:
		return status.ErrRemoteRejected.Wrapf("%s: %d %s", url, resp.StatusCode, http.StatusText(resp.StatusCode))
	}
}
