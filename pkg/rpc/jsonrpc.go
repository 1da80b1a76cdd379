package rpc

import (
	"bytes"
	"context"
	stdjson "encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/dydra/dydra/pkg/auth"
	"github.com/dydra/dydra/pkg/rpc/status"
	jsoniter "github.com/json-iterator/go"
	"github.com/segmentio/ksuid"
	"go.uber.org/zap"
)

const (
	jsonRPCVersion  = "2.0"
	jsonContentType = "application/json"

	// DefaultEndpointPath is appended to the service URL to reach the RPC endpoint
	DefaultEndpointPath = "rpc"

	maxErrorBody = 4096
)

// numbers are kept as json.Number so large counts are not truncated
var json = jsoniter.Config{
	EscapeHTML:             true,
	SortMapKeys:            true,
	ValidateJsonRawMessage: true,
	UseNumber:              true,
}.Froze()

type request struct {
	Version string        `json:"jsonrpc"`
	ID      string        `json:"id"`
	Method  string        `json:"method"`
	Params  []interface{} `json:"params"`
}

type response struct {
	Version string             `json:"jsonrpc"`
	ID      string             `json:"id"`
	Result  stdjson.RawMessage `json:"result,omitempty"`
	Error   *RemoteError       `json:"error,omitempty"`
}

// RemoteError is an application-level error returned by the server.
//
// It is always returned wrapped by status.ErrRemoteRejected.
type RemoteError struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("code %d: %s", e.Code, e.Message)
}

var _ Caller = &Client{}

// Client is a JSON-RPC 2.0 transport over HTTP
type Client struct {
	endpoint    string
	hc          *http.Client
	credentials auth.Credentials
	l           *zap.Logger
}

// ClientOption is a functor to pass optional parameters to the JSON-RPC client
type ClientOption func(*Client)

// WithHTTPClient sets the http client used to post calls (the default has a 60s timeout)
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		if hc != nil {
			c.hc = hc
		}
	}
}

// WithCredentials authenticates all calls
func WithCredentials(credentials auth.Credentials) ClientOption {
	return func(c *Client) {
		c.credentials = credentials
	}
}

// ClientLogger specifies a logger for this client
func ClientLogger(logger *zap.Logger) ClientOption {
	return func(c *Client) {
		if logger != nil {
			c.l = logger
		}
	}
}

// NewClient builds a JSON-RPC client posting calls to endpoint, e.g. "https://dydra.com/rpc"
func NewClient(endpoint string, opts ...ClientOption) *Client {
	c := &Client{
		endpoint: endpoint,
		hc:       &http.Client{Timeout: 60 * time.Second},
		l:        zap.NewNop(),
	}
	for _, apply := range opts {
		apply(c)
	}
	return c
}

// Endpoint of this client
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Call a remote method.
//
// Arguments are passed positionally. The result is returned as decoded from JSON:
// maps, slices, strings, bools, json.Number or nil.
func (c *Client) Call(ctx context.Context, method string, args ...interface{}) (interface{}, error) {
	if args == nil {
		args = []interface{}{}
	}
	req := request{
		Version: jsonRPCVersion,
		ID:      ksuid.New().String(),
		Method:  method,
		Params:  args,
	}
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, status.ErrTransportFailure.Wrapf("cannot encode call to %s: %w", method, err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, status.ErrTransportFailure.Wrap(err)
	}
	httpReq.Header.Set("Content-Type", jsonContentType)
	httpReq.Header.Set("Accept", jsonContentType)
	c.credentials.Apply(httpReq)

	c.l.Debug("posting rpc call", zap.String("method", method), zap.String("id", req.ID), zap.String("endpoint", c.endpoint))
	resp, err := c.hc.Do(httpReq)
	if err != nil {
		return nil, status.ErrTransportFailure.Wrap(err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, status.ErrTransportFailure.Wrap(err)
	}

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		if c.credentials.IsZero() {
			return nil, status.ErrAuthenticationRequired.Wrapf("%s: no credentials provided", method)
		}
		return nil, status.ErrAuthenticationRequired.Wrapf("%s: credentials rejected (%s)", method, resp.Status)
	}

	var rpcResp response
	if err = json.Unmarshal(body, &rpcResp); err != nil {
		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			return nil, status.ErrTransportFailure.Wrapf("%s: %s: %s", method, resp.Status, truncate(body))
		}
		return nil, status.ErrUnexpectedResult.Wrapf("%s: invalid JSON-RPC response: %w", method, err)
	}

	if rpcResp.Error != nil {
		return nil, status.ErrRemoteRejected.Wrap(rpcResp.Error)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, status.ErrTransportFailure.Wrapf("%s: %s", method, resp.Status)
	}
	if rpcResp.ID != req.ID {
		return nil, status.ErrUnexpectedResult.Wrapf("%s: response id %q does not match request id %q", method, rpcResp.ID, req.ID)
	}
	if len(rpcResp.Result) == 0 {
		return nil, nil
	}

	var result interface{}
	if err = json.Unmarshal(rpcResp.Result, &result); err != nil {
		return nil, status.ErrUnexpectedResult.Wrapf("%s: %w", method, err)
	}
	return result, nil
}

func truncate(body []byte) string {
	s := strings.TrimSpace(string(body))
	if len(s) > maxErrorBody {
		return s[:maxErrorBody] + "..."
	}
	return s
}
