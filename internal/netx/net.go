// Package netx is the HTTP primitive the globalstats client is built on: it
// issues a request with headers and body and hands back status and body.
// Network failures are returned as errors; HTTP failures are returned as a
// Response whose status is outside 2xx.
package netx

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

// RequestIDHeader carries a per-request correlation id.
const RequestIDHeader = "X-Request-Id"

// maxBodySize bounds how much of a response body is read.
const maxBodySize = 4 << 20

// ErrNetwork wraps failures that happened before a status was received.
var ErrNetwork = errors.New("network error")

// Request describes one call relative to the transport's base URL.
type Request struct {
	Method string
	// Path is appended to the base URL, e.g. "v1/statistics/abc".
	Path string
	// Route is a low-cardinality label for metrics, e.g. "v1/statistics/{id}".
	// Path is used when empty.
	Route  string
	Header http.Header
	Body   []byte
}

// Response is the status and body of a completed call.
type Response struct {
	StatusCode int
	Body       []byte
	RequestID  string
}

// OK reports a 2xx status.
func (r *Response) OK() bool {
	return r != nil && r.StatusCode >= 200 && r.StatusCode < 300
}

// Doer performs requests.
type Doer interface {
	Do(ctx context.Context, req *Request) (*Response, error)
}

// HTTPTransport is a Doer over net/http.
type HTTPTransport struct {
	baseURL *url.URL
	client  *http.Client
	metrics *Metrics
	newID   func() string
}

// Option configures an HTTPTransport.
type Option func(*HTTPTransport)

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(c *http.Client) Option {
	return func(t *HTTPTransport) { t.client = c }
}

// WithTimeout sets the per-request timeout on the default client.
func WithTimeout(d time.Duration) Option {
	return func(t *HTTPTransport) { t.client.Timeout = d }
}

// WithMetrics records request counts and latencies.
func WithMetrics(m *Metrics) Option {
	return func(t *HTTPTransport) { t.metrics = m }
}

// NewHTTPTransport builds a transport rooted at baseURL.
func NewHTTPTransport(baseURL string, opts ...Option) (*HTTPTransport, error) {
	u, err := url.Parse(strings.TrimSpace(baseURL))
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("base url %q must be absolute", baseURL)
	}
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}

	t := &HTTPTransport{
		baseURL: u,
		client:  &http.Client{Timeout: 30 * time.Second},
		newID:   uuid.NewString,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t, nil
}

// Do sends req. A non-nil error always wraps ErrNetwork.
func (t *HTTPTransport) Do(ctx context.Context, req *Request) (*Response, error) {
	target, err := t.baseURL.Parse(strings.TrimPrefix(req.Path, "/"))
	if err != nil {
		return nil, fmt.Errorf("%w: build url: %v", ErrNetwork, err)
	}

	var body io.Reader
	if req.Body != nil {
		body = bytes.NewReader(req.Body)
	}
	httpReq, err := http.NewRequestWithContext(ctx, req.Method, target.String(), body)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", ErrNetwork, err)
	}
	for k, vs := range req.Header {
		for _, v := range vs {
			httpReq.Header.Add(k, v)
		}
	}
	if req.Body != nil && httpReq.Header.Get("Content-Type") == "" {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	httpReq.Header.Set("Accept", "application/json")
	requestID := t.newID()
	httpReq.Header.Set(RequestIDHeader, requestID)

	route := req.Route
	if route == "" {
		route = req.Path
	}
	done := t.metrics.start(req.Method, route)

	resp, err := t.client.Do(httpReq)
	if err != nil {
		done(0)
		return nil, fmt.Errorf("%w: %s %s: %w", ErrNetwork, req.Method, route, err)
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	done(resp.StatusCode)
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %w", ErrNetwork, err)
	}

	return &Response{StatusCode: resp.StatusCode, Body: b, RequestID: requestID}, nil
}
