// Package requester performs HTTP requests against the platform API.
//
// The Requester interface is the seam between the account facade and the
// network: the facade builds URLs and payloads, the requester moves bytes.
// Transport failures (DNS, refused connections, timeouts, cancelled
// contexts) surface as errors; non-2xx statuses do not. Callers branch on
// Response.StatusCode themselves.
package requester

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/charai-dev/charai/pkg/debug"
	"github.com/charai-dev/charai/pkg/observability"
)

const (
	// DefaultTimeout bounds a single round trip when no custom client is
	// injected.
	DefaultTimeout = 30 * time.Second

	// maxResponseBytes caps how much of a response body is read. Platform
	// payloads are small; anything near this size is a misbehaving server.
	maxResponseBytes = 10 << 20

	defaultUserAgent = "charai-go/0.1.0"
)

// Options carries the per-request parameters a caller controls.
type Options struct {
	// Method is the HTTP method. Empty means GET.
	Method string

	// Headers are set verbatim on the request.
	Headers map[string]string

	// Body is the raw request body. Nil means no body is sent.
	Body []byte
}

// Response is a fully-read HTTP response.
type Response struct {
	StatusCode int

	body []byte
}

// NewResponse builds a Response directly, for test doubles that implement
// Requester without a network.
func NewResponse(statusCode int, body []byte) *Response {
	return &Response{StatusCode: statusCode, body: body}
}

// Body returns the raw response body.
func (r *Response) Body() []byte {
	return r.body
}

// JSON decodes the response body into v.
func (r *Response) JSON(v any) error {
	if err := json.Unmarshal(r.body, v); err != nil {
		return fmt.Errorf("decoding response body: %w", err)
	}
	return nil
}

// Requester issues a single HTTP request and returns the fully-read
// response. Implementations must be safe for concurrent use.
type Requester interface {
	Request(ctx context.Context, url string, opts Options) (*Response, error)
}

// HTTPRequester implements Requester over net/http.
type HTTPRequester struct {
	httpClient *http.Client
	logger     *slog.Logger
}

var _ Requester = (*HTTPRequester)(nil)

// Option configures an HTTPRequester.
type Option func(*HTTPRequester)

// WithTimeout sets the round-trip timeout of the default HTTP client. It has
// no effect when WithHTTPClient is also given.
func WithTimeout(d time.Duration) Option {
	return func(r *HTTPRequester) {
		r.httpClient.Timeout = d
	}
}

// WithHTTPClient injects a caller-owned *http.Client, replacing the default
// one including its timeout.
func WithHTTPClient(c *http.Client) Option {
	return func(r *HTTPRequester) {
		r.httpClient = c
	}
}

// WithLogger sets the structured logger used for per-request log lines.
func WithLogger(l *slog.Logger) Option {
	return func(r *HTTPRequester) {
		r.logger = l
	}
}

// New creates an HTTPRequester with a 30s timeout unless configured
// otherwise.
func New(opts ...Option) *HTTPRequester {
	r := &HTTPRequester{
		httpClient: &http.Client{Timeout: DefaultTimeout},
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Request performs one HTTP round trip and reads the response body in full.
func (r *HTTPRequester) Request(ctx context.Context, url string, opts Options) (*Response, error) {
	method := opts.Method
	if method == "" {
		method = http.MethodGet
	}

	var bodyReader io.Reader
	if opts.Body != nil {
		bodyReader = bytes.NewReader(opts.Body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	for k, v := range opts.Headers {
		httpReq.Header.Set(k, v)
	}
	if httpReq.Header.Get("User-Agent") == "" {
		httpReq.Header.Set("User-Agent", defaultUserAgent)
	}

	host := httpReq.URL.Host

	debug.Log("requester", "request", "method", method, "url", url, "bytes", len(opts.Body))
	if opts.Body != nil {
		debug.Raw("requester", string(opts.Body))
	}

	observability.ClientRequestsInflight.Inc()
	start := time.Now()
	httpResp, err := r.httpClient.Do(httpReq)
	duration := time.Since(start)
	observability.ClientRequestsInflight.Dec()

	if err != nil {
		observability.ClientRequestsTotal.WithLabelValues(method, host, "error").Inc()
		return nil, fmt.Errorf("%s %s: %w", method, url, err)
	}
	defer httpResp.Body.Close()

	observability.ClientRequestsTotal.WithLabelValues(method, host, observability.StatusClass(httpResp.StatusCode)).Inc()
	observability.ClientRequestDuration.WithLabelValues(method, host).Observe(duration.Seconds())

	data, err := io.ReadAll(io.LimitReader(httpResp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	r.logger.Debug("platform request",
		"method", method,
		"host", host,
		"status", httpResp.StatusCode,
		"bytes", len(data),
		"duration_ms", duration.Milliseconds())
	debug.Raw("requester", string(data))

	return &Response{StatusCode: httpResp.StatusCode, body: data}, nil
}
