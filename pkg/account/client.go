// Package account implements the account, persona, and voice-override
// operations of the platform's private web API.
//
// The Client is a stateless facade: it builds URLs and payloads, delegates
// the round trip to a requester.Requester, branches on the HTTP status, and
// maps response JSON into pkg/api types or typed CallErrors. It holds no
// caches; every call re-queries the server. Concurrent use is safe to the
// extent the injected Requester and Credentials are.
package account

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/charai-dev/charai/pkg/api"
	"github.com/charai-dev/charai/pkg/observability"
	"github.com/charai-dev/charai/pkg/requester"
)

// Default hosts of the platform API. The chat host serves everything except
// voices, which live on the multimodal host.
const (
	DefaultBaseURL = "https://plus.character.ai"
	DefaultNeoURL  = "https://neo.character.ai"
)

// Credentials supplies the per-call auth headers and the numeric account id
// of the authenticated user.
type Credentials interface {
	Headers() map[string]string
	AccountID() int64
}

// accountIDLearner is implemented by credential holders that want to be
// told the account id once Me has fetched it.
type accountIDLearner interface {
	SetAccountID(int64)
}

// Client is the facade over the platform's account operations.
type Client struct {
	creds   Credentials
	req     requester.Requester
	baseURL string
	neoURL  string
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the chat host, mainly for tests and the mock server.
func WithBaseURL(u string) Option {
	return func(c *Client) {
		c.baseURL = u
	}
}

// WithNeoURL overrides the multimodal host serving the voices endpoint.
func WithNeoURL(u string) Option {
	return func(c *Client) {
		c.neoURL = u
	}
}

// New creates a Client talking to the production hosts unless overridden.
func New(creds Credentials, req requester.Requester, opts ...Option) *Client {
	c := &Client{
		creds:   creds,
		req:     req,
		baseURL: DefaultBaseURL,
		neoURL:  DefaultNeoURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// get issues an authenticated GET.
func (c *Client) get(ctx context.Context, url string) (*requester.Response, error) {
	return c.req.Request(ctx, url, requester.Options{
		Headers: c.creds.Headers(),
	})
}

// post issues an authenticated POST. A nil payload sends no body.
func (c *Client) post(ctx context.Context, url string, payload any) (*requester.Response, error) {
	var body []byte
	if payload != nil {
		var err error
		body, err = json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("encoding payload: %w", err)
		}
	}
	return c.req.Request(ctx, url, requester.Options{
		Method:  http.MethodPost,
		Headers: c.creds.Headers(),
		Body:    body,
	})
}

// observe records the outcome of one facade operation. The outcome label is
// "ok", the CallError kind, or "error" for failures outside the taxonomy.
func observe(operation string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
		if kind := api.KindOf(err); kind != "" {
			outcome = string(kind)
		}
	}
	observability.OperationsTotal.WithLabelValues(operation, outcome).Inc()
}
