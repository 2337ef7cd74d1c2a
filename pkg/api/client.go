// Package api talks to the connected-accounts endpoint of the me/v1 API.
package api

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hardwaylabs/conacct/pkg/cli"
	"github.com/hardwaylabs/conacct/pkg/token"
)

// ScopeDeleteConnectedAccounts must be granted by the access token before a
// delete request is attempted.
const ScopeDeleteConnectedAccounts = "delete:me:connected_accounts"

// DefaultTimeout bounds one request/response round-trip.
const DefaultTimeout = 30 * time.Second

// Response holds the status code and body of one API exchange as distinct
// fields, so bodies containing newlines never mix with status metadata.
type Response struct {
	StatusCode int
	Body       []byte
}

// OK reports whether the response carries a 2xx status.
func (r *Response) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Client issues authenticated requests against the API host named by the
// access token's issuer claim.
type Client struct {
	baseURL     string
	accessToken string
	httpClient  *http.Client
	log         *slog.Logger
}

// Option adjusts a Client during construction.
type Option func(*Client)

// WithTimeout overrides the default request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithHTTPClient substitutes the underlying HTTP client, mainly for tests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithLogger attaches a diagnostic logger.
func WithLogger(log *slog.Logger) Option {
	return func(c *Client) {
		c.log = log
	}
}

// NewClient derives the API base URL from the token's issuer claim. Exactly
// one trailing slash is stripped from the issuer; anything beyond that is
// preserved as given.
func NewClient(claims *token.Claims, accessToken string, opts ...Option) (*Client, error) {
	if claims.Issuer == "" {
		return nil, cli.Errorf(cli.KindMissingIssuer,
			"access token has no iss claim; cannot determine API host")
	}
	c := &Client{
		baseURL:     strings.TrimSuffix(claims.Issuer, "/"),
		accessToken: accessToken,
		httpClient:  &http.Client{Timeout: DefaultTimeout},
		log:         slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// ConnectedAccountURL composes the endpoint for one connected account,
// percent-encoding the identifier.
func (c *Client) ConnectedAccountURL(id string) string {
	return c.baseURL + "/me/v1/connected-accounts/accounts/" + url.PathEscape(id)
}

// DeleteConnectedAccount issues the DELETE request and returns the status and
// body regardless of status code. The error is non-nil only when the request
// could not be built or completed at the transport level.
func (c *Client) DeleteConnectedAccount(ctx context.Context, id string) (*Response, error) {
	endpoint := c.ConnectedAccountURL(id)
	c.log.Debug("sending request", "method", http.MethodDelete, "url", endpoint)

	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("DELETE %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	c.log.Debug("received response", "status", resp.StatusCode, "bytes", len(body))
	return &Response{StatusCode: resp.StatusCode, Body: body}, nil
}
