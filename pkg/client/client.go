// Package client implements the HTTP collaborator of the Duckity
// protocol: fetching challenges from a duckling server and submitting
// solved tokens for validation. The challenge bytes themselves are
// handled by pkg/challenge.
package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"

	gjson "github.com/goccy/go-json"

	"github.com/duckity/go-duckity/pkg/challenge"
)

// DefaultDomain is the hosted duckling server.
const DefaultDomain = "quack.duckity.dev"

const defaultTimeout = 10 * time.Second

// Client talks to a duckling server. The zero value is not usable;
// construct with New, WithDomain, or WithBaseURL.
type Client struct {
	baseURL string
	httpc   *http.Client
}

// New returns a client pointing at the hosted duckling server.
// Use WithDomain if you are self-hosting.
func New() *Client {
	return WithDomain(DefaultDomain)
}

// WithDomain returns a client pointing at a custom domain over HTTPS.
func WithDomain(domain string) *Client {
	return WithBaseURL("https://" + domain)
}

// WithBaseURL returns a client pointing at an arbitrary base URL,
// scheme included. Useful for local development servers.
func WithBaseURL(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpc:   &http.Client{Timeout: defaultTimeout},
	}
}

// SetHTTPClient replaces the underlying HTTP client, e.g. to adjust
// timeouts or inject a transport in tests.
func (c *Client) SetHTTPClient(hc *http.Client) {
	c.httpc = hc
}

type challengeRequest struct {
	Profile string `json:"profile"`
}

type validationRequest struct {
	Token   string `json:"token"`
	IP      string `json:"ip"`
	Profile string `json:"profile"`
}

// GetChallenge requests a new challenge for the given application ID and
// profile code and decodes the binary body.
func (c *Client) GetChallenge(ctx context.Context, appID, profileCode string) (*challenge.Challenge, error) {
	endpoint := c.baseURL + "/v1/challenges/" + url.PathEscape(appID)

	resp, err := c.post(ctx, endpoint, challengeRequest{Profile: profileCode}, "")
	if err != nil {
		return nil, fmt.Errorf("fetch challenge: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("fetch challenge: read body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, apiErrorFromBody(resp.StatusCode, body)
	}

	return challenge.Decode(body)
}

// Validate submits an encoded solution token for server-side
// verification. A nil error means the server accepted the solution.
// The app secret is sent as a bearer token; keep this call server-side
// in real deployments.
func (c *Client) Validate(ctx context.Context, appID, appSecret, profileCode, token string, clientIP net.IP) error {
	endpoint := c.baseURL + "/v1/challenges/" + url.PathEscape(appID) + "/validate"

	payload := validationRequest{
		Token:   token,
		IP:      clientIP.String(),
		Profile: profileCode,
	}

	resp, err := c.post(ctx, endpoint, payload, appSecret)
	if err != nil {
		return fmt.Errorf("validate solution: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode <= 299 {
		return nil
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("validate solution: read body: %w", err)
	}
	return apiErrorFromBody(resp.StatusCode, body)
}

// post sends a JSON payload, attaching bearer auth when a secret is given.
func (c *Client) post(ctx context.Context, endpoint string, payload any, bearer string) (*http.Response, error) {
	body, err := gjson.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	return c.httpc.Do(req)
}
