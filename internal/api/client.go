// Package api is the HTTP client for the Topic Analyzer service.
//
// The client is transport only: it never owns authentication state. The
// bearer credential is read through a CredentialSource on every request,
// so the session layer stays the single writer of the token cell.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/nvoronin/redlens/internal/logging"
)

// CredentialSource returns the current bearer token, or "" when anonymous.
type CredentialSource func() string

// Client talks to the Topic Analyzer HTTP API.
type Client struct {
	baseURL    string
	client     *http.Client
	credential CredentialSource

	// Search submissions are rate limited client-side; the other
	// endpoints are user-paced and cheap.
	searchLimiter *rate.Limiter
}

// New creates a Client for the given base URL.
// credential may be nil for a client that only makes anonymous calls.
func New(baseURL string, timeout time.Duration, credential CredentialSource) *Client {
	if credential == nil {
		credential = func() string { return "" }
	}
	return &Client{
		baseURL:       strings.TrimRight(baseURL, "/"),
		client:        &http.Client{Timeout: timeout},
		credential:    credential,
		searchLimiter: rate.NewLimiter(rate.Every(2*time.Second), 3),
	}
}

// Login exchanges username/password for a bearer token.
// The endpoint takes an OAuth2 password form, not JSON.
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	form := url.Values{}
	form.Set("username", username)
	form.Set("password", password)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/api/auth/login", strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	var tok tokenResponse
	if err := c.do(req, &tok); err != nil {
		return "", err
	}
	if tok.AccessToken == "" {
		return "", &Error{Kind: KindServer, Message: "server returned an empty token"}
	}
	return tok.AccessToken, nil
}

// Register creates a new account. A successful registration does not
// yield a session; callers log in afterwards with the same credentials.
func (c *Client) Register(ctx context.Context, username, email, password string) error {
	body := registerRequest{Username: username, Email: email, Password: password}
	req, err := c.jsonRequest(ctx, http.MethodPost, "/api/auth/register", body)
	if err != nil {
		return err
	}
	return c.do(req, nil)
}

// Me validates the current credential and returns the user identity.
func (c *Client) Me(ctx context.Context) (Identity, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/auth/me", nil)
	if err != nil {
		return Identity{}, fmt.Errorf("create request: %w", err)
	}

	var id Identity
	if err := c.do(req, &id); err != nil {
		return Identity{}, err
	}
	return id, nil
}

// Search fetches posts and analysis for a topic. The topic must already
// be trimmed and non-empty; that is enforced upstream before any
// network activity.
func (c *Client) Search(ctx context.Context, topic string, limit int) (SearchResult, error) {
	if err := c.searchLimiter.Wait(ctx); err != nil {
		return SearchResult{}, NetworkError(err)
	}

	req, err := c.jsonRequest(ctx, http.MethodPost, "/api/search", searchRequest{Topic: topic, Limit: limit})
	if err != nil {
		return SearchResult{}, err
	}

	var resp searchResponse
	if err := c.do(req, &resp); err != nil {
		return SearchResult{}, err
	}

	return SearchResult{Topic: topic, Posts: resp.Posts, Analysis: resp.Analysis}, nil
}

// History fetches the authenticated user's past searches.
func (c *Client) History(ctx context.Context) ([]HistoryEntry, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/auth/me/history", nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	var entries []HistoryEntry
	if err := c.do(req, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// DeleteHistory removes one history entry by id.
func (c *Client) DeleteHistory(ctx context.Context, id int64) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete,
		fmt.Sprintf("%s/api/auth/me/history/%d", c.baseURL, id), nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	return c.do(req, nil)
}

// jsonRequest builds a request with a JSON body.
func (c *Client) jsonRequest(ctx context.Context, method, path string, body any) (*http.Request, error) {
	jsonBody, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bytes.NewReader(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return req, nil
}

// do executes the request, maps failures onto the error taxonomy, and
// decodes a 2xx body into out when out is non-nil.
func (c *Client) do(req *http.Request, out any) error {
	if token := c.credential(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	logging.Debug("API request", "method", req.Method, "url", req.URL.Path)

	resp, err := c.client.Do(req)
	if err != nil {
		logging.Error("API request failed", "method", req.Method, "url", req.URL.Path, "error", err)
		return NetworkError(err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return NetworkError(err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		logging.Error("API error", "method", req.Method, "url", req.URL.Path,
			"status", resp.StatusCode, "body", string(respBody))
		return statusError(resp.StatusCode, respBody)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return &Error{Kind: KindServer, Message: "malformed response: " + err.Error(), Status: resp.StatusCode, Wrapped: err}
	}
	return nil
}

// statusError maps a non-2xx response to a typed error. The body is
// surfaced verbatim when present.
func statusError(status int, body []byte) *Error {
	msg := strings.TrimSpace(string(body))
	if msg == "" {
		msg = http.StatusText(status)
	}

	kind := KindServer
	if status == http.StatusUnauthorized || status == http.StatusForbidden {
		kind = KindAuth
	}
	return &Error{Kind: kind, Message: msg, Status: status}
}
