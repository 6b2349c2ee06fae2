package greeting

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// GreetPath is the backend route served by the web UI and called by Client.
const GreetPath = "/api/greet"

// GreetRequest is the JSON body of a greet call.
type GreetRequest struct {
	Name string `json:"name"`
}

// GreetResponse is the JSON body returned by a successful greet call.
type GreetResponse struct {
	Greeting string `json:"greeting"`
}

// RemoteError reports a non-2xx answer from the greeting backend.
type RemoteError struct {
	Status  int
	Message string
}

// Error implements the error interface.
func (e *RemoteError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("greeting backend returned status %d", e.Status)
	}
	return fmt.Sprintf("greeting backend returned status %d: %s", e.Status, e.Message)
}

// Client is the HTTP binding to a remote greeting backend.
type Client struct {
	endpoint   string
	httpClient *http.Client
	timeout    time.Duration
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithTimeout bounds every call. Zero means no timeout.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		c.timeout = d
	}
}

// NewClient creates a binding for the backend at endpoint (scheme://host[:port]).
func NewClient(endpoint string, opts ...ClientOption) *Client {
	c := &Client{
		endpoint:   strings.TrimRight(strings.TrimSpace(endpoint), "/"),
		httpClient: http.DefaultClient,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Endpoint returns the configured backend base URL.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Greet calls the remote backend.
func (c *Client) Greet(ctx context.Context, name string) (string, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	body, err := json.Marshal(GreetRequest{Name: name})
	if err != nil {
		return "", fmt.Errorf("encoding greet request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+GreetPath, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("building greet request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("calling greeting backend: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("reading greet response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var payload struct {
			Error string `json:"error"`
		}
		_ = json.Unmarshal(data, &payload)
		return "", &RemoteError{Status: resp.StatusCode, Message: payload.Error}
	}

	var out GreetResponse
	if err := json.Unmarshal(data, &out); err != nil {
		return "", fmt.Errorf("decoding greet response: %w", err)
	}
	return out.Greeting, nil
}
