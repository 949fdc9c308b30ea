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

	"holidaze/internal/session"
)

// Client talks to the remote Holidaze API: JSON over HTTPS, bearer-token
// auth, {data, meta} on success and {errors:[{message}]} on failure. It
// reads the session store for the token but never writes it except on
// login, which is the store's job to broadcast.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
	store   *session.Store
}

// ErrorMessage is one entry of the remote error envelope.
type ErrorMessage struct {
	Message string `json:"message"`
}

// APIError is a non-2xx response, decoded.
type APIError struct {
	StatusCode int
	Errors     []ErrorMessage
}

func (e *APIError) Error() string {
	if len(e.Errors) > 0 && e.Errors[0].Message != "" {
		return e.Errors[0].Message
	}
	return fmt.Sprintf("api error: status %d", e.StatusCode)
}

// IsUnauthorized reports a stale or missing credential. Callers clear the
// session and prompt re-authentication when they see this.
func (e *APIError) IsUnauthorized() bool {
	return e.StatusCode == http.StatusUnauthorized
}

type envelope struct {
	Data json.RawMessage `json:"data"`
	Meta *Meta           `json:"meta"`
}

type errorEnvelope struct {
	Errors []ErrorMessage `json:"errors"`
}

func NewClient(baseURL, apiKey string, timeout time.Duration, store *session.Store) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		http:    &http.Client{Timeout: timeout},
		store:   store,
	}
}

// do performs one API call. body (when non-nil) is JSON-encoded; out
// (when non-nil) receives the decoded data field. A 204 carries no body
// and decodes nothing. Returns the meta field when the response has one.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) (*Meta, error) {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, err
	}

	if c.apiKey != "" {
		req.Header.Set("X-Noroff-API-Key", c.apiKey)
	}
	if token := c.store.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var env errorEnvelope
		if err := json.Unmarshal(raw, &env); err == nil {
			apiErr.Errors = env.Errors
		}
		return nil, apiErr
	}

	if resp.StatusCode == http.StatusNoContent || out == nil {
		return nil, nil
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return nil, fmt.Errorf("decode data: %w", err)
	}
	return env.Meta, nil
}
