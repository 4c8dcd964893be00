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

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// HTTPClient is the REST implementation of Client. It owns the base URL and
// default headers, attaches the bearer token from the TokenSource to every
// request, and maps failures onto the package error taxonomy. It never
// retries; that is cache-layer policy.
type HTTPClient struct {
	baseURL  string
	tokens   TokenSource
	http     *http.Client
	validate *validator.Validate
}

// NewHTTPClient builds a client for the API at baseURL (e.g.
// "http://localhost:8000"). tokens may be nil for an unauthenticated client.
func NewHTTPClient(baseURL string, tokens TokenSource) *HTTPClient {
	return &HTTPClient{
		baseURL:  strings.TrimRight(baseURL, "/"),
		tokens:   tokens,
		http:     &http.Client{},
		validate: validator.New(),
	}
}

// errorBody is the server's error envelope. FastAPI-style services put a
// string (or a structured list, for validation errors) under "detail".
type errorBody struct {
	Detail json.RawMessage `json:"detail"`
}

// do performs one request/response cycle: marshal body, attach headers and
// token, send, and decode the response into out (unless out is nil).
func (c *HTTPClient) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	op := method + " " + path

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshaling %s request: %w", op, err)
		}
		reader = bytes.NewReader(data)
	}

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return fmt.Errorf("creating %s request: %w", op, err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-Id", uuid.NewString())
	if c.tokens != nil {
		if token := c.tokens.AccessToken(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &TransportError{Op: op, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{Status: resp.StatusCode, Message: serverMessage(data)}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return &TransportError{Op: op, Err: fmt.Errorf("decoding response: %w", err)}
	}
	return nil
}

// serverMessage extracts the "detail" field from an error body, if the body
// is JSON and the field is a plain string. Anything else yields "".
func serverMessage(data []byte) string {
	var eb errorBody
	if err := json.Unmarshal(data, &eb); err != nil {
		return ""
	}
	var msg string
	if err := json.Unmarshal(eb.Detail, &msg); err != nil {
		return ""
	}
	return msg
}

// checkRequest runs struct-tag validation on an outgoing payload and wraps
// failures so callers can errors.As for *ValidationError.
func (c *HTTPClient) checkRequest(req any) error {
	if err := c.validate.Struct(req); err != nil {
		return &ValidationError{Err: err}
	}
	return nil
}

// pagination normalizes skip/limit to the server defaults.
func pagination(skip, limit int) url.Values {
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 {
		limit = 10
	}
	q := url.Values{}
	q.Set("skip", fmt.Sprintf("%d", skip))
	q.Set("limit", fmt.Sprintf("%d", limit))
	return q
}

// Health reports service liveness. No auth required.
func (c *HTTPClient) Health(ctx context.Context) (*Health, error) {
	var h Health
	if err := c.do(ctx, http.MethodGet, "/health", nil, nil, &h); err != nil {
		return nil, err
	}
	return &h, nil
}

var _ Client = (*HTTPClient)(nil)
