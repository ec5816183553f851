package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// TokenSource hands out the persisted bearer token and drops it when the
// backend rejects it.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
	ClearToken(ctx context.Context) error
}

// Option configures an HTTPClient.
type Option func(*HTTPClient)

// WithHTTPDoer replaces the underlying *http.Client. The client is copied,
// so later options never change the caller's value.
func WithHTTPDoer(hc *http.Client) Option {
	return func(c *HTTPClient) {
		cp := *hc
		c.http = &cp
	}
}

// WithTimeout bounds every request made without its own context deadline.
func WithTimeout(d time.Duration) Option {
	return func(c *HTTPClient) { c.http.Timeout = d }
}

// RequestOption adjusts a single request.
type RequestOption func(*requestOptions)

type requestOptions struct {
	token    string
	hasToken bool
	headers  map[string]string
}

// WithToken sends t as the bearer token instead of asking the TokenSource.
func WithToken(t string) RequestOption {
	return func(o *requestOptions) {
		o.token = t
		o.hasToken = true
	}
}

// WithHeader sets an extra request header. It wins over the defaults.
func WithHeader(key, value string) RequestOption {
	return func(o *requestOptions) {
		if o.headers == nil {
			o.headers = map[string]string{}
		}
		o.headers[key] = value
	}
}

// HTTPClient is the JSON transport to the studio backend. It is safe for
// concurrent use. It performs no retries.
type HTTPClient struct {
	baseURL string
	tokens  TokenSource
	http    *http.Client
}

// NewHTTPClient returns a client for baseURL. tokens may be nil, in which
// case only WithToken attaches credentials.
func NewHTTPClient(baseURL string, tokens TokenSource, opts ...Option) *HTTPClient {
	c := &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		tokens:  tokens,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// UseTokens replaces the TokenSource. Call it before the client is shared
// between goroutines.
func (c *HTTPClient) UseTokens(tokens TokenSource) {
	c.tokens = tokens
}

func (c *HTTPClient) BaseURL() string {
	return c.baseURL
}

func (c *HTTPClient) url(path string) string {
	if strings.HasPrefix(path, "http") {
		return path
	}
	return c.baseURL + path
}

// Do sends body (JSON encoded, nil for none) and decodes a 2xx reply into
// out (nil to discard). Non-2xx replies come back as *APIError; transport
// failures wrap ErrUnavailable.
func (c *HTTPClient) Do(ctx context.Context, method, path string, body, out any, opts ...RequestOption) error {
	var ro requestOptions
	for _, o := range opts {
		o(&ro)
	}

	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.url(path), reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	token := ro.token
	if !ro.hasToken && c.tokens != nil {
		if token, err = c.tokens.Token(ctx); err != nil {
			return fmt.Errorf("load token: %w", err)
		}
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for k, v := range ro.headers {
		req.Header.Set(k, v)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return unavailable(err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return unavailable(err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := decodeError(resp.StatusCode, raw)
		if apiErr.TokenInvalid() && c.tokens != nil {
			if cerr := c.tokens.ClearToken(ctx); cerr != nil {
				return errors.Join(apiErr, fmt.Errorf("clear token: %w", cerr))
			}
		}
		return apiErr
	}

	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func decodeError(status int, raw []byte) *APIError {
	var body struct {
		Message string `json:"message"`
		Error   string `json:"error"`
		Code    string `json:"code"`
	}
	_ = json.Unmarshal(raw, &body)

	msg := body.Message
	if msg == "" {
		msg = body.Error
	}
	if msg == "" {
		msg = DefaultErrorMessage
	}
	return &APIError{Status: status, Code: body.Code, Message: msg}
}

func (c *HTTPClient) Get(ctx context.Context, path string, out any, opts ...RequestOption) error {
	return c.Do(ctx, http.MethodGet, path, nil, out, opts...)
}

func (c *HTTPClient) Post(ctx context.Context, path string, body, out any, opts ...RequestOption) error {
	return c.Do(ctx, http.MethodPost, path, body, out, opts...)
}

func (c *HTTPClient) Put(ctx context.Context, path string, body, out any, opts ...RequestOption) error {
	return c.Do(ctx, http.MethodPut, path, body, out, opts...)
}

func (c *HTTPClient) Delete(ctx context.Context, path string, out any, opts ...RequestOption) error {
	return c.Do(ctx, http.MethodDelete, path, nil, out, opts...)
}
