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

	"github.com/dmitrijs2005/familyaccount/internal/common"
	"github.com/dmitrijs2005/familyaccount/internal/logging"
)

const DefaultTimeout = 15 * time.Second

// maxErrorBody bounds how much of a failed response is read when looking
// for a message field.
const maxErrorBody = 64 << 10

type HTTPClient struct {
	baseURL string
	tokens  TokenSource
	http    *http.Client
	logger  logging.Logger
}

type Option func(*HTTPClient)

// WithHTTPClient uses a copy of hc as the underlying client. The copy gets
// the timeout given to NewHTTPClient; hc itself is left untouched.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *HTTPClient) {
		cp := *hc
		c.http = &cp
	}
}

func WithLogger(l logging.Logger) Option {
	return func(c *HTTPClient) { c.logger = l }
}

// NewHTTPClient builds a client rooted at baseURL. Trailing slashes of
// baseURL are dropped. A non-positive timeout selects DefaultTimeout.
func NewHTTPClient(baseURL string, timeout time.Duration, tokens TokenSource, opts ...Option) *HTTPClient {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	c := &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		tokens:  tokens,
		http:    &http.Client{},
		logger:  logging.NewNop(),
	}
	for _, o := range opts {
		o(c)
	}
	c.http.Timeout = timeout
	return c
}

func (c *HTTPClient) BaseURL() string {
	return c.baseURL
}

func (c *HTTPClient) url(path string) string {
	return c.baseURL + "/" + strings.TrimLeft(path, "/")
}

func (c *HTTPClient) Do(ctx context.Context, method, path string, body any, out any) error {
	var rdr io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		rdr = bytes.NewReader(buf)
	}

	h := http.Header{}
	h.Set("Content-Type", "application/json")
	h.Set("Accept", "application/json")

	token, err := c.tokens.Get(ctx)
	if err != nil {
		return fmt.Errorf("read token: %w", err)
	}
	if token != "" {
		h.Set(common.AuthorizationHeader, common.BearerPrefix+token)
	}

	return c.send(ctx, method, path, rdr, h, out)
}

func (c *HTTPClient) DoWithHeaders(ctx context.Context, method, path string, body io.Reader, headers http.Header, out any) error {
	return c.send(ctx, method, path, body, headers.Clone(), out)
}

func (c *HTTPClient) send(ctx context.Context, method, path string, body io.Reader, h http.Header, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.url(path), body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if h != nil {
		req.Header = h
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn(ctx, "request failed", "method", method, "path", path, "error", err)
		return &RequestError{Err: fmt.Errorf("%w: %w", ErrUnavailable, err)}
	}
	defer resp.Body.Close()

	c.logger.Debug(ctx, "request done", "method", method, "path", path, "status", resp.StatusCode)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return responseError(resp)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func responseError(resp *http.Response) error {
	e := &RequestError{StatusCode: resp.StatusCode}

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	var payload struct {
		Message string `json:"message"`
	}
	if json.Unmarshal(raw, &payload) == nil && payload.Message != "" {
		e.Message = payload.Message
	} else {
		e.Message = http.StatusText(resp.StatusCode)
	}
	return e
}
