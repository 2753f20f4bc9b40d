package client

import (
	"context"
	"io"
	"net/http"
)

// Client is the request pipeline used by the services layer.
type Client interface {
	// Do sends a JSON request. body may be nil; out may be nil when the
	// response body is not needed. The stored bearer token is attached
	// automatically.
	Do(ctx context.Context, method, path string, body any, out any) error
	// DoWithHeaders sends body as-is with exactly the given headers. No
	// Authorization or Content-Type header is injected.
	DoWithHeaders(ctx context.Context, method, path string, body io.Reader, headers http.Header, out any) error
}

// TokenSource supplies the bearer token read before every request.
// An empty token means no Authorization header is sent.
type TokenSource interface {
	Get(ctx context.Context) (string, error)
}
