package services

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"sync"
)

// call records one request seen by fakeClient.
type call struct {
	Method  string
	Path    string
	Body    any
	Raw     []byte
	Headers http.Header
}

// fakeClient implements client.Client. Responses are keyed by path; the value
// is JSON-encoded into out.
type fakeClient struct {
	mu    sync.Mutex
	calls []call

	resp map[string]any
	errs map[string]error

	// block, when set, is waited on before answering.
	block chan struct{}
}

func newFakeClient() *fakeClient {
	return &fakeClient{resp: map[string]any{}, errs: map[string]error{}}
}

func (f *fakeClient) Do(ctx context.Context, method, path string, body any, out any) error {
	f.mu.Lock()
	f.calls = append(f.calls, call{Method: method, Path: path, Body: body})
	f.mu.Unlock()
	return f.answer(ctx, path, out)
}

func (f *fakeClient) DoWithHeaders(ctx context.Context, method, path string, body io.Reader, headers http.Header, out any) error {
	raw, _ := io.ReadAll(body)
	f.mu.Lock()
	f.calls = append(f.calls, call{Method: method, Path: path, Raw: raw, Headers: headers})
	f.mu.Unlock()
	return f.answer(ctx, path, out)
}

func (f *fakeClient) answer(ctx context.Context, path string, out any) error {
	if f.block != nil {
		select {
		case <-f.block:
		case <-ctx.Done():
		}
	}

	f.mu.Lock()
	err := f.errs[path]
	resp, ok := f.resp[path]
	f.mu.Unlock()

	if err != nil {
		return err
	}
	if ok && out != nil {
		b, _ := json.Marshal(resp)
		return json.Unmarshal(b, out)
	}
	return nil
}

func (f *fakeClient) Calls() []call {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]call(nil), f.calls...)
}
