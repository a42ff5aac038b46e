package client

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"hello-ai-ui/internal/domain/entity"
)

// Paths names the three endpoints an Upstream exposes.
type Paths struct {
	Chat       string
	ChatStream string
	QA         string
}

var (
	// BackendPaths are the AI backend's routes.
	BackendPaths = Paths{Chat: "/api/chat", ChatStream: "/chat/stream", QA: "/api/qa"}
	// RelayPaths are the routes this server exposes to its front-ends.
	RelayPaths = Paths{Chat: "/api/chat", ChatStream: "/api/chat/stream", QA: "/api/qa"}
)

// HTTPUpstream issues GET requests against a base URL. It never retries and
// sets no timeout of its own.
type HTTPUpstream struct {
	baseURL string
	paths   Paths
	client  *http.Client
}

func NewHTTPUpstream(baseURL string, paths Paths, httpClient *http.Client) *HTTPUpstream {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &HTTPUpstream{
		baseURL: strings.TrimRight(baseURL, "/"),
		paths:   paths,
		client:  httpClient,
	}
}

// NewBackendClient talks to the AI backend.
func NewBackendClient(baseURL string) *HTTPUpstream {
	return NewHTTPUpstream(baseURL, BackendPaths, nil)
}

// NewRelayClient talks to a running relay server.
func NewRelayClient(baseURL string) *HTTPUpstream {
	return NewHTTPUpstream(baseURL, RelayPaths, nil)
}

func (u *HTTPUpstream) Chat(ctx context.Context, prompt string) (*entity.RelayResult, error) {
	return u.fetch(ctx, u.paths.Chat, "prompt", prompt)
}

func (u *HTTPUpstream) QA(ctx context.Context, query string) (*entity.RelayResult, error) {
	return u.fetch(ctx, u.paths.QA, "query", query)
}

// ChatStream opens the streaming endpoint. The caller must close the body.
func (u *HTTPUpstream) ChatStream(ctx context.Context, prompt string) (*entity.StreamResult, error) {
	resp, err := u.get(ctx, u.paths.ChatStream, "prompt", prompt, "text/plain")
	if err != nil {
		return nil, err
	}
	return &entity.StreamResult{Status: resp.StatusCode, Body: resp.Body}, nil
}

// URL builds the outbound address for path with a single encoded parameter.
func (u *HTTPUpstream) URL(path, key, value string) string {
	return u.baseURL + path + "?" + key + "=" + url.QueryEscape(value)
}

func (u *HTTPUpstream) fetch(ctx context.Context, path, key, value string) (*entity.RelayResult, error) {
	resp, err := u.get(ctx, path, key, value, "application/json")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &entity.UpstreamError{URL: resp.Request.URL.String(), Err: fmt.Errorf("reading body: %w", err)}
	}
	return &entity.RelayResult{Status: resp.StatusCode, Body: body}, nil
}

func (u *HTTPUpstream) get(ctx context.Context, path, key, value, accept string) (*http.Response, error) {
	target := u.URL(path, key, value)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", accept)

	resp, err := u.client.Do(req)
	if err != nil {
		return nil, &entity.UpstreamError{URL: target, Err: err}
	}
	return resp, nil
}
