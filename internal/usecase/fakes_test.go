package usecase

import (
	"context"
	"io"
	"sync"

	"hello-ai-ui/internal/domain/entity"
)

// fakeUpstream implements repository.Upstream for testing
type fakeUpstream struct {
	mu    sync.Mutex
	calls []string

	chat   func(prompt string) (*entity.RelayResult, error)
	qa     func(query string) (*entity.RelayResult, error)
	stream func(ctx context.Context, prompt string) (*entity.StreamResult, error)
}

func (f *fakeUpstream) called(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, name)
}

func (f *fakeUpstream) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func (f *fakeUpstream) Chat(ctx context.Context, prompt string) (*entity.RelayResult, error) {
	f.called("chat:" + prompt)
	if f.chat == nil {
		return &entity.RelayResult{Status: 200, Body: []byte(`{"reply":""}`)}, nil
	}
	return f.chat(prompt)
}

func (f *fakeUpstream) QA(ctx context.Context, query string) (*entity.RelayResult, error) {
	f.called("qa:" + query)
	if f.qa == nil {
		return &entity.RelayResult{Status: 200, Body: []byte(`{"answer":""}`)}, nil
	}
	return f.qa(query)
}

func (f *fakeUpstream) ChatStream(ctx context.Context, prompt string) (*entity.StreamResult, error) {
	f.called("stream:" + prompt)
	return f.stream(ctx, prompt)
}

// chunkReader returns one chunk per Read call.
type chunkReader struct {
	chunks [][]byte
	closed bool
}

func (c *chunkReader) Read(p []byte) (int, error) {
	if len(c.chunks) == 0 {
		return 0, io.EOF
	}
	n := copy(p, c.chunks[0])
	c.chunks[0] = c.chunks[0][n:]
	if len(c.chunks[0]) == 0 {
		c.chunks = c.chunks[1:]
	}
	return n, nil
}

func (c *chunkReader) Close() error {
	c.closed = true
	return nil
}

func chunks(parts ...string) *chunkReader {
	r := &chunkReader{}
	for _, p := range parts {
		r.chunks = append(r.chunks, []byte(p))
	}
	return r
}

type usageCall struct {
	route  string
	status int
	bytes  int64
}

// fakeUsage implements repository.UsageRecorder for testing
type fakeUsage struct {
	recorded chan usageCall
}

func newFakeUsage() *fakeUsage {
	return &fakeUsage{recorded: make(chan usageCall, 8)}
}

func (f *fakeUsage) Record(ctx context.Context, route string, status int, bytes int64) error {
	f.recorded <- usageCall{route: route, status: status, bytes: bytes}
	return nil
}

func (f *fakeUsage) Snapshot(ctx context.Context) (map[string]entity.RouteUsage, error) {
	return map[string]entity.RouteUsage{"chat": {Requests: 1}}, nil
}
