package usecase

import (
	"context"
	"io"
	"log"
	"sync"

	"hello-ai-ui/internal/domain/entity"
	"hello-ai-ui/internal/domain/repository"
)

// Route names used for usage accounting.
const (
	RouteChat       = "chat"
	RouteChatStream = "chat_stream"
	RouteQA         = "qa"
)

// Relay forwards front-end requests to the backend. Each call issues exactly
// one outbound request; nothing is cached or retried.
type Relay struct {
	backend repository.Upstream
	usage   repository.UsageRecorder
}

// NewRelay wires the backend. usage may be nil, which disables accounting.
func NewRelay(backend repository.Upstream, usage repository.UsageRecorder) *Relay {
	return &Relay{backend: backend, usage: usage}
}

func (u *Relay) Chat(ctx context.Context, prompt string) (*entity.RelayResult, error) {
	res, err := u.backend.Chat(ctx, prompt)
	if err != nil {
		return nil, err
	}
	u.record(RouteChat, res.Status, int64(len(res.Body)))
	return res, nil
}

// QA rejects an empty query before any outbound call is made.
func (u *Relay) QA(ctx context.Context, query string) (*entity.RelayResult, error) {
	if query == "" {
		return nil, entity.ErrMissingQuery
	}
	res, err := u.backend.QA(ctx, query)
	if err != nil {
		return nil, err
	}
	u.record(RouteQA, res.Status, int64(len(res.Body)))
	return res, nil
}

// ChatStream opens the backend stream. Usage is recorded once the caller
// closes the returned body.
func (u *Relay) ChatStream(ctx context.Context, prompt string) (*entity.StreamResult, error) {
	res, err := u.backend.ChatStream(ctx, prompt)
	if err != nil {
		return nil, err
	}
	if u.usage == nil {
		return res, nil
	}
	status := res.Status
	res.Body = &meteredBody{
		ReadCloser: res.Body,
		onClose:    func(n int64) { u.record(RouteChatStream, status, n) },
	}
	return res, nil
}

// Usage returns the recorded counters per route.
func (u *Relay) Usage(ctx context.Context) (map[string]entity.RouteUsage, error) {
	if u.usage == nil {
		return nil, entity.ErrStatsDisabled
	}
	return u.usage.Snapshot(ctx)
}

func (u *Relay) record(route string, status int, n int64) {
	if u.usage == nil {
		return
	}
	go func() {
		// The request context is gone by the time this runs.
		if err := u.usage.Record(context.Background(), route, status, n); err != nil {
			log.Printf("[USAGE] failed to record %s/%d: %v", route, status, err)
		}
	}()
}

// meteredBody counts bytes read and reports the total once on Close.
type meteredBody struct {
	io.ReadCloser
	n       int64
	once    sync.Once
	onClose func(int64)
}

func (m *meteredBody) Read(p []byte) (int, error) {
	n, err := m.ReadCloser.Read(p)
	m.n += int64(n)
	return n, err
}

func (m *meteredBody) Close() error {
	err := m.ReadCloser.Close()
	m.once.Do(func() { m.onClose(m.n) })
	return err
}
