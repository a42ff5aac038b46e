package repository

import (
	"context"
	"hello-ai-ui/internal/domain/entity"
)

// Upstream is anything that answers chat, QA and streaming chat over HTTP.
// The AI backend and this server's own /api surface have the same shape.
type Upstream interface {
	Chat(ctx context.Context, prompt string) (*entity.RelayResult, error)
	QA(ctx context.Context, query string) (*entity.RelayResult, error)
	ChatStream(ctx context.Context, prompt string) (*entity.StreamResult, error)
}

type UsageRecorder interface {
	Record(ctx context.Context, route string, status int, bytes int64) error
	Snapshot(ctx context.Context) (map[string]entity.RouteUsage, error)
}
