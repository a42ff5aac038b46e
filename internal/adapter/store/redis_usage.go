package store

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/redis/go-redis/v9"

	"hello-ai-ui/internal/domain/entity"
)

const (
	usageRoutesKey = "usage:routes"
	usagePrefix    = "usage:route:"
)

// RedisUsage keeps one hash of counters per relay route. Only counts are
// stored, never prompts or answers.
type RedisUsage struct {
	client *redis.Client
}

func NewRedisUsage(client *redis.Client) *RedisUsage {
	return &RedisUsage{client: client}
}

func (r *RedisUsage) Record(ctx context.Context, route string, status int, bytes int64) error {
	key := usagePrefix + route
	pipe := r.client.TxPipeline()
	pipe.SAdd(ctx, usageRoutesKey, route)
	pipe.HIncrBy(ctx, key, "requests", 1)
	pipe.HIncrBy(ctx, key, "bytes", bytes)
	pipe.HIncrBy(ctx, key, "status:"+strconv.Itoa(status), 1)
	_, err := pipe.Exec(ctx)
	return err
}

func (r *RedisUsage) Snapshot(ctx context.Context) (map[string]entity.RouteUsage, error) {
	routes, err := r.client.SMembers(ctx, usageRoutesKey).Result()
	if err != nil {
		return nil, fmt.Errorf("listing routes: %w", err)
	}

	out := make(map[string]entity.RouteUsage, len(routes))
	for _, route := range routes {
		fields, err := r.client.HGetAll(ctx, usagePrefix+route).Result()
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", route, err)
		}
		out[route] = parseUsage(fields)
	}
	return out, nil
}

// parseUsage skips fields it cannot read rather than failing the snapshot.
func parseUsage(fields map[string]string) entity.RouteUsage {
	u := entity.RouteUsage{Statuses: map[int]int64{}}
	for k, v := range fields {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			continue
		}
		switch {
		case k == "requests":
			u.Requests = n
		case k == "bytes":
			u.Bytes = n
		case strings.HasPrefix(k, "status:"):
			code, err := strconv.Atoi(strings.TrimPrefix(k, "status:"))
			if err != nil {
				continue
			}
			u.Statuses[code] = n
		}
	}
	return u
}
