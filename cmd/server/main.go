package main

import (
	"context"
	"log"
	"time"

	"hello-ai-ui/internal/adapter/api"
	"hello-ai-ui/internal/adapter/client"
	"hello-ai-ui/internal/adapter/store"
	"hello-ai-ui/internal/config"
	"hello-ai-ui/internal/domain/repository"
	"hello-ai-ui/internal/usecase"

	"github.com/redis/go-redis/v9"
)

func main() {
	cfg, err := config.Load(".env.dev")
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	// Redis for relay usage counters (optional)
	var usage repository.UsageRecorder
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr: cfg.RedisAddr,
			DB:   cfg.RedisDB,
		})
		pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := rdb.Ping(pingCtx).Err(); err != nil {
			log.Printf("[USAGE] redis at %s unreachable, counters will fail until it is up: %v", cfg.RedisAddr, err)
		}
		cancel()
		usage = store.NewRedisUsage(rdb)
	}

	backend := client.NewBackendClient(cfg.BackendURL)
	relay := usecase.NewRelay(backend, usage)

	app := api.NewApp()
	handler := api.NewRelayHandler(relay)
	api.SetupRouter(app, handler, cfg)

	log.Printf("hello-ai-ui relaying to %s on port %s", cfg.BackendURL, cfg.Port)
	log.Fatal(app.Listen(":" + cfg.Port))
}
