// Package config resolves process configuration once at start-up.
package config

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"hello-ai-ui/internal/domain/entity"
)

type Config struct {
	BackendURL string
	Port       string
	AppVersion string
	Env        string

	// RedisAddr enables relay usage counters when set.
	RedisAddr string
	RedisDB   int
}

// Load reads envFile (if present) into the environment and builds a Config.
// Variables already set in the process environment win over the file.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			log.Printf("Warning: %s file not found, using system environment variables", envFile)
		}
	}
	return FromEnv()
}

// FromEnv builds a Config from the process environment. A missing or
// relative BACKEND_URL is an error.
func FromEnv() (*Config, error) {
	backend, err := parseBackendURL(os.Getenv("BACKEND_URL"))
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		BackendURL: backend,
		Port:       getenv("PORT", "3000"),
		AppVersion: getenv("APP_VERSION", "dev"),
		Env:        getenv("ENV", "development"),
		RedisAddr:  os.Getenv("REDIS_ADDR"),
	}

	if db := os.Getenv("REDIS_DB"); db != "" {
		n, err := strconv.Atoi(db)
		if err != nil {
			return nil, fmt.Errorf("REDIS_DB must be an integer: %w", err)
		}
		cfg.RedisDB = n
	}
	return cfg, nil
}

func parseBackendURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", entity.ErrMissingBackendURL
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %v", entity.ErrMissingBackendURL, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "", fmt.Errorf("%w: %q is not an absolute http(s) URL", entity.ErrMissingBackendURL, raw)
	}
	return strings.TrimRight(raw, "/"), nil
}

func getenv(key, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}
