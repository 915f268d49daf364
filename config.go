package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	_ "github.com/joho/godotenv/autoload"
)

// Config is the server's environment.
type Config struct {
	Port          string
	GinMode       string
	ContentPath   string
	FrameInterval time.Duration
	KeepAlive     time.Duration
	MaxSessions   int
}

func loadConfig() (Config, error) {
	cfg := Config{
		Port:        os.Getenv("PORT"),
		GinMode:     os.Getenv("GIN_MODE"),
		ContentPath: os.Getenv("CONTENT_PATH"),
	}
	if cfg.Port == "" {
		cfg.Port = "8080"
	}

	var err error
	if cfg.FrameInterval, err = durationEnv("FRAME_INTERVAL", 16*time.Millisecond); err != nil {
		return Config{}, err
	}
	if cfg.KeepAlive, err = durationEnv("SSE_KEEPALIVE", 15*time.Second); err != nil {
		return Config{}, err
	}

	cfg.MaxSessions = 500
	if v := os.Getenv("MAX_SESSIONS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return Config{}, fmt.Errorf("invalid MAX_SESSIONS %q", v)
		}
		cfg.MaxSessions = n
	}
	return cfg, nil
}

func durationEnv(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("invalid %s: must be positive", key)
	}
	return d, nil
}
