package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds runtime configuration parsed from environment variables.
type Config struct {
	HTTPAddr        string
	CommerceAPIURL  string
	CommerceTimeout time.Duration
	ShutdownTimeout time.Duration
	DefaultCurrency string
	SessionTTL      time.Duration
	CartMirror      bool
	AllowedOrigins  []string
}

// FromEnv builds Config with defaults, overridden by environment variables.
func FromEnv() Config {
	return Config{
		HTTPAddr:        envOrDefault("HTTP_ADDR", ":8080"),
		CommerceAPIURL:  envOrDefault("COMMERCE_API_URL", "http://localhost:9000"),
		CommerceTimeout: envDuration("COMMERCE_TIMEOUT_SECONDS", 10*time.Second),
		ShutdownTimeout: envDuration("SHUTDOWN_TIMEOUT_SECONDS", 10*time.Second),
		DefaultCurrency: envOrDefault("DEFAULT_CURRENCY", "USD"),
		SessionTTL:      envDuration("SESSION_TTL_SECONDS", 3*time.Hour),
		CartMirror:      envBool("CART_MIRROR", false),
		AllowedOrigins:  envList("ALLOWED_ORIGINS"),
	}
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		seconds, err := strconv.Atoi(v)
		if err == nil {
			return time.Duration(seconds) * time.Second
		}
	}
	return def
}

func envBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		parsed, err := strconv.ParseBool(v)
		if err == nil {
			return parsed
		}
	}
	return def
}

func envList(key string) []string {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	var out []string
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
