package mcpserver

import (
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/erraggy/oasgen/config"
)

// serverConfig holds all configurable MCP server defaults.
// Loaded once at startup from environment variables via loadConfig().
type serverConfig struct {
	// ConfigFile is the project configuration used when a tool call
	// names none.
	ConfigFile string

	// Generator cache settings.
	CacheEnabled bool
	CacheTTL     time.Duration

	// List tool defaults.
	ListLimit int
	MaxLimit  int

	// MaxInlineSize caps documents returned inline instead of written to a file.
	MaxInlineSize int
}

// cfg is the active server configuration, initialized at package load time.
var cfg = loadConfig()

// loadConfig reads configuration from OASGEN_MCP_* environment variables.
// Invalid values log a warning and fall back to the hardcoded default.
func loadConfig() *serverConfig {
	return &serverConfig{
		ConfigFile:    envString("OASGEN_MCP_CONFIG", config.DefaultFileName),
		CacheEnabled:  envBool("OASGEN_MCP_CACHE_ENABLED", true),
		CacheTTL:      envDuration("OASGEN_MCP_CACHE_TTL", 30*time.Second),
		ListLimit:     envInt("OASGEN_MCP_LIST_LIMIT", 100),
		MaxLimit:      envInt("OASGEN_MCP_MAX_LIMIT", 1000),
		MaxInlineSize: envInt("OASGEN_MCP_MAX_INLINE_SIZE", 10*1024*1024),
	}
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		slog.Warn("invalid bool env var, using default", "key", key, "value", v, "default", fallback) //nolint:gosec // G706: values are structured log fields, not format strings
		return fallback
	}
	return b
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		slog.Warn("invalid int env var, using default", "key", key, "value", v, "default", fallback) //nolint:gosec // G706: values are structured log fields, not format strings
		return fallback
	}
	return n
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		slog.Warn("invalid duration env var, using default", "key", key, "value", v, "default", fallback) //nolint:gosec // G706: values are structured log fields, not format strings
		return fallback
	}
	return d
}
