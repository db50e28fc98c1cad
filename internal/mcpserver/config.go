package mcpserver

import (
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/erraggy/oasgen/generator"
)

// serverConfig holds all configurable MCP server defaults.
// Loaded once at startup from environment variables via loadConfig().
type serverConfig struct {
	// Cache settings.
	CacheEnabled       bool
	CacheMaxSize       int
	CacheFileTTL       time.Duration
	CacheURLTTL        time.Duration
	CacheContentTTL    time.Duration
	CacheSweepInterval time.Duration

	// Generate tool defaults.
	Flavors    []generator.Flavor
	Strict     bool
	NoWarnings bool
	InferTypes bool

	// Inspect tool defaults.
	InspectLimit int
	MaxLimit     int

	// Input limits.
	MaxInlineSize   int64
	AllowPrivateIPs bool
}

// cfg is the active server configuration, initialized at package load time.
var cfg = loadConfig()

// loadConfig reads configuration from OASGEN_* environment variables.
// Invalid values log a warning and fall back to the hardcoded default.
func loadConfig() *serverConfig {
	return &serverConfig{
		CacheEnabled:       envBool("OASGEN_CACHE_ENABLED", true),
		CacheMaxSize:       envInt("OASGEN_CACHE_MAX_SIZE", 10),
		CacheFileTTL:       envDuration("OASGEN_CACHE_FILE_TTL", 15*time.Minute),
		CacheURLTTL:        envDuration("OASGEN_CACHE_URL_TTL", 5*time.Minute),
		CacheContentTTL:    envDuration("OASGEN_CACHE_CONTENT_TTL", 15*time.Minute),
		CacheSweepInterval: envDuration("OASGEN_CACHE_SWEEP_INTERVAL", 60*time.Second),
		Flavors:            envFlavors("OASGEN_FLAVORS"),
		Strict:             envBool("OASGEN_STRICT", false),
		NoWarnings:         envBool("OASGEN_NO_WARNINGS", false),
		InferTypes:         envBool("OASGEN_INFER_TYPES", false),
		InspectLimit:       envInt("OASGEN_INSPECT_LIMIT", 100),
		MaxLimit:           envInt("OASGEN_MAX_LIMIT", 1000),
		MaxInlineSize:      int64(envInt("OASGEN_MAX_INLINE_SIZE", 10*1024*1024)),
		AllowPrivateIPs:    envBool("OASGEN_ALLOW_PRIVATE_IPS", false),
	}
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

// envFlavors parses a comma-separated flavor list. An empty or invalid
// value means the generator default.
func envFlavors(key string) []generator.Flavor {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	flavors, err := generator.ParseFlavors(v)
	if err != nil {
		slog.Warn("invalid flavor env var, ignoring", "key", key, "value", v, "error", err) //nolint:gosec // G706: values are structured log fields, not format strings
		return nil
	}
	return flavors
}
