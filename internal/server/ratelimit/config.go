package ratelimit

import (
	"net/http"
	"strconv"
	"strings"
	"time"
)

// EndpointConfig is the limit for one route. Path ending in "/" is a prefix;
// Method may be "*" for every method.
type EndpointConfig struct {
	Path   string
	Method string
	Limit  int           // Requests per window; zero or less is unlimited
	Window time.Duration // Refill period for Limit tokens
	Burst  int           // Bucket capacity; defaults to Limit
}

// Environment variables read by LoadConfig.
const (
	EnvEnabled         = "FYP_RATE_LIMIT_ENABLED"
	EnvDefaultLimit    = "FYP_RATE_LIMIT_DEFAULT_LIMIT"
	EnvDefaultWindow   = "FYP_RATE_LIMIT_DEFAULT_WINDOW"
	EnvCleanupInterval = "FYP_RATE_LIMIT_CLEANUP_INTERVAL"
	EnvWhitelist       = "FYP_RATE_LIMIT_WHITELIST"
	EnvBlacklist       = "FYP_RATE_LIMIT_BLACKLIST"
)

// LoadConfig builds the limiter configuration from environment lookups.
// Unparseable values fall back to the defaults.
func LoadConfig(getenv func(string) string) *Config {
	env := envReader(getenv)
	if !env.boolean(EnvEnabled, true) {
		return &Config{Enabled: false}
	}

	return &Config{
		Enabled:         true,
		DefaultLimit:    env.integer(EnvDefaultLimit, 600),
		DefaultWindow:   env.duration(EnvDefaultWindow, time.Minute),
		CleanupInterval: env.duration(EnvCleanupInterval, 5*time.Minute),
		Whitelist:       parseIPList(getenv(EnvWhitelist)),
		Blacklist:       parseIPList(getenv(EnvBlacklist)),
		EndpointConfigs: DefaultEndpointConfigs(),
	}
}

// DefaultEndpointConfigs returns the per-route limits. Routes not listed use
// the default limit.
func DefaultEndpointConfigs() []EndpointConfig {
	return []EndpointConfig{
		// scoring the whole catalog
		{Path: "/api/recommendations", Method: http.MethodPost, Limit: 60, Window: time.Minute, Burst: 10},

		{Path: "/api/select_topic", Method: http.MethodPost, Limit: 30, Window: time.Minute, Burst: 5},
		{Path: "/api/selections", Method: http.MethodDelete, Limit: 5, Window: time.Minute, Burst: 1},
		{Path: "/api/history", Method: http.MethodDelete, Limit: 5, Window: time.Minute, Burst: 1},

		{Path: "/api/students", Method: http.MethodPost, Limit: 100, Window: time.Minute, Burst: 10},
		{Path: "/api/students/", Method: anyMethod, Limit: 300, Window: time.Minute, Burst: 30},
		{Path: "/api/students/", Method: http.MethodPut, Limit: 100, Window: time.Minute, Burst: 10},
		{Path: "/api/students/", Method: http.MethodDelete, Limit: 100, Window: time.Minute, Burst: 10},
	}
}

type envReader func(string) string

func (r envReader) integer(key string, def int) int {
	if v, err := strconv.Atoi(strings.TrimSpace(r(key))); err == nil {
		return v
	}
	return def
}

func (r envReader) boolean(key string, def bool) bool {
	if v, err := strconv.ParseBool(strings.TrimSpace(r(key))); err == nil {
		return v
	}
	return def
}

func (r envReader) duration(key string, def time.Duration) time.Duration {
	if v, err := time.ParseDuration(strings.TrimSpace(r(key))); err == nil {
		return v
	}
	return def
}

// parseIPList splits a comma-separated client list into a set.
func parseIPList(list string) map[string]bool {
	result := make(map[string]bool)
	for _, ip := range strings.Split(list, ",") {
		if ip = strings.TrimSpace(ip); ip != "" {
			result[ip] = true
		}
	}
	return result
}
