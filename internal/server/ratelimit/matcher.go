package ratelimit

import (
	"net/http"
	"strings"
)

// unlimited lists GET paths that are never throttled.
var unlimited = map[string]bool{
	"/api/health": true,
	"/metrics":    true,
}

// anyMethod in EndpointConfig.Method matches every method.
const anyMethod = "*"

// MatchEndpoint returns the most specific endpoint configuration for a request.
// An exact path wins over a prefix ("/api/students/" covers "/api/students/S1"),
// a longer prefix wins over a shorter one, and a configured method wins over
// anyMethod. Unlimited paths get a zero-limit config; no match returns nil.
func MatchEndpoint(path, method string, configs []EndpointConfig) *EndpointConfig {
	if method == http.MethodGet && unlimited[path] {
		return &EndpointConfig{Path: path, Method: method}
	}

	var best *EndpointConfig
	bestScore := -1
	for i := range configs {
		cfg := &configs[i]
		if cfg.Method != method && cfg.Method != anyMethod {
			continue
		}

		var score int
		switch {
		case cfg.Path == path:
			score = 2 * (len(cfg.Path) + 1)
		case strings.HasSuffix(cfg.Path, "/") && strings.HasPrefix(path, cfg.Path):
			score = 2 * len(cfg.Path)
		default:
			continue
		}
		if cfg.Method == method {
			score++
		}
		if score > bestScore {
			best, bestScore = cfg, score
		}
	}
	return best
}
