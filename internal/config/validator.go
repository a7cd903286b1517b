package config

import (
	"fmt"
	"strings"
)

// Validate checks the config for:
//   - A graph definition path (required)
//   - A known heuristic name
//   - Positive limits where zero would make the service useless
func Validate(cfg *Config) error {
	var errs []string

	if cfg.Graph.Path == "" {
		errs = append(errs, "graph.path is required")
	}
	switch cfg.Graph.Heuristic {
	case "none", "euclidean":
	default:
		errs = append(errs, fmt.Sprintf("graph.heuristic: unknown heuristic %q (want none or euclidean)", cfg.Graph.Heuristic))
	}
	if cfg.Solver.TimeoutMs <= 0 {
		errs = append(errs, "solver.timeout_ms must be positive")
	}
	if cfg.Cache.Capacity <= 0 {
		errs = append(errs, "cache.capacity must be positive")
	}
	if cfg.RateLimit.Requests <= 0 {
		errs = append(errs, "rate_limit.requests must be positive")
	}
	if cfg.RateLimit.WindowSeconds <= 0 {
		errs = append(errs, "rate_limit.window_seconds must be positive")
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation errors:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}
