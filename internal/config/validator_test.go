package config

import (
	"strings"
	"testing"
)

func validConfig() *Config {
	cfg := &Config{}
	cfg.Graph.Path = "configs/graph.yaml"
	applyDefaults(cfg)
	return cfg
}

func TestValidate_DefaultedConfigPasses(t *testing.T) {
	if err := Validate(validConfig()); err != nil {
		t.Fatalf("defaulted config should validate: %v", err)
	}
}

func TestValidate_RejectsMissingGraphPath(t *testing.T) {
	cfg := validConfig()
	cfg.Graph.Path = ""
	err := Validate(cfg)
	if err == nil || !strings.Contains(err.Error(), "graph.path is required") {
		t.Fatalf("want graph.path error, got %v", err)
	}
}

func TestValidate_RejectsUnknownHeuristic(t *testing.T) {
	cfg := validConfig()
	cfg.Graph.Heuristic = "manhattan"
	if err := Validate(cfg); err == nil {
		t.Fatal("unknown heuristic should fail validation")
	}
}

func TestValidate_RejectsNonPositiveLimits(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"zero solver timeout", func(c *Config) { c.Solver.TimeoutMs = 0 }, "solver.timeout_ms must be positive"},
		{"negative solver timeout", func(c *Config) { c.Solver.TimeoutMs = -1 }, "solver.timeout_ms must be positive"},
		{"zero cache capacity", func(c *Config) { c.Cache.Capacity = 0 }, "cache.capacity must be positive"},
		{"zero rate requests", func(c *Config) { c.RateLimit.Requests = 0 }, "rate_limit.requests must be positive"},
		{"negative rate window", func(c *Config) { c.RateLimit.WindowSeconds = -5 }, "rate_limit.window_seconds must be positive"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := validConfig()
			tc.mutate(cfg)
			err := Validate(cfg)
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("want %q in error, got %v", tc.want, err)
			}
		})
	}
}
