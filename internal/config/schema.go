package config

// Config is the top-level YAML structure for the service.
type Config struct {
	Server    ServerConf    `yaml:"server"`
	Graph     GraphConf     `yaml:"graph"`
	Solver    SolverConf    `yaml:"solver"`
	Cache     CacheConf     `yaml:"cache"`
	RateLimit RateLimitConf `yaml:"rate_limit"`
}

// ServerConf holds the HTTP listener settings.
type ServerConf struct {
	Addr           string `yaml:"addr"`
	ReadTimeoutMs  int    `yaml:"read_timeout_ms"`
	WriteTimeoutMs int    `yaml:"write_timeout_ms"`
	IdleTimeoutMs  int    `yaml:"idle_timeout_ms"`
}

// GraphConf points at the graph definition file and selects the solver's
// heuristic. Supported heuristics: "none" (plain Dijkstra) and "euclidean"
// (straight-line distance over node positions).
type GraphConf struct {
	Path      string `yaml:"path"`
	Heuristic string `yaml:"heuristic"`
}

// SolverConf holds per-solve execution limits.
type SolverConf struct {
	TimeoutMs int `yaml:"timeout_ms"`
}

// CacheConf bounds the query result cache.
type CacheConf struct {
	Capacity int `yaml:"capacity"`
}

// RateLimitConf is the per-requester token budget: Requests tokens refill
// evenly over WindowSeconds, with at most Burst accumulated.
type RateLimitConf struct {
	Requests      int `yaml:"requests"`
	WindowSeconds int `yaml:"window_seconds"`
	Burst         int `yaml:"burst"`
}
