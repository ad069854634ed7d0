package domain

import "time"

// Config is the effective service configuration, resolved once at startup
// and constant thereafter.
type Config struct {
	ListenAddr string

	MaxNodes    int
	MaxEdges    int
	MaxIDLength int

	CacheEnabled    bool
	CacheTTL        time.Duration
	CacheCapacity   int
	CacheEvictBatch int

	AllowedOrigins []string

	// Per-client request budgets, in requests per minute.
	RateLimitParse     int
	RateLimitAnonymous int
	RateLimitMetrics   int

	ShutdownGrace time.Duration
}

// DefaultConfig returns the configuration used when no config file is present.
func DefaultConfig() *Config {
	return &Config{
		ListenAddr:      ":8000",
		MaxNodes:        10_000,
		MaxEdges:        50_000,
		MaxIDLength:     256,
		CacheEnabled:    true,
		CacheTTL:        300 * time.Second,
		CacheCapacity:   1_000,
		CacheEvictBatch: 200,
		AllowedOrigins: []string{
			"http://localhost:3000",
			"http://localhost:5173",
			"http://127.0.0.1:3000",
			"http://127.0.0.1:5173",
		},
		RateLimitParse:     50,
		RateLimitAnonymous: 100,
		RateLimitMetrics:   20,
		ShutdownGrace:      10 * time.Second,
	}
}

// Limits projects the pipeline size bounds out of the config.
func (c *Config) Limits() Limits {
	return Limits{
		MaxNodes:    c.MaxNodes,
		MaxEdges:    c.MaxEdges,
		MaxIDLength: c.MaxIDLength,
	}
}
