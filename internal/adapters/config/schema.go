package config

// Flowfile represents the structure of the flowd.yaml configuration file.
// Every field is optional; absent fields keep their defaults.
type Flowfile struct {
	ListenAddr           string   `yaml:"listen_addr"`
	MaxNodes             int      `yaml:"max_nodes"`
	MaxEdges             int      `yaml:"max_edges"`
	MaxIDLength          int      `yaml:"max_id_length"`
	CacheEnabled         *bool    `yaml:"cache_enabled"`
	CacheTTLSeconds      int      `yaml:"cache_ttl_seconds"`
	CacheCapacity        int      `yaml:"cache_capacity"`
	CacheEvictBatch      int      `yaml:"cache_evict_batch"`
	AllowedOrigins       []string `yaml:"allowed_origins"`
	RateLimitParse       int      `yaml:"rate_limit_parse"`
	RateLimitAnonymous   int      `yaml:"rate_limit_anonymous"`
	RateLimitMetrics     int      `yaml:"rate_limit_metrics"`
	ShutdownGraceSeconds int      `yaml:"shutdown_grace_seconds"`
}
