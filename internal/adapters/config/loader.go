// Package config provides the configuration loader for flowd.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"go.trai.ch/flowd/internal/core/domain"
	"go.trai.ch/flowd/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// DefaultFileName is the config file flowd looks for when no path is given.
const DefaultFileName = "flowd.yaml"

// Loader implements ports.ConfigLoader using a YAML file.
type Loader struct {
	Logger ports.Logger
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger}
}

// Load reads the configuration file at path, overlays it on the defaults and
// validates the result. A missing file yields the defaults unchanged.
func (l *Loader) Load(path string) (*domain.Config, error) {
	if path == "" {
		path = DefaultFileName
	}

	cfg := domain.DefaultConfig()

	data, err := os.ReadFile(path) //nolint:gosec // Path is operator-controlled
	if errors.Is(err, fs.ErrNotExist) {
		l.Logger.Info(fmt.Sprintf("no config file at %s, using defaults", path))
		return cfg, nil
	}
	if err != nil {
		return nil, zerr.With(domain.ErrConfigReadFailed, "path", path)
	}

	var f Flowfile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, zerr.With(domain.ErrConfigParseFailed, "path", path)
	}

	apply(cfg, &f)

	if err := validate(cfg); err != nil {
		return nil, err
	}

	l.Logger.Info(fmt.Sprintf("loaded configuration from %s", path))
	return cfg, nil
}

// apply overlays the non-zero file values onto cfg.
func apply(cfg *domain.Config, f *Flowfile) {
	if f.ListenAddr != "" {
		cfg.ListenAddr = f.ListenAddr
	}
	if f.MaxNodes != 0 {
		cfg.MaxNodes = f.MaxNodes
	}
	if f.MaxEdges != 0 {
		cfg.MaxEdges = f.MaxEdges
	}
	if f.MaxIDLength != 0 {
		cfg.MaxIDLength = f.MaxIDLength
	}
	if f.CacheEnabled != nil {
		cfg.CacheEnabled = *f.CacheEnabled
	}
	if f.CacheTTLSeconds != 0 {
		cfg.CacheTTL = time.Duration(f.CacheTTLSeconds) * time.Second
	}
	if f.CacheCapacity != 0 {
		cfg.CacheCapacity = f.CacheCapacity
	}
	if f.CacheEvictBatch != 0 {
		cfg.CacheEvictBatch = f.CacheEvictBatch
	}
	if f.AllowedOrigins != nil {
		cfg.AllowedOrigins = f.AllowedOrigins
	}
	if f.RateLimitParse != 0 {
		cfg.RateLimitParse = f.RateLimitParse
	}
	if f.RateLimitAnonymous != 0 {
		cfg.RateLimitAnonymous = f.RateLimitAnonymous
	}
	if f.RateLimitMetrics != 0 {
		cfg.RateLimitMetrics = f.RateLimitMetrics
	}
	if f.ShutdownGraceSeconds != 0 {
		cfg.ShutdownGrace = time.Duration(f.ShutdownGraceSeconds) * time.Second
	}
}

func validate(cfg *domain.Config) error {
	checks := []struct {
		ok    bool
		field string
	}{
		{cfg.MaxNodes > 0, "max_nodes"},
		{cfg.MaxEdges > 0, "max_edges"},
		{cfg.MaxIDLength > 0, "max_id_length"},
		{cfg.CacheTTL > 0, "cache_ttl_seconds"},
		{cfg.CacheCapacity > 0, "cache_capacity"},
		{cfg.CacheEvictBatch > 0, "cache_evict_batch"},
		{cfg.CacheEvictBatch <= cfg.CacheCapacity, "cache_evict_batch"},
		{cfg.RateLimitParse > 0, "rate_limit_parse"},
		{cfg.RateLimitAnonymous > 0, "rate_limit_anonymous"},
		{cfg.RateLimitMetrics > 0, "rate_limit_metrics"},
	}

	for _, c := range checks {
		if !c.ok {
			return zerr.With(domain.ErrInvalidConfig, "field", c.field)
		}
	}
	return nil
}

// Snapshot renders the effective config back into its file representation.
// Used by tests to compare resolved configurations against golden files.
func Snapshot(cfg *domain.Config) Flowfile {
	enabled := cfg.CacheEnabled
	return Flowfile{
		ListenAddr:           cfg.ListenAddr,
		MaxNodes:             cfg.MaxNodes,
		MaxEdges:             cfg.MaxEdges,
		MaxIDLength:          cfg.MaxIDLength,
		CacheEnabled:         &enabled,
		CacheTTLSeconds:      int(cfg.CacheTTL / time.Second),
		CacheCapacity:        cfg.CacheCapacity,
		CacheEvictBatch:      cfg.CacheEvictBatch,
		AllowedOrigins:       cfg.AllowedOrigins,
		RateLimitParse:       cfg.RateLimitParse,
		RateLimitAnonymous:   cfg.RateLimitAnonymous,
		RateLimitMetrics:     cfg.RateLimitMetrics,
		ShutdownGraceSeconds: int(cfg.ShutdownGrace / time.Second),
	}
}
