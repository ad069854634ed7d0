package config_test

import (
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/flowd/internal/adapters/config"
	"go.trai.ch/flowd/internal/core/domain"
	"gopkg.in/yaml.v3"
)

type testLogger struct {
	infos []string
	warns []string
	errs  []error
}

func (l *testLogger) Info(msg string)       { l.infos = append(l.infos, msg) }
func (l *testLogger) Warn(msg string)       { l.warns = append(l.warns, msg) }
func (l *testLogger) Error(err error)       { l.errs = append(l.errs, err) }
func (l *testLogger) SetOutput(_ io.Writer) {}
func (l *testLogger) SetJSON(_ bool)        {}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "flowd.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	log := &testLogger{}
	loader := config.NewLoader(log)

	cfg, err := loader.Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)

	assert.Equal(t, domain.DefaultConfig(), cfg)
	require.Len(t, log.infos, 1)
	assert.Contains(t, log.infos[0], "using defaults")
}

func TestLoad_OverlaysFileValues(t *testing.T) {
	path := writeConfig(t, `
max_nodes: 42
cache_enabled: false
rate_limit_parse: 5
`)

	cfg, err := config.NewLoader(&testLogger{}).Load(path)
	require.NoError(t, err)

	assert.Equal(t, 42, cfg.MaxNodes)
	assert.False(t, cfg.CacheEnabled)
	assert.Equal(t, 5, cfg.RateLimitParse)

	// Untouched fields keep their defaults.
	assert.Equal(t, 50_000, cfg.MaxEdges)
	assert.Equal(t, 300*time.Second, cfg.CacheTTL)
}

func TestLoad_ReadFailure(t *testing.T) {
	// A directory at the config path fails the read without being absent.
	dir := t.TempDir()

	_, err := config.NewLoader(&testLogger{}).Load(dir)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrConfigReadFailed)
}

func TestLoad_ParseFailure(t *testing.T) {
	path := writeConfig(t, "max_nodes: [not, a, number")

	_, err := config.NewLoader(&testLogger{}).Load(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrConfigParseFailed)
}

func TestLoad_RejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"negative max_nodes", "max_nodes: -1"},
		{"negative cache ttl", "cache_ttl_seconds: -30"},
		{"negative cache capacity", "cache_capacity: -5"},
		{"evict batch above capacity", "cache_capacity: 10\ncache_evict_batch: 20"},
		{"negative rate limit", "rate_limit_metrics: -1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, tt.content)
			_, err := config.NewLoader(&testLogger{}).Load(path)
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrInvalidConfig)
		})
	}
}

func TestLoad_ResolvedConfigGolden(t *testing.T) {
	cfg, err := config.NewLoader(&testLogger{}).Load("testdata/flowd.yaml")
	require.NoError(t, err)

	data, err := yaml.Marshal(config.Snapshot(cfg))
	require.NoError(t, err)

	g := goldie.New(t)
	g.Assert(t, "resolved_config", data)
}
