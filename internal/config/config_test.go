package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/srplsh/bucket"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())

	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, DefaultIndexBits, cfg.Index.Bits)
	assert.Equal(t, DefaultIndexBands, cfg.Index.Bands)
	assert.Equal(t, DefaultIndexMultiplier, cfg.Index.Multiplier)
	assert.Equal(t, "auto", cfg.Index.Strategy)
	assert.Equal(t, uint64(0), cfg.Index.Seed)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Empty(t, cfg.Metrics.File)
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "srplsh.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
index:
  bits: 20
  bands: 8
  strategy: chaining
  seed: 7
log:
  level: debug
  format: json
metrics:
  file: /tmp/srplsh.prom
`), 0o600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 20, cfg.Index.Bits)
	assert.Equal(t, 8, cfg.Index.Bands)
	assert.Equal(t, DefaultIndexMultiplier, cfg.Index.Multiplier)
	assert.Equal(t, uint64(7), cfg.Index.Seed)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "/tmp/srplsh.prom", cfg.Metrics.File)

	s, err := cfg.Index.BucketStrategy()
	require.NoError(t, err)
	assert.Equal(t, bucket.Chaining, s)

	lvl, err := cfg.Log.SlogLevel()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, lvl)
}

func TestLoadConfigEnv(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())
	t.Setenv("SRPLSH_INDEX_BANDS", "3")
	t.Setenv("SRPLSH_INDEX_STRATEGY", "map")

	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, 3, cfg.Index.Bands)
	assert.Equal(t, "map", cfg.Index.Strategy)
}

func TestLoadConfigInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "srplsh.yaml")
	require.NoError(t, os.WriteFile(path, []byte("index:\n  bits: 65\n"), 0o600))

	_, err := LoadConfig(path)
	require.ErrorIs(t, err, ErrInvalidBits)
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			Index: IndexConfig{Bits: 12, Bands: 5, Multiplier: 2, Strategy: "auto", Workers: 1},
			Log:   LogConfig{Level: "info", Format: "text"},
		}
	}

	tests := []struct {
		name   string
		mutate func(*Config)
		want   error
	}{
		{"valid", func(*Config) {}, nil},
		{"zero bits", func(c *Config) { c.Index.Bits = 0 }, ErrInvalidBits},
		{"zero bands", func(c *Config) { c.Index.Bands = 0 }, ErrInvalidBands},
		{"negative multiplier", func(c *Config) { c.Index.Multiplier = -1 }, ErrInvalidMultiplier},
		{"negative workers", func(c *Config) { c.Index.Workers = -1 }, ErrInvalidWorkers},
		{"unknown strategy", func(c *Config) { c.Index.Strategy = "cuckoo" }, ErrInvalidStrategy},
		{"unknown level", func(c *Config) { c.Log.Level = "loud" }, ErrInvalidLogLevel},
		{"unknown format", func(c *Config) { c.Log.Format = "xml" }, ErrInvalidLogFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}
