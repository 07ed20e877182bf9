package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockstat/internal/stats"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "data/stocks", cfg.Data.Dir)
	assert.Equal(t, "auto", cfg.Data.Format)
	assert.Equal(t, "parallel", cfg.Engine.Backend)
	assert.Equal(t, 0, cfg.Engine.Workers)
	assert.False(t, cfg.Filter.Enabled)
	assert.Equal(t, stats.DefaultMinPrice, cfg.Filter.MinPrice)
	assert.Equal(t, stats.DefaultMaxPrice, cfg.Filter.MaxPrice)
	assert.Equal(t, stats.DefaultMinYear, cfg.Filter.MinYear)
	assert.Equal(t, stats.DefaultMaxYear, cfg.Filter.MaxYear)
	assert.True(t, cfg.Filter.TrackAll())
	assert.False(t, cfg.Report.CompatDecadeLabels)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadFromYAMLFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
data:
  dir: /srv/prices
  format: csv
engine:
  backend: scatter
  workers: 8
filter:
  enabled: true
  max_return: 0.5
  track_all_years: false
report:
  compat_decade_labels: true
logging:
  level: debug
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/srv/prices", cfg.Data.Dir)
	assert.Equal(t, "csv", cfg.Data.Format)
	assert.Equal(t, "scatter", cfg.Engine.Backend)
	assert.Equal(t, 8, cfg.Engine.Workers)
	assert.True(t, cfg.Filter.Enabled)
	assert.Equal(t, 0.5, cfg.Filter.MaxReturn)
	assert.False(t, cfg.Filter.TrackAll())
	assert.True(t, cfg.Report.CompatDecadeLabels)
	assert.Equal(t, "debug", cfg.Logging.Level)

	// Unset fields still get defaults.
	assert.Equal(t, stats.DefaultMinPrice, cfg.Filter.MinPrice)
}

func TestEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("engine:\n  backend: serial\n"), 0o644))

	t.Setenv("STOCKSTAT_ENGINE_BACKEND", "parallel")
	t.Setenv("STOCKSTAT_ENGINE_WORKERS", "3")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "parallel", cfg.Engine.Backend)
	assert.Equal(t, 3, cfg.Engine.Workers)
}

func TestValidation(t *testing.T) {
	t.Run("bad backend", func(t *testing.T) {
		t.Setenv("STOCKSTAT_ENGINE_BACKEND", "mpi")
		_, err := Load("")
		assert.Error(t, err)
	})

	t.Run("bad log level", func(t *testing.T) {
		t.Setenv("STOCKSTAT_LOGGING_LEVEL", "loud")
		_, err := Load("")
		assert.Error(t, err)
	})

	t.Run("inverted price bounds", func(t *testing.T) {
		t.Setenv("STOCKSTAT_FILTER_MIN_PRICE", "500")
		t.Setenv("STOCKSTAT_FILTER_MAX_PRICE", "1")
		_, err := Load("")
		assert.Error(t, err)
	})

	t.Run("inverted year range", func(t *testing.T) {
		t.Setenv("STOCKSTAT_FILTER_MIN_YEAR", "2200")
		_, err := Load("")
		assert.Error(t, err)
	})
}

func TestToFilter(t *testing.T) {
	t.Run("disabled yields nil", func(t *testing.T) {
		f := FilterConfig{Enabled: false}
		assert.Nil(t, f.ToFilter())
	})

	t.Run("enabled carries bounds", func(t *testing.T) {
		f := FilterConfig{
			Enabled:   true,
			MinPrice:  0.05,
			MaxPrice:  5000,
			MaxReturn: 0.8,
			MinYear:   1950,
			MaxYear:   2050,
		}
		got := f.ToFilter()
		require.NotNil(t, got)
		assert.Equal(t, 0.05, got.MinPrice)
		assert.Equal(t, 5000.0, got.MaxPrice)
		assert.Equal(t, 0.8, got.MaxReturn)
		assert.Equal(t, 1950, got.MinYear)
		assert.Equal(t, 2050, got.MaxYear)
	})
}
