package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"git.fiblab.net/sim/transit/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadDefault(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
log_level: debug
listen: 0.0.0.0:8080
catalogue:
  strict_road_distances: true
routing:
  precompute: true
  precompute_workers: 4
  bus_wait_time: 3
  bus_velocity: 42.5
`)
	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "0.0.0.0:8080", cfg.Listen)
	assert.True(t, cfg.Catalogue.StrictRoadDistances)
	assert.False(t, cfg.Catalogue.RejectDuplicateStops)
	assert.True(t, cfg.Routing.Precompute)
	assert.Equal(t, 4, cfg.Routing.PrecomputeWorkers)
	require.NotNil(t, cfg.Routing.BusWaitTime)
	assert.Equal(t, 3, *cfg.Routing.BusWaitTime)
	require.NotNil(t, cfg.Routing.BusVelocity)
	assert.Equal(t, 42.5, *cfg.Routing.BusVelocity)
}

func TestLoadKeepsDefaults(t *testing.T) {
	cfg, err := config.Load(writeConfig(t, "catalogue:\n  reject_duplicate_stops: true\n"))
	require.NoError(t, err)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "localhost:52101", cfg.Listen)
	assert.Nil(t, cfg.Routing.BusWaitTime)
}

func TestLoadInvalid(t *testing.T) {
	_, err := config.Load(writeConfig(t, "log_level: verbose\n"))
	assert.Error(t, err)
	_, err = config.Load(writeConfig(t, "routing:\n  bus_velocity: -1\n"))
	assert.Error(t, err)
	_, err = config.Load(writeConfig(t, "routing: [1, 2\n"))
	assert.Error(t, err)
	_, err = config.Load(filepath.Join(t.TempDir(), "missing.yml"))
	assert.Error(t, err)
}
