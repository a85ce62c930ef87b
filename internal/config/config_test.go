package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("STATS_POLL_INTERVAL", "")
	cfg := Load()
	require.Equal(t, "8008", cfg.Port)
	require.Equal(t, 30*time.Second, cfg.StatsPollInterval)
	require.Zero(t, cfg.CachePurgeInterval)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("STATS_POLL_INTERVAL", "45s")
	t.Setenv("CACHE_PURGE_INTERVAL", "600")
	cfg := Load()
	require.Equal(t, "9000", cfg.Port)
	require.Equal(t, 45*time.Second, cfg.StatsPollInterval)
	require.Equal(t, 10*time.Minute, cfg.CachePurgeInterval)
}

func TestGetEnvDuration_Invalid(t *testing.T) {
	t.Setenv("STATS_POLL_INTERVAL", "soon")
	require.Equal(t, time.Minute, getEnvDuration("STATS_POLL_INTERVAL", time.Minute))
}
