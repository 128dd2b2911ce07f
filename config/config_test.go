package config

import (
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(nil)
	require.NoError(t, err)

	assert.Equal(t, "./output", cfg.OutputDir)
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
	assert.Equal(t, 5, cfg.HeavyBatchSize)
	assert.Equal(t, 10, cfg.LightBatchSize)
	assert.True(t, cfg.CloudflareBypass)
	assert.Equal(t, DefaultUserAgent, cfg.UserAgent)
	assert.Len(t, cfg.Endpoints.MedmateTenants, 2)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("OUTPUT_DIR", "/tmp/pharmacies")
	t.Setenv("HEAVY_BATCH_SIZE", "3")
	t.Setenv("BROWSER_BRANDS", "fullife, healthy_world ,")

	cfg, err := Load(nil)
	require.NoError(t, err)

	assert.Equal(t, "/tmp/pharmacies", cfg.OutputDir)
	assert.Equal(t, 3, cfg.HeavyBatchSize)
	assert.Equal(t, []string{"fullife", "healthy_world"}, cfg.BrowserBrands)
	assert.True(t, cfg.UsesBrowser("fullife"))
	assert.False(t, cfg.UsesBrowser("dds"))
}

func TestLoadFlagsWinOverEnv(t *testing.T) {
	t.Setenv("OUTPUT_DIR", "/from/env")

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("output", "./output", "")
	fs.String("log-level", "info", "")
	require.NoError(t, fs.Parse([]string{"--output", "/from/flag"}))

	cfg, err := Load(fs)
	require.NoError(t, err)
	assert.Equal(t, "/from/flag", cfg.OutputDir)
}

func TestLoadRejectsBadBatchSize(t *testing.T) {
	t.Setenv("LIGHT_BATCH_SIZE", "0")

	_, err := Load(nil)
	assert.ErrorContains(t, err, "batch sizes")
}
