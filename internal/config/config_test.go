package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadDefaults(t *testing.T) {
	viper.Reset()
	viper.Set("origin.remote_cdn", "https://cdn.example.com")

	cfg, err := read("")
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Level)
	assert.Equal(t, 3000, cfg.Server.Port)
	assert.Equal(t, 30*time.Second, cfg.Server.Timeout)
	assert.Equal(t, []string{".remtori.com"}, cfg.Server.CORSOriginSuffixes)
	assert.Equal(t, time.Second, cfg.Origin.ConnectTimeout)
	assert.Equal(t, "lanczos", cfg.Resize.Filter)
	assert.False(t, cfg.Monitoring.Enabled)
	assert.Equal(t, "0.0.0.0:9100", cfg.Monitoring.Bind)
}

func TestReadRequiresAnOrigin(t *testing.T) {
	viper.Reset()

	_, err := read("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no origin configured")
}

func TestReadLocalFolderAlone(t *testing.T) {
	viper.Reset()
	viper.Set("origin.local_folder", "/srv/images")

	cfg, err := read("")
	require.NoError(t, err)
	assert.Equal(t, "/srv/images", cfg.Origin.LocalFolder)
	assert.Empty(t, cfg.Origin.RemoteCDN)
}

func TestReadEnvironmentOverrides(t *testing.T) {
	viper.Reset()
	t.Setenv("IMGRESIZE_ORIGIN_REMOTE_CDN", "https://cdn.example.com")
	t.Setenv("IMGRESIZE_SERVER_PORT", "8080")
	t.Setenv("IMGRESIZE_RESIZE_FILTER", "box")

	cfg, err := read("")
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com", cfg.Origin.RemoteCDN)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "box", cfg.Resize.Filter)
}

func TestReadConfigFile(t *testing.T) {
	dir := t.TempDir()
	content := `level = "debug"

[server]
port = 4000
timeout = "10s"

[origin]
local_folder = "/srv/images"
remote_cdn = "https://cdn.example.com"

[monitoring]
enabled = true

[monitoring.labels]
node = "edge-1"
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0o644))

	viper.Reset()
	viper.AddConfigPath(dir)

	cfg, err := read("")
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Level)
	assert.Equal(t, 4000, cfg.Server.Port)
	assert.Equal(t, 10*time.Second, cfg.Server.Timeout)
	assert.Equal(t, "/srv/images", cfg.Origin.LocalFolder)
	assert.Equal(t, "https://cdn.example.com", cfg.Origin.RemoteCDN)
	assert.True(t, cfg.Monitoring.Enabled)
	assert.Equal(t, map[string]string{"node": "edge-1"}, cfg.Monitoring.Labels)

	labels := cfg.PrometheusLabels()
	assert.Equal(t, "edge-1", labels["node"])
}

func TestReadExplicitConfigFile(t *testing.T) {
	dir := t.TempDir()
	content := `level = "warn"

[origin]
remote_cdn = "https://cdn.example.com"
`
	path := filepath.Join(dir, "custom.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	viper.Reset()

	cfg, err := read(path)
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.Level)
	assert.Equal(t, "https://cdn.example.com", cfg.Origin.RemoteCDN)
}

func TestReadExplicitConfigFileMissing(t *testing.T) {
	viper.Reset()

	_, err := read(filepath.Join(t.TempDir(), "nope.toml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading config file")
}
