package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func env(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestDefaults(t *testing.T) {
	c, err := FromEnv(env(nil))
	require.NoError(t, err)
	assert.Equal(t, orb.Point{-54.9253, -15.235}, c.HomeCenter)
	assert.Equal(t, 4, c.HomeZoom)
	assert.Equal(t, ".", c.ExportDir)
	assert.Empty(t, c.LogFile)
	assert.Zero(t, c.LogLevel)
}

func TestOverrides(t *testing.T) {
	c, err := FromEnv(env(map[string]string{
		"POLYMAP_HOME_LON":   "-47.88",
		"POLYMAP_HOME_LAT":   " -15.79 ",
		"POLYMAP_HOME_ZOOM":  "9",
		"POLYMAP_EXPORT_DIR": "/tmp/kml",
		"POLYMAP_LOG_FILE":   "polymap.log",
		"POLYMAP_LOG_LEVEL":  "2",
	}))
	require.NoError(t, err)
	assert.Equal(t, orb.Point{-47.88, -15.79}, c.HomeCenter)
	assert.Equal(t, 9, c.HomeZoom)
	assert.Equal(t, "/tmp/kml", c.ExportDir)
	assert.Equal(t, "polymap.log", c.LogFile)
	assert.Equal(t, 2, c.LogLevel)
}

func TestInvalidValues(t *testing.T) {
	for k, v := range map[string]string{
		"POLYMAP_HOME_LON":  "west",
		"POLYMAP_HOME_LAT":  "91",
		"POLYMAP_HOME_ZOOM": "30",
		"POLYMAP_LOG_LEVEL": "-1",
	} {
		_, err := FromEnv(env(map[string]string{k: v}))
		assert.ErrorContains(t, err, k)
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	f := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(f, []byte("POLYMAP_HOME_ZOOM=7\n"), 0o644))
	t.Setenv("POLYMAP_HOME_ZOOM", "")
	os.Unsetenv("POLYMAP_HOME_ZOOM")

	c, err := Load(filepath.Join(dir, "missing.env"), f)
	require.NoError(t, err)
	assert.Equal(t, 7, c.HomeZoom)
}
