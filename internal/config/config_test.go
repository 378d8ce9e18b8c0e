package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FeepingCreature/cssmx/internal/config"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
marker: "@"
denest: false
variables:
  accent: "#ff0000"
  base: "#ffffff"
`)

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "@", cfg.Marker)
	assert.False(t, cfg.DenestEnabled())
	assert.Equal(t, "#ff0000", cfg.Variables["accent"])
	assert.Equal(t, "#ffffff", cfg.Variables["base"])
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load(writeConfig(t, "variables:\n  a: b\n"))
	require.NoError(t, err)

	assert.Empty(t, cfg.Marker)
	assert.True(t, cfg.DenestEnabled())
}

func TestLoad_InvalidMarker(t *testing.T) {
	_, err := config.Load(writeConfig(t, "marker: \"@@\"\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "marker must be a single character")
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "nope.yml"))
	assert.Error(t, err)
}

func TestDefaultPath_EnvOverride(t *testing.T) {
	t.Setenv("CSSMX_CONFIG", "/tmp/custom.yml")
	assert.Equal(t, "/tmp/custom.yml", config.DefaultPath())
}
