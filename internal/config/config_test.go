package config

import (
	"os"
	"os/user"
	"path/filepath"
	"strings"
	"testing"

	"github.com/adrg/xdg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig
	require.NoError(t, cfg.Validate())
	assert.Equal(t, ModePath, cfg.Discovery.Mode)
	assert.Equal(t, "bottom", cfg.Dock.Edge)
	assert.Equal(t, 4, cfg.Appearance.Margin)
}

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig, *cfg)
}

func TestLoadConfigOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	data := `
[appearance]
background = "#000000"
margin = 8

[dock]
edge = "left"

[discovery]
mode = "xdg"
data_dirs = "/a:/b"
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "#000000", cfg.Appearance.Background)
	assert.Equal(t, 8, cfg.Appearance.Margin)
	assert.Equal(t, DefaultConfig.Appearance.Text, cfg.Appearance.Text)
	assert.Equal(t, "left", cfg.Dock.Edge)
	assert.Equal(t, ModeXDG, cfg.Discovery.Mode)
	assert.Equal(t, "/a:/b", cfg.DataDirs())
	require.NoError(t, cfg.Validate())
}

func TestLoadConfigBadTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[dock\nedge="), 0644))

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty app id", func(c *Config) { c.AppID = "" }},
		{"bad color", func(c *Config) { c.Appearance.Active = "orange" }},
		{"negative margin", func(c *Config) { c.Appearance.Margin = -1 }},
		{"empty font", func(c *Config) { c.Appearance.Font = " " }},
		{"bad edge", func(c *Config) { c.Dock.Edge = "middle" }},
		{"bad mode", func(c *Config) { c.Discovery.Mode = "fuzzy" }},
		{"zero parse cache", func(c *Config) { c.Discovery.ParseCacheSize = 0 }},
		{"history without path", func(c *Config) { c.History.Path = "" }},
		{"tiny icons", func(c *Config) { c.Icons.Size = 2 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestValidateConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[dock]\nedge = \"diagonal\"\n"), 0644))

	err := ValidateConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid dock edge")
}

func TestLoadAndValidateConfig(t *testing.T) {
	dir := t.TempDir()

	good := filepath.Join(dir, "good.toml")
	require.NoError(t, os.WriteFile(good, []byte("[dock]\nedge = \"top\"\n"), 0644))
	cfg, err := LoadAndValidateConfig(good)
	require.NoError(t, err)
	assert.Equal(t, "top", cfg.Dock.Edge)

	bad := filepath.Join(dir, "bad.toml")
	require.NoError(t, os.WriteFile(bad, []byte("[appearance]\nmargin = 500\n"), 0644))
	_, err = LoadAndValidateConfig(bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config validation failed")
}

func TestExpandPath(t *testing.T) {
	usr, err := user.Current()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(usr.HomeDir, "x"), ExpandPath("~/x"))
	assert.Equal(t, "/abs", ExpandPath("/abs"))
	assert.Equal(t, "", ExpandPath(""))
}

func TestSearchPathFallsBackToEnv(t *testing.T) {
	t.Setenv("PATH", "/one:/two")
	cfg := DefaultConfig
	assert.Equal(t, "/one:/two", cfg.SearchPath())

	cfg.Discovery.SearchPath = "/three"
	assert.Equal(t, "/three", cfg.SearchPath())
}

func TestDataDirsFallsBackToEnv(t *testing.T) {
	t.Setenv("XDG_DATA_DIRS", "/usr/share:/usr/local/share")
	cfg := DefaultConfig
	want := strings.Join([]string{xdg.DataHome, "/usr/share", "/usr/local/share"}, ":")
	assert.Equal(t, want, cfg.DataDirs())
}

func TestDataDirsKeepsDataHomeOnce(t *testing.T) {
	t.Setenv("XDG_DATA_DIRS", xdg.DataHome+":/usr/share")
	cfg := DefaultConfig
	assert.Equal(t, xdg.DataHome+":/usr/share", cfg.DataDirs())
}
