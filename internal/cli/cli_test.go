package cli

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chess10kp/dockrun/internal/config"
)

func runWith(t *testing.T, args ...string) (*config.Config, string, error) {
	t.Helper()

	var got *config.Config
	var gotLog string
	app := New(func(cfg *config.Config, logFile string) error {
		got = cfg
		gotLog = logFile
		return nil
	})

	err := app.Run(context.Background(), append([]string{config.AppName}, args...))
	return got, gotLog, err
}

func TestFlagsOverrideConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[appearance]\nbackground = \"#111111\"\nmargin = 6\n"), 0644))

	cfg, logFile, err := runWith(t,
		"--config", path,
		"-b", "#222222",
		"-a", "#ff0000",
		"--edge", "top",
		"--mode", "xdg",
		"--log-file", "/tmp/dockrun.log",
	)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "#222222", cfg.Appearance.Background)
	assert.Equal(t, "#ff0000", cfg.Appearance.Active)
	assert.Equal(t, 6, cfg.Appearance.Margin)
	assert.Equal(t, "top", cfg.Dock.Edge)
	assert.Equal(t, config.ModeXDG, cfg.Discovery.Mode)
	assert.Equal(t, "/tmp/dockrun.log", logFile)
}

func TestMarginFlag(t *testing.T) {
	cfg, _, err := runWith(t, "--config", filepath.Join(t.TempDir(), "none.toml"), "-m", "10")
	require.NoError(t, err)
	assert.Equal(t, 10, cfg.Appearance.Margin)
}

func TestEmptyHistoryFlagDisablesHistory(t *testing.T) {
	cfg, _, err := runWith(t, "--config", filepath.Join(t.TempDir(), "none.toml"), "--history", "")
	require.NoError(t, err)
	assert.False(t, cfg.History.Enabled)
}

func TestInvalidFlagValueFailsValidation(t *testing.T) {
	cfg, _, err := runWith(t, "--config", filepath.Join(t.TempDir(), "none.toml"), "--edge", "middle")
	require.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "invalid dock edge")
}

func TestValidateCommand(t *testing.T) {
	dir := t.TempDir()

	good := filepath.Join(dir, "good.toml")
	require.NoError(t, os.WriteFile(good, []byte("[dock]\nedge = \"left\"\n"), 0644))
	_, _, err := runWith(t, "validate", good)
	assert.NoError(t, err)

	bad := filepath.Join(dir, "bad.toml")
	require.NoError(t, os.WriteFile(bad, []byte("[appearance]\ntext = \"white\"\n"), 0644))
	_, _, err = runWith(t, "validate", bad)
	assert.Error(t, err)
}

func TestLockPathIsInExistingDirectory(t *testing.T) {
	p := LockPath()
	assert.Equal(t, config.AppName+".lock", filepath.Base(p))

	info, err := os.Stat(filepath.Dir(p))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
