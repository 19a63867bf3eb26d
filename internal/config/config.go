package config

import (
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/adrg/xdg"
	"github.com/pelletier/go-toml/v2"
)

const AppName = "dockrun"

type Config struct {
	AppName    string           `toml:"app_name"`
	AppID      string           `toml:"app_id"`
	Appearance AppearanceConfig `toml:"appearance"`
	Dock       DockConfig       `toml:"dock"`
	Discovery  DiscoveryConfig  `toml:"discovery"`
	History    HistoryConfig    `toml:"history"`
	Icons      IconsConfig      `toml:"icons"`
}

type AppearanceConfig struct {
	Font       string `toml:"font"`
	Background string `toml:"background"`
	Text       string `toml:"text"`
	Active     string `toml:"active"`
	ActiveBg   string `toml:"active_bg"`
	Error      string `toml:"error"`
	Margin     int    `toml:"margin"`
	CSSPath    string `toml:"css_path"`
}

type DockConfig struct {
	Edge string `toml:"edge"` // top, bottom, left, right
}

type DiscoveryConfig struct {
	Mode           string `toml:"mode"`        // path or xdg
	SearchPath     string `toml:"search_path"` // empty means $PATH
	DataDirs       string `toml:"data_dirs"`   // empty means $XDG_DATA_DIRS
	ParseCacheSize int    `toml:"parse_cache_size"`
}

type HistoryConfig struct {
	Enabled bool   `toml:"enabled"`
	Path    string `toml:"path"`
}

type IconsConfig struct {
	Enabled   bool   `toml:"enabled"`
	Size      int    `toml:"size"`
	CacheSize int    `toml:"cache_size"`
	Fallback  string `toml:"fallback"`
}

const (
	ModePath = "path"
	ModeXDG  = "xdg"
)

var DefaultConfig = Config{
	AppName: AppName,
	AppID:   "com.github.chess10kp.dockrun",
	Appearance: AppearanceConfig{
		Font:       "sans-serif",
		Background: "#171717",
		Text:       "#F6F3E8",
		Active:     "#EA9847",
		ActiveBg:   "#171717",
		Error:      "#E5786D",
		Margin:     4,
	},
	Dock: DockConfig{
		Edge: "bottom",
	},
	Discovery: DiscoveryConfig{
		Mode:           ModePath,
		ParseCacheSize: 512,
	},
	History: HistoryConfig{
		Enabled: true,
		Path:    filepath.Join(xdg.DataHome, AppName, "history"),
	},
	Icons: IconsConfig{
		Enabled:   true,
		Size:      16,
		CacheSize: 200,
		Fallback:  "application-x-executable",
	},
}

// DefaultConfigPath is where LoadConfig looks when no path is given.
func DefaultConfigPath() string {
	return filepath.Join(xdg.ConfigHome, AppName, "config.toml")
}

// LoadConfig reads a TOML file over the defaults. A missing file yields the
// defaults unchanged.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		path = DefaultConfigPath()
	}
	expandedPath := ExpandPath(path)

	cfg := DefaultConfig
	if _, err := os.Stat(expandedPath); os.IsNotExist(err) {
		return &cfg, nil
	}

	data, err := os.ReadFile(expandedPath)
	if err != nil {
		return nil, err
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", expandedPath, err)
	}

	cfg.History.Path = ExpandPath(cfg.History.Path)
	cfg.Appearance.CSSPath = ExpandPath(cfg.Appearance.CSSPath)

	return &cfg, nil
}

func LoadAndValidateConfig(path string) (*Config, error) {
	cfg, err := LoadConfig(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

// ExpandPath expands a leading ~ to the current user's home directory.
func ExpandPath(path string) string {
	if len(path) > 0 && path[0] == '~' {
		usr, err := user.Current()
		if err == nil {
			return filepath.Join(usr.HomeDir, path[1:])
		}
	}
	return path
}

// SearchPath returns the configured search path, falling back to $PATH.
func (c *Config) SearchPath() string {
	if c.Discovery.SearchPath != "" {
		return c.Discovery.SearchPath
	}
	return os.Getenv("PATH")
}

// DataDirs returns the configured XDG base directories. Without one, the
// data home comes first, followed by $XDG_DATA_DIRS or the XDG defaults.
func (c *Config) DataDirs() string {
	if c.Discovery.DataDirs != "" {
		return c.Discovery.DataDirs
	}

	dirs := []string{xdg.DataHome}
	if env := os.Getenv("XDG_DATA_DIRS"); env != "" {
		for _, dir := range strings.Split(env, string(os.PathListSeparator)) {
			if dir != "" && dir != xdg.DataHome {
				dirs = append(dirs, dir)
			}
		}
	} else {
		dirs = append(dirs, xdg.DataDirs...)
	}
	return strings.Join(dirs, string(os.PathListSeparator))
}

func (c *Config) Validate() error {
	if strings.TrimSpace(c.AppID) == "" {
		return fmt.Errorf("app_id must not be empty")
	}
	if err := c.validateAppearance(); err != nil {
		return err
	}
	if err := c.validateDock(); err != nil {
		return err
	}
	if err := c.validateDiscovery(); err != nil {
		return err
	}
	if err := c.validateHistory(); err != nil {
		return err
	}
	if err := c.validateIcons(); err != nil {
		return err
	}
	return nil
}

var colorPattern = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6}|[0-9a-fA-F]{8})$`)

func (c *Config) validateAppearance() error {
	a := c.Appearance
	colors := []struct {
		name  string
		value string
	}{
		{"background", a.Background},
		{"text", a.Text},
		{"active", a.Active},
		{"active_bg", a.ActiveBg},
		{"error", a.Error},
	}
	for _, col := range colors {
		if !colorPattern.MatchString(col.value) {
			return fmt.Errorf("invalid %s color: %q (must be #rgb, #rrggbb or #rrggbbaa)", col.name, col.value)
		}
	}
	if strings.TrimSpace(a.Font) == "" {
		return fmt.Errorf("font must not be empty")
	}
	if a.Margin < 0 || a.Margin > 200 {
		return fmt.Errorf("invalid margin: %d (must be 0-200px)", a.Margin)
	}
	return nil
}

func (c *Config) validateDock() error {
	switch strings.ToLower(c.Dock.Edge) {
	case "top", "bottom", "left", "right":
		return nil
	}
	return fmt.Errorf("invalid dock edge: %q (must be one of: top, bottom, left, right)", c.Dock.Edge)
}

func (c *Config) validateDiscovery() error {
	d := c.Discovery
	if d.Mode != ModePath && d.Mode != ModeXDG {
		return fmt.Errorf("invalid discovery mode: %q (must be %q or %q)", d.Mode, ModePath, ModeXDG)
	}
	if d.ParseCacheSize < 1 || d.ParseCacheSize > 100000 {
		return fmt.Errorf("invalid parse_cache_size: %d (must be 1-100000)", d.ParseCacheSize)
	}
	return nil
}

func (c *Config) validateHistory() error {
	if c.History.Enabled && c.History.Path == "" {
		return fmt.Errorf("history enabled but no path provided")
	}
	return nil
}

func (c *Config) validateIcons() error {
	i := c.Icons
	if i.Size < 8 || i.Size > 256 {
		return fmt.Errorf("invalid icon size: %d (must be 8-256)", i.Size)
	}
	if i.CacheSize < 10 || i.CacheSize > 10000 {
		return fmt.Errorf("invalid icon cache_size: %d (must be 10-10000)", i.CacheSize)
	}
	return nil
}

func ValidateConfig(path string) error {
	_, err := LoadAndValidateConfig(path)
	return err
}
