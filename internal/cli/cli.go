package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/urfave/cli/v3"

	"github.com/chess10kp/dockrun/internal/config"
)

// StartFunc runs the launcher with the merged configuration.
type StartFunc func(cfg *config.Config, logFile string) error

// New builds the root command. start receives the configuration once the
// config file is loaded, flags are applied and the result validated.
func New(start StartFunc) *cli.Command {
	return &cli.Command{
		Name:  config.AppName,
		Usage: "keyboard driven application launcher docked to a screen edge",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "path to the TOML config file"},
			&cli.StringFlag{Name: "font", Aliases: []string{"f"}, Usage: "font family"},
			&cli.StringFlag{Name: "background", Aliases: []string{"b"}, Usage: "background color"},
			&cli.StringFlag{Name: "text", Aliases: []string{"t"}, Usage: "text color"},
			&cli.StringFlag{Name: "active", Aliases: []string{"a"}, Usage: "active entry text color"},
			&cli.StringFlag{Name: "activebg", Aliases: []string{"g"}, Usage: "active entry background color"},
			&cli.IntFlag{Name: "margin", Aliases: []string{"m"}, Usage: "margin around text in pixels"},
			&cli.StringFlag{Name: "edge", Usage: "screen edge: top, bottom, left or right"},
			&cli.StringFlag{Name: "mode", Usage: "discovery mode: path or xdg"},
			&cli.StringFlag{Name: "history", Usage: "history file, empty string disables history"},
			&cli.StringFlag{Name: "log-file", Usage: "append log output to this file"},
		},
		Commands: []*cli.Command{
			{
				Name:      "validate",
				Usage:     "check a config file and exit",
				ArgsUsage: "[path]",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					path := cmd.Args().Get(0)
					if path == "" {
						path = config.DefaultConfigPath()
					}
					if err := config.ValidateConfig(path); err != nil {
						return err
					}
					fmt.Printf("%s: configuration is valid\n", path)
					return nil
				},
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := config.LoadConfig(cmd.String("config"))
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			ApplyFlags(cmd, cfg)
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("config validation failed: %w", err)
			}
			return start(cfg, cmd.String("log-file"))
		},
	}
}

// ApplyFlags overrides configuration values with explicitly set flags.
func ApplyFlags(cmd *cli.Command, cfg *config.Config) {
	overrides := []struct {
		flag string
		dst  *string
	}{
		{"font", &cfg.Appearance.Font},
		{"background", &cfg.Appearance.Background},
		{"text", &cfg.Appearance.Text},
		{"active", &cfg.Appearance.Active},
		{"activebg", &cfg.Appearance.ActiveBg},
		{"edge", &cfg.Dock.Edge},
		{"mode", &cfg.Discovery.Mode},
	}
	for _, s := range overrides {
		if cmd.IsSet(s.flag) {
			*s.dst = cmd.String(s.flag)
		}
	}

	if cmd.IsSet("margin") {
		cfg.Appearance.Margin = int(cmd.Int("margin"))
	}

	if cmd.IsSet("history") {
		path := cmd.String("history")
		cfg.History.Enabled = path != ""
		cfg.History.Path = config.ExpandPath(path)
	}
}

// LockPath is the single-instance lock file, in the runtime directory when
// there is one.
func LockPath() string {
	dir := xdg.RuntimeDir
	if dir == "" {
		dir = os.TempDir()
	}
	if _, err := os.Stat(dir); err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, config.AppName+".lock")
}
