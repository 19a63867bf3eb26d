// Package apps discovers launchable entries, either from executables on a
// search path or from XDG desktop-entry files.
package apps

import (
	"fmt"
	"os"
	"strings"

	"github.com/chess10kp/dockrun/internal/config"
	"github.com/chess10kp/dockrun/internal/entry"
)

// Source produces a deterministic, deduplicated list of entries.
type Source interface {
	Discover() ([]entry.Entry, error)
}

// New returns the source selected by the discovery mode in cfg.
func New(cfg *config.Config) (Source, error) {
	switch cfg.Discovery.Mode {
	case config.ModePath:
		return NewPathSource(cfg.SearchPath()), nil
	case config.ModeXDG:
		return NewDesktopSource(cfg.DataDirs(), cfg.Discovery.ParseCacheSize)
	default:
		return nil, fmt.Errorf("unknown discovery mode %q", cfg.Discovery.Mode)
	}
}

// SplitList splits a colon-delimited directory list, dropping empty segments.
func SplitList(list string) []string {
	var dirs []string
	for _, dir := range strings.Split(list, string(os.PathListSeparator)) {
		if dir != "" {
			dirs = append(dirs, dir)
		}
	}
	return dirs
}
