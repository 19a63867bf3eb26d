package apps

import (
	"log"
	"os"
	"path/filepath"
	"sort"
	"time"

	"golang.org/x/sys/unix"
	"golang.org/x/text/cases"

	"github.com/chess10kp/dockrun/internal/entry"
)

// PathSource lists executables found in the directories of a search path.
type PathSource struct {
	dirs []string
	fold cases.Caser
}

// NewPathSource creates a source over a colon-delimited search path.
func NewPathSource(searchPath string) *PathSource {
	return &PathSource{
		dirs: SplitList(searchPath),
		fold: cases.Fold(),
	}
}

// Discover returns one entry per distinct executable name, sorted
// case-insensitively. Directories that cannot be listed contribute nothing.
func (s *PathSource) Discover() ([]entry.Entry, error) {
	start := time.Now()
	names := make(map[string]struct{})

	for _, dir := range s.dirs {
		files, err := executablesIn(dir)
		if err != nil {
			log.Printf("[APPS] Skipping %s: %v", dir, err)
			continue
		}
		for _, name := range files {
			names[name] = struct{}{}
		}
	}

	sorted := make([]string, 0, len(names))
	for name := range names {
		sorted = append(sorted, name)
	}
	s.sort(sorted)

	entries := make([]entry.Entry, len(sorted))
	for i, name := range sorted {
		entries[i] = entry.New(name)
	}

	log.Printf("[APPS] Found %d executables in %d directories in %v", len(entries), len(s.dirs), time.Since(start))
	return entries, nil
}

func (s *PathSource) sort(names []string) {
	folded := make(map[string]string, len(names))
	for _, name := range names {
		folded[name] = s.fold.String(name)
	}

	sort.Slice(names, func(i, j int) bool {
		a, b := folded[names[i]], folded[names[j]]
		if a != b {
			return a < b
		}
		return names[i] < names[j]
	})
}

// executablesIn lists regular files in dir that the current user may
// execute. Symlinks are followed; dangling ones are skipped.
func executablesIn(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var names []string
	for _, e := range entries {
		path := filepath.Join(dir, e.Name())
		info, err := os.Stat(path)
		if err != nil || !info.Mode().IsRegular() {
			continue
		}
		if unix.Access(path, unix.X_OK) != nil {
			continue
		}
		names = append(names, e.Name())
	}
	return names, nil
}
