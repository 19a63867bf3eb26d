package apps

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"sync/atomic"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/chess10kp/dockrun/internal/entry"
)

const (
	applicationsDir = "applications"
	desktopSuffix   = ".desktop"
)

var (
	typeKey = keyPattern("Type")
	nameKey = keyPattern("Name")
	execKey = keyPattern("Exec")
	iconKey = keyPattern("Icon")
)

func keyPattern(key string) *regexp.Regexp {
	return regexp.MustCompile(`(?m)^` + key + ` *= *(.*)$`)
}

type parsedFile struct {
	modTime time.Time
	size    int64
	entry   entry.Entry
}

// DesktopSource reads .desktop files from the applications subdirectory of
// each XDG base directory.
type DesktopSource struct {
	dirs   []string
	cache  *lru.Cache[string, parsedFile]
	hits   int64
	misses int64
}

// NewDesktopSource creates a source over a colon-delimited list of base
// directories. cacheSize bounds the number of parsed files kept between scans.
func NewDesktopSource(dataDirs string, cacheSize int) (*DesktopSource, error) {
	if cacheSize <= 0 {
		cacheSize = 512
	}

	cache, err := lru.New[string, parsedFile](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create parse cache: %w", err)
	}

	return &DesktopSource{
		dirs:  SplitList(dataDirs),
		cache: cache,
	}, nil
}

// Discover parses every desktop file once and returns the application
// entries sorted by name. A listed file that cannot be read is an error.
func (s *DesktopSource) Discover() ([]entry.Entry, error) {
	start := time.Now()
	files := s.desktopFiles()

	entries := make([]entry.Entry, 0, len(files))
	for _, path := range files {
		e, err := s.load(path)
		if err != nil {
			return nil, err
		}
		if e.Name == "" || e.Command == "" {
			continue
		}
		entries = append(entries, e)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Name < entries[j].Name
	})

	log.Printf("[APPS] Loaded %d applications from %d desktop files in %v", len(entries), len(files), time.Since(start))
	return entries, nil
}

// Rescan discovers again, reparsing only files that changed since the
// previous scan.
func (s *DesktopSource) Rescan() ([]entry.Entry, error) {
	return s.Discover()
}

// Stats returns parse cache hits and misses.
func (s *DesktopSource) Stats() (hits, misses int64) {
	return atomic.LoadInt64(&s.hits), atomic.LoadInt64(&s.misses)
}

// desktopFiles lists desktop files in discovery order: base directory
// order, then file name. A path is listed once.
func (s *DesktopSource) desktopFiles() []string {
	seen := make(map[string]bool)
	var files []string

	for _, base := range s.dirs {
		dir := filepath.Join(base, applicationsDir)
		dirEntries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}
		for _, de := range dirEntries {
			if de.IsDir() || !strings.HasSuffix(de.Name(), desktopSuffix) {
				continue
			}
			path := filepath.Join(dir, de.Name())
			if seen[path] {
				continue
			}
			seen[path] = true
			files = append(files, path)
		}
	}

	return files
}

func (s *DesktopSource) load(path string) (entry.Entry, error) {
	info, err := os.Stat(path)
	if err != nil {
		return entry.Entry{}, fmt.Errorf("failed to read desktop file: %w", err)
	}

	if cached, ok := s.cache.Get(path); ok && cached.modTime.Equal(info.ModTime()) && cached.size == info.Size() {
		atomic.AddInt64(&s.hits, 1)
		return cached.entry, nil
	}
	atomic.AddInt64(&s.misses, 1)

	data, err := os.ReadFile(path)
	if err != nil {
		return entry.Entry{}, fmt.Errorf("failed to read desktop file: %w", err)
	}

	e := ParseDesktopEntry(string(data))
	s.cache.Add(path, parsedFile{modTime: info.ModTime(), size: info.Size(), entry: e})
	return e, nil
}

// ParseDesktopEntry extracts Type, Name, Exec and Icon from the text of a
// desktop file. The last occurrence of each key wins. Anything that is not
// an application yields the sentinel entry.
func ParseDesktopEntry(text string) entry.Entry {
	if !strings.EqualFold(lastValue(typeKey, text), "application") {
		return entry.NoMatch
	}

	return entry.Entry{
		Name:    lastValue(nameKey, text),
		Command: lastValue(execKey, text),
		Icon:    lastValue(iconKey, text),
	}
}

func lastValue(key *regexp.Regexp, text string) string {
	matches := key.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return ""
	}
	return strings.TrimRight(matches[len(matches)-1][1], "\r")
}
