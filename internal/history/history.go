// Package history keeps the log of launched commands and ranks entries by
// how recently they were launched.
package history

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gofrs/flock"

	"github.com/chess10kp/dockrun/internal/entry"
)

// History is a newline-delimited log of unique commands, oldest first.
type History struct {
	path     string
	disabled bool
}

// New returns a history stored at path.
func New(path string) *History {
	return &History{path: path}
}

// Disabled returns a history that is always empty and never written.
func Disabled() *History {
	return &History{disabled: true}
}

// Load returns the persisted log. A missing file is an empty log.
func (h *History) Load() ([]string, error) {
	if h.disabled {
		return nil, nil
	}
	return readLog(h.path)
}

// Record moves command to the end of the log and rewrites the file.
func (h *History) Record(command string) error {
	if h.disabled {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(h.path), 0755); err != nil {
		return fmt.Errorf("failed to create history directory: %w", err)
	}

	lock := flock.New(h.path + ".lock")
	if err := lock.Lock(); err != nil {
		return fmt.Errorf("failed to lock history: %w", err)
	}
	defer func() {
		if err := lock.Unlock(); err != nil {
			log.Printf("[HISTORY] Failed to release lock: %v", err)
		}
	}()

	entries, err := readLog(h.path)
	if err != nil {
		return err
	}

	entries = Insert(entries, command)

	if err := writeLog(h.path, entries); err != nil {
		return err
	}

	log.Printf("[HISTORY] Recorded '%s' (%d entries)", command, len(entries))
	return nil
}

// Sort loads the log and ranks entries with it.
func (h *History) Sort(entries []entry.Entry) ([]entry.Entry, error) {
	logEntries, err := h.Load()
	if err != nil {
		return nil, err
	}
	return Rank(entries, logEntries), nil
}

// Insert returns entries with every occurrence of command removed and
// command appended.
func Insert(entries []string, command string) []string {
	out := make([]string, 0, len(entries)+1)
	for _, e := range entries {
		if e != command {
			out = append(out, e)
		}
	}
	return append(out, command)
}

// Rank stable-sorts entries so commands present in the log come first,
// most recently launched first, followed by the rest in name order.
func Rank(entries []entry.Entry, logEntries []string) []entry.Entry {
	index := make(map[string]int, len(logEntries))
	for i, command := range logEntries {
		index[command] = i
	}

	ranked := make([]entry.Entry, len(entries))
	copy(ranked, entries)

	sort.SliceStable(ranked, func(i, j int) bool {
		ia, okA := index[ranked[i].Command]
		ib, okB := index[ranked[j].Command]
		switch {
		case okA && !okB:
			return true
		case okB && !okA:
			return false
		case okA && okB:
			return ia > ib
		default:
			return ranked[i].Name < ranked[j].Name
		}
	})

	return ranked
}

func readLog(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read history: %w", err)
	}

	var entries []string
	for _, line := range strings.Split(string(data), "\n") {
		if line != "" {
			entries = append(entries, line)
		}
	}
	return entries, nil
}

func writeLog(path string, entries []string) error {
	data := []byte(strings.Join(entries, "\n"))

	tempFile := path + ".tmp"
	if err := os.WriteFile(tempFile, data, 0644); err != nil {
		return fmt.Errorf("failed to write history: %w", err)
	}

	if err := os.Rename(tempFile, path); err != nil {
		return fmt.Errorf("failed to replace history: %w", err)
	}

	return nil
}
