package apps

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chess10kp/dockrun/internal/config"
	"github.com/chess10kp/dockrun/internal/entry"
)

func desktopFile(name, exec, icon string) string {
	return "[Desktop Entry]\nType=Application\nName=" + name + "\nExec=" + exec + "\nIcon=" + icon + "\n"
}

func TestParseDesktopEntryLastKeyWins(t *testing.T) {
	text := `[Desktop Entry]
Type=Application
Name=First
GenericName=Browser
Name[de]=Erste
Exec = /usr/bin/first %u
Icon=first
Name = Second
Exec=second
`
	e := ParseDesktopEntry(text)
	assert.Equal(t, entry.Entry{Name: "Second", Command: "second", Icon: "first"}, e)
}

func TestParseDesktopEntryTypeIsCaseInsensitive(t *testing.T) {
	e := ParseDesktopEntry("type=x\nType=APPLICATION\nName=A\nExec=a\n")
	assert.Equal(t, "A", e.Name)
}

func TestParseDesktopEntryRejectsNonApplications(t *testing.T) {
	assert.True(t, ParseDesktopEntry("Type=Link\nName=Site\nURL=http://x\n").IsNoMatch())
	assert.True(t, ParseDesktopEntry("Name=NoType\nExec=x\n").IsNoMatch())
	assert.True(t, ParseDesktopEntry("Type=Application\nType=Directory\nName=D\nExec=d\n").IsNoMatch())
}

func TestParseDesktopEntryHandlesCRLF(t *testing.T) {
	e := ParseDesktopEntry("Type=Application\r\nName=Win\r\nExec=win\r\n")
	assert.Equal(t, entry.Entry{Name: "Win", Command: "win"}, e)
}

func TestDesktopSourceDiscover(t *testing.T) {
	root := t.TempDir()
	usr := filepath.Join(root, "usr")
	home := filepath.Join(root, "home")

	writeFile(t, filepath.Join(usr, "applications", "zed.desktop"), desktopFile("Zed", "/opt/zed/bin/zed", "zed"), 0644)
	writeFile(t, filepath.Join(usr, "applications", "firefox.desktop"), desktopFile("Firefox", "firefox %u", "firefox"), 0644)
	writeFile(t, filepath.Join(usr, "applications", "link.desktop"), "[Desktop Entry]\nType=Link\nName=Link\n", 0644)
	writeFile(t, filepath.Join(usr, "applications", "notes.txt"), desktopFile("Notes", "notes", ""), 0644)
	writeFile(t, filepath.Join(home, "applications", "alacritty.desktop"), desktopFile("Alacritty", "alacritty", ""), 0644)

	src, err := NewDesktopSource(usr+":"+home+":"+usr, 16)
	require.NoError(t, err)

	entries, err := src.Discover()
	require.NoError(t, err)

	assert.Equal(t, []string{"Alacritty", "Firefox", "Zed"}, names(entries))
	assert.Equal(t, "firefox %u", entries[1].Command)
	assert.Equal(t, "firefox %u", entries[1].Group())
	assert.Equal(t, "zed", entries[2].Group())
}

func TestDesktopSourceSortIsStableForEqualNames(t *testing.T) {
	root := t.TempDir()
	first := filepath.Join(root, "first")
	second := filepath.Join(root, "second")

	writeFile(t, filepath.Join(first, "applications", "term.desktop"), desktopFile("Terminal", "xterm", ""), 0644)
	writeFile(t, filepath.Join(second, "applications", "term.desktop"), desktopFile("Terminal", "foot", ""), 0644)
	writeFile(t, filepath.Join(second, "applications", "a.desktop"), desktopFile("Editor", "vim", ""), 0644)

	src, err := NewDesktopSource(first+":"+second, 16)
	require.NoError(t, err)

	entries, err := src.Discover()
	require.NoError(t, err)

	require.Len(t, entries, 3)
	assert.Equal(t, "vim", entries[0].Command)
	assert.Equal(t, "xterm", entries[1].Command)
	assert.Equal(t, "foot", entries[2].Command)
}

func TestDesktopSourceUnreadableFileIsFatal(t *testing.T) {
	root := t.TempDir()
	apps := filepath.Join(root, "applications")
	require.NoError(t, os.MkdirAll(apps, 0755))
	require.NoError(t, os.Symlink(filepath.Join(root, "gone"), filepath.Join(apps, "broken.desktop")))

	src, err := NewDesktopSource(root, 16)
	require.NoError(t, err)

	_, err = src.Discover()
	assert.Error(t, err)
}

func TestDesktopSourceMissingDirectoryIsEmpty(t *testing.T) {
	src, err := NewDesktopSource(filepath.Join(t.TempDir(), "none"), 16)
	require.NoError(t, err)

	entries, err := src.Discover()
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestDesktopSourceRescanUsesCache(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "applications", "a.desktop")
	writeFile(t, path, desktopFile("Alpha", "alpha", ""), 0644)
	writeFile(t, filepath.Join(root, "applications", "b.desktop"), desktopFile("Beta", "beta", ""), 0644)

	src, err := NewDesktopSource(root, 16)
	require.NoError(t, err)

	_, err = src.Discover()
	require.NoError(t, err)
	hits, misses := src.Stats()
	assert.Equal(t, int64(0), hits)
	assert.Equal(t, int64(2), misses)

	writeFile(t, path, desktopFile("Alpha Two", "alpha2", ""), 0644)
	later := time.Now().Add(time.Hour)
	require.NoError(t, os.Chtimes(path, later, later))

	entries, err := src.Rescan()
	require.NoError(t, err)
	assert.Equal(t, []string{"Alpha Two", "Beta"}, names(entries))

	hits, misses = src.Stats()
	assert.Equal(t, int64(1), hits)
	assert.Equal(t, int64(3), misses)
}

func TestNewSelectsSourceByMode(t *testing.T) {
	cfg := config.DefaultConfig

	cfg.Discovery.Mode = config.ModePath
	src, err := New(&cfg)
	require.NoError(t, err)
	assert.IsType(t, &PathSource{}, src)

	cfg.Discovery.Mode = config.ModeXDG
	src, err = New(&cfg)
	require.NoError(t, err)
	assert.IsType(t, &DesktopSource{}, src)

	cfg.Discovery.Mode = "other"
	_, err = New(&cfg)
	assert.Error(t, err)
}
