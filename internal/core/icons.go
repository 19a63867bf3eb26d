package core

import (
	"fmt"
	"log"

	"github.com/chess10kp/dockrun/internal/config"
	"github.com/gotk3/gotk3/gdk"
	"github.com/gotk3/gotk3/gtk"
	lru "github.com/hashicorp/golang-lru/v2"
)

// IconCache keeps themed icons loaded as pixbufs. It is only used from
// the GTK main loop.
type IconCache struct {
	cache    *lru.Cache[string, *gdk.Pixbuf]
	theme    *gtk.IconTheme
	fallback string
	hits     int64
	misses   int64
}

func NewIconCache(cfg *config.Config) (*IconCache, error) {
	cache, err := lru.New[string, *gdk.Pixbuf](cfg.Icons.CacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create icon cache: %w", err)
	}

	theme, err := gtk.IconThemeGetDefault()
	if err != nil {
		return nil, fmt.Errorf("failed to get default icon theme: %w", err)
	}

	return &IconCache{
		cache:    cache,
		theme:    theme,
		fallback: cfg.Icons.Fallback,
	}, nil
}

// Icon returns the named icon at size, falling back to the configured
// fallback icon when the theme lacks it.
func (ic *IconCache) Icon(name string, size int) (*gdk.Pixbuf, error) {
	if name == "" {
		name = ic.fallback
	}

	key := fmt.Sprintf("%s@%d", name, size)
	if pixbuf, ok := ic.cache.Get(key); ok {
		ic.hits++
		return pixbuf, nil
	}
	ic.misses++

	pixbuf, err := ic.load(name, size)
	if err != nil {
		if name == ic.fallback || ic.fallback == "" {
			return nil, err
		}
		log.Printf("[CORE] Icon '%s' unavailable (%v), using '%s'", name, err, ic.fallback)
		pixbuf, err = ic.load(ic.fallback, size)
		if err != nil {
			return nil, err
		}
	}

	ic.cache.Add(key, pixbuf)
	return pixbuf, nil
}

func (ic *IconCache) load(name string, size int) (*gdk.Pixbuf, error) {
	if !ic.theme.HasIcon(name) {
		return nil, fmt.Errorf("icon '%s' not found in theme", name)
	}
	pixbuf, err := ic.theme.LoadIcon(name, size, gtk.ICON_LOOKUP_USE_BUILTIN)
	if err != nil {
		return nil, err
	}
	return pixbuf, nil
}

func (ic *IconCache) Stats() (hits, misses int64, size int) {
	return ic.hits, ic.misses, ic.cache.Len()
}
