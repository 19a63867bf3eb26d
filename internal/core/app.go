package core

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/chess10kp/dockrun/internal/apps"
	"github.com/chess10kp/dockrun/internal/config"
	"github.com/chess10kp/dockrun/internal/entry"
	"github.com/chess10kp/dockrun/internal/history"
	"github.com/chess10kp/dockrun/internal/launcher"
	"github.com/chess10kp/dockrun/internal/selector"
	"github.com/gotk3/gotk3/gdk"
	"github.com/gotk3/gotk3/glib"
	"github.com/gotk3/gotk3/gtk"
)

// App runs a single launcher session: discover, rank, select, launch.
type App struct {
	config     *config.Config
	source     apps.Source
	history    *history.History
	launcher   *launcher.Launcher
	engine     *selector.Engine
	dock       *Dock
	icons      *IconCache
	candidates []entry.Entry
	sigChan    chan os.Signal
	running    bool
	restarting bool
	err        error
}

// NewApp creates a new application
func NewApp(cfg *config.Config) (*App, error) {
	source, err := apps.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create entry source: %w", err)
	}

	hist := history.Disabled()
	if cfg.History.Enabled {
		hist = history.New(cfg.History.Path)
	}

	a := &App{
		config:  cfg,
		source:  source,
		history: hist,
		sigChan: make(chan os.Signal, 1),
	}
	a.launcher = launcher.New(a.onLaunched, a.onFailed)
	return a, nil
}

// Run blocks in the GTK main loop until the session ends. The returned
// error is the fatal condition that stopped it, if any.
func (a *App) Run() error {
	candidates, err := a.discover()
	if err != nil {
		return err
	}
	a.candidates = candidates

	gtk.Init(nil)
	SetupStyles(a.config)

	if a.config.Icons.Enabled {
		icons, err := NewIconCache(a.config)
		if err != nil {
			log.Printf("[CORE] Icons disabled: %v", err)
		} else {
			a.icons = icons
		}
	}

	d, err := NewDock(a.config, a.icons)
	if err != nil {
		return fmt.Errorf("failed to create dock: %w", err)
	}
	a.dock = d

	engine, err := selector.New(d, selector.Handlers{
		OnSelected:  a.onSelected,
		OnCancelled: a.onCancelled,
	})
	if err != nil {
		d.Close()
		return err
	}
	a.engine = engine

	d.OnKey(func(k selector.Key) bool {
		handled := a.engine.HandleKey(k)
		if !a.engine.Done() {
			a.render()
		}
		return handled
	})

	d.OnMapped(func() {
		glib.IdleAdd(func() bool {
			a.startSession()
			return false
		})
	})

	a.running = true
	if err := d.Show(); err != nil {
		d.Close()
		return err
	}
	a.handleSignals()

	log.Printf("[CORE] %s started with %d candidates", a.config.AppName, len(a.candidates))
	gtk.Main()

	a.dock.Close()
	return a.err
}

func (a *App) handleSignals() {
	signal.Notify(a.sigChan, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)
	go func() {
		for sig := range a.sigChan {
			log.Printf("[CORE] Received signal: %v", sig)
			if sig == syscall.SIGHUP {
				glib.IdleAdd(func() bool {
					a.rescan()
					return false
				})
				continue
			}
			glib.IdleAdd(func() bool {
				a.Quit()
				return false
			})
			return
		}
	}()
}

func (a *App) discover() ([]entry.Entry, error) {
	found, err := a.source.Discover()
	if err != nil {
		return nil, fmt.Errorf("discovery failed: %w", err)
	}

	if ds, ok := a.source.(*apps.DesktopSource); ok {
		hits, misses := ds.Stats()
		log.Printf("[APPS] Parse cache: %d hits, %d misses", hits, misses)
	}

	ranked, err := a.history.Sort(found)
	if err != nil {
		return nil, err
	}
	log.Printf("[APPS] Discovered %d entries", len(ranked))
	return ranked, nil
}

func (a *App) startSession() {
	if err := a.engine.Select(a.candidates); err != nil {
		a.fatal(err)
		return
	}
	a.render()
}

func (a *App) rescan() {
	candidates, err := a.discover()
	if err != nil {
		a.fatal(err)
		return
	}
	a.candidates = candidates

	if a.engine.Done() {
		return
	}
	a.restarting = true
	a.engine.Cancel()
}

func (a *App) render() {
	start, end := a.engine.Page(a.dock.PageSize())
	a.dock.Render(a.engine.Query(), a.engine.Rows()[start:end])
}

// onSelected launches e. Start failures are handled by onFailed, which
// the launcher calls before returning the same error.
func (a *App) onSelected(e entry.Entry) {
	_ = a.launcher.Launch(e)
}

func (a *App) onCancelled() {
	if a.restarting {
		a.restarting = false
		a.startSession()
		return
	}
	a.Quit()
}

func (a *App) onLaunched(e entry.Entry) {
	if err := a.history.Record(e.Command); err != nil {
		a.fatal(err)
		return
	}
	a.Quit()
}

// onFailed reopens the strip over the same candidates so another entry
// can be picked.
func (a *App) onFailed(e entry.Entry, err error) {
	if !a.running {
		return
	}
	glib.IdleAdd(func() bool {
		a.startSession()
		return false
	})
}

func (a *App) fatal(err error) {
	log.Printf("[CORE] Fatal: %v", err)
	if a.err == nil {
		a.err = err
	}
	a.Quit()
}

// Quit ends any running session and leaves the main loop.
func (a *App) Quit() {
	if !a.running {
		return
	}
	a.running = false

	log.Println("[CORE] Shutting down...")
	signal.Stop(a.sigChan)

	if a.icons != nil {
		hits, misses, size := a.icons.Stats()
		log.Printf("[CORE] Icon cache: %d hits, %d misses, %d cached", hits, misses, size)
	}

	if a.engine != nil && !a.engine.Done() {
		a.restarting = false
		a.engine.Cancel()
	}

	gtk.MainQuit()
}

// keyFromEvent converts a GDK key press into a selector key.
func keyFromEvent(ev *gdk.EventKey) selector.Key {
	keyval := ev.KeyVal()
	state := gdk.ModifierType(ev.State())

	k := selector.Key{
		Name: gdk.KeyvalName(keyval),
		Ctrl: state&gdk.CONTROL_MASK != 0,
		Alt:  state&gdk.MOD1_MASK != 0,
	}
	if r := gdk.KeyvalToUnicode(keyval); r != 0 {
		k.Text = string(r)
	}
	return k
}
