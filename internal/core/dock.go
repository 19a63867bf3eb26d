package core

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"
	"unsafe"

	"github.com/chess10kp/dockrun/internal/config"
	"github.com/chess10kp/dockrun/internal/dock"
	"github.com/chess10kp/dockrun/internal/entry"
	"github.com/chess10kp/dockrun/internal/layer"
	"github.com/chess10kp/dockrun/internal/selector"
	"github.com/gotk3/gotk3/gdk"
	"github.com/gotk3/gotk3/gtk"
)

// slotChars is the width of one entry label in characters. Every entry
// gets the same slot so a page always holds the same number of entries.
const slotChars = 16

// Dock is the strip window along one screen edge.
type Dock struct {
	config      *config.Config
	edge        dock.Edge
	window      *gtk.Window
	strip       *gtk.Box
	query       *gtk.Label
	icons       *IconCache
	pool        *ItemPool
	items       []*item
	wayland     bool
	thickness   int
	slot        int
	screen      dock.Rect
	reservation *dock.Reservation
	grab        selector.Grabber
	onKey       func(selector.Key) bool
	onMapped    func()
	mapped      bool
}

func NewDock(cfg *config.Config, icons *IconCache) (*Dock, error) {
	edge, err := dock.ParseEdge(cfg.Dock.Edge)
	if err != nil {
		return nil, err
	}

	window, err := gtk.WindowNew(gtk.WINDOW_TOPLEVEL)
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	window.SetTitle(cfg.AppName)
	window.SetRole(cfg.AppID)
	window.SetName("dock-window")
	window.SetDecorated(false)
	window.SetSkipTaskbarHint(true)
	window.SetSkipPagerHint(true)

	orientation := gtk.ORIENTATION_HORIZONTAL
	if edge.Vertical() {
		orientation = gtk.ORIENTATION_VERTICAL
	}

	box, err := gtk.BoxNew(orientation, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to create box: %w", err)
	}
	box.SetName("dock-box")
	window.Add(box)

	query, err := gtk.LabelNew("")
	if err != nil {
		return nil, fmt.Errorf("failed to create query label: %w", err)
	}
	query.SetName("dock-query")
	box.PackStart(query, false, false, 0)

	strip, err := gtk.BoxNew(orientation, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to create strip: %w", err)
	}
	strip.SetName("dock-strip")
	box.PackStart(strip, true, true, 0)

	d := &Dock{
		config:  cfg,
		edge:    edge,
		window:  window,
		strip:   strip,
		query:   query,
		icons:   icons,
		pool:    NewItemPool(),
		wayland: layer.IsSupported(),
	}

	if err := d.measure(); err != nil {
		return nil, err
	}

	window.Connect("key-press-event", func(win *gtk.Window, event *gdk.Event) bool {
		if d.onKey == nil {
			return false
		}
		return d.onKey(keyFromEvent(gdk.EventKeyNewFromEvent(event)))
	})

	window.Connect("map-event", func(win *gtk.Window, event *gdk.Event) bool {
		if !d.mapped && d.onMapped != nil {
			d.mapped = true
			d.onMapped()
		}
		return false
	})

	return d, nil
}

// OnMapped sets a callback run once, when the strip first becomes
// viewable. Keyboard grabs fail before that.
func (d *Dock) OnMapped(fn func()) {
	d.onMapped = fn
}

// OnKey sets the handler for key presses on the strip.
func (d *Dock) OnKey(fn func(selector.Key) bool) {
	d.onKey = fn
}

// measure derives the strip thickness and the slot length from the font.
func (d *Dock) measure() error {
	probe, err := gtk.LabelNew(strings.Repeat("M", slotChars))
	if err != nil {
		return fmt.Errorf("failed to create probe label: %w", err)
	}

	_, height := probe.GetPreferredHeight()
	_, width := probe.GetPreferredWidth()

	iconSize := 0
	if d.icons != nil {
		iconSize = d.config.Icons.Size
	}
	if iconSize > height {
		height = iconSize
	}

	margin := d.config.Appearance.Margin
	d.thickness = height + 2*margin
	d.slot = width + iconSize + 2*margin
	if d.edge.Vertical() {
		d.thickness = d.slot
		d.slot = height + 2*margin
	}

	log.Printf("[DOCK] Thickness %d, slot %d", d.thickness, d.slot)
	return nil
}

// screenGeometry returns the rectangle the strip is placed on: the focused
// sway output when running under sway, the primary monitor otherwise.
func (d *Dock) screenGeometry() (dock.Rect, error) {
	if dock.UnderSway() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()

		rect, err := dock.SwayScreen(ctx)
		if err == nil {
			return rect, nil
		}
		log.Printf("[DOCK] Sway output query failed, using GDK: %v", err)
	}

	display, err := gdk.DisplayGetDefault()
	if err != nil {
		return dock.Rect{}, fmt.Errorf("failed to get display: %w", err)
	}

	monitor, err := display.GetPrimaryMonitor()
	if err != nil || monitor == nil {
		monitor, err = display.GetMonitor(0)
		if err != nil {
			return dock.Rect{}, fmt.Errorf("failed to get monitor: %w", err)
		}
	}

	g := monitor.GetGeometry()
	return dock.Rect{X: g.GetX(), Y: g.GetY(), Width: g.GetWidth(), Height: g.GetHeight()}, nil
}

// Show places the strip, maps it and reserves its edge.
func (d *Dock) Show() error {
	screen, err := d.screenGeometry()
	if err != nil {
		return err
	}
	d.screen = screen

	rect, strut, err := dock.Place(d.edge, d.thickness, screen)
	if err != nil {
		return err
	}

	var target dock.StrutTarget
	if d.wayland {
		ptr := unsafe.Pointer(d.window.Native())
		layer.Dock(ptr, d.edge)
		if d.edge.Vertical() {
			d.window.SetSizeRequest(rect.Width, -1)
		} else {
			d.window.SetSizeRequest(-1, rect.Height)
		}
		d.window.ShowAll()

		target = layer.NewExclusiveZone(ptr, d.edge)
		d.grab = layer.NewKeyboardFocus(ptr)
	} else {
		d.window.SetTypeHint(gdk.WINDOW_TYPE_HINT_DOCK)
		d.window.SetKeepAbove(true)
		d.window.Stick()
		d.window.SetDefaultSize(rect.Width, rect.Height)
		d.window.SetSizeRequest(rect.Width, rect.Height)
		d.window.Move(rect.X, rect.Y)
		d.window.ShowAll()

		gdkWindow, err := d.window.GetWindow()
		if err != nil {
			return fmt.Errorf("failed to get GDK window: %w", err)
		}
		ptr := unsafe.Pointer(gdkWindow.Native())
		target = layer.NewStrutProperty(ptr)
		d.grab = layer.NewSeatGrab(ptr)
	}

	res, err := dock.Reserve(target, strut)
	if err != nil {
		return err
	}
	d.reservation = res

	d.watchScreen()
	log.Printf("[DOCK] Showing on %s edge at %+v", d.edge, rect)
	return nil
}

// watchScreen re-places the strip and republishes the reservation when
// the screen changes size.
func (d *Dock) watchScreen() {
	screen, err := gdk.ScreenGetDefault()
	if err != nil || screen == nil {
		return
	}

	screen.Connect("size-changed", func() {
		rect, err := d.screenGeometry()
		if err != nil {
			log.Printf("[DOCK] Screen query failed: %v", err)
			return
		}
		d.screen = rect

		win, strut, err := dock.Place(d.edge, d.thickness, rect)
		if err != nil {
			log.Printf("[DOCK] Placement failed: %v", err)
			return
		}
		if !d.wayland {
			d.window.SetSizeRequest(win.Width, win.Height)
			d.window.Move(win.X, win.Y)
		}
		if err := d.reservation.Update(strut); err != nil {
			log.Printf("[DOCK] Reservation update failed: %v", err)
		}
	})
}

// PageSize is how many entries fit along the strip next to the query.
func (d *Dock) PageSize() int {
	length := d.screen.Width
	if d.edge.Vertical() {
		length = d.screen.Height
	}

	_, used := d.query.GetPreferredWidth()
	if d.edge.Vertical() {
		_, used = d.query.GetPreferredHeight()
	}

	if d.slot <= 0 {
		return 1
	}
	n := (length - used) / d.slot
	if n < 1 {
		n = 1
	}
	return n
}

// Render replaces the strip contents with rows.
func (d *Dock) Render(query string, rows []entry.Row) {
	d.query.SetText(query)

	for _, it := range d.items {
		d.strip.Remove(it.box)
		d.pool.Put(it)
	}
	d.items = d.items[:0]

	for _, row := range rows {
		it, err := d.pool.Get()
		if err != nil {
			log.Printf("[DOCK] Failed to create item: %v", err)
			continue
		}
		it.set(row, d.icons, d.config.Icons.Size)
		d.strip.PackStart(it.box, false, false, 0)
		d.items = append(d.items, it)
	}
	d.strip.ShowAll()
}

// Grab implements selector.Grabber for the window system in use.
func (d *Dock) Grab() error {
	if d.grab == nil {
		return fmt.Errorf("dock is not shown")
	}
	d.window.Present()
	return d.grab.Grab()
}

func (d *Dock) Release() {
	if d.grab != nil {
		d.grab.Release()
	}
}

// Close clears the edge reservation and destroys the window.
func (d *Dock) Close() {
	if d.reservation != nil {
		if err := d.reservation.Release(); err != nil {
			log.Printf("[DOCK] Failed to release reservation: %v", err)
		}
	}
	if d.window != nil {
		d.window.Destroy()
		d.window = nil
	}
}
