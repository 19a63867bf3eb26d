package core

import (
	"github.com/chess10kp/dockrun/internal/entry"
	"github.com/gotk3/gotk3/gtk"
	"github.com/gotk3/gotk3/pango"
)

// item is one reusable entry widget in the strip.
type item struct {
	box   *gtk.Box
	image *gtk.Image
	label *gtk.Label
}

// ItemPool recycles strip items between renders so typing does not
// rebuild widgets on every key press.
type ItemPool struct {
	items []*item
}

func NewItemPool() *ItemPool {
	return &ItemPool{
		items: make([]*item, 0),
	}
}

// Get returns a pooled item or creates a new one.
func (p *ItemPool) Get() (*item, error) {
	if len(p.items) > 0 {
		it := p.items[len(p.items)-1]
		p.items = p.items[:len(p.items)-1]
		return it, nil
	}

	box, err := gtk.BoxNew(gtk.ORIENTATION_HORIZONTAL, 4)
	if err != nil {
		return nil, err
	}

	ctx, err := box.GetStyleContext()
	if err != nil {
		return nil, err
	}
	ctx.AddClass("dock-item")

	image, err := gtk.ImageNew()
	if err != nil {
		return nil, err
	}
	box.PackStart(image, false, false, 0)

	label, err := gtk.LabelNew("")
	if err != nil {
		return nil, err
	}
	label.SetWidthChars(slotChars)
	label.SetMaxWidthChars(slotChars)
	label.SetEllipsize(pango.ELLIPSIZE_END)
	label.SetXAlign(0)
	box.PackStart(label, true, true, 0)

	return &item{box: box, image: image, label: label}, nil
}

// Put hides an item and keeps it for reuse.
func (p *ItemPool) Put(it *item) {
	if it == nil {
		return
	}
	it.box.Hide()
	p.items = append(p.items, it)
}

// set shows row in the item.
func (it *item) set(row entry.Row, icons *IconCache, iconSize int) {
	it.label.SetText(row.Text)

	if ctx, err := it.box.GetStyleContext(); err == nil {
		ctx.RemoveClass("active")
		ctx.RemoveClass("error")
		switch row.Emphasis {
		case entry.EmphasisActive:
			ctx.AddClass("active")
		case entry.EmphasisError:
			ctx.AddClass("error")
		}
	}

	it.image.Clear()
	if icons != nil {
		if pixbuf, err := icons.Icon(row.Icon, iconSize); err == nil {
			it.image.SetFromPixbuf(pixbuf)
		}
	}
}
