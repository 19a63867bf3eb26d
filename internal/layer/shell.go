package layer

/*
#cgo pkg-config: gtk-layer-shell-0
#include <gtk-layer-shell.h>
*/
import "C"
import (
	"log"
	"unsafe"

	"github.com/chess10kp/dockrun/internal/dock"
)

// IsSupported reports whether the compositor speaks wlr-layer-shell.
func IsSupported() bool {
	return C.gtk_layer_is_supported() != 0
}

// InitForWindow initializes a window as a layer shell surface
func InitForWindow(window unsafe.Pointer) {
	C.gtk_layer_init_for_window((*C.GtkWindow)(window))
}

func SetLayer(window unsafe.Pointer, layer Layer) {
	C.gtk_layer_set_layer((*C.GtkWindow)(window), C.GtkLayerShellLayer(layer))
}

func SetAnchor(window unsafe.Pointer, edge Edge, anchorTo bool) {
	var anchor C.gboolean
	if anchorTo {
		anchor = 1
	}
	C.gtk_layer_set_anchor((*C.GtkWindow)(window), C.GtkLayerShellEdge(edge), anchor)
}

// SetExclusiveZone reserves zone pixels along the anchored edge.
func SetExclusiveZone(window unsafe.Pointer, zone int) {
	C.gtk_layer_set_exclusive_zone((*C.GtkWindow)(window), C.int(zone))
}

func SetKeyboardMode(window unsafe.Pointer, mode KeyboardMode) {
	C.gtk_layer_set_keyboard_mode((*C.GtkWindow)(window), C.GtkLayerShellKeyboardMode(mode))
}

// Dock turns window into a strip along edge: anchored to that edge and
// both neighbouring edges, on the top layer, without keyboard focus until
// a session grabs it.
func Dock(window unsafe.Pointer, edge dock.Edge) {
	InitForWindow(window)
	SetLayer(window, LayerTop)
	SetKeyboardMode(window, KeyboardModeNone)

	for _, e := range anchors(edge) {
		SetAnchor(window, e, true)
	}
}

// anchors lists the layer shell edges a strip on edge is pinned to.
func anchors(edge dock.Edge) []Edge {
	if edge.Vertical() {
		return []Edge{Edge(edge), EdgeTop, EdgeBottom}
	}
	return []Edge{Edge(edge), EdgeLeft, EdgeRight}
}

// ExclusiveZone publishes a reservation as a layer shell exclusive zone.
type ExclusiveZone struct {
	window unsafe.Pointer
	edge   dock.Edge
}

func NewExclusiveZone(window unsafe.Pointer, edge dock.Edge) *ExclusiveZone {
	return &ExclusiveZone{window: window, edge: edge}
}

func (z *ExclusiveZone) SetStrut(s dock.Strut) error {
	zone := int(s[int(z.edge)])
	log.Printf("[DOCK] Exclusive zone on %s edge: %d", z.edge, zone)
	SetExclusiveZone(z.window, zone)
	return nil
}

// KeyboardFocus grabs the keyboard by switching the surface to exclusive
// keyboard interactivity for the duration of a session.
type KeyboardFocus struct {
	window unsafe.Pointer
}

func NewKeyboardFocus(window unsafe.Pointer) *KeyboardFocus {
	return &KeyboardFocus{window: window}
}

func (k *KeyboardFocus) Grab() error {
	SetKeyboardMode(k.window, KeyboardModeExclusive)
	return nil
}

func (k *KeyboardFocus) Release() {
	SetKeyboardMode(k.window, KeyboardModeNone)
}

// Layer represents a layer shell layer
type Layer int

const LayerTop Layer = 2

// Edge is a layer shell edge. Its values line up with dock.Edge.
type Edge int

const (
	EdgeLeft   Edge = 0
	EdgeRight  Edge = 1
	EdgeTop    Edge = 2
	EdgeBottom Edge = 3
)

type KeyboardMode int

const (
	KeyboardModeNone      KeyboardMode = 0
	KeyboardModeExclusive KeyboardMode = 1
)
