package layer

/*
#cgo pkg-config: gtk+-3.0
#include <gdk/gdk.h>

static void dockrun_set_struts(GdkWindow *window, gulong *partial) {
	gdk_property_change(window,
		gdk_atom_intern_static_string("_NET_WM_STRUT_PARTIAL"),
		gdk_atom_intern_static_string("CARDINAL"),
		32, GDK_PROP_MODE_REPLACE, (const guchar *)partial, 12);
	gdk_property_change(window,
		gdk_atom_intern_static_string("_NET_WM_STRUT"),
		gdk_atom_intern_static_string("CARDINAL"),
		32, GDK_PROP_MODE_REPLACE, (const guchar *)partial, 4);
}

static GdkGrabStatus dockrun_grab_keyboard(GdkWindow *window) {
	GdkSeat *seat = gdk_display_get_default_seat(gdk_window_get_display(window));
	return gdk_seat_grab(seat, window, GDK_SEAT_CAPABILITY_KEYBOARD,
		FALSE, NULL, NULL, NULL, NULL);
}

static void dockrun_ungrab_keyboard(GdkWindow *window) {
	GdkSeat *seat = gdk_display_get_default_seat(gdk_window_get_display(window));
	gdk_seat_ungrab(seat);
}
*/
import "C"
import (
	"fmt"
	"log"
	"unsafe"

	"github.com/chess10kp/dockrun/internal/dock"
)

// StrutProperty writes _NET_WM_STRUT_PARTIAL (and the legacy
// _NET_WM_STRUT) on a realized GdkWindow.
type StrutProperty struct {
	window unsafe.Pointer
}

func NewStrutProperty(gdkWindow unsafe.Pointer) *StrutProperty {
	return &StrutProperty{window: gdkWindow}
}

func (p *StrutProperty) SetStrut(s dock.Strut) error {
	if p.window == nil {
		return fmt.Errorf("strut target has no window")
	}

	var values [12]C.gulong
	for i, v := range s {
		values[i] = C.gulong(v)
	}
	C.dockrun_set_struts((*C.GdkWindow)(p.window), &values[0])
	log.Printf("[DOCK] _NET_WM_STRUT_PARTIAL = %v", s)
	return nil
}

// SeatGrab grabs the keyboard of the default seat onto a GdkWindow.
type SeatGrab struct {
	window unsafe.Pointer
}

func NewSeatGrab(gdkWindow unsafe.Pointer) *SeatGrab {
	return &SeatGrab{window: gdkWindow}
}

func (g *SeatGrab) Grab() error {
	status := C.dockrun_grab_keyboard((*C.GdkWindow)(g.window))
	if status != C.GDK_GRAB_SUCCESS {
		return fmt.Errorf("keyboard grab failed with status %d", int(status))
	}
	return nil
}

func (g *SeatGrab) Release() {
	C.dockrun_ungrab_keyboard((*C.GdkWindow)(g.window))
}
