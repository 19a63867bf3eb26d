// Package dock computes where the launcher strip sits on screen and the
// edge reservation that keeps other windows out of that strip.
package dock

import (
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidThickness = errors.New("dock thickness must be positive")

// Edge is a screen edge. The values match gtk-layer-shell's edge enum.
type Edge int

const (
	EdgeLeft   Edge = 0
	EdgeRight  Edge = 1
	EdgeTop    Edge = 2
	EdgeBottom Edge = 3
)

func (e Edge) String() string {
	switch e {
	case EdgeLeft:
		return "left"
	case EdgeRight:
		return "right"
	case EdgeTop:
		return "top"
	case EdgeBottom:
		return "bottom"
	default:
		return fmt.Sprintf("Edge(%d)", int(e))
	}
}

// Vertical reports whether the strip runs top to bottom.
func (e Edge) Vertical() bool {
	return e == EdgeLeft || e == EdgeRight
}

// ParseEdge converts a configuration value into an Edge.
func ParseEdge(s string) (Edge, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "left":
		return EdgeLeft, nil
	case "right":
		return EdgeRight, nil
	case "top":
		return EdgeTop, nil
	case "bottom":
		return EdgeBottom, nil
	}
	return 0, fmt.Errorf("unknown edge %q", s)
}

// Rect is a rectangle in root window coordinates.
type Rect struct {
	X, Y          int
	Width, Height int
}

// Strut is a _NET_WM_STRUT_PARTIAL value: left, right, top, bottom widths,
// then start/end pairs for left, right, top and bottom.
type Strut [12]uint32

// Strut field indices.
const (
	StrutLeft = iota
	StrutRight
	StrutTop
	StrutBottom
	StrutLeftStartY
	StrutLeftEndY
	StrutRightStartY
	StrutRightEndY
	StrutTopStartX
	StrutTopEndX
	StrutBottomStartX
	StrutBottomEndX
)

// IsZero reports whether nothing is reserved.
func (s Strut) IsZero() bool {
	return s == Strut{}
}

// Place returns the window rectangle flush against edge with the given
// thickness and the strut reserving exactly that rectangle. The reserved
// range along the edge is stored as start and start+length.
func Place(edge Edge, thickness int, screen Rect) (Rect, Strut, error) {
	if thickness <= 0 {
		return Rect{}, Strut{}, ErrInvalidThickness
	}

	var (
		win   Rect
		strut Strut
	)

	switch edge {
	case EdgeLeft:
		thickness = min(thickness, screen.Width)
		win = Rect{X: screen.X, Y: screen.Y, Width: thickness, Height: screen.Height}
		strut[StrutLeft] = uint32(thickness)
		strut[StrutLeftStartY] = uint32(screen.Y)
		strut[StrutLeftEndY] = uint32(screen.Y + screen.Height)
	case EdgeRight:
		thickness = min(thickness, screen.Width)
		win = Rect{X: screen.X + screen.Width - thickness, Y: screen.Y, Width: thickness, Height: screen.Height}
		strut[StrutRight] = uint32(thickness)
		strut[StrutRightStartY] = uint32(screen.Y)
		strut[StrutRightEndY] = uint32(screen.Y + screen.Height)
	case EdgeTop:
		thickness = min(thickness, screen.Height)
		win = Rect{X: screen.X, Y: screen.Y, Width: screen.Width, Height: thickness}
		strut[StrutTop] = uint32(thickness)
		strut[StrutTopStartX] = uint32(screen.X)
		strut[StrutTopEndX] = uint32(screen.X + screen.Width)
	case EdgeBottom:
		thickness = min(thickness, screen.Height)
		win = Rect{X: screen.X, Y: screen.Y + screen.Height - thickness, Width: screen.Width, Height: thickness}
		strut[StrutBottom] = uint32(thickness)
		strut[StrutBottomStartX] = uint32(screen.X)
		strut[StrutBottomEndX] = uint32(screen.X + screen.Width)
	default:
		return Rect{}, Strut{}, fmt.Errorf("unknown edge %d", int(edge))
	}

	return win, strut, nil
}
