package selector

import "strings"

// Key names as reported by the toolkit's keyval names.
const (
	KeyEscape    = "Escape"
	KeyReturn    = "Return"
	KeyKPEnter   = "KP_Enter"
	KeyBackSpace = "BackSpace"
	KeyLeft      = "Left"
	KeyRight     = "Right"
	KeyUp        = "Up"
	KeyDown      = "Down"
)

// Key is a toolkit-neutral key press.
type Key struct {
	Name string // keyval name, e.g. "Return" or "g"
	Text string // text the key produces, if any
	Ctrl bool
	Alt  bool
}

// HandleKey applies a key press to the session and reports whether it was
// consumed.
func (e *Engine) HandleKey(k Key) bool {
	if e.done {
		return false
	}

	switch {
	case k.Name == KeyEscape,
		k.Ctrl && strings.EqualFold(k.Name, "g"),
		k.Ctrl && strings.EqualFold(k.Name, "c"):
		e.Cancel()
		return true
	case k.Name == KeyReturn || k.Name == KeyKPEnter:
		e.Confirm()
		return true
	case k.Name == KeyBackSpace:
		if k.Ctrl || k.Alt {
			return false
		}
		e.Backspace()
		return true
	case k.Name == KeyLeft || k.Name == KeyUp:
		e.Move(-1)
		return true
	case k.Name == KeyRight || k.Name == KeyDown:
		e.Move(1)
		return true
	}

	if k.Ctrl || k.Alt {
		return false
	}
	return e.Type(k.Text)
}
