// Package selector implements the incremental prefix-filter selection
// session: typed query, filtered view, wrapping cursor and the no-match
// state.
package selector

import (
	"errors"
	"fmt"
	"log"
	"regexp"
	"unicode"
	"unicode/utf8"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/chess10kp/dockrun/internal/entry"
)

var ErrSessionActive = errors.New("selection session already active")

const matcherCacheSize = 64

// State of a selection session.
type State int

const (
	// StateActive means at least one candidate matches the query.
	StateActive State = iota
	// StateEmpty means nothing matches; only the sentinel is visible.
	StateEmpty
)

func (s State) String() string {
	if s == StateEmpty {
		return "empty"
	}
	return "active"
}

// Grabber holds exclusive keyboard input for the length of a session.
type Grabber interface {
	Grab() error
	Release()
}

type noGrab struct{}

func (noGrab) Grab() error { return nil }
func (noGrab) Release()    {}

// Handlers receive the outcome of a session. Exactly one of them fires per
// session.
type Handlers struct {
	OnSelected  func(entry.Entry)
	OnCancelled func()
}

// Engine is a single selection session at a time. It is not safe for
// concurrent use; the shell drives it from its main loop.
type Engine struct {
	candidates []entry.Entry
	filtered   []entry.Entry
	query      string
	cursor     int
	done       bool
	grab       Grabber
	grabbed    bool
	handlers   Handlers
	matchers   *lru.Cache[string, *regexp.Regexp]
}

// New creates an idle engine. grab may be nil when no input device needs
// to be captured.
func New(grab Grabber, handlers Handlers) (*Engine, error) {
	if grab == nil {
		grab = noGrab{}
	}

	matchers, err := lru.New[string, *regexp.Regexp](matcherCacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create matcher cache: %w", err)
	}

	return &Engine{
		done:     true,
		grab:     grab,
		handlers: handlers,
		matchers: matchers,
	}, nil
}

// Select starts a session over candidates, which should already be ranked.
func (e *Engine) Select(candidates []entry.Entry) error {
	if !e.done {
		return ErrSessionActive
	}

	if err := e.grab.Grab(); err != nil {
		return fmt.Errorf("failed to grab keyboard: %w", err)
	}
	e.grabbed = true

	e.candidates = candidates
	e.query = ""
	e.cursor = 0
	e.done = false
	e.refilter()

	log.Printf("[SELECTOR] Session started with %d candidates", len(candidates))
	return nil
}

// Type appends a single printable character to the query and moves the
// cursor back to the first match. Anything else is rejected.
func (e *Engine) Type(text string) bool {
	if e.done || !isCharacter(text) {
		return false
	}

	e.query += text
	e.cursor = 0
	e.refilter()
	return true
}

// Backspace removes the last character of the query.
func (e *Engine) Backspace() {
	if e.done || e.query == "" {
		return
	}

	_, size := utf8.DecodeLastRuneInString(e.query)
	e.query = e.query[:len(e.query)-size]
	e.refilter()
}

// Move shifts the cursor by delta, wrapping around the filtered list.
func (e *Engine) Move(delta int) {
	if e.done || len(e.filtered) == 0 {
		return
	}

	e.cursor += delta
	e.normalize()
}

// Confirm ends the session with the highlighted entry. It does nothing
// while no candidate matches.
func (e *Engine) Confirm() (entry.Entry, bool) {
	if e.done || len(e.filtered) == 0 {
		return entry.Entry{}, false
	}

	selected := e.filtered[e.cursor]
	e.end()

	log.Printf("[SELECTOR] Selected '%s'", selected.Name)
	if e.handlers.OnSelected != nil {
		e.handlers.OnSelected(selected)
	}
	return selected, true
}

// Cancel ends the session without a selection.
func (e *Engine) Cancel() {
	if e.done {
		return
	}

	e.end()

	log.Printf("[SELECTOR] Cancelled")
	if e.handlers.OnCancelled != nil {
		e.handlers.OnCancelled()
	}
}

// State reports whether anything matches the current query.
func (e *Engine) State() State {
	if len(e.filtered) == 0 {
		return StateEmpty
	}
	return StateActive
}

// Done reports whether no session is running.
func (e *Engine) Done() bool {
	return e.done
}

// Query returns the typed prefix.
func (e *Engine) Query() string {
	return e.query
}

// Cursor returns the index of the highlighted element of Visible.
func (e *Engine) Cursor() int {
	return e.cursor
}

// Filtered returns the candidates matching the query, in candidate order.
func (e *Engine) Filtered() []entry.Entry {
	return e.filtered
}

// Visible returns the filtered list, or just the sentinel when it is empty.
func (e *Engine) Visible() []entry.Entry {
	if len(e.filtered) == 0 {
		return []entry.Entry{entry.NoMatch}
	}
	return e.filtered
}

// Current returns the highlighted entry, which is the sentinel in the empty
// state.
func (e *Engine) Current() entry.Entry {
	return e.Visible()[e.cursor]
}

// Rows returns render records for Visible with the cursor element active.
func (e *Engine) Rows() []entry.Row {
	visible := e.Visible()
	rows := make([]entry.Row, len(visible))
	for i, v := range visible {
		rows[i] = v.Row(i == e.cursor)
	}
	return rows
}

// Page returns the bounds of the page of at most size rows of Visible that
// contains the cursor.
func (e *Engine) Page(size int) (start, end int) {
	n := len(e.Visible())
	if size <= 0 || size >= n {
		return 0, n
	}

	start = (e.cursor / size) * size
	end = start + size
	if end > n {
		end = n
	}
	return start, end
}

func (e *Engine) end() {
	e.done = true
	if e.grabbed {
		e.grab.Release()
		e.grabbed = false
	}
}

func (e *Engine) refilter() {
	match := e.matcher(e.query)

	filtered := make([]entry.Entry, 0, len(e.candidates))
	for _, c := range e.candidates {
		if match.MatchString(c.Name) || match.MatchString(c.Group()) {
			filtered = append(filtered, c)
		}
	}
	e.filtered = filtered
	e.normalize()
}

func (e *Engine) normalize() {
	n := len(e.filtered)
	if n == 0 {
		e.cursor = 0
		return
	}
	e.cursor %= n
	if e.cursor < 0 {
		e.cursor += n
	}
}

// matcher returns the anchored, case-insensitive prefix pattern for query.
func (e *Engine) matcher(query string) *regexp.Regexp {
	if re, ok := e.matchers.Get(query); ok {
		return re
	}

	re := regexp.MustCompile("(?i)^" + regexp.QuoteMeta(query))
	e.matchers.Add(query, re)
	return re
}

func isCharacter(text string) bool {
	if utf8.RuneCountInString(text) != 1 {
		return false
	}
	r, _ := utf8.DecodeRuneInString(text)
	return r != utf8.RuneError && unicode.IsPrint(r)
}
