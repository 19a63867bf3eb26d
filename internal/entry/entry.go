// Package entry defines the launchable candidate shared by every discovery
// backend and the render record the shell paints.
package entry

import "strings"

// NoMatchText is shown in place of the sentinel entry.
const NoMatchText = "No match"

// NoMatchIcon is the themed icon used for the sentinel entry.
const NoMatchIcon = "dialog-error"

// Entry is a launchable candidate.
type Entry struct {
	Name    string `json:"name"`
	Command string `json:"command"`
	Icon    string `json:"icon,omitempty"`
}

// NoMatch is the sentinel shown when nothing matches the query.
// It is never a launch target.
var NoMatch = Entry{}

// New creates an entry whose display name and command are the same string,
// as produced by search-path discovery.
func New(name string) Entry {
	return Entry{Name: name, Command: name}
}

// Group returns the last path segment of the command. It is matched against
// the query alongside the name, so "/usr/bin/foo" is found by typing "foo".
func (e Entry) Group() string {
	if i := strings.LastIndex(e.Command, "/"); i >= 0 {
		return e.Command[i+1:]
	}
	return e.Command
}

// IsNoMatch reports whether e is the sentinel entry.
func (e Entry) IsNoMatch() bool {
	return e.Name == "" && e.Command == ""
}

// Emphasis tells the renderer how to treat a row.
type Emphasis int

const (
	EmphasisNormal Emphasis = iota
	EmphasisActive
	EmphasisError
)

func (e Emphasis) String() string {
	switch e {
	case EmphasisActive:
		return "active"
	case EmphasisError:
		return "error"
	default:
		return "normal"
	}
}

// Row is what the shell needs to paint one entry.
type Row struct {
	Text     string
	Icon     string
	Emphasis Emphasis
}

// Row builds the render record for e. The sentinel always renders as an
// error regardless of active.
func (e Entry) Row(active bool) Row {
	if e.IsNoMatch() {
		return Row{Text: NoMatchText, Icon: NoMatchIcon, Emphasis: EmphasisError}
	}

	row := Row{Text: e.Name, Icon: e.Icon, Emphasis: EmphasisNormal}
	if active {
		row.Emphasis = EmphasisActive
	}
	return row
}
