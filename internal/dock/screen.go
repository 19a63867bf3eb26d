package dock

import (
	"context"
	"errors"
	"os"

	"github.com/joshuarubin/go-sway"
)

var ErrNoFocusedOutput = errors.New("no focused sway output")

// UnderSway reports whether a sway IPC socket is advertised.
func UnderSway() bool {
	return os.Getenv("SWAYSOCK") != ""
}

// SwayScreen returns the geometry of the output holding the focused
// workspace.
func SwayScreen(ctx context.Context) (Rect, error) {
	client, err := sway.New(ctx)
	if err != nil {
		return Rect{}, err
	}

	workspaces, err := client.GetWorkspaces(ctx)
	if err != nil {
		return Rect{}, err
	}

	outputs, err := client.GetOutputs(ctx)
	if err != nil {
		return Rect{}, err
	}

	return focusedOutput(workspaces, outputs)
}

func focusedOutput(workspaces []sway.Workspace, outputs []sway.Output) (Rect, error) {
	name := ""
	for _, ws := range workspaces {
		if ws.Focused {
			name = ws.Output
			break
		}
	}

	for _, o := range outputs {
		if !o.Active {
			continue
		}
		if name == "" || o.Name == name {
			return Rect{
				X:      int(o.Rect.X),
				Y:      int(o.Rect.Y),
				Width:  int(o.Rect.Width),
				Height: int(o.Rect.Height),
			}, nil
		}
	}
	return Rect{}, ErrNoFocusedOutput
}
