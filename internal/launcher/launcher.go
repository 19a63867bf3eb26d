package launcher

import (
	"errors"
	"fmt"
	"log"
	"os/exec"
	"strings"
	"syscall"

	"github.com/mattn/go-shellwords"

	"github.com/chess10kp/dockrun/internal/entry"
)

var ErrNoCommand = errors.New("entry has no command")

// Launcher starts entries as detached processes and reports the outcome
// through its callbacks. Callbacks fire synchronously from Launch.
type Launcher struct {
	OnLaunched func(e entry.Entry)
	OnFailed   func(e entry.Entry, err error)
}

func New(onLaunched func(entry.Entry), onFailed func(entry.Entry, error)) *Launcher {
	return &Launcher{OnLaunched: onLaunched, OnFailed: onFailed}
}

// Launch starts e.Command in its own session with stdio detached. The
// child is never waited on by the caller and is never retried.
func (l *Launcher) Launch(e entry.Entry) error {
	cmd, err := l.command(e)
	if err != nil {
		l.failed(e, err)
		return err
	}

	if err := cmd.Start(); err != nil {
		err = fmt.Errorf("failed to start %q: %w", e.Command, err)
		l.failed(e, err)
		return err
	}

	pid := cmd.Process.Pid
	log.Printf("[LAUNCH] Started %s (pid %d)", e.Command, pid)

	// Reap in the background so the detached child does not linger as a zombie.
	go func() {
		_ = cmd.Wait()
	}()

	if l.OnLaunched != nil {
		l.OnLaunched(e)
	}
	return nil
}

func (l *Launcher) command(e entry.Entry) (*exec.Cmd, error) {
	if e.IsNoMatch() || strings.TrimSpace(e.Command) == "" {
		return nil, ErrNoCommand
	}

	argv, err := shellwords.Parse(StripFieldCodes(e.Command))
	if err != nil {
		return nil, fmt.Errorf("failed to parse %q: %w", e.Command, err)
	}
	if len(argv) == 0 {
		return nil, ErrNoCommand
	}

	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.SysProcAttr = &syscall.SysProcAttr{
		Setsid: true,
	}
	return cmd, nil
}

func (l *Launcher) failed(e entry.Entry, err error) {
	log.Printf("[LAUNCH] Failed to launch %q: %v", e.Command, err)
	if l.OnFailed != nil {
		l.OnFailed(e, err)
	}
}

// StripFieldCodes removes desktop Exec field codes such as %f and %U and
// turns %% into a literal percent sign. Unknown codes are left alone.
func StripFieldCodes(command string) string {
	var b strings.Builder
	b.Grow(len(command))

	for i := 0; i < len(command); i++ {
		c := command[i]
		if c != '%' || i+1 >= len(command) {
			b.WriteByte(c)
			continue
		}

		next := command[i+1]
		switch next {
		case '%':
			b.WriteByte('%')
			i++
		case 'f', 'F', 'u', 'U', 'd', 'D', 'n', 'N', 'i', 'c', 'k', 'v', 'm':
			i++
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}
