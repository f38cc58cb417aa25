// Package pty starts processes attached to a pseudo-terminal.
package pty

import (
	"context"
	"io"
	"os"
	"os/exec"

	"github.com/creack/pty"
)

// Size represents terminal dimensions in rows and columns.
type Size struct {
	Rows uint16
	Cols uint16
}

// Runner is the interface for spawning and controlling a PTY.
// Implementations can be swapped (e.g. creack/pty, or a mock for tests).
type Runner interface {
	Start(ctx context.Context, cmd *exec.Cmd, size Size) (io.ReadWriteCloser, error)
	Resize(rwc io.ReadWriteCloser, size Size) error
}

// CreackPTY implements Runner using github.com/creack/pty.
type CreackPTY struct{}

// Ensure CreackPTY implements Runner.
var _ Runner = (*CreackPTY)(nil)

// Start implements Runner. Spawns cmd in a PTY with the given size. When ctx
// ends the PTY is closed, which ends the shell's session.
func (c *CreackPTY) Start(ctx context.Context, cmd *exec.Cmd, size Size) (io.ReadWriteCloser, error) {
	f, err := pty.StartWithSize(cmd, &pty.Winsize{Rows: size.Rows, Cols: size.Cols})
	if err != nil {
		return nil, err
	}
	if ctx != nil {
		context.AfterFunc(ctx, func() { _ = f.Close() })
	}
	return f, nil
}

// Resize implements Runner. Resizes the PTY to the given dimensions.
// The rwc must be the *os.File returned by Start; other types are no-op.
func (c *CreackPTY) Resize(rwc io.ReadWriteCloser, size Size) error {
	f, ok := rwc.(*os.File)
	if !ok {
		return nil
	}
	return pty.Setsize(f, &pty.Winsize{Rows: size.Rows, Cols: size.Cols})
}

// Shell returns the command for the user's interactive shell in dir:
// $SHELL, else bash, else sh.
func Shell(dir string) *exec.Cmd {
	shell := os.Getenv("SHELL")
	if shell == "" {
		shell = "sh"
		if path, err := exec.LookPath("bash"); err == nil {
			shell = path
		}
	}
	cmd := exec.Command(shell)
	cmd.Dir = dir
	if cmd.Dir == "" {
		cmd.Dir = "."
	}
	cmd.Env = append(os.Environ(), "TERM=xterm-256color")
	return cmd
}
