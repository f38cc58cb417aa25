package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os/exec"
	"runtime"
)

// browserOpener opens workspace URLs with the platform's URL handler.
type browserOpener struct {
	ctx context.Context
	log *slog.Logger
}

func newBrowserOpener(ctx context.Context, log *slog.Logger) *browserOpener {
	return &browserOpener{ctx: ctx, log: log}
}

// Open implements workspace.Opener. It does not wait for the browser.
func (o *browserOpener) Open(url string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.CommandContext(o.ctx, "open", url)
	case "windows":
		cmd = exec.CommandContext(o.ctx, "rundll32", "url.dll,FileProtocolHandler", url)
	default:
		cmd = exec.CommandContext(o.ctx, "xdg-open", url)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("open %s: %w", url, err)
	}
	o.log.Debug("opened workspace", "url", url)
	go func() { _ = cmd.Wait() }()
	return nil
}

// printOpener writes the URL instead of launching a browser.
type printOpener struct {
	w io.Writer
}

// Open implements workspace.Opener.
func (o printOpener) Open(url string) error {
	_, err := fmt.Fprintln(o.w, url)
	return err
}
