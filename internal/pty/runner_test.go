package pty

import (
	"testing"
)

func TestShell_UsesEnvShell(t *testing.T) {
	t.Setenv("SHELL", "/bin/zsh")
	cmd := Shell("/tmp")
	if cmd.Path != "/bin/zsh" && cmd.Args[0] != "/bin/zsh" {
		t.Errorf("expected $SHELL to be used, got %q", cmd.Args[0])
	}
	if cmd.Dir != "/tmp" {
		t.Errorf("Dir = %q, want /tmp", cmd.Dir)
	}
}

func TestShell_DefaultsDir(t *testing.T) {
	t.Setenv("SHELL", "")
	cmd := Shell("")
	if cmd.Dir != "." {
		t.Errorf("Dir = %q, want .", cmd.Dir)
	}
	found := false
	for _, e := range cmd.Env {
		if e == "TERM=xterm-256color" {
			found = true
		}
	}
	if !found {
		t.Error("expected TERM to be set")
	}
}
