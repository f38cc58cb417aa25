package logging

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSink_BuffersUntilFileSet(t *testing.T) {
	s := &Sink{}
	l := New(s)
	l.Info("early message", "key", "value")

	if !strings.Contains(string(s.Buffered()), "early message") {
		t.Fatalf("expected buffered output, got %q", s.Buffered())
	}

	path := filepath.Join(t.TempDir(), "debug.log")
	if err := s.SetFile(path); err != nil {
		t.Fatalf("SetFile: %v", err)
	}
	defer s.Close()

	l.Info("late message")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	got := string(data)
	if !strings.Contains(got, "early message") || !strings.Contains(got, "late message") {
		t.Errorf("expected both messages in file, got %q", got)
	}
	if len(s.Buffered()) != 0 {
		t.Error("expected buffer to be flushed")
	}
}

func TestSink_EmptyPathDiscards(t *testing.T) {
	s := &Sink{}
	_, _ = s.Write([]byte("before\n"))
	if err := s.SetFile(""); err != nil {
		t.Fatalf("SetFile: %v", err)
	}
	_, _ = s.Write([]byte("after\n"))
	if len(s.Buffered()) != 0 {
		t.Errorf("expected nothing buffered, got %q", s.Buffered())
	}
}

func TestSink_BadPath(t *testing.T) {
	s := &Sink{}
	_, _ = s.Write([]byte("x"))
	if err := s.SetFile(filepath.Join(t.TempDir(), "missing", "dir", "log")); err == nil {
		t.Fatal("expected error for unwritable path")
	}
	if len(s.Buffered()) != 0 {
		t.Error("expected buffer dropped after failure")
	}
}

func TestFromContext(t *testing.T) {
	if FromContext(context.Background()) == nil {
		t.Fatal("expected discard logger fallback")
	}
	s := &Sink{}
	l := New(s)
	ctx := WithLogger(context.Background(), l)
	if FromContext(ctx) != l {
		t.Error("expected stored logger")
	}
}
