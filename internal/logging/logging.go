// Package logging wires log/slog for a program that owns the terminal.
//
// Records are written to a file sink. Until a file is attached they are
// buffered, so early startup messages are not lost; attaching an empty path
// discards them.
package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"sync"
)

// Sink is an io.Writer that buffers until a file is attached.
type Sink struct {
	mu      sync.Mutex
	file    *os.File
	buffer  []byte
	discard bool
}

// Ensure Sink implements io.Writer.
var _ io.Writer = (*Sink)(nil)

// Write implements io.Writer.
func (s *Sink) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.discard {
		return len(p), nil
	}
	if s.file != nil {
		return s.file.Write(p)
	}
	// p may be reused by the caller
	s.buffer = append(s.buffer, p...)
	return len(p), nil
}

// SetFile attaches the log file and flushes anything buffered.
// An empty path discards the buffer and all future records.
func (s *Sink) SetFile(path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.file != nil {
		_ = s.file.Close()
		s.file = nil
	}
	if path == "" {
		s.discard = true
		s.buffer = nil
		return nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600) //nolint:gosec
	if err != nil {
		s.discard = true
		s.buffer = nil
		return err
	}
	s.file = f
	s.discard = false
	if len(s.buffer) > 0 {
		_, _ = f.Write(s.buffer)
		s.buffer = nil
	}
	return nil
}

// Buffered returns a copy of the not yet flushed output.
func (s *Sink) Buffered() []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]byte(nil), s.buffer...)
}

// Close closes the attached file, if any.
func (s *Sink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.file == nil {
		return nil
	}
	err := s.file.Close()
	s.file = nil
	return err
}

// New returns a text logger writing to w at debug level.
func New(w io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

type loggerKey struct{}

// WithLogger stores l in ctx.
func WithLogger(ctx context.Context, l *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, l)
}

// FromContext returns the logger stored in ctx, or a discarding logger.
func FromContext(ctx context.Context) *slog.Logger {
	if ctx != nil {
		if l, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok {
			return l
		}
	}
	return slog.New(slog.DiscardHandler)
}

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
