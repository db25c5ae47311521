// Package testutil provides logging helpers for tests.
package testutil

import (
	"bytes"
	"log/slog"
	"strings"
	"sync"
	"testing"
)

// NewTestLogger returns a logger that writes to t.Log().
// Logs only appear on test failure or when running with -v.
func NewTestLogger(t testing.TB) *slog.Logger {
	t.Helper()
	return slog.New(slog.NewTextHandler(testWriter{t}, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
}

type testWriter struct {
	t testing.TB
}

func (w testWriter) Write(p []byte) (n int, err error) {
	w.t.Helper()
	w.t.Log(strings.TrimRight(string(p), "\n"))
	return len(p), nil
}

// Recorder captures log output so tests can assert on it.
type Recorder struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

// NewRecordingLogger returns a debug-level logger whose output is kept in
// the returned Recorder.
func NewRecordingLogger() (*slog.Logger, *Recorder) {
	rec := &Recorder{}
	return slog.New(slog.NewTextHandler(rec, &slog.HandlerOptions{Level: slog.LevelDebug})), rec
}

func (r *Recorder) Write(p []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.buf.Write(p)
}

// String returns everything logged so far.
func (r *Recorder) String() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.buf.String()
}

// Lines returns the logged records, one per line.
func (r *Recorder) Lines() []string {
	s := strings.TrimRight(r.String(), "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}
