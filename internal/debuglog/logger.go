// Package debuglog provides the file-backed debug log used while the
// terminal UI owns the screen.
package debuglog

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Logger writes timestamped lines to a file. A Logger without a file (or a
// nil *Logger) discards everything, so callers never need to check.
type Logger struct {
	mu    sync.Mutex
	file  *os.File
	runID string
}

// New creates a logger appending to path. If path is empty, returns a
// no-op logger. Creates parent directories if they don't exist.
func New(path string) (*Logger, error) {
	runID := uuid.New().String()
	if path == "" {
		return &Logger{runID: runID}, nil
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}

	l := &Logger{file: f, runID: runID}
	l.Log("=== gauge run %s started at %s ===", runID, time.Now().Format(time.RFC3339))
	return l, nil
}

// Nop returns a logger that discards everything.
func Nop() *Logger {
	return &Logger{}
}

// RunID identifies this process in the log.
func (l *Logger) RunID() string {
	if l == nil {
		return ""
	}
	return l.runID
}

// Log writes a timestamped message.
func (l *Logger) Log(format string, args ...interface{}) {
	if l == nil || l.file == nil {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	msg := fmt.Sprintf(format, args...)
	timestamp := time.Now().Format("15:04:05.000")
	fmt.Fprintf(l.file, "[%s] %s\n", timestamp, msg)
	l.file.Sync()
}

// Write lets the logger stand in as the output of the standard log
// package. Each call becomes one log line.
func (l *Logger) Write(p []byte) (int, error) {
	if l == nil || l.file == nil {
		return len(p), nil
	}
	msg := string(p)
	if n := len(msg); n > 0 && msg[n-1] == '\n' {
		msg = msg[:n-1]
	}
	l.Log("%s", msg)
	return len(p), nil
}

// Capture redirects the standard log package into l until the returned
// function is called. Anything printed to stderr while the alt screen is
// up would corrupt the display.
func Capture(l *Logger) (restore func()) {
	originalOutput := log.Writer()
	originalFlags := log.Flags()

	var w io.Writer = io.Discard
	if l != nil && l.file != nil {
		w = l
		log.SetFlags(0)
	}
	log.SetOutput(w)

	return func() {
		log.SetOutput(originalOutput)
		log.SetFlags(originalFlags)
	}
}

// Close closes the log file. Safe on nil or no-op loggers.
func (l *Logger) Close() error {
	if l == nil || l.file == nil {
		return nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	return l.file.Close()
}
