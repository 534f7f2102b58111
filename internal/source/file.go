package source

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/fsnotify/fsnotify"

	"github.com/ShayCichocki/gauge/internal/debuglog"
	"github.com/ShayCichocki/gauge/internal/event"
)

// File reports the progress written to a file by some other process.
//
// The file holds a single value, either a ratio ("0.42") or a percentage
// ("42%"). The containing directory is watched rather than the file itself
// so that editors and tools that replace the file atomically keep working.
type File struct {
	path   string
	logger *debuglog.Logger
}

// NewFile creates a file source for path.
func NewFile(path string, logger *debuglog.Logger) (*File, error) {
	if path == "" {
		return nil, errors.New("progress file path is empty")
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve progress file: %w", err)
	}
	return &File{path: abs, logger: logger}, nil
}

// Run emits the current value once if the file exists, then one event per
// change until ctx is done. Unreadable or malformed contents are logged and
// skipped.
func (f *File) Run(ctx context.Context, out Pusher) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(f.path)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(f.path), err)
	}

	if _, err := os.Stat(f.path); err == nil {
		if done := f.emit(out); done {
			return nil
		}
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != f.path {
				continue
			}
			if ev.Op&(fsnotify.Create|fsnotify.Write) == 0 {
				continue
			}
			if done := f.emit(out); done {
				return nil
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			f.logger.Log("[file-source] watcher error: %v", err)
		}
	}
}

// emit reads and pushes the current value. It reports true once the queue
// has closed.
func (f *File) emit(out Pusher) bool {
	content, err := os.ReadFile(f.path)
	if err != nil {
		f.logger.Log("[file-source] read %s: %v", f.path, err)
		return false
	}
	value, err := ParseProgress(string(content))
	if err != nil {
		f.logger.Log("[file-source] %v", err)
		return false
	}
	return errors.Is(out.Push(event.Progress{Value: value}), event.ErrClosed)
}

// ParseProgress parses "0.42" as a ratio and "42%" as a percentage.
// The result is not clamped.
func ParseProgress(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, errors.New("empty progress value")
	}

	percent := strings.HasSuffix(s, "%")
	if percent {
		s = strings.TrimSpace(strings.TrimSuffix(s, "%"))
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid progress value %q", s)
	}
	if percent {
		v /= 100
	}
	return v, nil
}
