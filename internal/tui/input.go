package tui

import (
	"errors"
	"fmt"
	"io"
	"sync"
)

// ErrInputClosed reports that terminal input ended. bubbletea stops reading
// quietly on EOF, so without this nothing would ever tell the render loop.
var ErrInputClosed = errors.New("terminal input closed")

// ttyFile is what bubbletea and its cancel reader look for to put the
// terminal in raw mode and to interrupt blocked reads. *os.File satisfies it.
type ttyFile interface {
	io.ReadWriteCloser
	Fd() uintptr
	Name() string
}

// WatchInput wraps r so that onClose is called once, with an error wrapping
// ErrInputClosed, when a read from r fails or hits EOF. If r is a terminal
// file the result still is one, so raw mode and cancellation keep working.
func WatchInput(r io.Reader, onClose func(error)) io.Reader {
	w := &inputWatcher{r: r, onClose: onClose}
	if f, ok := r.(ttyFile); ok {
		return &watchedFile{ttyFile: f, w: w}
	}
	return w
}

type inputWatcher struct {
	r       io.Reader
	onClose func(error)
	once    sync.Once
}

func (w *inputWatcher) Read(p []byte) (int, error) {
	n, err := w.r.Read(p)
	if err != nil {
		w.once.Do(func() {
			if errors.Is(err, io.EOF) {
				w.onClose(ErrInputClosed)
				return
			}
			w.onClose(fmt.Errorf("%w: %v", ErrInputClosed, err))
		})
	}
	return n, err
}

type watchedFile struct {
	ttyFile
	w *inputWatcher
}

func (f *watchedFile) Read(p []byte) (int, error) {
	return f.w.Read(p)
}
