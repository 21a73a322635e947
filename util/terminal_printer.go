package util

import (
	"io"
	"os"
	"sync"

	"github.com/gosuri/uilive"
	"github.com/mattn/go-isatty"
)

// IsTerminal reports whether f is attached to an interactive terminal.
func IsTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// LiveWriter prints progress lines. On a terminal each write replaces the
// previous one (uilive), otherwise writes are passed through unchanged.
type LiveWriter struct {
	mu   *sync.Mutex
	out  io.Writer
	live *uilive.Writer
}

var _ io.Writer = &LiveWriter{}

// NewLiveWriter returns a writer that redraws in place when out is a terminal.
func NewLiveWriter(out *os.File) *LiveWriter {
	if !IsTerminal(out) {
		return NewPlainWriter(out)
	}
	live := uilive.New()
	live.Out = out
	return &LiveWriter{
		mu:   new(sync.Mutex),
		out:  out,
		live: live,
	}
}

// NewPlainWriter returns a LiveWriter that never redraws.
func NewPlainWriter(out io.Writer) *LiveWriter {
	return &LiveWriter{
		mu:  new(sync.Mutex),
		out: out,
	}
}

func (l *LiveWriter) Start() {
	if l.live != nil {
		l.live.Start()
	}
}

func (l *LiveWriter) Stop() {
	if l.live != nil {
		l.live.Stop()
	}
}

func (l *LiveWriter) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.live != nil {
		return l.live.Write(p)
	}
	return l.out.Write(p)
}
