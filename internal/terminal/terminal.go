package terminal

import (
	"fmt"
	"io"
	"os"
	"sync"

	"golang.org/x/term"
)

// NewLine is the line terminator used while the terminal is in raw mode,
// where "\n" alone no longer returns the cursor to the first column.
const NewLine = "\r\n"

// MakeRaw switches f into raw mode so every key press is delivered
// unprocessed and unechoed. The returned func restores the previous state and
// is safe to call more than once. When f is not a terminal nothing is changed
// and the restore func is a no-op.
func MakeRaw(f *os.File) (restore func(), err error) {
	fd := int(f.Fd())
	if !term.IsTerminal(fd) {
		return func() {}, nil
	}

	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return nil, fmt.Errorf("enable raw mode: %w", err)
	}

	return restoreOnce(func() error { return term.Restore(fd, oldState) }), nil
}

// restoreOnce wraps fn so that concurrent and repeated calls run it once
func restoreOnce(fn func() error) func() {
	var once sync.Once
	return func() {
		once.Do(func() { _ = fn() })
	}
}

// IsTerminal reports whether f is attached to a terminal
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// Println writes a line that renders correctly in raw mode
func Println(w io.Writer, a ...any) {
	_, _ = fmt.Fprint(w, fmt.Sprint(a...), NewLine)
}

// Printf writes a formatted line that renders correctly in raw mode
func Printf(w io.Writer, format string, a ...any) {
	_, _ = fmt.Fprintf(w, format+NewLine, a...)
}
