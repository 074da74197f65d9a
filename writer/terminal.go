// writer/terminal.go
package writer

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"sync"

	"golang.org/x/term"

	"github.com/flinq/pfx/terminal"
)

// TerminalOptions configures the terminal writer behavior.
type TerminalOptions struct {
	DoubleBuffer bool // flicker-free updates: skip the write when the frame is unchanged
}

// TerminalWriter handles raw terminal output with optional double-buffering.
// It owns no domain knowledge of panes; the orchestrator hands it the fully
// composed frame bytes for a tick and it decides whether the frame actually
// needs to reach the wire.
type TerminalWriter struct {
	out io.Writer

	mu      sync.Mutex
	prevBuf []byte

	opts TerminalOptions
}

// NewTerminalWriter creates a new TerminalWriter.
// Pass os.Stdout (or any *os.File) to support raw mode & size detection.
func NewTerminalWriter(out io.Writer, opts TerminalOptions) *TerminalWriter {
	return &TerminalWriter{
		out:  out,
		opts: opts,
	}
}

// Write implements io.Writer. Applies double-buffering if enabled.
func (w *TerminalWriter) Write(p []byte) (int, error) {
	if w.opts.DoubleBuffer {
		return w.writeBuffered(p)
	}
	return w.out.Write(p)
}

// writeBuffered writes only when content changes from the previous frame.
func (w *TerminalWriter) writeBuffered(cur []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if bytes.Equal(cur, w.prevBuf) {
		// Frame identical to the last one drawn: simulate a full write.
		return len(cur), nil
	}
	n, err := w.out.Write(cur)
	if err != nil {
		return n, err
	}
	w.prevBuf = append(w.prevBuf[:0], cur...)
	return n, nil
}

// IsTerminal reports if out is a terminal.
func (w *TerminalWriter) IsTerminal() bool {
	return terminal.IsTerminal(w.out)
}

// Clear erases the screen and resets cursor.
func (w *TerminalWriter) Clear() error {
	if !w.IsTerminal() {
		return nil
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	_, err := w.out.Write([]byte("\033[2J\033[H"))
	if err != nil {
		return err
	}
	w.prevBuf = w.prevBuf[:0]
	return nil
}

// MoveCursor positions cursor at 1-based row,col.
func (w *TerminalWriter) MoveCursor(row, col int) error {
	if !w.IsTerminal() {
		return nil
	}
	seq := fmt.Sprintf("\033[%d;%dH", row, col)
	_, err := w.out.Write([]byte(seq))
	return err
}

// HideCursor hides the terminal cursor.
func (w *TerminalWriter) HideCursor() error {
	if !w.IsTerminal() {
		return nil
	}
	_, err := w.out.Write([]byte("\033[?25l"))
	return err
}

// ShowCursor shows the terminal cursor.
func (w *TerminalWriter) ShowCursor() error {
	if !w.IsTerminal() {
		return nil
	}
	_, err := w.out.Write([]byte("\033[?25h"))
	return err
}

// GetSize returns terminal width and height, when out is backed by a *os.File.
func (w *TerminalWriter) GetSize() (cols, rows int, err error) {
	f, ok := w.out.(*os.File)
	if !ok {
		return 0, 0, fmt.Errorf("writer: size not supported on this output")
	}
	return terminal.GetSize(f)
}

// EnableRawMode puts the terminal into raw mode.
func (w *TerminalWriter) EnableRawMode() (*term.State, error) {
	if f, ok := w.out.(*os.File); ok {
		return terminal.MakeRaw(f.Fd())
	}
	return nil, fmt.Errorf("writer: raw mode not supported on this output")
}

// RestoreMode resets the terminal to a previously saved mode.
func (w *TerminalWriter) RestoreMode(state *term.State) error {
	if f, ok := w.out.(*os.File); ok {
		return terminal.RestoreTerminal(f.Fd(), state)
	}
	return fmt.Errorf("writer: restore mode not supported on this output")
}

// Flush is a no-op (satisfies the Writer interface; nothing is buffered past Write).
func (w *TerminalWriter) Flush() error { return nil }

// Close is a no-op (satisfies the Writer interface; TerminalWriter owns no closable resource).
func (w *TerminalWriter) Close() error { return nil }
