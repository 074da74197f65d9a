package promptfx

import (
	"bytes"
	"io"
	"sync"

	"golang.org/x/term"

	"github.com/flinq/pfx"
	"github.com/flinq/pfx/writer"
)

// defaultTerminal is the built-in pfx.Terminal implementation: raw mode,
// cursor hide/show, and a single concatenated frame write per draw via
// writer.TerminalWriter's double-buffered Write.
type defaultTerminal struct {
	out io.Writer
}

// NewTerminal wraps out (os.Stdout in the common case) as a pfx.Terminal.
func NewTerminal(out io.Writer) pfx.Terminal {
	return &defaultTerminal{out: out}
}

func (t *defaultTerminal) StartSession(initial []pfx.Pane) (pfx.Session, error) {
	tw := writer.NewTerminalWriter(t.out, writer.TerminalOptions{DoubleBuffer: true})

	var rawState *term.State
	if state, err := tw.EnableRawMode(); err == nil {
		rawState = state
	}
	tw.HideCursor()

	sess := &defaultSession{tw: tw, rawState: rawState}
	if len(initial) > 0 {
		if err := sess.Draw(initial); err != nil {
			sess.Close()
			return nil, err
		}
	}
	return sess, nil
}

// defaultSession draws panes by concatenating their bytes, separated by
// newlines, after homing the cursor — one write per frame, which
// TerminalWriter's double-buffering turns into a no-op write when the
// frame hasn't changed since the last draw.
type defaultSession struct {
	mu       sync.Mutex
	tw       *writer.TerminalWriter
	rawState *term.State
	closed   bool
}

func (s *defaultSession) Draw(panes []pfx.Pane) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}

	var buf bytes.Buffer
	buf.WriteString("\033[H")
	for i, p := range panes {
		if i > 0 {
			buf.WriteByte('\n')
		}
		if p != nil {
			buf.Write(p.Bytes())
		}
	}
	_, err := s.tw.Write(buf.Bytes())
	return err
}

func (s *defaultSession) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true

	s.tw.ShowCursor()
	if s.rawState != nil {
		s.tw.RestoreMode(s.rawState)
	}
	return s.tw.Clear()
}
