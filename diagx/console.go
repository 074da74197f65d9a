package diagx

import (
	"fmt"
	"io"
	"os"
	"sort"
	"sync"
	"time"

	"github.com/flinq/pfx/internal/share"
)

// ConsoleWriter renders Entry values as one line of
// "15:04:05.000 [LVL] message key=val ..." (keys sorted),
// deliberately free of color themes and box drawing: a prompt runtime's
// diagnostic log shares the terminal with the panes it's rendering, so it
// stays plain and grep-able.
type ConsoleWriter struct {
	mu  sync.Mutex
	out io.Writer
}

// NewConsoleWriter wraps out (os.Stderr if nil) as a share.Writer.
func NewConsoleWriter(out io.Writer) *ConsoleWriter {
	if out == nil {
		out = os.Stderr
	}
	return &ConsoleWriter{out: out}
}

func (c *ConsoleWriter) Write(entry *share.Entry) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	ts := entry.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}

	line := fmt.Sprintf("%s [%s] %s", ts.Format("15:04:05.000"), entry.Level.ShortString(), entry.Message)
	if len(entry.Fields) > 0 {
		keys := make([]string, 0, len(entry.Fields))
		for k := range entry.Fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			line += fmt.Sprintf(" %s=%v", k, entry.Fields[k])
		}
	}

	_, err := fmt.Fprintln(c.out, line)
	return err
}

func (c *ConsoleWriter) Close() error { return nil }
