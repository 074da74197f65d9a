package diagx

import (
	"strings"
	"sync"
	"testing"

	"github.com/flinq/pfx/internal/share"
	"github.com/flinq/pfx/internal/testutil"
)

type captureWriter struct {
	entries []*share.Entry
}

func (c *captureWriter) Write(e *share.Entry) error {
	c.entries = append(c.entries, e)
	return nil
}
func (c *captureWriter) Close() error { return nil }

func TestLoggerLevelFilter(t *testing.T) {
	cap := &captureWriter{}
	l := New(share.LevelWarn, cap)

	l.Info().Msg("should be filtered")
	if len(cap.entries) != 0 {
		t.Fatalf("expected info below threshold to be dropped, got %d entries", len(cap.entries))
	}

	l.Error().Msg("boom")
	if len(cap.entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(cap.entries))
	}
	if cap.entries[0].Level != share.LevelError {
		t.Fatalf("expected LevelError, got %v", cap.entries[0].Level)
	}
}

func TestEntryFieldsAndError(t *testing.T) {
	cap := &captureWriter{}
	l := New(share.LevelTrace, cap)

	l.Error().Field("component", 2).Err(errBoom).Msg("supersession failed")

	if len(cap.entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(cap.entries))
	}
	entry := cap.entries[0]
	if entry.Fields["component"] != 2 {
		t.Errorf("expected component field 2, got %v", entry.Fields["component"])
	}
	if !strings.Contains(entry.Message, "boom") {
		t.Errorf("expected message to embed the error, got %q", entry.Message)
	}
}

var errBoom = fakeErr("boom")

type fakeErr string

func (f fakeErr) Error() string { return string(f) }

func TestConsoleWriterFormatsLine(t *testing.T) {
	var sb strings.Builder
	w := NewConsoleWriter(&sb)
	l := New(share.LevelTrace, w)

	l.Warn().Field("x", 1).Msg("resize debounced")

	out := sb.String()
	if !strings.Contains(out, "WRN") || !strings.Contains(out, "resize debounced") || !strings.Contains(out, "x=1") {
		t.Fatalf("unexpected console line: %q", out)
	}
}

// TestConsoleWriterConcurrentUseIsRaceFree exercises a Logger from many
// goroutines at once (the promptfx orchestrator's components each hold
// their own *diagx.Logger backed by the same process-wide writer), using
// testutil.SafeBuffer as the sink so `go test -race` catches a data race
// in ConsoleWriter's formatting path rather than one in the test's own
// capture buffer.
func TestConsoleWriterConcurrentUseIsRaceFree(t *testing.T) {
	var buf testutil.SafeBuffer
	w := NewConsoleWriter(&buf)
	l := New(share.LevelTrace, w)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			l.Info().Field("worker", i).Msg("tick")
		}(i)
	}
	wg.Wait()

	if !strings.Contains(buf.String(), "tick") {
		t.Fatal("expected concurrent log lines to appear in the buffer")
	}
}
