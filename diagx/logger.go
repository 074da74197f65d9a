// Package diagx is the ambient diagnostic logging facade shared by evfx,
// compfx and promptfx: Entry/Level/Writer plumbing with fluent
// call-site ergonomics, trimmed of badge/theme/file-rotation machinery a
// prompt runtime has no use for.
package diagx

import (
	"fmt"
	"sync"

	"github.com/flinq/pfx/internal/share"
)

// Logger fans Entry values out to one or more share.Writer sinks.
type Logger struct {
	mu      sync.RWMutex
	level   share.Level
	writers []share.Writer
}

// New creates a Logger that writes at minLevel and above to writers.
// With no writers, a NewConsoleWriter(os.Stderr) is installed.
func New(minLevel share.Level, writers ...share.Writer) *Logger {
	if len(writers) == 0 {
		writers = []share.Writer{NewConsoleWriter(nil)}
	}
	return &Logger{level: minLevel, writers: writers}
}

// SetLevel changes the minimum level accepted by the logger.
func (l *Logger) SetLevel(level share.Level) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.level = level
}

func (l *Logger) dispatch(entry *share.Entry) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if entry.Level < l.level {
		return
	}
	for _, w := range l.writers {
		_ = w.Write(entry)
	}
}

// Close closes every underlying writer, returning the first error seen.
func (l *Logger) Close() error {
	l.mu.RLock()
	defer l.mu.RUnlock()
	var first error
	for _, w := range l.writers {
		if err := w.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// Trace starts a fluent entry at LevelTrace.
func (l *Logger) Trace() *Entry { return l.at(share.LevelTrace) }

// Debug starts a fluent entry at LevelDebug.
func (l *Logger) Debug() *Entry { return l.at(share.LevelDebug) }

// Info starts a fluent entry at LevelInfo.
func (l *Logger) Info() *Entry { return l.at(share.LevelInfo) }

// Success starts a fluent entry at LevelSuccess.
func (l *Logger) Success() *Entry { return l.at(share.LevelSuccess) }

// Warn starts a fluent entry at LevelWarn.
func (l *Logger) Warn() *Entry { return l.at(share.LevelWarn) }

// Error starts a fluent entry at LevelError.
func (l *Logger) Error() *Entry { return l.at(share.LevelError) }

func (l *Logger) at(level share.Level) *Entry {
	return &Entry{logger: l, level: level, fields: share.Fields{}}
}

// Entry is the fluent builder returned by Logger.Trace/Debug/.../Error:
// Field/Err/Msg chain to build one structured log line. Deliberately
// has no conditional-logging or os.Exit-on-Fatal behavior, which this
// domain never needs: handler/draw errors are always
// recoverable-and-logged or propagated by the caller, never fatal here.
type Entry struct {
	logger *Logger
	level  share.Level
	fields share.Fields
	err    error
}

// Field attaches a structured key-value pair.
func (e *Entry) Field(key string, value any) *Entry {
	e.fields[key] = value
	return e
}

// Err attaches an error, surfaced both as a field and appended to the message.
func (e *Entry) Err(err error) *Entry {
	e.err = err
	if err != nil {
		e.fields["error"] = err.Error()
	}
	return e
}

// Msg formats and emits the entry.
func (e *Entry) Msg(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if e.err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.err)
	}
	e.logger.dispatch(&share.Entry{
		Level:   e.level,
		Message: msg,
		Fields:  e.fields,
	})
}
