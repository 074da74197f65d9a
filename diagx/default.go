package diagx

import (
	"sync"

	"github.com/flinq/pfx/internal/share"
)

var (
	defaultMu     sync.RWMutex
	defaultLogger = New(share.LevelInfo)
)

// Default returns the process-wide Logger used when a package-level
// convenience function (Trace/Debug/.../Error) is called directly instead
// of through an explicit *Logger.
func Default() *Logger {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultLogger
}

// SetDefault replaces the process-wide Logger.
func SetDefault(l *Logger) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultLogger = l
}

func Trace() *Entry   { return Default().Trace() }
func Debug() *Entry   { return Default().Debug() }
func Info() *Entry    { return Default().Info() }
func Success() *Entry { return Default().Success() }
func Warn() *Entry    { return Default().Warn() }
func Error() *Entry   { return Default().Error() }
