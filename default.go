package loggers

import (
	"io"
	"log"
	"log/slog"
	"sync"
)

// Process-wide default logger state
var (
	defaultMu     sync.Mutex
	defaultLogger *Logger
)

// DefaultGuard undoes InstallAsDefault
type DefaultGuard struct {
	prevSlog   *slog.Logger
	prevWriter io.Writer
	prevFlags  int
	prevPrefix string
	once       sync.Once
}

// InstallAsDefault routes the stdlib log and log/slog defaults to l
// Only one logger can be installed at a time, Restore the guard before installing another
func InstallAsDefault(l *Logger) (*DefaultGuard, error) {
	defaultMu.Lock()
	defer defaultMu.Unlock()

	if defaultLogger != nil {
		return nil, otherError(errAlreadyInstalled, "cannot install default logger")
	}

	guard := &DefaultGuard{
		prevSlog:   slog.Default(),
		prevWriter: log.Writer(),
		prevFlags:  log.Flags(),
		prevPrefix: log.Prefix(),
	}

	// slog.SetDefault also redirects the log package to the handler
	slog.SetDefault(slog.New(NewSlogHandler(l)))
	defaultLogger = l
	return guard, nil
}

// errAlreadyInstalled is the cause returned by a second InstallAsDefault
var errAlreadyInstalled = fmtErrorf("a default logger is already installed")

// Default returns the installed logger, nil when none is installed
func Default() *Logger {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	return defaultLogger
}

// Restore reinstates the previous stdlib defaults, it does not close the logger
func (g *DefaultGuard) Restore() {
	g.once.Do(func() {
		defaultMu.Lock()
		defer defaultMu.Unlock()

		slog.SetDefault(g.prevSlog)
		// Restoring the builtin slog handler leaves the log package pointing at ours
		log.SetOutput(g.prevWriter)
		log.SetFlags(g.prevFlags)
		log.SetPrefix(g.prevPrefix)
		defaultLogger = nil
	})
}
