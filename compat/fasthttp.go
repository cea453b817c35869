// FILE: lixenwraith/loggers/compat/fasthttp.go
package compat

import (
	"fmt"
	"strings"

	"github.com/valyala/fasthttp"

	"github.com/lixenwraith/loggers"
)

var _ fasthttp.Logger = (*FastHTTPAdapter)(nil)

// FastHTTPAdapter wraps loggers.Logger to implement fasthttp Logger interface
type FastHTTPAdapter struct {
	logger        *loggers.Logger
	defaultLevel  loggers.Severity
	levelDetector func(string) (loggers.Severity, bool) // Detects the level from message content
}

// NewFastHTTPAdapter creates a new fasthttp-compatible logger adapter
func NewFastHTTPAdapter(logger *loggers.Logger, opts ...FastHTTPOption) *FastHTTPAdapter {
	adapter := &FastHTTPAdapter{
		logger:        logger.WithCallerSkip(1).With("source", "fasthttp"),
		defaultLevel:  loggers.SeverityInfo,
		levelDetector: DetectLogLevel,
	}

	for _, opt := range opts {
		opt(adapter)
	}

	return adapter
}

// FastHTTPOption allows customizing adapter behavior
type FastHTTPOption func(*FastHTTPAdapter)

// WithDefaultLevel sets the level of Printf calls nothing was detected for
func WithDefaultLevel(level loggers.Severity) FastHTTPOption {
	return func(a *FastHTTPAdapter) {
		a.defaultLevel = level
	}
}

// WithLevelDetector sets a custom function to detect log level from message content
func WithLevelDetector(detector func(string) (loggers.Severity, bool)) FastHTTPOption {
	return func(a *FastHTTPAdapter) {
		a.levelDetector = detector
	}
}

// Printf implements fasthttp's Logger interface
func (a *FastHTTPAdapter) Printf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)

	level := a.defaultLevel
	if a.levelDetector != nil {
		if detected, ok := a.levelDetector(msg); ok {
			level = detected
		}
	}

	a.logger.Log(level, msg)
}

// DetectLogLevel guesses a level from message keywords
func DetectLogLevel(msg string) (loggers.Severity, bool) {
	msgLower := strings.ToLower(msg)

	switch {
	case strings.Contains(msgLower, "panic"), strings.Contains(msgLower, "fatal"):
		return loggers.SeverityCritical, true
	case strings.Contains(msgLower, "error"), strings.Contains(msgLower, "failed"):
		return loggers.SeverityError, true
	case strings.Contains(msgLower, "warn"), strings.Contains(msgLower, "deprecated"):
		return loggers.SeverityWarning, true
	case strings.Contains(msgLower, "debug"):
		return loggers.SeverityDebug, true
	case strings.Contains(msgLower, "trace"):
		return loggers.SeverityTrace, true
	default:
		return loggers.SeverityInfo, false
	}
}
