package loggers

import (
	"context"
	"log/slog"
	"runtime"
)

// SlogHandler is a log/slog handler writing through a Logger
type SlogHandler struct {
	logger *Logger
	attrs  []any
	group  string
}

// NewSlogHandler creates a handler for l
func NewSlogHandler(l *Logger) *SlogHandler {
	return &SlogHandler{logger: l}
}

// severityFromSlog maps slog levels onto severities
func severityFromSlog(level slog.Level) Severity {
	switch {
	case level < slog.LevelDebug:
		return SeverityTrace
	case level < slog.LevelInfo:
		return SeverityDebug
	case level < slog.LevelWarn:
		return SeverityInfo
	case level < slog.LevelError:
		return SeverityWarning
	case level < slog.LevelError+4:
		return SeverityError
	default:
		return SeverityCritical
	}
}

// Enabled implements slog.Handler
func (h *SlogHandler) Enabled(_ context.Context, level slog.Level) bool {
	return h.logger.Enabled(severityFromSlog(level))
}

// Handle implements slog.Handler
func (h *SlogHandler) Handle(_ context.Context, r slog.Record) error {
	fields := make([]any, 0, len(h.attrs)+r.NumAttrs()*2)
	fields = append(fields, h.attrs...)
	r.Attrs(func(a slog.Attr) bool {
		fields = appendAttr(fields, h.group, a)
		return true
	})

	record := Record{
		Severity: severityFromSlog(r.Level),
		Message:  r.Message,
		Fields:   fields,
	}
	if r.PC != 0 {
		frame, _ := runtime.CallersFrames([]uintptr{r.PC}).Next()
		record.Location = Location{Function: frame.Function, File: frame.File, Line: frame.Line}
	}
	// A record without PC has no known call site, the handler frame is not one
	h.logger.send(record)
	return nil
}

// WithAttrs implements slog.Handler
func (h *SlogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	child := *h
	child.attrs = make([]any, 0, len(h.attrs)+len(attrs)*2)
	child.attrs = append(child.attrs, h.attrs...)
	for _, a := range attrs {
		child.attrs = appendAttr(child.attrs, h.group, a)
	}
	return &child
}

// WithGroup implements slog.Handler
func (h *SlogHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	child := *h
	if child.group != "" {
		child.group += "." + name
	} else {
		child.group = name
	}
	return &child
}

// appendAttr flattens an attribute into key/value pairs, groups become dotted keys
func appendAttr(fields []any, prefix string, a slog.Attr) []any {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return fields
	}
	key := a.Key
	if prefix != "" {
		key = prefix + "." + key
	}
	if a.Value.Kind() == slog.KindGroup {
		if a.Key == "" {
			key = prefix
		}
		for _, ga := range a.Value.Group() {
			fields = appendAttr(fields, key, ga)
		}
		return fields
	}
	return append(fields, key, a.Value.Any())
}
