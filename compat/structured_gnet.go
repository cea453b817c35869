package compat

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/lixenwraith/loggers"
)

// keyValuePattern detects "key=%v" or "key: %v" verbs in format strings
var keyValuePattern = regexp.MustCompile(`(\w+)\s*[:=]\s*%[vsdqxXeEfFgGpbcUt]`)

// parseFormat extracts a message and structured fields from a printf-style call
func parseFormat(format string, args []any) (string, []any) {
	matches := keyValuePattern.FindAllStringSubmatchIndex(format, -1)
	if len(matches) == 0 || len(matches) > len(args) {
		return fmt.Sprintf(format, args...), nil
	}

	var msgParts []string
	fields := make([]any, 0, len(matches)*2)
	lastEnd := 0

	for i, match := range matches {
		if prefix := strings.TrimSpace(format[lastEnd:match[0]]); prefix != "" {
			msgParts = append(msgParts, strings.TrimRight(prefix, ",;"))
		}
		key := format[match[2]:match[3]]
		fields = append(fields, key, args[i])
		lastEnd = match[1]
	}

	if lastEnd < len(format) {
		remaining := fmt.Sprintf(format[lastEnd:], args[len(matches):]...)
		if remaining = strings.TrimSpace(remaining); remaining != "" {
			msgParts = append(msgParts, strings.TrimLeft(remaining, ",; "))
		}
	}

	return strings.Join(msgParts, " "), fields
}

// StructuredGnetAdapter provides enhanced structured logging for gnet
type StructuredGnetAdapter struct {
	*GnetAdapter
}

// NewStructuredGnetAdapter creates a gnet adapter with structured field extraction
func NewStructuredGnetAdapter(logger *loggers.Logger, opts ...GnetOption) *StructuredGnetAdapter {
	return &StructuredGnetAdapter{
		GnetAdapter: NewGnetAdapter(logger, opts...),
	}
}

// Debugf logs with structured field extraction
func (a *StructuredGnetAdapter) Debugf(format string, args ...any) {
	msg, fields := parseFormat(format, args)
	a.logger.Debug(msg, fields...)
}

// Infof logs with structured field extraction
func (a *StructuredGnetAdapter) Infof(format string, args ...any) {
	msg, fields := parseFormat(format, args)
	a.logger.Info(msg, fields...)
}

// Warnf logs with structured field extraction
func (a *StructuredGnetAdapter) Warnf(format string, args ...any) {
	msg, fields := parseFormat(format, args)
	a.logger.Warning(msg, fields...)
}

// Errorf logs with structured field extraction
func (a *StructuredGnetAdapter) Errorf(format string, args ...any) {
	msg, fields := parseFormat(format, args)
	a.logger.Error(msg, fields...)
}
