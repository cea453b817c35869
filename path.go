package loggers

import (
	"strings"
	"time"

	"github.com/lestrrat-go/strftime"
)

// expandPath replaces the timestamp token of a path template with now formatted by pattern
func expandPath(template, pattern string, now time.Time) (string, error) {
	if !strings.Contains(template, TimestampToken) {
		return template, nil
	}
	if pattern == "" {
		pattern = DefaultTimestampTemplate
	}
	stamp, err := strftime.Format(pattern, now)
	if err != nil {
		return "", invalidField("timestamp_template", "bad timestamp pattern %q: %v", pattern, err)
	}
	return strings.ReplaceAll(template, TimestampToken, stamp), nil
}
