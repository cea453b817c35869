// Package formatter encodes log entries into the byte layouts written by the
// terminal, file and syslog sinks.
package formatter

import (
	"fmt"
	"strconv"
	"time"
	"unicode/utf8"

	"github.com/lixenwraith/loggers/sanitizer"
)

// Output layouts
const (
	TypeFull    = "full"    // "Jan 02 15:04:05.000 INFO message, key: value"
	TypeCompact = "compact" // "Jan 02 15:04:05.000 INFO message key=value"
	TypeJSON    = "json"    // {"ts":"...","level":"INFO","msg":"message","key":"value"}
	TypeSyslog  = "syslog"  // message [key="value"]
	TypeBasic   = "basic"   // message
)

// DefaultTimestampFormat is the layout of text format timestamps
const DefaultTimestampFormat = "Jan 02 15:04:05.000"

// badKey names a trailing value that has no key
const badKey = "!BADKEY"

// Entry is the input of a single Format call
type Entry struct {
	Time       time.Time
	Level      string // full label, e.g. "WARN"
	ShortLevel string // four letter label used by compact
	Message    string
	Fields     []any // alternating keys and values
}

// Formatter manages the buffered writing and formatting of log entries
// A Formatter is not safe for concurrent use
type Formatter struct {
	sanitizer       *sanitizer.Sanitizer
	format          string
	timestampFormat string
	buf             []byte
}

// New creates a formatter with the provided sanitizer
func New(s ...*sanitizer.Sanitizer) *Formatter {
	var san *sanitizer.Sanitizer
	if len(s) > 0 && s[0] != nil {
		san = s[0]
	} else {
		san = sanitizer.New()
	}
	return &Formatter{
		sanitizer:       san,
		format:          TypeFull,
		timestampFormat: DefaultTimestampFormat,
		buf:             make([]byte, 0, 1024),
	}
}

// Type sets the output layout
func (f *Formatter) Type(format string) *Formatter {
	f.format = format
	return f
}

// TimestampFormat sets the timestamp layout of text formats
func (f *Formatter) TimestampFormat(format string) *Formatter {
	if format != "" {
		f.timestampFormat = format
	}
	return f
}

// Format encodes the entry, the returned slice is reused by the next call
func (f *Formatter) Format(e Entry) []byte {
	f.Reset()

	serializer := sanitizer.NewSerializer(f.format, f.sanitizer)

	switch f.format {
	case TypeJSON:
		return f.formatJSON(e, serializer)
	case TypeCompact:
		return f.formatCompact(e, serializer)
	case TypeSyslog:
		return f.formatSyslog(e, serializer)
	case TypeBasic:
		f.buf = append(f.buf, e.Message...)
		return f.buf
	default:
		return f.formatFull(e, serializer)
	}
}

// Reset clears the formatter buffer for reuse
func (f *Formatter) Reset() {
	f.buf = f.buf[:0]
}

// formatFull writes "ts LEVEL msg, k: v, k: v"
func (f *Formatter) formatFull(e Entry, serializer *sanitizer.Serializer) []byte {
	f.buf = e.Time.AppendFormat(f.buf, f.timestampFormat)
	f.buf = append(f.buf, ' ')
	f.buf = append(f.buf, e.Level...)
	f.buf = append(f.buf, ' ')
	serializer.WriteString(&f.buf, e.Message)

	forEachField(e.Fields, func(key string, val any) {
		f.buf = append(f.buf, ", "...)
		serializer.WriteString(&f.buf, key)
		f.buf = append(f.buf, ": "...)
		f.convertValue(&f.buf, val, serializer)
	})

	f.buf = append(f.buf, '\n')
	return f.buf
}

// formatCompact writes "ts LVL  msg k=v k=v"
func (f *Formatter) formatCompact(e Entry, serializer *sanitizer.Serializer) []byte {
	f.buf = e.Time.AppendFormat(f.buf, f.timestampFormat)
	f.buf = append(f.buf, ' ')
	f.buf = append(f.buf, e.ShortLevel...)
	f.buf = append(f.buf, ' ')
	// Message is never quoted
	f.buf = append(f.buf, f.sanitizer.Sanitize(e.Message)...)

	forEachField(e.Fields, func(key string, val any) {
		f.buf = append(f.buf, ' ')
		serializer.WriteString(&f.buf, key)
		f.buf = append(f.buf, '=')
		f.convertValue(&f.buf, val, serializer)
	})

	f.buf = append(f.buf, '\n')
	return f.buf
}

// formatJSON writes one JSON object per line
func (f *Formatter) formatJSON(e Entry, serializer *sanitizer.Serializer) []byte {
	f.buf = append(f.buf, `{"ts":"`...)
	f.buf = e.Time.AppendFormat(f.buf, time.RFC3339Nano)
	f.buf = append(f.buf, `","level":"`...)
	f.buf = append(f.buf, e.Level...)
	f.buf = append(f.buf, `","msg":`...)
	serializer.WriteString(&f.buf, e.Message)

	forEachField(e.Fields, func(key string, val any) {
		f.buf = append(f.buf, ',')
		serializer.WriteString(&f.buf, key)
		f.buf = append(f.buf, ':')
		f.convertValue(&f.buf, val, serializer)
	})

	f.buf = append(f.buf, '}', '\n')
	return f.buf
}

// formatSyslog writes `msg [k="v" k="v"]`, values escaped per RFC 5424 PARAM-VALUE rules
func (f *Formatter) formatSyslog(e Entry, serializer *sanitizer.Serializer) []byte {
	f.buf = append(f.buf, e.Message...)

	first := true
	forEachField(e.Fields, func(key string, val any) {
		if first {
			f.buf = append(f.buf, " ["...)
			first = false
		} else {
			f.buf = append(f.buf, ' ')
		}
		// Keys are written unaltered
		f.buf = append(f.buf, key...)
		f.buf = append(f.buf, '=', '"')
		f.convertValue(&f.buf, val, serializer)
		f.buf = append(f.buf, '"')
	})
	if !first {
		f.buf = append(f.buf, ']')
	}

	return f.buf
}

// forEachField walks alternating key/value pairs, a trailing value gets badKey
func forEachField(fields []any, fn func(key string, val any)) {
	for i := 0; i < len(fields); i += 2 {
		if i+1 >= len(fields) {
			fn(badKey, fields[i])
			return
		}
		key, ok := fields[i].(string)
		if !ok {
			key = fmt.Sprint(fields[i])
		}
		fn(key, fields[i+1])
	}
}

// convertValue provides unified type conversion
func (f *Formatter) convertValue(buf *[]byte, v any, serializer *sanitizer.Serializer) {
	switch val := v.(type) {
	case string:
		serializer.WriteString(buf, val)

	case []byte:
		serializer.WriteString(buf, string(val))

	case rune:
		var runeStr [utf8.UTFMax]byte
		n := utf8.EncodeRune(runeStr[:], val)
		serializer.WriteString(buf, string(runeStr[:n]))

	case int:
		num := strconv.AppendInt(nil, int64(val), 10)
		serializer.WriteNumber(buf, string(num))

	case int64:
		num := strconv.AppendInt(nil, val, 10)
		serializer.WriteNumber(buf, string(num))

	case uint:
		num := strconv.AppendUint(nil, uint64(val), 10)
		serializer.WriteNumber(buf, string(num))

	case uint64:
		num := strconv.AppendUint(nil, val, 10)
		serializer.WriteNumber(buf, string(num))

	case float32:
		num := strconv.AppendFloat(nil, float64(val), 'f', -1, 32)
		serializer.WriteNumber(buf, string(num))

	case float64:
		num := strconv.AppendFloat(nil, val, 'f', -1, 64)
		serializer.WriteNumber(buf, string(num))

	case bool:
		serializer.WriteBool(buf, val)

	case nil:
		serializer.WriteNil(buf)

	case time.Time:
		serializer.WriteString(buf, val.Format(time.RFC3339Nano))

	case time.Duration:
		serializer.WriteString(buf, val.String())

	case error:
		serializer.WriteString(buf, val.Error())

	case fmt.Stringer:
		serializer.WriteString(buf, val.String())

	default:
		serializer.WriteComplex(buf, val)
	}
}
