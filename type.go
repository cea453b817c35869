// FILE: lixenwraith/loggers/type.go
package loggers

import (
	"time"
)

// Severity is the level of a log record
type Severity int64

// Severity constants, ordered from least to most severe
const (
	SeverityTrace Severity = iota
	SeverityDebug
	SeverityInfo
	SeverityWarning
	SeverityError
	SeverityCritical
)

var severityNames = map[Severity]string{
	SeverityTrace:    "trace",
	SeverityDebug:    "debug",
	SeverityInfo:     "info",
	SeverityWarning:  "warning",
	SeverityError:    "error",
	SeverityCritical: "critical",
}

// String returns the configuration name of the severity
func (s Severity) String() string {
	if name, ok := severityNames[s]; ok {
		return name
	}
	return "unknown"
}

// Label returns the upper-case label used by the full and json formats
func (s Severity) Label() string {
	switch s {
	case SeverityTrace:
		return "TRACE"
	case SeverityDebug:
		return "DEBUG"
	case SeverityInfo:
		return "INFO"
	case SeverityWarning:
		return "WARN"
	case SeverityError:
		return "ERROR"
	case SeverityCritical:
		return "CRIT"
	default:
		return "UNKNOWN"
	}
}

// ShortLabel returns the four letter label used by the compact format
func (s Severity) ShortLabel() string {
	switch s {
	case SeverityTrace:
		return "TRCE"
	case SeverityDebug:
		return "DEBG"
	case SeverityInfo:
		return "INFO"
	case SeverityWarning:
		return "WARN"
	case SeverityError:
		return "ERRO"
	case SeverityCritical:
		return "CRIT"
	default:
		return "????"
	}
}

// ParseSeverity converts a configuration string to a Severity
func ParseSeverity(s string) (Severity, error) {
	for sev, name := range severityNames {
		if name == s {
			return sev, nil
		}
	}
	return SeverityInfo, invalidField("level", "undefined severity: %q", s)
}

// SourceLocation selects how the caller position is attached to a record
type SourceLocation int

const (
	SourceLocationNone SourceLocation = iota
	SourceLocationModuleAndLine
	SourceLocationFileAndLine
	SourceLocationLocalFileAndLine
)

// String returns the configuration name of the source location mode
func (s SourceLocation) String() string {
	switch s {
	case SourceLocationNone:
		return "none"
	case SourceLocationModuleAndLine:
		return "module_and_line"
	case SourceLocationFileAndLine:
		return "file_and_line"
	case SourceLocationLocalFileAndLine:
		return "local_file_and_line"
	default:
		return "unknown"
	}
}

// ParseSourceLocation converts a configuration string to a SourceLocation
func ParseSourceLocation(s string) (SourceLocation, error) {
	switch s {
	case "none":
		return SourceLocationNone, nil
	case "module_and_line":
		return SourceLocationModuleAndLine, nil
	case "file_and_line":
		return SourceLocationFileAndLine, nil
	case "local_file_and_line":
		return SourceLocationLocalFileAndLine, nil
	default:
		return SourceLocationModuleAndLine, invalidField("source_location", "undefined source code location: %q", s)
	}
}

// Format selects the text encoding of records for terminal and file sinks
type Format int

const (
	FormatFull Format = iota
	FormatCompact
	FormatJSON
)

// String returns the configuration name of the format
func (f Format) String() string {
	switch f {
	case FormatFull:
		return "full"
	case FormatCompact:
		return "compact"
	case FormatJSON:
		return "json"
	default:
		return "unknown"
	}
}

// ParseFormat converts a configuration string to a Format
func ParseFormat(s string) (Format, error) {
	switch s {
	case "full":
		return FormatFull, nil
	case "compact":
		return FormatCompact, nil
	case "json":
		return FormatJSON, nil
	default:
		return FormatFull, invalidField("format", "undefined log format: %q", s)
	}
}

// TimeZone selects the zone used for record and path timestamps
type TimeZone int

const (
	TimeZoneLocal TimeZone = iota
	TimeZoneUTC
)

// String returns the configuration name of the time zone
func (z TimeZone) String() string {
	if z == TimeZoneUTC {
		return "utc"
	}
	return "local"
}

// In converts t into the zone
func (z TimeZone) In(t time.Time) time.Time {
	if z == TimeZoneUTC {
		return t.UTC()
	}
	return t.Local()
}

// ParseTimeZone converts a configuration string to a TimeZone
func ParseTimeZone(s string) (TimeZone, error) {
	switch s {
	case "local":
		return TimeZoneLocal, nil
	case "utc":
		return TimeZoneUTC, nil
	default:
		return TimeZoneLocal, invalidField("timezone", "undefined time zone: %q", s)
	}
}

// Destination selects the terminal stream
type Destination int

const (
	DestinationStderr Destination = iota
	DestinationStdout
)

// String returns the configuration name of the destination
func (d Destination) String() string {
	if d == DestinationStdout {
		return "stdout"
	}
	return "stderr"
}

// ParseDestination converts a configuration string to a Destination
func ParseDestination(s string) (Destination, error) {
	switch s {
	case "stderr":
		return DestinationStderr, nil
	case "stdout":
		return DestinationStdout, nil
	default:
		return DestinationStderr, invalidField("destination", "undefined destination: %q", s)
	}
}

// OverflowStrategy selects what happens when the delivery channel is full
type OverflowStrategy int

const (
	OverflowDropAndReport OverflowStrategy = iota
	OverflowDrop
	OverflowBlock
)

// String returns the configuration name of the strategy
func (o OverflowStrategy) String() string {
	switch o {
	case OverflowDropAndReport:
		return "drop_and_report"
	case OverflowDrop:
		return "drop"
	case OverflowBlock:
		return "block"
	default:
		return "unknown"
	}
}

// ParseOverflowStrategy converts a configuration string to an OverflowStrategy
func ParseOverflowStrategy(s string) (OverflowStrategy, error) {
	switch s {
	case "drop_and_report":
		return OverflowDropAndReport, nil
	case "drop":
		return OverflowDrop, nil
	case "block":
		return OverflowBlock, nil
	default:
		return OverflowDropAndReport, invalidField("overflow_strategy", "invalid overflow strategy: %q", s)
	}
}
