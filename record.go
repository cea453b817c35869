// FILE: lixenwraith/loggers/record.go
package loggers

import (
	"time"

	"github.com/lixenwraith/loggers/formatter"
)

// Record is a single log entry travelling from a producer to the drain
// The timestamp is taken when the consumer formats the record, not at enqueue
type Record struct {
	Severity Severity
	Message  string
	Fields   []any // alternating keys and values, duplicates are kept
	Location Location
}

// newDropReport builds the synthetic record reporting count dropped records
func newDropReport(count uint64) *Record {
	return &Record{
		Severity: SeverityError,
		Message:  dropReportMessage,
		Fields:   []any{"dropped_count", count},
	}
}

// entry converts the record to formatter input
func (r *Record) entry(now time.Time, zone TimeZone, mode SourceLocation) formatter.Entry {
	fields := r.Fields
	if loc := r.Location.render(mode); loc != "" {
		fields = make([]any, 0, len(r.Fields)+2)
		fields = append(fields, "module", loc)
		fields = append(fields, r.Fields...)
	}
	return formatter.Entry{
		Time:       zone.In(now),
		Level:      r.Severity.Label(),
		ShortLevel: r.Severity.ShortLabel(),
		Message:    r.Message,
		Fields:     fields,
	}
}
