// FILE: lixenwraith/loggers/logger.go
package loggers

// Logger is a thread-safe handle to a built logging pipeline
// Loggers derived with With share the pipeline of their parent
type Logger struct {
	p        *pipeline
	level    Severity
	location SourceLocation
	fields   []any
	skip     int
}

// Level returns the minimum severity that reaches the sink
func (l *Logger) Level() Severity {
	return l.level
}

// Enabled reports whether a record of severity s would be delivered
func (l *Logger) Enabled(s Severity) bool {
	return s >= l.level
}

// Log emits a record with alternating key/value pairs
func (l *Logger) Log(severity Severity, msg string, kv ...any) {
	l.log(severity, msg, kv)
}

// Trace logs a message at trace level
func (l *Logger) Trace(msg string, kv ...any) {
	l.log(SeverityTrace, msg, kv)
}

// Debug logs a message at debug level
func (l *Logger) Debug(msg string, kv ...any) {
	l.log(SeverityDebug, msg, kv)
}

// Info logs a message at info level
func (l *Logger) Info(msg string, kv ...any) {
	l.log(SeverityInfo, msg, kv)
}

// Warning logs a message at warning level
func (l *Logger) Warning(msg string, kv ...any) {
	l.log(SeverityWarning, msg, kv)
}

// Error logs a message at error level
func (l *Logger) Error(msg string, kv ...any) {
	l.log(SeverityError, msg, kv)
}

// Critical logs a message at critical level
func (l *Logger) Critical(msg string, kv ...any) {
	l.log(SeverityCritical, msg, kv)
}

// LogRecord sends a prepared record, its Fields must not be modified afterwards
// The caller location is captured here when the record has none
func (l *Logger) LogRecord(record Record) {
	if record.Severity < l.level {
		return
	}
	if l.location != SourceLocationNone && record.Location.Line == 0 {
		record.Location = captureLocation(1 + l.skip)
	}
	l.send(record)
}

// send adds the bound fields and enqueues record as is
func (l *Logger) send(record Record) {
	if record.Severity < l.level {
		return
	}
	if len(l.fields) > 0 {
		fields := make([]any, 0, len(l.fields)+len(record.Fields))
		fields = append(fields, l.fields...)
		record.Fields = append(fields, record.Fields...)
	}
	l.p.channel.send(&record)
}

// log handles the core logging logic
func (l *Logger) log(severity Severity, msg string, kv []any) {
	if severity < l.level {
		return
	}

	record := &Record{
		Severity: severity,
		Message:  msg,
	}
	// Copied, the caller may reuse kv once log returns
	if n := len(l.fields) + len(kv); n > 0 {
		record.Fields = make([]any, 0, n)
		record.Fields = append(record.Fields, l.fields...)
		record.Fields = append(record.Fields, kv...)
	}
	if l.location != SourceLocationNone {
		record.Location = captureLocation(callerSkip + l.skip)
	}

	l.p.channel.send(record)
}

// With returns a logger sharing this pipeline that adds kv to every record
func (l *Logger) With(kv ...any) *Logger {
	child := *l
	child.fields = make([]any, 0, len(l.fields)+len(kv))
	child.fields = append(child.fields, l.fields...)
	child.fields = append(child.fields, kv...)
	return &child
}

// WithCallerSkip returns a logger that reports call sites n frames further up
// Adapters wrapping the logger use it to point at their own callers
func (l *Logger) WithCallerSkip(n int) *Logger {
	child := *l
	child.skip += n
	return &child
}

// Stats returns the counters of the pipeline
func (l *Logger) Stats() Stats {
	return l.p.state.snapshot()
}

// Close stops accepting records, delivers what is buffered and releases the sink
// It blocks until the consumer has exited and is safe to call more than once
// Records logged after Close are counted as dropped
func (l *Logger) Close() error {
	return l.p.shutdown()
}
