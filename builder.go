// FILE: lixenwraith/loggers/builder.go
package loggers

import (
	"io"
	"math"
	"os"
	"time"
)

// Builder provides a fluent API for building loggers.
// It wraps a Config instance and provides chainable methods for setting values.
// Build does not consume the builder: every call yields an independent logger.
type Builder struct {
	cfg *Config
	err error // Accumulate errors for deferred handling

	output   io.Writer        // terminal override of the destination stream
	registry IdentityRegistry // syslog identity registry, process-wide when nil
	backend  syslogBackend    // syslog facility, the OS one when nil
	now      func() time.Time // clock for path templates and the appender
}

// NewBuilder creates a builder for the default sink, the terminal.
func NewBuilder() *Builder {
	return &Builder{
		cfg: DefaultConfig(),
	}
}

// NewBuilderFromConfig creates a builder starting from a copy of cfg.
func NewBuilderFromConfig(cfg *Config) *Builder {
	return &Builder{
		cfg: cfg.Clone(),
	}
}

// NewTerminalBuilder creates a builder for a terminal logger.
func NewTerminalBuilder() *Builder {
	b := NewBuilder()
	b.cfg.Type = TypeTerminal
	return b
}

// NewFileBuilder creates a builder for a file logger writing to path.
func NewFileBuilder(path string) *Builder {
	b := NewBuilder()
	b.cfg.Type = TypeFile
	b.cfg.Path = path
	return b
}

// NewNullBuilder creates a builder for a logger that discards everything.
func NewNullBuilder() *Builder {
	b := NewBuilder()
	b.cfg.Type = TypeNull
	return b
}

// NewSyslogBuilder creates a builder for a syslog logger.
func NewSyslogBuilder() *Builder {
	b := NewBuilder()
	b.cfg.Type = TypeSyslog
	return b
}

// Config returns a copy of the configuration built so far.
func (b *Builder) Config() *Config {
	return b.cfg.Clone()
}

// Level sets the minimum severity.
func (b *Builder) Level(level Severity) *Builder {
	b.cfg.SetLevel(level)
	return b
}

// LevelString sets the minimum severity from its name.
func (b *Builder) LevelString(level string) *Builder {
	if b.err != nil {
		return b
	}
	s, err := ParseSeverity(level)
	if err != nil {
		b.err = err
		return b
	}
	b.cfg.SetLevel(s)
	return b
}

// SourceLocation sets how call sites are attached to records.
func (b *Builder) SourceLocation(loc SourceLocation) *Builder {
	b.cfg.SourceLocation = loc.String()
	return b
}

// ChannelSize sets the capacity of the delivery channel.
func (b *Builder) ChannelSize(size int) *Builder {
	b.cfg.ChannelSize = int64(size)
	return b
}

// OverflowStrategy sets the behavior on a full channel.
func (b *Builder) OverflowStrategy(strategy OverflowStrategy) *Builder {
	b.cfg.OverflowStrategy = strategy.String()
	return b
}

// DropReportInterval sets the minimum time between drop reports.
func (b *Builder) DropReportInterval(d time.Duration) *Builder {
	b.cfg.DropReportIntervalMs = d.Milliseconds()
	return b
}

// LogPID adds the process id to every record.
func (b *Builder) LogPID(enable bool) *Builder {
	b.cfg.LogPID = enable
	return b
}

// InternalErrorsToStderr enables diagnostics about sink failures on stderr.
func (b *Builder) InternalErrorsToStderr(enable bool) *Builder {
	b.cfg.InternalErrorsToStderr = enable
	return b
}

// Format sets the record layout of terminal and file sinks.
func (b *Builder) Format(format Format) *Builder {
	b.cfg.Format = format.String()
	return b
}

// TimeZone sets the zone of record timestamps and path templates.
func (b *Builder) TimeZone(zone TimeZone) *Builder {
	b.cfg.Timezone = zone.String()
	return b
}

// Destination selects stdout or stderr for terminal sinks.
func (b *Builder) Destination(dst Destination) *Builder {
	b.cfg.Destination = dst.String()
	return b
}

// Output replaces the terminal stream with w.
func (b *Builder) Output(w io.Writer) *Builder {
	b.output = w
	return b
}

// Path sets the file path, it may contain the {timestamp} token.
func (b *Builder) Path(path string) *Builder {
	b.cfg.Path = path
	return b
}

// TimestampTemplate sets the strftime pattern substituted for {timestamp}.
func (b *Builder) TimestampTemplate(pattern string) *Builder {
	b.cfg.TimestampTemplate = pattern
	return b
}

// Truncate truncates the file when opening instead of appending.
func (b *Builder) Truncate(enable bool) *Builder {
	b.cfg.Truncate = enable
	return b
}

// RotateSize sets the size in bytes that triggers rotation, 0 disables rotation.
// Sizes beyond the configuration range, DefaultRotateSize included, disable rotation.
func (b *Builder) RotateSize(size uint64) *Builder {
	if size > math.MaxInt64 {
		size = 0
	}
	b.cfg.RotateSize = int64(size)
	return b
}

// RotateKeep sets the number of rotated files to keep.
func (b *Builder) RotateKeep(count int) *Builder {
	b.cfg.RotateKeep = int64(count)
	return b
}

// RotateCompress gzips rotated files.
func (b *Builder) RotateCompress(enable bool) *Builder {
	b.cfg.RotateCompress = enable
	return b
}

// RestrictPermissions makes the log and its archives owner-only.
func (b *Builder) RestrictPermissions(enable bool) *Builder {
	b.cfg.RestrictPermissions = enable
	return b
}

// ReopenCheckInterval sets the minimum time between checks that the file still exists.
func (b *Builder) ReopenCheckInterval(d time.Duration) *Builder {
	b.cfg.ReopenCheckIntervalMs = d.Milliseconds()
	return b
}

// RotateLock coordinates rotation with other processes through "<path>.lock".
func (b *Builder) RotateLock(enable bool) *Builder {
	b.cfg.RotateLock = enable
	return b
}

// Facility sets the syslog facility.
func (b *Builder) Facility(f Facility) *Builder {
	b.cfg.Facility = f.String()
	return b
}

// Ident sets the syslog tag, empty uses the process name.
func (b *Builder) Ident(ident string) *Builder {
	b.cfg.Ident = ident
	return b
}

// LogDelay defers the syslog connection to the first message.
func (b *Builder) LogDelay(enable bool) *Builder {
	b.cfg.LogDelay = enable
	return b
}

// LogPError mirrors syslog messages to stderr.
func (b *Builder) LogPError(enable bool) *Builder {
	b.cfg.LogPError = enable
	return b
}

// SyslogFormat selects "default" (message with structured fields) or "basic" (message only).
func (b *Builder) SyslogFormat(format string) *Builder {
	b.cfg.SyslogFormat = format
	return b
}

// IdentityRegistry replaces the process-wide syslog identity registry.
func (b *Builder) IdentityRegistry(r IdentityRegistry) *Builder {
	b.registry = r
	return b
}

// Build creates a new Logger from the current configuration.
func (b *Builder) Build() (*Logger, error) {
	if b.err != nil {
		return nil, b.err
	}

	s, err := b.cfg.resolve()
	if err != nil {
		return nil, err
	}

	state := &State{}
	d, err := b.openDrain(s, state)
	if err != nil {
		return nil, err
	}

	ch := newAsyncChannel(s.channelSize, s.overflow, s.dropReportInterval, state)
	logger := &Logger{
		p:        newPipeline(ch, d, state, s.internalErrors),
		level:    s.level,
		location: s.location,
	}
	if s.logPID && s.kind != TypeSyslog {
		logger.fields = []any{"pid", os.Getpid()}
	}
	return logger, nil
}

// openDrain creates the sink selected by the configuration
func (b *Builder) openDrain(s *settings, state *State) (drain, error) {
	now := b.now
	if now == nil {
		now = time.Now
	}

	switch s.kind {
	case TypeNull:
		return nullDrain{}, nil

	case TypeFile:
		path, err := expandPath(s.path, s.timestampTemplate, s.zone.In(now()))
		if err != nil {
			return nil, err
		}
		appender, err := NewFileAppender(path, s.appender)
		if err != nil {
			return nil, err
		}
		appender.now = now
		appender.onRotate = func() { state.Rotations.Add(1) }
		d := newFileDrain(appender, s.format, s.zone, s.location)
		d.now = now
		return d, nil

	case TypeSyslog:
		registry := b.registry
		if registry == nil {
			registry = ProcessIdentityRegistry()
		}
		backend := b.backend
		if backend == nil {
			backend = defaultSyslogBackend()
		}
		var ident *Ident
		if s.ident != "" {
			ident = NewIdent(s.ident)
		}
		return openSyslogDrain(backend, registry, ident, s.facility, s.syslogOpts, s.syslogFormat, s.location)

	default:
		out := b.output
		if out == nil {
			out = os.Stderr
			if s.destination == DestinationStdout {
				out = os.Stdout
			}
		}
		d := &terminalDrain{writerDrain: newWriterDrain(out, s.format, s.zone, s.location)}
		d.now = now
		return d, nil
	}
}
