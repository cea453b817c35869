package loggers

import (
	"fmt"
	"time"

	"github.com/lixenwraith/loggers/formatter"
	"github.com/lixenwraith/loggers/sanitizer"
)

// SyslogOptions are the openlog(3) flags of a syslog sink
// The OS backend is built on log/syslog, which tags every message with the process id,
// so PID only controls the stderr copy written under PError.
type SyslogOptions struct {
	PID    bool // LOG_PID: include the process id
	Delay  bool // LOG_ODELAY: connect on the first message instead of at open
	PError bool // LOG_PERROR: mirror messages to stderr
}

// Syslog message layouts
const (
	SyslogFormatDefault = "default" // msg [key="value" ...]
	SyslogFormatBasic   = "basic"   // msg only
)

// syslogBackend is the OS syslog facility: one process-wide connection
type syslogBackend interface {
	openlog(ident string, opts SyslogOptions, facility Facility) error
	syslog(priority int, msg string) error
	closelog()
}

// syslogDrain sends records to the OS syslog facility
type syslogDrain struct {
	backend  syslogBackend
	registry IdentityRegistry
	ident    *Ident // owned identity, nil when the process name is used
	format   *formatter.Formatter
	location SourceLocation
}

// openSyslogDrain registers the sink with the OS facility under the registry lock
func openSyslogDrain(backend syslogBackend, registry IdentityRegistry, ident *Ident, facility Facility, opts SyslogOptions, msgFormat string, location SourceLocation) (*syslogDrain, error) {
	d := &syslogDrain{
		backend:  backend,
		registry: registry,
		ident:    ident,
		location: location,
	}
	switch msgFormat {
	case SyslogFormatBasic:
		d.format = formatter.New().Type(formatter.TypeBasic)
	default:
		d.format = formatter.New(sanitizer.New().Policy(sanitizer.PolicySyslog)).Type(formatter.TypeSyslog)
	}

	err := registry.Register(ident, func() error {
		return backend.openlog(ident.Name(), opts, facility)
	})
	if err != nil {
		return nil, otherError(err, "failed to open syslog")
	}
	return d, nil
}

// formatMessage formats a record, converting a formatter panic into an error
func (d *syslogDrain) formatMessage(record *Record) (msg string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%v", r)
		}
	}()
	// Syslog stamps messages itself
	entry := record.entry(time.Time{}, TimeZoneUTC, d.location)
	return string(d.format.Format(entry)), nil
}

func (d *syslogDrain) write(record *Record) error {
	priority := syslogPriority(record.Severity)

	msg, err := d.formatMessage(record)
	if err != nil {
		// Deliver the bare message, then say why the fields are missing
		if sendErr := d.backend.syslog(priority, record.Message); sendErr != nil {
			return sendErr
		}
		return d.backend.syslog(priorityErr, fmt.Sprintf("Error fully formatting the previous log message: %s", err))
	}
	return d.backend.syslog(priority, msg)
}

func (d *syslogDrain) writeRaw(record *Record) error {
	return d.backend.syslog(syslogPriority(record.Severity), record.Message)
}

func (d *syslogDrain) flush() error {
	return nil
}

// close closes the OS connection only while this sink's identity is still registered
func (d *syslogDrain) close() error {
	if d.ident != nil {
		d.registry.UnregisterIfCurrent(d.ident, d.backend.closelog)
	}
	return nil
}
