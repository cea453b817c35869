package loggers

import (
	"io"
	"time"

	"github.com/lixenwraith/loggers/formatter"
	"github.com/lixenwraith/loggers/sanitizer"
)

// writerDrain formats records and writes them to an io.Writer
type writerDrain struct {
	out      io.Writer
	format   *formatter.Formatter
	zone     TimeZone
	location SourceLocation
	now      func() time.Time
}

// newWriterDrain creates the formatting half shared by terminal and file drains
func newWriterDrain(out io.Writer, format Format, zone TimeZone, location SourceLocation) writerDrain {
	var f *formatter.Formatter
	switch format {
	case FormatJSON:
		f = formatter.New().Type(formatter.TypeJSON)
	case FormatCompact:
		f = formatter.New(sanitizer.New().Policy(sanitizer.PolicyTerminal)).Type(formatter.TypeCompact)
	default:
		f = formatter.New(sanitizer.New().Policy(sanitizer.PolicyTerminal)).Type(formatter.TypeFull)
	}
	return writerDrain{
		out:      out,
		format:   f,
		zone:     zone,
		location: location,
		now:      time.Now,
	}
}

func (d *writerDrain) write(record *Record) error {
	data := d.format.Format(record.entry(d.now(), d.zone, d.location))
	_, err := d.out.Write(data)
	return err
}

func (d *writerDrain) writeRaw(record *Record) error {
	_, err := io.WriteString(d.out, record.Message+"\n")
	return err
}

// terminalDrain writes to stdout or stderr
type terminalDrain struct {
	writerDrain
}

// flush is a no-op, terminal writes are unbuffered
func (d *terminalDrain) flush() error {
	return nil
}

func (d *terminalDrain) close() error {
	return nil
}

// fileDrain writes through a FileAppender
type fileDrain struct {
	writerDrain
	appender *FileAppender
}

func newFileDrain(appender *FileAppender, format Format, zone TimeZone, location SourceLocation) *fileDrain {
	return &fileDrain{
		writerDrain: newWriterDrain(appender, format, zone, location),
		appender:    appender,
	}
}

func (d *fileDrain) flush() error {
	return d.appender.Flush()
}

func (d *fileDrain) close() error {
	return d.appender.Close()
}

// nullDrain discards everything
type nullDrain struct{}

func (nullDrain) write(*Record) error    { return nil }
func (nullDrain) writeRaw(*Record) error { return nil }
func (nullDrain) flush() error           { return nil }
func (nullDrain) close() error           { return nil }
