package loggers

import (
	"sync"
	"testing"
	"time"
)

// recordingDrain captures delivered records, write blocks while gate is open
type recordingDrain struct {
	mu      sync.Mutex
	records []Record
	raw     []string
	flushes int
	closes  int

	gate     chan struct{} // write waits until gate is closed, nil never waits
	entered  chan struct{} // signalled on every write call, nil disables
	writeErr   error
	panicMsg   string
	flushPanic string // flush panics with this message when set
}

func (d *recordingDrain) write(record *Record) error {
	if d.entered != nil {
		d.entered <- struct{}{}
	}
	if d.gate != nil {
		<-d.gate
	}
	if d.panicMsg != "" {
		panic(d.panicMsg)
	}
	if d.writeErr != nil {
		return d.writeErr
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.records = append(d.records, *record)
	return nil
}

func (d *recordingDrain) writeRaw(record *Record) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.raw = append(d.raw, record.Message)
	return nil
}

func (d *recordingDrain) flush() error {
	if d.flushPanic != "" {
		panic(d.flushPanic)
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.flushes++
	return nil
}

func (d *recordingDrain) close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.closes++
	return nil
}

func (d *recordingDrain) messages() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	msgs := make([]string, 0, len(d.records))
	for _, r := range d.records {
		msgs = append(msgs, r.Message)
	}
	return msgs
}

// newTestLogger wires a logger to a drain without going through the builder
func newTestLogger(t *testing.T, d drain, capacity int, strategy OverflowStrategy, reportInterval time.Duration) *Logger {
	t.Helper()
	state := &State{}
	ch := newAsyncChannel(capacity, strategy, reportInterval, state)
	l := &Logger{
		p:        newPipeline(ch, d, state, false),
		level:    SeverityTrace,
		location: SourceLocationNone,
	}
	t.Cleanup(func() { _ = l.Close() })
	return l
}
