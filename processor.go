// --- File: processor.go ---
package loggers

import (
	"fmt"
	"sync"
)

// drain is the sink-side writer driven by the consumer goroutine
// Implementations are terminalDrain, fileDrain, nullDrain and syslogDrain
type drain interface {
	// write formats and writes one record
	write(record *Record) error
	// writeRaw writes the bare message when write failed
	writeRaw(record *Record) error
	// flush pushes buffered bytes to the OS and runs sink maintenance
	flush() error
	// close releases the sink, called once after the channel is drained
	close() error
}

// pipeline owns the channel, the consumer goroutine and the drain of one built logger
type pipeline struct {
	channel        *asyncChannel
	drain          drain
	state          *State
	internalErrors bool

	done      chan struct{}
	closeOnce sync.Once
	closeErr  error
}

// newPipeline starts the consumer goroutine
func newPipeline(ch *asyncChannel, d drain, state *State, internalErrors bool) *pipeline {
	p := &pipeline{
		channel:        ch,
		drain:          d,
		state:          state,
		internalErrors: internalErrors,
		done:           make(chan struct{}),
	}
	go p.processLogs()
	return p
}

// processLogs drains the channel in FIFO order until it is closed and empty
func (p *pipeline) processLogs() {
	defer close(p.done)

	for record := range p.channel.ch {
		p.deliver(record)
	}

	if err := p.drain.close(); err != nil {
		p.closeErr = err
		internalLog(p.internalErrors, "failed to close sink: %v", err)
	}
}

// deliver writes and flushes one record, a failure never stops the consumer
func (p *pipeline) deliver(record *Record) {
	written := false
	defer func() {
		if r := recover(); r != nil {
			if written {
				// The record is out, only the flush failed
				p.state.WriteErrors.Add(1)
				internalLog(p.internalErrors, "panic while flushing sink: %v", r)
				return
			}
			p.fallback(record, fmtErrorf("panic while writing record: %v", r))
		}
	}()

	if err := p.drain.write(record); err != nil {
		p.fallback(record, err)
		return
	}
	written = true
	p.state.Delivered.Add(1)

	if err := p.drain.flush(); err != nil {
		p.state.WriteErrors.Add(1)
		internalLog(p.internalErrors, "failed to flush sink: %v", err)
	}
}

// fallback writes the bare message after a failed write
func (p *pipeline) fallback(record *Record, cause error) {
	p.state.WriteErrors.Add(1)
	internalLog(p.internalErrors, "failed to write record %q: %v", record.Message, cause)

	defer func() {
		if r := recover(); r != nil {
			internalLog(p.internalErrors, "fallback write failed: %v", fmt.Sprint(r))
		}
	}()
	if err := p.drain.writeRaw(record); err != nil {
		internalLog(p.internalErrors, "fallback write failed: %v", err)
		return
	}
	p.state.Delivered.Add(1)
	if err := p.drain.flush(); err != nil {
		internalLog(p.internalErrors, "failed to flush sink: %v", err)
	}
}

// shutdown closes the channel and waits for the consumer to finish
func (p *pipeline) shutdown() error {
	p.closeOnce.Do(func() {
		p.channel.close()
	})
	<-p.done
	return p.closeErr
}
