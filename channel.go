package loggers

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// asyncChannel is the bounded queue between producers and the single consumer
type asyncChannel struct {
	ch       chan *Record
	strategy OverflowStrategy
	state    *State

	mu     sync.RWMutex // write-held only by close, so sends never hit a closed channel
	closed bool

	unreported    uint64 // drops not yet announced, guarded by reportMu
	reportMu      sync.Mutex
	reportLimiter *rate.Limiter
}

// newAsyncChannel creates a channel with a fixed capacity
// reportInterval paces drop reports, zero reports on every successful send
func newAsyncChannel(capacity int, strategy OverflowStrategy, reportInterval time.Duration, state *State) *asyncChannel {
	limit := rate.Inf
	if reportInterval > 0 {
		limit = rate.Every(reportInterval)
	}
	return &asyncChannel{
		ch:            make(chan *Record, capacity),
		strategy:      strategy,
		state:         state,
		reportLimiter: rate.NewLimiter(limit, 1),
	}
}

// send enqueues a record according to the overflow strategy
// It never blocks unless the strategy is OverflowBlock
func (c *asyncChannel) send(record *Record) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.closed {
		c.state.Dropped.Add(1)
		return
	}

	if c.strategy == OverflowBlock {
		c.ch <- record
		c.state.Enqueued.Add(1)
		return
	}

	select {
	case c.ch <- record:
		c.state.Enqueued.Add(1)
		if c.strategy == OverflowDropAndReport {
			c.reportDrops()
		}
	default:
		c.handleFailedSend()
	}
}

// handleFailedSend counts a dropped record
func (c *asyncChannel) handleFailedSend() {
	c.state.Dropped.Add(1)
	if c.strategy == OverflowDropAndReport {
		c.reportMu.Lock()
		c.unreported++
		c.reportMu.Unlock()
	}
}

// reportDrops tries to enqueue a report of unannounced drops, caller holds mu.RLock
func (c *asyncChannel) reportDrops() {
	c.reportMu.Lock()
	count := c.unreported
	if count == 0 || !c.reportLimiter.Allow() {
		c.reportMu.Unlock()
		return
	}
	c.unreported = 0
	c.reportMu.Unlock()

	select {
	case c.ch <- newDropReport(count):
		c.state.ReportedDrops.Add(count)
	default:
		// Restore the count, a later send retries the report
		c.reportMu.Lock()
		c.unreported += count
		c.reportMu.Unlock()
	}
}

// pending returns the number of unannounced drops
func (c *asyncChannel) pending() uint64 {
	c.reportMu.Lock()
	defer c.reportMu.Unlock()
	return c.unreported
}

// close stops accepting records, the consumer drains what is buffered
func (c *asyncChannel) close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	close(c.ch)
}
