// FILE: lixenwraith/loggers/integration_test.go
package loggers

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

// TestConcurrentProducers verifies no record is lost or duplicated under the blocking strategy
func TestConcurrentProducers(t *testing.T) {
	const producers, perProducer = 8, 500

	path := filepath.Join(t.TempDir(), "concurrent.log")
	logger, err := NewFileBuilder(path).
		Format(FormatCompact).
		SourceLocation(SourceLocationNone).
		ChannelSize(16).
		OverflowStrategy(OverflowBlock).
		Build()
	require.NoError(t, err)

	var g errgroup.Group
	for p := 0; p < producers; p++ {
		g.Go(func() error {
			for i := 0; i < perProducer; i++ {
				logger.Info("record", "producer", p, "seq", i)
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())
	require.NoError(t, logger.Close())

	stats := logger.Stats()
	assert.Equal(t, uint64(producers*perProducer), stats.Delivered)
	assert.Equal(t, uint64(0), stats.Dropped)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	// Each producer's records appear in its own order
	next := make(map[string]int)
	seen := make(map[string]bool)
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		require.False(t, seen[line], "duplicate line %q", line)
		seen[line] = true

		var producer string
		var seq int
		idx := strings.Index(line, "producer=")
		require.GreaterOrEqual(t, idx, 0, line)
		_, err := fmt.Sscanf(line[idx:], "producer=%s seq=%d", &producer, &seq)
		require.NoError(t, err, line)
		assert.Equal(t, next[producer], seq, "producer %s out of order", producer)
		next[producer] = seq + 1
	}
	require.NoError(t, scanner.Err())
	assert.Len(t, seen, producers*perProducer)
}

// TestConcurrentDropAndReport verifies every dropped record is eventually reported or still pending
func TestConcurrentDropAndReport(t *testing.T) {
	d := &recordingDrain{}
	l := newTestLogger(t, d, 4, OverflowDropAndReport, 0)

	var g errgroup.Group
	for p := 0; p < 4; p++ {
		g.Go(func() error {
			for i := 0; i < 1000; i++ {
				l.Info("burst")
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())
	l.Info("final")
	pending := l.p.channel.pending()
	require.NoError(t, l.Close())

	stats := l.Stats()
	var reported uint64
	for _, r := range d.records {
		if r.Message == dropReportMessage {
			reported += r.Fields[1].(uint64)
		}
	}
	assert.Equal(t, stats.ReportedDrops, reported)
	assert.Equal(t, stats.Dropped, reported+pending)
	assert.Equal(t, uint64(4001), stats.Enqueued+stats.Dropped)
}

// TestConcurrentDropStalledConsumer verifies producers never block on a full channel under plain drop
func TestConcurrentDropStalledConsumer(t *testing.T) {
	d := &recordingDrain{
		gate:    make(chan struct{}),
		entered: make(chan struct{}, 8),
	}
	l := newTestLogger(t, d, 1, OverflowDrop, 0)
	var release sync.Once
	t.Cleanup(func() { release.Do(func() { close(d.gate) }) })

	l.Info("held")
	<-d.entered // consumer holds the record and waits on the gate

	var g errgroup.Group
	for p := 0; p < 2; p++ {
		g.Go(func() error {
			for i := 0; i < 100; i++ {
				l.Info("burst")
			}
			return nil
		})
	}
	done := make(chan error, 1)
	go func() { done <- g.Wait() }()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("producers blocked on a full channel")
	}

	stats := l.Stats()
	assert.Equal(t, uint64(1), stats.Enqueued-1, "only one buffered slot besides the held record")
	assert.Equal(t, uint64(199), stats.Dropped)
	assert.Equal(t, uint64(0), l.p.channel.pending(), "plain drop keeps no report count")

	release.Do(func() { close(d.gate) })
	require.NoError(t, l.Close())
	assert.Equal(t, []string{"held", "burst"}, d.messages())
}
