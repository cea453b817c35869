// FILE: lixenwraith/loggers/logger_test.go
package loggers

import (
	"fmt"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestLoggerLevels verifies records below the threshold never reach the channel
func TestLoggerLevels(t *testing.T) {
	d := &recordingDrain{}
	l := newTestLogger(t, d, 16, OverflowBlock, 0)
	l.level = SeverityWarning

	l.Trace("trace")
	l.Debug("debug")
	l.Info("info")
	l.Warning("warning")
	l.Error("error")
	l.Critical("critical")
	l.Log(SeverityInfo, "log info")
	l.Log(SeverityCritical, "log critical")
	require.NoError(t, l.Close())

	assert.Equal(t, []string{"warning", "error", "critical", "log critical"}, d.messages())
	assert.Equal(t, uint64(4), l.Stats().Enqueued)
	assert.True(t, l.Enabled(SeverityError))
	assert.False(t, l.Enabled(SeverityInfo))
	assert.Equal(t, SeverityWarning, l.Level())
}

// TestLoggerWith verifies derived loggers share the pipeline and prepend their fields
func TestLoggerWith(t *testing.T) {
	d := &recordingDrain{}
	l := newTestLogger(t, d, 16, OverflowBlock, 0)

	child := l.With("request_id", "abc")
	grandchild := child.With("user", 42)

	l.Info("plain", "k", 1)
	child.Info("child", "k", 2)
	grandchild.Info("grandchild")
	require.NoError(t, child.Close())

	require.Len(t, d.records, 3)
	assert.Equal(t, []any{"k", 1}, d.records[0].Fields)
	assert.Equal(t, []any{"request_id", "abc", "k", 2}, d.records[1].Fields)
	assert.Equal(t, []any{"request_id", "abc", "user", 42}, d.records[2].Fields)
	assert.Equal(t, uint64(3), l.Stats().Delivered, "derived loggers share the counters")
}

// TestLoggerFieldsCopied verifies reusing the argument slice does not alter queued records
func TestLoggerFieldsCopied(t *testing.T) {
	d := &recordingDrain{
		gate:    make(chan struct{}),
		entered: make(chan struct{}, 4),
	}
	l := newTestLogger(t, d, 16, OverflowBlock, 0)

	args := []any{"attempt", 1}
	l.Info("first", args...)
	<-d.entered // consumer holds the record and waits on the gate
	args[1] = 2
	l.Info("second", args...)
	args[1] = 3

	close(d.gate)
	require.NoError(t, l.Close())

	require.Len(t, d.records, 2)
	assert.Equal(t, []any{"attempt", 1}, d.records[0].Fields)
	assert.Equal(t, []any{"attempt", 2}, d.records[1].Fields)
}

// TestLoggerSourceLocation verifies the call site of the application is captured
func TestLoggerSourceLocation(t *testing.T) {
	d := &recordingDrain{}
	l := newTestLogger(t, d, 16, OverflowBlock, 0)
	l.location = SourceLocationModuleAndLine

	l.Info("direct")
	_, file, line, _ := runtime.Caller(0)
	logFromHelper(l.WithCallerSkip(1), "via helper")
	_, _, helperLine, _ := runtime.Caller(0)
	l.LogRecord(Record{Severity: SeverityInfo, Message: "record"})
	_, _, recordLine, _ := runtime.Caller(0)
	require.NoError(t, l.Close())

	require.Len(t, d.records, 3)
	direct := d.records[0].Location
	assert.Equal(t, "github.com/lixenwraith/loggers.TestLoggerSourceLocation", direct.Function)
	assert.Equal(t, file, direct.File)
	assert.Equal(t, line-1, direct.Line)
	assert.Equal(t, fmt.Sprintf("github.com/lixenwraith/loggers:%d", line-1), direct.render(SourceLocationModuleAndLine))
	assert.Equal(t, fmt.Sprintf("%s:%d", file, line-1), direct.render(SourceLocationFileAndLine))
	assert.Empty(t, direct.render(SourceLocationNone))

	assert.Equal(t, helperLine-1, d.records[1].Location.Line)
	assert.Equal(t, recordLine-1, d.records[2].Location.Line)
}

func logFromHelper(l *Logger, msg string) {
	l.Info(msg)
}

// TestLoggerNoLocation verifies nothing is captured when source locations are disabled
func TestLoggerNoLocation(t *testing.T) {
	d := &recordingDrain{}
	l := newTestLogger(t, d, 16, OverflowBlock, 0)

	l.Info("no location")
	require.NoError(t, l.Close())

	require.Len(t, d.records, 1)
	assert.Equal(t, Location{}, d.records[0].Location)
}

// TestLoggerAfterClose verifies late records are counted as dropped instead of panicking
func TestLoggerAfterClose(t *testing.T) {
	d := &recordingDrain{}
	l := newTestLogger(t, d, 16, OverflowBlock, 0)

	l.Info("before")
	require.NoError(t, l.Close())

	assert.NotPanics(t, func() {
		l.Info("after")
		l.With("k", "v").Error("after")
	})
	assert.Equal(t, []string{"before"}, d.messages())
	assert.Equal(t, uint64(2), l.Stats().Dropped)
}

func TestLocationRender(t *testing.T) {
	tests := []struct {
		name string
		loc  Location
		mode SourceLocation
		want string
	}{
		{"module", Location{Function: "github.com/a/b.(*T).M", File: "/src/b/t.go", Line: 7}, SourceLocationModuleAndLine, "github.com/a/b:7"},
		{"module plain function", Location{Function: "main.main", File: "/src/main.go", Line: 3}, SourceLocationModuleAndLine, "main:3"},
		{"file", Location{Function: "main.main", File: "/src/main.go", Line: 3}, SourceLocationFileAndLine, "/src/main.go:3"},
		{"local absolute", Location{Function: "github.com/a/b.F", File: "/src/b/f.go", Line: 9}, SourceLocationLocalFileAndLine, "github.com/a/b:9"},
		{"local relative", Location{Function: "github.com/a/b.F", File: "b/f.go", Line: 9}, SourceLocationLocalFileAndLine, "b/f.go:9"},
		{"unknown function", Location{File: "x.go", Line: 1}, SourceLocationModuleAndLine, "(unknown):1"},
		{"no line", Location{Function: "main.main"}, SourceLocationModuleAndLine, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.loc.render(tt.mode))
		})
	}
}
