package compat

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/lixenwraith/loggers"
)

// createTestCompatBuilder creates a json file logger and a builder sharing it
func createTestCompatBuilder(t *testing.T) (*Builder, *loggers.Logger, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "app.log")
	appLogger, err := loggers.NewFileBuilder(path).
		Format(loggers.FormatJSON).
		Level(loggers.SeverityDebug).
		SourceLocation(loggers.SourceLocationNone).
		OverflowStrategy(loggers.OverflowBlock).
		Build()
	require.NoError(t, err)

	builder := NewBuilder().WithLogger(appLogger)
	return builder, appLogger, path
}

// readLogEntries closes the logger so every record is on disk, then parses the file
func readLogEntries(t *testing.T, logger *loggers.Logger, path string) []map[string]any {
	t.Helper()
	require.NoError(t, logger.Close())

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	var entries []map[string]any
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var entry map[string]any
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &entry), "Failed to parse log line: %s", scanner.Text())
		entries = append(entries, entry)
	}
	require.NoError(t, scanner.Err())
	return entries
}

// TestCompatBuilder verifies the compatibility builder can be initialized correctly
func TestCompatBuilder(t *testing.T) {
	t.Run("with existing logger", func(t *testing.T) {
		builder, logger, _ := createTestCompatBuilder(t)
		defer logger.Close()

		gnetAdapter, err := builder.BuildGnet()
		require.NoError(t, err)
		assert.NotNil(t, gnetAdapter)

		got, err := builder.GetLogger()
		require.NoError(t, err)
		assert.Same(t, logger, got)
	})

	t.Run("with config", func(t *testing.T) {
		logCfg := loggers.DefaultConfig()
		logCfg.Type = loggers.TypeNull

		builder := NewBuilder().WithConfig(logCfg)
		fasthttpAdapter, err := builder.BuildFastHTTP()
		require.NoError(t, err)
		assert.NotNil(t, fasthttpAdapter)

		logger1, err := builder.GetLogger()
		require.NoError(t, err)
		defer logger1.Close()

		logger2, err := builder.GetLogger()
		require.NoError(t, err)
		assert.Same(t, logger1, logger2, "builder should cache the built logger")
	})

	t.Run("invalid config", func(t *testing.T) {
		logCfg := loggers.DefaultConfig()
		logCfg.Type = loggers.TypeFile // no path

		_, err := NewBuilder().WithConfig(logCfg).BuildGnet()
		require.Error(t, err)
		assert.True(t, loggers.IsInvalid(err))
	})

	t.Run("nil logger", func(t *testing.T) {
		_, err := NewBuilder().WithLogger(nil).BuildFastHTTP()
		assert.Error(t, err)
	})
}

// TestGnetAdapter tests the gnet adapter's logging output and format
func TestGnetAdapter(t *testing.T) {
	builder, logger, path := createTestCompatBuilder(t)

	var fatalMsg string
	adapter, err := builder.BuildGnet(WithFatalHandler(func(msg string) {
		fatalMsg = msg
	}))
	require.NoError(t, err)

	adapter.Debugf("gnet debug id=%d", 1)
	adapter.Infof("gnet info id=%d", 2)
	adapter.Warnf("gnet warn id=%d", 3)
	adapter.Errorf("gnet error id=%d", 4)
	// Fatalf closes the logger itself
	adapter.Fatalf("gnet fatal id=%d", 5)

	entries := readLogEntries(t, logger, path)
	expected := []struct{ level, msg string }{
		{"DEBUG", "gnet debug id=1"},
		{"INFO", "gnet info id=2"},
		{"WARN", "gnet warn id=3"},
		{"ERROR", "gnet error id=4"},
		{"CRIT", "gnet fatal id=5"},
	}
	require.Len(t, entries, len(expected))

	for i, entry := range entries {
		assert.Equal(t, expected[i].level, entry["level"])
		assert.Equal(t, expected[i].msg, entry["msg"])
		assert.Equal(t, "gnet", entry["source"])
	}
	assert.Equal(t, true, entries[4]["fatal"])
	assert.Equal(t, "gnet fatal id=5", fatalMsg, "Custom fatal handler should have been called")
}

// TestStructuredGnetAdapter tests the gnet adapter with structured field extraction
func TestStructuredGnetAdapter(t *testing.T) {
	builder, logger, path := createTestCompatBuilder(t)

	adapter, err := builder.BuildStructuredGnet()
	require.NoError(t, err)

	adapter.Infof("request served status=%d client_ip=%s", 200, "127.0.0.1")
	adapter.Warnf("plain message %d", 7)

	entries := readLogEntries(t, logger, path)
	require.Len(t, entries, 2)

	assert.Equal(t, "INFO", entries[0]["level"])
	assert.Equal(t, "request served", entries[0]["msg"])
	assert.Equal(t, 200.0, entries[0]["status"]) // JSON numbers are float64
	assert.Equal(t, "127.0.0.1", entries[0]["client_ip"])
	assert.Equal(t, "gnet", entries[0]["source"])

	assert.Equal(t, "WARN", entries[1]["level"])
	assert.Equal(t, "plain message 7", entries[1]["msg"])
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		name    string
		format  string
		args    []any
		wantMsg string
		wantKV  []any
	}{
		{"no fields", "connection closed after %d ms", []any{12}, "connection closed after 12 ms", nil},
		{"key value", "accepted conn=%d addr=%s", []any{3, "1.2.3.4"}, "accepted", []any{"conn", 3, "addr", "1.2.3.4"}},
		{"colon form", "loop stopped, reason: %v", []any{"eof"}, "loop stopped", []any{"reason", "eof"}},
		{"too few args", "a=%d b=%d", []any{1}, "a=1 b=%!d(MISSING)", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg, kv := parseFormat(tt.format, tt.args)
			assert.Equal(t, tt.wantMsg, msg)
			assert.Equal(t, tt.wantKV, kv)
		})
	}
}

// TestFastHTTPAdapter tests the fasthttp adapter's logging output and level detection
func TestFastHTTPAdapter(t *testing.T) {
	builder, logger, path := createTestCompatBuilder(t)

	adapter, err := builder.BuildFastHTTP()
	require.NoError(t, err)

	testMessages := []string{
		"this is some informational message",
		"a debug message for the developers",
		"warning: something might be wrong",
		"an error occurred while processing",
	}
	for _, msg := range testMessages {
		adapter.Printf("%s", msg)
	}

	entries := readLogEntries(t, logger, path)
	expectedLevels := []string{"INFO", "DEBUG", "WARN", "ERROR"}
	require.Len(t, entries, len(testMessages))

	for i, entry := range entries {
		assert.Equal(t, expectedLevels[i], entry["level"])
		assert.Equal(t, testMessages[i], entry["msg"])
		assert.Equal(t, "fasthttp", entry["source"])
	}
}

func TestFastHTTPAdapterOptions(t *testing.T) {
	builder, logger, path := createTestCompatBuilder(t)

	adapter, err := builder.BuildFastHTTP(
		WithDefaultLevel(loggers.SeverityWarning),
		WithLevelDetector(func(string) (loggers.Severity, bool) { return loggers.SeverityInfo, false }),
	)
	require.NoError(t, err)

	adapter.Printf("an error that the detector ignores")

	entries := readLogEntries(t, logger, path)
	require.Len(t, entries, 1)
	assert.Equal(t, "WARN", entries[0]["level"])
}

func TestDetectLogLevel(t *testing.T) {
	tests := []struct {
		msg   string
		level loggers.Severity
		found bool
	}{
		{"panic: runtime error", loggers.SeverityCritical, true},
		{"request failed", loggers.SeverityError, true},
		{"DEPRECATED header", loggers.SeverityWarning, true},
		{"trace id assigned", loggers.SeverityTrace, true},
		{"hello", loggers.SeverityInfo, false},
	}

	for _, tt := range tests {
		level, found := DetectLogLevel(tt.msg)
		assert.Equal(t, tt.level, level, tt.msg)
		assert.Equal(t, tt.found, found, tt.msg)
	}
}

// TestZapCore tests zap entries reaching the logger with their fields in order
func TestZapCore(t *testing.T) {
	builder, logger, path := createTestCompatBuilder(t)

	zl, err := builder.BuildZap()
	require.NoError(t, err)

	zl.Named("db").With(zap.String("component", "pool")).Info("connected", zap.Int("conns", 4), zap.Bool("tls", true))
	zl.Debug("query", zap.Duration("took", 0))
	zl.Warn("slow")
	zl.Error("lost connection")

	entries := readLogEntries(t, logger, path)
	require.Len(t, entries, 4)

	assert.Equal(t, "INFO", entries[0]["level"])
	assert.Equal(t, "connected", entries[0]["msg"])
	assert.Equal(t, "db", entries[0]["logger"])
	assert.Equal(t, "pool", entries[0]["component"])
	assert.Equal(t, 4.0, entries[0]["conns"])
	assert.Equal(t, true, entries[0]["tls"])

	assert.Equal(t, "DEBUG", entries[1]["level"])
	assert.Equal(t, "WARN", entries[2]["level"])
	assert.Equal(t, "ERROR", entries[3]["level"])
}

func TestZapCoreLevels(t *testing.T) {
	logger, err := loggers.NewNullBuilder().Level(loggers.SeverityWarning).Build()
	require.NoError(t, err)
	defer logger.Close()

	core := NewZapCore(logger)
	assert.False(t, core.Enabled(zap.DebugLevel))
	assert.False(t, core.Enabled(zap.InfoLevel))
	assert.True(t, core.Enabled(zap.WarnLevel))
	assert.True(t, core.Enabled(zap.DPanicLevel))
	assert.Equal(t, loggers.SeverityCritical, severityFromZap(zap.FatalLevel))
	assert.NoError(t, core.Sync())
}
