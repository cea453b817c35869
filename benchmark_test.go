package loggers

import (
	"path/filepath"
	"testing"
)

// BenchmarkLoggerNull benchmarks the producer side with a sink that discards everything
func BenchmarkLoggerNull(b *testing.B) {
	logger, _ := NewNullBuilder().OverflowStrategy(OverflowBlock).Build()
	defer logger.Close()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		logger.Info("benchmark message", "i", i)
	}
}

// BenchmarkLoggerNoLocation benchmarks logging without call site capture
func BenchmarkLoggerNoLocation(b *testing.B) {
	logger, _ := NewNullBuilder().OverflowStrategy(OverflowBlock).SourceLocation(SourceLocationNone).Build()
	defer logger.Close()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		logger.Info("benchmark message", "i", i)
	}
}

// BenchmarkLoggerFiltered benchmarks records rejected by the level threshold
func BenchmarkLoggerFiltered(b *testing.B) {
	logger, _ := NewNullBuilder().Level(SeverityError).Build()
	defer logger.Close()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		logger.Debug("benchmark message", "i", i)
	}
}

// BenchmarkLoggerFileJSON benchmarks JSON records written through the file appender
func BenchmarkLoggerFileJSON(b *testing.B) {
	logger, _ := NewFileBuilder(filepath.Join(b.TempDir(), "bench.log")).
		Format(FormatJSON).
		OverflowStrategy(OverflowBlock).
		Build()
	defer logger.Close()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		logger.Info("benchmark message", "i", i, "key", "value")
	}
}

// BenchmarkLoggerParallel benchmarks contended producers
func BenchmarkLoggerParallel(b *testing.B) {
	logger, _ := NewNullBuilder().SourceLocation(SourceLocationNone).Build()
	defer logger.Close()

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			logger.Info("parallel message", "key", "value")
		}
	})
}
