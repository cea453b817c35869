// FILE: example/sink/main.go
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/lixenwraith/loggers"
)

const (
	logDirectory = "./temp_logs"
	logInterval  = 200 * time.Millisecond
)

// main runs every sink type in isolation, each on a fresh logger
func main() {
	if err := os.RemoveAll(logDirectory); err != nil {
		fmt.Printf("Warning: could not remove old log directory: %v\n", err)
	}
	if err := os.MkdirAll(logDirectory, 0755); err != nil {
		fmt.Printf("Fatal: could not create log directory: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("--- Running Sink Suite ---")
	fmt.Printf("! All file-based logs will be in the '%s' directory.\n\n", logDirectory)

	runPhase("1: File", loggers.NewFileBuilder(filepath.Join(logDirectory, "file_only.log")).
		RotateSize(4096).
		RotateKeep(3).
		RotateCompress(true))

	runPhase("2: File with timestamped name", loggers.NewFileBuilder(filepath.Join(logDirectory, "app_{timestamp}.log")).
		TimestampTemplate("%Y%m%d_%H%M%S").
		Format(loggers.FormatJSON))

	runPhase("3: Stdout", loggers.NewTerminalBuilder().
		Destination(loggers.DestinationStdout).
		Format(loggers.FormatCompact))

	fmt.Fprintln(os.Stderr, "\n---")
	runPhase("4: Stderr", loggers.NewTerminalBuilder())
	fmt.Fprintln(os.Stderr, "---")

	runPhase("5: Null (everything discarded)", loggers.NewNullBuilder())

	runPhase("6: Syslog", loggers.NewSyslogBuilder().
		Ident("loggers-sink-example").
		Facility(loggers.FacilityLocal0).
		LogPID(true))

	fmt.Println("\n--- Sink Suite Complete ---")
	fmt.Printf("Check the '%s' directory for log files.\n", logDirectory)
}

// runPhase builds a logger, writes a few records and closes it
func runPhase(name string, builder *loggers.Builder) {
	fmt.Printf("\n--- Phase %s ---\n", name)

	logger, err := builder.Level(loggers.SeverityDebug).Build()
	if err != nil {
		fmt.Printf("  Skipped: %v\n", err)
		return
	}

	for i := 0; i < 5; i++ {
		logger.Info("info record", "phase", name, "seq", i)
		logger.Debug("debug record", "phase", name, "seq", i)
		time.Sleep(logInterval / 5)
	}
	logger.Warning("phase finished", "phase", name)

	if err := logger.Close(); err != nil {
		fmt.Printf("  Close error: %v\n", err)
	}
	stats := logger.Stats()
	fmt.Printf("  Delivered %d, dropped %d, rotations %d\n", stats.Delivered, stats.Dropped, stats.Rotations)
}
