package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"strings"
	"sync/atomic"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/lixenwraith/loggers"
)

const (
	totalBursts    = 100
	logsPerBurst   = 500
	maxMessageSize = 10000
	numWorkers     = 500
)

const configFile = "stress_config.toml"
const configSection = "logstress"

// Example TOML content for stress test
var tomlContent = `
# Example stress_config.toml
[logstress]
  type = "file"
  level = "debug"
  path = "./logs/stress_test.log"
  format = "compact"
  channel_size = 500
  overflow_strategy = "drop_and_report"
  drop_report_interval_ms = 500
  rotate_size = 1048576 # Force frequent rotation (1MB)
  rotate_keep = 20
  rotate_compress = true
`

var levels = []loggers.Severity{
	loggers.SeverityDebug,
	loggers.SeverityInfo,
	loggers.SeverityWarning,
	loggers.SeverityError,
}

func generateRandomMessage(size int) string {
	const chars = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789 "
	var sb strings.Builder
	sb.Grow(size)
	for i := 0; i < size; i++ {
		sb.WriteByte(chars[rand.Intn(len(chars))])
	}
	return sb.String()
}

// logBurst simulates a burst of logging activity
func logBurst(logger *loggers.Logger, burstID int) {
	for i := 0; i < logsPerBurst; i++ {
		level := levels[rand.Intn(len(levels))]
		msgSize := rand.Intn(maxMessageSize) + 10
		logger.Log(level, generateRandomMessage(msgSize),
			"wkr", burstID%numWorkers,
			"bst", burstID,
			"seq", i,
			"rnd", rand.Int63(),
		)
	}
}

func main() {
	fmt.Println("--- Logger Stress Test ---")

	if err := os.WriteFile(configFile, []byte(tomlContent), 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to write dummy config: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Created dummy config file: %s\n", configFile)
	logsDir := "./logs"
	_ = os.RemoveAll(logsDir)
	if err := os.MkdirAll(logsDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create log directory: %v\n", err)
		os.Exit(1)
	}

	cfg, err := loggers.NewConfigFromFile(configFile, configSection)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if len(os.Args) > 1 {
		// Remaining arguments are key=value overrides, e.g. overflow_strategy=block
		if err := cfg.ApplyOverride(os.Args[1:]...); err != nil {
			fmt.Fprintf(os.Stderr, "Invalid override: %v\n", err)
			os.Exit(1)
		}
	}

	logger, err := cfg.Build()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to build logger: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Logger built. Logs will be written to: %s\n", logsDir)

	fmt.Printf("Starting stress test: %d workers, %d bursts, %d logs/burst.\n",
		numWorkers, totalBursts, logsPerBurst)
	fmt.Println("Watch for 'Logs were dropped' records in the output.")
	fmt.Println("Press Ctrl+C to stop early.")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	burstChan := make(chan int, numWorkers)
	var completedBursts atomic.Int64
	g, gctx := errgroup.WithContext(ctx)

	for i := 0; i < numWorkers; i++ {
		g.Go(func() error {
			for burstID := range burstChan {
				logBurst(logger, burstID)
				completed := completedBursts.Add(1)
				if completed%10 == 0 || completed == totalBursts {
					fmt.Printf("\rProgress: %d/%d bursts completed", completed, totalBursts)
				}
			}
			return nil
		})
	}

	startTime := time.Now()
submit:
	for i := 1; i <= totalBursts; i++ {
		select {
		case burstChan <- i:
		case <-gctx.Done():
			fmt.Println("\n[Signal Received] Halting burst submission.")
			break submit
		}
	}
	close(burstChan)

	fmt.Println("\nWaiting for workers to finish...")
	_ = g.Wait()
	duration := time.Since(startTime)
	finalCompleted := completedBursts.Load()

	fmt.Printf("\n--- Test Finished ---")
	fmt.Printf("\nCompleted %d/%d bursts in %v\n", finalCompleted, totalBursts, duration.Round(time.Millisecond))
	if finalCompleted > 0 && duration.Seconds() > 0 {
		logsPerSec := float64(finalCompleted*logsPerBurst) / duration.Seconds()
		fmt.Printf("Approximate Logs/sec: %.2f\n", logsPerSec)
	}

	fmt.Println("Closing logger, draining buffered records...")
	if err := logger.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Logger close error: %v\n", err)
	} else {
		fmt.Println("Logger closed.")
	}

	stats := logger.Stats()
	fmt.Printf("Enqueued %d, delivered %d, dropped %d (%d reported), rotations %d, write errors %d\n",
		stats.Enqueued, stats.Delivered, stats.Dropped, stats.ReportedDrops, stats.Rotations, stats.WriteErrors)
	fmt.Printf("Check log files in '%s'.\n", logsDir)
}
