package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/lixenwraith/loggers"
)

const configFile = "simple_config.toml"
const configSection = "logging"

// Example TOML content
var tomlContent = `
# Example simple_config.toml
[logging]
  type = "file"
  level = "debug"
  path = "./simple_logs_{timestamp}.log"
  format = "full"
  source_location = "file_and_line"
  channel_size = 1024
  rotate_size = 65536
  rotate_keep = 4
  # Other settings use defaults
`

// overrideFlags collects repeated -o key=value flags
type overrideFlags []string

func (o *overrideFlags) String() string     { return strings.Join(*o, ",") }
func (o *overrideFlags) Set(v string) error { *o = append(*o, v); return nil }

func main() {
	var overrides overrideFlags
	path := flag.String("config", configFile, "TOML file holding the logger table")
	section := flag.String("section", configSection, "name of the logger table")
	flag.Var(&overrides, "o", "override a key, repeatable: -o level=trace")
	flag.Parse()

	fmt.Println("--- Simple Logger Example ---")

	if *path == configFile {
		if err := os.WriteFile(configFile, []byte(tomlContent), 0644); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to write dummy config: %v\n", err)
		} else {
			fmt.Printf("Created dummy config file: %s\n", configFile)
		}
	}

	cfg, err := loggers.NewConfigFromFile(*path, *section)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.ApplyOverride(overrides...); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid override: %v\n", err)
		os.Exit(1)
	}

	logger, err := cfg.Build()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to build logger: %+v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Logger built, type %s.\n", cfg.Type)

	guard, err := loggers.InstallAsDefault(logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to install default logger: %v\n", err)
		os.Exit(1)
	}

	logger.Info("Application starting", "pid", os.Getpid())
	logger.Debug("Debug mode enabled", "config_file", *path)

	var wg sync.WaitGroup
	for i := 0; i < 3; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			worker := logger.With("worker_id", id)
			for j := 0; j < 5; j++ {
				worker.Info("Worker processing", "iteration", j)
				time.Sleep(10 * time.Millisecond)
			}
		}(i)
	}
	wg.Wait()

	// Third-party code using the standard packages lands in the same sink
	slog.Warn("Routed through log/slog", "component", "stdlib")
	log.Printf("Routed through log, %d workers done", 3)

	guard.Restore()
	if err := logger.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Logger close error: %v\n", err)
	}

	stats := logger.Stats()
	fmt.Printf("Delivered %d records, dropped %d, rotated %d times.\n", stats.Delivered, stats.Dropped, stats.Rotations)
}
