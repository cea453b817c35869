// FILE: example/fasthttp/main.go
package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/valyala/fasthttp"

	"github.com/lixenwraith/loggers"
	"github.com/lixenwraith/loggers/compat"
)

func main() {
	cfg := loggers.DefaultConfig()
	err := cfg.ApplyOverride(
		"type=file",
		"path=/var/log/fasthttp/access.log",
		"level=info",
		"format=compact",
		"channel_size=2048",
	)
	if err != nil {
		panic(err)
	}

	logger, err := cfg.Build()
	if err != nil {
		panic(err)
	}
	defer logger.Close()

	fasthttpAdapter := compat.NewFastHTTPAdapter(
		logger,
		compat.WithDefaultLevel(loggers.SeverityInfo),
		compat.WithLevelDetector(customLevelDetector),
	)

	server := &fasthttp.Server{
		Handler: requestHandler,
		Logger:  fasthttpAdapter,

		Name:              "MyServer",
		Concurrency:       fasthttp.DefaultConcurrency,
		ReadTimeout:       5 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
		TCPKeepalive:      true,
		ReduceMemoryUsage: true,
	}

	fmt.Println("Starting server on :8080")
	if err := server.ListenAndServe(":8080"); err != nil {
		logger.Critical("server stopped", "error", err)
	}
}

func requestHandler(ctx *fasthttp.RequestCtx) {
	ctx.SetContentType("text/plain")
	fmt.Fprintf(ctx, "Hello, world! Path: %s\n", ctx.Path())
}

// customLevelDetector recognizes fasthttp's own messages before falling back to keywords
func customLevelDetector(msg string) (loggers.Severity, bool) {
	if strings.Contains(msg, "connection cannot be served") {
		return loggers.SeverityWarning, true
	}
	if strings.Contains(msg, "error when serving connection") {
		return loggers.SeverityError, true
	}
	return compat.DetectLogLevel(msg)
}
