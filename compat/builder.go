package compat

import (
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/lixenwraith/loggers"
)

// Builder creates logger adapters for gnet, fasthttp and zap
// It can use an existing *loggers.Logger instance or build one from a *loggers.Config
type Builder struct {
	logger *loggers.Logger
	logCfg *loggers.Config
	err    error
}

// NewBuilder creates a new adapter builder
func NewBuilder() *Builder {
	return &Builder{}
}

// WithLogger specifies an existing logger to use for the adapters
// If this is set WithConfig is ignored
func (b *Builder) WithLogger(l *loggers.Logger) *Builder {
	if l == nil {
		b.err = errors.New("loggers/compat: provided logger cannot be nil")
		return b
	}
	b.logger = l
	return b
}

// WithConfig provides a configuration for a new logger instance
// If neither WithLogger nor WithConfig is used, a default terminal logger is built
func (b *Builder) WithConfig(cfg *loggers.Config) *Builder {
	b.logCfg = cfg
	return b
}

// getLogger resolves the logger to be used, building one if necessary
func (b *Builder) getLogger() (*loggers.Logger, error) {
	if b.err != nil {
		return nil, b.err
	}

	if b.logger != nil {
		return b.logger, nil
	}

	cfg := b.logCfg
	if cfg == nil {
		cfg = loggers.DefaultConfig()
	}

	l, err := cfg.Build()
	if err != nil {
		return nil, errors.Wrap(err, "loggers/compat: failed to build logger")
	}

	// Cache the logger so every adapter of this builder shares one pipeline
	b.logger = l
	return l, nil
}

// BuildGnet creates a gnet adapter
func (b *Builder) BuildGnet(opts ...GnetOption) (*GnetAdapter, error) {
	l, err := b.getLogger()
	if err != nil {
		return nil, err
	}
	return NewGnetAdapter(l, opts...), nil
}

// BuildStructuredGnet creates a gnet adapter that extracts key=value fields from format strings
func (b *Builder) BuildStructuredGnet(opts ...GnetOption) (*StructuredGnetAdapter, error) {
	l, err := b.getLogger()
	if err != nil {
		return nil, err
	}
	return NewStructuredGnetAdapter(l, opts...), nil
}

// BuildFastHTTP creates a fasthttp adapter
func (b *Builder) BuildFastHTTP(opts ...FastHTTPOption) (*FastHTTPAdapter, error) {
	l, err := b.getLogger()
	if err != nil {
		return nil, err
	}
	return NewFastHTTPAdapter(l, opts...), nil
}

// BuildZap creates a zap.Logger writing through the shared logger
func (b *Builder) BuildZap(opts ...zap.Option) (*zap.Logger, error) {
	l, err := b.getLogger()
	if err != nil {
		return nil, err
	}
	return NewZapLogger(l, opts...), nil
}

// GetLogger returns the underlying logger, building it if needed
// A logger built from a config is owned by the caller, who must Close it
func (b *Builder) GetLogger() (*loggers.Logger, error) {
	return b.getLogger()
}

// --- Example Usage ---
//
//	appLogger, err := loggers.NewFileBuilder("/var/log/app.log").
//		Format(loggers.FormatJSON).
//		RotateSize(64 << 20).
//		Build()
//	if err != nil { /* handle error */ }
//	defer appLogger.Close()
//
//	builder := compat.NewBuilder().WithLogger(appLogger)
//
//	gnetLogger, _ := builder.BuildGnet()
//	go gnet.Run(events, "tcp://:9000", gnet.WithLogger(gnetLogger))
//
//	fasthttpLogger, _ := builder.BuildFastHTTP()
//	server := &fasthttp.Server{Handler: handler, Logger: fasthttpLogger}
//
//	zapLogger, _ := builder.BuildZap()
//	zapLogger.Info("ready", zap.Int("port", 9000))
