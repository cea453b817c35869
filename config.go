// FILE: config.go
package loggers

import (
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/lixenwraith/config"
	"github.com/pkg/errors"
)

// Sink types of the configuration union
const (
	TypeTerminal = "terminal"
	TypeFile     = "file"
	TypeNull     = "null"
	TypeSyslog   = "syslog"
)

// Config is the declarative description of a logger
// Type selects the sink, keys belonging to other sinks are ignored
type Config struct {
	Type string `toml:"type"` // "terminal", "file", "null" or "syslog"

	// Common settings
	Level                  string `toml:"level"`           // trace, debug, info, warning, error, critical
	SourceLocation         string `toml:"source_location"` // none, module_and_line, file_and_line, local_file_and_line
	ChannelSize            int64  `toml:"channel_size"`
	OverflowStrategy       string `toml:"overflow_strategy"` // drop, drop_and_report, block
	DropReportIntervalMs   int64  `toml:"drop_report_interval_ms"`
	LogPID                 bool   `toml:"log_pid"` // pid field for terminal/file, LOG_PID for syslog
	InternalErrorsToStderr bool   `toml:"internal_errors_to_stderr"`

	// Terminal and file
	Format   string `toml:"format"`   // full, compact, json
	Timezone string `toml:"timezone"` // local, utc

	// Terminal
	Destination string `toml:"destination"` // stdout, stderr

	// File
	Path                  string `toml:"path"`               // may contain {timestamp}
	TimestampTemplate     string `toml:"timestamp_template"` // strftime pattern for {timestamp}
	Truncate              bool   `toml:"truncate"`
	RotateSize            int64  `toml:"rotate_size"` // bytes, 0 disables rotation
	RotateKeep            int64  `toml:"rotate_keep"`
	RotateCompress        bool   `toml:"rotate_compress"`
	RestrictPermissions   bool   `toml:"restrict_permissions"`
	ReopenCheckIntervalMs int64  `toml:"reopen_check_interval_ms"`
	RotateLock            bool   `toml:"rotate_lock"`

	// Syslog
	Facility     string `toml:"facility"`
	Ident        string `toml:"ident"`
	LogDelay     bool   `toml:"log_delay"`
	LogPError    bool   `toml:"log_perror"`
	SyslogFormat string `toml:"syslog_format"` // default, basic
}

// defaultConfig is the single source for all configurable default values
var defaultConfig = Config{
	Type: TypeTerminal,

	Level:                  "info",
	SourceLocation:         "module_and_line",
	ChannelSize:            DefaultChannelSize,
	OverflowStrategy:       "drop_and_report",
	DropReportIntervalMs:   DefaultDropReportInterval.Milliseconds(),
	LogPID:                 false,
	InternalErrorsToStderr: true,

	Format:   "full",
	Timezone: "local",

	Destination: "stderr",

	Path:                  "",
	TimestampTemplate:     DefaultTimestampTemplate,
	Truncate:              false,
	RotateSize:            0,
	RotateKeep:            DefaultRotateKeep,
	RotateCompress:        false,
	RestrictPermissions:   false,
	ReopenCheckIntervalMs: DefaultReopenCheckInterval.Milliseconds(),
	RotateLock:            false,

	Facility:     "user",
	Ident:        "",
	LogDelay:     false,
	LogPError:    false,
	SyslogFormat: SyslogFormatDefault,
}

// DefaultConfig returns a copy of the default configuration
func DefaultConfig() *Config {
	copiedConfig := defaultConfig
	return &copiedConfig
}

// NewConfigFromFile loads the table named section of a TOML document
// A missing file yields the defaults, a terminal logger
func NewConfigFromFile(path, section string) (*Config, error) {
	cfg := DefaultConfig()
	prefix := strings.TrimSuffix(section, ".") + "."

	loader := config.New()
	if err := loader.RegisterStruct(prefix, *cfg); err != nil {
		return nil, &Error{Kind: KindOther, Err: errors.Wrap(err, "failed to register config struct")}
	}

	if err := loader.Load(path, nil); err != nil && !errors.Is(err, config.ErrConfigNotFound) {
		return nil, &Error{Kind: KindInvalid, Err: errors.Wrapf(err, "failed to load config from %s", path)}
	}

	if err := extractConfig(loader, prefix, cfg); err != nil {
		return nil, &Error{Kind: KindInvalid, Err: errors.Wrap(err, "failed to extract config values")}
	}

	if _, err := cfg.resolve(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// NewConfigFromDefaults creates a Config with default values and applies overrides keyed by toml name
func NewConfigFromDefaults(overrides map[string]any) (*Config, error) {
	cfg := DefaultConfig()

	if err := applyOverrides(cfg, overrides); err != nil {
		return nil, err
	}

	if _, err := cfg.resolve(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// extractConfig extracts values from lixenwraith/config into our Config struct
func extractConfig(loader *config.Config, prefix string, cfg *Config) error {
	v := reflect.ValueOf(cfg).Elem()
	t := v.Type()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		fieldValue := v.Field(i)

		tomlTag := field.Tag.Get("toml")
		if tomlTag == "" {
			continue
		}

		val, found := loader.Get(prefix + tomlTag)
		if !found {
			continue
		}

		if err := setFieldValue(fieldValue, val); err != nil {
			return fmt.Errorf("failed to set field %s: %w", tomlTag, err)
		}
	}

	return nil
}

// applyOverrides applies a map of overrides to the Config struct
func applyOverrides(cfg *Config, overrides map[string]any) error {
	v := reflect.ValueOf(cfg).Elem()
	t := v.Type()

	fieldMap := make(map[string]reflect.Value)
	for i := 0; i < t.NumField(); i++ {
		if tomlTag := t.Field(i).Tag.Get("toml"); tomlTag != "" {
			fieldMap[tomlTag] = v.Field(i)
		}
	}

	for key, value := range overrides {
		fieldValue, exists := fieldMap[key]
		if !exists {
			return invalidField(key, "unknown config key")
		}

		if err := setFieldValue(fieldValue, value); err != nil {
			return invalidField(key, "%v", err)
		}
	}

	return nil
}

// setFieldValue sets a reflect.Value with proper type conversion
func setFieldValue(field reflect.Value, value any) error {
	switch field.Kind() {
	case reflect.String:
		strVal, ok := value.(string)
		if !ok {
			return fmt.Errorf("expected string, got %T", value)
		}
		field.SetString(strVal)

	case reflect.Int64:
		switch v := value.(type) {
		case int64:
			field.SetInt(v)
		case int:
			field.SetInt(int64(v))
		case uint64:
			field.SetInt(int64(v))
		default:
			return fmt.Errorf("expected int64, got %T", value)
		}

	case reflect.Bool:
		boolVal, ok := value.(bool)
		if !ok {
			return fmt.Errorf("expected bool, got %T", value)
		}
		field.SetBool(boolVal)

	default:
		return fmt.Errorf("unsupported field type: %v", field.Kind())
	}

	return nil
}

// settings is the parsed, typed form of a Config
type settings struct {
	kind string

	level              Severity
	location           SourceLocation
	channelSize        int
	overflow           OverflowStrategy
	dropReportInterval time.Duration
	logPID             bool
	internalErrors     bool

	format      Format
	zone        TimeZone
	destination Destination

	path              string
	timestampTemplate string
	appender          AppenderOptions

	facility     Facility
	ident        string
	syslogOpts   SyslogOptions
	syslogFormat string
}

// resolve validates the configuration and parses it into settings
// Only the keys of the selected sink type are checked
func (c *Config) resolve() (*settings, error) {
	s := &settings{
		kind:           c.Type,
		logPID:         c.LogPID,
		internalErrors: c.InternalErrorsToStderr,
	}
	var err error

	switch c.Type {
	case TypeTerminal, TypeFile, TypeNull, TypeSyslog:
	case "":
		s.kind = TypeTerminal
	default:
		return nil, invalidField("type", "unknown logger type %q", c.Type)
	}

	if s.level, err = ParseSeverity(c.Level); err != nil {
		return nil, err
	}
	if s.location, err = ParseSourceLocation(c.SourceLocation); err != nil {
		return nil, err
	}
	if s.overflow, err = ParseOverflowStrategy(c.OverflowStrategy); err != nil {
		return nil, err
	}
	if c.ChannelSize <= 0 {
		return nil, invalidField("channel_size", "channel size must be positive: %d", c.ChannelSize)
	}
	if c.ChannelSize > MaxChannelSize {
		return nil, invalidField("channel_size", "channel size %d exceeds maximum %d", c.ChannelSize, MaxChannelSize)
	}
	s.channelSize = int(c.ChannelSize)
	if c.DropReportIntervalMs < 0 {
		return nil, invalidField("drop_report_interval_ms", "interval cannot be negative: %d", c.DropReportIntervalMs)
	}
	s.dropReportInterval = time.Duration(c.DropReportIntervalMs) * time.Millisecond

	switch s.kind {
	case TypeTerminal:
		if s.format, err = ParseFormat(c.Format); err != nil {
			return nil, err
		}
		if s.zone, err = ParseTimeZone(c.Timezone); err != nil {
			return nil, err
		}
		if s.destination, err = ParseDestination(c.Destination); err != nil {
			return nil, err
		}

	case TypeFile:
		if s.format, err = ParseFormat(c.Format); err != nil {
			return nil, err
		}
		if s.zone, err = ParseTimeZone(c.Timezone); err != nil {
			return nil, err
		}
		if strings.TrimSpace(c.Path) == "" {
			return nil, invalidField("path", "file logger requires a path")
		}
		if c.RotateSize < 0 {
			return nil, invalidField("rotate_size", "rotate size cannot be negative: %d", c.RotateSize)
		}
		if c.RotateKeep < 0 {
			return nil, invalidField("rotate_keep", "rotate keep cannot be negative: %d", c.RotateKeep)
		}
		if c.ReopenCheckIntervalMs < 0 {
			return nil, invalidField("reopen_check_interval_ms", "interval cannot be negative: %d", c.ReopenCheckIntervalMs)
		}
		s.path = c.Path
		s.timestampTemplate = c.TimestampTemplate
		s.appender = AppenderOptions{
			Truncate:            c.Truncate,
			RotateSize:          uint64(c.RotateSize),
			RotateKeep:          int(c.RotateKeep),
			Compress:            c.RotateCompress,
			RestrictPermissions: c.RestrictPermissions,
			ReopenCheckInterval: time.Duration(c.ReopenCheckIntervalMs) * time.Millisecond,
			LockRotation:        c.RotateLock,
		}

	case TypeSyslog:
		if s.facility, err = ParseFacility(c.Facility); err != nil {
			return nil, err
		}
		switch c.SyslogFormat {
		case SyslogFormatDefault, SyslogFormatBasic:
			s.syslogFormat = c.SyslogFormat
		case "":
			s.syslogFormat = SyslogFormatDefault
		default:
			return nil, invalidField("syslog_format", "unknown syslog format %q", c.SyslogFormat)
		}
		s.ident = c.Ident
		s.syslogOpts = SyslogOptions{PID: c.LogPID, Delay: c.LogDelay, PError: c.LogPError}
	}

	return s, nil
}

// SetLevel sets the severity threshold whatever the sink type
func (c *Config) SetLevel(s Severity) {
	c.Level = s.String()
}

// Build creates a logger from the configuration
func (c *Config) Build() (*Logger, error) {
	return NewBuilderFromConfig(c).Build()
}

// Clone creates a copy of the configuration
func (c *Config) Clone() *Config {
	copiedConfig := *c
	return &copiedConfig
}
