// FILE: lixenwraith/loggers/constant.go
package loggers

import (
	"math"
	"time"
)

// Channel
const (
	DefaultChannelSize        = 1024
	MaxChannelSize            = 1 << 20
	DefaultDropReportInterval = time.Second
	// Message of the synthetic record announcing dropped records
	dropReportMessage = "Logs were dropped"
)

// File appender
const (
	DefaultRotateKeep          = 8
	DefaultReopenCheckInterval = time.Second
	// DefaultRotateSize never triggers rotation
	DefaultRotateSize uint64 = math.MaxUint64
)

// Path templates
const (
	TimestampToken           = "{timestamp}"
	DefaultTimestampTemplate = "%Y%m%d_%H%M"
)

// Call site capture
const (
	// Frames between log and the application call site
	callerSkip = 2
)
