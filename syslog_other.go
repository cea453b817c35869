//go:build windows || plan9

package loggers

import (
	"github.com/pkg/errors"
)

// unsupportedSyslog fails every operation, the platform has no syslog facility
type unsupportedSyslog struct{}

func defaultSyslogBackend() syslogBackend {
	return unsupportedSyslog{}
}

func (unsupportedSyslog) openlog(string, SyslogOptions, Facility) error {
	return errors.New("syslog is not supported on this platform")
}

func (unsupportedSyslog) syslog(int, string) error {
	return errors.New("syslog is not supported on this platform")
}

func (unsupportedSyslog) closelog() {}
