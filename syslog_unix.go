//go:build !windows && !plan9

package loggers

import (
	"fmt"
	"log/syslog"
	"os"
	"sync"
)

// osSyslog emulates the single per-process openlog connection on top of log/syslog
type osSyslog struct {
	mu       sync.Mutex
	w        *syslog.Writer
	ident    string
	facility Facility
	opts     SyslogOptions
}

// processSyslog is shared by every syslog sink of the process
var processSyslog = &osSyslog{}

// defaultSyslogBackend returns the OS backed syslog facility
func defaultSyslogBackend() syslogBackend {
	return processSyslog
}

func (s *osSyslog) openlog(ident string, opts SyslogOptions, facility Facility) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Like openlog(3), a new registration replaces the previous one
	if s.w != nil {
		_ = s.w.Close()
		s.w = nil
	}
	s.ident = ident
	s.facility = facility
	s.opts = opts

	if opts.Delay {
		return nil
	}
	return s.connect()
}

// connect dials the local syslog daemon, caller holds mu
func (s *osSyslog) connect() error {
	w, err := syslog.New(syslog.Priority(s.facility)|syslog.LOG_INFO, s.ident)
	if err != nil {
		return err
	}
	s.w = w
	return nil
}

func (s *osSyslog) syslog(priority int, msg string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.opts.PError {
		if s.opts.PID {
			fmt.Fprintf(os.Stderr, "%s[%d]: %s\n", s.ident, os.Getpid(), msg)
		} else {
			fmt.Fprintf(os.Stderr, "%s: %s\n", s.ident, msg)
		}
	}

	if s.w == nil {
		if err := s.connect(); err != nil {
			return err
		}
	}

	switch priority {
	case priorityCrit:
		return s.w.Crit(msg)
	case priorityErr:
		return s.w.Err(msg)
	case priorityWarning:
		return s.w.Warning(msg)
	case priorityDebug:
		return s.w.Debug(msg)
	default:
		return s.w.Info(msg)
	}
}

func (s *osSyslog) closelog() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.w != nil {
		_ = s.w.Close()
		s.w = nil
	}
}
