package loggers

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrorKind classifies errors returned by builders and config loading
type ErrorKind int

const (
	// KindInvalid marks bad input: unknown enum values, malformed documents, unusable paths
	KindInvalid ErrorKind = iota + 1
	// KindOther marks I/O and OS facility failures
	KindOther
)

// String returns a human readable name of the kind
func (k ErrorKind) String() string {
	switch k {
	case KindInvalid:
		return "invalid input"
	case KindOther:
		return "other"
	default:
		return "unknown"
	}
}

// Error is the structured error returned by all fallible operations of the package
type Error struct {
	Kind  ErrorKind
	Field string // configuration field at fault, may be empty
	Err   error  // cause, carries a stack trace from github.com/pkg/errors
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("loggers: %s (field %s): %v", e.Kind, e.Field, e.Err)
	}
	return fmt.Sprintf("loggers: %s: %v", e.Kind, e.Err)
}

// Unwrap returns the cause
func (e *Error) Unwrap() error {
	return e.Err
}

// Format prints the cause stack trace with %+v
func (e *Error) Format(s fmt.State, verb rune) {
	switch verb {
	case 'v':
		if s.Flag('+') {
			fmt.Fprintf(s, "%s\n%+v", e.Error(), e.Err)
			return
		}
		fallthrough
	case 's':
		fmt.Fprint(s, e.Error())
	case 'q':
		fmt.Fprintf(s, "%q", e.Error())
	}
}

// IsInvalid reports whether err is a KindInvalid error
func IsInvalid(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == KindInvalid
}

// IsOther reports whether err is a KindOther error
func IsOther(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == KindOther
}

// invalidField creates a KindInvalid error naming the offending field
func invalidField(field, format string, args ...any) error {
	return &Error{Kind: KindInvalid, Field: field, Err: errors.Errorf(format, args...)}
}

// otherError wraps an I/O or OS failure as KindOther
func otherError(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: KindOther, Err: errors.Wrapf(err, format, args...)}
}
