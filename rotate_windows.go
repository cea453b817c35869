//go:build windows

package loggers

import (
	"github.com/pkg/errors"
	"golang.org/x/sys/windows"
)

// isSharingViolation reports whether another handle holds a file being rotated
// Log shippers keep transient handles open, such a rotation is skipped instead of failing
func isSharingViolation(err error) bool {
	var errno windows.Errno
	return errors.As(err, &errno) && errno == windows.ERROR_SHARING_VIOLATION
}
