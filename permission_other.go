//go:build !unix

package loggers

import (
	"os"
)

// restrictPermissions limits access to the file owner as far as the platform's mode bits allow
func restrictPermissions(f *os.File) error {
	return f.Chmod(0o600)
}
