//go:build unix

package loggers

import (
	"os"

	"golang.org/x/sys/unix"
)

// restrictPermissions limits access to the file owner
func restrictPermissions(f *os.File) error {
	return unix.Fchmod(int(f.Fd()), 0o600)
}
