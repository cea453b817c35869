//go:build !windows

package loggers

// isSharingViolation is always false outside Windows
func isSharingViolation(error) bool {
	return false
}
