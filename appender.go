// FILE: appender.go
package loggers

import (
	"bufio"
	"os"
	"strconv"
	"time"
	"unicode/utf8"

	"github.com/gofrs/flock"
)

// AppenderOptions configures a FileAppender
type AppenderOptions struct {
	Truncate            bool          // Truncate instead of append when (re)opening
	RotateSize          uint64        // Rotate once this many bytes were written, 0 means never
	RotateKeep          int           // Number of rotated files to keep
	Compress            bool          // Gzip rotated files in the background
	RestrictPermissions bool          // Owner-only access to the log and its archives
	ReopenCheckInterval time.Duration // Minimum time between existence checks of the path
	LockRotation        bool          // Hold "<path>.lock" while rotating, skip when held elsewhere
}

// FileAppender writes to a file, reopening it when it disappears and rotating it by size
// A FileAppender is not safe for concurrent use, the consumer goroutine owns it
type FileAppender struct {
	path string
	opts AppenderOptions

	file    *os.File
	buf     *bufio.Writer
	written uint64 // bytes written to the open handle, including pre-existing content

	nextReopenCheck time.Time
	compression     *compressionJob
	lock            *flock.Flock

	now      func() time.Time
	onRotate func()
}

// NewFileAppender opens path and returns an appender for it
func NewFileAppender(path string, opts AppenderOptions) (*FileAppender, error) {
	if path == "" {
		return nil, invalidField("path", "empty log file path")
	}
	if !utf8.ValidString(path) {
		return nil, invalidField("path", "non UTF-8 log file path: %q", path)
	}
	if opts.RotateSize == 0 {
		opts.RotateSize = DefaultRotateSize
	}
	if opts.RotateKeep < 0 {
		return nil, invalidField("rotate_keep", "negative retention count: %d", opts.RotateKeep)
	}
	if opts.ReopenCheckInterval <= 0 {
		opts.ReopenCheckInterval = DefaultReopenCheckInterval
	}

	a := &FileAppender{
		path: path,
		opts: opts,
		now:  time.Now,
	}
	if opts.LockRotation {
		a.lock = flock.New(path + ".lock")
	}

	if err := a.reopenIfNeeded(); err != nil {
		return nil, otherError(err, "failed to open log file '%s'", path)
	}
	return a, nil
}

// Path returns the live file path
func (a *FileAppender) Path() string {
	return a.path
}

// Written returns the byte count the rotation threshold is compared against
func (a *FileAppender) Written() uint64 {
	return a.written
}

// Write appends p to the live file, reopening it first if needed
func (a *FileAppender) Write(p []byte) (int, error) {
	if err := a.reopenIfNeeded(); err != nil {
		return 0, err
	}
	if a.file == nil {
		return 0, fmtErrorf("cannot open file '%s'", a.path)
	}

	n, err := a.buf.Write(p)
	a.written += uint64(n)
	return n, err
}

// Flush pushes buffered bytes to the file and rotates once the size threshold is reached
func (a *FileAppender) Flush() error {
	if a.buf != nil {
		if err := a.buf.Flush(); err != nil {
			return fmtErrorf("failed to flush log file '%s': %w", a.path, err)
		}
	}
	if a.written >= a.opts.RotateSize {
		return a.rotate()
	}
	return nil
}

// Close flushes and closes the file, waiting for a running compression
func (a *FileAppender) Close() error {
	err := a.closeFile()
	if a.compression != nil {
		err = combineErrors(err, a.compression.wait())
		a.compression = nil
	}
	return err
}

// reopenIfNeeded opens the file when there is no handle or the path vanished
// The existence check runs at most once per ReopenCheckInterval
func (a *FileAppender) reopenIfNeeded() error {
	now := a.now()
	if a.file != nil && now.Before(a.nextReopenCheck) {
		return nil
	}
	a.nextReopenCheck = now.Add(a.opts.ReopenCheckInterval)

	if a.file != nil {
		if _, err := os.Stat(a.path); err == nil {
			return nil
		}
		// Path is gone or unreachable, the handle points to a detached file
		_ = a.closeFile()
	}

	flags := os.O_CREATE | os.O_WRONLY
	if a.opts.Truncate {
		flags |= os.O_TRUNC
	} else {
		flags |= os.O_APPEND
	}
	file, err := os.OpenFile(a.path, flags, 0o644)
	if err != nil {
		return fmtErrorf("failed to open log file '%s': %w", a.path, err)
	}
	if a.opts.RestrictPermissions {
		if err := restrictPermissions(file); err != nil {
			file.Close()
			return fmtErrorf("failed to restrict permissions of '%s': %w", a.path, err)
		}
	}
	info, err := file.Stat()
	if err != nil {
		file.Close()
		return fmtErrorf("failed to stat log file '%s': %w", a.path, err)
	}

	a.file = file
	a.written = uint64(info.Size())
	if a.buf == nil {
		a.buf = bufio.NewWriter(file)
	} else {
		a.buf.Reset(file)
	}
	return nil
}

// closeFile flushes and drops the handle
func (a *FileAppender) closeFile() error {
	if a.file == nil {
		return nil
	}
	err := a.buf.Flush()
	err = combineErrors(err, a.file.Close())
	a.file = nil
	return err
}

// rotate shifts the rotation chain and reopens a fresh live file
func (a *FileAppender) rotate() error {
	if a.compression != nil {
		finished, err := a.compression.poll()
		if !finished {
			// At most one compression at a time, try again on a later flush
			return nil
		}
		a.compression = nil
		if err != nil {
			return err
		}
	}

	if a.lock != nil {
		locked, err := a.lock.TryLock()
		if err != nil {
			return fmtErrorf("failed to lock '%s': %w", a.lock.Path(), err)
		}
		if !locked {
			// Another process rotates the same file
			return nil
		}
		defer a.lock.Unlock()
	}

	if err := a.closeFile(); err != nil {
		return fmtErrorf("failed to close log file before rotation: %w", err)
	}

	if err := a.rotateOldFiles(); err != nil && !isSharingViolation(err) {
		return err
	}

	a.written = 0
	a.nextReopenCheck = a.now()
	if err := a.reopenIfNeeded(); err != nil {
		return err
	}
	if a.onRotate != nil {
		a.onRotate()
	}
	return nil
}

// rotateOldFiles renames path.i to path.(i+1) from the oldest down, moves the live file to path.1
// and removes what fell off the retention count
func (a *FileAppender) rotateOldFiles() error {
	for i := a.opts.RotateKeep; i >= 1; i-- {
		from, err := a.rotatedPath(i)
		if err != nil {
			return err
		}
		to, err := a.rotatedPath(i + 1)
		if err != nil {
			return err
		}
		if exists(from) {
			if err := os.Rename(from, to); err != nil {
				return fmtErrorf("failed to rename '%s' to '%s': %w", from, to, err)
			}
		}
	}

	if exists(a.path) {
		rotated, err := a.rotatedPath(1)
		if err != nil {
			return err
		}
		if a.opts.Compress {
			plain := a.path + ".1"
			temp := a.path + ".1.gz.temp"
			if err := os.Rename(a.path, plain); err != nil {
				return fmtErrorf("failed to rename '%s' to '%s': %w", a.path, plain, err)
			}
			a.compression = startCompression(plain, temp, rotated, a.opts.RestrictPermissions)
		} else if err := os.Rename(a.path, rotated); err != nil {
			return fmtErrorf("failed to rename '%s' to '%s': %w", a.path, rotated, err)
		}
	}

	oldest, err := a.rotatedPath(a.opts.RotateKeep + 1)
	if err != nil {
		return err
	}
	if exists(oldest) {
		if err := os.Remove(oldest); err != nil {
			return fmtErrorf("failed to remove '%s': %w", oldest, err)
		}
	}
	return nil
}

// rotatedPath returns the name of the i-th rotated file
func (a *FileAppender) rotatedPath(i int) (string, error) {
	if !utf8.ValidString(a.path) {
		return "", invalidField("path", "non UTF-8 log file path: %q", a.path)
	}
	name := a.path + "." + strconv.Itoa(i)
	if a.opts.Compress {
		name += ".gz"
	}
	return name, nil
}

// exists reports whether path can be stat'ed
func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
