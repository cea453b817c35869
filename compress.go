package loggers

import (
	"io"
	"os"

	"github.com/klauspost/compress/gzip"
)

// errCompressionAborted is returned when the worker exited without a result
var errCompressionAborted = fmtErrorf("log file compression worker aborted")

// compressionJob tracks the single background gzip task of a FileAppender
type compressionJob struct {
	done chan error
}

// startCompression gzips input into temp, renames temp to output and removes input
func startCompression(input, temp, output string, restrict bool) *compressionJob {
	job := &compressionJob{done: make(chan error, 1)}
	go func() {
		// A panic leaves done closed without a value, reported as aborted
		defer close(job.done)
		defer func() { _ = recover() }()
		job.done <- compressFile(input, temp, output, restrict)
	}()
	return job
}

// poll reports whether the job finished, and its result, without blocking
func (j *compressionJob) poll() (finished bool, err error) {
	select {
	case result, ok := <-j.done:
		if !ok {
			return true, errCompressionAborted
		}
		return true, result
	default:
		return false, nil
	}
}

// wait blocks until the job finishes
func (j *compressionJob) wait() error {
	result, ok := <-j.done
	if !ok {
		return errCompressionAborted
	}
	return result
}

// compressFile performs the compression of one rotated file
func compressFile(input, temp, output string, restrict bool) error {
	in, err := os.Open(input)
	if err != nil {
		return fmtErrorf("failed to open rotated file '%s': %w", input, err)
	}
	defer in.Close()

	out, err := os.Create(temp)
	if err != nil {
		return fmtErrorf("failed to create temporary archive '%s': %w", temp, err)
	}
	if restrict {
		if err := restrictPermissions(out); err != nil {
			out.Close()
			return fmtErrorf("failed to restrict permissions of '%s': %w", temp, err)
		}
	}

	gz := gzip.NewWriter(out)
	if _, err := io.Copy(gz, in); err != nil {
		gz.Close()
		out.Close()
		return fmtErrorf("failed to compress '%s': %w", input, err)
	}
	if err := gz.Close(); err != nil {
		out.Close()
		return fmtErrorf("failed to finish archive '%s': %w", temp, err)
	}
	if err := out.Close(); err != nil {
		return fmtErrorf("failed to close archive '%s': %w", temp, err)
	}

	if err := os.Rename(temp, output); err != nil {
		return fmtErrorf("failed to rename archive '%s' to '%s': %w", temp, output, err)
	}
	in.Close()
	if err := os.Remove(input); err != nil {
		return fmtErrorf("failed to remove rotated file '%s': %w", input, err)
	}
	return nil
}
