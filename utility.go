// FILE: utility.go
package loggers

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
)

// fmtErrorf wrapper
func fmtErrorf(format string, args ...any) error {
	if !strings.HasPrefix(format, "loggers: ") {
		format = "loggers: " + format
	}
	return fmt.Errorf(format, args...)
}

// combineErrors helper
func combineErrors(err1, err2 error) error {
	if err1 == nil {
		return err2
	}
	if err2 == nil {
		return err1
	}
	return fmt.Errorf("%v; %w", err1, err2)
}

// internalLog writes logger diagnostics to stderr, if enabled
func internalLog(enabled bool, format string, args ...any) {
	if !enabled {
		return
	}

	if !strings.HasPrefix(format, "loggers: ") {
		format = "loggers: " + format
	}
	if !strings.HasSuffix(format, "\n") {
		format += "\n"
	}

	fmt.Fprintf(os.Stderr, format, args...)
}

// Location is the caller position of a log call
type Location struct {
	Function string // fully qualified function name
	File     string
	Line     int
}

// captureLocation resolves the caller skip frames above its own caller
func captureLocation(skip int) Location {
	pc := make([]uintptr, 1)
	n := runtime.Callers(skip+2, pc) // +2 for Callers and captureLocation
	if n == 0 {
		return Location{}
	}
	frame, _ := runtime.CallersFrames(pc[:n]).Next()
	return Location{Function: frame.Function, File: frame.File, Line: frame.Line}
}

// render formats the location according to the source location mode
func (loc Location) render(mode SourceLocation) string {
	if loc.Line == 0 {
		return ""
	}
	switch mode {
	case SourceLocationModuleAndLine:
		return packagePath(loc.Function) + ":" + strconv.Itoa(loc.Line)
	case SourceLocationFileAndLine:
		return loc.File + ":" + strconv.Itoa(loc.Line)
	case SourceLocationLocalFileAndLine:
		if filepath.IsAbs(loc.File) {
			return packagePath(loc.Function) + ":" + strconv.Itoa(loc.Line)
		}
		return loc.File + ":" + strconv.Itoa(loc.Line)
	default:
		return ""
	}
}

// packagePath strips the receiver and function name from a qualified function name
// "github.com/a/b.(*T).M" -> "github.com/a/b"
func packagePath(function string) string {
	if function == "" {
		return "(unknown)"
	}
	slash := strings.LastIndexByte(function, '/')
	dot := strings.IndexByte(function[slash+1:], '.')
	if dot < 0 {
		return function
	}
	return function[:slash+1+dot]
}
