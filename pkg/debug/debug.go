// Package debug provides conditional debug logging for the engine.
//
// Logging is off unless the CLUSTERMAP_DEBUG environment variable is set
// (or SetEnabled is called), so library callers pay nothing in the normal
// case:
//
//	CLUSTERMAP_DEBUG=1 go test ./...
//
// Enabled output goes to stderr with a [clustermap] prefix and
// microsecond timestamps.
package debug

import (
	"log"
	"os"
	"time"
)

var (
	enabled bool
	logger  *log.Logger
)

func newLogger() *log.Logger {
	return log.New(os.Stderr, "[clustermap] ", log.Ltime|log.Lmicroseconds)
}

func init() {
	if os.Getenv("CLUSTERMAP_DEBUG") != "" {
		enabled = true
		logger = newLogger()
	}
}

// Enabled reports whether debug logging is on. Hot paths that build log
// arguments should check it first.
func Enabled() bool {
	return enabled
}

// SetEnabled turns debug logging on or off, overriding the environment.
func SetEnabled(e bool) {
	enabled = e
	if e && logger == nil {
		logger = newLogger()
	}
}

// Log writes a printf-style debug message.
func Log(format string, args ...any) {
	if !enabled {
		return
	}
	logger.Printf(format, args...)
}

// LogTiming records how long a named stage took, in milliseconds.
func LogTiming(name string, d time.Duration) {
	if !enabled {
		return
	}
	logger.Printf("%s: %.2fms", name, float64(d.Microseconds())/1000)
}

// LogEnterExit marks entry into a named stage and returns the function
// that marks the exit, with the elapsed time:
//
//	defer debug.LogEnterExit("heatmap.Figure")()
func LogEnterExit(name string) func() {
	if !enabled {
		return func() {}
	}
	logger.Printf("-> %s", name)
	start := time.Now()
	return func() {
		LogTiming("<- "+name, time.Since(start))
	}
}
