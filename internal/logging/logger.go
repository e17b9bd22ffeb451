package logging

import (
	"fmt"
	"io"
	"time"
)

// Logger writes human-readable diagnostics to Writer. Verbose lines and
// timings are dropped unless Verbose is set; a nil Writer drops everything.
type Logger struct {
	Writer  io.Writer
	Verbose bool
	scope   string
}

func New(writer io.Writer, verbose bool) Logger {
	return Logger{Writer: writer, Verbose: verbose}
}

// Discard returns a logger that never writes.
func Discard() Logger {
	return Logger{}
}

// Scoped returns a copy that prefixes every line with "[scope] ".
func (l Logger) Scoped(scope string) Logger {
	l.scope = scope
	return l
}

func (l Logger) Infof(format string, args ...any) {
	if l.Writer == nil {
		return
	}
	if l.scope != "" {
		format = "[" + l.scope + "] " + format
	}
	fmt.Fprintf(l.Writer, format+"\n", args...)
}

func (l Logger) Warnf(format string, args ...any) {
	l.Infof("warning: "+format, args...)
}

func (l Logger) Verbosef(format string, args ...any) {
	if !l.Verbose {
		return
	}
	l.Infof(format, args...)
}

// Measure returns a stop function that logs the elapsed time when called.
func (l Logger) Measure(label string) func() {
	if !l.Verbose || l.Writer == nil {
		return func() {}
	}
	start := time.Now()
	return func() {
		l.Verbosef("%s took %s", label, time.Since(start).Round(time.Millisecond))
	}
}
