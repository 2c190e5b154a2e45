// Package log provides the tiny leveled logger used across rustyboy. It
// deliberately stays a thin wrapper over fmt rather than pulling in a
// structured logging library — the core must stay side-effect-free by
// default, and front-ends can swap in whatever logger they like.
package log

import (
	"fmt"
	"io"
	"os"
	"time"
)

// Logger is the logging interface accepted by the core and its front-ends.
type Logger interface {
	Infof(format string, args ...interface{})
	Errorf(format string, args ...interface{})
	Debugf(format string, args ...interface{})
}

// logger writes leveled, timestamped lines to an io.Writer. Debugf is
// gated behind verbose: cmd/rustyboy's -trace flag is the only thing that
// turns it on, since the CPU logs one disassembled instruction per step at
// Debugf level (internal/gameboy's trace hook) and that is far too much
// output to leave on by default.
type logger struct {
	out     io.Writer
	verbose bool
}

// Option configures a Logger at construction time, following the same
// functional-options shape as gameboy.Option.
type Option func(*logger)

// Verbose enables Debugf output.
func Verbose() Option {
	return func(l *logger) { l.verbose = true }
}

// To redirects output away from stdout, for tests or an alternate
// front-end's own log pane.
func To(w io.Writer) Option {
	return func(l *logger) { l.out = w }
}

// New returns a Logger that writes timestamped, level-prefixed lines to
// stdout. Debugf is silent unless Verbose is passed.
func New(opts ...Option) Logger {
	l := &logger{out: os.Stdout}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *logger) Infof(format string, args ...interface{})  { l.print("INFO", format, args...) }
func (l *logger) Errorf(format string, args ...interface{}) { l.print("ERROR", format, args...) }

func (l *logger) Debugf(format string, args ...interface{}) {
	if !l.verbose {
		return
	}
	l.print("DEBUG", format, args...)
}

func (l *logger) print(level, format string, args ...interface{}) {
	fmt.Fprintf(l.out, "%s [%s]\t%s\n", time.Now().Format("15:04:05.000"), level, fmt.Sprintf(format, args...))
}
