package feather

import (
	"fmt"
	"log"
	"os"
)

// Logger is the sink World and LayerTable route their "invalid
// configuration"/"lookup miss" diagnostics through. The step function
// itself never returns an error; everything recoverable goes here.
type Logger interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

// DefaultLogger writes to stdout/stderr with a bracketed prefix.
type DefaultLogger struct {
	prefix string
	out    *log.Logger
	err    *log.Logger
}

// NewDefaultLogger builds a DefaultLogger with the given prefix.
func NewDefaultLogger(prefix string) *DefaultLogger {
	flags := log.LstdFlags | log.Lmicroseconds
	return &DefaultLogger{
		prefix: prefix,
		out:    log.New(os.Stdout, "", flags),
		err:    log.New(os.Stderr, "", flags),
	}
}

func (l *DefaultLogger) prefixf(level, format string, args ...any) string {
	if l.prefix != "" {
		return fmt.Sprintf("[%s] %s: %s", l.prefix, level, fmt.Sprintf(format, args...))
	}
	return fmt.Sprintf("%s: %s", level, fmt.Sprintf(format, args...))
}

func (l *DefaultLogger) Debugf(format string, args ...any) { l.out.Print(l.prefixf("DEBUG", format, args...)) }
func (l *DefaultLogger) Infof(format string, args ...any)  { l.out.Print(l.prefixf("INFO", format, args...)) }
func (l *DefaultLogger) Warnf(format string, args ...any)  { l.err.Print(l.prefixf("WARN", format, args...)) }
func (l *DefaultLogger) Errorf(format string, args ...any) { l.err.Print(l.prefixf("ERROR", format, args...)) }

type nopLogger struct{}

// NewNopLogger returns a Logger that discards everything, used as World's
// fallback when no Logger is supplied.
func NewNopLogger() Logger { return nopLogger{} }

func (nopLogger) Debugf(format string, args ...any) {}
func (nopLogger) Infof(format string, args ...any)  {}
func (nopLogger) Warnf(format string, args ...any)  {}
func (nopLogger) Errorf(format string, args ...any) {}
