package util

import (
	"log"
	"os"
)

// Verbosity levels in logging.
const ( // iota is reset to 0
	LOff    = iota // Log nothing.
	LInfo   = iota // Log configuration, verification and benchmark results.
	LDetail = iota // Also log per-iteration progress of kernels and benchmarks.
)

// LogLevel changes the amount of logged messages. It only applies to loggers created afterwards.
var LogLevel int = LInfo

type Logger interface {
	Printf(f string, args ...interface{})
	WithPrefix(prefix string) Logger
}

type NopLogger struct {
}

func (NopLogger) Printf(f string, args ...interface{}) {
}

func (NopLogger) WithPrefix(prefix string) Logger {
	return NopLogger{}
}

type StdLogger struct {
	*log.Logger
}

func (sl *StdLogger) Printf(f string, args ...interface{}) {
	sl.Logger.Printf(f, args...)
}

func (sl *StdLogger) WithPrefix(prefix string) Logger {
	return &StdLogger{Logger: log.New(sl.Writer(), sl.Prefix()+prefix, sl.Flags())}
}

// NewLogger returns a logger writing to stderr with the given prefix, or a NopLogger if LogLevel is LOff.
func NewLogger(prefix string) Logger {
	if LogLevel <= LOff {
		return NopLogger{}
	}
	return &StdLogger{Logger: log.New(os.Stderr, prefix, log.Default().Flags()|log.Lmsgprefix)}
}

// DetailLogger returns l if LogLevel asks for detailed logging, a NopLogger otherwise.
func DetailLogger(l Logger) Logger {
	if LogLevel >= LDetail {
		return l
	}
	return NopLogger{}
}
