package mrkdwn

import (
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"
)

// Logger is the diagnostic sink the conversion engine reports to: state
// transitions at trace, conversion summaries at debug, recovered faults at
// error. It has no effect on conversion output. *logrus.Logger satisfies it
// directly.
type Logger interface {
	Tracef(format string, args ...any)
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

var _ Logger = (*logrus.Logger)(nil)

type nopLogger struct{}

func (nopLogger) Tracef(string, ...any) {}
func (nopLogger) Debugf(string, ...any) {}
func (nopLogger) Infof(string, ...any)  {}
func (nopLogger) Warnf(string, ...any)  {}
func (nopLogger) Errorf(string, ...any) {}

// NopLogger returns a sink that discards everything. It is the default.
func NopLogger() Logger {
	return nopLogger{}
}

// NewLogger returns a logrus-backed sink writing to w at the given
// verbosity. "off" and "none" return a sink that emits nothing.
func NewLogger(w io.Writer, verbosity string) (Logger, error) {
	level, silent, err := ParseVerbosity(verbosity)
	if err != nil {
		return nil, err
	}
	if silent {
		return NopLogger(), nil
	}
	log := logrus.New()
	log.SetOutput(w)
	log.SetLevel(level)
	return log, nil
}

// ParseVerbosity maps a verbosity name onto a logrus level. The ladder is
// trace < debug < info < warn < error; "off" and "none" disable the sink
// (silent=true), "all" is a synonym for trace, and the empty string defaults
// to error.
func ParseVerbosity(name string) (level logrus.Level, silent bool, err error) {
	name = strings.ToLower(strings.TrimSpace(name))
	switch name {
	case "off", "none":
		return logrus.PanicLevel, true, nil
	case "all":
		return logrus.TraceLevel, false, nil
	case "":
		return logrus.ErrorLevel, false, nil
	}
	level, err = logrus.ParseLevel(name)
	if err != nil {
		return 0, false, fmt.Errorf("invalid verbosity %q: %w", name, err)
	}
	return level, false, nil
}
