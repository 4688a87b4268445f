// Package logutil wires the CLIs' --verbose flag to a zerolog logger.
//
// The corpus's only concrete signal for a logging library is
// logiface-zerolog's choice of backend; this package uses zerolog
// directly rather than pulling in the logiface facade itself, since that
// facade lives in its own nested module and a leveled CLI logger doesn't
// need it.
package logutil

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"
)

// ErrUnknownLevel indicates a --verbose value outside {trace,debug,info}.
var ErrUnknownLevel = errors.New("logutil: unknown verbosity level")

// ParseLevel maps a CLI-supplied verbosity string to a zerolog.Level.
// An empty string (the bare --verbose/-v flag) means "info".
func ParseLevel(s string) (zerolog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "info":
		return zerolog.InfoLevel, nil
	case "debug":
		return zerolog.DebugLevel, nil
	case "trace":
		return zerolog.TraceLevel, nil
	default:
		return zerolog.NoLevel, fmt.Errorf("%w: %q", ErrUnknownLevel, s)
	}
}

// New builds the process-wide logger for a CLI invocation, writing a
// human-readable console format to w at the given level. A CLI that was
// never given --verbose does not call New; it uses Disabled instead.
func New(w io.Writer, level zerolog.Level) zerolog.Logger {
	zerolog.SetGlobalLevel(level)
	console := zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05"}
	return zerolog.New(console).With().Timestamp().Logger().Level(level)
}

// Disabled is the logger used when a CLI invocation never sets
// --verbose: every call is a no-op, at effectively zero cost.
func Disabled() zerolog.Logger {
	return zerolog.New(io.Discard).Level(zerolog.Disabled)
}

// NewFromFlag is New's CLI-facing convenience: raw is the --verbose
// flag's string value, present reports whether the flag was set at all
// (urfave/cli's Context.IsSet), and w is typically os.Stderr.
func NewFromFlag(w io.Writer, raw string, present bool) (zerolog.Logger, error) {
	if !present {
		return Disabled(), nil
	}
	level, err := ParseLevel(raw)
	if err != nil {
		return zerolog.Logger{}, err
	}
	return New(w, level), nil
}
