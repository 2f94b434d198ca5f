// Package logging builds the diagnostic logger shared by unc components.
//
// The maintenance transcript itself is written through internal/output. The
// logger carries developer-facing detail (exit codes, durations, fault
// classification) and stays quiet unless verbose mode is requested.
package logging

import (
	"io"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New returns a console-encoded logger writing to w. Verbose enables debug
// level; otherwise only warnings and errors are emitted.
func New(w io.Writer, verbose bool) *zap.Logger {
	level := zapcore.WarnLevel
	if verbose {
		level = zapcore.DebugLevel
	}

	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.TimeKey = ""
	encCfg.CallerKey = ""

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encCfg),
		zapcore.AddSync(w),
		zap.NewAtomicLevelAt(level),
	)
	return zap.New(core).Named("unc")
}

// OrNop returns l, or a no-op logger when l is nil.
func OrNop(l *zap.Logger) *zap.Logger {
	if l == nil {
		return zap.NewNop()
	}
	return l
}
