// Package logging builds the zap logger shared by the analysis stages.
package logging

import (
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New returns a no-op logger unless verbose is set, in which case debug
// output goes to stderr in zap's console format
func New(verbose bool) *zap.Logger {
	if !verbose {
		return zap.NewNop()
	}
	return newLogger(os.Stderr, zapcore.DebugLevel)
}

func newLogger(w io.Writer, level zapcore.Level) *zap.Logger {
	encoderConfig := zap.NewDevelopmentEncoderConfig()
	encoderConfig.TimeKey = "" // Timestamps add nothing to a one-shot run

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderConfig),
		zapcore.Lock(zapcore.AddSync(w)),
		zap.NewAtomicLevelAt(level),
	)
	return zap.New(core).Named("jivescope")
}
