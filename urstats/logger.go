// Package urstats reports decoder events. Stats is the sink interface the
// fountain and ur decoders call into, StatsLog writes events through zap.
package urstats

import (
	"io"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger builds a JSON logger writing to w at the given level.
func NewLogger(w io.Writer, level zapcore.Level) *zap.Logger {
	encoderConfig := zapcore.EncoderConfig{
		TimeKey:     "timestamp",
		LevelKey:    "level",
		NameKey:     "logger",
		MessageKey:  "message",
		EncodeTime:  zapcore.RFC3339NanoTimeEncoder,
		EncodeLevel: zapcore.LowercaseLevelEncoder,
	}
	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig),
		zapcore.AddSync(w),
		level,
	)
	return zap.New(core)
}

// ParseLevel accepts zap level names: debug, info, warn, error.
func ParseLevel(text string) (zapcore.Level, error) {
	return zapcore.ParseLevel(text)
}
