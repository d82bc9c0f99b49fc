package logger

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options configures New.
type Options struct {
	// Level is one of debug, info, warn, error. Empty means info.
	Level string

	// Encoding is "json" or "console". Empty means json.
	Encoding string

	// OutputPaths defaults to stderr.
	OutputPaths []string
}

// ParseLevel converts a level name to a zap level.
//
// Parameters:
//   - level: the level name, case-insensitive
//
// Returns:
//   - zapcore.Level: the parsed level
//   - error: error if the name is not a known level
func ParseLevel(level string) (zapcore.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "", "info":
		return zap.InfoLevel, nil
	case "debug":
		return zap.DebugLevel, nil
	case "warn", "warning":
		return zap.WarnLevel, nil
	case "error":
		return zap.ErrorLevel, nil
	default:
		return zap.InfoLevel, fmt.Errorf("unknown log level %q", level)
	}
}

// New builds a production zap logger. Repeated messages are sampled so that per-frame warnings,
// such as render failures, cannot flood the output.
//
// Parameters:
//   - opts: level, encoding and output configuration
//
// Returns:
//   - *zap.Logger: the logger
//   - error: error if the level is unknown or the logger cannot be built
func New(opts Options) (*zap.Logger, error) {
	level, err := ParseLevel(opts.Level)
	if err != nil {
		return nil, err
	}

	encoding := opts.Encoding
	if encoding == "" {
		encoding = "json"
	}
	outputs := opts.OutputPaths
	if len(outputs) == 0 {
		outputs = []string{"stderr"}
	}

	config := zap.Config{
		Level:       zap.NewAtomicLevelAt(level),
		Development: false,
		Sampling: &zap.SamplingConfig{
			Initial:    100,
			Thereafter: 100,
		},
		Encoding:         encoding,
		EncoderConfig:    zap.NewProductionEncoderConfig(),
		OutputPaths:      outputs,
		ErrorOutputPaths: []string{"stderr"},
		DisableCaller:    true,
	}
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	l, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	return l, nil
}
