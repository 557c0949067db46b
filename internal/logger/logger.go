// Package logger holds the process-wide structured logger. Diagnostics go to
// stderr so report output on stdout stays pipeable.
package logger

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is the global logger instance. Init must run before use.
var Logger *zap.SugaredLogger

func init() {
	Logger = zap.NewNop().Sugar()
}

// Config controls logger behavior.
type Config struct {
	Debug  bool   // enable debug level
	Format string // "json" or "human"
}

// Init builds the global logger from config.
func Init(cfg Config) error {
	var zapConfig zap.Config
	if cfg.Format == "json" {
		zapConfig = zap.NewProductionConfig()
	} else {
		zapConfig = zap.NewDevelopmentConfig()
		zapConfig.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	zapConfig.OutputPaths = []string{"stderr"}
	zapConfig.ErrorOutputPaths = []string{"stderr"}

	if cfg.Debug {
		zapConfig.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	} else {
		zapConfig.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	}

	logger, err := zapConfig.Build()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	Logger = logger.Sugar()
	return nil
}

// Debug logs at debug level with key/value fields.
func Debug(message string, keysAndValues ...any) {
	Logger.Debugw(message, keysAndValues...)
}

// Warn logs at warn level with key/value fields.
func Warn(message string, keysAndValues ...any) {
	Logger.Warnw(message, keysAndValues...)
}

// Error logs at error level with key/value fields.
func Error(message string, keysAndValues ...any) {
	Logger.Errorw(message, keysAndValues...)
}

// Sync flushes buffered log entries.
func Sync() {
	_ = Logger.Sync()
}
