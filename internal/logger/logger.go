// Package logger holds the process-wide zap logger used by every other
// package. Call Init once from the entry point before doing anything else.
package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Log is the shared logger. It is a no-op logger until Init is called so
// that library code and tests can log without ceremony.
var Log = zap.NewNop()

// Init replaces the no-op logger with a production console logger.
func Init() {
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder

	log, err := cfg.Build()
	if err != nil {
		// Logging is not worth dying for, keep the no-op logger.
		return
	}
	Log = log
}

// SetDebug switches the shared logger to a development configuration with
// debug-level output.
func SetDebug() {
	log, err := zap.NewDevelopment()
	if err != nil {
		return
	}
	Log = log
}
