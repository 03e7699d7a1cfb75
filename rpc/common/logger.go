package common

import (
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// --------------------------------------------------------------------------
// Logger Factory
// --------------------------------------------------------------------------

var (
	loggerMu   sync.Mutex
	rootLogger *zap.Logger
)

// GetLogger returns a named logger derived from the shared root logger.
// The root logger is created lazily at info level if InitLoggers was not
// called first.
func GetLogger(name string) *zap.Logger {
	loggerMu.Lock()
	defer loggerMu.Unlock()

	if rootLogger == nil {
		rootLogger = buildLogger(zapcore.InfoLevel)
	}
	return rootLogger.Named(name)
}

// InitLoggers configures the shared root logger with the given level.
// Loggers handed out before this call keep their previous configuration,
// so call it once at process startup.
func InitLoggers(level string) {
	loggerMu.Lock()
	defer loggerMu.Unlock()

	rootLogger = buildLogger(parseLogLevel(level))
}

// buildLogger creates a console logger with a compact line format.
func buildLogger(level zapcore.Level) *zap.Logger {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(level)
	cfg.Encoding = "console"
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.DisableStacktrace = true

	logger, err := cfg.Build()
	if err != nil {
		panic(fmt.Sprintf("failed to build logger: %v", err))
	}
	return logger
}

// --------------------------------------------------------------------------
// Helper
// --------------------------------------------------------------------------

// parseLogLevel converts a string level to a zapcore.Level
func parseLogLevel(level string) zapcore.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zapcore.DebugLevel
	case "info":
		return zapcore.InfoLevel
	case "warning", "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		panic(fmt.Sprintf("invalid log level: %s. must be one of debug, info, warn, error", level))
	}
}
