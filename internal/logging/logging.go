package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rgehrsitz/fincalc/internal/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds a zap logger from the logging settings. A non-empty
// levelOverride (from a command-line flag) wins over the settings.
func New(cfg config.LoggingConfig, levelOverride string) (*zap.Logger, error) {
	level := cfg.Level
	if levelOverride != "" {
		level = levelOverride
	}
	zapLevel, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}

	var zc zap.Config
	switch strings.ToLower(cfg.Format) {
	case "", "console":
		zc = zap.NewDevelopmentConfig()
	case "json":
		zc = zap.NewProductionConfig()
	default:
		return nil, fmt.Errorf("invalid log format: %s", cfg.Format)
	}
	zc.Level = zap.NewAtomicLevelAt(zapLevel)
	zc.OutputPaths = []string{"stderr"}
	zc.ErrorOutputPaths = []string{"stderr"}

	if cfg.OutputFile != "" {
		if dir := filepath.Dir(cfg.OutputFile); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("failed to create log directory %s: %w", dir, err)
			}
		}
		zc.OutputPaths = []string{cfg.OutputFile}
		zc.ErrorOutputPaths = []string{cfg.OutputFile}
	}

	logger, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	return logger, nil
}

// ParseLevel maps a level name to a zap level; empty means info.
func ParseLevel(level string) (zapcore.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return zapcore.DebugLevel, nil
	case "", "info":
		return zapcore.InfoLevel, nil
	case "warn", "warning":
		return zapcore.WarnLevel, nil
	case "error":
		return zapcore.ErrorLevel, nil
	}
	return zapcore.InfoLevel, fmt.Errorf("invalid log level: %s", level)
}

// CalculationLogger adapts a zap logger to calculation.Logger.
type CalculationLogger struct {
	sugar *zap.SugaredLogger
}

// NewCalculationLogger wraps logger; a nil logger logs nothing.
func NewCalculationLogger(logger *zap.Logger) CalculationLogger {
	if logger == nil {
		logger = zap.NewNop()
	}
	return CalculationLogger{sugar: logger.Sugar().With(zap.String("component", "calculation"))}
}

func (l CalculationLogger) Debugf(format string, args ...any) { l.sugar.Debugf(format, args...) }
func (l CalculationLogger) Infof(format string, args ...any)  { l.sugar.Infof(format, args...) }
func (l CalculationLogger) Warnf(format string, args ...any)  { l.sugar.Warnf(format, args...) }
func (l CalculationLogger) Errorf(format string, args ...any) { l.sugar.Errorf(format, args...) }
