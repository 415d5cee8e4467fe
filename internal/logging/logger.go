// Package logging builds the zap logger shared by the app shell, the
// services and the storage layer.
package logging

import (
	"fmt"
	"strings"

	"github.com/wailsapp/wails/v2/pkg/logger"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds a logger at the given level ("debug", "info", "warn", "error").
// jsonOutput selects the production JSON encoder, otherwise a console encoder is used.
func New(level string, jsonOutput bool) (*zap.Logger, error) {
	name := strings.ToLower(strings.TrimSpace(level))
	if name == "warning" {
		name = "warn"
	}
	lvl, err := zapcore.ParseLevel(name)
	if err != nil {
		return nil, fmt.Errorf("parse log level %q: %w", level, err)
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	if !jsonOutput {
		cfg.Encoding = "console"
		cfg.EncoderConfig = zap.NewDevelopmentEncoderConfig()
	}

	log, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return log, nil
}

// WailsLevel maps a zap level name onto the wails runtime log level.
func WailsLevel(level string) logger.LogLevel {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return logger.DEBUG
	case "warn", "warning":
		return logger.WARNING
	case "error":
		return logger.ERROR
	default:
		return logger.INFO
	}
}

// WailsLogger routes wails runtime logging (runtime.LogInfo and friends)
// into zap.
type WailsLogger struct {
	log *zap.Logger
}

var _ logger.Logger = (*WailsLogger)(nil)

func NewWailsLogger(log *zap.Logger) *WailsLogger {
	return &WailsLogger{log: log.Named("runtime").WithOptions(zap.AddCallerSkip(1))}
}

func (w *WailsLogger) Print(message string)   { w.log.Info(message) }
func (w *WailsLogger) Trace(message string)   { w.log.Debug(message) }
func (w *WailsLogger) Debug(message string)   { w.log.Debug(message) }
func (w *WailsLogger) Info(message string)    { w.log.Info(message) }
func (w *WailsLogger) Warning(message string) { w.log.Warn(message) }
func (w *WailsLogger) Error(message string)   { w.log.Error(message) }
func (w *WailsLogger) Fatal(message string)   { w.log.Fatal(message) }

// Writer satisfies io.Writer for libraries that log through a std
// *log.Logger (GORM). Every write becomes one entry.
type Writer struct {
	Log *zap.Logger
}

func (w Writer) Write(p []byte) (int, error) {
	w.Log.Info(strings.TrimRight(string(p), "\n"))
	return len(p), nil
}
