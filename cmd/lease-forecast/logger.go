package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/iwvelando/lease-forecast/internal/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var logLevels = map[string]zapcore.Level{
	"debug":   zapcore.DebugLevel,
	"info":    zapcore.InfoLevel,
	"warn":    zapcore.WarnLevel,
	"warning": zapcore.WarnLevel,
	"error":   zapcore.ErrorLevel,
}

// initializeLogger builds the zap logger from the logging section; a
// non-empty levelOverride (the --log-level flag) replaces the configured level.
func initializeLogger(lc config.LoggingConfig, levelOverride string) (*zap.Logger, error) {
	name := lc.Level
	if levelOverride != "" {
		name = levelOverride
	}
	if name == "" {
		name = "info"
	}
	level, ok := logLevels[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("invalid log level: %s", name)
	}

	var zc zap.Config
	switch lc.Format {
	case "", "json":
		zc = zap.NewProductionConfig()
	case "console":
		zc = zap.NewDevelopmentConfig()
	default:
		return nil, fmt.Errorf("invalid log format: %s", lc.Format)
	}
	zc.Level = zap.NewAtomicLevelAt(level)

	if lc.OutputFile != "" {
		if err := ensureLogFile(lc.OutputFile); err != nil {
			return nil, err
		}
		zc.OutputPaths = []string{lc.OutputFile}
		zc.ErrorOutputPaths = []string{lc.OutputFile}
	}

	return zc.Build()
}

// ensureLogFile creates the log file and its directory if needed.
func ensureLogFile(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create log directory %s: %v", dir, err)
		}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open log file %s: %v", path, err)
	}
	return f.Close()
}
