// Package logging builds the launcher's zap logger.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/studiowebux/launcher/internal/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options controls where logs go
type Options struct {
	// File receives JSON lines; empty disables file logging
	File string
	// Debug lowers the level to debug and mirrors logs to Console
	Debug bool
	// Console is the human readable sink used in debug mode (default os.Stderr)
	Console io.Writer
	// NoConsole keeps debug output in the file while a TUI owns the terminal
	NoConsole bool
}

// New returns a logger and a close function that syncs and closes the log file
func New(opts Options) (*zap.Logger, func() error, error) {
	level := zapcore.InfoLevel
	if opts.Debug {
		level = zapcore.DebugLevel
	}

	var cores []zapcore.Core
	closeFn := func() error { return nil }

	if opts.File != "" {
		if err := os.MkdirAll(filepath.Dir(opts.File), config.DirPermissions); err != nil {
			return nil, nil, fmt.Errorf("failed to create log directory: %w", err)
		}
		f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, config.FilePermissions)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open log file: %w", err)
		}
		encoderCfg := zap.NewProductionEncoderConfig()
		encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
		cores = append(cores, zapcore.NewCore(zapcore.NewJSONEncoder(encoderCfg), zapcore.AddSync(f), level))
		closeFn = f.Close
	}

	if opts.Debug && !opts.NoConsole {
		console := opts.Console
		if console == nil {
			console = os.Stderr
		}
		encoderCfg := zap.NewDevelopmentEncoderConfig()
		encoderCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		cores = append(cores, zapcore.NewCore(zapcore.NewConsoleEncoder(encoderCfg), zapcore.AddSync(console), level))
	}

	if len(cores) == 0 {
		return zap.NewNop(), closeFn, nil
	}

	logger := zap.New(zapcore.NewTee(cores...), zap.AddCaller())
	return logger, func() error {
		_ = logger.Sync()
		return closeFn()
	}, nil
}
