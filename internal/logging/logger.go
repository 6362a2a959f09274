// Package logging builds the zap logger shared by every command.
package logging

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options select level and destination.
type Options struct {
	Level   string // zap level name; empty means info
	Verbose bool   // forces debug
	File    string // when set, logs go here instead of stderr
}

// New creates the application logger. The interactive UI passes a File so
// log lines never land on the terminal it draws to.
func New(opt Options) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.DisableStacktrace = true

	level := zapcore.InfoLevel
	if opt.Level != "" {
		l, err := zapcore.ParseLevel(opt.Level)
		if err != nil {
			return nil, fmt.Errorf("log level: %w", err)
		}
		level = l
	}
	if opt.Verbose {
		level = zapcore.DebugLevel
	}
	cfg.Level = zap.NewAtomicLevelAt(level)

	if opt.File != "" {
		if err := os.MkdirAll(filepath.Dir(opt.File), 0o700); err != nil {
			return nil, fmt.Errorf("log dir: %w", err)
		}
		cfg.OutputPaths = []string{opt.File}
		cfg.ErrorOutputPaths = []string{opt.File}
	} else {
		cfg.OutputPaths = []string{"stderr"}
		cfg.ErrorOutputPaths = []string{"stderr"}
	}

	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger, nil
}

// NewNop returns a logger that drops everything.
func NewNop() *zap.Logger { return zap.NewNop() }
