// Package logging builds the zap logger pb uses.
//
// Records go as JSON to a size-rotated file so they never interleave with the
// TUI. Non-interactive commands run with --verbose also get a console copy on
// stderr. Setting PB_DEBUG lowers the level to debug:
//
//	PB_DEBUG=1 pb search caro
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/vanderheijden86/playbook/pkg/config"
)

// Options describes where records go.
type Options struct {
	Level      string // debug, info, warn, error; empty = info
	File       string // rotated JSON log; empty disables the file core
	MaxSizeMB  int
	MaxBackups int

	// Console, when set, receives a human-readable copy of every record.
	Console io.Writer

	// Warn receives a one-line notice when the log file cannot be used.
	// The logger is still built from the remaining cores.
	Warn io.Writer
}

// FromConfig maps the log section of cfg onto Options.
func FromConfig(cfg config.Config) Options {
	return Options{
		Level:      cfg.Log.Level,
		File:       cfg.LogPath(),
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
	}
}

// ParseLevel maps a config level name to a zap level.
func ParseLevel(s string) (zapcore.Level, error) {
	if strings.TrimSpace(s) == "" {
		return zapcore.InfoLevel, nil
	}
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(strings.ToLower(s))); err != nil {
		return zapcore.InfoLevel, fmt.Errorf("log level %q: %w", s, err)
	}
	return lvl, nil
}

// New builds a logger from opts. The returned close func flushes buffered
// records and releases the log file; call it once on exit.
//
// An unusable log directory is not an error: the file core is dropped, a
// notice goes to opts.Warn and logging continues on the console core, or
// nowhere.
func New(opts Options) (*zap.Logger, func() error, error) {
	lvl, err := ParseLevel(opts.Level)
	if err != nil {
		return nil, nil, err
	}

	var (
		cores   []zapcore.Core
		rotator *lumberjack.Logger
	)

	var fileErr error
	if opts.File != "" {
		fileErr = os.MkdirAll(filepath.Dir(opts.File), 0o755)
	}
	if opts.File != "" && fileErr == nil {
		rotator = &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    opts.MaxSizeMB,
			MaxBackups: opts.MaxBackups,
			MaxAge:     30,
			Compress:   true,
		}
		cores = append(cores, zapcore.NewCore(jsonEncoder(), zapcore.AddSync(rotator), lvl))
	}

	if opts.Console != nil {
		enc := zap.NewDevelopmentEncoderConfig()
		enc.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05.000")
		cores = append(cores, zapcore.NewCore(zapcore.NewConsoleEncoder(enc), zapcore.AddSync(opts.Console), lvl))
	}

	if fileErr != nil && opts.Warn != nil {
		fmt.Fprintf(opts.Warn, "Warning: log file disabled: %v\n", fileErr)
	}

	if len(cores) == 0 {
		return zap.NewNop(), func() error { return nil }, nil
	}

	logger := zap.New(zapcore.NewTee(cores...), zap.AddCaller())
	if fileErr != nil {
		logger.Warn("log file disabled", zap.String("path", opts.File), zap.Error(fileErr))
	}
	closeFn := func() error {
		_ = logger.Sync()
		if rotator != nil {
			return rotator.Close()
		}
		return nil
	}
	return logger, closeFn, nil
}

func jsonEncoder() zapcore.Encoder {
	cfg := zap.NewProductionEncoderConfig()
	cfg.TimeKey = "timestamp"
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.MessageKey = "message"
	cfg.LevelKey = "level"
	cfg.EncodeLevel = zapcore.CapitalLevelEncoder
	return zapcore.NewJSONEncoder(cfg)
}
