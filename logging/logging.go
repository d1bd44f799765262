// Package logging configures the process-wide logrus logger.
package logging

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options controls where and how verbosely the editor logs.
type Options struct {
	Level string
	// File, when set, receives a rotated copy of every entry.
	File       string
	MaxSizeMB  int
	MaxBackups int
}

// Setup applies opts to the standard logrus logger. The returned closer
// releases the log file, if any.
func Setup(opts Options) (io.Closer, error) {
	logger := logrus.StandardLogger()
	return configure(logger, os.Stderr, opts)
}

func configure(logger *logrus.Logger, console io.Writer, opts Options) (io.Closer, error) {
	level := logrus.InfoLevel
	if opts.Level != "" {
		lvl, err := logrus.ParseLevel(opts.Level)
		if err != nil {
			return nil, fmt.Errorf("logging: %w", err)
		}
		level = lvl
	}
	logger.SetLevel(level)
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	if opts.File == "" {
		logger.SetOutput(console)
		return nopCloser{}, nil
	}

	maxSize := opts.MaxSizeMB
	if maxSize <= 0 {
		maxSize = 10
	}
	backups := opts.MaxBackups
	if backups <= 0 {
		backups = 3
	}
	file := &lumberjack.Logger{
		Filename:   opts.File,
		MaxSize:    maxSize,
		MaxBackups: backups,
	}
	logger.SetOutput(io.MultiWriter(console, file))
	return file, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
