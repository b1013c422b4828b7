package logger

import (
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

var Log = newLogger()

func newLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
	})

	if os.Getenv("DEBUG") == "1" {
		log.SetLevel(logrus.DebugLevel)
	} else {
		log.SetLevel(logrus.InfoLevel)
	}

	return log
}

// FileOptions configures the rotating log file
type FileOptions struct {
	Path       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

// Configure sets the level and, when opts.Path is set, mirrors output into a
// rotating file. DEBUG=1 in the environment always wins over level.
func Configure(log *logrus.Logger, level string, opts FileOptions) error {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return err
	}
	if os.Getenv("DEBUG") == "1" {
		lvl = logrus.DebugLevel
	}
	log.SetLevel(lvl)

	if opts.Path == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(opts.Path), 0755); err != nil {
		return err
	}
	log.SetOutput(io.MultiWriter(os.Stderr, &lumberjack.Logger{
		Filename:   opts.Path,
		MaxSize:    opts.MaxSizeMB,
		MaxBackups: opts.MaxBackups,
		MaxAge:     opts.MaxAgeDays,
		Compress:   opts.Compress,
	}))
	return nil
}
