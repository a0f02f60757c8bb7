// Package logging holds the process-wide structured logger.
package logging

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Log is the global logger for the whole game. Until Init runs it writes
// warnings and above to stderr.
var Log = newDefault()

func newDefault() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetLevel(logrus.WarnLevel)
	return l
}

// Options controls Init
type Options struct {
	Level  string // panic, fatal, error, warn, info, debug, trace
	Format string // text or json
	File   string // Rotating log file, empty disables it
	Stdout bool
}

// Init replaces the global logger. It must be called once from main.
// The returned closer flushes the rotating file.
func Init(opts Options) (io.Closer, error) {
	logger := logrus.New()

	level, err := logrus.ParseLevel(opts.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	if strings.ToLower(opts.Format) == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}

	var writers []io.Writer
	if opts.Stdout {
		writers = append(writers, os.Stdout)
	}

	var closer io.Closer = nopCloser{}
	if opts.File != "" {
		if err := os.MkdirAll(filepath.Dir(opts.File), 0o755); err != nil {
			return nil, err
		}
		fileLogger := &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    10,
			MaxBackups: 5,
			MaxAge:     7,
			LocalTime:  true,
		}
		writers = append(writers, fileLogger)
		closer = fileLogger
	}

	switch len(writers) {
	case 0:
		logger.SetOutput(io.Discard)
	case 1:
		logger.SetOutput(writers[0])
	default:
		logger.SetOutput(io.MultiWriter(writers...))
	}

	Log = logger
	return closer, nil
}

// For returns a child logger tagged with a component name
func For(component string) *logrus.Entry {
	return Log.WithField("component", component)
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
