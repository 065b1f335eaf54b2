package commands

import (
	"io"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/slok/tsplot/internal/info"
	"github.com/slok/tsplot/internal/log"
	loglogrus "github.com/slok/tsplot/internal/log/logrus"
)

const (
	LoggerFormatText = "default"
	LoggerFormatJSON = "json"
)

// LoggerConfig is the logging setup selected with the global flags.
type LoggerConfig struct {
	Debug    bool
	Disabled bool
	NoColor  bool
	Format   string
	// File is an optional rotated log file, logs are written to both out and the file.
	File string
}

// NewLogger returns the application logger writing on out (usually stderr, so
// stdout only has the command output).
func NewLogger(cfg LoggerConfig, out io.Writer) log.Logger {
	if cfg.Disabled {
		return log.Noop
	}

	l := logrus.New()
	l.SetOutput(out)
	if cfg.File != "" {
		l.SetOutput(io.MultiWriter(out, &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    25, // MiB.
			MaxBackups: 10,
			MaxAge:     14, // Days.
			Compress:   true,
		}))
	}

	if cfg.Debug {
		l.SetLevel(logrus.DebugLevel)
	}

	switch cfg.Format {
	case LoggerFormatJSON:
		l.SetFormatter(&logrus.JSONFormatter{})
	default:
		// Color escape codes would end on the log file.
		colors := !cfg.NoColor && cfg.File == ""
		l.SetFormatter(&logrus.TextFormatter{
			ForceColors:   colors,
			DisableColors: !colors,
		})
	}

	logger := loglogrus.NewLogrus(logrus.NewEntry(l)).WithValues(log.Kv{"version": info.Version})
	logger.Debugf("Debug level is enabled")

	return logger
}
