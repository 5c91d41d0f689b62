package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options configures logger construction.
type Options struct {
	logToFile bool
	logFile   string
}

// Option mutates Options.
type Option func(*Options)

// WithLogToFile enables JSON logging to a rotated file in addition to the
// console handler.
func WithLogToFile(enabled bool) Option {
	return func(o *Options) { o.logToFile = enabled }
}

// WithLogFile sets the log file path used when file logging is enabled.
func WithLogFile(path string) Option {
	return func(o *Options) { o.logFile = path }
}

// New builds the process logger. Development gets a colorized console
// handler; production gets plain JSON on stdout. When file logging is
// enabled, output also goes to a size-rotated log file.
func New(environment, level string, opts ...Option) *slog.Logger {
	var o Options
	for _, opt := range opts {
		opt(&o)
	}

	lvl := ParseLevel(level)

	var console slog.Handler
	if environment == "production" {
		var w io.Writer = os.Stdout
		if o.logToFile && o.logFile != "" {
			w = io.MultiWriter(os.Stdout, rotatedWriter(o.logFile))
		}
		console = slog.NewJSONHandler(w, &slog.HandlerOptions{Level: lvl})
		return slog.New(console)
	}

	console = tint.NewHandler(os.Stdout, &tint.Options{
		Level:      lvl,
		TimeFormat: time.TimeOnly,
	})
	if o.logToFile && o.logFile != "" {
		fileHandler := slog.NewJSONHandler(rotatedWriter(o.logFile), &slog.HandlerOptions{Level: lvl})
		return slog.New(newTeeHandler(console, fileHandler))
	}
	return slog.New(console)
}

func rotatedWriter(path string) io.Writer {
	return &lumberjack.Logger{
		Filename:   path,
		MaxSize:    20, // megabytes
		MaxBackups: 5,
		MaxAge:     28, // days
		Compress:   true,
	}
}

// ParseLevel maps a level name to a slog level, defaulting to info.
func ParseLevel(value string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "debug":
		return slog.LevelDebug
	case "info", "":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
