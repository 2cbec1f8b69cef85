package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/ProbabilisticSuffixPredictionLab/eloader-webapp-pub/internal/config"
)

// level is shared by every handler created by Setup so it can change at runtime
var level = new(slog.LevelVar)

// logFile is the file opened by the last Setup, closed when Setup runs again
var (
	fileMu  sync.Mutex
	logFile *os.File
)

// timeFormat is RFC3339 with milliseconds
const timeFormat = "2006-01-02T15:04:05.000Z07:00"

// Setup installs the default slog logger described by cfg
func Setup(cfg config.LogConfig) error {
	parsed, err := parseLevel(cfg.Level)
	if err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}

	writer, file, err := openOutput(cfg)
	if err != nil {
		return err
	}

	handler, err := newHandler(cfg.Format, writer, &slog.HandlerOptions{
		Level:     level,
		AddSource: cfg.AddSource,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey && len(groups) == 0 {
				return slog.String(slog.TimeKey, a.Value.Time().Format(timeFormat))
			}
			return a
		},
	})
	if err != nil {
		if file != nil {
			file.Close()
		}
		return err
	}

	level.Set(parsed)
	slog.SetDefault(slog.New(handler))
	swapFile(file)

	slog.Debug("logger initialized",
		"level", cfg.Level,
		"format", cfg.Format,
		"output", cfg.Output,
	)
	return nil
}

// openOutput returns the writer for cfg.Output; file is non-nil for file output
func openOutput(cfg config.LogConfig) (io.Writer, *os.File, error) {
	switch cfg.Output {
	case "stdout":
		return os.Stdout, nil, nil
	case "stderr":
		return os.Stderr, nil, nil
	case "file":
		if cfg.FilePath == "" {
			return nil, nil, fmt.Errorf("log file path is required when output is 'file'")
		}
		file, err := os.OpenFile(cfg.FilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open log file: %w", err)
		}
		return file, file, nil
	default:
		return nil, nil, fmt.Errorf("invalid log output: %s", cfg.Output)
	}
}

func newHandler(format string, w io.Writer, opts *slog.HandlerOptions) (slog.Handler, error) {
	switch format {
	case "json":
		return slog.NewJSONHandler(w, opts), nil
	case "text":
		return slog.NewTextHandler(w, opts), nil
	default:
		return nil, fmt.Errorf("invalid log format: %s", format)
	}
}

func swapFile(next *os.File) {
	fileMu.Lock()
	defer fileMu.Unlock()
	if logFile != nil && logFile != next {
		logFile.Close()
	}
	logFile = next
}

// SetLevel changes the level of the logger installed by Setup
func SetLevel(name string) error {
	parsed, err := parseLevel(name)
	if err != nil {
		return err
	}
	if parsed != level.Level() {
		level.Set(parsed)
		slog.Info("log level changed", "level", parsed.String())
	}
	return nil
}

// Level returns the current level
func Level() slog.Level {
	return level.Level()
}

// parseLevel parses log level string to slog.Level
func parseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level: %s", level)
	}
}

// FromContext retrieves logger from context
// Returns default logger if none found in context
func FromContext(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(loggerKey).(*slog.Logger); ok {
		return logger
	}
	return slog.Default()
}

// WithContext adds logger to context
func WithContext(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// WithRequestID adds request ID to logger
func WithRequestID(logger *slog.Logger, requestID string) *slog.Logger {
	return logger.With("request_id", requestID)
}

// WithError adds error information to logger
func WithError(logger *slog.Logger, err error) *slog.Logger {
	if err == nil {
		return logger
	}
	return logger.With("error", err.Error())
}

// WithFields adds multiple fields to logger
func WithFields(logger *slog.Logger, fields map[string]interface{}) *slog.Logger {
	args := make([]interface{}, 0, len(fields)*2)
	for k, v := range fields {
		args = append(args, k, v)
	}
	return logger.With(args...)
}

type contextKey string

const loggerKey contextKey = "logger"
