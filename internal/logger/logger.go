package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/openfoodshare/foodgate/internal/config"
)

// Logger wraps slog with optional file output and size-based rotation.
// Console output goes to stderr: stdout belongs to the stdio transport.
type Logger struct {
	slogger *slog.Logger
	logFile *os.File
}

var globalLogger *Logger

func Initialize(cfg config.LoggingConfig) error {
	l, err := New(cfg)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	globalLogger = l
	return nil
}

func New(cfg config.LoggingConfig) (*Logger, error) {
	var writers []io.Writer

	if cfg.Console {
		writers = append(writers, os.Stderr)
	}

	var logFile *os.File
	if cfg.OutputFile != "" {
		dir := filepath.Dir(cfg.OutputFile)
		if dir != "." && dir != "" {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("create log directory: %w", err)
			}
		}

		if err := rotateIfNeeded(cfg.OutputFile, cfg.MaxSizeMB*1024*1024); err != nil {
			return nil, fmt.Errorf("rotate log: %w", err)
		}

		file, err := os.OpenFile(cfg.OutputFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		logFile = file
		writers = append(writers, file)
	}

	var writer io.Writer
	switch len(writers) {
	case 0:
		writer = io.Discard
	case 1:
		writer = writers[0]
	default:
		writer = io.MultiWriter(writers...)
	}

	handler := slog.NewTextHandler(writer, &slog.HandlerOptions{
		Level: ParseLevel(cfg.Level),
	})

	return &Logger{slogger: slog.New(handler), logFile: logFile}, nil
}

// ParseLevel maps a config level string to a slog level, defaulting to INFO.
func ParseLevel(level string) slog.Level {
	switch strings.ToUpper(level) {
	case "DEBUG":
		return slog.LevelDebug
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func rotateIfNeeded(filename string, maxSize int64) error {
	info, err := os.Stat(filename)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	if info.Size() >= maxSize {
		timestamp := time.Now().Format("20060102-150405")
		if err := os.Rename(filename, fmt.Sprintf("%s.%s", filename, timestamp)); err != nil {
			return fmt.Errorf("rotate log file: %w", err)
		}
	}

	return nil
}

func (l *Logger) Close() error {
	if l.logFile != nil {
		return l.logFile.Close()
	}
	return nil
}

func Debug(msg string, args ...any) {
	if globalLogger != nil {
		globalLogger.slogger.Debug(msg, args...)
	}
}

func Info(msg string, args ...any) {
	if globalLogger != nil {
		globalLogger.slogger.Info(msg, args...)
	}
}

func Warn(msg string, args ...any) {
	if globalLogger != nil {
		globalLogger.slogger.Warn(msg, args...)
	}
}

func Error(msg string, err error, args ...any) {
	if globalLogger != nil {
		if err != nil {
			args = append(args, "error", err.Error())
		}
		globalLogger.slogger.Error(msg, args...)
	}
}

// LogDatabaseOperation records one store round-trip.
func LogDatabaseOperation(operation, query string, rows int64, err error) {
	q := truncateQuery(query)
	if err != nil {
		Error(operation+" failed", err, "query", q)
		return
	}
	Info(operation+" completed", "query", q, "rows", rows)
}

// LogCacheEvent records a read-cache hit, miss, or refresh.
func LogCacheEvent(event, query string) {
	Debug("cache "+event, "query", truncateQuery(query))
}

// LogConnectionEvent records connection acquisition outcomes.
func LogConnectionEvent(event, driver string, err error) {
	if err != nil {
		Error("connection "+event+" failed", err, "driver", driver)
		return
	}
	Debug("connection "+event, "driver", driver)
}

func truncateQuery(query string) string {
	if len(query) > 100 {
		return query[:100] + "..."
	}
	return query
}

func Shutdown() error {
	if globalLogger != nil {
		return globalLogger.Close()
	}
	return nil
}
