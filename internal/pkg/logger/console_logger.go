package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
)

// ConsoleLogger writes human readable records to stdout.
type ConsoleLogger struct {
	logger *slog.Logger
}

// NewConsoleLogger creates a console logger filtering below the given level.
func NewConsoleLogger(level, service string) Logger {
	return newConsoleLogger(os.Stdout, level, service)
}

func newConsoleLogger(w io.Writer, level, service string) *ConsoleLogger {
	handler := slog.NewTextHandler(w, handlerOptions(level))
	return &ConsoleLogger{logger: newSlog(handler, service)}
}

func (l *ConsoleLogger) Debug(args ...interface{}) {
	l.logger.Debug(formatArgs(args...))
}

func (l *ConsoleLogger) Info(args ...interface{}) {
	l.logger.Info(formatArgs(args...))
}

func (l *ConsoleLogger) Warn(args ...interface{}) {
	l.logger.Warn(formatArgs(args...))
}

func (l *ConsoleLogger) Error(args ...interface{}) {
	l.logger.Error(formatArgs(args...))
}

// Fatal logs at critical level and exits the process.
func (l *ConsoleLogger) Fatal(args ...interface{}) {
	l.logger.Log(context.Background(), LevelCritical, formatArgs(args...))
	os.Exit(1)
}

// Panic logs at critical level and panics with the same message.
func (l *ConsoleLogger) Panic(args ...interface{}) {
	msg := formatArgs(args...)
	l.logger.Log(context.Background(), LevelCritical, msg)
	panic(msg)
}
