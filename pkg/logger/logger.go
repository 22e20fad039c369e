// Package logger wraps slog behind a small context-first interface shared by
// the advisor, the ranking workers and the command line tools.
package logger

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
)

// frames between the public method and the code that called it
const callerDepth = 3

// Logger defines the logging interface.
type Logger interface {
	Debug(ctx context.Context, msg string, fields ...Field)
	Info(ctx context.Context, msg string, fields ...Field)
	Warn(ctx context.Context, msg string, fields ...Field)
	Error(ctx context.Context, msg string, fields ...Field)

	// Named returns a child logger tagged with logger=name.
	Named(name string) Logger
}

type slogLogger struct {
	base   *slog.Logger
	source bool
	root   string
}

func (l *slogLogger) Named(name string) Logger {
	return &slogLogger{base: l.base.With(slog.String("logger", name)), source: l.source, root: l.root}
}

func (l *slogLogger) Debug(ctx context.Context, msg string, fields ...Field) {
	l.log(ctx, slog.LevelDebug, msg, fields)
}

func (l *slogLogger) Info(ctx context.Context, msg string, fields ...Field) {
	l.log(ctx, slog.LevelInfo, msg, fields)
}

func (l *slogLogger) Warn(ctx context.Context, msg string, fields ...Field) {
	l.log(ctx, slog.LevelWarn, msg, fields)
}

func (l *slogLogger) Error(ctx context.Context, msg string, fields ...Field) {
	l.log(ctx, slog.LevelError, msg, fields)
}

func (l *slogLogger) log(ctx context.Context, level slog.Level, msg string, fields []Field) {
	if !l.base.Enabled(ctx, level) {
		return
	}
	attrs := make([]slog.Attr, 0, len(fields)+1)
	for _, f := range fields {
		attrs = append(attrs, slog.Any(f.Key, f.Value))
	}
	if l.source {
		attrs = append(attrs, slog.String("source", l.caller()))
	}
	l.base.LogAttrs(ctx, level, msg, attrs...)
}

// caller returns file:line of the logging call, relative to the working
// directory captured at Init when possible.
func (l *slogLogger) caller() string {
	_, file, line, ok := runtime.Caller(callerDepth)
	if !ok {
		return "unknown:0"
	}
	if l.root != "" {
		if rel, err := filepath.Rel(l.root, file); err == nil && !strings.HasPrefix(rel, "..") {
			file = rel
		} else {
			file = filepath.Base(file)
		}
	}
	return fmt.Sprintf("%s:%d", file, line)
}

var (
	mu       sync.RWMutex
	global   Logger
	levelVar slog.LevelVar
)

// Init installs the global logger and resets the level to info. Output
// defaults to stdout in text form; it may be called again to reconfigure.
func Init(opts ...Option) error {
	o := options{writer: os.Stdout, source: true}
	for _, opt := range opts {
		opt(&o)
	}

	levelVar.Set(slog.LevelInfo)
	handlerOpts := &slog.HandlerOptions{Level: &levelVar}

	var h slog.Handler
	if o.json {
		h = slog.NewJSONHandler(o.writer, handlerOpts)
	} else {
		h = slog.NewTextHandler(o.writer, handlerOpts)
	}

	root, _ := os.Getwd()

	mu.Lock()
	global = &slogLogger{base: slog.New(h), source: o.source, root: root}
	mu.Unlock()
	return nil
}

// Get returns the global logger. It panics before Init.
func Get() Logger {
	mu.RLock()
	defer mu.RUnlock()
	if global == nil {
		panic("logger not initialized. Call logger.Init() first")
	}
	return global
}

// Named is shorthand for Get().Named(name).
func Named(name string) Logger {
	return Get().Named(name)
}

// Sync exists for symmetry with buffered backends; slog writes through.
func Sync() error {
	return nil
}

// SetLevel changes the level of every logger handed out so far.
func SetLevel(level slog.Level) { levelVar.Set(level) }

// SetLevelString accepts debug, info, warn/warning or error in any case.
// An empty string means info.
func SetLevelString(level string) error {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		SetLevel(slog.LevelDebug)
	case "", "info":
		SetLevel(slog.LevelInfo)
	case "warn", "warning":
		SetLevel(slog.LevelWarn)
	case "error":
		SetLevel(slog.LevelError)
	default:
		return fmt.Errorf("unknown log level: %s", level)
	}
	return nil
}
