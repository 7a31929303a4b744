// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package logger provides a thin wrapper around zerolog.Logger that adds
// named application loggers, pluggable output handlers and context-aware
// helpers used throughout the go-web-skeleton application.
//
// The Logger type embeds zerolog.Logger so all standard zerolog methods
// (Debug, Info, Warn, Error, Fatal, etc.) are available directly on *Logger.
// Application code should pass *Logger by pointer and obtain request-scoped
// loggers via FromContext or FromRequest.
package logger

import (
	"context"
	"io"
	"net/http"
	"os"
	"runtime"
	"sync"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Logger is a thin wrapper around zerolog.Logger.
// Embedding zerolog.Logger exposes the full zerolog API while allowing the
// application to add helper methods without modifying the upstream type.
//
// Every event is written to the logger's handler set. A Logger created by
// New or Get starts with no handlers and therefore discards its output until
// a handler is attached with AddHandler.
type Logger struct {
	zerolog.Logger

	handlers *handlerSet
}

var (
	registryMu sync.Mutex
	registry   = make(map[string]*Logger)
)

var configureOnce sync.Once

// configure applies the process-wide zerolog settings shared by all loggers:
// the "func" caller field holding the fully-qualified function name.
func configure() {
	configureOnce.Do(func() {
		zerolog.CallerMarshalFunc = func(pc uintptr, file string, line int) string {
			return runtime.FuncForPC(pc).Name() // return function name
		}
		zerolog.CallerFieldName = "func"
	})
}

// New constructs a *Logger for the given role label with an empty handler set.
// Entries carry a "role" field, a timestamp and the caller function name.
func New(role string) *Logger {
	configure()

	handlers := &handlerSet{}
	logger := zerolog.New(handlers).With().
		Str("role", role).
		Timestamp().
		Caller().
		Logger()

	return &Logger{Logger: logger, handlers: handlers}
}

// NewLogger constructs a production-ready *Logger for the given role label
// (e.g. "server", "cli").
//
// The logger is configured with:
//   - global log level set to Debug (all levels are emitted);
//   - a "role" field set to role;
//   - a "time" timestamp field added to every log entry;
//   - a "func" caller field that records the fully-qualified function name.
//
// Output is written to os.Stdout in JSON format.
func NewLogger(role string) *Logger {
	zerolog.SetGlobalLevel(zerolog.DebugLevel)

	l := New(role)
	l.AddHandler(os.Stdout)
	return l
}

// Get returns the process-wide logger registered under name, creating it on
// first use. Repeated calls with the same name return the same *Logger, so
// handlers attached through one caller are visible to all of them.
func Get(name string) *Logger {
	registryMu.Lock()
	defer registryMu.Unlock()

	if l, ok := registry[name]; ok {
		return l
	}

	l := New(name)
	registry[name] = l
	return l
}

// Nop returns a *Logger that discards all log output.
// It is intended for use in tests and other contexts where logging is
// undesirable or would produce noise.
func Nop() *Logger {
	return &Logger{Logger: zerolog.Nop()}
}

// AddHandler attaches w as an additional output of the logger. Child loggers
// created with GetChildLogger share the handler set and see the new output.
func (l *Logger) AddHandler(w io.Writer) {
	if l.handlers == nil {
		l.handlers = &handlerSet{}
		l.Logger = l.Output(l.handlers)
	}
	l.handlers.add(w)
}

// Handlers reports the number of outputs currently attached to the logger.
func (l *Logger) Handlers() int {
	if l.handlers == nil {
		return 0
	}
	return l.handlers.len()
}

// RemoveHandlers detaches every output from the logger.
func (l *Logger) RemoveHandlers() {
	if l.handlers != nil {
		l.handlers.reset()
	}
}

// SetLevel changes the minimum level of events emitted by this logger.
func (l *Logger) SetLevel(level zerolog.Level) {
	l.Logger = l.Level(level)
}

// GetChildLogger returns a new *Logger that inherits all fields and the
// handler set of the receiver. The child logger can be enriched with
// additional context fields without affecting the parent logger.
func (l *Logger) GetChildLogger() *Logger {
	return &Logger{Logger: l.With().Logger(), handlers: l.handlers}
}

// FromRequest extracts the zerolog.Logger stored in the request's context by
// zerolog's log.Ctx helper and returns it as a *Logger.
func FromRequest(r *http.Request) *Logger {
	return FromContext(r.Context())
}

// FromContext extracts the zerolog.Logger stored in ctx by zerolog's log.Ctx
// helper and returns it as a *Logger.
//
// If no logger has been attached to ctx, zerolog returns its default logger,
// so this function never returns nil.
func FromContext(ctx context.Context) *Logger {
	return &Logger{Logger: *log.Ctx(ctx)}
}
