package tui

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"

	tea "github.com/charmbracelet/bubbletea"
)

// logRecordMsg carries a log record into the program so it can be shown
// in the toast line.
type logRecordMsg struct {
	summary string
	level   slog.Level
}

// LogHandler forwards records to an optional next handler and sends
// records at or above its level into a running tea.Program. Records that
// arrive before SetProgram are only forwarded.
type LogHandler struct {
	level   slog.Level
	next    slog.Handler
	program *atomic.Pointer[tea.Program]
	attrs   []slog.Attr
}

func NewLogHandler(level slog.Level, next slog.Handler) *LogHandler {
	return &LogHandler{
		level:   level,
		next:    next,
		program: &atomic.Pointer[tea.Program]{},
	}
}

// SetProgram is safe to call from any goroutine and applies to every
// handler derived through WithAttrs and WithGroup.
func (h *LogHandler) SetProgram(program *tea.Program) {
	h.program.Store(program)
}

func (h *LogHandler) Enabled(ctx context.Context, level slog.Level) bool {
	if level >= h.level {
		return true
	}
	return h.next != nil && h.next.Enabled(ctx, level)
}

func (h *LogHandler) Handle(ctx context.Context, record slog.Record) error {
	var err error
	if h.next != nil && h.next.Enabled(ctx, record.Level) {
		err = h.next.Handle(ctx, record)
	}
	if record.Level < h.level {
		return err
	}
	program := h.program.Load()
	if program == nil {
		return err
	}

	var parts []string
	for _, attr := range h.attrs {
		parts = append(parts, fmt.Sprintf("%s=%s", attr.Key, attr.Value))
	}
	record.Attrs(func(attr slog.Attr) bool {
		parts = append(parts, fmt.Sprintf("%s=%s", attr.Key, attr.Value))
		return true
	})
	summary := record.Message
	if len(parts) > 0 {
		summary += " (" + strings.Join(parts, ", ") + ")"
	}
	// Handle may run inside Update, and Send blocks until the event loop
	// receives, so delivery happens off the caller's goroutine.
	go program.Send(logRecordMsg{summary: summary, level: record.Level})
	return err
}

func (h *LogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := *h
	clone.attrs = append(append([]slog.Attr(nil), h.attrs...), attrs...)
	if h.next != nil {
		clone.next = h.next.WithAttrs(attrs)
	}
	return &clone
}

func (h *LogHandler) WithGroup(name string) slog.Handler {
	clone := *h
	clone.attrs = append([]slog.Attr(nil), h.attrs...)
	if h.next != nil {
		clone.next = h.next.WithGroup(name)
	}
	return &clone
}
