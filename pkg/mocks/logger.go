package mocks

import (
	"fmt"
	"sync"

	"github.com/user/timeshifter/pkg/ports"
)

// LogEntry is one recorded log call.
type LogEntry struct {
	Level     ports.LogLevel
	Component string
	Message   string
}

type logStore struct {
	mu      sync.Mutex
	entries []LogEntry
}

// Logger records every message with its format arguments applied.
// Component loggers share the parent's record.
type Logger struct {
	store     *logStore
	component string
}

// NewLogger creates a new recording Logger.
func NewLogger() *Logger {
	return &Logger{store: &logStore{}}
}

func (m *Logger) Debug(msg string, args ...any) { m.record(ports.LevelDebug, msg, args) }
func (m *Logger) Info(msg string, args ...any)  { m.record(ports.LevelInfo, msg, args) }
func (m *Logger) Warn(msg string, args ...any)  { m.record(ports.LevelWarn, msg, args) }
func (m *Logger) Error(msg string, args ...any) { m.record(ports.LevelError, msg, args) }

func (m *Logger) WithComponent(component string) ports.Logger {
	return &Logger{store: m.store, component: component}
}

func (m *Logger) record(level ports.LogLevel, msg string, args []any) {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	m.store.entries = append(m.store.entries, LogEntry{
		Level:     level,
		Component: m.component,
		Message:   fmt.Sprintf(msg, args...),
	})
}

// Entries returns the recorded messages (for test verification).
func (m *Logger) Entries() []LogEntry {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	return append([]LogEntry(nil), m.store.entries...)
}

var _ ports.Logger = (*Logger)(nil)
