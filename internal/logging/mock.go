package logging

import (
	"fmt"
	"strings"
)

// MockLogger records log calls for assertions in tests.
type MockLogger struct {
	Entries []MockEntry
}

// MockEntry is a single recorded log call.
type MockEntry struct {
	Level   string
	Message string
	Fields  []Field
}

// NewMockLogger creates a new recording logger for tests.
func NewMockLogger() *MockLogger {
	return &MockLogger{}
}

func (m *MockLogger) record(level, msg string, fields []Field) {
	m.Entries = append(m.Entries, MockEntry{Level: level, Message: msg, Fields: fields})
}

func (m *MockLogger) Debug(msg string, fields ...Field) { m.record("debug", msg, fields) }
func (m *MockLogger) Info(msg string, fields ...Field)  { m.record("info", msg, fields) }
func (m *MockLogger) Warn(msg string, fields ...Field)  { m.record("warn", msg, fields) }
func (m *MockLogger) Error(msg string, fields ...Field) { m.record("error", msg, fields) }
func (m *MockLogger) Fatal(msg string, fields ...Field) { m.record("fatal", msg, fields) }

func (m *MockLogger) Fatalf(msg string, args ...interface{}) {
	m.record("fatal", fmt.Sprintf(msg, args...), nil)
}

func (m *MockLogger) WithError(err error) Logger {
	return m
}

func (m *MockLogger) WithField(key string, value interface{}) Logger {
	return m
}

func (m *MockLogger) WithFields(fields ...Field) Logger {
	return m
}

// HasMessage reports whether any recorded entry contains the given substring.
func (m *MockLogger) HasMessage(level, substr string) bool {
	for _, e := range m.Entries {
		if e.Level == level && strings.Contains(e.Message, substr) {
			return true
		}
	}
	return false
}
