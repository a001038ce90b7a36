package logging

// MockLogger is a Logger implementation for tests. It records every entry so
// assertions can inspect what was logged.
type MockLogger struct {
	Entries []MockEntry
	fields  []Field
}

// MockEntry is a single recorded log call.
type MockEntry struct {
	Level   string
	Message string
	Fields  []Field
}

// NewMockLogger creates an empty MockLogger.
func NewMockLogger() *MockLogger {
	return &MockLogger{}
}

func (m *MockLogger) record(level, msg string, fields []Field) {
	all := append(append([]Field{}, m.fields...), fields...)
	m.Entries = append(m.Entries, MockEntry{Level: level, Message: msg, Fields: all})
}

// Debug records a debug-level entry
func (m *MockLogger) Debug(msg string, fields ...Field) { m.record("debug", msg, fields) }

// Info records an info-level entry
func (m *MockLogger) Info(msg string, fields ...Field) { m.record("info", msg, fields) }

// Warn records a warn-level entry
func (m *MockLogger) Warn(msg string, fields ...Field) { m.record("warn", msg, fields) }

// Error records an error-level entry
func (m *MockLogger) Error(msg string, fields ...Field) { m.record("error", msg, fields) }

// Fatal records a fatal-level entry without exiting, so tests can assert on it
func (m *MockLogger) Fatal(msg string, fields ...Field) { m.record("fatal", msg, fields) }

// WithError returns the same logger with an error field attached
func (m *MockLogger) WithError(err error) Logger {
	return m.WithField("error", err)
}

// WithField returns the same logger with a single field attached
func (m *MockLogger) WithField(key string, value interface{}) Logger {
	m.fields = append(m.fields, Field{Key: key, Value: value})
	return m
}

// WithFields returns the same logger with multiple fields attached
func (m *MockLogger) WithFields(fields ...Field) Logger {
	m.fields = append(m.fields, fields...)
	return m
}
