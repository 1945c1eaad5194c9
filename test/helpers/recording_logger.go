package helpers

import "sync"

// LogEntry is one message captured by RecordingLogger
type LogEntry struct {
	Level    string
	Message  string
	Metadata map[string]interface{}
}

// RecordingLogger is a common.Logger that keeps every entry for assertions
type RecordingLogger struct {
	mu      sync.Mutex
	entries []LogEntry
}

// NewRecordingLogger creates an empty recording logger
func NewRecordingLogger() *RecordingLogger {
	return &RecordingLogger{}
}

// Log records the entry
func (l *RecordingLogger) Log(level, message string, metadata map[string]interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, LogEntry{Level: level, Message: message, Metadata: metadata})
}

// Entries returns a copy of the recorded entries
func (l *RecordingLogger) Entries() []LogEntry {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]LogEntry, len(l.entries))
	copy(out, l.entries)
	return out
}

// HasMessage reports whether any entry has the given message
func (l *RecordingLogger) HasMessage(message string) bool {
	for _, e := range l.Entries() {
		if e.Message == message {
			return true
		}
	}
	return false
}
