// Package models provides the data structures used throughout the application.
package models

// RawMessage is a single notification message pulled from a message export.
// It is the immutable input to the extraction engine: the engine borrows it
// read-only for the duration of one Extract call and never mutates it.
type RawMessage struct {
	Text      string // decoded message body, may contain embedded newlines
	Timestamp string // ISO-8601-like timestamp, e.g. "2025-10-25 20:14:08"
	Sender    string // opaque sender identifier (short code, bank name, number)
}
