// Package store provides persistence for calculator history.
package store

import "time"

// Metadata keys shared by the calculator front ends.
const (
	KeyLastAnswer = "last_answer"
	KeyMode       = "mode"
)

// Entry is one evaluation recorded in history.
type Entry struct {
	ID        int64
	SessionID string
	Input     string // Buffer as entered
	Rewritten string // Canonical call form, empty when parsing failed
	Result    string // Display string, empty on failure
	OK        bool
	Kind      string // Error kind on failure
	Ts        time.Time
}

// Store is the interface for history persistence.
type Store interface {
	// Append records an entry and returns it with ID and Ts filled in.
	Append(e Entry) (Entry, error)
	// History returns up to limit of the most recent entries, oldest first.
	// An empty sessionID selects every session; limit <= 0 means no limit.
	History(sessionID string, limit int) ([]Entry, error)
	// Clear removes the entries of one session, or all entries if sessionID
	// is empty.
	Clear(sessionID string) error
	// GetMetadata retrieves a metadata value. Missing keys return "".
	GetMetadata(key string) (string, error)
	// SetMetadata stores a metadata value, overwriting if it exists.
	SetMetadata(key, value string) error
	// Close releases resources.
	Close() error
}
