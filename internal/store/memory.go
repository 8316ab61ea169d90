package store

import (
	"sync"
	"time"
)

// Memory is an in-memory store for testing and for sessions that do not
// persist.
type Memory struct {
	mu       sync.RWMutex
	entries  []Entry
	nextID   int64
	metadata map[string]string
	now      func() time.Time
}

// NewMemory creates a new in-memory store.
func NewMemory() *Memory {
	return &Memory{
		metadata: make(map[string]string),
		now:      time.Now,
	}
}

// Append records an entry.
func (m *Memory) Append(e Entry) (Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	e.ID = m.nextID
	if e.Ts.IsZero() {
		e.Ts = m.now().UTC()
	}
	m.entries = append(m.entries, e)
	return e, nil
}

// History returns the most recent entries, oldest first.
func (m *Memory) History(sessionID string, limit int) ([]Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []Entry
	for _, e := range m.entries {
		if sessionID == "" || e.SessionID == sessionID {
			out = append(out, e)
		}
	}
	if limit > 0 && len(out) > limit {
		out = out[len(out)-limit:]
	}
	return out, nil
}

// Clear removes entries for sessionID, or all entries.
func (m *Memory) Clear(sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if sessionID == "" {
		m.entries = nil
		return nil
	}
	kept := m.entries[:0]
	for _, e := range m.entries {
		if e.SessionID != sessionID {
			kept = append(kept, e)
		}
	}
	m.entries = kept
	return nil
}

// Close is a no-op for memory store.
func (m *Memory) Close() error {
	return nil
}

// GetMetadata retrieves a metadata value by key.
func (m *Memory) GetMetadata(key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.metadata[key], nil
}

// SetMetadata stores a metadata value by key.
func (m *Memory) SetMetadata(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.metadata[key] = value
	return nil
}
