package calc

import (
	"go.uber.org/zap"

	"nickandperla.net/calc/internal/store"
)

// Option configures a Session.
type Option func(*Session)

// Store is the history store interface, for custom stores.
type Store = store.Store

// HistoryEntry is one recorded evaluation.
type HistoryEntry = store.Entry

// WithLogger sets the logger. Evaluations are logged at debug level.
func WithLogger(l *zap.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithStore sets the history store. The Session closes it on Close.
func WithStore(st Store) Option {
	return func(s *Session) {
		s.store = st
	}
}

// WithSQLiteStore persists history in the SQLite database at path.
func WithSQLiteStore(path string) Option {
	return func(s *Session) {
		st, err := store.NewSQLite(path)
		if err != nil {
			s.err = err
			return
		}
		s.store = st
	}
}

// WithMemoryStore keeps history in memory only. This is the default.
func WithMemoryStore() Option {
	return func(s *Session) {
		s.store = store.NewMemory()
	}
}

// WithMode sets the starting keypad mode. Without it the mode saved in the
// store is used, or ModeBasic.
func WithMode(m Mode) Option {
	return func(s *Session) {
		s.mode = m
		s.modeSet = true
	}
}

// WithHistoryLimit bounds how many entries History returns. Zero or less
// means no limit.
func WithHistoryLimit(n int) Option {
	return func(s *Session) {
		s.historyLimit = n
	}
}
