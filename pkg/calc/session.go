package calc

import (
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"nickandperla.net/calc/internal/eval"
	"nickandperla.net/calc/internal/store"
)

// Mode is the keypad layout in use.
type Mode int

const (
	ModeBasic Mode = iota
	ModeScientific
)

// String returns the config spelling of m.
func (m Mode) String() string {
	if m == ModeScientific {
		return "scientific"
	}
	return "basic"
}

// ParseMode parses "basic" or "scientific".
func ParseMode(s string) (Mode, bool) {
	switch s {
	case "basic", "":
		return ModeBasic, true
	case "scientific", "sci":
		return ModeScientific, true
	}
	return ModeBasic, false
}

// Session is one calculator: an input buffer, the last answer and the keypad
// mode. A Session is not safe for concurrent use.
type Session struct {
	id           string
	evaluator    *eval.Evaluator
	store        store.Store
	logger       *zap.Logger
	buffer       string
	lastAnswer   string
	failed       bool // Last evaluation failed and nothing was pressed since
	mode         Mode
	modeSet      bool
	historyLimit int
	err          error
}

// New creates a Session. History is kept in memory unless a store option
// says otherwise.
func New(opts ...Option) (*Session, error) {
	s := &Session{
		id:     uuid.NewString(),
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.err != nil {
		return nil, fmt.Errorf("open history store: %w", s.err)
	}
	if s.store == nil {
		s.store = store.NewMemory()
	}
	s.logger = s.logger.With(zap.String("session", s.id))
	s.evaluator = eval.New(eval.WithLogger(s.logger))

	ans, err := s.store.GetMetadata(store.KeyLastAnswer)
	if err != nil {
		s.store.Close()
		return nil, fmt.Errorf("load last answer: %w", err)
	}
	s.lastAnswer = ans
	if !s.modeSet {
		saved, err := s.store.GetMetadata(store.KeyMode)
		if err != nil {
			s.store.Close()
			return nil, fmt.Errorf("load mode: %w", err)
		}
		s.mode, _ = ParseMode(saved)
	}
	return s, nil
}

// ID returns the session identifier recorded with history entries.
func (s *Session) ID() string { return s.id }

// Buffer returns the current input.
func (s *Session) Buffer() string { return s.buffer }

// LastAnswer returns the most recent successful result, or "".
func (s *Session) LastAnswer() string { return s.lastAnswer }

// Mode returns the keypad mode.
func (s *Session) Mode() Mode { return s.mode }

// Display returns what the calculator screen shows.
func (s *Session) Display() string {
	switch {
	case s.buffer != "":
		return s.buffer
	case s.failed:
		return ErrorMarker
	}
	return "0"
}

// SetBuffer replaces the input, as when a line is typed in full.
func (s *Session) SetBuffer(b string) {
	s.buffer = b
	s.failed = false
}

// Press applies one keypad token. Evaluation failures show in Display and
// are not returned; Press fails only for OFF (ErrOff) or a store error.
func (s *Session) Press(token string) error {
	switch token {
	case TokenOff:
		return ErrOff
	case TokenEquals:
		_, err := s.Evaluate()
		if KindOf(err) != 0 {
			return nil
		}
		return err
	case TokenAnswer:
		s.SetBuffer(s.buffer + s.lastAnswer)
		return nil
	case TokenMode:
		return s.SetMode(1 - s.mode)
	case TokenBack:
		if s.mode == ModeScientific {
			return s.SetMode(ModeBasic)
		}
		return nil
	}
	s.SetBuffer(AppendToken(s.buffer, token))
	return nil
}

// SetMode switches the keypad layout and remembers it in the store.
func (s *Session) SetMode(m Mode) error {
	s.mode = m
	return s.store.SetMetadata(store.KeyMode, m.String())
}

// Evaluate runs the buffer through the pipeline. On success the result
// replaces the buffer and becomes the last answer; on failure the buffer is
// emptied and Display shows ErrorMarker. An empty buffer is left alone.
// Every evaluation is recorded in history.
func (s *Session) Evaluate() (string, error) {
	if s.buffer == "" {
		return "", nil
	}
	input := s.buffer
	rewritten, result, evalErr := run(s.evaluator, input)

	entry := store.Entry{
		SessionID: s.id,
		Input:     input,
		Rewritten: rewritten,
		Result:    result,
		OK:        evalErr == nil,
	}
	if evalErr != nil {
		entry.Kind = KindOf(evalErr).String()
		s.buffer = ""
		s.failed = true
		s.logger.Debug("evaluate failed",
			zap.String("input", input),
			zap.String("kind", entry.Kind),
			zap.Error(evalErr))
	} else {
		s.buffer = result
		s.lastAnswer = result
		s.failed = false
		s.logger.Debug("evaluate",
			zap.String("input", input),
			zap.String("rewritten", rewritten),
			zap.String("result", result))
	}

	if _, err := s.store.Append(entry); err != nil {
		return result, fmt.Errorf("record history: %w", err)
	}
	if evalErr == nil {
		if err := s.store.SetMetadata(store.KeyLastAnswer, result); err != nil {
			return result, fmt.Errorf("save last answer: %w", err)
		}
	}
	return result, evalErr
}

// History returns this session's evaluations, oldest first.
func (s *Session) History() ([]HistoryEntry, error) {
	return s.store.History(s.id, s.historyLimit)
}

// Close releases the history store.
func (s *Session) Close() error {
	return s.store.Close()
}
