// Package tui is a keypad front end for a calc.Session, built on bubbletea.
package tui

import (
	"errors"
	"strings"
	"unicode"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"nickandperla.net/calc/pkg/calc"
)

// typed are the characters appended as-is from the keyboard, along with
// letters. Keypad semantics (C, functions opening a call) apply only to
// pressed keys.
const typed = "0123456789+-*/().,^%!×÷"

// Model is the bubbletea model for the keypad.
type Model struct {
	session  *calc.Session
	keys     keyMap
	help     help.Model
	styles   styles
	row, col int
	err      error
	quitting bool
}

// New creates a Model driving session.
func New(session *calc.Session) Model {
	return Model{
		session: session,
		keys:    defaultKeyMap(),
		help:    help.New(),
		styles:  newStyles(),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case key.Matches(msg, m.keys.Up):
			m.move(-1, 0)
		case key.Matches(msg, m.keys.Down):
			m.move(1, 0)
		case key.Matches(msg, m.keys.Left):
			m.move(0, -1)
		case key.Matches(msg, m.keys.Right):
			m.move(0, 1)
		case key.Matches(msg, m.keys.Press):
			return m.press(m.Selected())
		case key.Matches(msg, m.keys.Evaluate):
			return m.press(calc.TokenEquals)
		case key.Matches(msg, m.keys.Backspace):
			return m.press(calc.TokenBackspace)
		case key.Matches(msg, m.keys.Clear):
			return m.press(calc.TokenClear)
		case key.Matches(msg, m.keys.Mode):
			return m.press(calc.TokenMode)
		case msg.Type == tea.KeyRunes:
			for _, r := range msg.Runes {
				if strings.ContainsRune(typed, r) || unicode.IsLetter(r) {
					m.session.SetBuffer(m.session.Buffer() + string(r))
				}
			}
			m.err = nil
		}
	}
	return m, nil
}

// press applies a keypad token, quitting on OFF.
func (m Model) press(token string) (tea.Model, tea.Cmd) {
	err := m.session.Press(token)
	if errors.Is(err, calc.ErrOff) {
		m.quitting = true
		return m, tea.Quit
	}
	m.err = err
	m.clamp()
	return m, nil
}

func (m *Model) move(dr, dc int) {
	pad := calc.Keypad(m.session.Mode())
	m.row = (m.row + dr + len(pad)) % len(pad)
	m.col = (m.col + dc + len(pad[m.row])) % len(pad[m.row])
}

// clamp keeps the cursor inside the layout after a mode change.
func (m *Model) clamp() {
	pad := calc.Keypad(m.session.Mode())
	m.row = min(m.row, len(pad)-1)
	m.col = min(m.col, len(pad[m.row])-1)
}

// Selected returns the token under the cursor.
func (m Model) Selected() string {
	return calc.Keypad(m.session.Mode())[m.row][m.col]
}

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	var b strings.Builder

	display := m.session.Display()
	if display == calc.ErrorMarker {
		display = m.styles.Error.Render(display)
	}
	b.WriteString(m.styles.Screen.Render(display))
	b.WriteString("\n")
	b.WriteString(m.styles.Mode.Render(m.session.Mode().String()))
	b.WriteString("\n\n")

	for r, row := range calc.Keypad(m.session.Mode()) {
		cells := make([]string, len(row))
		for c, label := range row {
			style := m.styles.Key
			if r == m.row && c == m.col {
				style = m.styles.Selected
			}
			cells[c] = style.Render(label)
		}
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cells...))
		b.WriteString("\n")
	}

	if m.err != nil {
		b.WriteString("\n")
		b.WriteString(m.styles.Status.Render(m.err.Error()))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

// Run starts the keypad program and blocks until the user quits.
func Run(session *calc.Session, opts ...tea.ProgramOption) error {
	_, err := tea.NewProgram(New(session), opts...).Run()
	return err
}
