package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"

	"nickandperla.net/calc/pkg/calc"
)

// Alt+key mappings: Alt+key sends ESC (0x1b) followed by the key byte
var altKeyMappings = map[byte]string{
	'x': "×",     // Alt+x - multiply
	'/': "÷",     // Alt+/ - divide
	'-': "−",     // Alt+- - minus sign
	'r': "root(", // Alt+r - n-th root, after the degree: 3root(
	's': "sqrt(", // Alt+s - square root
	'p': "pi",    // Alt+p - pi
	'!': "!",     // Alt+! - factorial
}

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start the line REPL",
	RunE:  runREPLCmd,
}

func runREPLCmd(cmd *cobra.Command, args []string) error {
	sess, err := newSession()
	if err != nil {
		return err
	}
	defer sess.Close()

	out := cmd.OutOrStdout()
	// Check if stdin is a terminal
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		// Not a TTY, fall back to basic mode
		return newREPL(sess, out, "\n").runBasic(os.Stdin)
	}

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		logger.Warn("raw mode unavailable", zap.Error(err))
		return newREPL(sess, out, "\n").runBasic(os.Stdin)
	}
	defer term.Restore(fd, oldState)

	r := newREPL(sess, out, "\r\n")
	r.printBanner()
	return r.runRaw(os.Stdin)
}

// repl reads expressions line by line and prints each result.
type repl struct {
	sess   *calc.Session
	out    io.Writer
	nl     string   // Line ending; raw mode needs \r\n
	recall []string // Lines entered this run, for Up/Down
}

func newREPL(sess *calc.Session, out io.Writer, nl string) *repl {
	return &repl{sess: sess, out: out, nl: nl}
}

func (r *repl) println(a ...any) {
	fmt.Fprint(r.out, a...)
	fmt.Fprint(r.out, r.nl)
}

func (r *repl) printBanner() {
	r.println("calc REPL (Ctrl+D to exit, :help for commands)")
	r.println()
	r.println("Glyphs (use Alt+key):")
	r.println("  Alt+x → ×    Alt+/ → ÷    Alt+- → −")
	r.println("  Alt+r → root(    Alt+s → sqrt(    Alt+p → pi")
	r.println()
}

func (r *repl) printHelp() {
	r.println("  :ans           show the last answer")
	r.println("  :history       show this session's evaluations")
	r.println("  :rewrite EXPR  show EXPR in canonical form")
	r.println("  :quit          exit")
	r.println("A line ending in \\ continues on the next line.")
}

// runBasic handles non-TTY input (piped input)
func (r *repl) runBasic(in io.Reader) error {
	reader := bufio.NewReader(in)
	return r.loop(func() (string, bool) {
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			return "", true
		}
		return strings.TrimRight(line, "\r\n"), false
	})
}

// runRaw handles TTY input with Alt+key support
func (r *repl) runRaw(in io.Reader) error {
	return r.loop(func() (string, bool) {
		return readLineRaw(in, r.out, r.recall)
	})
}

func (r *repl) loop(readLine func() (string, bool)) error {
	var multiline strings.Builder
	inMultiline := false

	for {
		if inMultiline {
			fmt.Fprint(r.out, "... ")
		} else {
			fmt.Fprint(r.out, ">>> ")
		}

		line, eof := readLine()
		if eof {
			r.println()
			return nil
		}

		if strings.HasSuffix(line, "\\") {
			multiline.WriteString(strings.TrimSuffix(line, "\\"))
			multiline.WriteString("\n")
			inMultiline = true
			continue
		}

		var input string
		if inMultiline {
			multiline.WriteString(line)
			input = multiline.String()
			multiline.Reset()
			inMultiline = false
		} else {
			input = line
		}

		if strings.TrimSpace(input) == "" {
			continue
		}
		r.recall = append(r.recall, input)

		quit, err := r.handle(input)
		if err != nil {
			return err
		}
		if quit {
			return nil
		}
	}
}

// handle runs one input. Evaluation errors are printed, not returned;
// only a history store failure stops the loop.
func (r *repl) handle(input string) (bool, error) {
	input = strings.TrimSpace(input)
	if cmd, arg, ok := strings.Cut(input, " "); strings.HasPrefix(input, ":") {
		if !ok {
			cmd = input
		}
		return r.command(cmd, strings.TrimSpace(arg))
	}

	r.sess.SetBuffer(input)
	result, err := r.sess.Evaluate()
	if calc.KindOf(err) != 0 {
		r.println("Error: ", err)
		return false, nil
	}
	if err != nil {
		return false, err
	}
	r.println(result)
	return false, nil
}

func (r *repl) command(cmd, arg string) (bool, error) {
	switch cmd {
	case ":q", ":quit", ":exit":
		return true, nil
	case ":help", ":h":
		r.printHelp()
	case ":ans":
		if ans := r.sess.LastAnswer(); ans != "" {
			r.println(ans)
		}
	case ":history":
		entries, err := r.sess.History()
		if err != nil {
			return false, err
		}
		for _, e := range entries {
			if e.OK {
				r.println(e.Input, " = ", e.Result)
			} else {
				r.println(e.Input, " : ", e.Kind)
			}
		}
	case ":rewrite":
		out, err := calc.Rewrite(arg)
		if err != nil {
			r.println("Error: ", err)
			return false, nil
		}
		r.println(out)
	default:
		r.println("Unknown command ", cmd, " (try :help)")
	}
	return false, nil
}

// readLineRaw reads a line in raw mode with Alt+key support. Up and Down
// step through recall. Returns the line and whether EOF was encountered.
func readLineRaw(in io.Reader, out io.Writer, recall []string) (string, bool) {
	var line []rune
	cursor := 0              // Position in line (for arrow key navigation)
	recallPos := len(recall) // len(recall) is the line being typed
	var pending []rune       // Typed line saved while browsing recall
	buf := make([]byte, 1)

	readByte := func() (byte, bool) {
		n, err := in.Read(buf)
		if err != nil || n == 0 {
			return 0, false
		}
		return buf[0], true
	}

	// Helper to redraw line from cursor position
	redrawFromCursor := func() {
		// Clear from cursor to end of line
		fmt.Fprint(out, "\x1b[K")
		// Print remaining characters
		fmt.Fprint(out, string(line[cursor:]))
		// Move cursor back to position
		if cursor < len(line) {
			fmt.Fprintf(out, "\x1b[%dD", len(line)-cursor)
		}
	}

	insert := func(runes []rune) {
		newLine := make([]rune, 0, len(line)+len(runes))
		newLine = append(newLine, line[:cursor]...)
		newLine = append(newLine, runes...)
		newLine = append(newLine, line[cursor:]...)
		line = newLine
		cursor += len(runes)
		fmt.Fprint(out, string(runes))
		if cursor < len(line) {
			redrawFromCursor()
		}
	}

	replace := func(with []rune) {
		if cursor > 0 {
			fmt.Fprintf(out, "\x1b[%dD", cursor)
		}
		line = append([]rune(nil), with...)
		cursor = 0
		redrawFromCursor()
		if len(line) > 0 {
			fmt.Fprintf(out, "\x1b[%dC", len(line))
		}
		cursor = len(line)
	}

	for {
		b, ok := readByte()
		if !ok {
			return string(line), true
		}

		switch b {
		case 0x04: // Ctrl+D
			if len(line) == 0 {
				return "", true
			}
			// Delete character at cursor (like Delete key)
			if cursor < len(line) {
				line = append(line[:cursor], line[cursor+1:]...)
				redrawFromCursor()
			}

		case 0x03: // Ctrl+C
			fmt.Fprint(out, "^C\r\n")
			return "", false

		case 0x0d, 0x0a: // Enter (CR or LF)
			fmt.Fprint(out, "\r\n")
			return string(line), false

		case 0x7f, 0x08: // Backspace (DEL or BS)
			if cursor > 0 {
				cursor--
				line = append(line[:cursor], line[cursor+1:]...)
				fmt.Fprint(out, "\b") // Move cursor back
				redrawFromCursor()
			}

		case 0x1b: // ESC - could be Alt+key or arrow key sequence
			next, ok := readByte()
			if !ok {
				continue
			}

			if next != '[' {
				// Alt+key: ESC followed by key byte
				if op, ok := altKeyMappings[next]; ok {
					insert([]rune(op))
				}
				continue
			}

			// Arrow key sequence: ESC [ A/B/C/D
			arrow, ok := readByte()
			if !ok {
				continue
			}
			switch arrow {
			case 'A': // Up arrow
				if recallPos > 0 {
					if recallPos == len(recall) {
						pending = append([]rune(nil), line...)
					}
					recallPos--
					replace([]rune(recall[recallPos]))
				}
			case 'B': // Down arrow
				if recallPos < len(recall) {
					recallPos++
					if recallPos == len(recall) {
						replace(pending)
					} else {
						replace([]rune(recall[recallPos]))
					}
				}
			case 'C': // Right arrow
				if cursor < len(line) {
					cursor++
					fmt.Fprint(out, "\x1b[C")
				}
			case 'D': // Left arrow
				if cursor > 0 {
					cursor--
					fmt.Fprint(out, "\x1b[D")
				}
			case '3': // Delete key: ESC [ 3 ~
				if tilde, ok := readByte(); ok && tilde == '~' && cursor < len(line) {
					line = append(line[:cursor], line[cursor+1:]...)
					redrawFromCursor()
				}
			}

		case 0x01: // Ctrl+A - beginning of line
			if cursor > 0 {
				fmt.Fprintf(out, "\x1b[%dD", cursor)
				cursor = 0
			}

		case 0x05: // Ctrl+E - end of line
			if cursor < len(line) {
				fmt.Fprintf(out, "\x1b[%dC", len(line)-cursor)
				cursor = len(line)
			}

		case 0x0b: // Ctrl+K - kill to end of line
			if cursor < len(line) {
				line = line[:cursor]
				fmt.Fprint(out, "\x1b[K")
			}

		case 0x15: // Ctrl+U - kill to beginning of line
			if cursor > 0 {
				fmt.Fprintf(out, "\x1b[%dD", cursor)
				line = line[cursor:]
				cursor = 0
				redrawFromCursor()
			}

		default:
			if b >= 0x20 && b < 0x7f {
				// Printable ASCII character
				insert([]rune{rune(b)})
			} else if b >= 0x80 {
				// UTF-8 multi-byte sequence - read remaining bytes
				utfBuf := []byte{b}

				// Determine how many more bytes to read
				numBytes := 0
				if b&0xE0 == 0xC0 {
					numBytes = 1
				} else if b&0xF0 == 0xE0 {
					numBytes = 2
				} else if b&0xF8 == 0xF0 {
					numBytes = 3
				}

				for i := 0; i < numBytes; i++ {
					c, ok := readByte()
					if !ok {
						break
					}
					utfBuf = append(utfBuf, c)
				}

				insert([]rune(string(utfBuf))[:1])
			}
		}
	}
}
