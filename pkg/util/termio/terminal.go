package termio

import (
	"errors"
	"io"
	"os"

	"golang.org/x/term"
)

// ESC is the escape code.
const ESC uint16 = 0x1b

// TAB indicates the horizontal tab
const TAB uint16 = 0x09

// CARRIAGE_RETURN indicates "enter"
const CARRIAGE_RETURN uint16 = 0x0D

// BACKSPACE is the backspace
const BACKSPACE uint16 = 0x08

// DEL is the delete key
const DEL uint16 = 0x7f

// BACKTAB indicates shift + tab
const BACKTAB uint16 = 0x5b5a

// CURSOR_UP (up arrow)
const CURSOR_UP uint16 = 0x5b41

// CURSOR_DOWN (down arrow)
const CURSOR_DOWN uint16 = 0x5b42

// CURSOR_LEFT (left arrow)
const CURSOR_LEFT uint16 = 0x5b43

// CURSOR_RIGHT (right arrow)
const CURSOR_RIGHT uint16 = 0x5b44

// UNKNOWN is a fall-back for unknown escape sequences
const UNKNOWN uint16 = 0x5bff

// Terminal wraps stdin/stdout in raw mode, for line-oriented interactive
// tools (a REPL) that want key-by-key control without a full window layout
// on top.
type Terminal struct {
	fd    int
	xterm *term.Terminal
	state *term.State
}

// NewTerminal constructs a new terminal, switching stdin/stdout into raw
// mode. Callers must call Restore when done, typically via defer.
func NewTerminal() (*Terminal, error) {
	fd := int(os.Stdout.Fd())

	if !term.IsTerminal(fd) {
		return nil, errors.New("stdout is not a terminal")
	}

	state, err := term.MakeRaw(0)
	if err != nil {
		return nil, err
	}

	screen := struct {
		io.Reader
		io.Writer
	}{os.Stdin, os.Stdout}

	xterm := term.NewTerminal(screen, "")

	return &Terminal{fd, xterm, state}, nil
}

// ReadLine reads a single line of input, with the terminal package's own
// basic editing (backspace, history navigation) applied.
func (t *Terminal) ReadLine() (string, error) {
	return t.xterm.ReadLine()
}

// SetPrompt sets the prompt string shown before each ReadLine.
func (t *Terminal) SetPrompt(prompt string) {
	t.xterm.SetPrompt(prompt)
}

// Write writes formatted output to the terminal, honouring any ANSI
// escapes already embedded in p.
func (t *Terminal) Write(p []byte) (int, error) {
	return t.xterm.Write(p)
}

// ReadKey returns a keyevent from the keyboard. This is either an ASCII
// character, or an extended escape code.
func (t *Terminal) ReadKey() (uint16, error) {
	var key [3]byte

	n, err := os.Stdin.Read(key[:])
	if err != nil {
		return 0, err
	}

	if n == 1 {
		return uint16(key[0]), nil
	}

	if n != 3 || key[1] != '[' {
		return UNKNOWN, nil
	}

	switch key[2] {
	case 'A':
		return CURSOR_UP, nil
	case 'B':
		return CURSOR_DOWN, nil
	case 'C':
		return CURSOR_RIGHT, nil
	case 'D':
		return CURSOR_LEFT, nil
	case 'Z':
		return BACKTAB, nil
	}

	return UNKNOWN, nil
}

// GetSize returns the dimensions of the terminal.
func (t *Terminal) GetSize() (uint, uint) {
	w, h, err := term.GetSize(t.fd)
	if err != nil {
		return 80, 24
	}

	return uint(w), uint(h)
}

// Restore returns the terminal to its original (non-raw) state.
func (t *Terminal) Restore() error {
	return term.Restore(t.fd, t.state)
}
