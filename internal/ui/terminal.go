// Package ui provides the terminal pieces of the UI read path: raw-mode
// terminal control, keyboard decoding, and lipgloss styles. The query
// buffer and the roughly 30 Hz render loop that draws the engine's
// Collector snapshot live in cmd/boo.
//
// Raw mode and terminal sizing use direct termios/winsize ioctls via
// golang.org/x/sys/unix rather than a higher-level terminal library.
package ui

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// Terminal wraps the process's stdin/stderr file descriptors and the
// saved termios needed to restore the terminal on exit. Rendering goes
// to stderr, not stdout: stdout is reserved for the single final
// selection line printed on exit, so the interactive display must
// never share it.
type Terminal struct {
	inFd  int
	outFd int
	saved unix.Termios
	raw   bool
}

// Open captures the current terminal state without modifying it.
func Open() (*Terminal, error) {
	t := &Terminal{inFd: int(os.Stdin.Fd()), outFd: int(os.Stderr.Fd())}
	saved, err := unix.IoctlGetTermios(t.inFd, unix.TCGETS)
	if err != nil {
		return nil, fmt.Errorf("ui: stdin is not a terminal: %w", err)
	}
	t.saved = *saved
	return t, nil
}

// EnterRaw puts the terminal into raw mode (no echo, no line buffering,
// no signal generation from Ctrl-C so the UI can intercept it itself)
// and switches to the alternate screen buffer.
func (t *Terminal) EnterRaw() error {
	raw := t.saved
	raw.Lflag &^= unix.ECHO | unix.ICANON | unix.ISIG | unix.IEXTEN
	raw.Iflag &^= unix.IXON | unix.ICRNL | unix.BRKINT | unix.INPCK | unix.ISTRIP
	raw.Oflag &^= unix.OPOST
	raw.Cflag |= unix.CS8
	raw.Cc[unix.VMIN] = 1
	raw.Cc[unix.VTIME] = 0

	if err := unix.IoctlSetTermios(t.inFd, unix.TCSETS, &raw); err != nil {
		return fmt.Errorf("ui: enter raw mode: %w", err)
	}
	t.raw = true
	fmt.Fprint(os.Stderr, altScreenEnter+cursorHide)
	return nil
}

// Restore leaves the alternate screen and restores the terminal's
// original termios settings. Safe to call more than once, and
// callers should defer it on every exit path.
func (t *Terminal) Restore() {
	fmt.Fprint(os.Stderr, cursorShow+altScreenLeave)
	if t.raw {
		_ = unix.IoctlSetTermios(t.inFd, unix.TCSETS, &t.saved)
		t.raw = false
	}
}

// Write renders a full frame to the terminal: home the cursor, clear
// from there to the end of the screen, then write b.
func (t *Terminal) Write(b []byte) {
	fmt.Fprint(os.Stderr, cursorHome+clearToEnd)
	os.Stderr.Write(b)
}

// Size returns the terminal's current (columns, rows).
func (t *Terminal) Size() (cols, rows int, err error) {
	ws, err := unix.IoctlGetWinsize(t.outFd, unix.TIOCGWINSZ)
	if err != nil {
		return 0, 0, err
	}
	return int(ws.Col), int(ws.Row), nil
}

// ReadByte reads a single byte from stdin, blocking until one arrives.
func (t *Terminal) ReadByte() (byte, error) {
	var buf [1]byte
	n, err := unix.Read(t.inFd, buf[:])
	if err != nil {
		return 0, err
	}
	if n == 0 {
		return 0, fmt.Errorf("ui: stdin closed")
	}
	return buf[0], nil
}

const (
	altScreenEnter = "\x1b[?1049h"
	altScreenLeave = "\x1b[?1049l"
	cursorHide     = "\x1b[?25l"
	cursorShow     = "\x1b[?25h"
	cursorHome     = "\x1b[H"
	clearToEnd     = "\x1b[J"
)
