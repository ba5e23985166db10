package tui

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"strconv"
	"strings"

	"github.com/bethropolis/nib/internal/logger"
	"github.com/gdamore/tcell/v2"
	"golang.org/x/term"
)

// ANSI is a Surface that writes VT100/xterm escape sequences to a raw-mode terminal.
type ANSI struct {
	out    *bufio.Writer
	fd     int // output, for GetSize
	inFd   int // input, whose mode MakeRaw changed
	state  *term.State
	width  int // fixed size when no terminal is attached
	height int
	err    error
}

// ErrNotTerminal is returned when the standard streams are not a terminal.
var ErrNotTerminal = errors.New("not a terminal")

// NewANSI puts in into raw mode and switches out to the alternate screen.
func NewANSI(in, out *os.File) (*ANSI, error) {
	fd := int(in.Fd())
	if !term.IsTerminal(fd) || !term.IsTerminal(int(out.Fd())) {
		return nil, ErrNotTerminal
	}
	state, err := term.MakeRaw(fd)
	if err != nil {
		return nil, fmt.Errorf("failed to enter raw mode: %w", err)
	}
	a := &ANSI{out: bufio.NewWriterSize(out, 16*1024), fd: int(out.Fd()), inFd: fd, state: state}
	a.write("\x1b[?1049h\x1b[H")
	a.Flush()
	return a, nil
}

// NewANSIWriter writes to w with a fixed size and no raw mode.
func NewANSIWriter(w io.Writer, width, height int) *ANSI {
	return &ANSI{out: bufio.NewWriter(w), fd: -1, inFd: -1, width: width, height: height}
}

func (a *ANSI) write(s string) {
	if a.err != nil {
		return
	}
	if _, err := a.out.WriteString(s); err != nil {
		a.err = err
		logger.Warnf("Terminal: write failed: %v", err)
	}
}

func (a *ANSI) Size() (int, int) {
	if a.fd >= 0 {
		if w, h, err := term.GetSize(a.fd); err == nil && w > 0 && h > 0 {
			return w, h
		}
	}
	if a.width > 0 && a.height > 0 {
		return a.width, a.height
	}
	return 80, 24
}

func goTo(row, col int) string {
	return "\x1b[" + strconv.Itoa(row) + ";" + strconv.Itoa(col) + "H"
}

func (a *ANSI) WriteAt(row, col int, text string, style tcell.Style) {
	a.write(goTo(row, col) + sgr(style) + text + "\x1b[0m")
}

func (a *ANSI) EraseLine(row int) {
	a.write(goTo(row, 1) + "\x1b[2K")
}

func (a *ANSI) EraseScreen() {
	a.write("\x1b[0m\x1b[2J")
}

func (a *ANSI) SetScrollRegion(top, bottom int) {
	a.write(fmt.Sprintf("\x1b[%d;%dr", top, bottom))
}

func (a *ANSI) ScrollUp(n int) {
	a.write(fmt.Sprintf("\x1b[%dS", n))
}

func (a *ANSI) ScrollDown(n int) {
	a.write(fmt.Sprintf("\x1b[%dT", n))
}

// CanScroll is false on Windows, whose console ignores scroll regions.
func (a *ANSI) CanScroll() bool {
	return runtime.GOOS != "windows"
}

func (a *ANSI) ShowCursor(row, col int) {
	a.write(goTo(row, col))
}

func (a *ANSI) Flush() {
	if a.err != nil {
		return
	}
	if err := a.out.Flush(); err != nil {
		a.err = err
		logger.Warnf("Terminal: flush failed: %v", err)
	}
}

// Restore resets the scroll region, leaves the alternate screen and
// restores the saved terminal mode.
func (a *ANSI) Restore() error {
	a.err = nil
	a.write("\x1b[r\x1b[0m\x1b[?1049l")
	a.Flush()
	if a.state == nil {
		return a.err
	}
	if err := term.Restore(a.inFd, a.state); err != nil {
		return fmt.Errorf("failed to restore terminal: %w", err)
	}
	return a.err
}

// sgr renders a style as a Select Graphic Rendition sequence.
func sgr(style tcell.Style) string {
	if style == tcell.StyleDefault {
		return ""
	}
	fg, bg, attrs := style.Decompose()
	codes := []string{"0"}
	for _, a := range []struct {
		mask tcell.AttrMask
		code string
	}{
		{tcell.AttrBold, "1"},
		{tcell.AttrDim, "2"},
		{tcell.AttrItalic, "3"},
		{tcell.AttrUnderline, "4"},
		{tcell.AttrBlink, "5"},
		{tcell.AttrReverse, "7"},
		{tcell.AttrStrikeThrough, "9"},
	} {
		if attrs&a.mask != 0 {
			codes = append(codes, a.code)
		}
	}
	codes = append(codes, colorCodes(fg, 30)...)
	codes = append(codes, colorCodes(bg, 40)...)
	return "\x1b[" + strings.Join(codes, ";") + "m"
}

func colorCodes(c tcell.Color, base int) []string {
	switch {
	case c == tcell.ColorDefault || c == tcell.ColorReset:
		return nil
	case c.IsRGB():
		r, g, b := c.RGB()
		return []string{strconv.Itoa(base + 8), "2", strconv.Itoa(int(r)), strconv.Itoa(int(g)), strconv.Itoa(int(b))}
	case c.Valid():
		idx := int(c - tcell.ColorValid)
		switch {
		case idx < 8:
			return []string{strconv.Itoa(base + idx)}
		case idx < 16:
			return []string{strconv.Itoa(base + 60 + idx - 8)}
		default:
			return []string{strconv.Itoa(base + 8), "5", strconv.Itoa(idx)}
		}
	}
	return nil
}

var _ Surface = (*ANSI)(nil)
