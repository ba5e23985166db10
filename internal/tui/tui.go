// internal/tui/tui.go
package tui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
)

// TUI is a Surface backed by a tcell screen.
type TUI struct {
	screen   tcell.Screen
	defStyle tcell.Style
	top      int
	bottom   int
}

// New creates and initializes a tcell screen.
func New(defStyle tcell.Style) (*TUI, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("failed to create tcell screen: %w", err)
	}
	if err := s.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize tcell screen: %w", err)
	}
	return NewWithScreen(s, defStyle), nil
}

// NewWithScreen wraps an already initialized screen.
func NewWithScreen(s tcell.Screen, defStyle tcell.Style) *TUI {
	s.SetStyle(defStyle)
	_, h := s.Size()
	return &TUI{screen: s, defStyle: defStyle, top: 1, bottom: h}
}

// Screen provides direct access for the event source.
func (t *TUI) Screen() tcell.Screen {
	return t.screen
}

func (t *TUI) Size() (int, int) {
	return t.screen.Size()
}

func (t *TUI) WriteAt(row, col int, text string, style tcell.Style) {
	w, _ := t.screen.Size()
	x := col - 1
	for _, r := range text {
		if x >= w {
			break
		}
		t.screen.SetContent(x, row-1, r, nil, style)
		x++
	}
}

func (t *TUI) EraseLine(row int) {
	w, _ := t.screen.Size()
	for x := 0; x < w; x++ {
		t.screen.SetContent(x, row-1, ' ', nil, t.defStyle)
	}
}

func (t *TUI) EraseScreen() {
	t.screen.Clear()
}

func (t *TUI) SetScrollRegion(top, bottom int) {
	t.top, t.bottom = top, bottom
}

// copyRow copies every cell of screen row src (0-based) into dst.
func (t *TUI) copyRow(dst, src int) {
	w, _ := t.screen.Size()
	for x := 0; x < w; x++ {
		mainc, combc, style, _ := t.screen.GetContent(x, src)
		t.screen.SetContent(x, dst, mainc, combc, style)
	}
}

// ScrollUp shifts cells inside the region; tcell has no native scroll.
func (t *TUI) ScrollUp(n int) {
	top, bottom := t.top-1, t.bottom-1
	for y := top; y <= bottom; y++ {
		if y+n <= bottom {
			t.copyRow(y, y+n)
		} else {
			t.EraseLine(y + 1)
		}
	}
}

func (t *TUI) ScrollDown(n int) {
	top, bottom := t.top-1, t.bottom-1
	for y := bottom; y >= top; y-- {
		if y-n >= top {
			t.copyRow(y, y-n)
		} else {
			t.EraseLine(y + 1)
		}
	}
}

func (t *TUI) CanScroll() bool { return true }

func (t *TUI) ShowCursor(row, col int) {
	t.screen.ShowCursor(col-1, row-1)
}

func (t *TUI) Flush() {
	t.screen.Show()
}

// Restore finalizes the tcell screen.
func (t *TUI) Restore() error {
	if t.screen != nil {
		t.screen.Fini()
	}
	return nil
}

var _ Surface = (*TUI)(nil)
