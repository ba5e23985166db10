package tui

import (
	"strings"

	"github.com/gdamore/tcell/v2"
)

// Memory is an in-process Surface. It renders into a cell grid so callers
// can inspect exactly what a terminal would show; used by headless runs and tests.
type Memory struct {
	width, height int
	cells         [][]rune
	styles        [][]tcell.Style
	top, bottom   int

	// NoScroll makes CanScroll report false, forcing repaint fallbacks.
	NoScroll bool

	CursorRow, CursorCol int
	Scrolls              int // number of ScrollUp/ScrollDown calls
	Erases               int // number of EraseScreen calls
	Flushes              int
	Restored             bool
}

// NewMemory creates a blank width x height surface.
func NewMemory(width, height int) *Memory {
	m := &Memory{}
	m.Resize(width, height)
	return m
}

// Resize changes the size and blanks the grid.
func (m *Memory) Resize(width, height int) {
	m.width, m.height = width, height
	m.cells = make([][]rune, height)
	m.styles = make([][]tcell.Style, height)
	for y := range m.cells {
		m.cells[y] = blankRow(width)
		m.styles[y] = make([]tcell.Style, width)
	}
	m.top, m.bottom = 1, height
}

func blankRow(width int) []rune {
	row := make([]rune, width)
	for i := range row {
		row[i] = ' '
	}
	return row
}

func (m *Memory) inside(row int) bool { return row >= 1 && row <= m.height }

// Row returns the visible text of a row without trailing blanks.
func (m *Memory) Row(row int) string {
	if !m.inside(row) {
		return ""
	}
	return strings.TrimRight(string(m.cells[row-1]), " ")
}

// Rows returns every row, as Row does.
func (m *Memory) Rows() []string {
	out := make([]string, m.height)
	for y := range out {
		out[y] = m.Row(y + 1)
	}
	return out
}

// StyleAt returns the style of one cell.
func (m *Memory) StyleAt(row, col int) tcell.Style {
	if !m.inside(row) || col < 1 || col > m.width {
		return tcell.StyleDefault
	}
	return m.styles[row-1][col-1]
}

func (m *Memory) Size() (int, int) { return m.width, m.height }

func (m *Memory) WriteAt(row, col int, text string, style tcell.Style) {
	if !m.inside(row) {
		return
	}
	x := col - 1
	for _, r := range text {
		if x >= m.width {
			break
		}
		if x >= 0 {
			m.cells[row-1][x] = r
			m.styles[row-1][x] = style
		}
		x++
	}
}

func (m *Memory) EraseLine(row int) {
	if !m.inside(row) {
		return
	}
	m.cells[row-1] = blankRow(m.width)
	m.styles[row-1] = make([]tcell.Style, m.width)
}

func (m *Memory) EraseScreen() {
	m.Erases++
	for y := 1; y <= m.height; y++ {
		m.EraseLine(y)
	}
}

func (m *Memory) SetScrollRegion(top, bottom int) {
	m.top, m.bottom = top, bottom
}

func (m *Memory) ScrollUp(n int) {
	m.Scrolls++
	for y := m.top; y <= m.bottom; y++ {
		if y+n <= m.bottom {
			m.cells[y-1] = m.cells[y+n-1]
			m.styles[y-1] = m.styles[y+n-1]
		} else {
			m.EraseLine(y)
		}
	}
}

func (m *Memory) ScrollDown(n int) {
	m.Scrolls++
	for y := m.bottom; y >= m.top; y-- {
		if y-n >= m.top {
			m.cells[y-1] = m.cells[y-n-1]
			m.styles[y-1] = m.styles[y-n-1]
		} else {
			m.EraseLine(y)
		}
	}
}

func (m *Memory) CanScroll() bool { return !m.NoScroll }

func (m *Memory) ShowCursor(row, col int) {
	m.CursorRow, m.CursorCol = row, col
}

func (m *Memory) Flush() { m.Flushes++ }

func (m *Memory) Restore() error {
	m.Restored = true
	return nil
}

var _ Surface = (*Memory)(nil)
